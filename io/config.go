package io

import (
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/diskjet/evolution"
	"github.com/phil-mansfield/diskjet/region"
	"github.com/phil-mansfield/diskjet/units"
)

const ExampleAnalyzeFile = `[Analyze]

#######################
# Required Parameters #
#######################

# Directory containing the simulation output. It must hold v_r.npy, rho.npy,
# Pgrad_r.npy, PBgrad_r.npy, x.npy, z.npy, and table.txt.
Input = path/to/data/dir

# Directory which maps, plots, and the report will be written to. The -Stats
# mode does not need it.
Output = path/to/output/dir

#######################
# Optional Parameters #
#######################

# Pixel size of the rendered colour maps.
# MapWidth = 800
# MapHeight = 600

# Also push the time series through matplotlib as a quick-look preview.
# Requires python with matplotlib on the path; the PNG plots are written
# either way.
# PyplotPreview = false

# Log file. If unset, log output goes to stderr.
# LogFile = log.out

[Thresholds]

# All four cuts are required. Cells are labeled by the first matching rule:
# jet (v_r > JetVelocity and rho < JetDensity), then infall
# (v_r < InfallVelocity), then disk (rho > DiskDensity). Cells matching no
# rule are left unclassified. Velocities are cm/s, densities g/cm^3, and
# every comparison is strict, so a cell sitting exactly on a cut fails it.
JetVelocity = 1e6
JetDensity = 1e-16
InfallVelocity = -1e5
DiskDensity = 1e-13

[Star]

# Mass of the central star in solar masses.
# Mass = 3.227471

[Table]

# Zero-indexed columns of table.txt. LuminosityColumn may be given multiple
# times, once per band.
# TimeColumn = 0
# MassColumn = 1
# AccretionColumn = 2
# LuminosityColumn = 3`

type AnalyzeConfig struct {
	// Required
	Input, Output string

	// Optional
	MapWidth, MapHeight int
	PyplotPreview       bool
	LogFile             string
}

func (con *AnalyzeConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *AnalyzeConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *AnalyzeConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *AnalyzeConfig) ValidMapWidth() bool {
	return con.MapWidth > 0
}
func (con *AnalyzeConfig) ValidMapHeight() bool {
	return con.MapHeight > 0
}

type ThresholdsConfig struct {
	// Required
	JetVelocity, JetDensity     float64
	InfallVelocity, DiskDensity float64
}

func (con *ThresholdsConfig) ValidJetVelocity() bool {
	return con.JetVelocity > 0
}
func (con *ThresholdsConfig) ValidJetDensity() bool {
	return con.JetDensity > 0
}
func (con *ThresholdsConfig) ValidInfallVelocity() bool {
	return con.InfallVelocity < 0
}
func (con *ThresholdsConfig) ValidDiskDensity() bool {
	return con.DiskDensity > 0
}

// Thresholds converts the section into the classifier's form.
func (con *ThresholdsConfig) Thresholds() region.Thresholds {
	return region.Thresholds{
		JetVelocity:    con.JetVelocity,
		JetDensity:     con.JetDensity,
		InfallVelocity: con.InfallVelocity,
		DiskDensity:    con.DiskDensity,
	}
}

type StarConfig struct {
	// Optional
	Mass float64
}

func (con *StarConfig) ValidMass() bool {
	return con.Mass > 0
}

// MassG returns the star's mass in grams.
func (con *StarConfig) MassG() float64 {
	return units.StarMassG(con.Mass)
}

type TableConfig struct {
	// Optional
	TimeColumn, MassColumn, AccretionColumn int
	LuminosityColumn                        []int
}

func (con *TableConfig) ValidColumns() bool {
	if con.TimeColumn < 0 || con.MassColumn < 0 || con.AccretionColumn < 0 {
		return false
	}
	for _, c := range con.LuminosityColumn {
		if c < 0 { return false }
	}
	return true
}

// Columns converts the section into the table reader's form. gcfg
// appends to multivalued variables instead of replacing them, so the
// luminosity default is applied here rather than in the wrapper.
func (con *TableConfig) Columns() evolution.Columns {
	lum := con.LuminosityColumn
	if len(lum) == 0 { lum = []int{3} }
	return evolution.Columns{
		Time:       con.TimeColumn,
		Mass:       con.MassColumn,
		Accretion:  con.AccretionColumn,
		Luminosity: lum,
	}
}

type AnalyzeWrapper struct {
	Analyze    AnalyzeConfig
	Thresholds ThresholdsConfig
	Star       StarConfig
	Table      TableConfig
}

func DefaultAnalyzeWrapper() *AnalyzeWrapper {
	wrap := &AnalyzeWrapper{}
	wrap.Analyze.MapWidth = 800
	wrap.Analyze.MapHeight = 600
	wrap.Star.Mass = units.DefaultStarMass
	wrap.Table.TimeColumn = 0
	wrap.Table.MassColumn = 1
	wrap.Table.AccretionColumn = 2
	return wrap
}

// ReadAnalyzeConfig reads fname over the defaults. Validity is checked
// by the caller, which knows which sections its mode actually uses.
func ReadAnalyzeConfig(fname string) (*AnalyzeWrapper, error) {
	wrap := DefaultAnalyzeWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil { return nil, err }
	return wrap, nil
}
