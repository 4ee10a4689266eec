package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/diskjet/evolution"
	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/gravity"
	"github.com/phil-mansfield/diskjet/io"
	"github.com/phil-mansfield/diskjet/region"
	"github.com/phil-mansfield/diskjet/render"
	"github.com/phil-mansfield/diskjet/stats"
	"github.com/phil-mansfield/diskjet/units"
)

func main() {
	// The main function manages input sanitization and calls the
	// secondary main functions for each mode. The code tries to fail
	// gracefully, with a descriptive error, on incorrect input.

	var (
		analyzeStr, statsStr string
		exampleConfig        string
	)
	vars := map[string]*string{
		"Analyze":       &analyzeStr,
		"Stats":         &statsStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&analyzeStr, "Analyze", "",
		"Configuration file for [Analyze] mode. Runs the full pipeline: "+
			"load, classify, summarize, and render maps, plots, and the "+
			"report.",
	)
	flag.StringVar(
		&statsStr, "Stats", "",
		"Configuration file for [Stats] mode. Loads and classifies the "+
			"snapshot and prints the region table to stdout without "+
			"rendering anything.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Analyze'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "Analyze":
		wrap, err := io.ReadAnalyzeConfig(analyzeStr)
		if err != nil { log.Fatal(err.Error()) }
		con := &wrap.Analyze

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidMapWidth() || !con.ValidMapHeight() {
			log.Fatal("Invalid 'MapWidth'/'MapHeight' values.")
		}
		checkThresholds(&wrap.Thresholds)
		if !wrap.Star.ValidMass() {
			log.Fatal("Invalid 'Mass' value in [Star].")
		} else if !wrap.Table.ValidColumns() {
			log.Fatal("Invalid column values in [Table].")
		}

		setLogFile(con)
		analyzeMain(wrap)

	case "Stats":
		wrap, err := io.ReadAnalyzeConfig(statsStr)
		if err != nil { log.Fatal(err.Error()) }
		con := &wrap.Analyze

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		}
		checkThresholds(&wrap.Thresholds)

		setLogFile(con)
		statsMain(wrap)

	case "ExampleConfig":
		switch exampleConfig {
		case "Analyze":
			fmt.Println(io.ExampleAnalyzeFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Analyze'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but diskjet only "+
				"accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func checkThresholds(con *io.ThresholdsConfig) {
	if !con.ValidJetVelocity() {
		log.Fatal("Invalid/non-existent 'JetVelocity' value.")
	} else if !con.ValidJetDensity() {
		log.Fatal("Invalid/non-existent 'JetDensity' value.")
	} else if !con.ValidInfallVelocity() {
		log.Fatal(
			"Invalid/non-existent 'InfallVelocity' value. " +
				"It must be negative.",
		)
	} else if !con.ValidDiskDensity() {
		log.Fatal("Invalid/non-existent 'DiskDensity' value.")
	}
}

func setLogFile(con *io.AnalyzeConfig) {
	if !con.ValidLogFile() { return }
	f, err := os.Create(con.LogFile)
	if err != nil { log.Fatal(err.Error()) }
	log.SetOutput(f)
}

// analyzeMain runs the full pipeline: snapshot, classification,
// statistics, force and ratio fields, time series, rendering, report.
func analyzeMain(wrap *io.AnalyzeWrapper) {
	con := &wrap.Analyze

	log.Printf("Reading snapshot from %s", con.Input)
	snap, err := io.ReadSnapshot(con.Input)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf("Loaded a %d x %d grid", snap.Grid.Nx(), snap.Grid.Nz())

	hist, err := evolution.ReadHistory(
		io.TablePath(con.Input), wrap.Table.Columns(),
	)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf(
		"Read %d evolution rows, %d luminosity bands",
		hist.Len(), hist.Bands(),
	)

	if err = os.MkdirAll(con.Output, 0777); err != nil {
		log.Fatal(err.Error())
	}

	th := wrap.Thresholds.Thresholds()
	m := region.Classify(snap.VR, snap.Rho, th)
	sums := stats.Summarize(m, snap.VR, snap.Rho)
	for _, s := range sums {
		log.Printf("%-12s %8d cells (%5.1f%%)", s.Class, s.N, s.AreaPct)
	}

	fg := gravity.ForceDensity(snap.Grid, snap.Rho, wrap.Star.MassG())
	log.Printf(
		"Gravity valid on %d of %d cells", fg.ValidCount(), fg.Len(),
	)
	thermal := gravity.SupportRatio(snap.PGrad, fg)
	magnetic := gravity.SupportRatio(snap.PBGrad, fg)
	total := gravity.SupportRatio(field.Add(snap.PGrad, snap.PBGrad), fg)

	opt := render.Options{Width: con.MapWidth, Height: con.MapHeight}
	images := []render.Image{}

	maps := []imageJob{
		{"regions.png", "regions", func(p string) error {
			return render.RegionMap(snap.Grid, m, p, opt)
		}},
		{"velocity.png", "radial velocity", func(p string) error {
			return render.VelocityMap(snap.Grid, snap.VR, p, opt)
		}},
		{"density.png", "density", func(p string) error {
			return render.DensityMap(snap.Grid, snap.Rho, p, opt)
		}},
		{"ratio_thermal.png", "thermal pressure support",
			func(p string) error {
				return render.RatioMap(
					snap.Grid, thermal,
					"thermal pressure gradient / gravity", p, opt,
				)
			}},
		{"ratio_magnetic.png", "magnetic pressure support",
			func(p string) error {
				return render.RatioMap(
					snap.Grid, magnetic,
					"magnetic pressure gradient / gravity", p, opt,
				)
			}},
		{"ratio_total.png", "total pressure support",
			func(p string) error {
				return render.RatioMap(
					snap.Grid, total,
					"total pressure gradient / gravity", p, opt,
				)
			}},
	}

	if hist.Len() >= 2 {
		maps = append(maps,
			imageJob{"mass.png", "stellar mass", func(p string) error {
				return render.MassPlot(hist, p, opt)
			}},
			imageJob{"accretion.png", "accretion rate",
				func(p string) error {
					return render.AccretionPlot(hist, p, opt)
				}},
		)
		if hist.Bands() > 0 {
			maps = append(maps, imageJob{"luminosity.png", "luminosity",
				func(p string) error {
					return render.LuminosityPlot(hist, p, opt)
				}})
		}
	} else {
		log.Printf(
			"Skipping time series plots: only %d row in the table",
			hist.Len(),
		)
	}

	for _, job := range maps {
		log.Printf("Rendering %s", job.file)
		err = job.render(filepath.Join(con.Output, job.file))
		if err != nil { log.Fatal(err.Error()) }
		images = append(images, render.Image{
			Src: job.file, Caption: job.caption,
		})
	}

	report := &render.Report{
		SnapshotDir:  con.Input,
		Grid:         snap.Grid,
		Thresholds:   th,
		StarMass:     wrap.Star.Mass,
		Summaries:    sums,
		History:      hist,
		DensityHists: densityHistograms(m, snap.Rho),
		Images:       images,
	}
	reportPath := filepath.Join(con.Output, "report.html")
	if err = render.WriteReport(reportPath, report); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote report to %s", reportPath)

	if con.PyplotPreview {
		log.Printf("Writing pyplot preview")
		if err = render.PreviewTimeSeries(hist, con.Output); err != nil {
			// The analysis itself is complete at this point, so a
			// broken python install is not fatal.
			log.Printf("Pyplot preview failed: %s", err.Error())
		}
	}
}

type imageJob struct {
	file, caption string
	render        func(path string) error
}

// densityHistograms bins every region's positive densities on one shared
// decade-aligned log10 grid, two bins per decade, so the distributions
// can be read against each other. Regions with nothing to bin are
// dropped; returns nil if the whole snapshot has no positive densities.
func densityHistograms(
	m *region.Map, rho *field.Field,
) []render.RegionHist {
	pos := []float64{}
	for _, x := range rho.Vals {
		if x > 0 && !math.IsInf(x, 0) { pos = append(pos, x) }
	}
	if len(pos) == 0 { return nil }

	lo := units.OrderOfMagnitude(floats.Min(pos))
	hi := 10 * units.OrderOfMagnitude(floats.Max(pos))
	decades := int(math.Round(math.Log10(hi / lo)))

	hists := []render.RegionHist{}
	for _, c := range region.Classes() {
		vals := []float64{}
		for i, in := range m.Mask(c) {
			if in { vals = append(vals, rho.Vals[i]) }
		}
		h := stats.NewHistogram(vals, lo, hi, 2*decades, true)
		if h.Total() == 0 { continue }
		hists = append(hists, render.RegionHist{
			Region: c.String(), Hist: h,
		})
	}
	return hists
}

// statsMain loads and classifies the snapshot and prints the region
// table to stdout.
func statsMain(wrap *io.AnalyzeWrapper) {
	con := &wrap.Analyze

	snap, err := io.ReadSnapshot(con.Input)
	if err != nil { log.Fatal(err.Error()) }

	m := region.Classify(snap.VR, snap.Rho, wrap.Thresholds.Thresholds())
	sums := stats.Summarize(m, snap.VR, snap.Rho)

	fmt.Printf(
		"%-12s %8s %7s %12s %12s %12s %12s %14s %14s %14s\n",
		"# region", "cells", "area%", "v_mean[km/s]", "v_std[km/s]",
		"v_min[km/s]", "v_max[km/s]", "rho_med", "rho_p25", "rho_p75",
	)
	for _, s := range sums {
		fmt.Printf(
			"%-12s %8d %7.1f %12s %12s %12s %12s %14s %14s %14s\n",
			s.Class, s.N, s.AreaPct,
			fmtVal(s.VMean*units.CmKm), fmtVal(s.VStd*units.CmKm),
			fmtVal(s.VMin*units.CmKm), fmtVal(s.VMax*units.CmKm),
			fmtVal(s.RhoMedian), fmtVal(s.RhoP25), fmtVal(s.RhoP75),
		)
	}
}

func fmtVal(x float64) string {
	if math.IsNaN(x) { return "no data" }
	return fmt.Sprintf("%.4g", x)
}
