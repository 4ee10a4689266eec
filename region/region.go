/*package region partitions the snapshot into the three dynamical regions
of the flow. Classification is a fixed-priority cascade of strict
threshold comparisons, so every cell lands in exactly one class and cells
sitting exactly on a threshold never flip between classes across runs.
*/
package region

import (
	"github.com/phil-mansfield/diskjet/field"
)

type Class uint8

const (
	Unclassified Class = iota
	Jet
	Disk
	Infall
)

func (c Class) String() string {
	switch c {
	case Unclassified:
		return "Unclassified"
	case Jet:
		return "Jet"
	case Disk:
		return "Disk"
	case Infall:
		return "Infall"
	}
	panic("Unrecognized Class.")
}

// Classes returns every class in reporting order.
func Classes() []Class {
	return []Class{Jet, Disk, Infall, Unclassified}
}

// Thresholds holds the classification cutoffs. Values are cgs: cm/s for
// velocities, g/cm^3 for densities. These are tuning parameters of the
// specific simulation and always come from the config file.
type Thresholds struct {
	// A cell is Jet if v_r > JetVelocity and rho < JetDensity.
	JetVelocity, JetDensity float64
	// Otherwise Infall if v_r < InfallVelocity. InfallVelocity is
	// negative.
	InfallVelocity float64
	// Otherwise Disk if rho > DiskDensity.
	DiskDensity float64
}

// Map assigns a Class to every grid cell. Classes is stored in the same
// row-major layout as field.Field.
type Map struct {
	Classes []Class
	Nx, Nz  int
}

// Classify labels every cell of the grid from the radial velocity and
// density fields. The cascade runs in priority order and the first match
// wins:
//
//  1. v_r > th.JetVelocity and rho < th.JetDensity  -> Jet
//  2. v_r < th.InfallVelocity                       -> Infall
//  3. rho > th.DiskDensity                          -> Disk
//  4. otherwise                                     -> Unclassified
//
// All comparisons are strict, so a cell exactly at a cutoff fails that
// branch. vr and rho must share a shape.
func Classify(vr, rho *field.Field, th Thresholds) *Map {
	if !vr.ShapeEq(rho) { panic("vr and rho have different shapes.") }

	m := &Map{
		Classes: make([]Class, vr.Len()),
		Nx:      vr.Nx,
		Nz:      vr.Nz,
	}

	for i := range m.Classes {
		v, r := vr.Vals[i], rho.Vals[i]
		switch {
		case v > th.JetVelocity && r < th.JetDensity:
			m.Classes[i] = Jet
		case v < th.InfallVelocity:
			m.Classes[i] = Infall
		case r > th.DiskDensity:
			m.Classes[i] = Disk
		default:
			m.Classes[i] = Unclassified
		}
	}

	return m
}

func (m *Map) At(ix, iz int) Class { return m.Classes[iz*m.Nx+ix] }

// Len returns the number of labeled cells.
func (m *Map) Len() int { return len(m.Classes) }

// Count returns the number of cells labeled c.
func (m *Map) Count(c Class) int {
	n := 0
	for _, mc := range m.Classes {
		if mc == c { n++ }
	}
	return n
}

// Mask returns a boolean mask selecting the cells labeled c.
func (m *Map) Mask(c Class) []bool {
	mask := make([]bool, len(m.Classes))
	for i, mc := range m.Classes {
		mask[i] = mc == c
	}
	return mask
}
