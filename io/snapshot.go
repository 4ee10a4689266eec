/*package io loads simulation output into memory: the six NumPy field
arrays of a snapshot and the gcfg configuration files that drive the
analysis. Loading is strict. Every required file must be present, every
array must be a little-endian float64 C-order 2D array, and all arrays
must share one shape. The first violation aborts the load, there is no
partial recovery and nothing is cached.
*/
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/diskjet/field"
)

// The fixed contents of a snapshot directory. Fields are cgs: v_r in
// cm/s, rho in g/cm^3, the two gradients in dyn/cm^3. x and z are the
// coordinate meshes in AU. table.txt is the evolution table.
var RequiredFiles = []string{
	"v_r.npy", "rho.npy", "Pgrad_r.npy", "PBgrad_r.npy",
	"x.npy", "z.npy", "table.txt",
}

var (
	ErrMissingFile   = errors.New("missing required data file")
	ErrShapeMismatch = errors.New("data arrays have mismatched shapes")
)

// Snapshot is one fully loaded simulation snapshot.
type Snapshot struct {
	Grid *field.Grid

	// VR is the radial velocity, Rho the mass density, PGrad and
	// PBGrad the radial thermal and magnetic pressure gradients.
	VR, Rho, PGrad, PBGrad *field.Field
}

// TablePath returns the location of the evolution table inside a
// snapshot directory.
func TablePath(dir string) string { return filepath.Join(dir, "table.txt") }

// ReadSnapshot loads the snapshot stored in dir. Missing files produce
// an error wrapping ErrMissingFile that names every absent file, not
// just the first one. Arrays that do not share a single shape produce
// an error wrapping ErrShapeMismatch that lists all the shapes.
func ReadSnapshot(dir string) (*Snapshot, error) {
	missing := []string{}
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"%w: %s not found in %s",
			ErrMissingFile, strings.Join(missing, ", "), dir,
		)
	}

	names := []string{
		"v_r.npy", "rho.npy", "Pgrad_r.npy", "PBgrad_r.npy",
		"x.npy", "z.npy",
	}
	fields := make([]*field.Field, len(names))
	for i, name := range names {
		f, err := ReadArray(filepath.Join(dir, name))
		if err != nil { return nil, err }
		fields[i] = f
	}

	for _, f := range fields[1:] {
		if f.ShapeEq(fields[0]) { continue }
		descs := make([]string, len(fields))
		for j := range fields {
			descs[j] = fmt.Sprintf(
				"%s is %d x %d", names[j], fields[j].Nz, fields[j].Nx,
			)
		}
		return nil, fmt.Errorf(
			"%w: %s", ErrShapeMismatch, strings.Join(descs, ", "),
		)
	}

	return &Snapshot{
		Grid:   field.NewGrid(fields[4], fields[5]),
		VR:     fields[0],
		Rho:    fields[1],
		PGrad:  fields[2],
		PBGrad: fields[3],
	}, nil
}
