package io

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/diskjet/field"
)

// ReadArray reads a single .npy file into a Field. The file must hold a
// 2D little-endian float64 array in C order, shape [n_z][n_x]. Anything
// else is a load failure naming the file.
func ReadArray(path string) (*field.Field, error) {
	f, err := os.Open(path)
	if err != nil { return nil, err }
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil { return nil, fmt.Errorf("%s: %v", path, err) }

	d := r.Header.Descr
	if d.Type != "<f8" {
		return nil, fmt.Errorf(
			"%s: dtype %q, want little-endian float64 (\"<f8\")",
			path, d.Type,
		)
	} else if d.Fortran {
		return nil, fmt.Errorf(
			"%s: Fortran-order arrays are not supported", path,
		)
	} else if len(d.Shape) != 2 {
		return nil, fmt.Errorf(
			"%s: %d-dimensional array, want 2", path, len(d.Shape),
		)
	}

	nz, nx := d.Shape[0], d.Shape[1]
	if nz < 1 || nx < 1 {
		return nil, fmt.Errorf("%s: empty array", path)
	}

	vals := make([]float64, nz*nx)
	if err := r.Read(&vals); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return field.New(vals, nx, nz), nil
}

// WriteArray writes a Field as a 2D float64 .npy file. The analysis
// pipeline never writes arrays, this exists for building fixtures and
// cut-down data sets.
func WriteArray(path string, f *field.Field) error {
	out, err := os.Create(path)
	if err != nil { return err }

	m := mat.NewDense(f.Nz, f.Nx, f.Vals)
	if err := npyio.Write(out, m); err != nil {
		out.Close()
		return fmt.Errorf("%s: %v", path, err)
	}
	return out.Close()
}
