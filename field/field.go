/*package field provides the 2D grids and scalar fields that the rest of
the analysis operates on. A Field is a flat row-major array indexed by
(ix, iz), the same layout the snapshot .npy files use, so loading is a
copy and nothing ever needs to be transposed.
*/
package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/diskjet/units"
)

// Field is a scalar quantity sampled on the simulation grid. Vals is
// stored row-major with x varying fastest: Vals[iz*Nx + ix].
type Field struct {
	Vals   []float64
	Nx, Nz int
}

// New creates a Field wrapping vals. The length of vals must equal nx*nz.
func New(vals []float64, nx, nz int) *Field {
	if nx <= 0 {
		panic("nx must be positive.")
	} else if nz <= 0 {
		panic("nz must be positive.")
	} else if nx*nz != len(vals) {
		panic("nx * nz must equal len(vals).")
	}

	return &Field{Vals: vals, Nx: nx, Nz: nz}
}

// Zeros creates a zero-valued Field with the given dimensions.
func Zeros(nx, nz int) *Field {
	return New(make([]float64, nx*nz), nx, nz)
}

func (f *Field) At(ix, iz int) float64 { return f.Vals[iz*f.Nx+ix] }

func (f *Field) Set(ix, iz int, x float64) { f.Vals[iz*f.Nx+ix] = x }

// Len returns the number of grid cells.
func (f *Field) Len() int { return len(f.Vals) }

// ShapeEq returns true if f and g have the same dimensions.
func (f *Field) ShapeEq(g *Field) bool {
	return f.Nx == g.Nx && f.Nz == g.Nz
}

// Add returns the cellwise sum of f and g, which must share a shape.
func Add(f, g *Field) *Field {
	if !f.ShapeEq(g) { panic("fields have different shapes.") }

	out := Zeros(f.Nx, f.Nz)
	copy(out.Vals, f.Vals)
	floats.Add(out.Vals, g.Vals)
	return out
}

// Masked is a Field in which individual cells can be marked invalid.
// Invalid cells store zero, never an infinity or NaN, so downstream
// reductions stay finite without any special casing.
type Masked struct {
	Field
	Ok []bool
}

// NewMasked creates an all-invalid Masked field with the given dimensions.
func NewMasked(nx, nz int) *Masked {
	return &Masked{
		Field: *Zeros(nx, nz),
		Ok:    make([]bool, nx*nz),
	}
}

// Valid returns true if the cell at (ix, iz) holds a usable value.
func (m *Masked) Valid(ix, iz int) bool { return m.Ok[iz*m.Nx+ix] }

// ValidCount returns the number of valid cells.
func (m *Masked) ValidCount() int {
	n := 0
	for _, ok := range m.Ok {
		if ok { n++ }
	}
	return n
}

// Grid holds the coordinate meshes of the snapshot. X and Z give every
// cell's position in AU and share their shape with the data fields.
type Grid struct {
	X, Z *Field
}

// NewGrid creates a Grid from the x and z coordinate meshes.
func NewGrid(x, z *Field) *Grid {
	if !x.ShapeEq(z) { panic("x and z meshes have different shapes.") }
	return &Grid{X: x, Z: z}
}

func (g *Grid) Nx() int { return g.X.Nx }
func (g *Grid) Nz() int { return g.X.Nz }

// Radius returns the spherical radius of every cell in cm. Cells at the
// origin yield r = 0; it is the caller's job to mask them before
// dividing.
func (g *Grid) Radius() *Field {
	r := Zeros(g.Nx(), g.Nz())
	for i := range r.Vals {
		r.Vals[i] = units.AUCm * math.Hypot(g.X.Vals[i], g.Z.Vals[i])
	}
	return r
}

// XAxis returns the 1D x coordinates in AU, read off the first mesh row.
func (g *Grid) XAxis() []float64 {
	xs := make([]float64, g.Nx())
	for ix := range xs {
		xs[ix] = g.X.At(ix, 0)
	}
	return xs
}

// ZAxis returns the 1D z coordinates in AU, read off the first mesh
// column.
func (g *Grid) ZAxis() []float64 {
	zs := make([]float64, g.Nz())
	for iz := range zs {
		zs[iz] = g.Z.At(0, iz)
	}
	return zs
}

// CellSize estimates the grid spacing in AU along both axes.
func (g *Grid) CellSize() (dx, dz float64) {
	return MinStep(g.XAxis()), MinStep(g.ZAxis())
}

// Extent returns the coordinate bounds of the grid in AU.
func (g *Grid) Extent() (x0, x1, z0, z1 float64) {
	xs, zs := g.XAxis(), g.ZAxis()
	x0, x1 = xs[0], xs[0]
	for _, x := range xs {
		if x < x0 { x0 = x }
		if x > x1 { x1 = x }
	}
	z0, z1 = zs[0], zs[0]
	for _, z := range zs {
		if z < z0 { z0 = z }
		if z > z1 { z1 = z }
	}
	return x0, x1, z0, z1
}

// MinStep returns the smallest positive spacing between unique finite
// values of xs. Stretched grids make the naive "difference of the first
// two entries" wrong, so every adjacent pair of the sorted unique values
// is checked. Returns 0 if xs has fewer than two distinct finite values.
func MinStep(xs []float64) float64 {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			vals = append(vals, x)
		}
	}
	sort.Float64s(vals)

	min := 0.0
	for i := 1; i < len(vals); i++ {
		d := vals[i] - vals[i-1]
		if d > 0 && (min == 0 || d < min) { min = d }
	}
	return min
}
