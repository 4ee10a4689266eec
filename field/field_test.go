package field

import (
	"math"
	"testing"

	"github.com/phil-mansfield/diskjet/units"
)

func TestFieldIndexing(t *testing.T) {
	// 3 x 2 grid: values laid out row-major with x fastest.
	f := New([]float64{0, 1, 2, 10, 11, 12}, 3, 2)

	table := []struct {
		ix, iz int
		want   float64
	}{
		{0, 0, 0}, {1, 0, 1}, {2, 0, 2},
		{0, 1, 10}, {1, 1, 11}, {2, 1, 12},
	}

	for i, test := range table {
		if got := f.At(test.ix, test.iz); got != test.want {
			t.Errorf("%d) At(%d, %d) = %g, want %g",
				i, test.ix, test.iz, got, test.want)
		}
	}

	f.Set(2, 1, -5)
	if f.Vals[5] != -5 {
		t.Errorf("Set(2, 1, -5) wrote to the wrong cell: %v", f.Vals)
	}
}

func TestGridRadius(t *testing.T) {
	x := New([]float64{0, 3, 0, 3}, 2, 2)
	z := New([]float64{0, 0, 4, 4}, 2, 2)
	g := NewGrid(x, z)

	r := g.Radius()
	table := []struct {
		ix, iz int
		wantAU float64
	}{
		{0, 0, 0}, {1, 0, 3}, {0, 1, 4}, {1, 1, 5},
	}
	for i, test := range table {
		want := test.wantAU * units.AUCm
		if got := r.At(test.ix, test.iz); !almostEq(got, want) {
			t.Errorf("%d) Radius At(%d, %d) = %g, want %g",
				i, test.ix, test.iz, got, want)
		}
	}
}

func TestGridAxes(t *testing.T) {
	// meshgrid of x = {1, 2, 4}, z = {0, 10}.
	x := New([]float64{1, 2, 4, 1, 2, 4}, 3, 2)
	z := New([]float64{0, 0, 0, 10, 10, 10}, 3, 2)
	g := NewGrid(x, z)

	xs, zs := g.XAxis(), g.ZAxis()
	if !sliceEq(xs, []float64{1, 2, 4}) {
		t.Errorf("XAxis() = %v, want [1 2 4]", xs)
	}
	if !sliceEq(zs, []float64{0, 10}) {
		t.Errorf("ZAxis() = %v, want [0 10]", zs)
	}

	dx, dz := g.CellSize()
	if dx != 1 || dz != 10 {
		t.Errorf("CellSize() = %g, %g, want 1, 10", dx, dz)
	}

	x0, x1, z0, z1 := g.Extent()
	if x0 != 1 || x1 != 4 || z0 != 0 || z1 != 10 {
		t.Errorf("Extent() = %g %g %g %g, want 1 4 0 10", x0, x1, z0, z1)
	}
}

func TestMinStep(t *testing.T) {
	table := []struct {
		xs   []float64
		want float64
	}{
		{[]float64{0, 1, 2, 3}, 1},
		{[]float64{3, 0, 2, 1}, 1},
		{[]float64{0, 0, 0.5, 2}, 0.5},
		{[]float64{1, 1, 1}, 0},
		{[]float64{5}, 0},
		{[]float64{0, math.NaN(), 0.25, math.Inf(1)}, 0.25},
	}

	for i, test := range table {
		if got := MinStep(test.xs); got != test.want {
			t.Errorf("%d) MinStep(%v) = %g, want %g", i, test.xs, got, test.want)
		}
	}
}

func TestMasked(t *testing.T) {
	m := NewMasked(2, 2)
	if m.ValidCount() != 0 {
		t.Errorf("new Masked reports %d valid cells", m.ValidCount())
	}

	m.Set(1, 0, 3.5)
	m.Ok[1] = true

	if !m.Valid(1, 0) || m.Valid(0, 0) {
		t.Errorf("Valid() does not track Ok: %v", m.Ok)
	}
	if m.ValidCount() != 1 {
		t.Errorf("ValidCount() = %d, want 1", m.ValidCount())
	}
	if m.At(1, 0) != 3.5 {
		t.Errorf("At(1, 0) = %g, want 3.5", m.At(1, 0))
	}
}

func TestAdd(t *testing.T) {
	f := New([]float64{1, 2, 3, 4}, 2, 2)
	g := New([]float64{10, 20, 30, 40}, 2, 2)

	sum := Add(f, g)
	if !sliceEq(sum.Vals, []float64{11, 22, 33, 44}) {
		t.Errorf("Add() = %v", sum.Vals)
	}
	if !sliceEq(f.Vals, []float64{1, 2, 3, 4}) {
		t.Errorf("Add() modified its input: %v", f.Vals)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Add() did not panic on mismatched shapes.")
		}
	}()
	Add(f, New([]float64{1, 2}, 2, 1))
}

func almostEq(x, y float64) bool {
	if x == y { return true }
	return math.Abs(x-y) <= 1e-12*math.Max(math.Abs(x), math.Abs(y))
}

func sliceEq(xs, ys []float64) bool {
	if len(xs) != len(ys) { return false }
	for i := range xs {
		if xs[i] != ys[i] { return false }
	}
	return true
}
