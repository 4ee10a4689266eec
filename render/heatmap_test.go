package render

import (
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/region"
)

var testOpt = Options{Width: 320, Height: 240}

// testGrid builds a 4 x 3 AU mesh.
func testGrid() *field.Grid {
	xs := []float64{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}
	zs := []float64{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2}
	return field.NewGrid(field.New(xs, 4, 3), field.New(zs, 4, 3))
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output %s missing: %s", path, err.Error())
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("output %s does not decode: %s", path, err.Error())
	}
	assert.Equal(t, "png", format, "output format")
	return img
}

func TestVelocityMap(t *testing.T) {
	g := testGrid()
	vr := field.New([]float64{
		-3e5, -1e5, 0, 1e5,
		-2e5, 0, 1e6, 2e6,
		0, 1e6, 3e6, 5e6,
	}, 4, 3)
	path := filepath.Join(t.TempDir(), "velocity.png")

	if err := VelocityMap(g, vr, path, testOpt); err != nil {
		t.Fatalf("VelocityMap: %s", err.Error())
	}

	img := decodePNG(t, path)
	assert.Equal(t, testOpt.Width, img.Bounds().Dx(), "pixel width")
	assert.Equal(t, testOpt.Height, img.Bounds().Dy(), "pixel height")
}

func TestDensityMap(t *testing.T) {
	g := testGrid()
	rho := field.New([]float64{
		1e-12, 1e-13, 1e-14, 1e-15,
		1e-13, 1e-14, 1e-15, 1e-16,
		1e-14, 1e-15, 0, 1e-18,
	}, 4, 3)
	path := filepath.Join(t.TempDir(), "density.png")

	// The zero cell has no logarithm and must render as a gap, not an
	// error.
	if err := DensityMap(g, rho, path, testOpt); err != nil {
		t.Fatalf("DensityMap: %s", err.Error())
	}
	decodePNG(t, path)
}

func TestRatioMap(t *testing.T) {
	g := testGrid()
	rat := field.NewMasked(4, 3)
	for i := range rat.Vals {
		rat.Vals[i] = float64(i)/6 - 1
		rat.Ok[i] = true
	}
	rat.Vals[5], rat.Ok[5] = 0, false
	path := filepath.Join(t.TempDir(), "ratio.png")

	err := RatioMap(g, rat, "pressure support", path, testOpt)
	if err != nil {
		t.Fatalf("RatioMap: %s", err.Error())
	}
	decodePNG(t, path)
}

func TestRatioMapFullyMasked(t *testing.T) {
	g := testGrid()
	rat := field.NewMasked(4, 3)
	path := filepath.Join(t.TempDir(), "ratio.png")

	// No valid cells at all: the map is blank but still renders.
	err := RatioMap(g, rat, "pressure support", path, testOpt)
	if err != nil {
		t.Fatalf("RatioMap on fully masked field: %s", err.Error())
	}
	decodePNG(t, path)
}

func TestRegionMap(t *testing.T) {
	g := testGrid()
	m := &region.Map{
		Classes: []region.Class{
			region.Disk, region.Disk, region.Unclassified, region.Jet,
			region.Disk, region.Infall, region.Jet, region.Jet,
			region.Unclassified, region.Jet, region.Jet, region.Jet,
		},
		Nx: 4, Nz: 3,
	}
	path := filepath.Join(t.TempDir(), "regions.png")

	if err := RegionMap(g, m, path, testOpt); err != nil {
		t.Fatalf("RegionMap: %s", err.Error())
	}
	img := decodePNG(t, path)
	assert.Equal(t, testOpt.Width, img.Bounds().Dx(), "pixel width")
}

func TestMapErrors(t *testing.T) {
	g := testGrid()
	vr := field.Zeros(4, 3)

	err := VelocityMap(g, vr, "v.png", Options{Width: 0, Height: 240})
	assert.Error(t, err, "zero width")

	err = VelocityMap(g, field.Zeros(2, 2), "v.png", testOpt)
	assert.Error(t, err, "shape mismatch")

	bad := filepath.Join(t.TempDir(), "no_such_dir", "v.png")
	err = VelocityMap(g, vr, bad, testOpt)
	assert.Error(t, err, "unwritable path")
}

func TestPadLimits(t *testing.T) {
	lo, hi := padLimits(math.NaN(), math.NaN())
	assert.Equal(t, -1.0, lo, "NaN fallback low")
	assert.Equal(t, 1.0, hi, "NaN fallback high")

	lo, hi = padLimits(2, 2)
	assert.Equal(t, 1.0, lo, "collapsed limits widen low")
	assert.Equal(t, 3.0, hi, "collapsed limits widen high")

	lo, hi = padLimits(-3, 4)
	assert.Equal(t, -3.0, lo, "usable limits kept")
	assert.Equal(t, 4.0, hi, "usable limits kept")
}
