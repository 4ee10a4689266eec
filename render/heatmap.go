package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/region"
	"github.com/phil-mansfield/diskjet/stats"
	"github.com/phil-mansfield/diskjet/units"
)

const paletteColors = 255

// gridData adapts a field and its coordinate axes to plotter.GridXYZ.
// Cells with ok set false surface as NaN, which the heat map leaves
// blank, so masked fields render with gaps instead of fake values.
type gridData struct {
	nx, nz int
	xs, zs []float64
	vals   []float64
	ok     []bool // nil when every cell is valid
	scale  float64
	log    bool
}

func (g *gridData) Dims() (c, r int) { return g.nx, g.nz }
func (g *gridData) X(c int) float64  { return g.xs[c] }
func (g *gridData) Y(r int) float64  { return g.zs[r] }

func (g *gridData) Z(c, r int) float64 {
	i := r*g.nx + c
	if g.ok != nil && !g.ok[i] { return math.NaN() }
	v := g.vals[i] * g.scale
	if g.log {
		if v <= 0 { return math.NaN() }
		v = math.Log10(v)
	}
	return v
}

func checkMapShape(g *field.Grid, nx, nz int) error {
	if g.Nx() != nx || g.Nz() != nz {
		return fmt.Errorf(
			"field is %d x %d but the grid is %d x %d",
			nz, nx, g.Nz(), g.Nx(),
		)
	}
	return nil
}

func saveMap(
	title string, g *field.Grid, data *gridData,
	pal palette.Palette, lo, hi float64, path string, opt Options,
) error {
	hm := plotter.NewHeatMap(data, pal)
	hm.Min, hm.Max = lo, hi
	// Clamp clipped extremes to the palette ends. NaN cells still
	// render blank.
	cols := pal.Colors()
	hm.Underflow = cols[0]
	hm.Overflow = cols[len(cols)-1]

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x [AU]"
	p.Y.Label.Text = "z [AU]"
	p.Add(hm)

	w := vg.Length(opt.Width) * vg.Inch / 96
	h := vg.Length(opt.Height) * vg.Inch / 96
	return p.Save(w, h, path)
}

// VelocityMap renders the radial velocity in km/s on a diverging colour
// scale with symmetric percentile limits, so inflow and outflow get
// equal visual weight and zero velocity sits at the neutral colour.
func VelocityMap(
	g *field.Grid, vr *field.Field, path string, opt Options,
) error {
	if err := opt.check(); err != nil { return err }
	if err := checkMapShape(g, vr.Nx, vr.Nz); err != nil { return err }

	lo, hi := stats.RobustLimits(vr.Vals, 2, 98, true)
	lo, hi = padLimits(lo*units.CmKm, hi*units.CmKm)

	data := &gridData{
		nx: vr.Nx, nz: vr.Nz,
		xs: g.XAxis(), zs: g.ZAxis(),
		vals: vr.Vals, scale: units.CmKm,
	}
	title := fmt.Sprintf("v_r [km/s], scale %.3g to %.3g", lo, hi)
	pal := moreland.SmoothBlueRed().Palette(paletteColors)
	return saveMap(title, g, data, pal, lo, hi, path, opt)
}

// DensityMap renders log10 of the density on a sequential colour scale.
// Non-positive cells have no logarithm and render blank.
func DensityMap(
	g *field.Grid, rho *field.Field, path string, opt Options,
) error {
	if err := opt.check(); err != nil { return err }
	if err := checkMapShape(g, rho.Nx, rho.Nz); err != nil { return err }

	logs := make([]float64, 0, len(rho.Vals))
	for _, x := range rho.Vals {
		if x > 0 && !math.IsInf(x, 0) { logs = append(logs, math.Log10(x)) }
	}
	lo, hi := padLimits(stats.RobustLimits(logs, 2, 98, false))

	data := &gridData{
		nx: rho.Nx, nz: rho.Nz,
		xs: g.XAxis(), zs: g.ZAxis(),
		vals: rho.Vals, scale: 1, log: true,
	}
	title := fmt.Sprintf(
		"log10 rho [g/cm^3], scale %.3g to %.3g", lo, hi,
	)
	pal := moreland.Kindlmann().Palette(paletteColors)
	return saveMap(title, g, data, pal, lo, hi, path, opt)
}

// RatioMap renders a masked ratio field, such as pressure gradient over
// gravity, on a diverging scale with symmetric limits. Masked cells
// render blank.
func RatioMap(
	g *field.Grid, rat *field.Masked, title, path string, opt Options,
) error {
	if err := opt.check(); err != nil { return err }
	if err := checkMapShape(g, rat.Nx, rat.Nz); err != nil { return err }

	valid := make([]float64, 0, len(rat.Vals))
	for i, ok := range rat.Ok {
		if ok { valid = append(valid, rat.Vals[i]) }
	}
	lo, hi := padLimits(stats.RobustLimits(valid, 2, 98, true))

	data := &gridData{
		nx: rat.Nx, nz: rat.Nz,
		xs: g.XAxis(), zs: g.ZAxis(),
		vals: rat.Vals, ok: rat.Ok, scale: 1,
	}
	full := fmt.Sprintf("%s, scale %.3g to %.3g", title, lo, hi)
	pal := moreland.SmoothBlueRed().Palette(paletteColors)
	return saveMap(full, g, data, pal, lo, hi, path, opt)
}

// Matplotlib's tab10 colors, which the region map shares with every
// plot the simulation group makes by hand.
var regionColors = []color.Color{
	color.RGBA{199, 199, 199, 255}, // Unclassified: gray
	color.RGBA{31, 119, 180, 255},  // Jet: blue
	color.RGBA{255, 127, 14, 255},  // Disk: orange
	color.RGBA{214, 39, 40, 255},   // Infall: red
}

type classPalette struct{}

func (classPalette) Colors() []color.Color { return regionColors }

// RegionMap renders the classification as a categorical colour map,
// one colour per class.
func RegionMap(
	g *field.Grid, m *region.Map, path string, opt Options,
) error {
	if err := opt.check(); err != nil { return err }
	if err := checkMapShape(g, m.Nx, m.Nz); err != nil { return err }

	vals := make([]float64, len(m.Classes))
	for i, c := range m.Classes {
		vals[i] = float64(c)
	}

	data := &gridData{
		nx: m.Nx, nz: m.Nz,
		xs: g.XAxis(), zs: g.ZAxis(),
		vals: vals, scale: 1,
	}
	// Half-cell margins put each class code at the center of its own
	// colour band.
	lo, hi := -0.5, float64(len(regionColors))-0.5
	title := "regions: gray unclassified, blue jet, orange disk, red infall"
	return saveMap(title, g, data, classPalette{}, lo, hi, path, opt)
}
