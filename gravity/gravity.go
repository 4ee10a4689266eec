/*package gravity evaluates the stellar gravity field and the pressure
support ratio on the simulation grid. Both quantities have cells where
they are undefined, the origin for gravity and zero-force cells for the
ratio, so both are returned as masked fields. Undefined cells store zero
and are marked invalid instead of carrying Inf or NaN.
*/
package gravity

import (
	"math"

	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/units"
)

// ForceDensity returns the gravitational force per unit volume exerted
// by a central star of starMassG grams on each cell,
//
//	f_g = G m_star rho / r^2
//
// in dyn/cm^3, with r the spherical radius of the cell in cm. Cells at
// r = 0 and cells with non-finite density are masked invalid.
func ForceDensity(
	g *field.Grid, rho *field.Field, starMassG float64,
) *field.Masked {
	if g.Nx() != rho.Nx || g.Nz() != rho.Nz {
		panic("grid and density have different shapes.")
	}

	r := g.Radius()
	gm := units.G * starMassG

	out := field.NewMasked(rho.Nx, rho.Nz)
	for i, ri := range r.Vals {
		if ri == 0 || !isFinite(rho.Vals[i]) { continue }
		f := gm * rho.Vals[i] / (ri * ri)
		if !isFinite(f) { continue }
		out.Vals[i] = f
		out.Ok[i] = true
	}
	return out
}

// SupportRatio divides a pressure gradient field by the gravitational
// force field, cell by cell. A ratio near one means the gradient alone
// balances gravity. Cells where the force is invalid or zero, or where
// the gradient is non-finite, are masked invalid.
func SupportRatio(grad *field.Field, fg *field.Masked) *field.Masked {
	if !grad.ShapeEq(&fg.Field) {
		panic("gradient and force have different shapes.")
	}

	out := field.NewMasked(grad.Nx, grad.Nz)
	for i, ok := range fg.Ok {
		if !ok || fg.Vals[i] == 0 || !isFinite(grad.Vals[i]) { continue }
		rat := grad.Vals[i] / fg.Vals[i]
		if !isFinite(rat) { continue }
		out.Vals[i] = rat
		out.Ok[i] = true
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
