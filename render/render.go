/*package render draws the analysis products: colour maps of the
snapshot fields, time series line plots from the evolution table, an
optional matplotlib quick-look, and the HTML report that ties them
together. Everything here returns errors instead of panicking. Bad
sizes, unwritable paths, and degenerate data are runtime conditions,
not programmer mistakes.
*/
package render

import (
	"fmt"
	"math"
)

// Options sets the pixel size of a rendered image.
type Options struct {
	Width, Height int
}

func (opt Options) check() error {
	if opt.Width <= 0 || opt.Height <= 0 {
		return fmt.Errorf(
			"image size %d x %d is not positive", opt.Width, opt.Height,
		)
	}
	return nil
}

// padLimits makes a colour scale usable even when the data gave us
// nothing to work with: NaN limits (fully masked field) fall back to
// [-1, 1] and collapsed limits (constant field) are widened.
func padLimits(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) { return -1, 1 }
	if hi > lo { return lo, hi }
	return lo - 1, hi + 1
}
