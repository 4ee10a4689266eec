package render

import (
	"fmt"
	"path/filepath"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/diskjet/evolution"
)

var previewColors = []string{"b", "r", "g", "orange", "purple"}

// PreviewTimeSeries pushes the time series through matplotlib, matching
// the quick-look figures the group makes by hand during a run. It shells
// out to python, so it stays behind the PyplotPreview config switch and
// the go-chart PNGs are written either way.
func PreviewTimeSeries(h *evolution.History, dir string) error {
	if err := checkHistory(h); err != nil { return err }

	plt.Reset()

	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(h.Time, h.Mass, "k", plt.LW(2))
	plt.Title("stellar mass")
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$M$ $[M_\odot]$`, plt.FontSize(16))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(filepath.Join(dir, "preview_mass.png"))

	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(h.Time, h.Accretion, "k", plt.LW(2))
	plt.Title("accretion rate")
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$\dot{M}$`, plt.FontSize(16))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(filepath.Join(dir, "preview_accretion.png"))

	if h.Bands() > 0 {
		plt.Figure(plt.FigSize(8, 6))
		for i, ys := range h.Luminosity {
			plt.Plot(
				h.Time, ys, plt.LW(2),
				plt.C(previewColors[i%len(previewColors)]),
			)
		}
		plt.Title(fmt.Sprintf("luminosity, %d bands", h.Bands()))
		plt.XLabel(`$t$`, plt.FontSize(16))
		plt.YLabel(`$L$`, plt.FontSize(16))
		plt.Grid(plt.Axis("both"))
		plt.SaveFig(filepath.Join(dir, "preview_luminosity.png"))
	}

	plt.Execute()
	return nil
}
