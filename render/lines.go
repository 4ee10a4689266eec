package render

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/phil-mansfield/diskjet/evolution"
)

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 165, B: 0, A: 255},
	{R: 128, G: 0, B: 128, A: 255},
}

func lineStyle(i int) chart.Style {
	return chart.Style{
		StrokeColor: seriesColors[i%len(seriesColors)],
		StrokeWidth: 2.0,
	}
}

func writeLineChart(path string, graph chart.Chart) error {
	f, err := os.Create(path)
	if err != nil { return err }
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkHistory(h *evolution.History) error {
	if h.Len() < 2 {
		return fmt.Errorf(
			"a %d-row history cannot draw a line plot", h.Len(),
		)
	}
	return nil
}

// MassPlot draws the stellar mass against time.
func MassPlot(h *evolution.History, path string, opt Options) error {
	if err := opt.check(); err != nil { return err }
	if err := checkHistory(h); err != nil { return err }

	graph := chart.Chart{
		Title:  "stellar mass",
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: "t"},
		YAxis:  chart.YAxis{Name: "M [M_sun]"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "mass",
				XValues: h.Time,
				YValues: h.Mass,
				Style:   lineStyle(0),
			},
		},
	}
	return writeLineChart(path, graph)
}

// AccretionPlot draws the accretion rate against time.
func AccretionPlot(h *evolution.History, path string, opt Options) error {
	if err := opt.check(); err != nil { return err }
	if err := checkHistory(h); err != nil { return err }

	graph := chart.Chart{
		Title:  "accretion rate",
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: "t"},
		YAxis:  chart.YAxis{Name: "dM/dt"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "accretion",
				XValues: h.Time,
				YValues: h.Accretion,
				Style:   lineStyle(1),
			},
		},
	}
	return writeLineChart(path, graph)
}

// LuminosityPlot draws every luminosity band against time, one series
// per band, with a legend.
func LuminosityPlot(h *evolution.History, path string, opt Options) error {
	if err := opt.check(); err != nil { return err }
	if err := checkHistory(h); err != nil { return err }
	if h.Bands() == 0 {
		return fmt.Errorf("history has no luminosity bands")
	}

	series := make([]chart.Series, h.Bands())
	for i, ys := range h.Luminosity {
		series[i] = chart.ContinuousSeries{
			Name:    fmt.Sprintf("band %d", i),
			XValues: h.Time,
			YValues: ys,
			Style:   lineStyle(i),
		}
	}

	graph := chart.Chart{
		Title:  "luminosity",
		Width:  opt.Width,
		Height: opt.Height,
		XAxis:  chart.XAxis{Name: "t"},
		YAxis:  chart.YAxis{Name: "L"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return writeLineChart(path, graph)
}
