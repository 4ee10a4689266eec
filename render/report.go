package render

import (
	"fmt"
	"html/template"
	"math"
	"os"
	"time"

	"github.com/phil-mansfield/diskjet/evolution"
	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/region"
	"github.com/phil-mansfield/diskjet/stats"
	"github.com/phil-mansfield/diskjet/units"
)

// Image is a rendered figure embedded in the report by relative path,
// so the report and its figures stay portable as a directory.
type Image struct {
	Src, Caption string
}

// RegionHist is the binned density distribution of one region. Blocks
// shown together should share their binning so the rows line up.
type RegionHist struct {
	Region string
	Hist   *stats.Histogram
}

// Report collects everything the HTML report shows. Grid, Thresholds,
// and Summaries are required; History, DensityHists, and Images may be
// left empty and their sections drop out.
type Report struct {
	SnapshotDir  string
	Grid         *field.Grid
	Thresholds   region.Thresholds
	StarMass     float64
	Summaries    []stats.Summary
	History      *evolution.History
	DensityHists []RegionHist
	Images       []Image
}

type reportPage struct {
	Generated   string
	SnapshotDir string
	GridDesc    string
	CellDesc    string
	ExtentDesc  string
	StarDesc    string
	HistoryDesc string
	Th          []nameValue
	Rows        []summaryRow
	HistBlocks  []histBlock
	Images      []Image
}

type nameValue struct {
	Name, Value string
}

type summaryRow struct {
	Region, Cells, Area     string
	VMean, VStd, VMin, VMax string
	RhoMed, RhoIQR          string
}

type histBlock struct {
	Region string
	Rows   []histRow
}

type histRow struct {
	Label  string
	Count  int
	BarPct int
}

// WriteReport renders the report to path.
func WriteReport(path string, r *Report) error {
	if r.Grid == nil {
		return fmt.Errorf("report needs a grid")
	}

	f, err := os.Create(path)
	if err != nil { return err }
	if err := reportTmpl.Execute(f, buildPage(r)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildPage(r *Report) *reportPage {
	g := r.Grid
	dx, dz := g.CellSize()
	x0, x1, z0, z1 := g.Extent()

	page := &reportPage{
		Generated:   time.Now().Format("2006-01-02 15:04:05"),
		SnapshotDir: r.SnapshotDir,
		GridDesc:    fmt.Sprintf("%d x %d cells", g.Nx(), g.Nz()),
		CellDesc:    fmt.Sprintf("%.4g x %.4g AU", dx, dz),
		ExtentDesc: fmt.Sprintf(
			"x in [%.4g, %.4g] AU, z in [%.4g, %.4g] AU", x0, x1, z0, z1,
		),
		StarDesc: fmt.Sprintf("%.6g solar masses", r.StarMass),
		Images:   r.Images,
	}

	if r.History != nil {
		page.HistoryDesc = fmt.Sprintf(
			"%d rows, %d luminosity bands",
			r.History.Len(), r.History.Bands(),
		)
	}

	th := r.Thresholds
	page.Th = []nameValue{
		{"jet velocity", fmt.Sprintf(
			"v_r > %.3g cm/s (%.2f km/s)",
			th.JetVelocity, th.JetVelocity*units.CmKm,
		)},
		{"jet density", fmt.Sprintf("rho < %.3g g/cm^3", th.JetDensity)},
		{"infall velocity", fmt.Sprintf(
			"v_r < %.3g cm/s (%.2f km/s)",
			th.InfallVelocity, th.InfallVelocity*units.CmKm,
		)},
		{"disk density", fmt.Sprintf("rho > %.3g g/cm^3", th.DiskDensity)},
	}

	for _, s := range r.Summaries {
		page.Rows = append(page.Rows, newSummaryRow(s))
	}

	for _, rh := range r.DensityHists {
		if rh.Hist == nil || rh.Hist.Total() == 0 { continue }
		page.HistBlocks = append(page.HistBlocks, newHistBlock(rh))
	}

	return page
}

func newHistBlock(rh RegionHist) histBlock {
	maxCount := 0
	for _, c := range rh.Hist.Counts {
		if c > maxCount { maxCount = c }
	}

	block := histBlock{Region: rh.Region}
	for i, c := range rh.Hist.Counts {
		block.Rows = append(block.Rows, histRow{
			Label:  fmt.Sprintf("%.3g", rh.Hist.Centers[i]),
			Count:  c,
			BarPct: c * 100 / maxCount,
		})
	}
	return block
}

func newSummaryRow(s stats.Summary) summaryRow {
	return summaryRow{
		Region: s.Class.String(),
		Cells:  fmt.Sprintf("%d", s.N),
		Area:   fmt.Sprintf("%.1f%%", s.AreaPct),
		VMean:  kms(s.VMean),
		VStd:   kms(s.VStd),
		VMin:   kms(s.VMin),
		VMax:   kms(s.VMax),
		RhoMed: sci(s.RhoMedian),
		RhoIQR: quartiles(s.RhoP25, s.RhoP75),
	}
}

func sci(x float64) string {
	if math.IsNaN(x) { return "no data" }
	return fmt.Sprintf("%.3g", x)
}

func kms(x float64) string {
	if math.IsNaN(x) { return "no data" }
	return fmt.Sprintf("%.2f", x*units.CmKm)
}

func quartiles(p25, p75 float64) string {
	if math.IsNaN(p25) || math.IsNaN(p75) { return "no data" }
	return fmt.Sprintf("%.3g to %.3g", p25, p75)
}

var reportTmpl = template.Must(template.New("report").Parse(reportText))

const reportText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>disk/jet analysis</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 60em; }
table { border-collapse: collapse; margin: 1em 0; }
td, th { border: 1px solid #999; padding: 0.3em 0.6em; text-align: right; }
th { background: #eee; }
td.l, th.l { text-align: left; }
.bar { background: #1f77b4; height: 0.8em; }
img { max-width: 100%; margin: 0.5em 0; }
</style>
</head>
<body>
<h1>disk/jet analysis</h1>
<p>snapshot {{.SnapshotDir}} &middot; generated {{.Generated}}</p>

<h2>run</h2>
<table>
<tr><th class="l">grid</th><td>{{.GridDesc}}</td></tr>
<tr><th class="l">cell size</th><td>{{.CellDesc}}</td></tr>
<tr><th class="l">extent</th><td>{{.ExtentDesc}}</td></tr>
<tr><th class="l">star mass</th><td>{{.StarDesc}}</td></tr>
{{if .HistoryDesc}}<tr><th class="l">evolution table</th><td>{{.HistoryDesc}}</td></tr>
{{end}}</table>

<h2>thresholds</h2>
<table>
<tr><th class="l">cut</th><th class="l">value</th></tr>
{{range .Th}}<tr><td class="l">{{.Name}}</td><td class="l">{{.Value}}</td></tr>
{{end}}</table>

<h2>regions</h2>
<table>
<tr><th class="l">region</th><th>cells</th><th>area</th><th>v mean [km/s]</th><th>v std [km/s]</th><th>v min [km/s]</th><th>v max [km/s]</th><th>rho median [g/cm^3]</th><th>rho quartiles</th></tr>
{{range .Rows}}<tr><td class="l">{{.Region}}</td><td>{{.Cells}}</td><td>{{.Area}}</td><td>{{.VMean}}</td><td>{{.VStd}}</td><td>{{.VMin}}</td><td>{{.VMax}}</td><td>{{.RhoMed}}</td><td>{{.RhoIQR}}</td></tr>
{{end}}</table>

{{if .HistBlocks}}<h2>density distribution</h2>
{{range .HistBlocks}}<h3>{{.Region}}</h3>
<table>
<tr><th>rho [g/cm^3]</th><th>cells</th><th class="l" style="min-width: 20em"></th></tr>
{{range .Rows}}<tr><td>{{.Label}}</td><td>{{.Count}}</td><td class="l"><div class="bar" style="width: {{.BarPct}}%"></div></td></tr>
{{end}}</table>
{{end}}{{end}}
{{range .Images}}<h2>{{.Caption}}</h2>
<img src="{{.Src}}" alt="{{.Caption}}">
{{end}}</body>
</html>
`
