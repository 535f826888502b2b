package reporting

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/activecm/flowmon/pkg/flowstats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartRows = 2
	chartCols = 2

	// DefaultChartDPI is the resolution used when ChartOptions.DPI is unset
	DefaultChartDPI = 300
)

//ChartOptions controls the title and canvas size of the summary chart
type ChartOptions struct {
	Title string
	// Width and Height are in inches
	Width  float64
	Height float64
	DPI    int
}

// chartPanel describes one of the four metric panels
type chartPanel struct {
	title  string
	ylabel string
	value  func(*flowstats.AggregateResult) float64
}

var chartPanels = [chartRows * chartCols]chartPanel{
	{
		title:  "Lost clients",
		ylabel: "Lost client ratio (%)",
		value:  func(r *flowstats.AggregateResult) float64 { return r.LostClientRatio },
	},
	{
		title:  "Packet loss",
		ylabel: "Packet loss rate (%)",
		value:  func(r *flowstats.AggregateResult) float64 { return r.PacketLossRate },
	},
	{
		title:  "Throughput",
		ylabel: "Average throughput (Kbps)",
		value:  func(r *flowstats.AggregateResult) float64 { return r.AvgThroughputKbps() },
	},
	{
		title:  "Received packets",
		ylabel: "Total RX packets",
		value:  func(r *flowstats.AggregateResult) float64 { return float64(r.TotalRxPackets) },
	},
}

// SaveChart renders the summary chart of results into a PNG file at path
func SaveChart(path string, results []*flowstats.AggregateResult, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WriteChart(f, results, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteChart renders a 2x2 grid of metric panels, each plotted against the
// node count, as PNG into w. Results are plotted in the order given.
func WriteChart(w io.Writer, results []*flowstats.AggregateResult, opts ChartOptions) error {
	if len(results) == 0 {
		return errors.New("no results to chart")
	}

	plots := make([][]*plot.Plot, chartRows)
	for j := 0; j < chartRows; j++ {
		plots[j] = make([]*plot.Plot, chartCols)
		for i := 0; i < chartCols; i++ {
			idx := j*chartCols + i
			p, err := newPanel(chartPanels[idx], idx, results)
			if err != nil {
				return err
			}
			plots[j][i] = p
		}
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultChartDPI
	}
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	dc := draw.New(img)

	titleStyle := plots[0][0].Title.TextStyle
	titleStyle.Font.Size = vg.Points(18)
	titleHeight := titleStyle.Height(opts.Title)

	t := draw.Tiles{
		Rows:      chartRows,
		Cols:      chartCols,
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
		PadTop:    titleHeight + vg.Millimeter*6,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}

	canvases := plot.Align(plots, t, dc)
	for j := 0; j < chartRows; j++ {
		for i := 0; i < chartCols; i++ {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if opts.Title != "" {
		dc.FillText(titleStyle, vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Millimeter*3}, opts.Title)
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

func newPanel(panel chartPanel, idx int, results []*flowstats.AggregateResult) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(results))
	for i, res := range results {
		pts[i].X = float64(res.NumNodes)
		pts[i].Y = panel.value(res)
	}

	p := plot.New()
	p.Title.Text = panel.title
	p.X.Label.Text = "Number of nodes"
	p.Y.Label.Text = panel.ylabel

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(idx)
	line.Width = vg.Points(2)
	points.Color = plotutil.Color(idx)
	points.Shape = plotutil.Shape(idx)

	p.Add(plotter.NewGrid(), line, points)

	// both axes start at zero, flat zero series still get a visible range
	p.X.Min = 0
	p.Y.Min = 0
	if p.X.Max <= 0 {
		p.X.Max = 1
	}
	if p.Y.Max <= 0 {
		p.Y.Max = 1
	}
	return p, nil
}

func n(n int) string {
	return strconv.Itoa(n)
}
