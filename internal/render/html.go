package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/leveldump/internal/dump"
)

const pixelsPerInch = 96

// HTML draws levels as an interactive go-echarts scatter chart and writes the
// page to w.
func HTML(w io.Writer, levels dump.Levels, o Options) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     fmt.Sprintf("%dpx", int(o.WidthInches*pixelsPerInch)),
			Height:    fmt.Sprintf("%dpx", int(o.HeightInches*pixelsPerInch)),
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: fmt.Sprintf("levels=%d points=%d", len(levels), levels.PointCount())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y", NameLocation: "middle", NameGap: 30}),
	)

	layers := Layers(levels, o.BaseSize)
	colors := palette(len(layers))

	for i, layer := range layers {
		data := make([]opts.ScatterData, len(layer.Points))
		for j, pt := range layer.Points {
			data[j] = opts.ScatterData{Value: []interface{}{pt.X, pt.Y}}
		}
		// ECharts sizes symbols by diameter in pixels.
		symbolSize := int(math.Round(2 * layer.Radius(o.MaxRadius) * pixelsPerInch / 72))
		scatter.AddSeries(layer.Label, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbolSize}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
