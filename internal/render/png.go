package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/leveldump/internal/dump"
)

// PNG draws levels as a gonum/plot scatter chart and writes it to w as PNG.
func PNG(w io.Writer, levels dump.Levels, opts Options) error {
	p, err := newScatterPlot(levels, opts)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Length(opts.WidthInches)*vg.Inch, vg.Length(opts.HeightInches)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func newScatterPlot(levels dump.Levels, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	layers := Layers(levels, opts.BaseSize)
	colors := palette(len(layers))

	for i, layer := range layers {
		xys := make(plotter.XYs, len(layer.Points))
		for j, pt := range layer.Points {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layer.Label, err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = colors[i]
		s.GlyphStyle.Radius = vg.Points(layer.Radius(opts.MaxRadius))

		p.Add(s)
		p.Legend.Add(layer.Label, s)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}
