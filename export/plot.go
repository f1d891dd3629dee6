package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/hupe1980/svmgo"
	"github.com/hupe1980/svmgo/model"
	"github.com/hupe1980/svmgo/vector"
)

var (
	positiveColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	negativeColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	supportColor  = color.RGBA{A: 255}
)

// PlotConfig controls Plot and WritePlot.
type PlotConfig struct {
	Title string
	// Width and Height of the rendered image.
	Width, Height vg.Length
	// Region is sampled for the decision heat map of nonlinear models.
	Region GridConfig
}

// DefaultPlotConfig returns a 16cm square plot with a 200×200 heat map over
// [-4.5, 4.5]².
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Title:  "SVM result",
		Width:  16 * vg.Centimeter,
		Height: 16 * vg.Centimeter,
		Region: GridConfig{Slices: 200, Low: -4.5, High: 4.5},
	}
}

// Plot renders the samples of the two-dimensional model m. Trained linear
// models get the decision line and the two margin lines; other trained
// models get a heat map of the classification over cfg.Region.
func Plot(m *svmgo.Model, cfg PlotConfig) (*plot.Plot, error) {
	if m.Dimension() != 2 {
		return nil, fmt.Errorf("%w: dimension %d", ErrNotPlanar, m.Dimension())
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if m.IsTrained() {
		if plane, err := m.Plane(); err == nil {
			if err := addPlane(p, plane, sampleBounds(m.Samples())); err != nil {
				return nil, err
			}
		} else {
			if err := cfg.Region.validate(); err != nil {
				return nil, err
			}
			hm := plotter.NewHeatMap(newDecisionGrid(m, cfg.Region), palette.Heat(3, 0.25))
			hm.Min, hm.Max = -1, 1
			p.Add(hm)
		}
	}

	var pos, neg, sv plotter.XYs
	support := m.SupportVectors()
	for i, s := range m.Samples() {
		pt := plotter.XY{X: s.Features.At(0), Y: s.Features.At(1)}
		if s.Label == model.Positive {
			pos = append(pos, pt)
		} else {
			neg = append(neg, pt)
		}
		if support.Contains(i) {
			sv = append(sv, pt)
		}
	}

	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"+1", pos, positiveColor, draw.CircleGlyph{}},
		{"-1", neg, negativeColor, draw.CircleGlyph{}},
		{"support", sv, supportColor, draw.RingGlyph{}},
	} {
		if len(series.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(series.xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = series.color
		s.GlyphStyle.Shape = series.shape
		s.GlyphStyle.Radius = vg.Points(2.5)
		if series.name == "support" {
			s.GlyphStyle.Radius = vg.Points(4)
		}
		p.Add(s)
		p.Legend.Add(series.name, s)
	}

	return p, nil
}

// WritePlot renders Plot(m, cfg) to w. Format is one of the extensions
// gonum/plot understands, e.g. "png", "svg" or "pdf".
func WritePlot(w io.Writer, m *svmgo.Model, cfg PlotConfig, format string) error {
	p, err := Plot(m, cfg)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(cfg.Width, cfg.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func sampleBounds(samples []model.Sample) bounds {
	b := bounds{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
	for _, s := range samples {
		x, y := s.Features.At(0), s.Features.At(1)
		b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
		b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
	}
	return b
}

// addPlane draws w·x + b = 0 and w·x + b = ±1 across the sample bounds.
func addPlane(p *plot.Plot, plane svmgo.SegmentPlane, b bounds) error {
	w0, w1 := plane.Weight.At(0), plane.Weight.At(1)
	if w0 == 0 && w1 == 0 {
		return nil
	}

	// segment returns the line where w·x + bias = level, solved for the
	// coordinate with the larger weight.
	segment := func(level float64) plotter.XYs {
		c := plane.Bias - level
		if math.Abs(w1) >= math.Abs(w0) {
			return plotter.XYs{
				{X: b.minX, Y: -(w0*b.minX + c) / w1},
				{X: b.maxX, Y: -(w0*b.maxX + c) / w1},
			}
		}
		return plotter.XYs{
			{X: -(w1*b.minY + c) / w0, Y: b.minY},
			{X: -(w1*b.maxY + c) / w0, Y: b.maxY},
		}
	}

	for _, level := range []float64{0, -1, 1} {
		l, err := plotter.NewLine(segment(level))
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1)
		if level != 0 {
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		} else {
			p.Legend.Add("boundary", l)
		}
		p.Add(l)
	}
	return nil
}

// decisionGrid implements plotter.GridXYZ over the classification of a model.
type decisionGrid struct {
	cfg GridConfig
	z   []float64
}

func newDecisionGrid(m *svmgo.Model, cfg GridConfig) *decisionGrid {
	g := &decisionGrid{cfg: cfg, z: make([]float64, cfg.Slices*cfg.Slices)}
	for c := range cfg.Slices {
		for r := range cfg.Slices {
			g.z[c*cfg.Slices+r] = float64(m.Classify(vector.Of(g.X(c), g.Y(r))))
		}
	}
	return g
}

func (g *decisionGrid) Dims() (c, r int) { return g.cfg.Slices, g.cfg.Slices }

func (g *decisionGrid) Z(c, r int) float64 { return g.z[c*g.cfg.Slices+r] }

func (g *decisionGrid) X(c int) float64 { return g.cfg.At(c) }

func (g *decisionGrid) Y(r int) float64 { return g.cfg.At(r) }
