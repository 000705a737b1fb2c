package projection

import (
	"image/color"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mogaika/figure_viewer/figure"
)

const DefaultPNGSize = 6 * vg.Inch

var cubeColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

func (c *Canonical) screenLine(points ...mgl32.Vec3) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		s := NDC(p, c.Camera)
		xys[i] = plotter.XY{X: float64(s[0]), Y: float64(s[1])}
	}
	return plotter.NewLine(xys)
}

// WritePNG renders the canonical view wireframe as seen by its orthographic camera.
// Triangles with non-finite coordinates are skipped.
func (c *Canonical) WritePNG(w io.Writer, palette figure.Palette, size vg.Length) error {
	p := plot.New()
	p.Title.Text = "canonical view"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = -1.25, 1.25
	p.Y.Min, p.Y.Max = -1.25, 1.25

	for _, edge := range c.Edges {
		line, err := c.screenLine(edge[0], edge[1])
		if err != nil {
			return errors.Wrapf(err, "Cube edge %v", edge)
		}
		line.Color = cubeColor
		line.Width = vg.Points(1)
		p.Add(line)
	}

	for _, tri := range c.Triangles() {
		line, err := c.screenLine(tri.Points[0], tri.Points[1], tri.Points[2], tri.Points[0])
		if err != nil {
			continue
		}
		line.Color = palette.Color(tri.Material)
		line.Width = vg.Points(0.5)
		p.Add(line)
	}

	wt, err := p.WriterTo(size, size, "png")
	if err != nil {
		return errors.Wrap(err, "Failed to render canonical view")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "Failed to write png")
	}
	return nil
}
