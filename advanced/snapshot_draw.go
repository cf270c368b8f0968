package advanced

import (
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// Padding around the points so hull rays have somewhere to go
const drawPadding = 40

// Set DELAUNAY_DEBUG to have tests print renders of failing meshes inline
// (iTerm only).
var debug = os.Getenv("DELAUNAY_DEBUG") != ""

// SavePNG renders the snapshot: triangles in blue, Voronoi edges in green,
// points in red. scale is pixels per unit.
func (s *Snapshot) SavePNG(path string, scale float64) error {
	if scale <= 0 {
		return errors.Errorf("scale must be positive, got %v", scale)
	}
	c := s.render(scale)
	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

func (s *Snapshot) render(scale float64) *gg.Context {
	bounds := s.Bounds
	if bounds.IsEmpty() {
		bounds = bounds.AddPoint(Point{})
	}
	width := int(scale*bounds.X.Length()) + drawPadding*2
	height := int(scale*bounds.Y.Length()) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bounds.X.Lo, -bounds.Y.Lo)

	// Line widths are in user space, which has just been scaled
	c.SetLineWidth(1 / scale)
	c.SetRGB(0.3, 0.5, 1)
	for t := range s.IterateTriangles() {
		for i, v := range t.V {
			p := s.Points[v]
			if i == 0 {
				c.MoveTo(p.X, p.Y)
			} else {
				c.LineTo(p.X, p.Y)
			}
		}
		c.ClosePath()
		c.Stroke()
	}

	rayLength := float64(width+height) / scale
	c.SetRGB(0.2, 0.9, 0.3)
	for _, e := range s.VoronoiEdges() {
		to := e.To
		if e.Unbounded {
			to = e.From.Add(e.Ray.Mul(rayLength))
		}
		c.DrawLine(e.From.X, e.From.Y, to.X, to.Y)
		c.Stroke()
	}

	c.SetRGB(1, 0.2, 0.2)
	for _, p := range s.Points {
		c.DrawCircle(p.X, p.Y, 3/scale)
		c.Fill()
	}
	return c
}

// Helper to draw and print a snapshot in the terminal (iTerm only) for
// debugging.
func (s *Snapshot) dbgDraw(scale float64) {
	path := filepath.Join(os.TempDir(), "delaunay.png")
	if err := s.SavePNG(path, scale); err != nil {
		panic(err)
	}
	imgcat.CatFile(path, os.Stdout)
}
