// Incremental 2D Delaunay triangulation with Voronoi extraction.
//
// Points are inserted one at a time. After every insertion the mesh is a valid
// Delaunay triangulation of the points so far, and immutable snapshots of it
// can be handed to other goroutines for rendering or Voronoi queries. The
// engine itself lives in the advanced package; this package is the short path
// for the common cases.
package delaunay

import "github.com/gorkemerdogan/DelaunayVoronoiCreator/advanced"

type Point = advanced.Point
type PointID = advanced.PointID
type TriangleID = advanced.TriangleID
type Triangle = advanced.Triangle
type Cell = advanced.Cell
type Edge = advanced.Edge
type Snapshot = advanced.Snapshot
type Engine = advanced.Engine
type InsertResult = advanced.InsertResult
type Option = advanced.Option

type CollinearSeedError = advanced.CollinearSeedError
type DuplicatePointError = advanced.DuplicatePointError
type InvalidPointError = advanced.InvalidPointError
type DegenerateGeometryWarning = advanced.DegenerateGeometryWarning

const (
	NoPoint    = advanced.NoPoint
	NoTriangle = advanced.NoTriangle
)

var (
	WithEpsilon         = advanced.WithEpsilon
	WithSliverTolerance = advanced.WithSliverTolerance
	WithLogger          = advanced.WithLogger
	WithValidation      = advanced.WithValidation
)

// New starts a triangulation from three non-collinear seed points.
func New(a, b, c Point, options ...Option) (*Engine, error) {
	return advanced.NewEngine(a, b, c, options...)
}

// NewEmpty starts a triangulation with no points. The first three points
// inserted become the seed triangle.
func NewEmpty(options ...Option) *Engine {
	return advanced.NewEmptyEngine(options...)
}

// Triangulate a whole point set at once and return a snapshot of the result.
// Duplicate points are dropped. Fails if every point is collinear.
func Triangulate(points []Point, options ...Option) (result *Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = advanced.HandlePanicRecover(r)
		}
	}()
	e, _, err := advanced.Build(points, options...)
	if err != nil {
		return nil, err
	}
	return e.Snapshot(), nil
}
