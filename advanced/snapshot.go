package advanced

import (
	"sync"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// Triangle is a live triangle as seen by a snapshot. Vertices wind
// counterclockwise, and Neighbors[i] is across the edge opposite V[i], or
// NoTriangle on the hull.
type Triangle struct {
	ID        TriangleID
	V         [3]PointID
	Neighbors [3]TriangleID
}

// Snapshot is an immutable copy of the triangulation at one point in time. It
// shares nothing with the engine, so any number of goroutines may read it
// while insertions carry on. Its exported slices must not be modified.
type Snapshot struct {
	// Engine version the snapshot was taken at.
	Version   uint64
	Points    []Point
	Triangles []Triangle
	Bounds    r2.Rect

	hull     []PointID
	byID     map[TriangleID]int
	pointTri []TriangleID

	sliverTolerance float64
	logger          *zap.Logger

	centersOnce sync.Once
	centers     []Point
	centerOK    []bool
}

func newSnapshot(m *Mesh, version uint64, sliverTolerance float64, logger *zap.Logger) *Snapshot {
	s := &Snapshot{
		Version:         version,
		Points:          append([]Point(nil), m.points...),
		Triangles:       make([]Triangle, 0, m.live),
		Bounds:          r2.EmptyRect(),
		byID:            make(map[TriangleID]int, m.live),
		pointTri:        append([]TriangleID(nil), m.pointTri...),
		sliverTolerance: sliverTolerance,
		logger:          logger,
	}
	for id, tri := range m.tris {
		if tri.dead {
			continue
		}
		s.byID[TriangleID(id)] = len(s.Triangles)
		s.Triangles = append(s.Triangles, Triangle{ID: TriangleID(id), V: tri.V, Neighbors: tri.N})
	}
	for _, p := range s.Points {
		s.Bounds = s.Bounds.AddPoint(p)
	}
	if m.seeded() {
		s.hull = m.Hull()
	}
	return s
}

func (s *Snapshot) Len() int {
	return len(s.Points)
}

// Triangle looks up a live triangle by handle.
func (s *Snapshot) Triangle(id TriangleID) (Triangle, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Triangle{}, false
	}
	return s.Triangles[i], true
}

// IterateTriangles yields every live triangle in handle order.
func (s *Snapshot) IterateTriangles() chan Triangle {
	ch := make(chan Triangle)
	go func() {
		for _, t := range s.Triangles {
			ch <- t
		}
		close(ch)
	}()
	return ch
}

// Hull returns the convex hull as point ids in counterclockwise order,
// including points in the middle of straight runs. Empty before seeding.
func (s *Snapshot) Hull() []PointID {
	return append([]PointID(nil), s.hull...)
}

// Circumcenter of a live triangle. The second result is false for slivers, in
// which case the point is the triangle's centroid.
func (s *Snapshot) Circumcenter(id TriangleID) (Point, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Point{}, false
	}
	s.computeCenters()
	return s.centers[i], s.centerOK[i]
}

func (s *Snapshot) computeCenters() {
	s.centersOnce.Do(func() {
		s.centers = make([]Point, len(s.Triangles))
		s.centerOK = make([]bool, len(s.Triangles))
		for i, t := range s.Triangles {
			a, b, c := s.Points[t.V[0]], s.Points[t.V[1]], s.Points[t.V[2]]
			s.centers[i], s.centerOK[i] = internal.Circumcenter(a, b, c, s.sliverTolerance)
			if !s.centerOK[i] {
				s.logger.Warn("degenerate triangle has no circumcenter",
					zap.Int("triangle", int(t.ID)),
					zap.Float64("sliverness", internal.Sliverness(a, b, c)),
				)
			}
		}
	})
}

// Index of p in t, and t's neighbors across the two edges through p. ccw is
// the next triangle going counterclockwise around p, cw the previous one.
func (s *Snapshot) around(t Triangle, p PointID) (j int, ccw, cw TriangleID) {
	for j = 0; j < 3; j++ {
		if t.V[j] == p {
			return j, t.Neighbors[next(j)], t.Neighbors[prev(j)]
		}
	}
	fatalf("triangle %d is not incident to point %d", t.ID, p)
	return
}
