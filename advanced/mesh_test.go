package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

func seededMesh(a, b, c Point) *Mesh {
	m := NewMesh()
	m.addPoint(a)
	m.addPoint(b)
	m.addPoint(c)
	m.seed()
	return m
}

// Build a mesh from explicit counterclockwise triangles, linking neighbors by
// matching edges.
func meshFromTriangles(points []Point, triangles ...[3]PointID) *Mesh {
	m := NewMesh()
	for _, p := range points {
		m.addPoint(p)
	}
	type directed struct{ a, b PointID }
	owner := make(map[directed]TriangleID)
	for _, v := range triangles {
		t := m.alloc(v, [3]TriangleID{NoTriangle, NoTriangle, NoTriangle})
		for i := 0; i < 3; i++ {
			a, b := m.tris[t].edge(i)
			owner[directed{a, b}] = t
		}
	}
	for id := range m.tris {
		for i := 0; i < 3; i++ {
			a, b := m.tris[id].edge(i)
			if n, ok := owner[directed{b, a}]; ok {
				m.tris[id].N[i] = n
			}
		}
	}
	m.hint = 0
	return m
}

// Insert a point the way the engine does, minus legalization.
func insertUnlegalized(m *Mesh, p Point) []TriangleID {
	loc := m.Locate(p)
	id := m.addPoint(p)
	switch loc.Kind {
	case Inside:
		return m.splitTriangle(loc.Triangle, id)
	case OnEdge:
		return m.splitEdge(loc.Triangle, loc.Edge, id)
	case Outside:
		return m.extendHull(loc.Triangle, loc.Edge, id)
	}
	panic("point is on a vertex")
}

func TestSeed(t *testing.T) {
	// Clockwise input
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 0, Y: 1}, Point{X: 1, Y: 0})
	require.Equal(t, 1, m.LiveCount())
	v := m.Vertices(0)
	assert.Equal(t, internal.Left, internal.Orient(m.Point(v[0]), m.Point(v[1]), m.Point(v[2])))
	assert.Equal(t, [3]TriangleID{NoTriangle, NoTriangle, NoTriangle}, m.Neighbors(0))
	assert.NoError(t, m.Validate())
	assert.ElementsMatch(t, []PointID{0, 1, 2}, m.Hull())
}

func TestSeed_Collinear(t *testing.T) {
	m := NewMesh()
	m.addPoint(Point{X: 0, Y: 0})
	m.addPoint(Point{X: 1, Y: 1})
	m.addPoint(Point{X: 2, Y: 2})
	assert.Panics(t, func() { m.seed() })
}

func TestSplitTriangle(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	p := m.addPoint(Point{X: 1, Y: 1})
	created := m.splitTriangle(0, p)

	require.Len(t, created, 3)
	assert.Equal(t, 3, m.LiveCount())
	assert.Equal(t, 4, m.Capacity())
	assert.False(t, m.isLive(0))
	for _, tri := range created {
		assert.Equal(t, 0, m.tris[tri].indexOf(p), "new point comes first in %s", m.Describe(tri))
	}
	assert.NoError(t, m.Validate())
}

func TestSplitEdge_Hull(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	loc := m.Locate(Point{X: 2, Y: 0})
	require.Equal(t, OnEdge, loc.Kind)

	created := insertUnlegalized(m, Point{X: 2, Y: 0})
	assert.Len(t, created, 2)
	assert.Equal(t, 2, m.LiveCount())
	assert.NoError(t, m.Validate())
	assert.Len(t, m.Hull(), 4)
}

func TestSplitEdge_Shared(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 3, Y: 0}, Point{X: 2, Y: 2})
	insertUnlegalized(m, Point{X: 0, Y: 2})
	require.Equal(t, 2, m.LiveCount())

	loc := m.Locate(Point{X: 1, Y: 1})
	require.Equal(t, OnEdge, loc.Kind)
	require.NotEqual(t, NoTriangle, m.tris[loc.Triangle].N[loc.Edge])

	created := insertUnlegalized(m, Point{X: 1, Y: 1})
	assert.Len(t, created, 4)
	assert.Equal(t, 4, m.LiveCount())
	assert.NoError(t, m.Validate())
}

func TestFlipEdge(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	m := meshFromTriangles(points, [3]PointID{0, 1, 2}, [3]PointID{0, 2, 3})
	require.NoError(t, m.Validate())

	// Diagonal 0-2 is opposite vertex 1 in triangle 0
	t2, u2 := m.flipEdge(0, 1)
	assert.NoError(t, m.Validate())
	assert.Equal(t, 2, m.LiveCount())
	for _, tri := range []TriangleID{t2, u2} {
		assert.GreaterOrEqual(t, m.tris[tri].indexOf(1), 0, "flipped triangles share the new diagonal")
		assert.GreaterOrEqual(t, m.tris[tri].indexOf(3), 0, "flipped triangles share the new diagonal")
	}

	// Flipping back restores the original diagonal. In t2 the diagonal is
	// opposite vertex 2.
	i := m.tris[t2].indexOf(2)
	m.flipEdge(t2, i)
	assert.NoError(t, m.Validate())
	for id := range m.tris {
		tri := TriangleID(id)
		if m.isLive(tri) {
			assert.GreaterOrEqual(t, m.tris[tri].indexOf(0), 0)
			assert.GreaterOrEqual(t, m.tris[tri].indexOf(2), 0)
		}
	}
}

func TestFlipEdge_NonConvex(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 4, Y: -1}}
	// Not convex, so not a valid mesh either; only the flip guard matters here
	m := meshFromTriangles(points, [3]PointID{0, 1, 2}, [3]PointID{0, 3, 1})

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = HandlePanicRecover(r)
			}
		}()
		m.flipEdge(0, 2)
		return nil
	}()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-convex")
}

func TestFlipEdge_Hull(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: 1})
	assert.Panics(t, func() { m.flipEdge(0, 0) })
}

func TestExtendHull_Fan(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: 1})
	insertUnlegalized(m, Point{X: 5, Y: 5})
	created := insertUnlegalized(m, Point{X: -1, Y: -1})

	assert.Len(t, created, 2, "two hull edges are visible")
	assert.NoError(t, m.Validate())
	assert.NotContains(t, m.Hull(), PointID(0), "the old corner is now inside")
}

func TestHull_CounterClockwise(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 4, Y: 4})
	insertUnlegalized(m, Point{X: 0, Y: 4})
	insertUnlegalized(m, Point{X: 2, Y: 2})
	insertUnlegalized(m, Point{X: 2, Y: 0})

	hull := m.Hull()
	require.Len(t, hull, 5)
	for i := range hull {
		a := m.Point(hull[i])
		b := m.Point(hull[internal.CircularIndex(i+1, len(hull))])
		c := m.Point(hull[internal.CircularIndex(i+2, len(hull))])
		assert.NotEqual(t, internal.Right, internal.Orient(a, b, c))
	}
}

func TestRollback(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	insertUnlegalized(m, Point{X: 1, Y: 1})
	insertUnlegalized(m, Point{X: 5, Y: 5})
	before := m.clone()

	m.begin()
	insertUnlegalized(m, Point{X: 0.5, Y: 0.5})
	insertUnlegalized(m, Point{X: 2, Y: 0})
	insertUnlegalized(m, Point{X: -3, Y: 1})
	require.NotEqual(t, before.LiveCount(), m.LiveCount())
	m.rollback()

	assert.Equal(t, before, m)
	assert.NoError(t, m.Validate())
}

func TestRollback_NoJournal(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	before := m.clone()
	m.rollback()
	assert.Equal(t, before, m)
}

func TestCompact(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 0, Y: 10})
	for _, p := range []Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 3}, {X: 12, Y: 12}, {X: 3, Y: 3}} {
		insertUnlegalized(m, p)
	}
	live := m.LiveCount()
	hull := m.Hull()
	require.Greater(t, m.Capacity(), live)

	remap := m.Compact()
	assert.Equal(t, live, m.LiveCount())
	assert.Equal(t, live, m.Capacity())
	assert.NoError(t, m.Validate())
	assert.ElementsMatch(t, hull, m.Hull())
	assert.Equal(t, NoTriangle, remap[0], "the seed triangle was retired")

	seen := make(map[TriangleID]bool)
	for _, n := range remap {
		if n == NoTriangle {
			continue
		}
		assert.False(t, seen[n], "handle %d assigned twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, live)
}

func TestCompact_DuringInsertion(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	m.begin()
	assert.Panics(t, func() { m.Compact() })
}

func TestRetire_Dead(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	m.retire(0)
	assert.Panics(t, func() { m.retire(0) })
}

func TestDescribe(t *testing.T) {
	m := seededMesh(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})
	assert.Contains(t, m.Describe(0), "(0 1 2 | -1 -1 -1)")
	assert.Contains(t, m.Describe(NoTriangle), "Ø")
}
