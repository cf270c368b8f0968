package advanced

// This contains no actual tests. It is just a helper for checking that an
// engine holds a valid Delaunay triangulation.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/dbg"
	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// The rules are:
// 1. The mesh passes its own structural checks (winding, links, Euler count).
// 2. No point is strictly inside any triangle's circumcircle.
// 3. Every point is a vertex of some triangle.
// 4. The triangles exactly cover the convex hull, by area.
func AssertValidDelaunay(t *testing.T, e *Engine) {
	t.Helper()
	s := e.Snapshot()
	structural := e.Validate()
	delaunay := e.ValidateDelaunay()
	if debug && (structural != nil || delaunay != nil) {
		s.dbgDraw(dbgScale(s))
	}
	require.NoError(t, structural)
	require.NoError(t, delaunay)
	if len(s.Triangles) == 0 {
		return
	}

	used := make([]bool, len(s.Points))
	var triangleArea float64
	for _, tri := range s.Triangles {
		for _, v := range tri.V {
			used[v] = true
		}
		triangleArea += internal.SignedArea(s.Points[tri.V[0]], s.Points[tri.V[1]], s.Points[tri.V[2]]) / 2
	}
	for p, ok := range used {
		require.True(t, ok, "point %d is not in any triangle", p)
	}

	hull := s.Hull()
	var hullArea float64
	for i := 1; i+1 < len(hull); i++ {
		hullArea += internal.SignedArea(s.Points[hull[0]], s.Points[hull[i]], s.Points[hull[i+1]]) / 2
	}
	require.InDelta(t, hullArea, triangleArea, 1e-9*math.Max(1, hullArea), "triangles must cover the hull: %s", dbg.Dump(hull))
}

// Scale that makes the render about 600 pixels across.
func dbgScale(s *Snapshot) float64 {
	size := math.Max(s.Bounds.X.Length(), s.Bounds.Y.Length())
	if size == 0 {
		return 1
	}
	return 600 / size
}
