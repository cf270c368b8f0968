package advanced

import (
	"fmt"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

type Point = internal.Point

// PointID is the insertion index of a point. Points are never removed, so an
// id is valid for the lifetime of the engine.
type PointID int

// TriangleID is a handle into the mesh's triangle arena. A handle keeps
// referring to the same three vertices until the triangle is retired by a
// split or a flip; retired handles are only recycled by Compact.
type TriangleID int

const (
	NoPoint    PointID    = -1
	NoTriangle TriangleID = -1 // outer face
)

// Triangles wind counterclockwise. N[i] is the neighbor across the edge
// opposite V[i], that is the edge V[i+1] -> V[i+2], or NoTriangle if that edge
// is on the convex hull.
type triangle struct {
	V    [3]PointID
	N    [3]TriangleID
	dead bool
}

func next(i int) int {
	return internal.CircularIndex(i+1, 3)
}

func prev(i int) int {
	return internal.CircularIndex(i-1, 3)
}

// Index of the vertex p, or -1.
func (t *triangle) indexOf(p PointID) int {
	for i, v := range t.V {
		if v == p {
			return i
		}
	}
	return -1
}

// Index of the edge shared with neighbor n, or -1. Never use this to look for
// NoTriangle, which can appear more than once.
func (t *triangle) neighborIndex(n TriangleID) int {
	for i, neighbor := range t.N {
		if neighbor == n {
			return i
		}
	}
	return -1
}

// Endpoints of edge i, in counterclockwise order.
func (t *triangle) edge(i int) (PointID, PointID) {
	return t.V[next(i)], t.V[prev(i)]
}

func (t *triangle) onHull() bool {
	return t.N[0] == NoTriangle || t.N[1] == NoTriangle || t.N[2] == NoTriangle
}

func (t *triangle) String() string {
	return fmt.Sprintf("(%d %d %d | %d %d %d)", t.V[0], t.V[1], t.V[2], t.N[0], t.N[1], t.N[2])
}
