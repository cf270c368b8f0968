package advanced

import (
	"math"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

type LocateKind int

const (
	Inside LocateKind = iota
	OnEdge
	OnVertex
	Outside
)

func (k LocateKind) String() string {
	switch k {
	case Inside:
		return "inside"
	case OnEdge:
		return "on edge"
	case OnVertex:
		return "on vertex"
	case Outside:
		return "outside"
	}
	return "unknown"
}

// Location is the answer to a point location query.
//
//   - Inside: Triangle strictly contains the point.
//   - OnEdge: the point lies on the open edge Edge of Triangle.
//   - OnVertex: the point is exactly vertex Edge of Triangle.
//   - Outside: the point is outside the hull, and strictly right of the hull
//     edge Edge of Triangle.
type Location struct {
	Kind     LocateKind
	Triangle TriangleID
	Edge     int
	// Number of triangles the walk stepped through.
	Steps int
	// The walk gave up and a linear scan answered instead.
	Scanned bool
}

// Locate finds the triangle containing p by walking from the hint triangle
// towards p, crossing any edge that has p strictly on its far side. The edge
// tested first rotates with every step, which keeps the walk from cycling on
// most inputs. If the walk runs long, it starts remembering where it has
// been, and a repeat visit drops to a linear scan.
func (m *Mesh) Locate(p Point) Location {
	t := m.hint
	if !m.isLive(t) {
		t = m.anyLive()
	}
	if t == NoTriangle {
		fatalf("cannot locate %v in an empty mesh", p)
	}

	limit := 4*int(math.Sqrt(float64(m.live))) + 16
	var visited map[TriangleID]struct{}

	for steps := 0; ; steps++ {
		if steps > limit {
			if visited == nil {
				visited = make(map[TriangleID]struct{})
			}
			if _, ok := visited[t]; ok {
				loc := m.scan(p)
				loc.Steps = steps
				return loc
			}
			visited[t] = struct{}{}
		}

		tri := &m.tris[t]
		moved := false
		for k := 0; k < 3; k++ {
			i := internal.CircularIndex(k+steps, 3)
			a, b := tri.edge(i)
			if internal.Orient(m.points[a], m.points[b], p) != internal.Right {
				continue
			}
			if tri.N[i] == NoTriangle {
				return Location{Kind: Outside, Triangle: t, Edge: i, Steps: steps}
			}
			t = tri.N[i]
			moved = true
			break
		}
		if !moved {
			loc := m.classify(t, p)
			loc.Steps = steps
			return loc
		}
	}
}

// Classify a point known not to be strictly outside any edge of t.
func (m *Mesh) classify(t TriangleID, p Point) Location {
	tri := &m.tris[t]
	var onEdges []int
	for i := 0; i < 3; i++ {
		a, b := tri.edge(i)
		if internal.Orient(m.points[a], m.points[b], p) == internal.Collinear {
			onEdges = append(onEdges, i)
		}
	}
	switch len(onEdges) {
	case 0:
		return Location{Kind: Inside, Triangle: t}
	case 1:
		return Location{Kind: OnEdge, Triangle: t, Edge: onEdges[0]}
	}
	// Two edges meet at the vertex that is opposite neither of them
	return Location{Kind: OnVertex, Triangle: t, Edge: 3 - onEdges[0] - onEdges[1]}
}

// Slow but sure point location.
func (m *Mesh) scan(p Point) Location {
	for id := range m.tris {
		t := TriangleID(id)
		if !m.isLive(t) || m.strictlyOutside(t, p) >= 0 {
			continue
		}
		loc := m.classify(t, p)
		loc.Scanned = true
		return loc
	}
	for id := range m.tris {
		t := TriangleID(id)
		if !m.isLive(t) {
			continue
		}
		tri := &m.tris[t]
		for i := 0; i < 3; i++ {
			if tri.N[i] != NoTriangle {
				continue
			}
			a, b := tri.edge(i)
			if internal.Orient(m.points[a], m.points[b], p) == internal.Right {
				return Location{Kind: Outside, Triangle: t, Edge: i, Scanned: true}
			}
		}
	}
	fatalf("point %v is neither inside nor outside the mesh", p)
	return Location{}
}

// Index of an edge of t that has p strictly on its outer side, or -1.
func (m *Mesh) strictlyOutside(t TriangleID, p Point) int {
	tri := &m.tris[t]
	for i := 0; i < 3; i++ {
		a, b := tri.edge(i)
		if internal.Orient(m.points[a], m.points[b], p) == internal.Right {
			return i
		}
	}
	return -1
}
