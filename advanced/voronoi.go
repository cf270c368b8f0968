package advanced

import (
	"github.com/golang/geo/r2"
)

// Cell is the Voronoi region of one point: every location closer to Site than
// to any other point.
//
// Vertices are the circumcenters of the triangles around the site, in
// counterclockwise order, and Triangles lists those triangles in the same
// order. A site on the convex hull has an unbounded cell: Rays[0] leaves
// Vertices[0] and Rays[1] leaves the last vertex, both as unit vectors
// pointing away from the hull. Between the two rays the cell is open.
//
// A cell that touches a sliver triangle is flagged Degenerate; the sliver's
// vertex is replaced by its centroid and a warning names the triangle.
type Cell struct {
	Site       PointID
	Point      Point
	Vertices   []r2.Point
	Triangles  []TriangleID
	Unbounded  bool
	Rays       [2]r2.Point
	Degenerate bool
	Warnings   []DegenerateGeometryWarning
}

// Edge is the Voronoi edge dual to the Delaunay edge between Sites. It runs
// From the circumcenter of the triangle on one side To the circumcenter of the
// triangle on the other. The dual of a hull edge is a ray from From in the
// direction Ray, and To is unset.
type Edge struct {
	Sites      [2]PointID
	From, To   r2.Point
	Ray        r2.Point
	Unbounded  bool
	Degenerate bool
}

// Unit normal pointing to the right of a->b. For a counterclockwise hull
// edge, that is away from the mesh.
func outwardNormal(a, b Point) r2.Point {
	return b.Sub(a).Ortho().Mul(-1).Normalize()
}

// VoronoiCells returns one cell per point, indexed by PointID. Points still
// waiting for the seed triangle get an empty cell.
func (s *Snapshot) VoronoiCells() []Cell {
	s.computeCenters()
	cells := make([]Cell, len(s.Points))
	for id := range s.Points {
		cells[id] = s.cell(PointID(id))
	}
	return cells
}

func (s *Snapshot) cell(p PointID) Cell {
	c := Cell{Site: p, Point: s.Points[p]}
	start := s.pointTri[p]
	if start == NoTriangle {
		return c
	}

	// Back up clockwise to the hull, or all the way around
	first := s.Triangles[s.byID[start]]
	for guard := 0; guard <= len(s.Triangles); guard++ {
		_, _, cw := s.around(first, p)
		if cw == NoTriangle {
			c.Unbounded = true
			break
		}
		if cw == start {
			break
		}
		first = s.Triangles[s.byID[cw]]
	}

	t := first
	for guard := 0; guard <= len(s.Triangles); guard++ {
		i := s.byID[t.ID]
		c.Vertices = append(c.Vertices, s.centers[i])
		c.Triangles = append(c.Triangles, t.ID)
		if !s.centerOK[i] {
			c.Degenerate = true
			c.Warnings = append(c.Warnings, DegenerateGeometryWarning{Triangle: t.ID, Reason: "sliver triangle has no circumcenter"})
		}
		_, ccw, _ := s.around(t, p)
		if ccw == NoTriangle || ccw == first.ID {
			break
		}
		t = s.Triangles[s.byID[ccw]]
	}

	if c.Unbounded {
		// The first triangle's hull edge leaves p, the last one's enters it
		j, _, _ := s.around(first, p)
		c.Rays[0] = outwardNormal(s.Points[p], s.Points[first.V[next(j)]])
		j, _, _ = s.around(t, p)
		c.Rays[1] = outwardNormal(s.Points[t.V[prev(j)]], s.Points[p])
	}
	return c
}

// VoronoiEdges returns the dual of every Delaunay edge, each edge once.
func (s *Snapshot) VoronoiEdges() []Edge {
	s.computeCenters()
	var edges []Edge
	for i, t := range s.Triangles {
		for k, n := range t.Neighbors {
			// Shared edges are emitted from the lower handle
			if n != NoTriangle && n < t.ID {
				continue
			}
			q, r := t.V[next(k)], t.V[prev(k)]
			e := Edge{
				Sites:      [2]PointID{q, r},
				From:       s.centers[i],
				Degenerate: !s.centerOK[i],
			}
			if n == NoTriangle {
				e.Unbounded = true
				e.Ray = outwardNormal(s.Points[q], s.Points[r])
			} else {
				j := s.byID[n]
				e.To = s.centers[j]
				e.Degenerate = e.Degenerate || !s.centerOK[j]
			}
			edges = append(edges, e)
		}
	}
	return edges
}
