package advanced

import (
	"github.com/pkg/errors"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// Validate checks the structural invariants of the mesh: counterclockwise
// winding, symmetric neighbor links that agree on the shared edge, a live
// incident triangle for every point, a convex hull, and Euler's count of
// triangles. It returns the first violation found.
func (m *Mesh) Validate() error {
	if len(m.pointTri) != len(m.points) {
		return errors.Errorf("%d points but %d point triangle entries", len(m.points), len(m.pointTri))
	}
	if !m.seeded() {
		for p, t := range m.pointTri {
			if t != NoTriangle {
				return errors.Errorf("point %d refers to triangle %d before seeding", p, t)
			}
		}
		return nil
	}

	live := 0
	for id := range m.tris {
		t := TriangleID(id)
		if !m.isLive(t) {
			continue
		}
		live++
		if err := m.validateTriangle(t); err != nil {
			return err
		}
	}
	if live != m.live {
		return errors.Errorf("counted %d live triangles, expected %d", live, m.live)
	}

	for id, t := range m.pointTri {
		p := PointID(id)
		if !m.isLive(t) {
			return errors.Errorf("point %d refers to dead triangle %s", p, m.Describe(t))
		}
		if m.tris[t].indexOf(p) < 0 {
			return errors.Errorf("point %d refers to non-incident %s", p, m.Describe(t))
		}
	}

	hull := m.Hull()
	for i := range hull {
		a := m.points[hull[i]]
		b := m.points[hull[internal.CircularIndex(i+1, len(hull))]]
		c := m.points[hull[internal.CircularIndex(i+2, len(hull))]]
		if internal.Orient(a, b, c) == internal.Right {
			return errors.Errorf("hull turns clockwise at point %d", hull[internal.CircularIndex(i+1, len(hull))])
		}
	}
	if want := 2*len(m.points) - 2 - len(hull); m.live != want {
		return errors.Errorf("%d points with %d on the hull should give %d triangles, got %d",
			len(m.points), len(hull), want, m.live)
	}
	return nil
}

func (m *Mesh) validateTriangle(t TriangleID) error {
	tri := &m.tris[t]
	for _, v := range tri.V {
		if v < 0 || int(v) >= len(m.points) {
			return errors.Errorf("%s refers to missing point %d", m.Describe(t), v)
		}
	}
	if tri.V[0] == tri.V[1] || tri.V[1] == tri.V[2] || tri.V[2] == tri.V[0] {
		return errors.Errorf("%s repeats a vertex", m.Describe(t))
	}
	a, b, c := m.points[tri.V[0]], m.points[tri.V[1]], m.points[tri.V[2]]
	if o := internal.Orient(a, b, c); o != internal.Left {
		return errors.Errorf("%s winds %s", m.Describe(t), o)
	}

	for i, n := range tri.N {
		if n == NoTriangle {
			continue
		}
		if !m.isLive(n) {
			return errors.Errorf("%s links to dead %s", m.Describe(t), m.Describe(n))
		}
		j := m.tris[n].neighborIndex(t)
		if j < 0 {
			return errors.Errorf("%s links to %s, which does not link back", m.Describe(t), m.Describe(n))
		}
		q, r := tri.edge(i)
		nq, nr := m.tris[n].edge(j)
		if q != nr || r != nq {
			return errors.Errorf("%s and %s disagree about their shared edge", m.Describe(t), m.Describe(n))
		}
	}
	return nil
}

// ValidateDelaunay checks that no point lies strictly inside the circumcircle
// of any live triangle. This is quadratic and only meant for tests.
func (m *Mesh) ValidateDelaunay() error {
	for id := range m.tris {
		t := TriangleID(id)
		if !m.isLive(t) {
			continue
		}
		tri := &m.tris[t]
		a, b, c := m.points[tri.V[0]], m.points[tri.V[1]], m.points[tri.V[2]]
		for pid, d := range m.points {
			if tri.indexOf(PointID(pid)) >= 0 {
				continue
			}
			if internal.InCircle(a, b, c, d) == internal.Inside {
				return errors.Errorf("point %d %v is inside the circumcircle of %s", pid, d, m.Describe(t))
			}
		}
	}
	return nil
}
