package advanced

import "github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"

// The primitives in this file replace a few triangles with new ones and fix up
// every link into the replaced region. Each returns the new triangles that are
// incident to the inserted point, which are the ones legalization starts from.
//
// Vertex names follow one convention throughout: p is the new point, t is
// the triangle being replaced, and for an edge i of t, q and r are its
// endpoints in counterclockwise order and c is the vertex opposite it.

// Split t into three triangles around the point p, which must be strictly
// inside t.
//
//	        c                     c
//	       / \                   /|\
//	      /   \                 / | \
//	     /  t  \      ==>      /t1|t0\
//	    /   p   \             /  /p\  \
//	   /         \           / /  t2 \ \
//	  a-----------b         a-----------b
func (m *Mesh) splitTriangle(t TriangleID, p PointID) []TriangleID {
	tri := m.tris[t]
	a, b, c := tri.V[0], tri.V[1], tri.V[2]
	na, nb, nc := tri.N[0], tri.N[1], tri.N[2]

	m.retire(t)
	base := m.nextHandle()
	t0 := m.alloc([3]PointID{p, b, c}, [3]TriangleID{na, base + 1, base + 2})
	t1 := m.alloc([3]PointID{p, c, a}, [3]TriangleID{nb, base + 2, base})
	t2 := m.alloc([3]PointID{p, a, b}, [3]TriangleID{nc, base, base + 1})

	m.replaceNeighbor(na, t, t0)
	m.replaceNeighbor(nb, t, t1)
	m.replaceNeighbor(nc, t, t2)
	return []TriangleID{t0, t1, t2}
}

// Split edge i of t at p, which must lie on the open edge. If the edge is
// shared, the neighbor u across it is split as well, giving four triangles;
// on the hull it gives two.
//
//	      c                  c
//	     / \                /|\
//	    / t \              /t0|t1\
//	   q-----r    ==>     q---p---r
//	    \ u /              \u1|u0/
//	     \ /                \ | /
//	      d                  \|/
//	                          d
func (m *Mesh) splitEdge(t TriangleID, i int, p PointID) []TriangleID {
	tri := m.tris[t]
	c := tri.V[i]
	q, r := tri.edge(i)
	nq, nr := tri.N[next(i)], tri.N[prev(i)]
	u := tri.N[i]

	if u == NoTriangle {
		m.retire(t)
		base := m.nextHandle()
		t0 := m.alloc([3]PointID{c, q, p}, [3]TriangleID{NoTriangle, base + 1, nr})
		t1 := m.alloc([3]PointID{c, p, r}, [3]TriangleID{NoTriangle, nq, base})
		m.replaceNeighbor(nr, t, t0)
		m.replaceNeighbor(nq, t, t1)
		return []TriangleID{t0, t1}
	}

	utri := m.tris[u]
	j := utri.neighborIndex(t)
	if j < 0 || utri.V[next(j)] != r || utri.V[prev(j)] != q {
		fatalf("%s and %s disagree about their shared edge", m.Describe(t), m.Describe(u))
	}
	d := utri.V[j]
	// Across q->d and d->r respectively
	uqd, udr := utri.N[next(j)], utri.N[prev(j)]

	m.retire(t)
	m.retire(u)
	base := m.nextHandle()
	t0 := m.alloc([3]PointID{c, q, p}, [3]TriangleID{base + 3, base + 1, nr})
	t1 := m.alloc([3]PointID{c, p, r}, [3]TriangleID{base + 2, nq, base})
	u0 := m.alloc([3]PointID{d, r, p}, [3]TriangleID{base + 1, base + 3, udr})
	u1 := m.alloc([3]PointID{d, p, q}, [3]TriangleID{base, uqd, base + 2})

	m.replaceNeighbor(nr, t, t0)
	m.replaceNeighbor(nq, t, t1)
	m.replaceNeighbor(udr, u, u0)
	m.replaceNeighbor(uqd, u, u1)
	return []TriangleID{t0, t1, u0, u1}
}

// Flip edge i of t. With p = t.V[i] and d the vertex of the neighbor u
// across the edge, the diagonal q-r is replaced by p-d. The quadrilateral
// p, q, d, r must be strictly convex.
//
//	      p                  p
//	     / \                /|\
//	    / t \              / | \
//	   q-----r    ==>     q t'|u' r
//	    \ u /              \ | /
//	     \ /                \|/
//	      d                  d
//
// Returns the two new triangles, both incident to p.
func (m *Mesh) flipEdge(t TriangleID, i int) (TriangleID, TriangleID) {
	tri := m.tris[t]
	u := tri.N[i]
	if u == NoTriangle {
		fatalf("cannot flip hull edge %d of %s", i, m.Describe(t))
	}
	p := tri.V[i]
	q, r := tri.edge(i)
	// Across r->p and p->q
	trp, tpq := tri.N[next(i)], tri.N[prev(i)]

	utri := m.tris[u]
	j := utri.neighborIndex(t)
	if j < 0 || utri.V[next(j)] != r || utri.V[prev(j)] != q {
		fatalf("%s and %s disagree about their shared edge", m.Describe(t), m.Describe(u))
	}
	d := utri.V[j]
	// Across q->d and d->r
	uqd, udr := utri.N[next(j)], utri.N[prev(j)]

	pp, pq, pr, pd := m.points[p], m.points[q], m.points[r], m.points[d]
	if internal.Orient(pp, pq, pd) != internal.Left || internal.Orient(pd, pr, pp) != internal.Left {
		fatalf("cannot flip edge of non-convex quad around %s", m.Describe(t))
	}

	m.retire(t)
	m.retire(u)
	base := m.nextHandle()
	t2 := m.alloc([3]PointID{p, q, d}, [3]TriangleID{uqd, base + 1, tpq})
	u2 := m.alloc([3]PointID{d, r, p}, [3]TriangleID{trp, base, udr})

	m.replaceNeighbor(uqd, u, t2)
	m.replaceNeighbor(tpq, t, t2)
	m.replaceNeighbor(trp, t, u2)
	m.replaceNeighbor(udr, u, u2)
	return t2, u2
}

type hullEdge struct {
	t TriangleID
	i int
}

// The hull is traversed counterclockwise, with the mesh on the left. Given the
// hull edge (t, i) running a->b, find the hull edge that starts at b by
// rotating around b through the fan of triangles that share it.
func (m *Mesh) nextHullEdge(e hullEdge) hullEdge {
	t := e.t
	b := m.tris[t].V[prev(e.i)]
	// In any triangle with b at index j, the edge leaving b is opposite j-1
	k := next(e.i)
	for guard := 0; guard <= m.live; guard++ {
		n := m.tris[t].N[k]
		if n == NoTriangle {
			return hullEdge{t, k}
		}
		t = n
		j := m.tris[t].indexOf(b)
		if j < 0 {
			fatalf("%s is not incident to point %d", m.Describe(t), b)
		}
		k = prev(j)
	}
	fatalf("no hull edge leaves point %d", b)
	return hullEdge{}
}

// The mirror of nextHullEdge: the hull edge that ends at a.
func (m *Mesh) prevHullEdge(e hullEdge) hullEdge {
	t := e.t
	a := m.tris[t].V[next(e.i)]
	// In any triangle with a at index j, the edge entering a is opposite j+1
	k := prev(e.i)
	for guard := 0; guard <= m.live; guard++ {
		n := m.tris[t].N[k]
		if n == NoTriangle {
			return hullEdge{t, k}
		}
		t = n
		j := m.tris[t].indexOf(a)
		if j < 0 {
			fatalf("%s is not incident to point %d", m.Describe(t), a)
		}
		k = next(j)
	}
	fatalf("no hull edge enters point %d", a)
	return hullEdge{}
}

func (m *Mesh) hullEdgeVisible(e hullEdge, p Point) bool {
	a, b := m.tris[e.t].edge(e.i)
	return internal.Orient(m.points[a], m.points[b], p) == internal.Right
}

// Hull returns the vertices of the convex hull in counterclockwise order.
// Vertices in the middle of a straight run of the hull are included.
func (m *Mesh) Hull() []PointID {
	var start hullEdge
	found := false
	for id := range m.tris {
		t := TriangleID(id)
		if !m.isLive(t) {
			continue
		}
		for i, n := range m.tris[t].N {
			if n == NoTriangle {
				start, found = hullEdge{t, i}, true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return nil
	}

	var hull []PointID
	e := start
	for {
		a, _ := m.tris[e.t].edge(e.i)
		hull = append(hull, a)
		e = m.nextHullEdge(e)
		if e == start {
			return hull
		}
		if len(hull) > len(m.points) {
			fatalf("hull walk does not close")
		}
	}
}

// Attach p, which lies outside the hull, to the mesh. (t, i) is a hull edge
// that p can see. Every hull edge p can see (strictly) gets a new triangle
// joining it to p; these form a fan around p.
//
//	      p
//	     /|\
//	    / | \
//	   a--b--c    hull edges a->b and b->c are visible from p
//	   |mesh |
func (m *Mesh) extendHull(t TriangleID, i int, p PointID) []TriangleID {
	pp := m.points[p]
	start := hullEdge{t, i}
	if !m.hullEdgeVisible(start, pp) {
		fatalf("hull edge %d of %s is not visible from point %d", i, m.Describe(t), p)
	}

	// Back up to the first visible edge, then collect forwards
	first := start
	for {
		e := m.prevHullEdge(first)
		if e == start || !m.hullEdgeVisible(e, pp) {
			break
		}
		first = e
	}
	visible := []hullEdge{first}
	for {
		e := m.nextHullEdge(visible[len(visible)-1])
		if e == first || !m.hullEdgeVisible(e, pp) {
			break
		}
		visible = append(visible, e)
	}

	created := make([]TriangleID, 0, len(visible))
	for k, e := range visible {
		a, b := m.tris[e.t].edge(e.i)
		previous := NoTriangle
		if k > 0 {
			previous = created[k-1]
		}
		// Edges: b->a faces the old mesh, a->p the previous fan triangle, p->b the next
		nt := m.alloc([3]PointID{p, b, a}, [3]TriangleID{e.t, previous, NoTriangle})
		m.setNeighbor(e.t, e.i, nt)
		if previous != NoTriangle {
			m.setNeighbor(previous, 2, nt)
		}
		created = append(created, nt)
	}
	return created
}
