package advanced

import (
	"github.com/logrusorgru/aurora"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/dbg"
	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// Mesh is an arena of triangles addressed by TriangleID. Triangles refer to
// each other by handle, never by pointer, so the whole mesh can be copied or
// rolled back by copying slices.
//
// Splits and flips never edit a triangle's vertices in place. They retire the
// old triangles and allocate new ones, so a live handle always names the same
// three points.
type Mesh struct {
	points []Point
	tris   []triangle
	// Some live triangle incident to each point, NoTriangle before seeding.
	pointTri []TriangleID
	live     int
	// Where the next point location walk starts.
	hint TriangleID

	journal *journal
}

// While an insertion is in progress, every change to state that existed
// before it is recorded so the insertion can be undone. Triangles and points
// added during the insertion are simply truncated away.
type journal struct {
	triangles     int
	points        int
	live          int
	hint          TriangleID
	savedTris     map[TriangleID]triangle
	savedPointTri map[PointID]TriangleID
}

func NewMesh() *Mesh {
	return &Mesh{hint: NoTriangle}
}

func (m *Mesh) Point(p PointID) Point {
	return m.points[p]
}

func (m *Mesh) PointCount() int {
	return len(m.points)
}

func (m *Mesh) LiveCount() int {
	return m.live
}

// Number of handles in the arena, live or retired.
func (m *Mesh) Capacity() int {
	return len(m.tris)
}

func (m *Mesh) seeded() bool {
	return m.live > 0
}

func (m *Mesh) isLive(t TriangleID) bool {
	return t >= 0 && int(t) < len(m.tris) && !m.tris[t].dead
}

// Vertices of a live triangle in counterclockwise order.
func (m *Mesh) Vertices(t TriangleID) [3]PointID {
	return m.tris[t].V
}

func (m *Mesh) Neighbors(t TriangleID) [3]TriangleID {
	return m.tris[t].N
}

func (m *Mesh) begin() {
	m.journal = &journal{
		triangles:     len(m.tris),
		points:        len(m.points),
		live:          m.live,
		hint:          m.hint,
		savedTris:     make(map[TriangleID]triangle),
		savedPointTri: make(map[PointID]TriangleID),
	}
}

func (m *Mesh) commit() {
	m.journal = nil
}

func (m *Mesh) rollback() {
	j := m.journal
	if j == nil {
		return
	}
	m.tris = m.tris[:j.triangles]
	for id, tri := range j.savedTris {
		m.tris[id] = tri
	}
	m.points = m.points[:j.points]
	m.pointTri = m.pointTri[:j.points]
	for p, t := range j.savedPointTri {
		m.pointTri[p] = t
	}
	m.live = j.live
	m.hint = j.hint
	m.journal = nil
}

func (m *Mesh) save(t TriangleID) {
	j := m.journal
	if j == nil || int(t) >= j.triangles {
		return
	}
	if _, ok := j.savedTris[t]; !ok {
		j.savedTris[t] = m.tris[t]
	}
}

func (m *Mesh) setPointTri(p PointID, t TriangleID) {
	if j := m.journal; j != nil && int(p) < j.points {
		if _, ok := j.savedPointTri[p]; !ok {
			j.savedPointTri[p] = m.pointTri[p]
		}
	}
	m.pointTri[p] = t
}

func (m *Mesh) addPoint(p Point) PointID {
	m.points = append(m.points, p)
	m.pointTri = append(m.pointTri, NoTriangle)
	return PointID(len(m.points) - 1)
}

// The handle the next alloc will return. Primitives that create several
// triangles referring to each other use this to wire them up front.
func (m *Mesh) nextHandle() TriangleID {
	return TriangleID(len(m.tris))
}

func (m *Mesh) alloc(v [3]PointID, n [3]TriangleID) TriangleID {
	t := m.nextHandle()
	m.tris = append(m.tris, triangle{V: v, N: n})
	m.live++
	for _, p := range v {
		m.setPointTri(p, t)
	}
	return t
}

// Retiring a triangle doesn't touch pointTri. Every primitive allocates
// replacements covering all of the retired triangle's vertices, and alloc
// repoints them.
func (m *Mesh) retire(t TriangleID) {
	if !m.isLive(t) {
		fatalf("retiring dead triangle %s", m.dbgName(t))
	}
	m.save(t)
	m.tris[t].dead = true
	m.live--
}

func (m *Mesh) setNeighbor(t TriangleID, i int, n TriangleID) {
	if t == NoTriangle {
		return
	}
	m.save(t)
	m.tris[t].N[i] = n
}

// Point t's link to old at replacement instead. A NoTriangle t is the outer
// face, which keeps no links.
func (m *Mesh) replaceNeighbor(t, old, replacement TriangleID) {
	if t == NoTriangle {
		return
	}
	i := m.tris[t].neighborIndex(old)
	if i < 0 {
		fatalf("triangle %s is not a neighbor of %s", m.dbgName(old), m.dbgName(t))
	}
	m.setNeighbor(t, i, replacement)
}

// Create the first triangle from the first three points.
func (m *Mesh) seed() TriangleID {
	if len(m.points) != 3 || m.seeded() {
		fatalf("cannot seed mesh with %d points", len(m.points))
	}
	v := [3]PointID{0, 1, 2}
	switch internal.Orient(m.points[0], m.points[1], m.points[2]) {
	case internal.Right:
		v = [3]PointID{0, 2, 1}
	case internal.Collinear:
		fatalf("cannot seed mesh with collinear points")
	}
	t := m.alloc(v, [3]TriangleID{NoTriangle, NoTriangle, NoTriangle})
	m.hint = t
	return t
}

// Any live triangle, or NoTriangle.
func (m *Mesh) anyLive() TriangleID {
	for id := len(m.tris) - 1; id >= 0; id-- {
		if !m.tris[id].dead {
			return TriangleID(id)
		}
	}
	return NoTriangle
}

// Compact drops retired triangles and renumbers the live ones densely. The
// result maps every old handle to its new handle, or to NoTriangle if it was
// retired.
func (m *Mesh) Compact() []TriangleID {
	if m.journal != nil {
		fatalf("cannot compact during an insertion")
	}
	remap := make([]TriangleID, len(m.tris))
	tris := make([]triangle, 0, m.live)
	for id, tri := range m.tris {
		if tri.dead {
			remap[id] = NoTriangle
			continue
		}
		remap[id] = TriangleID(len(tris))
		tris = append(tris, tri)
	}
	for i := range tris {
		for k, n := range tris[i].N {
			if n != NoTriangle {
				tris[i].N[k] = remap[n]
			}
		}
	}
	for p, t := range m.pointTri {
		if t != NoTriangle {
			m.pointTri[p] = remap[t]
		}
	}
	if m.hint != NoTriangle {
		m.hint = remap[m.hint]
	}
	m.tris = tris
	return remap
}

func (m *Mesh) clone() *Mesh {
	return &Mesh{
		points:   append([]Point(nil), m.points...),
		tris:     append([]triangle(nil), m.tris...),
		pointTri: append([]TriangleID(nil), m.pointTri...),
		live:     m.live,
		hint:     m.hint,
	}
}

// Readable, colored name for a triangle handle: cyan on the hull, red if dead,
// green otherwise.
func (m *Mesh) dbgName(t TriangleID) string {
	if t == NoTriangle {
		return "Ø"
	}
	name := dbg.Name(t)
	switch {
	case int(t) >= len(m.tris) || m.tris[t].dead:
		return aurora.Red(name).String()
	case m.tris[t].onHull():
		return aurora.Cyan(name).String()
	}
	return aurora.Green(name).String()
}

// Describe a triangle for error messages and logs.
func (m *Mesh) Describe(t TriangleID) string {
	if !m.isLive(t) {
		return "Triangle " + m.dbgName(t)
	}
	return "Triangle " + m.dbgName(t) + " " + m.tris[t].String()
}
