package advanced

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// Engine maintains a Delaunay triangulation under point insertion.
//
// Insertions are serialized. Each one either completes, leaving every
// triangle with an empty circumcircle, or fails and leaves the mesh exactly as
// it was. Readers never look at the live mesh; they get immutable snapshots.
type Engine struct {
	mu      sync.RWMutex
	options Options
	logger  *zap.Logger
	mesh    *Mesh
	index   *spatialIndex
	// Bumped by every change to the mesh. Snapshots carry the version they
	// were taken at.
	version  uint64
	snapshot *Snapshot
}

type InsertResult struct {
	Point PointID
	// Where the point landed. Meaningless while Seeding.
	Kind LocateKind
	// The point was one of the first three, which only build the seed triangle.
	Seeding bool
	Steps   int
	Flips   int
	Created int
}

// NewEmptyEngine creates an engine with no points. The first two insertions
// are buffered; the third builds the seed triangle, or is rejected with a
// CollinearSeedError if it is collinear with the first two.
func NewEmptyEngine(setters ...Option) *Engine {
	opts := defaultOptions()
	for _, set := range setters {
		set(&opts)
	}
	return &Engine{
		options: opts,
		logger:  opts.Logger,
		mesh:    NewMesh(),
		index:   newSpatialIndex(opts.Epsilon),
	}
}

// NewEngine creates an engine seeded with the triangle abc. It fails with a
// CollinearSeedError if the seeds are collinear (including coincident), and
// with a DuplicatePointError if two seeds are closer than epsilon.
func NewEngine(a, b, c Point, setters ...Option) (*Engine, error) {
	for _, p := range []Point{a, b, c} {
		if !internal.Finite(p) {
			return nil, &InvalidPointError{Point: p}
		}
	}
	if internal.Orient(a, b, c) == internal.Collinear {
		return nil, &CollinearSeedError{Seeds: [3]Point{a, b, c}}
	}
	e := NewEmptyEngine(setters...)
	for _, p := range []Point{a, b, c} {
		if _, err := e.Insert(p); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Build triangulates a whole point set at once. The seed triangle is the
// first point, the next point not within epsilon of it, and the next point not
// collinear with those two; everything else is inserted in order. Duplicates
// are skipped. The result maps input index to PointID, with NoPoint for the
// skipped duplicates.
func Build(points []Point, setters ...Option) (*Engine, []PointID, error) {
	if len(points) < 3 {
		return nil, nil, errors.Errorf("need at least 3 points, got %d", len(points))
	}
	if !internal.Finite(points[0]) {
		return nil, nil, errors.Wrapf(&InvalidPointError{Point: points[0]}, "point %d", 0)
	}
	e := NewEmptyEngine(setters...)

	seeds := [3]int{0, -1, -1}
	distinct := func(a, b Point) bool {
		return internal.Finite(b) && a != b && internal.Distance(a, b) >= e.options.Epsilon
	}
	for i := 1; i < len(points) && seeds[1] < 0; i++ {
		if distinct(points[0], points[i]) {
			seeds[1] = i
		}
	}
	// The last triple that was actually tested, for the error
	tried := [3]Point{points[0], points[0], points[0]}
	if seeds[1] >= 0 {
		tried[1], tried[2] = points[seeds[1]], points[seeds[1]]
	}
	for i := seeds[1] + 1; seeds[1] >= 0 && i < len(points) && seeds[2] < 0; i++ {
		a, b := points[seeds[0]], points[seeds[1]]
		if !distinct(a, points[i]) || !distinct(b, points[i]) {
			continue
		}
		tried[2] = points[i]
		if internal.Orient(a, b, points[i]) != internal.Collinear {
			seeds[2] = i
		}
	}
	if seeds[1] < 0 || seeds[2] < 0 {
		return nil, nil, &CollinearSeedError{Seeds: tried}
	}

	ids := make([]PointID, len(points))
	for i := range ids {
		ids[i] = NoPoint
	}
	insert := func(i int) error {
		result, err := e.Insert(points[i])
		if err != nil {
			return errors.Wrapf(err, "point %d", i)
		}
		ids[i] = result.Point
		return nil
	}
	for _, i := range seeds {
		if err := insert(i); err != nil {
			return nil, nil, err
		}
	}
	for i := range points {
		if ids[i] != NoPoint {
			continue
		}
		if err := insert(i); err != nil {
			if _, dup := errors.Cause(err).(*DuplicatePointError); dup {
				continue
			}
			return nil, nil, err
		}
	}
	return e, ids, nil
}

// Insert adds one point to the triangulation.
//
// Errors: *InvalidPointError for non-finite coordinates, *DuplicatePointError
// for a point within epsilon of an existing one, *CollinearSeedError if the
// point would complete a collinear seed triangle. Any other error means an
// internal invariant broke; the insertion has been rolled back.
func (e *Engine) Insert(p Point) (InsertResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertLocked(p)
}

// InsertAll inserts points in order, stopping at the first failure. The error
// names the index of the failing point; errors.Cause recovers the typed error.
func (e *Engine) InsertAll(points []Point) ([]PointID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]PointID, 0, len(points))
	for i, p := range points {
		result, err := e.insertLocked(p)
		if err != nil {
			return ids, errors.Wrapf(err, "point %d", i)
		}
		ids = append(ids, result.Point)
	}
	return ids, nil
}

func (e *Engine) insertLocked(p Point) (result InsertResult, err error) {
	if !internal.Finite(p) {
		return InsertResult{Point: NoPoint}, &InvalidPointError{Point: p}
	}
	if existing, ok := e.index.find(p); ok {
		return InsertResult{Point: NoPoint}, &DuplicatePointError{Point: p, Existing: existing}
	}
	if !e.mesh.seeded() {
		return e.insertSeed(p)
	}

	e.mesh.begin()
	defer func() {
		if r := recover(); r != nil {
			recoveredErr := HandlePanicRecover(r)
			e.mesh.rollback()
			e.logger.Error("insertion rolled back",
				zap.Float64("x", p.X),
				zap.Float64("y", p.Y),
				zap.Error(recoveredErr),
			)
			result = InsertResult{Point: NoPoint}
			err = recoveredErr
		}
	}()

	loc := e.mesh.Locate(p)
	if loc.Scanned {
		e.logger.Warn("point location fell back to a linear scan",
			zap.Float64("x", p.X),
			zap.Float64("y", p.Y),
			zap.Int("steps", loc.Steps),
		)
	}
	if loc.Kind == OnVertex {
		// The index missed it. Only possible when epsilon is smaller than the
		// spacing of floats near p.
		existing := e.mesh.tris[loc.Triangle].V[loc.Edge]
		e.mesh.commit()
		return InsertResult{Point: NoPoint}, &DuplicatePointError{Point: p, Existing: existing}
	}

	id := e.mesh.addPoint(p)
	var created []TriangleID
	switch loc.Kind {
	case Inside:
		created = e.mesh.splitTriangle(loc.Triangle, id)
	case OnEdge:
		created = e.mesh.splitEdge(loc.Triangle, loc.Edge, id)
	case Outside:
		created = e.mesh.extendHull(loc.Triangle, loc.Edge, id)
	}
	stack := TriangleStack(append([]TriangleID(nil), created...))
	flips := e.mesh.legalize(id, &stack)
	e.mesh.hint = e.mesh.pointTri[id]

	if e.options.Validate {
		if verr := e.mesh.Validate(); verr != nil {
			panic(errors.Wrap(verr, "validation after insertion"))
		}
	}

	e.mesh.commit()
	e.index.add(id, p)
	e.version++
	e.snapshot = nil

	result = InsertResult{
		Point:   id,
		Kind:    loc.Kind,
		Steps:   loc.Steps,
		Flips:   flips,
		Created: len(created) + 2*flips,
	}
	e.logger.Debug("inserted point",
		zap.Int("point", int(id)),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
		zap.Stringer("kind", loc.Kind),
		zap.Int("steps", loc.Steps),
		zap.Int("flips", flips),
	)
	return result, nil
}

// The first three points. Nothing here can break an invariant, so there is
// no journal.
func (e *Engine) insertSeed(p Point) (InsertResult, error) {
	m := e.mesh
	if m.PointCount() == 2 && internal.Orient(m.points[0], m.points[1], p) == internal.Collinear {
		return InsertResult{Point: NoPoint}, &CollinearSeedError{Seeds: [3]Point{m.points[0], m.points[1], p}}
	}
	id := m.addPoint(p)
	e.index.add(id, p)
	result := InsertResult{Point: id, Seeding: true}
	if m.PointCount() == 3 {
		m.seed()
		result.Created = 1
		e.logger.Debug("seeded triangulation", zap.Int("points", 3))
	}
	e.version++
	e.snapshot = nil
	return result, nil
}

// Restore the empty circumcircle property around the freshly inserted point
// p. Every triangle on the stack is incident to p; the edge opposite p is the
// only one that can have become illegal. Flipping it produces two more
// triangles incident to p whose opposite edges need the same check.
//
// A fourth point exactly on the circle is left alone, which is the tie-break
// for cocircular input.
func (m *Mesh) legalize(p PointID, stack *TriangleStack) int {
	flips := 0
	for !stack.Empty() {
		t := stack.Pop()
		if !m.isLive(t) {
			continue
		}
		tri := &m.tris[t]
		i := tri.indexOf(p)
		if i < 0 {
			fatalf("%s on the legalization stack is not incident to point %d", m.Describe(t), p)
		}
		u := tri.N[i]
		if u == NoTriangle {
			continue
		}
		j := m.tris[u].neighborIndex(t)
		if j < 0 {
			fatalf("%s does not link back to %s", m.Describe(u), m.Describe(t))
		}
		d := m.tris[u].V[j]
		a, b, c := m.points[tri.V[0]], m.points[tri.V[1]], m.points[tri.V[2]]
		if internal.InCircle(a, b, c, m.points[d]) != internal.Inside {
			continue
		}
		t2, u2 := m.flipEdge(t, i)
		stack.Push(t2)
		stack.Push(u2)
		flips++
	}
	return flips
}

// Len is the number of accepted points.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mesh.PointCount()
}

// Points returns a copy of the accepted points, indexed by PointID.
func (e *Engine) Points() []Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Point(nil), e.mesh.points...)
}

// Snapshot returns an immutable view of the current triangulation. The same
// snapshot is returned until the mesh changes.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	snapshot := e.snapshot
	e.mu.RUnlock()
	if snapshot != nil {
		return snapshot
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.snapshot == nil {
		e.snapshot = newSnapshot(e.mesh, e.version, e.options.SliverTolerance, e.logger)
	}
	return e.snapshot
}

func (e *Engine) Triangles() []Triangle {
	return e.Snapshot().Triangles
}

func (e *Engine) VoronoiCells() []Cell {
	return e.Snapshot().VoronoiCells()
}

func (e *Engine) VoronoiEdges() []Edge {
	return e.Snapshot().VoronoiEdges()
}

// Compact reclaims retired triangle handles. Live triangles are renumbered;
// the result maps old handles to new ones (NoTriangle for retired handles).
// Snapshots taken earlier keep their old handles.
func (e *Engine) Compact() []TriangleID {
	e.mu.Lock()
	defer e.mu.Unlock()
	before := e.mesh.Capacity()
	remap := e.mesh.Compact()
	e.version++
	e.snapshot = nil
	e.logger.Debug("compacted triangle arena",
		zap.Int("before", before),
		zap.Int("after", e.mesh.Capacity()),
	)
	return remap
}

// Validate runs the structural checks on the live mesh.
func (e *Engine) Validate() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mesh.Validate()
}

// ValidateDelaunay checks every triangle's circumcircle against every point.
// Quadratic; meant for tests.
func (e *Engine) ValidateDelaunay() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mesh.ValidateDelaunay()
}
