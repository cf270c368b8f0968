package advanced

import "fmt"

// CollinearSeedError is returned when the three points that would form the
// first triangle are collinear. No triangle is created.
type CollinearSeedError struct {
	Seeds [3]Point
}

func (e *CollinearSeedError) Error() string {
	return fmt.Sprintf("seed points %v, %v and %v are collinear", e.Seeds[0], e.Seeds[1], e.Seeds[2])
}

// DuplicatePointError is returned when a point lies within epsilon of a point
// that is already in the triangulation. The mesh is left untouched.
type DuplicatePointError struct {
	Point    Point
	Existing PointID
}

func (e *DuplicatePointError) Error() string {
	return fmt.Sprintf("point %v duplicates point %d", e.Point, e.Existing)
}

// InvalidPointError is returned for points with NaN or infinite coordinates.
type InvalidPointError struct {
	Point Point
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("point %v has non-finite coordinates", e.Point)
}

// DegenerateGeometryWarning marks a nearly flat triangle whose circumcenter
// could not be placed. It is attached to the Voronoi cells and edges it
// affects; extraction always carries on.
type DegenerateGeometryWarning struct {
	Triangle TriangleID
	Reason   string
}

func (w DegenerateGeometryWarning) Error() string {
	return fmt.Sprintf("degenerate triangle %d: %s", w.Triangle, w.Reason)
}
