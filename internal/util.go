package internal

import (
	"math"

	"github.com/golang/geo/r2"
)

// Points are plain values. Their identity inside a triangulation is the
// insertion index, never the address, so copies are always safe.
type Point = r2.Point

// Default distance below which two points count as the same point. Only
// duplicate detection uses it; the predicates are exact.
const Tolerance = 1e-6

// Finite reports whether both coordinates are usable by the predicates.
func Finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Twice the signed area of the triangle abc. Positive when abc winds
// counterclockwise. This is the plain floating point value; use Orient when
// the sign matters.
func SignedArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Distance between two points.
func Distance(a, b Point) float64 {
	return a.Sub(b).Norm()
}
