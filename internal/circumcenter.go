package internal

import "math"

// Sliverness measures how close a triangle is to being flat: twice its area
// divided by the square of its longest edge. An equilateral triangle scores
// about 0.87, a collinear triple scores 0.
func Sliverness(a, b, c Point) float64 {
	longest := math.Max(norm2(a.Sub(b)), math.Max(norm2(b.Sub(c)), norm2(c.Sub(a))))
	if longest == 0 {
		return 0
	}
	return math.Abs(SignedArea(a, b, c)) / longest
}

// Circumcenter returns the center of the circle through a, b and c. The second
// result is false when the triangle is too flat (Sliverness below
// sliverTolerance) for the center to be meaningful, or when the computation
// overflows. In that case the returned point is the centroid, which is at
// least finite.
func Circumcenter(a, b, c Point, sliverTolerance float64) (Point, bool) {
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)
	if Sliverness(a, b, c) < sliverTolerance {
		return centroid, false
	}

	// Work relative to a to keep the magnitudes small
	ba := b.Sub(a)
	ca := c.Sub(a)
	d := 2 * ba.Cross(ca)
	if d == 0 {
		return centroid, false
	}
	bl := norm2(ba)
	cl := norm2(ca)
	center := Point{
		X: a.X + (ca.Y*bl-ba.Y*cl)/d,
		Y: a.Y + (ba.X*cl-ca.X*bl)/d,
	}
	if !Finite(center) {
		return centroid, false
	}
	return center, true
}

func norm2(p Point) float64 {
	return p.Dot(p)
}
