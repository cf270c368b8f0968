package internal

// Orientation and in-circle predicates that never lie about the sign. Each
// predicate first evaluates the determinant in plain float64 arithmetic along
// with a forward error bound. If the magnitude of the result beats the bound,
// its sign is certain. Otherwise the determinant is recomputed exactly with
// math/big, which is slow but only happens for (nearly) degenerate input.
//
// The error bounds are the "A" bounds from Shewchuk's adaptive predicates.

import (
	"math"
	"math/big"
)

// Orientation of a point relative to a directed line.
type Orientation int

const (
	Right     Orientation = -1 // clockwise
	Collinear Orientation = 0
	Left      Orientation = 1 // counterclockwise
)

func (o Orientation) String() string {
	switch o {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "collinear"
}

// Position of a point relative to a circumcircle.
type CirclePosition int

const (
	Outside  CirclePosition = -1
	OnCircle CirclePosition = 0
	Inside   CirclePosition = 1
)

func (c CirclePosition) String() string {
	switch c {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	}
	return "on circle"
}

const (
	// Half an ulp of 1.0
	machineEpsilon = 1.1102230246251565e-16

	orientErrorBound   = (3 + 16*machineEpsilon) * machineEpsilon
	inCircleErrorBound = (10 + 96*machineEpsilon) * machineEpsilon

	// The error bounds only hold while every product stays a normal float.
	// Coordinate differences smaller than these go straight to exact
	// arithmetic.
	orientUnderflow   = 1e-145
	inCircleUnderflow = 1e-70
)

// Orient reports on which side of the directed line a->b the point c lies.
// Left means abc winds counterclockwise. The result is exact: Collinear is only
// returned when the three points are exactly collinear.
//
// Orient(a, b, c) == Orient(b, c, a), and swapping any two arguments reverses
// the result.
func Orient(a, b, c Point) Orientation {
	acx, acy := a.X-c.X, a.Y-c.Y
	bcx, bcy := b.X-c.X, b.Y-c.Y
	if minNonzero(acx, acy, bcx, bcy) < orientUnderflow {
		return exactOrient(a, b, c)
	}

	detLeft := acx * bcy
	detRight := acy * bcx
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return signOrientation(det)
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return signOrientation(det)
		}
		detSum = -detLeft - detRight
	default:
		return signOrientation(det)
	}

	if math.Abs(det) > orientErrorBound*detSum {
		return signOrientation(det)
	}
	return exactOrient(a, b, c)
}

// InCircle reports where d lies relative to the circle through a, b and c.
//
// The answer is given for a counterclockwise triangle. For a clockwise abc the
// determinant changes sign, so Inside and Outside swap; this keeps the
// predicate consistent with Orient under any permutation of a, b, c.
func InCircle(a, b, c, d Point) CirclePosition {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y
	if minNonzero(adx, ady, bdx, bdy, cdx, cdy) < inCircleUnderflow {
		return exactInCircle(a, b, c, d)
	}

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift

	if math.Abs(det) > inCircleErrorBound*permanent {
		return signCircle(det)
	}
	return exactInCircle(a, b, c, d)
}

// Smallest magnitude among the nonzero values, or +Inf if all are zero.
func minNonzero(vs ...float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		if v != 0 && math.Abs(v) < m {
			m = math.Abs(v)
		}
	}
	return m
}

func signOrientation(det float64) Orientation {
	switch {
	case det > 0:
		return Left
	case det < 0:
		return Right
	}
	return Collinear
}

func signCircle(det float64) CirclePosition {
	switch {
	case det > 0:
		return Inside
	case det < 0:
		return Outside
	}
	return OnCircle
}

// newBigFloat constructs a new big.Float with maximum precision, so that sums
// and products of float64 values are represented exactly.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bigSub(x, y float64) *big.Float {
	return newBigFloat().Sub(newBigFloat().SetFloat64(x), newBigFloat().SetFloat64(y))
}

func bigMul(x, y *big.Float) *big.Float {
	return newBigFloat().Mul(x, y)
}

func exactOrient(a, b, c Point) Orientation {
	acx, acy := bigSub(a.X, c.X), bigSub(a.Y, c.Y)
	bcx, bcy := bigSub(b.X, c.X), bigSub(b.Y, c.Y)
	det := newBigFloat().Sub(bigMul(acx, bcy), bigMul(acy, bcx))
	return Orientation(det.Sign())
}

func exactInCircle(a, b, c, d Point) CirclePosition {
	adx, ady := bigSub(a.X, d.X), bigSub(a.Y, d.Y)
	bdx, bdy := bigSub(b.X, d.X), bigSub(b.Y, d.Y)
	cdx, cdy := bigSub(c.X, d.X), bigSub(c.Y, d.Y)

	lift := func(x, y *big.Float) *big.Float {
		return newBigFloat().Add(bigMul(x, x), bigMul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		return newBigFloat().Sub(bigMul(x1, y2), bigMul(x2, y1))
	}

	det := bigMul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, bigMul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, bigMul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return CirclePosition(det.Sign())
}
