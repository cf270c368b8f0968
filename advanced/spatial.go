package advanced

import (
	"math"

	"github.com/gorkemerdogan/DelaunayVoronoiCreator/internal"
)

// Uniform grid over the inserted points with cells epsilon wide. Two points
// within epsilon of each other are always in the same or adjacent cells, so a
// duplicate check looks at nine cells.
type spatialIndex struct {
	epsilon float64
	cells   map[cellKey][]indexedPoint
}

type cellKey struct {
	x, y int64
}

type indexedPoint struct {
	id    PointID
	point Point
}

// Cell coordinates are clamped well inside int64. Points that far out share
// edge cells, which only costs a longer scan.
const maxCell = 1 << 60

func newSpatialIndex(epsilon float64) *spatialIndex {
	return &spatialIndex{
		epsilon: epsilon,
		cells:   make(map[cellKey][]indexedPoint),
	}
}

func (s *spatialIndex) cell(v float64) int64 {
	if s.epsilon == 0 {
		// Exact mode. Fold -0 into 0 so they compare equal.
		return int64(math.Float64bits(v + 0))
	}
	c := math.Floor(v / s.epsilon)
	if c > maxCell {
		return maxCell
	}
	if c < -maxCell {
		return -maxCell
	}
	return int64(c)
}

func (s *spatialIndex) key(p Point) cellKey {
	return cellKey{s.cell(p.X), s.cell(p.Y)}
}

func (s *spatialIndex) add(id PointID, p Point) {
	k := s.key(p)
	s.cells[k] = append(s.cells[k], indexedPoint{id, p})
}

// Find a point within epsilon of p.
func (s *spatialIndex) find(p Point) (PointID, bool) {
	k := s.key(p)
	if s.epsilon == 0 {
		for _, candidate := range s.cells[k] {
			if candidate.point == p {
				return candidate.id, true
			}
		}
		return NoPoint, false
	}
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, candidate := range s.cells[cellKey{k.x + dx, k.y + dy}] {
				if internal.Distance(candidate.point, p) < s.epsilon {
					return candidate.id, true
				}
			}
		}
	}
	return NoPoint, false
}
