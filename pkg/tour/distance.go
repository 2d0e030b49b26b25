package tour

import (
	"math"

	"github.com/paulmach/orb/planar"
)

// Distance returns the Euclidean distance between a and b.
// Every heuristic and length computation in this module goes through it.
func Distance(a, b Point) float64 {
	return planar.Distance(a, b)
}

// InsertionDelta returns how much inserting p into the edge (curr, next)
// changes that edge's length, as an absolute value:
//
//	|d(curr, p) + d(p, next) - d(curr, next)|
//
// By the triangle inequality the difference is never negative in exact
// arithmetic. Rounding can push it slightly below zero for nearly collinear
// points; the absolute value is kept so such edges compare by magnitude.
func InsertionDelta(curr, next, p Point) float64 {
	original := Distance(curr, next)
	detour := Distance(curr, p) + Distance(p, next)
	return math.Abs(detour - original)
}

// TotalDistance returns the length of the closed tour: the sum of distances
// between consecutive points plus the closing edge from the last point back
// to the head. Tours with fewer than two points have length 0.
//
// Complexity: O(n).
func (t *Tour[S]) TotalDistance() float64 {
	var total float64
	for a, b := range t.Edges() {
		total += Distance(a, b)
	}
	return total
}
