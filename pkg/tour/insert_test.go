package tour_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/touring/pkg/tour"
)

func TestInsertBeginningOrder(t *testing.T) {
	a, b, c := tour.Point{0, 0}, tour.Point{10, 0}, tour.Point{10, 10}

	tr := tour.New(0)
	tr.InsertBeginning(a)
	tr.InsertBeginning(b)
	tr.InsertBeginning(c)

	assert.Equal(t, []tour.Point{c, b, a}, tr.Points())
	head, _ := tr.Head()
	assert.Equal(t, c, head, "most recent point becomes the head")
	assert.InDelta(t, 20+math.Sqrt(200), tr.TotalDistance(), 1e-9)
	assert.InDelta(t, 34.14, tr.TotalDistance(), 0.005)
}

func TestInsertNearestScenario(t *testing.T) {
	a, b, c := tour.Point{0, 0}, tour.Point{100, 0}, tour.Point{1, 1}

	tr := tour.New(0)
	tr.InsertNearest(a)
	tr.InsertNearest(b)
	tr.InsertNearest(c)

	assert.Equal(t, []tour.Point{a, c, b}, tr.Points(), "C goes right after A")
	head, _ := tr.Head()
	assert.Equal(t, a, head, "head does not move once set")
}

func TestInsertNearestTieGoesToFirstInOrder(t *testing.T) {
	left, right := tour.Point{-1, 0}, tour.Point{1, 0}

	tr := tour.New(0)
	tr.InsertNearest(left)
	tr.InsertNearest(right)
	tr.InsertNearest(tour.Point{0, 0}) // equidistant from both

	assert.Equal(t, []tour.Point{left, {0, 0}, right}, tr.Points())
}

func TestInsertNearestMatchesBruteForce(t *testing.T) {
	tr := tour.New(0)
	for i, p := range randomPoints(42, 120) {
		before := tr.Points()
		tr.InsertNearest(p)
		if len(before) < 2 {
			continue
		}

		after := tr.Points()
		idx := indexOf(after, p)
		require.Greater(t, idx, 0, "step %d: new point must not become head", i)
		chosen := after[idx-1]

		first := 0
		for j, q := range before {
			if tour.Distance(q, p) < tour.Distance(before[first], p) {
				first = j
			}
			assert.LessOrEqual(t, tour.Distance(chosen, p), tour.Distance(q, p))
		}
		assert.Equal(t, before[first], chosen, "step %d: earliest nearest node wins", i)
	}
}

func TestInsertSmallestMatchesBruteForce(t *testing.T) {
	tr := tour.New(0)
	for i, p := range randomPoints(99, 120) {
		before := tr.Points()
		tr.InsertSmallest(p)
		if len(before) < 2 {
			continue
		}

		n := len(before)
		best := 0
		bestDelta := math.Inf(1)
		for j := range before {
			d := tour.InsertionDelta(before[j], before[(j+1)%n], p)
			if d < bestDelta {
				best, bestDelta = j, d
			}
		}

		after := tr.Points()
		idx := indexOf(after, p)
		require.Greater(t, idx, 0, "step %d", i)
		assert.Equal(t, before[best], after[idx-1], "step %d: edge start", i)
		assert.Equal(t, before[(best+1)%n], after[(idx+1)%len(after)], "step %d: edge end", i)
	}
}

func TestInsertSmallestConsidersClosingEdge(t *testing.T) {
	a, b, c, d := tour.Point{0, 0}, tour.Point{10, 0}, tour.Point{10, 10}, tour.Point{0, 10}

	tr := tour.New(0)
	for _, p := range []tour.Point{a, b, c, d} {
		tr.InsertSmallest(p)
	}
	require.Equal(t, []tour.Point{a, d, c, b}, tr.Points())

	// Just below the closing edge b -> a.
	p := tour.Point{5, -1}
	tr.InsertSmallest(p)
	assert.Equal(t, []tour.Point{a, d, c, b, p}, tr.Points())
}

func TestInsertSmallestTwoNodeTie(t *testing.T) {
	a, b := tour.Point{0, 0}, tour.Point{10, 0}

	tr := tour.New(0)
	tr.InsertSmallest(a)
	tr.InsertSmallest(b)
	// Both edges of a two-node ring join the same points; the first one wins.
	tr.InsertSmallest(tour.Point{10, 10})

	assert.Equal(t, []tour.Point{a, {10, 10}, b}, tr.Points())
}

// The delta is an absolute value. These cases pin that behaviour so a change
// to a signed cost shows up as a test failure.
func TestInsertionDeltaIsAbsolute(t *testing.T) {
	tests := []struct {
		name          string
		curr, next, p tour.Point
	}{
		{"on segment", tour.Point{0, 0}, tour.Point{10, 0}, tour.Point{5, 0}},
		{"off segment", tour.Point{0, 0}, tour.Point{10, 0}, tour.Point{5, 5}},
		{"nearly collinear", tour.Point{0.1, 0.2}, tour.Point{0.7, 1.4}, tour.Point{0.3, 0.6}},
		{"degenerate edge", tour.Point{2, 2}, tour.Point{2, 2}, tour.Point{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tour.InsertionDelta(tt.curr, tt.next, tt.p)
			detour := tour.Distance(tt.curr, tt.p) + tour.Distance(tt.p, tt.next)
			want := math.Abs(detour - tour.Distance(tt.curr, tt.next))
			assert.Equal(t, want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestInsertSmallestPrefersCollinearEdge(t *testing.T) {
	tr := tour.New(0)
	for _, p := range []tour.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}} {
		tr.InsertBeginning(p)
	}
	// Order is (0,10) (10,10) (10,0) (0,0); (5,10) lies on the first edge.
	tr.InsertSmallest(tour.Point{5, 10})

	assert.Equal(t, []tour.Point{{0, 10}, {5, 10}, {10, 10}, {10, 0}, {0, 0}}, tr.Points())
}

func TestInsertUnknownStrategy(t *testing.T) {
	tr := tour.New(0)
	err := tr.Insert(tour.Strategy(9), tour.Point{1, 1})

	assert.ErrorIs(t, err, tour.ErrUnknownStrategy)
	assert.Equal(t, 0, tr.Len(), "tour must stay unchanged")
}

func TestInsertAcceptsAnyCoordinates(t *testing.T) {
	tr := tour.New(0)
	for _, p := range []tour.Point{{-500, -500}, {1e9, 0}, {-500, -500}, {0, 0}} {
		tr.InsertNearest(p)
	}
	assert.Equal(t, 4, tr.Len())
	require.NoError(t, tr.Validate())
}
