// Package spatial indexes canvas points for proximity queries.
//
// The index is backed by an R-tree and only answers "what is close to this
// point" questions for the host. Tours never consult it: their heuristics
// always scan the ring so that tie-breaking follows visiting order.
package spatial

import (
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/matzehuels/touring/pkg/tour"
)

const (
	dims        = 2
	minChildren = 25
	maxChildren = 50

	// pointTol gives stored points a non-empty box; rtreego treats touching
	// rectangles as disjoint.
	pointTol = 1e-9
)

// entry wraps a point for R-tree storage.
type entry struct {
	point tour.Point
	seq   int
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return toRTree(e.point).ToRect(pointTol)
}

// Index is an R-tree of points. The zero value is not usable; use New.
// Index is not safe for concurrent use.
type Index struct {
	tree *rtreego.Rtree
	seq  int
}

// New returns an empty index.
func New() *Index {
	return &Index{tree: newTree()}
}

func newTree() *rtreego.Rtree {
	return rtreego.NewTree(dims, minChildren, maxChildren)
}

func toRTree(p tour.Point) rtreego.Point {
	return rtreego.Point{p.X(), p.Y()}
}

// Insert adds p. Duplicates are stored as separate entries.
func (ix *Index) Insert(p tour.Point) {
	ix.tree.Insert(&entry{point: p, seq: ix.seq})
	ix.seq++
}

// Len returns the number of stored points.
func (ix *Index) Len() int { return ix.tree.Size() }

// Reset removes every point.
func (ix *Index) Reset() {
	ix.tree = newTree()
	ix.seq = 0
}

// Nearest returns the stored point closest to p. The boolean is false when
// the index is empty.
func (ix *Index) Nearest(p tour.Point) (tour.Point, bool) {
	if ix.tree.Size() == 0 {
		return tour.Point{}, false
	}
	obj := ix.tree.NearestNeighbor(toRTree(p))
	if obj == nil {
		return tour.Point{}, false
	}
	return obj.(*entry).point, true
}

// Within returns the stored points whose distance to p is at most r, in
// insertion order. A negative radius matches nothing.
func (ix *Index) Within(p tour.Point, r float64) []tour.Point {
	if r < 0 || ix.tree.Size() == 0 {
		return nil
	}
	candidates := ix.tree.SearchIntersect(toRTree(p).ToRect(r + pointTol))

	hits := make([]*entry, 0, len(candidates))
	for _, c := range candidates {
		e := c.(*entry)
		if tour.Distance(e.point, p) <= r {
			hits = append(hits, e)
		}
	}
	slices.SortFunc(hits, func(a, b *entry) int { return a.seq - b.seq })

	out := make([]tour.Point, len(hits))
	for i, e := range hits {
		out[i] = e.point
	}
	return out
}
