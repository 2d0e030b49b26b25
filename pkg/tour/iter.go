package tour

import "iter"

// Iterator walks a tour once in visiting order, starting at the head the
// tour had when the iterator was created. It stops when the walk would come
// back to that starting node.
//
// An Iterator is not restartable; call Tour.Iter again for a fresh pass.
type Iterator[S any] struct {
	tour   *Tour[S]
	start  int
	cursor int
	mods   uint64
}

// Iter returns an iterator positioned at the current head.
func (t *Tour[S]) Iter() *Iterator[S] {
	return &Iterator[S]{
		tour:   t,
		start:  t.head,
		cursor: t.head,
		mods:   t.mods,
	}
}

// HasNext reports whether Next will produce another point.
func (it *Iterator[S]) HasNext() bool {
	return it.cursor != noNode
}

// Next returns the next point in visiting order.
//
// It returns ErrExhausted once all points have been produced, and
// ErrConcurrentModification if the tour was changed after Iter was called.
func (it *Iterator[S]) Next() (Point, error) {
	if it.cursor == noNode {
		return Point{}, ErrExhausted
	}
	if it.tour.mods != it.mods {
		return Point{}, ErrConcurrentModification
	}
	n := it.tour.nodes[it.cursor]
	it.cursor = n.next
	if it.cursor == it.start {
		it.cursor = noNode
	}
	return n.point, nil
}

// Remove always returns ErrRemoveUnsupported.
func (it *Iterator[S]) Remove() error {
	return ErrRemoveUnsupported
}

// All yields the points in visiting order starting at the head.
// It panics with ErrConcurrentModification if the tour is mutated while the
// loop is running.
func (t *Tour[S]) All() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		it := t.Iter()
		for it.HasNext() {
			p, err := it.Next()
			if err != nil {
				panic(err)
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Backward yields the points following prev links from the head: the head
// first, then the last point, and so on.
// It panics with ErrConcurrentModification if the tour is mutated while the
// loop is running.
func (t *Tour[S]) Backward() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if t.head == noNode {
			return
		}
		start, mods := t.head, t.mods
		cur := start
		for {
			if t.mods != mods {
				panic(ErrConcurrentModification)
			}
			n := t.nodes[cur]
			if !yield(n.point) {
				return
			}
			cur = n.prev
			if cur == start {
				return
			}
		}
	}
}

// Edges yields each pair of consecutive points in visiting order, ending with
// the closing pair (last, head). Tours with fewer than two points have no
// edges.
// It panics with ErrConcurrentModification if the tour is mutated while the
// loop is running.
func (t *Tour[S]) Edges() iter.Seq2[Point, Point] {
	return func(yield func(Point, Point) bool) {
		if len(t.nodes) < 2 {
			return
		}
		start, mods := t.head, t.mods
		cur := start
		for {
			if t.mods != mods {
				panic(ErrConcurrentModification)
			}
			n := t.nodes[cur]
			if !yield(n.point, t.nodes[n.next].point) {
				return
			}
			cur = n.next
			if cur == start {
				return
			}
		}
	}
}
