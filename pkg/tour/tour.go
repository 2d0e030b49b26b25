package tour

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"
)

// Point is a position on the canvas. Coordinates are taken as given: they are
// not range checked and two points may be equal.
type Point = orb.Point

// noNode marks an absent node index (the head of an empty tour, or an
// exhausted iterator cursor).
const noNode = -1

// node is one element of the ring. prev and next are indices into the arena.
type node struct {
	point Point
	prev  int
	next  int
}

// Tour is a closed tour over points, stored as a circular doubly linked ring.
//
// The zero value is not usable - use New to create a valid Tour instance.
// Tour is not safe for concurrent use without external synchronization.
type Tour[S any] struct {
	nodes []node // arena; len(nodes) is the tour size
	head  int    // index of the first node in visiting order, noNode when empty
	style S      // opaque style tag, never interpreted here
	mods  uint64 // bumped by every mutation, checked by iterators
}

// New creates an empty tour carrying the given style tag.
func New[S any](style S) *Tour[S] {
	return &Tour[S]{head: noNode, style: style}
}

// Len returns the number of points in the tour.
func (t *Tour[S]) Len() int { return len(t.nodes) }

// Style returns the style tag attached at construction.
func (t *Tour[S]) Style() S { return t.style }

// Head returns the point at the head of the tour. The boolean is false when
// the tour is empty.
func (t *Tour[S]) Head() (Point, bool) {
	if t.head == noNode {
		return Point{}, false
	}
	return t.nodes[t.head].point, true
}

// Reset drops every point. The tour is empty afterwards and keeps its style.
func (t *Tour[S]) Reset() {
	clear(t.nodes)
	t.nodes = t.nodes[:0]
	t.head = noNode
	t.mods++
}

// Points returns the points in visiting order starting at the head.
// The returned slice is a copy and can be modified freely.
func (t *Tour[S]) Points() []Point {
	return slices.Collect(t.All())
}

// Validate checks the ring invariants: the head is absent exactly when the
// tour is empty, every node's links agree with its neighbours, there are no
// self-loops once the tour has two or more points, and walking next from the
// head returns to it after exactly Len steps.
//
// A failure wraps ErrBrokenRing and means the tour itself is defective.
func (t *Tour[S]) Validate() error {
	size := len(t.nodes)
	if size == 0 {
		if t.head != noNode {
			return fmt.Errorf("%w: empty tour has head %d", ErrBrokenRing, t.head)
		}
		return nil
	}
	if t.head < 0 || t.head >= size {
		return fmt.Errorf("%w: head %d out of range [0,%d)", ErrBrokenRing, t.head, size)
	}

	for i, n := range t.nodes {
		if n.next < 0 || n.next >= size || n.prev < 0 || n.prev >= size {
			return fmt.Errorf("%w: node %d links out of range", ErrBrokenRing, i)
		}
		if t.nodes[n.next].prev != i || t.nodes[n.prev].next != i {
			return fmt.Errorf("%w: node %d links are not mutual", ErrBrokenRing, i)
		}
		if size == 1 && (n.next != i || n.prev != i) {
			return fmt.Errorf("%w: single node is not self-linked", ErrBrokenRing)
		}
		if size > 1 && (n.next == i || n.prev == i) {
			return fmt.Errorf("%w: node %d links to itself", ErrBrokenRing, i)
		}
	}

	steps := 0
	for cur := t.head; ; {
		cur = t.nodes[cur].next
		steps++
		if cur == t.head {
			break
		}
		if steps > size {
			return fmt.Errorf("%w: walk from head does not close", ErrBrokenRing)
		}
	}
	if steps != size {
		return fmt.Errorf("%w: cycle has %d nodes, tour has %d", ErrBrokenRing, steps, size)
	}
	return nil
}

// alloc appends a detached node to the arena and returns its index.
func (t *Tour[S]) alloc(p Point) int {
	t.nodes = append(t.nodes, node{point: p, prev: noNode, next: noNode})
	t.mods++
	return len(t.nodes) - 1
}

// solo creates the only node of a previously empty ring.
func (t *Tour[S]) solo(p Point) int {
	i := t.alloc(p)
	t.nodes[i].prev = i
	t.nodes[i].next = i
	return i
}

// pair links a new node to the single existing node at, forming a two-node
// ring where each node is both next and prev of the other.
func (t *Tour[S]) pair(at int, p Point) int {
	i := t.alloc(p)
	t.nodes[i].prev = at
	t.nodes[i].next = at
	t.nodes[at].prev = i
	t.nodes[at].next = i
	return i
}

// spliceAfter links a new node between at and its current next.
func (t *Tour[S]) spliceAfter(at int, p Point) int {
	i := t.alloc(p)
	next := t.nodes[at].next
	t.nodes[i].prev = at
	t.nodes[i].next = next
	t.nodes[at].next = i
	t.nodes[next].prev = i
	return i
}
