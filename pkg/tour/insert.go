package tour

// Insert adds p using the given strategy. It returns ErrUnknownStrategy when
// s is not one of Beginning, Nearest or Smallest; the tour is left unchanged
// in that case.
func (t *Tour[S]) Insert(s Strategy, p Point) error {
	switch s {
	case Beginning:
		t.InsertBeginning(p)
	case Nearest:
		t.InsertNearest(p)
	case Smallest:
		t.InsertSmallest(p)
	default:
		return ErrUnknownStrategy
	}
	return nil
}

// InsertBeginning makes p the new head, placing it between the current last
// node and the current head. The visiting order is therefore most recent
// first.
func (t *Tour[S]) InsertBeginning(p Point) {
	switch len(t.nodes) {
	case 0:
		t.head = t.solo(p)
	case 1:
		t.head = t.pair(t.head, p)
	default:
		t.head = t.spliceAfter(t.nodes[t.head].prev, p)
	}
}

// InsertNearest places p directly after the node whose point is closest to
// it. When several nodes are equally close, the first one met walking from
// the head wins. The head only changes when the tour was empty.
//
// Complexity: O(n).
func (t *Tour[S]) InsertNearest(p Point) {
	switch len(t.nodes) {
	case 0:
		t.head = t.solo(p)
	case 1:
		t.pair(t.head, p)
	default:
		t.spliceAfter(t.nearest(p), p)
	}
}

// InsertSmallest places p on the edge whose length changes least when p is
// inserted into it, as measured by InsertionDelta. Every edge is considered,
// including the closing edge from the last node back to the head. Ties go to
// the first edge met walking from the head. The head only changes when the
// tour was empty.
//
// Complexity: O(n).
func (t *Tour[S]) InsertSmallest(p Point) {
	switch len(t.nodes) {
	case 0:
		t.head = t.solo(p)
	case 1:
		t.pair(t.head, p)
	default:
		t.spliceAfter(t.cheapestEdge(p), p)
	}
}

// nearest returns the index of the node closest to p.
// Requires a non-empty tour.
func (t *Tour[S]) nearest(p Point) int {
	best := t.head
	bestDist := Distance(t.nodes[best].point, p)
	for cur := t.nodes[t.head].next; cur != t.head; cur = t.nodes[cur].next {
		if d := Distance(t.nodes[cur].point, p); d < bestDist {
			best, bestDist = cur, d
		}
	}
	return best
}

// cheapestEdge returns the index of the node that starts the edge with the
// smallest insertion delta for p. Requires at least two nodes so that every
// edge joins two distinct nodes.
func (t *Tour[S]) cheapestEdge(p Point) int {
	best := t.head
	bestDelta := t.edgeDelta(t.head, p)
	for cur := t.nodes[t.head].next; cur != t.head; cur = t.nodes[cur].next {
		if d := t.edgeDelta(cur, p); d < bestDelta {
			best, bestDelta = cur, d
		}
	}
	return best
}

func (t *Tour[S]) edgeDelta(from int, p Point) float64 {
	curr := t.nodes[from]
	return InsertionDelta(curr.point, t.nodes[curr.next].point, p)
}
