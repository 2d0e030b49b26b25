// Package tour provides a closed tour over 2D points that grows one point at
// a time using an insertion heuristic.
//
// # Overview
//
// A [Tour] is a circular doubly linked ring of points. Following the next
// links from the head visits every point exactly once and comes back to the
// head; following the prev links does the same in reverse. The ring never
// has a terminator, so every traversal in this package stops when it returns
// to the node it started from.
//
// Nodes live in a growable arena and link to each other by index. The tour
// owns the arena; nodes are created only by the insert methods and dropped
// only by [Tour.Reset].
//
// # Insertion Heuristics
//
// Three heuristics decide where a new point goes:
//
//   - [Tour.InsertBeginning]: the point becomes the new head, spliced between
//     the old last node and the old head. No geometry is involved.
//   - [Tour.InsertNearest]: the point is placed right after the node closest
//     to it. Ties go to the node met first when scanning from the head.
//   - [Tour.InsertSmallest]: the point is placed on the edge whose length
//     changes least, measured as |d(curr,p) + d(p,next) - d(curr,next)|
//     (see [InsertionDelta]). Every edge is scanned, including the closing
//     edge from the last node back to the head. Ties go to the first edge.
//
// [Strategy] names the heuristics so a host can pick one per point with
// [Tour.Insert]. Several tours fed the same point stream can run side by side
// with different strategies.
//
// # Reading a Tour
//
// [Tour.All] yields the points in visiting order, [Tour.Backward] in reverse,
// and [Tour.Edges] yields consecutive pairs including the wrap-around pair.
// [Tour.TotalDistance] sums the edges of the closed cycle; it is 0 for tours
// with fewer than two points.
//
// [Tour.Iter] returns a stateful [Iterator] for callers that want explicit
// control. Calling [Iterator.Next] after the last point returns
// [ErrExhausted], and [Iterator.Remove] always returns [ErrRemoveUnsupported].
//
// # Style Tag
//
// The type parameter S is an opaque style attached at construction. The tour
// stores it and hands it back through [Tour.Style]; nothing in this package
// reads it.
//
// # Concurrency
//
// A Tour is not safe for concurrent use. The caller must serialize all calls,
// for example by owning the tour from a single goroutine. Mutating a tour
// while an iteration is in progress is detected: [Iterator.Next] returns
// [ErrConcurrentModification] and the range-over-func iterators panic with it.
package tour
