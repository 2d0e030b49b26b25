// Package board keeps one tour per insertion heuristic side by side.
//
// A [Board] routes every added point according to its [Mode]: to a single
// tour, or with [ModeAll] to all three so their lengths can be compared.
// [Board.Visible] returns the tours to draw in the order they should be
// painted, and [Board.Status] formats the distance report.
//
//	b := board.New(board.WithMode(board.ModeAll))
//	b.Add(tour.Point{120, 80})
//	b.Add(tour.Point{300, 410})
//	for _, line := range b.Status() {
//		fmt.Println(line)
//	}
package board
