package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/tour"
)

const (
	runeEdge   = '·'
	runeMarker = 'o'
	runeCursor = '+'
)

// cell is one character of the canvas.
type cell struct {
	r     rune
	style lipgloss.Style
}

// grid rasterizes a board onto a cols x rows character grid. Canvas
// coordinates span width x height; the y axis points down like in the SVG.
type grid struct {
	cols, rows    int
	width, height float64
	cells         []cell
}

func newGrid(cols, rows int, width, height float64) *grid {
	cols, rows = max(cols, 2), max(rows, 2)
	return &grid{
		cols:   cols,
		rows:   rows,
		width:  width,
		height: height,
		cells:  make([]cell, cols*rows),
	}
}

// toCell maps a canvas point to the nearest cell, clamped to the grid.
func (g *grid) toCell(p tour.Point) (col, row int) {
	col = int(math.Round(p.X() / g.width * float64(g.cols-1)))
	row = int(math.Round(p.Y() / g.height * float64(g.rows-1)))
	return clamp(col, 0, g.cols-1), clamp(row, 0, g.rows-1)
}

// toPoint maps a cell back to canvas coordinates.
func (g *grid) toPoint(col, row int) tour.Point {
	return tour.Point{
		float64(col) * g.width / float64(g.cols-1),
		float64(row) * g.height / float64(g.rows-1),
	}
}

func (g *grid) set(col, row int, r rune, style lipgloss.Style) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = cell{r: r, style: style}
}

func (g *grid) at(col, row int) rune {
	return g.cells[row*g.cols+col].r
}

// line draws a Bresenham line between two cells, endpoints included.
func (g *grid) line(c0, r0, c1, r1 int, r rune, style lipgloss.Style) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		g.set(c0, r0, r, style)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// draw paints the visible tours of b: edges first in drawing order, then
// the point markers on top.
func (g *grid) draw(b *board.Board) {
	visible := b.Visible()
	for _, t := range visible {
		style := tourStyle(t.Style())
		for from, to := range t.Edges() {
			c0, r0 := g.toCell(from)
			c1, r1 := g.toCell(to)
			g.line(c0, r0, c1, r1, runeEdge, style)
		}
	}
	for _, t := range visible {
		for p := range t.All() {
			col, row := g.toCell(p)
			g.set(col, row, runeMarker, styleMarker)
		}
	}
}

func (g *grid) String() string {
	var sb strings.Builder
	for row := range g.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			if c.r == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(c.style.Render(string(c.r)))
		}
	}
	return sb.String()
}

func clamp(v, lo, hi int) int { return min(max(v, lo), hi) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
