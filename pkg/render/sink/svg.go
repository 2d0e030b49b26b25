package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/render/styles"
	"github.com/matzehuels/touring/pkg/tour"
)

const (
	framePadding   = 40.0
	statusFontSize = 16.0
	statusLeading  = 1.4
	background     = "white"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	status        []string
	markerRadius  float64
}

// WithSize fixes the canvas to width x height with the origin at the top
// left. Without it the frame is fitted around the points.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithStatus prints the given lines in the top left corner.
func WithStatus(lines []string) SVGOption { return func(r *svgRenderer) { r.status = lines } }

// WithMarkerRadius overrides the point marker radius.
func WithMarkerRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.markerRadius = radius }
}

// RenderSVG draws the visible tours of b. Each tour contributes its point
// markers and one arrow per edge, the last arrow closing the ring back to
// the head. Tours are painted in [board.Board.Visible] order.
func RenderSVG(b *board.Board, opts ...SVGOption) []byte {
	r := svgRenderer{markerRadius: styles.MarkerRadius}
	for _, opt := range opts {
		opt(&r)
	}

	visible := b.Visible()
	frame := r.frame(visible)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		frame.Min.X(), frame.Min.Y(), frame.Max.X()-frame.Min.X(), frame.Max.Y()-frame.Min.Y(),
		frame.Max.X()-frame.Min.X(), frame.Max.Y()-frame.Min.Y())
	fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		frame.Min.X(), frame.Min.Y(), frame.Max.X()-frame.Min.X(), frame.Max.Y()-frame.Min.Y(), background)

	for _, t := range visible {
		r.renderTour(&buf, t)
	}
	r.renderStatus(&buf, frame)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) frame(tours []*board.Tour) orb.Bound {
	if r.width > 0 && r.height > 0 {
		return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{r.width, r.height}}
	}
	var (
		bound orb.Bound
		seen  bool
	)
	for _, t := range tours {
		for p := range t.All() {
			if !seen {
				bound, seen = p.Bound(), true
				continue
			}
			bound = bound.Extend(p)
		}
	}
	if !seen {
		return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2 * framePadding, 2 * framePadding}}
	}
	return bound.Pad(r.markerRadius + framePadding)
}

func (r svgRenderer) renderTour(buf *bytes.Buffer, t *board.Tour) {
	style := t.Style()
	fmt.Fprintf(buf, `  <g class="tour" id="tour-%s">`+"\n", style.Name)

	for p := range t.All() {
		fmt.Fprintf(buf, `    <circle class="point" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			p.X(), p.Y(), r.markerRadius, styles.MarkerFill)
	}

	fmt.Fprintf(buf, `    <g class="edges" stroke="%s" stroke-width="%.2f" fill="none" stroke-linecap="round">`+"\n",
		style.Stroke, style.StrokeWidth)
	for from, to := range t.Edges() {
		renderArrow(buf, from, to)
	}
	buf.WriteString("    </g>\n")
	buf.WriteString("  </g>\n")
}

func renderArrow(buf *bytes.Buffer, from, to tour.Point) {
	ax, ay, bx, by := styles.Arrowhead(from.X(), from.Y(), to.X(), to.Y())
	fmt.Fprintf(buf, `      <path d="M%.2f,%.2f L%.2f,%.2f M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f"/>`+"\n",
		from.X(), from.Y(), to.X(), to.Y(),
		ax, ay, to.X(), to.Y(), bx, by)
}

func (r svgRenderer) renderStatus(buf *bytes.Buffer, frame orb.Bound) {
	if len(r.status) == 0 {
		return
	}
	x := frame.Min.X() + statusFontSize
	y := frame.Min.Y() + statusFontSize*statusLeading
	fmt.Fprintf(buf, `  <text class="status" x="%.2f" y="%.2f" font-family="monospace" font-size="%.0f" fill="black">`+"\n",
		x, y, statusFontSize)
	for i, line := range r.status {
		dy := 0.0
		if i > 0 {
			dy = statusFontSize * statusLeading
		}
		fmt.Fprintf(buf, `    <tspan x="%.2f" dy="%.2f">`, x, dy)
		xml.EscapeText(buf, []byte(line))
		buf.WriteString("</tspan>\n")
	}
	buf.WriteString("  </text>\n")
}
