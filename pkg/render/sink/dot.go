package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/tour"
)

// dotScale converts canvas units to Graphviz points.
const dotScale = 1.0

// ToDOT converts the visible tours of b to Graphviz DOT. Every distinct
// point becomes a node pinned at its canvas position (y flipped, Graphviz
// grows upwards) and every tour edge a colored directed edge.
//
// Render the result with [RenderDOT]; the neato layout keeps pinned nodes.
func ToDOT(b *board.Board) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tours {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=red, color=red, label=\"\", width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")
	buf.WriteString("\n")

	ids := make(map[tour.Point]string)
	for _, p := range b.History() {
		if _, ok := ids[p]; ok {
			continue
		}
		id := "p" + strconv.Itoa(len(ids))
		ids[p] = id
		fmt.Fprintf(&buf, "  %s [pos=\"%.2f,%.2f!\"];\n", id, p.X()*dotScale, -p.Y()*dotScale)
	}

	for _, t := range b.Visible() {
		style := t.Style()
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  // %s\n", style.Name)
		for from, to := range t.Edges() {
			fmt.Fprintf(&buf, "  %s -> %s [color=%q, penwidth=%.1f];\n", ids[from], ids[to], style.Stroke, style.StrokeWidth)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using Graphviz with the neato layout.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> header with a plain one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
