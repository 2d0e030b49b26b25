// Package render holds the drawing side of touring.
//
// # Overview
//
// Tours are drawn from a [board.Board]. The subpackages split the work:
//
//   - [styles]: stroke colors, widths, point markers and arrowheads
//   - [sink]: output formats (SVG, JSON, GeoJSON, DOT and Graphviz SVG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(b)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [board.Board]: github.com/matzehuels/touring/pkg/board.Board
package render
