// Package sink renders a [board.Board] to output formats.
//
// # SVG
//
// [RenderSVG] draws the visible tours the way the interactive canvas does:
// red point markers, one arrow per edge in the tour's stroke, and the ring
// closed from the last point back to the head. Options control the frame
// size, the marker radius and an optional status block.
//
//	svg := sink.RenderSVG(b, sink.WithSize(800, 600), sink.WithStatus(b.Status()))
//
// # Data Formats
//
// [RenderJSON] exports every tour with its style and length. [RenderGeoJSON]
// writes a FeatureCollection with one closed LineString per tour and a
// MultiPoint of all added points.
//
// # Graphviz
//
// [ToDOT] emits a DOT graph with pinned node positions and [RenderDOT]
// turns it into SVG using the neato engine of goccy/go-graphviz.
package sink
