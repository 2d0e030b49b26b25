// Package styles defines how tours are drawn.
//
// A [Style] is attached to each tour as its style tag. The defaults follow
// the canvas conventions: black for head insertion, blue for nearest
// neighbour and magenta for cheapest insertion, all with a stroke width of 3.
// Points are drawn as red circles and every edge carries an arrowhead that
// shows the visiting direction (see [Arrowhead]).
package styles
