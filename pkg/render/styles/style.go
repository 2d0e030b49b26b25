package styles

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/touring/pkg/tour"
)

// Style is the stroke a tour is drawn with. It is the style tag carried by
// every tour on a board and is never read by the tour itself.
type Style struct {
	Name        string  // Strategy name the style belongs to
	Stroke      string  // SVG color (name or #rrggbb)
	StrokeWidth float64 // Line width in canvas units
}

const (
	DefaultStrokeWidth = 3.0

	MarkerFill   = "red"
	MarkerRadius = 20.0

	ArrowLength = 20.0
	ArrowAngle  = 0.75 * math.Pi
)

var defaultStrokes = map[tour.Strategy]string{
	tour.Beginning: "black",
	tour.Nearest:   "blue",
	tour.Smallest:  "magenta",
}

// Default returns the built-in style for a strategy. Unknown strategies get
// a gray stroke so they stay visible.
func Default(s tour.Strategy) Style {
	stroke, ok := defaultStrokes[s]
	if !ok {
		stroke = "gray"
	}
	return Style{Name: s.String(), Stroke: stroke, StrokeWidth: DefaultStrokeWidth}
}

// Defaults returns the built-in style of every strategy.
func Defaults() map[tour.Strategy]Style {
	m := make(map[tour.Strategy]Style, len(defaultStrokes))
	for _, s := range tour.Strategies() {
		m[s] = Default(s)
	}
	return m
}

// Override returns s with the non-zero fields of stroke and width applied.
func (s Style) Override(stroke string, width float64) Style {
	if stroke = strings.TrimSpace(stroke); stroke != "" {
		s.Stroke = stroke
	}
	if width > 0 {
		s.StrokeWidth = width
	}
	return s
}

// Label is the human readable form used in status lines, e.g. "nearest (BLUE)".
func (s Style) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, strings.ToUpper(s.Stroke))
}

// Arrowhead returns the two barb end points of an arrow drawn from (x1,y1)
// to (x2,y2). The barbs start at the tip and open back along the segment.
func Arrowhead(x1, y1, x2, y2 float64) (ax, ay, bx, by float64) {
	theta := math.Atan2(y2-y1, x2-x1)
	ax = x2 + ArrowLength*math.Cos(theta+ArrowAngle)
	ay = y2 + ArrowLength*math.Sin(theta+ArrowAngle)
	bx = x2 + ArrowLength*math.Cos(theta-ArrowAngle)
	by = y2 + ArrowLength*math.Sin(theta-ArrowAngle)
	return ax, ay, bx, by
}
