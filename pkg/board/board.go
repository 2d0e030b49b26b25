package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/touring/pkg/render/styles"
	"github.com/matzehuels/touring/pkg/spatial"
	"github.com/matzehuels/touring/pkg/tour"
)

// ErrUnknownMode is returned when a mode name or value is not recognized.
var ErrUnknownMode = errors.New("unknown mode")

// Tour is a tour whose style tag is a drawing style.
type Tour = tour.Tour[styles.Style]

// Board holds one tour per strategy plus everything that was added to it.
//
// Board is not safe for concurrent use. The owner serializes calls.
type Board struct {
	tours   map[tour.Strategy]*Tour
	mode    Mode
	history []tour.Point
	index   *spatial.Index
}

// Option configures a Board.
type Option func(*Board)

// WithMode sets the initial mode. Invalid modes are ignored.
func WithMode(m Mode) Option {
	return func(b *Board) {
		if m.Valid() {
			b.mode = m
		}
	}
}

// WithStyles replaces the default style of the given strategies.
func WithStyles(s map[tour.Strategy]styles.Style) Option {
	return func(b *Board) {
		for strategy, style := range s {
			if t, ok := b.tours[strategy]; ok && t.Len() == 0 {
				b.tours[strategy] = tour.New(style)
			}
		}
	}
}

// New returns an empty board in ModeAdd with the default styles.
func New(opts ...Option) *Board {
	b := &Board{
		tours: make(map[tour.Strategy]*Tour, len(tour.Strategies())),
		index: spatial.New(),
	}
	for _, s := range tour.Strategies() {
		b.tours[s] = tour.New(styles.Default(s))
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add inserts p into the tours selected by the current mode.
func (b *Board) Add(p tour.Point) {
	for _, s := range b.mode.Strategies() {
		_ = b.tours[s].Insert(s, p) // mode strategies are always valid
	}
	b.history = append(b.history, p)
	b.index.Insert(p)
}

// Mode returns the current mode.
func (b *Board) Mode() Mode { return b.mode }

// SetMode switches the mode. Points already added stay where they are.
func (b *Board) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	b.mode = m
	return nil
}

// Reset empties every tour and forgets all added points. Mode and styles
// are kept.
func (b *Board) Reset() {
	for _, t := range b.tours {
		t.Reset()
	}
	b.history = b.history[:0]
	b.index.Reset()
}

// Tour returns the tour built by strategy s, or nil for an unknown strategy.
func (b *Board) Tour(s tour.Strategy) *Tour { return b.tours[s] }

// Visible returns the tours shown in the current mode, in drawing order.
func (b *Board) Visible() []*Tour {
	strategies := b.mode.Strategies()
	out := make([]*Tour, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, b.tours[s])
	}
	return out
}

// Len returns how many points were added since the last reset.
func (b *Board) Len() int { return len(b.history) }

// History returns the added points in order. The slice is a copy.
func (b *Board) History() []tour.Point { return slices.Clone(b.history) }

// Nearby returns previously added points within r of p. It is a hint for
// callers that want to skip near duplicates; Add itself never filters.
func (b *Board) Nearby(p tour.Point, r float64) []tour.Point {
	return b.index.Within(p, r)
}

// Summary describes one tour of the board.
type Summary struct {
	Strategy tour.Strategy
	Style    styles.Style
	Points   int
	Length   float64
}

// Summaries returns one entry per strategy in declaration order.
func (b *Board) Summaries() []Summary {
	out := make([]Summary, 0, len(b.tours))
	for _, s := range tour.Strategies() {
		t := b.tours[s]
		out = append(out, Summary{
			Strategy: s,
			Style:    t.Style(),
			Points:   t.Len(),
			Length:   t.TotalDistance(),
		})
	}
	return out
}

// Distances returns the total length of every tour.
func (b *Board) Distances() map[tour.Strategy]float64 {
	out := make(map[tour.Strategy]float64, len(b.tours))
	for s, t := range b.tours {
		out[s] = t.TotalDistance()
	}
	return out
}

// Status returns the distance report shown under the canvas: a title line
// and one line per strategy with two decimals.
func (b *Board) Status() []string {
	lines := []string{"Total distances for:"}
	for _, sum := range b.Summaries() {
		lines = append(lines, fmt.Sprintf("%s: %.2f", sum.Style.Label(), sum.Length))
	}
	return lines
}
