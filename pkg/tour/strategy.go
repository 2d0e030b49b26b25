package tour

import (
	"fmt"
	"strings"
)

// Strategy selects one of the insertion heuristics.
type Strategy int

const (
	// Beginning inserts every new point as the head (InsertBeginning).
	Beginning Strategy = iota
	// Nearest inserts after the closest existing point (InsertNearest).
	Nearest
	// Smallest inserts into the edge whose length changes least (InsertSmallest).
	Smallest
)

var strategyNames = [...]string{
	Beginning: "beginning",
	Nearest:   "nearest",
	Smallest:  "smallest",
}

// strategyAliases maps alternative spellings to strategies. The aliases match
// the labels used by the interactive canvas ("add", "closest").
var strategyAliases = map[string]Strategy{
	"beginning": Beginning,
	"begin":     Beginning,
	"head":      Beginning,
	"add":       Beginning,
	"nearest":   Nearest,
	"closest":   Nearest,
	"smallest":  Smallest,
	"cheapest":  Smallest,
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Beginning, Nearest, Smallest}
}

// Valid reports whether s denotes a known heuristic.
func (s Strategy) Valid() bool {
	return s >= Beginning && s <= Smallest
}

// String returns the canonical lowercase name of s.
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy converts a name to a Strategy. Matching is case-insensitive
// and accepts the aliases "begin", "head", "add", "closest" and "cheapest".
func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
