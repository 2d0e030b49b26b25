package board

import (
	"fmt"
	"strings"

	"github.com/matzehuels/touring/pkg/tour"
)

// Mode decides which tours receive a newly added point.
type Mode int

const (
	// ModeAdd feeds only the head-insertion tour.
	ModeAdd Mode = iota
	// ModeClosest feeds only the nearest-neighbour tour.
	ModeClosest
	// ModeSmallest feeds only the cheapest-insertion tour.
	ModeSmallest
	// ModeAll feeds every tour so they can be compared side by side.
	ModeAll
)

var modeNames = [...]string{
	ModeAdd:      "add",
	ModeClosest:  "closest",
	ModeSmallest: "smallest",
	ModeAll:      "all",
}

var modeAliases = map[string]Mode{
	"add":       ModeAdd,
	"beginning": ModeAdd,
	"begin":     ModeAdd,
	"closest":   ModeClosest,
	"nearest":   ModeClosest,
	"smallest":  ModeSmallest,
	"cheapest":  ModeSmallest,
	"all":       ModeAll,
}

// Modes returns every mode in cycling order.
func Modes() []Mode {
	return []Mode{ModeAdd, ModeClosest, ModeSmallest, ModeAll}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m >= ModeAdd && m <= ModeAll }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping from all back to add.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// Strategies returns the strategies m feeds, in drawing order: for ModeAll
// the head-insertion tour comes last so it ends up on top.
func (m Mode) Strategies() []tour.Strategy {
	switch m {
	case ModeAdd:
		return []tour.Strategy{tour.Beginning}
	case ModeClosest:
		return []tour.Strategy{tour.Nearest}
	case ModeSmallest:
		return []tour.Strategy{tour.Smallest}
	case ModeAll:
		return []tour.Strategy{tour.Smallest, tour.Nearest, tour.Beginning}
	}
	return nil
}

// ParseMode converts a name to a Mode. Strategy names are accepted too.
func ParseMode(name string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
