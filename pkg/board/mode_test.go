package board

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"add", ModeAdd, false},
		{"Beginning", ModeAdd, false},
		{"closest", ModeClosest, false},
		{"nearest", ModeClosest, false},
		{"smallest", ModeSmallest, false},
		{"cheapest", ModeSmallest, false},
		{" ALL ", ModeAll, false},
		{"every", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeNextCycles(t *testing.T) {
	m := ModeAdd
	var seen []Mode
	for range len(Modes()) {
		seen = append(seen, m)
		m = m.Next()
	}
	if m != ModeAdd {
		t.Errorf("Next did not wrap, ended at %v", m)
	}
	for i, want := range Modes() {
		if seen[i] != want {
			t.Errorf("cycle[%d] = %v, want %v", i, seen[i], want)
		}
	}
}

func TestModeText(t *testing.T) {
	for _, m := range Modes() {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil || back != m {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
	if _, err := Mode(-1).MarshalText(); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("MarshalText(-1) error = %v", err)
	}
	if Mode(9).String() != "Mode(9)" {
		t.Errorf("String() = %q", Mode(9).String())
	}
}
