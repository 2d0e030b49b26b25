package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/touring/pkg/tour"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WriteJSON encodes points as an indented JSON array of {"x", "y"} objects.
// The output can be re-imported with [ReadPoints].
func WriteJSON(pts []tour.Point, w io.Writer) error {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{X: p.X(), Y: p.Y()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteText writes one "x y" pair per line using the shortest exact
// decimal form.
func WriteText(pts []tour.Point, w io.Writer) error {
	for _, p := range pts {
		line := strconv.FormatFloat(p.X(), 'g', -1, 64) + " " + strconv.FormatFloat(p.Y(), 'g', -1, 64) + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

// ExportJSON writes points to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(pts []tour.Point, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(pts, f)
}
