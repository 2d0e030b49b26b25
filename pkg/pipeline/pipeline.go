// Package pipeline turns a list of points into rendered tours.
//
// The pipeline has two stages:
//
//  1. Build: feed the points, in order, into a [board.Board] under the
//     requested insert mode, optionally skipping near-duplicates.
//  2. Render: produce every requested output format from the board.
//
// Rendered artifacts are cached by the points and the options that shape
// them, so rebuilding an unchanged input is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, points, pipeline.Options{
//	    Mode:    "all",
//	    Formats: []string{"svg", "geojson"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/cache"
	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/render/styles"
	"github.com/matzehuels/touring/pkg/tour"
)

const (
	// DefaultMode feeds every point to all three tours.
	DefaultMode = "all"

	// PNGScale is the resolution factor of PNG exports.
	PNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatGeoJSON  = "geojson"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatGeoJSON:  true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return "graphviz.svg"
	default:
		return format
	}
}

// Options configures a pipeline run.
type Options struct {
	Mode         string   `json:"mode,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	Width        float64  `json:"width,omitempty"` // zero width and height fit the frame to the points
	Height       float64  `json:"height,omitempty"`
	DedupeRadius float64  `json:"dedupe_radius,omitempty"` // skip points closer than this to an earlier one
	Refresh      bool     `json:"refresh,omitempty"`       // ignore cached artifacts

	// Styles overrides the default style per strategy.
	Styles map[tour.Strategy]styles.Style `json:"styles,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      board.Mode
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Board holds the built tours.
	Board *board.Board

	// PointsHash is the content hash of the input points.
	PointsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int // points added to the board
	Skipped    int // points dropped as near-duplicates
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits of the render stage.
type CacheInfo struct {
	RenderHits int // artifacts served from the cache
}

// RenderHit reports whether every artifact came from the cache.
func (c CacheInfo) RenderHit(formats int) bool {
	return formats > 0 && c.RenderHits == formats
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Formats returns the supported formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it again after success is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	m, err := board.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid mode %q", o.Mode)
	}
	o.mode = m
	o.Mode = m.String()

	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if err := errors.ValidateCanvasSize(o.Width, o.Height); err != nil {
		return err
	}
	if o.DedupeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dedupe radius must not be negative, got %g", o.DedupeRadius)
	}
	for s, st := range o.Styles {
		if err := errors.ValidateColor(st.Stroke); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "style for %s", s)
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BoardMode returns the parsed insert mode. Valid after ValidateAndSetDefaults.
func (o *Options) BoardMode() board.Mode {
	return o.mode
}

// BoardOptions returns the options used to construct the board.
func (o *Options) BoardOptions() []board.Option {
	opts := []board.Option{board.WithMode(o.mode)}
	if len(o.Styles) > 0 {
		opts = append(opts, board.WithStyles(o.Styles))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Mode:         o.Mode,
		Width:        o.Width,
		Height:       o.Height,
		DedupeRadius: o.DedupeRadius,
		Styles:       o.stylesHash(),
	}
}

func (o *Options) stylesHash() string {
	if len(o.Styles) == 0 {
		return ""
	}
	// encoding/json sorts map keys, so the hash is stable.
	data, err := json.Marshal(o.Styles)
	if err != nil {
		return fmt.Sprint(o.Styles)
	}
	return cache.Hash(data)
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
