package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxCanvasSize bounds both canvas dimensions.
const MaxCanvasSize = 100_000

// ValidatePoint rejects coordinates that cannot be placed on a canvas.
// Any finite value is accepted, negative ones included.
func ValidatePoint(x, y float64) error {
	for _, v := range []float64{x, y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidPoint, "coordinates must be finite, got (%v, %v)", x, y)
		}
	}
	return nil
}

// ValidateCanvasSize checks a canvas width and height. Zero for both means
// "fit to the points" and is accepted.
func ValidateCanvasSize(width, height float64) error {
	if width == 0 && height == 0 {
		return nil
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "canvas size must be positive, got %vx%v", width, height)
	}
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return New(ErrCodeInvalidSize, "canvas size too large (max %d)", MaxCanvasSize)
	}
	return nil
}

// colorRegex matches #rgb, #rrggbb and plain color names.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]+)$`)

// ValidateColor validates an SVG stroke color. Empty means "keep default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidStyle, "invalid color %q (use a name or #rrggbb)", color)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateRedisURL checks that a cache URL uses a scheme go-redis accepts.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}
	for _, scheme := range []string{"redis://", "rediss://", "unix://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "redis URL must use redis, rediss or unix scheme")
}
