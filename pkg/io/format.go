package io

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/touring/pkg/errors"
)

// Format names a point file encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatGeoJSON Format = "geojson"
	FormatText    Format = "txt"
)

var extensions = map[string]Format{
	".json":    FormatJSON,
	".geojson": FormatGeoJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".txt":     FormatText,
	".xy":      FormatText,
	".csv":     FormatText,
}

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatGeoJSON, FormatText}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Formats(), f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown point format %q (use json, yaml, geojson or txt)", name)
	}
	return f, nil
}

// DetectFormat picks a format from the file extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect point format of %q", filepath.Base(path))
}
