package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/tour"
)

// ReadFile reads the points stored at path, detecting the format from the
// file extension.
func ReadFile(path string) ([]tour.Point, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "point file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPoints(f, format)
}

// ReadFS is ReadFile for an fs.FS.
func ReadFS(fsys fs.FS, name string) ([]tour.Point, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "point file %s not found", name)
	}
	return ReadPoints(bytes.NewReader(data), format)
}

// ReadPoints decodes points in the given format from r. The returned points
// keep file order. ReadPoints does not close r.
func ReadPoints(r io.Reader, format Format) ([]tour.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var pts []tour.Point
	switch format {
	case FormatJSON:
		pts, err = decodeJSON(data)
	case FormatYAML:
		pts, err = decodeYAML(data)
	case FormatGeoJSON:
		pts, err = decodeGeoJSON(data)
	case FormatText:
		pts, err = decodeText(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown point format %q", format)
	}
	if err != nil {
		return nil, err
	}

	for i, p := range pts {
		if err := errors.ValidatePoint(p.X(), p.Y()); err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
	}
	return pts, nil
}

func decodeJSON(data []byte) ([]tour.Point, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Type != "" {
			return decodeGeoJSON(data)
		}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return fromDocument(v)
}

func decodeYAML(data []byte) ([]tour.Point, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return fromDocument(v)
}

// fromDocument extracts points from a decoded JSON or YAML document: either
// a list of points or a mapping holding that list under "points".
func fromDocument(v any) ([]tour.Point, error) {
	if m, ok := v.(map[string]any); ok {
		inner, found := m["points"]
		if !found {
			return nil, errors.New(errors.ErrCodeInvalidInput, `expected a list of points or a "points" key`)
		}
		v = inner
	}
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected a list of points, got %T", v)
	}

	pts := make([]tour.Point, 0, len(items))
	for i, item := range items {
		p, err := pointFrom(item)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %d", i+1)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func pointFrom(item any) (tour.Point, error) {
	switch v := item.(type) {
	case map[string]any:
		x, okX := number(v["x"])
		y, okY := number(v["y"])
		if !okX || !okY {
			return tour.Point{}, fmt.Errorf("need numeric x and y")
		}
		return tour.Point{x, y}, nil
	case []any:
		if len(v) != 2 {
			return tour.Point{}, fmt.Errorf("need exactly two coordinates, got %d", len(v))
		}
		x, okX := number(v[0])
		y, okY := number(v[1])
		if !okX || !okY {
			return tour.Point{}, fmt.Errorf("coordinates must be numbers")
		}
		return tour.Point{x, y}, nil
	}
	return tour.Point{}, fmt.Errorf("unsupported point value %T", item)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func decodeGeoJSON(data []byte) ([]tour.Point, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode geojson")
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode feature collection")
		}
		var pts []tour.Point
		for i, f := range fc.Features {
			fp, err := fromGeometry(f.Geometry)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "feature %d", i+1)
			}
			pts = append(pts, fp...)
		}
		return pts, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode feature")
		}
		return fromGeometry(f.Geometry)
	case "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "geojson document has no type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode geometry")
		}
		return fromGeometry(g.Geometry())
	}
}

func fromGeometry(g orb.Geometry) ([]tour.Point, error) {
	switch v := g.(type) {
	case nil:
		return nil, nil
	case orb.Point:
		return []tour.Point{v}, nil
	case orb.MultiPoint:
		return append([]tour.Point(nil), v...), nil
	case orb.LineString:
		return openRing(v), nil
	case orb.Ring:
		return openRing(v), nil
	case orb.Polygon:
		if len(v) == 0 {
			return nil, nil
		}
		return openRing(v[0]), nil
	case orb.Collection:
		var pts []tour.Point
		for _, inner := range v {
			p, err := fromGeometry(inner)
			if err != nil {
				return nil, err
			}
			pts = append(pts, p...)
		}
		return pts, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "geometry %s is not supported", g.GeoJSONType())
}

// openRing drops the closing position of a closed ring.
func openRing(pts []orb.Point) []tour.Point {
	out := append([]tour.Point(nil), pts...)
	if n := len(out); n > 1 && out[0] == out[n-1] {
		out = out[:n-1]
	}
	return out
}

func decodeText(data []byte) ([]tour.Point, error) {
	var pts []tour.Point
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: expected two coordinates, got %d", line, len(fields))
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: coordinates must be numbers", line)
		}
		pts = append(pts, tour.Point{x, y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return pts, nil
}
