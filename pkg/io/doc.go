// Package io reads and writes point files.
//
// # Overview
//
// A point file lists canvas positions in the order they should be added to
// a board. Four formats are understood:
//
//   - json: an array of {"x": 1, "y": 2} objects or [1, 2] pairs, or an
//     object with such an array under "points"
//   - yaml: the same shapes written as YAML
//   - geojson: Point, MultiPoint, LineString or Polygon geometries, bare or
//     inside Features and FeatureCollections
//   - txt: one "x y" or "x,y" pair per line; blank lines and lines starting
//     with # are skipped
//
// # Import
//
// Use [ReadFile] to read a file whose format is detected from its extension,
// or [ReadPoints] to read from any io.Reader:
//
//	pts, err := io.ReadFile("cities.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A JSON file whose top-level object carries a GeoJSON "type" is read as
// GeoJSON. Closed rings (a LineString or Polygon ring whose last position
// repeats the first) contribute each position once.
//
// Every coordinate must be finite. Errors are coded [errors.Error] values:
// INVALID_FORMAT for unknown formats, INVALID_INPUT for malformed content,
// INVALID_POINT for bad coordinates and FILE_NOT_FOUND for missing files.
//
// # Export
//
// [WriteJSON] and [WriteText] write points back out; the JSON form can be
// read again with [ReadPoints].
//
// [errors.Error]: github.com/matzehuels/touring/pkg/errors.Error
package io
