package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/render"
	"github.com/matzehuels/touring/pkg/render/sink"
)

// Render generates every requested format without touching a cache.
func Render(ctx context.Context, b *board.Board, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(ctx, b, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders b in a single format.
func RenderFormat(ctx context.Context, b *board.Board, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatSVG:
		data = renderSVG(b, opts)
	case FormatPNG:
		data, err = render.ToPNG(ctx, renderSVG(b, opts), PNGScale)
	case FormatPDF:
		data, err = render.ToPDF(ctx, renderSVG(b, opts))
	case FormatJSON:
		data, err = sink.RenderJSON(b)
	case FormatGeoJSON:
		data, err = sink.RenderGeoJSON(b)
	case FormatDOT:
		data = []byte(sink.ToDOT(b))
	case FormatGraphviz:
		data, err = sink.RenderDOT(ctx, sink.ToDOT(b))
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

func renderSVG(b *board.Board, opts Options) []byte {
	svgOpts := []sink.SVGOption{sink.WithStatus(b.Status())}
	if opts.Width > 0 && opts.Height > 0 {
		svgOpts = append(svgOpts, sink.WithSize(opts.Width, opts.Height))
	}
	return sink.RenderSVG(b, svgOpts...)
}
