package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/cache"
	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/observability"
	"github.com/matzehuels/touring/pkg/tour"
)

// keyTypeArtifact labels artifact events for cache hooks.
const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, points []tour.Point, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		PointsHash: cache.HashPoints(points),
	}

	// Stage 1: Build
	buildStart := time.Now()
	b, skipped, err := r.Build(ctx, points, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Board = b
	result.Stats.Points = b.Len()
	result.Stats.Skipped = skipped
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built tours",
		"mode", opts.Mode,
		"points", b.Len(),
		"skipped", skipped,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, b, result.PointsHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHits = hits

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build feeds points into a new board in order. With a positive
// DedupeRadius, a point within that distance of an already added point is
// skipped; the count of skipped points is returned.
func (r *Runner) Build(ctx context.Context, points []tour.Point, opts Options) (b *board.Board, skipped int, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Mode, len(points))
	defer func() {
		added := 0
		if b != nil {
			added = b.Len()
		}
		observability.Pipeline().OnBuildComplete(ctx, opts.Mode, added, skipped, time.Since(start), err)
	}()

	b = board.New(opts.BoardOptions()...)
	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeCanceled, err, "build canceled after %d points", i)
		}
		if err := errors.ValidatePoint(p.X(), p.Y()); err != nil {
			return nil, 0, fmt.Errorf("point %d: %w", i, err)
		}
		if opts.DedupeRadius > 0 {
			if near := b.Nearby(p, opts.DedupeRadius); len(near) > 0 {
				r.Logger.Debug("skipped near-duplicate", "point", p, "near", near[0])
				skipped++
				continue
			}
		}
		b.Add(p)
	}
	return b, skipped, nil
}

// RenderWithCacheInfo renders every format of opts, reading and writing the
// cache per format. It returns the artifacts and how many came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, b *board.Board, pointsHash string, opts Options) (artifacts map[string][]byte, hits int, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, hits, errors.Wrap(errors.ErrCodeCanceled, err, "render canceled before %s", format)
		}

		cacheKey := r.Keyer.ArtifactKey(pointsHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				hits++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}

		data, err := RenderFormat(ctx, b, format, opts)
		if err != nil {
			return nil, hits, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return artifacts, hits, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, b *board.Board, pointsHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, b, pointsHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
