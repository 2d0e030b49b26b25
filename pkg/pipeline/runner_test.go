package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/touring/pkg/cache"
	"github.com/matzehuels/touring/pkg/errors"
	"github.com/matzehuels/touring/pkg/observability"
	"github.com/matzehuels/touring/pkg/render"
	"github.com/matzehuels/touring/pkg/tour"
)

// memCache is an in-memory cache that counts calls.
type memCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	gets     int
	sets     int
	failSets bool
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSets {
		return stderrors.New("disk full")
	}
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var square = []tour.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), square, Options{
		Formats: []string{FormatSVG, FormatJSON, FormatGeoJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.Points != 4 || res.Stats.Skipped != 0 {
		t.Errorf("Stats = %+v, want 4 points and none skipped", res.Stats)
	}
	for _, f := range []string{FormatSVG, FormatJSON, FormatGeoJSON, FormatDOT} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not an SVG document")
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte("digraph tours")) {
		t.Error("dot artifact is not a DOT graph")
	}
	if res.PointsHash != cache.HashPoints(square) {
		t.Error("PointsHash does not match the input points")
	}

	// Points arrive in ring order, so head insertion and cheapest insertion
	// both walk the perimeter.
	for _, s := range []tour.Strategy{tour.Beginning, tour.Smallest} {
		if d := res.Board.Tour(s).TotalDistance(); d != 40 {
			t.Errorf("%s distance = %v, want 40", s, d)
		}
	}
}

func TestExecuteModeRouting(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), square, Options{Mode: "closest", Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if n := res.Board.Tour(tour.Nearest).Len(); n != 4 {
		t.Errorf("nearest tour has %d points, want 4", n)
	}
	if n := res.Board.Tour(tour.Beginning).Len(); n != 0 {
		t.Errorf("beginning tour has %d points, want 0 in closest mode", n)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), square, Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want INVALID_FORMAT", err)
	}
}

func TestBuildDedupe(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	pts := []tour.Point{{0, 0}, {0.5, 0}, {10, 0}, {10, 0.9}, {20, 0}}

	b, skipped, err := r.Build(context.Background(), pts, Options{DedupeRadius: 1})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if b.Len() != 3 {
		t.Errorf("board has %d points, want 3", b.Len())
	}

	// Without a radius the core keeps duplicates.
	b, skipped, err = r.Build(context.Background(), append(pts, pts[0]), Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if skipped != 0 || b.Len() != 6 {
		t.Errorf("Build() without radius: len %d skipped %d, want 6 and 0", b.Len(), skipped)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRunner(nil, nil, nil).Build(ctx, square, Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("Build() code = %s, want CANCELED", errors.GetCode(err))
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), square, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.RenderHits != 0 {
		t.Errorf("first run hits = %d, want 0", first.CacheInfo.RenderHits)
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}

	second, err := r.Execute(context.Background(), square, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.RenderHit(2) {
		t.Errorf("second run hits = %d, want 2", second.CacheInfo.RenderHits)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// Different point order means different tours and a different key.
	reordered := []tour.Point{square[2], square[0], square[1], square[3]}
	third, err := r.Execute(context.Background(), reordered, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHits != 0 {
		t.Errorf("reordered points hit the cache %d times", third.CacheInfo.RenderHits)
	}
}

func TestExecuteRefreshSkipsCacheRead(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	if _, err := r.Execute(context.Background(), square, Options{}); err != nil {
		t.Fatal(err)
	}
	gets := c.gets

	res, err := r.Execute(context.Background(), square, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if c.gets != gets {
		t.Errorf("Refresh read the cache %d times", c.gets-gets)
	}
	if res.CacheInfo.RenderHits != 0 {
		t.Errorf("Refresh hits = %d, want 0", res.CacheInfo.RenderHits)
	}
	if c.sets != 2 {
		t.Errorf("Refresh should rewrite the artifact, sets = %d", c.sets)
	}
}

func TestExecuteIgnoresCacheWriteErrors(t *testing.T) {
	c := newMemCache()
	c.failSets = true

	res, err := NewRunner(c, nil, nil).Execute(context.Background(), square, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("svg artifact missing")
	}
}

func TestRenderFormatUnknown(t *testing.T) {
	b, _, err := NewRunner(nil, nil, nil).Build(context.Background(), square, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderFormat(context.Background(), b, "bmp", Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderFormat(bmp) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderGraphviz(t *testing.T) {
	b, _, err := NewRunner(nil, nil, nil).Build(context.Background(), square, Options{Mode: "smallest"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := RenderFormat(context.Background(), b, FormatGraphviz, Options{})
	if err != nil {
		t.Fatalf("RenderFormat(graphviz) error: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("graphviz output is not SVG")
	}
}

func TestRenderRaster(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), square, Options{Formats: []string{FormatPNG, FormatPDF}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG signature")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact has no PDF signature")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildStart(context.Context, string, int) { h.record("build.start") }
func (h *recordingHooks) OnBuildComplete(context.Context, string, int, int, time.Duration, error) {
	h.record("build.done")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render.start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render.done")
}
func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.record("hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.record("miss") }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.record("set") }

func TestExecuteFiresHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := NewRunner(newMemCache(), nil, nil)
	for range 2 {
		if _, err := r.Execute(context.Background(), square, Options{}); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"build.start", "build.done", "render.start", "miss", "set", "render.done",
		"build.start", "build.done", "render.start", "hit", "render.done",
	}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, h.events[i], want[i])
		}
	}
}
