package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mastviz/mastfig/pkg/cache"
	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/observability"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewRunner(c, nil, logger), &buf
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner(nil, nil, nil) = %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestExecuteDemo(t *testing.T) {
	r, logs := newTestRunner(t)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(res.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", res.ID)
	}
	if res.Stats.ModeCount != 14 || res.Stats.Total != 189 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.LayoutHash) != 64 {
		t.Errorf("LayoutHash = %q", res.LayoutHash)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, `id="mode-1.1"`) {
		t.Errorf("svg artifact looks wrong: %.80q", svg)
	}

	var doc struct {
		Version      int `json:"version"`
		Distribution struct {
			Total int `json:"total"`
		} `json:"distribution"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Version != 1 || doc.Distribution.Total != 189 {
		t.Errorf("json artifact = %+v", doc)
	}

	if !strings.Contains(logs.String(), "computed layout") || !strings.Contains(logs.String(), "modes=14") {
		t.Errorf("log output missing layout event:\n%s", logs.String())
	}
}

func TestExecuteUsesCache(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Distribution: json.RawMessage(`{"1.1": 4, "2.2": 2}`)}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if first.ID == second.ID {
		t.Error("runs should get distinct IDs")
	}
	if first.LayoutHash != second.LayoutHash {
		t.Error("cached layout hashes differently")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	refreshed := opts
	refreshed.Refresh = true
	third, err := r.Execute(ctx, refreshed)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}

	guided := opts
	guided.Guides = true
	fourth, err := r.Execute(ctx, guided)
	if err != nil {
		t.Fatal(err)
	}
	if !fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("guides CacheInfo = %+v, want layout hit and render miss", fourth.CacheInfo)
	}
}

func TestCachedLayoutLogsWarnings(t *testing.T) {
	r, logs := newTestRunner(t)
	ctx := context.Background()

	cs := canvas.Default()
	cs.BaseFont, cs.MinFont = 40, 40
	cs.AllowTwoLine = false
	opts := Options{Canvas: &cs, Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Layout.Warnings) == 0 {
		t.Fatal("expected truncation warnings from oversized fonts")
	}

	logs.Reset()
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Fatalf("second run CacheInfo = %+v, want layout hit", second.CacheInfo)
	}
	if !strings.Contains(logs.String(), "truncated") {
		t.Errorf("cached run did not log layout warnings:\n%s", logs.String())
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"unknown preset", Options{Preset: "rev99"}, errors.ErrCodeInvalidPreset},
		{"negative count", Options{Distribution: json.RawMessage(`{"2.1": -3}`)}, errors.ErrCodeInvalidDistribution},
		{"too short", Options{Height: 700}, errors.ErrCodeLayoutOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, fmt.Errorf("get: %w", cache.ErrNetwork)
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return fmt.Errorf("set: %w", cache.ErrNetwork)
}

func (brokenCache) Delete(context.Context, string) error { return nil }
func (brokenCache) Close() error                         { return nil }

func TestExecuteSurvivesBrokenCache(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(brokenCache{}, nil, log.NewWithOptions(&buf, log.Options{}))

	res, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("missing svg artifact")
	}
	if !strings.Contains(buf.String(), "cache write failed") {
		t.Errorf("expected cache warning, got:\n%s", buf.String())
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

func (h *recordingHooks) OnLayoutStart(_ context.Context, preset string, modes int) {
	h.record(fmt.Sprintf("layout-start:%s:%d", preset, modes))
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, preset string, _ time.Duration, err error) {
	h.record(fmt.Sprintf("layout-done:%s:%v", preset, err == nil))
}

func (h *recordingHooks) OnRenderStart(_ context.Context, formats []string) {
	h.record("render-start:" + strings.Join(formats, ","))
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) { h.record("hit:" + keyType) }

func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) { h.record("miss:" + keyType) }

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r, _ := newTestRunner(t)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), Options{Preset: "rev6"}); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"layout-start:rev6:14", "miss:layout", "layout-done:rev6:true",
		"render-start:svg", "miss:artifact",
		"layout-start:rev6:14", "hit:layout", "layout-done:rev6:true",
		"render-start:svg", "hit:artifact",
	}
	if strings.Join(hooks.events, " ") != strings.Join(want, " ") {
		t.Errorf("events =\n  %v\nwant\n  %v", hooks.events, want)
	}
}
