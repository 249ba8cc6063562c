package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/observability"
	"github.com/matzehuels/gdlkit/pkg/render"
	"github.com/matzehuels/gdlkit/pkg/store"
)

func ptr[T any](v T) *T { return &v }

const mainGDL = `graph: {
title: "main"
node: {
label: "Entry"
title: "n1"
}
graph: {
title: "main.0"
node: {
label: "Exit"
title: "anonymous.0"
}
}
backedge: {
sourcename: "n1"
targetname: "main.0"
}
}
`

func mainDesc() *gdlio.Description {
	return &gdlio.Description{
		Title: ptr("main"),
		Nodes: []gdlio.NodeDesc{{Title: ptr("n1"), Label: ptr("Entry")}},
		Subgraphs: []gdlio.Description{{
			Title: ptr("main.0"),
			Nodes: []gdlio.NodeDesc{{Label: ptr("Exit")}},
		}},
		Edges: []gdlio.EdgeDesc{{Source: "n1", Target: "main.0", Kind: "backedge"}},
	}
}

// memCache is a Cache that records its traffic.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"gdl", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"gdl", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{FormatGDL}, opts.Formats); diff != "" {
		t.Errorf("Formats (-want +got):\n%s", diff)
	}
	if opts.Layout != DefaultLayout || opts.Scale != DefaultScale || opts.Logger == nil {
		t.Errorf("defaults not applied: layout %q scale %v logger %v", opts.Layout, opts.Scale, opts.Logger)
	}
	if opts.NeedsPreview() {
		t.Error("gdl alone should not need a preview")
	}

	bad := Options{Layout: "sfdp-ish"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad layout err = %v, want INVALID_INPUT", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"svg"}, Layout: "neato"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Layout != before.Layout || opts.Scale != before.Scale || len(opts.Formats) != 1 {
		t.Error("options changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Layout: "neato", Scale: 3, Detailed: true}

	if got := opts.ArtifactKeyOpts(FormatDOT); got.Layout != "" || got.Scale != 0 || !got.Detailed {
		t.Errorf("dot key opts = %+v; layout and scale do not change DOT", got)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG); got.Layout != "neato" || got.Scale != 0 {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 3 {
		t.Errorf("png key opts = %+v", got)
	}
}

func TestDescriptionHash(t *testing.T) {
	a, err := DescriptionHash(mainDesc())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := DescriptionHash(mainDesc())
	if a != b {
		t.Error("DescriptionHash should be deterministic")
	}

	changed := mainDesc()
	changed.Nodes[0].Label = ptr("Start")
	if c, _ := DescriptionHash(changed); c == a {
		t.Error("different descriptions should hash differently")
	}
}

func TestDump(t *testing.T) {
	got, err := Dump(mainDesc())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(mainGDL, string(got)); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerDumpCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil, nil)

	first, err := r.Dump(ctx, mainDesc(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.DumpHit {
		t.Error("first dump should miss")
	}
	if string(first.GDL) != mainGDL {
		t.Errorf("GDL = %q", first.GDL)
	}
	if first.Hash != cache.Hash([]byte(mainGDL)) {
		t.Error("Hash should be the hash of the document text")
	}
	if first.Stats.GraphCount != 2 || first.Stats.NodeCount != 2 || first.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %+v", first.Stats)
	}

	second, err := r.Dump(ctx, mainDesc(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.DumpHit {
		t.Error("second dump should hit the cache")
	}
	if !bytes.Equal(first.GDL, second.GDL) {
		t.Error("cached text differs from the built text")
	}

	refreshed, err := r.Dump(ctx, mainDesc(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.DumpHit {
		t.Error("Refresh should bypass the cache")
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}
}

func TestRunnerDumpAnonymousIsStable(t *testing.T) {
	desc := &gdlio.Description{Nodes: []gdlio.NodeDesc{{}, {}}}
	r := NewRunner(nil, nil, nil, nil)

	a, err := r.Dump(context.Background(), desc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Dump(context.Background(), desc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.GDL, b.GDL) {
		t.Errorf("rebuilding an anonymous description changed its text:\n%s\n%s", a.GDL, b.GDL)
	}
	if !strings.Contains(string(a.GDL), `title: "anonymous.0"`) {
		t.Errorf("root should be anonymous.0:\n%s", a.GDL)
	}
	if a.Title != "(anonymous)" {
		t.Errorf("Title = %q", a.Title)
	}
}

func TestRunnerDumpInvalid(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil, nil)
	desc := &gdlio.Description{Edges: []gdlio.EdgeDesc{{Source: "a", Target: "b", Kind: "sideways"}}}

	_, err := r.Dump(context.Background(), desc, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if c.sets != 0 {
		t.Error("failed builds should not be cached")
	}

	if _, err := r.Dump(context.Background(), nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil description err = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerDumpSave(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewRunner(nil, nil, s, nil)

	res, err := r.Dump(ctx, mainDesc(), Options{Save: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.DocumentID == "" {
		t.Fatal("DocumentID not set")
	}
	rec, err := s.Get(ctx, res.DocumentID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "main" || rec.GDL != mainGDL || rec.Hash != res.Hash {
		t.Errorf("stored record = %+v", rec)
	}

	again, err := r.Dump(ctx, mainDesc(), Options{Save: true})
	if err != nil {
		t.Fatal(err)
	}
	if again.DocumentID != res.DocumentID {
		t.Error("saving the same document twice should return the same ID")
	}
}

func TestRunnerDumpSaveWithoutStore(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Dump(context.Background(), mainDesc(), Options{Save: true})
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("err = %v, want STORAGE", err)
	}
}

func TestRunnerRenderTextFormats(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil, nil)
	opts := Options{Formats: []string{FormatGDL, FormatDOT}}

	res, err := r.Render(ctx, mainDesc(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Artifacts[FormatGDL]) != mainGDL {
		t.Errorf("gdl artifact = %q", res.Artifacts[FormatGDL])
	}
	dot := string(res.Artifacts[FormatDOT])
	for _, want := range []string{"digraph G {", `subgraph "cluster_main.0"`, `"n1" -> "main.0" [dir=back, style=dashed];`} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot artifact missing %q:\n%s", want, dot)
		}
	}
	if res.CacheInfo.RenderHit {
		t.Error("first render should miss")
	}

	again, err := r.Render(ctx, mainDesc(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit || !again.CacheInfo.DumpHit {
		t.Errorf("second render CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if diff := cmp.Diff(res.Artifacts, again.Artifacts); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}
}

func TestRunnerRenderSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	res, err := r.Render(context.Background(), mainDesc(), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	svg := string(res.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Entry") {
		t.Errorf("unexpected svg:\n%s", svg)
	}
	if _, ok := res.Artifacts[FormatGDL]; ok {
		t.Error("only requested formats should be returned")
	}
}

func TestRunnerRenderConverted(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, nil, nil)
	res, err := r.Render(context.Background(), mainDesc(), Options{Formats: []string{FormatPDF, FormatPNG}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG header")
	}
}

func TestRunnerRenderRejectsFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Render(context.Background(), mainDesc(), Options{Formats: []string{"json"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	builds  int
	dumps   int
	renders []string
}

func (h *countingHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builds++
}

func (h *countingHooks) OnDumpComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dumps++
}

func (h *countingHooks) OnRenderComplete(_ context.Context, formats string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, formats)
}

func TestRunnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &countingHooks{}
	observability.SetPipelineHooks(h)

	r := NewRunner(newMemCache(), nil, nil, nil)
	opts := Options{Formats: []string{FormatGDL, FormatDOT}}
	for i := 0; i < 2; i++ {
		if _, err := r.Render(context.Background(), mainDesc(), opts); err != nil {
			t.Fatal(err)
		}
	}

	if h.builds != 1 || h.dumps != 1 {
		t.Errorf("builds %d dumps %d, want 1 each", h.builds, h.dumps)
	}
	if diff := cmp.Diff([]string{"dot"}, h.renders); diff != "" {
		t.Errorf("renders (-want +got):\n%s", diff)
	}
}
