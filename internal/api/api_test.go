package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/observability"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
	"github.com/matzehuels/gdlkit/pkg/store"
)

const mainJSON = `{
  "title": "main",
  "nodes": [{"title": "n1", "label": "Entry"}],
  "graphs": [{"title": "main.0", "nodes": [{"label": "Exit"}]}],
  "edges": [{"source": "n1", "target": "main.0", "kind": "backedge"}]
}`

const mainYAML = `title: main
nodes:
  - title: n1
    label: Entry
graphs:
  - title: main.0
    nodes:
      - label: Exit
edges:
  - source: n1
    target: main.0
    kind: backedge
`

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

// memCache is a minimal in-memory Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

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
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error { return nil }
func (c *memCache) Close() error                                { return nil }

func newTestServer(t *testing.T, s store.Store, opts Options) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(&memCache{data: make(map[string][]byte)}, nil, s, logger)
	srv := httptest.NewServer(New(runner, logger, opts))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(data)
}

func decodeError(t *testing.T, body string) errorDetail {
	t.Helper()
	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err != nil {
		t.Fatalf("error body is not JSON: %v\n%s", err, body)
	}
	return eb.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, Options{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.Unmarshal([]byte(body), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Build.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestDump(t *testing.T) {
	srv := newTestServer(t, nil, Options{})

	for _, tt := range []struct {
		name        string
		contentType string
		body        string
		wantCache   string
	}{
		{"json", "application/json", mainJSON, "MISS"},
		{"default content type", "", mainJSON, "HIT"},
		{"yaml", "application/yaml", mainYAML, "HIT"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/v1/dump", tt.contentType, tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if diff := cmp.Diff(mainGDL, body); diff != "" {
				t.Errorf("body (-want +got):\n%s", diff)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := resp.Header.Get("X-Cache"); got != tt.wantCache {
				t.Errorf("X-Cache = %q, want %q", got, tt.wantCache)
			}
			if resp.Header.Get("X-Document-Hash") == "" {
				t.Error("X-Document-Hash missing")
			}
		})
	}
}

func TestDumpErrors(t *testing.T) {
	srv := newTestServer(t, nil, Options{MaxBodyBytes: 512})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    errors.Code
	}{
		{"invalid kind", "application/json", `{"edges": [{"source": "a", "target": "b", "kind": "sideways"}]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed json", "application/json", `{"title": `, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", "application/json", `{"colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unsupported type", "text/csv", `a,b`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad save flag", "application/json", mainJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", "application/json", `{"label": "` + strings.Repeat("x", 1024) + `"}`, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := srv.URL + "/v1/dump"
			if tt.name == "bad save flag" {
				url += "?save=maybe"
			}
			resp, body := do(t, http.MethodPost, url, tt.contentType, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if got := decodeError(t, body); got.Code != string(tt.wantCode) || got.Message == "" {
				t.Errorf("error = %+v, want code %s", got, tt.wantCode)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, nil, Options{})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/render?format=dot", "application/json", mainJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(body, "digraph G {") {
		t.Errorf("body is not DOT:\n%s", body)
	}

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/render", "application/json", mainJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != "image/svg+xml" || !strings.Contains(body, "<svg") {
		t.Errorf("default render should be SVG, got %q", resp.Header.Get("Content-Type"))
	}
}

func TestRenderRejects(t *testing.T) {
	srv := newTestServer(t, nil, Options{})

	for _, q := range []string{"format=json", "layout=spiral", "scale=0", "scale=abc", "detailed=sometimes"} {
		t.Run(q, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/v1/render?"+q, "application/json", mainJSON)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", resp.StatusCode, body)
			}
		})
	}
}

func TestDocuments(t *testing.T) {
	srv := newTestServer(t, store.NewMemoryStore(), Options{})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/dump?save=true", "application/json", mainJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	id := resp.Header.Get("X-Document-ID")
	if id == "" {
		t.Fatal("X-Document-ID missing")
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/documents", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d: %s", resp.StatusCode, body)
	}
	var list listResponse
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Documents) != 1 || list.Documents[0].ID != id || list.Documents[0].GDL != "" {
		t.Errorf("list = %+v", list.Documents)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/documents/"+id, "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.StatusCode, body)
	}
	var rec store.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Title != "main" || rec.GDL != mainGDL {
		t.Errorf("record = %+v", rec)
	}

	tests := []struct {
		path       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"/v1/documents/" + uuid.NewString(), http.StatusNotFound, errors.ErrCodeNotFound},
		{"/v1/documents/not-an-id", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/documents?limit=0", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/nothing", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := do(t, http.MethodGet, srv.URL+tt.path, "", "")
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if got := decodeError(t, body); got.Code != string(tt.wantCode) {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
		})
	}
}

func TestDocumentsWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil, Options{})

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/v1/documents"},
		{http.MethodGet, "/v1/documents/" + uuid.NewString()},
		{http.MethodPost, "/v1/dump?save=1"},
	} {
		resp, body := do(t, tt.method, srv.URL+tt.path, "application/json", mainJSON)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s %s status = %d, want 503", tt.method, tt.path, resp.StatusCode)
			continue
		}
		if got := decodeError(t, body); got.Code != string(errors.ErrCodeStorage) {
			t.Errorf("%s %s code = %s", tt.method, tt.path, got.Code)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil, Options{})
	resp, body := do(t, http.MethodGet, srv.URL+"/v1/dump", "", "")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405: %s", resp.StatusCode, body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeInvalidInput:  http.StatusBadRequest,
		errors.ErrCodeInvalidFormat: http.StatusBadRequest,
		errors.ErrCodeNotFound:      http.StatusNotFound,
		errors.ErrCodeCycle:         http.StatusUnprocessableEntity,
		errors.ErrCodeRenderFailed:  http.StatusInternalServerError,
		errors.ErrCodeStorage:       http.StatusServiceUnavailable,
		errors.ErrCodeInternal:      http.StatusInternalServerError,
		"":                          http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%q) = %d, want %d", code, got, want)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	srv := newTestServer(t, store.NewMemoryStore(), Options{})
	do(t, http.MethodGet, srv.URL+"/v1/documents/"+uuid.NewString(), "", "")
	do(t, http.MethodGet, srv.URL+"/healthz", "", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if diff := cmp.Diff([]string{"GET /v1/documents/{id}", "GET /healthz"}, hooks.routes); diff != "" {
		t.Errorf("routes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{http.StatusNotFound, http.StatusOK}, hooks.status); diff != "" {
		t.Errorf("status (-want +got):\n%s", diff)
	}
}
