package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/gdlkit/pkg/cache"
	gdlerrors "github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
)

var errFlaky = errors.New("connection reset")

func testFetcher(c *ResponseCache) *Fetcher {
	f := NewFetcher(c)
	f.Delay = time.Millisecond
	return f
}

// flakyServer fails the first failures requests with status, then serves
// body as YAML.
func flakyServer(t *testing.T, failures int32, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("bad request")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success first try", 0, nil, 1, nil},
		{"non-retryable stops", 1, permanent, 1, permanent},
		{"retry then succeed", 2, cache.Retryable(errFlaky), 3, nil},
		{"gives up", 5, cache.Retryable(errFlaky), 3, errFlaky},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error { return cache.Retryable(errFlaky) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFetch(t *testing.T) {
	srv, calls := flakyServer(t, 2, http.StatusBadGateway, "title: remote\n")

	resp, err := testFetcher(nil).Fetch(context.Background(), srv.URL+"/cfg", false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	d, err := resp.Description()
	if err != nil {
		t.Fatalf("Description: %v", err)
	}
	if d.Title == nil || *d.Title != "remote" {
		t.Errorf("Title = %v", d.Title)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   gdlerrors.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, gdlerrors.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, gdlerrors.ErrCodeInvalidInput, 1},
		{"rate limited", http.StatusTooManyRequests, gdlerrors.ErrCodeInvalidInput, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := flakyServer(t, 100, tt.status, "")
			_, err := testFetcher(nil).Fetch(context.Background(), srv.URL, false)
			if !gdlerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestFetchCaches(t *testing.T) {
	srv, calls := flakyServer(t, 0, 0, "title: cached\n")
	c, err := NewResponseCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	f := testFetcher(c)

	for i := 0; i < 2; i++ {
		if _, err := f.Fetch(context.Background(), srv.URL, false); err != nil {
			t.Fatal(err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (second fetch from cache)", calls.Load())
	}

	if _, err := f.Fetch(context.Background(), srv.URL, true); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("refresh should bypass the cache, calls = %d", calls.Load())
	}
}

func TestFetchFallsBackToStale(t *testing.T) {
	c, err := NewResponseCache(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	srv, _ := flakyServer(t, 100, http.StatusServiceUnavailable, "")
	stale := &Response{URL: srv.URL, Body: []byte("title: old\n"), ContentType: "application/yaml", FetchedAt: time.Now().Add(-time.Hour)}
	if err := c.Set(stale); err != nil {
		t.Fatal(err)
	}

	resp, err := testFetcher(c).Fetch(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(resp.Body) != "title: old\n" {
		t.Errorf("Body = %q, want the stale entry", resp.Body)
	}
}

func TestResponseCache(t *testing.T) {
	c, err := NewResponseCache(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if resp, err := c.Get("https://example.com/a.json"); resp != nil || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", resp, err)
	}

	want := &Response{URL: "https://example.com/a.json", Body: []byte("{}"), FetchedAt: time.Now()}
	if err := c.Set(want); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(want.URL)
	if err != nil || got == nil || string(got.Body) != "{}" {
		t.Fatalf("Get = %v, %v", got, err)
	}

	time.Sleep(20 * time.Millisecond)
	got, err = c.Get(want.URL)
	if !errors.Is(err, ErrExpired) || got == nil {
		t.Errorf("expired Get = %v, %v; want stale response and ErrExpired", got, err)
	}

	n, err := c.Clear()
	if err != nil || n != 1 {
		t.Errorf("Clear() = %d, %v; want 1, nil", n, err)
	}
	if resp, _ := c.Get(want.URL); resp != nil {
		t.Error("response survived Clear")
	}
}

func TestResponseFormat(t *testing.T) {
	tests := []struct {
		url, contentType string
		want             gdlio.Format
		wantErr          bool
	}{
		{"https://h/x", "application/json", gdlio.FormatJSON, false},
		{"https://h/cfg.toml", "text/plain; charset=utf-8", gdlio.FormatTOML, false},
		{"https://h/cfg.yml?ref=main", "", gdlio.FormatYAML, false},
		{"https://h/cfg", "text/html", "", true},
	}
	for _, tt := range tests {
		got, err := (&Response{URL: tt.url, ContentType: tt.contentType}).Format()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Format(%q, %q) = %q, %v; want %q", tt.url, tt.contentType, got, err, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	for s, want := range map[string]bool{
		"https://example.com/a.yaml": true,
		"http://localhost:8080/x":    true,
		"cfg.yaml":                   false,
		"file:///tmp/cfg.yaml":       false,
	} {
		if got := IsURL(s); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", s, got, want)
		}
	}
}
