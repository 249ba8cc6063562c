package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [ResponseCache.Get] when a cached response exists
// but has exceeded its time-to-live (TTL). The stale response is returned
// alongside it so that callers can fall back to it when the server is down.
var ErrExpired = errors.New("cache entry expired")

// Response is a fetched body with its media type.
type Response struct {
	URL         string    `json:"url"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// ResponseCache stores responses as JSON files named by the SHA-256 hash of
// their URL. A TTL of 0 means entries never expire.
type ResponseCache struct {
	dir string
	ttl time.Duration
}

// NewResponseCache creates a cache in dir, creating the directory if needed.
func NewResponseCache(dir string, ttl time.Duration) (*ResponseCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResponseCache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *ResponseCache) Dir() string { return c.dir }

// Get returns the cached response for url.
//
//   - (resp, nil): fresh hit
//   - (nil, nil): miss
//   - (resp, ErrExpired): stale hit
//   - (nil, err): unreadable entry
func (c *ResponseCache) Get(url string) (*Response, error) {
	data, err := os.ReadFile(c.keyPath(url))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if c.ttl > 0 && time.Since(resp.FetchedAt) > c.ttl {
		return &resp, ErrExpired
	}
	return &resp, nil
}

// Set stores resp under its URL.
func (c *ResponseCache) Set(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(resp.URL), data, 0o644)
}

func (c *ResponseCache) keyPath(url string) string {
	h := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".json")
}

// Clear removes every cached response and reports how many were removed.
func (c *ResponseCache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if os.Remove(filepath.Join(c.dir, e.Name())) == nil {
			count++
		}
	}
	return count, nil
}
