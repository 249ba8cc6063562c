package httputil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/gdlkit/pkg/buildinfo"
	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
)

// MaxBodyBytes limits the size of a fetched description.
const MaxBodyBytes = 8 << 20

// Fetcher downloads descriptions with retry and optional caching.
type Fetcher struct {
	Client   *http.Client
	Cache    *ResponseCache // optional
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a fetcher with a 30 second client timeout and three
// attempts starting one second apart. c may be nil.
func NewFetcher(c *ResponseCache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		Attempts: 3,
		Delay:    time.Second,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch returns the body at rawURL. A fresh cached response is returned
// without a request unless refresh is set. When the server cannot be reached
// and an expired response is cached, the expired response is returned.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) (*Response, error) {
	var stale *Response
	if f.Cache != nil && !refresh {
		resp, err := f.Cache.Get(rawURL)
		switch {
		case err == nil && resp != nil:
			return resp, nil
		case stderrors.Is(err, ErrExpired):
			stale = resp
		}
	}

	resp, err := f.fetch(ctx, rawURL)
	if err != nil {
		if stale != nil && cache.IsRetryable(err) {
			return stale, nil
		}
		return nil, err
	}
	if f.Cache != nil {
		_ = f.Cache.Set(resp)
	}
	return resp, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*Response, error) {
	var out *Response
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
		}
		req.Header.Set("User-Agent", "gdlkit/"+buildinfo.Version)
		req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.5")

		resp, err := f.Client.Do(req)
		if err != nil {
			return cache.Retryable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("GET %s: %s", rawURL, resp.Status)
			switch {
			case retryStatus(resp.StatusCode):
				return cache.Retryable(err)
			case resp.StatusCode == http.StatusNotFound:
				return errors.Wrap(errors.ErrCodeNotFound, err, "fetch description")
			default:
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "fetch description")
			}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
		if err != nil {
			return cache.Retryable(err)
		}
		if len(body) > MaxBodyBytes {
			return errors.New(errors.ErrCodeInvalidInput, "description at %s exceeds %d bytes", rawURL, MaxBodyBytes)
		}
		out = &Response{
			URL:         rawURL,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
			FetchedAt:   time.Now().UTC(),
		}
		return nil
	})
	if err != nil && errors.GetCode(err) == "" {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "fetch description")
	}
	return out, err
}

// Format returns the description format named by the Content-Type, or by
// the URL path's extension when the media type is generic.
func (r *Response) Format() (gdlio.Format, error) {
	if f, err := gdlio.ParseFormat(r.ContentType); err == nil {
		return f, nil
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %q", r.URL)
	}
	return gdlio.FormatFromPath(u.Path)
}

// Description decodes the body.
func (r *Response) Description() (*gdlio.Description, error) {
	format, err := r.Format()
	if err != nil {
		return nil, err
	}
	return gdlio.Read(bytes.NewReader(r.Body), format)
}
