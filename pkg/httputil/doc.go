// Package httputil fetches graph descriptions over HTTP.
//
// # Overview
//
// The CLI accepts an http(s) URL wherever it takes a description file:
//
//	gdlkit dump https://example.com/cfg.yaml
//
// [Fetcher] downloads the description with automatic retry and keeps the
// response in a [ResponseCache] so that repeated runs work offline and do
// not hit the server again until the entry expires.
//
// # Retry
//
// [Retry] retries transient failures with exponential backoff:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other responses, including 404, fail immediately.
//
// # Caching
//
// Responses are stored as JSON files under ~/.cache/gdlkit/http/ with a
// configurable TTL. They are removed by `gdlkit cache clear` together with
// the artifact cache.
package httputil
