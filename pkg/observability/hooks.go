// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about document builds, rendering, cache operations and
// served HTTP requests.
//
// # Architecture
//
// Each event category has a hook interface with a no-op default. Hooks are
// registered by main, never by libraries, so pkg/pipeline and internal/api
// stay free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup. gdlkit --verbose registers
// [LogHooks], which report every event at debug level:
//
//	func main() {
//	    observability.Register(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, title)
//	// ... build the document ...
//	observability.Pipeline().OnBuildComplete(ctx, title, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the document pipeline.
type PipelineHooks interface {
	// Build events: a description is turned into a document tree.
	OnBuildStart(ctx context.Context, title string)
	OnBuildComplete(ctx context.Context, title string, nodeCount int, duration time.Duration, err error)

	// Dump events: a document tree is serialized.
	OnDumpComplete(ctx context.Context, title string, size int, duration time.Duration, err error)

	// Render events: a document is converted to a preview format.
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a request once it has been routed. route is the
	// matched pattern, e.g. "/v1/documents/{id}", or "unmatched".
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnDumpComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds the registered implementation of one hook interface.
type slot[T any] struct {
	mu   sync.RWMutex
	h    T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{h: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h
}

func (s *slot[T]) set(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h = h
}

func (s *slot[T]) reset() { s.set(s.noop) }

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored. Call it at
// startup, before the first document is built.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers HTTP server hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Register installs h for every hook category it implements. [LogHooks]
// implements all three.
func Register(h any) {
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if s, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(s)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks. Tests call it to undo registrations.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
