package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level. It implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to a "hooks" sub-logger of l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) complete(msg string, err error, keyvals ...any) {
	if err != nil {
		keyvals = append(keyvals, "err", err)
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *LogHooks) OnBuildStart(_ context.Context, title string) {
	h.logger.Debug("build started", "graph", title)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, title string, nodeCount int, d time.Duration, err error) {
	h.complete("build finished", err, "graph", title, "nodes", nodeCount, "took", d)
}

func (h *LogHooks) OnDumpComplete(_ context.Context, title string, size int, d time.Duration, err error) {
	h.complete("dump finished", err, "graph", title, "bytes", size, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.complete("render finished", err, "format", format, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}
