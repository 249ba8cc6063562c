package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines carry a "15:04:05.00" timestamp
// and go to w, which is stderr outside of tests.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a step such as a download and reports it at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
//
//	DEBU fetched description url=https://example.com/g.json bytes=812 took=41ms
func (p *progress) done(msg string, keyvals ...any) {
	took := time.Since(p.start).Round(time.Millisecond)
	p.logger.Debug(msg, append(keyvals, "took", took)...)
}
