package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTick is the frame interval.
const spinnerTick = 80 * time.Millisecond

// Spinner animates a status line on w while a long step runs, typically a
// Graphviz render, followed by the elapsed time once it passes a second:
//
//	⠹ Rendering svg, png... 2s
//
// It stops by itself when its context is cancelled.
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	start   time.Time

	mu      sync.Mutex // serializes writes to w
	once    sync.Once
	started bool
	done    chan struct{}
	stopped chan struct{}
	width   int // length of the last frame written
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		ctx:     ctx,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.start = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.frame(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) frame(glyph string) {
	line := styleIconSpinner.Render(glyph) + " " + StyleDim.Render(s.message)
	if d := time.Since(s.start); d >= time.Second {
		line += " " + StyleDim.Render(d.Round(time.Second).String())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+line)
	s.width = max(s.width, len(line))
}

// Stop ends the animation and clears the line. Calling it again, or before
// Start, is harmless.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// StopWithSuccess stops the spinner and prints message as a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess(s.w, "%s", message)
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError(s.w, "%s", message)
}

// Cancelled reports whether the spinner's context was cancelled, as opposed
// to the spinner being stopped.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
