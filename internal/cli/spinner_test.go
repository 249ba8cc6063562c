package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not report the parent context as cancelled")
	}
	if !strings.Contains(buf.String(), "Rendering...") {
		t.Errorf("spinner output = %q, want the message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Testing with timeout...")
	s.Start()
	time.Sleep(60 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Never started")
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("an unstarted spinner should write nothing, got %q", buf.String())
	}
}

func TestSpinnerShowsElapsedTime(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering svg...")
	s.start = time.Now().Add(-3 * time.Second)
	s.frame(spinnerFrames[0])
	if !strings.Contains(buf.String(), "Rendering svg... 3s") {
		t.Errorf("frame = %q, want the elapsed time", buf.String())
	}
}

func TestSpinnerStopWithStatus(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
		want string
	}{
		{"success", func(s *Spinner) { s.StopWithSuccess("Done!") }, iconSuccess + " Done!"},
		{"error", func(s *Spinner) { s.StopWithError("Failed!") }, iconError + " Failed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := newSpinner(context.Background(), &buf, "Working...")
			s.Start()
			time.Sleep(20 * time.Millisecond)
			tt.stop(s)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
