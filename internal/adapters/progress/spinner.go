package progress

import (
	"context"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// SpinnerSink renders pipeline progress with a terminal spinner.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false

	return &SpinnerSink{spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		suffix := event.Message
		if event.Stage != "" {
			suffix = color.New(color.FgYellow).Sprint(event.Stage) + " " + event.Message
		}
		r.spinner.Suffix = " " + suffix
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Message != "" {
		color.New(color.FgGreen).Printf("✓ %s\n", event.Message)
	}
}

// Info prints an info message, pausing the spinner while it writes.
func (r *SpinnerSink) Info(message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	color.New(color.FgCyan).Println(message)

	if wasActive {
		r.spinner.Start()
	}
}

// Error prints an error message, pausing the spinner while it writes.
func (r *SpinnerSink) Error(message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	color.New(color.FgRed).Println(message)

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
