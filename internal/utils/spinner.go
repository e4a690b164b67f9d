package utils

import (
	"time"
)

// SpinnerInterval is the frame advance rate. Views that animate a spinner
// schedule their re-render ticks at the same rate so every tick lands on a
// fresh frame.
const SpinnerInterval = 100 * time.Millisecond

// Spinner is a time-driven loading indicator. View advances the frame at most
// once per interval, so it is safe to call on every render.
type Spinner struct {
	frames []string
	index  int
	last   time.Time
}

func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// View returns the current frame of the spinner
func (s *Spinner) View() string {
	now := time.Now()
	if now.Sub(s.last) >= SpinnerInterval {
		s.index = (s.index + 1) % len(s.frames)
		s.last = now
	}
	return s.frames[s.index]
}
