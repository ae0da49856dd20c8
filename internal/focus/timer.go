// Package focus implements the Pomodoro-style focus timer: a countdown state
// machine advanced one second per tick, and a Controller that drives it from
// an injected Clock for exactly one active task at a time.
package focus

import (
	"errors"
	"fmt"
)

const (
	MinMinutes     = 5
	MaxMinutes     = 60
	MinuteStep     = 5
	DefaultMinutes = 25
)

var (
	ErrRunning         = errors.New("timer is running")
	ErrInvalidDuration = errors.New("invalid focus duration")
	ErrNoActiveTask    = errors.New("no active task")
)

// ValidateMinutes checks a duration against the 5..60 minute range in steps of 5.
func ValidateMinutes(minutes int) error {
	if minutes < MinMinutes || minutes > MaxMinutes || minutes%MinuteStep != 0 {
		return fmt.Errorf("%w: %d minutes (want %d-%d in steps of %d)",
			ErrInvalidDuration, minutes, MinMinutes, MaxMinutes, MinuteStep)
	}
	return nil
}

// Timer is the countdown state. It is not safe for concurrent use; the
// Controller serializes access.
type Timer struct {
	minutes   int
	remaining int
	running   bool
}

func NewTimer(minutes int) (*Timer, error) {
	if err := ValidateMinutes(minutes); err != nil {
		return nil, err
	}
	return &Timer{minutes: minutes, remaining: minutes * 60}, nil
}

// SetDuration changes the length of a stopped timer and rewinds it.
func (t *Timer) SetDuration(minutes int) error {
	if t.running {
		return ErrRunning
	}
	if err := ValidateMinutes(minutes); err != nil {
		return err
	}
	t.minutes = minutes
	t.remaining = minutes * 60
	return nil
}

// Start runs the countdown if any time is left.
func (t *Timer) Start() bool {
	if t.remaining <= 0 {
		return false
	}
	t.running = true
	return true
}

func (t *Timer) Pause() {
	t.running = false
}

// Toggle pauses a running timer or starts a stopped one. It reports whether
// the timer is running afterwards.
func (t *Timer) Toggle() bool {
	if t.running {
		t.Pause()
		return false
	}
	return t.Start()
}

// Reset stops the timer and rewinds it to the full duration.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.minutes * 60
}

// Tick advances a running timer by one second. It returns true only on the
// tick that reaches zero, which also stops the timer.
func (t *Timer) Tick() bool {
	if !t.running || t.remaining <= 0 {
		return false
	}
	t.remaining--
	if t.remaining == 0 {
		t.running = false
		return true
	}
	return false
}

func (t *Timer) Minutes() int   { return t.minutes }
func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Total() int     { return t.minutes * 60 }
func (t *Timer) Running() bool  { return t.running }

// Progress is the share of the countdown still left, 100 when rewound and 0
// when finished.
func (t *Timer) Progress() float64 {
	return float64(t.remaining) / float64(t.Total()) * 100
}

// Clock renders the remaining time as mm:ss.
func (t *Timer) Clock() string {
	return FormatClock(t.remaining)
}

// FormatClock renders seconds as zero-padded mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
