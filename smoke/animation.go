// Package smoke drives the chimney smoke sprite through its fade-in, idle
// loop and fade-out frames.
package smoke

import (
	"time"

	"github.com/milk9111/trainride/timer"
)

type Phase int

const (
	Stopped Phase = iota
	FadeIn
	Idle
	FadeOut
)

func (p Phase) String() string {
	switch p {
	case FadeIn:
		return "fadeIn"
	case Idle:
		return "idle"
	case FadeOut:
		return "fadeOut"
	default:
		return "stopped"
	}
}

// Animation is the smoke state machine. The zero value is stopped.
type Animation struct {
	phase    Phase
	frame    int
	period   time.Duration
	interval timer.Interval
}

// New returns a stopped animation ticking every period. A non-positive
// period uses the authored frame duration.
func New(period time.Duration) *Animation {
	if period <= 0 {
		period = FrameDurationMillis * time.Millisecond
	}
	return &Animation{period: period}
}

func (a *Animation) Phase() Phase {
	return a.phase
}

func (a *Animation) Frame() int {
	return clampFrame(a.frame)
}

// Visible reports whether anything should be drawn.
func (a *Animation) Visible() bool {
	return a.phase != Stopped
}

// SetActive feeds the external moving signal into the state machine.
func (a *Animation) SetActive(active bool) {
	switch {
	case active && a.phase == Stopped:
		a.phase = FadeIn
		a.frame = FadeInStart
		a.interval.Start(a.framePeriod())
	case !active && (a.phase == FadeIn || a.phase == Idle):
		a.interval.Stop()
		a.phase = FadeOut
		a.frame = FadeOutStart
		a.interval.Start(a.framePeriod())
	}
}

// Update advances the frame timer by dt.
func (a *Animation) Update(dt time.Duration) {
	a.interval.Advance(dt, a.Tick)
}

// Tick advances exactly one frame.
func (a *Animation) Tick() {
	next := a.frame + 1
	switch {
	case a.phase == FadeIn && a.frame >= FadeInEnd:
		a.phase = Idle
		next = IdleStart
	case a.phase == Idle && a.frame >= IdleEnd:
		next = IdleStart
	case a.phase == FadeOut && a.frame >= FadeOutEnd:
		a.phase = Stopped
		a.interval.Stop()
		next = 0
	case a.phase == Stopped:
		a.interval.Stop()
		next = 0
	}
	a.frame = clampFrame(next)
}

func (a *Animation) framePeriod() time.Duration {
	if a.period <= 0 {
		return FrameDurationMillis * time.Millisecond
	}
	return a.period
}
