// Package timer provides tick-driven timers. The game loop advances them by
// a fixed dt every Update, so they behave like wall-clock timeouts while
// staying deterministic.
package timer

import "time"

// Timeout fires once after its duration has elapsed.
type Timeout struct {
	duration time.Duration
	elapsed  time.Duration
	running  bool
}

// Start (re)schedules the timeout. Any pending schedule is discarded.
func (t *Timeout) Start(d time.Duration) {
	t.duration = d
	t.elapsed = 0
	t.running = true
}

func (t *Timeout) Stop() {
	t.running = false
	t.elapsed = 0
}

func (t *Timeout) Running() bool {
	return t.running
}

// Advance moves the timeout forward by dt and reports whether it fired.
func (t *Timeout) Advance(dt time.Duration) bool {
	if !t.running {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.duration {
		return false
	}
	t.Stop()
	return true
}

// Interval fires every period until stopped.
type Interval struct {
	period  time.Duration
	elapsed time.Duration
	running bool
	gen     uint64
}

// Start (re)schedules the interval. Any pending schedule is discarded, so a
// callback that restarts its own interval never sees the old schedule fire.
func (iv *Interval) Start(period time.Duration) {
	iv.period = period
	iv.elapsed = 0
	iv.running = period > 0
	iv.gen++
}

func (iv *Interval) Stop() {
	iv.running = false
	iv.elapsed = 0
	iv.gen++
}

func (iv *Interval) Running() bool {
	return iv.running
}

// Advance moves the interval forward by dt and calls fire once per elapsed
// period. It returns the number of times fire was called.
func (iv *Interval) Advance(dt time.Duration, fire func()) int {
	if !iv.running {
		return 0
	}
	iv.elapsed += dt
	fired := 0
	for iv.running && iv.elapsed >= iv.period {
		iv.elapsed -= iv.period
		gen := iv.gen
		fired++
		if fire != nil {
			fire()
		}
		if iv.gen != gen {
			break
		}
	}
	return fired
}
