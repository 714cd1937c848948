package carousel

import "time"

// AutoplayScheduler fires a callback every interval while active. Time is
// fed in by the host through Update, one frame at a time, so ticks always
// run on the host loop.
type AutoplayScheduler struct {
	interval time.Duration
	elapsed  time.Duration
	onTick   func()
	active   bool
}

// Start (re)arms the timer with a fresh interval. A non-positive interval
// leaves the scheduler stopped.
func (a *AutoplayScheduler) Start(interval time.Duration, onTick func()) {
	if interval <= 0 || onTick == nil {
		a.Stop()
		return
	}
	a.interval = interval
	a.onTick = onTick
	a.elapsed = 0
	a.active = true
}

// Stop disarms the timer. Pending elapsed time is discarded.
func (a *AutoplayScheduler) Stop() {
	a.active = false
	a.elapsed = 0
}

// Active reports whether the timer is armed.
func (a *AutoplayScheduler) Active() bool {
	return a.active
}

// Interval returns the interval the timer was last started with.
func (a *AutoplayScheduler) Interval() time.Duration {
	return a.interval
}

// Update advances the timer by dt and fires one tick per elapsed interval.
// A tick may stop the scheduler, in which case the remaining time is dropped.
func (a *AutoplayScheduler) Update(dt time.Duration) {
	if !a.active || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.active && a.elapsed >= a.interval {
		a.elapsed -= a.interval
		a.onTick()
	}
}
