package mixer

// This file contains the clock that supplies the elapsed time segments are
// sampled at

import (
	"time"

	logxi "github.com/mgutz/logxi/v1"
)

var (
	logger = logxi.New("mixer")
)

// SetLogger redirects the package logging, used by applications that own the
// terminal. Call it before starting a Player
func SetLogger(l logxi.Logger) {
	logger = l
}

// Control is the animation clock. It holds the instant it was created at and
// the instant it was last ticked
type Control struct {
	start time.Time
	now   time.Time

	clock func() time.Time
}

// NewControl starts a clock driven by the system time
func NewControl() (ctl *Control) {
	return NewControlWithClock(time.Now)
}

// NewControlWithClock starts a clock driven by the supplied time source
func NewControlWithClock(clock func() time.Time) (ctl *Control) {
	now := clock()
	return &Control{
		start: now,
		now:   now,
		clock: clock,
	}
}

// Tick samples the time source and returns the milliseconds elapsed since the
// clock was created. A time source that steps backwards past the start instant
// yields zero rather than an error
func (ctl *Control) Tick() (elapsedMs uint64) {
	ctl.now = ctl.clock()
	return ctl.Now()
}

// Now returns the milliseconds between the start instant and the last tick
// without resampling the time source
func (ctl *Control) Now() (elapsedMs uint64) {
	dt := ctl.now.Sub(ctl.start)
	if dt < 0 {
		logger.Warn("clock anomaly, elapsed time clamped to zero", "elapsed", dt.String())
		return 0
	}
	return uint64(dt / time.Millisecond)
}

// Start returns the instant the clock was created
func (ctl *Control) Start() time.Time {
	return ctl.start
}
