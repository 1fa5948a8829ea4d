package mixer

import (
	"testing"
	"time"
)

// fakeClock returns whatever time it was last set to
type fakeClock struct {
	now time.Time
}

func (fc *fakeClock) read() time.Time {
	return fc.now
}

func (fc *fakeClock) advance(d time.Duration) {
	fc.now = fc.now.Add(d)
}

func TestControlTick(t *testing.T) {
	fc := &fakeClock{now: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)}
	ctl := NewControlWithClock(fc.read)

	if got := ctl.Tick(); got != 0 {
		t.Errorf("expected 0 before the clock moves, got %d", got)
	}

	tests := []struct {
		advance time.Duration
		want    uint64
	}{
		{time.Millisecond, 1},
		{999 * time.Microsecond, 1},
		{time.Microsecond, 2},
		{2 * time.Second, 2002},
		{time.Hour, 3602002},
	}
	for _, tt := range tests {
		fc.advance(tt.advance)
		if got := ctl.Tick(); got != tt.want {
			t.Errorf("after advancing %v expected %d, got %d", tt.advance, tt.want, got)
		}
		if got := ctl.Now(); got != tt.want {
			t.Errorf("elapsed after tick expected %d, got %d", tt.want, got)
		}
	}
}

func TestControlNowDoesNotResample(t *testing.T) {
	fc := &fakeClock{now: time.Unix(1000, 0)}
	ctl := NewControlWithClock(fc.read)

	fc.advance(time.Second)
	if got := ctl.Now(); got != 0 {
		t.Errorf("expected elapsed to stay at the last tick, got %d", got)
	}
	if got := ctl.Tick(); got != 1000 {
		t.Errorf("expected 1000, got %d", got)
	}
	if !ctl.Start().Equal(time.Unix(1000, 0)) {
		t.Errorf("unexpected start %v", ctl.Start())
	}
}

func TestControlClockAnomaly(t *testing.T) {
	fc := &fakeClock{now: time.Unix(1000, 0)}
	ctl := NewControlWithClock(fc.read)

	fc.advance(-5 * time.Second)
	if got := ctl.Tick(); got != 0 {
		t.Errorf("expected a clock stepping backwards to clamp to 0, got %d", got)
	}

	fc.advance(6 * time.Second)
	if got := ctl.Tick(); got != 1000 {
		t.Errorf("expected the clock to recover, got %d", got)
	}
}

func TestControlMonotonic(t *testing.T) {
	ctl := NewControl()

	first := ctl.Tick()
	time.Sleep(25 * time.Millisecond)
	second := ctl.Tick()

	if second < first {
		t.Fatalf("clock went backwards from %d to %d", first, second)
	}
	// Allow a little for the coarse timers found on some platforms
	if second-first < 20 {
		t.Errorf("expected at least 20ms to elapse, got %d", second-first)
	}
}
