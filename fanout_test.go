package mixer

import (
	"testing"
	"time"
)

func TestFanOutDropsSlowSubscribers(t *testing.T) {
	quitC := make(chan struct{})
	inC, subC := startFanOut(20*time.Millisecond, quitC)

	// slow is registered before fast is accepted and is never read
	slow := make(chan *Frame)
	fast := make(chan *Frame, 4)
	subC <- slow
	subC <- fast

	frame := &Frame{Elapsed: 42}
	deadline := time.After(2 * time.Second)
	for received := false; !received; {
		select {
		case inC <- frame:
		case got := <-fast:
			if got.Elapsed != 42 {
				t.Fatalf("unexpected frame %+v", got)
			}
			received = true
		case <-deadline:
			t.Fatal("timed out waiting for a frame")
		}
	}

	select {
	case _, isOpen := <-slow:
		if isOpen {
			t.Fatal("expected the slow subscriber to have been closed")
		}
	case <-time.After(time.Second):
		t.Fatal("slow subscriber was not closed")
	}

	close(quitC)
	for {
		select {
		case _, isOpen := <-fast:
			if !isOpen {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("subscriber not closed after quitting")
		}
	}
}

func TestFanOutSurvivesClosedSubscriber(t *testing.T) {
	quitC := make(chan struct{})
	defer close(quitC)
	inC, subC := startFanOut(20*time.Millisecond, quitC)

	gone := make(chan *Frame, 1)
	close(gone)
	live := make(chan *Frame, 4)
	subC <- gone
	subC <- live

	deadline := time.After(2 * time.Second)
	for {
		select {
		case inC <- &Frame{Elapsed: 7}:
		case <-live:
			return
		case <-deadline:
			t.Fatal("timed out waiting for a frame")
		}
	}
}
