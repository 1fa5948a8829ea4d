package mixer

import (
	"time"
)

// fanOut relays frames to every subscriber
type fanOut struct {
	subs    []chan *Frame
	timeout time.Duration
}

// startFanOut implements a broadcast mechanism for frames. It returns the
// channel frames are sent to and a channel that can be used to add
// subscribers. Subscribers that do not accept a frame within the timeout are
// dropped and their channels closed
func startFanOut(timeout time.Duration, quitC <-chan struct{}) (inC chan *Frame, subC chan chan *Frame) {

	inC = make(chan *Frame, 1)
	subC = make(chan chan *Frame, 1)

	fan := &fanOut{
		subs:    []chan *Frame{},
		timeout: timeout,
	}

	go func(quitC <-chan struct{}) {
		defer logger.Debug("fanout stopped")
		defer fan.closeAll()
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					fan.subs = append(fan.subs, sub)
					logger.Debug("subscription added", "subscribers", len(fan.subs))
				}
			case frame := <-inC:
				fan.broadcast(frame)
			}
		}
	}(quitC)

	return inC, subC
}

// broadcast sends the frame to each subscriber grooming out the failures
// using https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
func (fan *fanOut) broadcast(frame *Frame) {
	kept := fan.subs[:0]
	for _, ch := range fan.subs {
		if fan.send(ch, frame) {
			kept = append(kept, ch)
			continue
		}
		logger.Warn("subscription dropped, failed to send", "elapsed", frame.Elapsed)
		fan.close(ch)
	}
	for i := len(kept); i < len(fan.subs); i++ {
		fan.subs[i] = nil
	}
	fan.subs = kept
}

func (fan *fanOut) send(ch chan *Frame, frame *Frame) (sent bool) {
	// A subscriber closing its own channel shows up as a panic on send
	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case ch <- frame:
		return true
	case <-time.After(fan.timeout):
		return false
	}
}

func (fan *fanOut) close(ch chan *Frame) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}

func (fan *fanOut) closeAll() {
	for _, ch := range fan.subs {
		fan.close(ch)
	}
	fan.subs = nil
}
