package mixer

// This file contains the player which on a regular basis ticks the animation
// clock, samples the strip and hands any frame that differs from the last one
// on to the fan out for display.
//
// The player goroutine is the only code that touches the State once it has
// been started, edits coming from the presentation layer are queued to it as
// functions and applied between frames

import (
	"bytes"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/karlmutch/errors"
)

type editReq struct {
	fn      func(state *State) errors.Error
	resultC chan errors.Error
}

// Player animates a strip
type Player struct {
	control *Control
	state   *State
	refresh time.Duration

	last    []byte
	running atomic.Bool
	editC   chan *editReq
	doneC   chan struct{}
}

// NewPlayer creates a player sampling a copy of state every refresh interval
// against the supplied clock. Later changes go through Edit
func NewPlayer(state *State, control *Control, refresh time.Duration) (p *Player) {
	if refresh <= 0 {
		refresh = 30 * time.Millisecond
	}
	return &Player{
		control: control,
		state:   state.Clone(),
		refresh: refresh,
		editC:   make(chan *editReq),
		doneC:   make(chan struct{}),
	}
}

// Step ticks the clock and samples the strip. changed is false when the frame
// shows the same pixels as the previous one returned from Step.
//
// Step drives a player by hand and so only works before Start, once the player
// goroutine owns the strip it returns a nil frame
func (p *Player) Step() (frame *Frame, changed bool) {
	if p.running.Load() {
		return nil, false
	}
	return p.step()
}

func (p *Player) step() (frame *Frame, changed bool) {
	frame = NewFrame(p.state, p.control.Tick())

	hash := frame.Digest()
	if bytes.Equal(p.last, hash) {
		return frame, false
	}
	p.last = hash
	return frame, true
}

func (p *Player) apply(req *editReq) {
	err := req.fn(p.state)
	if err == nil {
		// Force the next frame out even when the edit is not yet visible
		p.last = nil
	}
	req.resultC <- err
}

// Edit queues fn to be run against the strip by the player goroutine and waits
// for its result. Before Start the edit is applied directly, once the player
// has stopped edits are rejected
func (p *Player) Edit(fn func(state *State) errors.Error) (err errors.Error) {
	req := &editReq{
		fn:      fn,
		resultC: make(chan errors.Error, 1),
	}
	if !p.running.Load() {
		p.apply(req)
		return <-req.resultC
	}
	select {
	case p.editC <- req:
	case <-p.doneC:
		return kindErr(msgNotRunning)
	}
	select {
	case err = <-req.resultC:
		return err
	case <-p.doneC:
		return kindErr(msgNotRunning)
	}
}

func reportError(err errors.Error, errorC chan<- errors.Error) {
	select {
	case errorC <- err:
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

func (p *Player) run(frameC chan<- *Frame, errorC chan<- errors.Error, quitC <-chan struct{}) {
	defer close(p.doneC)

	tick := time.NewTicker(p.refresh)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			frame, changed := p.step()
			if !changed {
				continue
			}
			select {
			case frameC <- frame:
			case <-time.After(p.refresh):
				err := kindErr(msgFrameDropped).With("elapsed", frame.Elapsed)
				go reportError(err, errorC)
			case <-quitC:
				return
			}
		case req := <-p.editC:
			p.apply(req)
		case <-quitC:
			return
		}
	}
}

// Done is closed once the player goroutine has exited
func (p *Player) Done() <-chan struct{} {
	return p.doneC
}
