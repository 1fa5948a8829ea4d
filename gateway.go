package mixer

// This file wires the player to the frame fan out

import (
	"time"

	"github.com/karlmutch/errors"
)

// Start launches the player and its fan out. The returned channel accepts
// subscriber channels, each of which then receives every changed frame until
// quitC is closed
func (p *Player) Start(errorC chan<- errors.Error, quitC <-chan struct{}) (subscribeC chan chan *Frame) {

	p.running.Store(true)
	frameC, subscribeC := startFanOut(250*time.Millisecond, quitC)

	go p.run(frameC, errorC, quitC)

	return subscribeC
}
