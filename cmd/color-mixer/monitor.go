package main

import (
	"fmt"

	"github.com/karlmutch/errors"

	mixer "github.com/spookyvision/color-mixer"
)

// This file implements a monitor that subscribes to and logs the frames
// produced by the player using frame subscription

func runMonitoring(subscribeC chan chan *mixer.Frame, quitC <-chan struct{}) {

	frameC := make(chan *mixer.Frame, 1)
	subscribeC <- frameC

	for {
		select {
		case frame, isOpen := <-frameC:
			if !isOpen {
				return
			}
			if logger.IsDebug() {
				logger.Debug(fmt.Sprintf("%d %v", frame.Elapsed, frame.Colors))
			}
		case <-quitC:
			return
		}
	}
}

func msgWatch(msgC <-chan string, errorC <-chan errors.Error, quitC <-chan struct{}) {
	for {
		select {
		case msg := <-msgC:
			logger.Info(msg)
		case err := <-errorC:
			logger.Warn(err.Error())
		case <-quitC:
			return
		}
	}
}
