package model

// This module implements a poller for a layout file. When the file content
// changes the new layout is sent to listeners so that a running preview can
// pick up edits without a restart

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

type Watcher struct {
	fn       string
	interval time.Duration
	last     []byte
	layoutC  chan<- *Layout
	errorC   chan<- errors.Error
}

// NewWatcher polls fn every interval. initial is the layout already in use,
// it is not sent again unless the file changes away from it and back
func NewWatcher(fn string, interval time.Duration, initial *Layout, layoutC chan<- *Layout, errorC chan<- errors.Error) (w *Watcher) {
	if interval <= 0 {
		interval = time.Second
	}
	w = &Watcher{
		fn:       fn,
		interval: interval,
		layoutC:  layoutC,
		errorC:   errorC,
	}
	if initial != nil {
		w.last = structhash.Md5(initial, 1)
	}
	return w
}

// check loads the file, changed is true when the layout differs from the
// last one seen. A layout that cannot be turned into a strip is an error
// and leaves the last layout in place
func (w *Watcher) check() (layout *Layout, changed bool, err errors.Error) {
	if layout, err = Load(w.fn); err != nil {
		return nil, false, err
	}
	if _, err = layout.State(); err != nil {
		return nil, false, err.With("file", w.fn)
	}

	hash := structhash.Md5(layout, 1)
	if bytes.Equal(hash, w.last) {
		return layout, false, nil
	}
	w.last = hash
	return layout, true, nil
}

func (w *Watcher) report(err errors.Error) {
	select {
	case w.errorC <- err:
	case <-time.After(500 * time.Millisecond):
		fmt.Fprintf(os.Stderr, "could not send error for layout update %s\n", err.Error())
	}
}

func (w *Watcher) poll() {
	layout, changed, err := w.check()
	if err != nil {
		logger.Warn("layout rejected", "file", w.fn, "error", err.Error())
		go w.report(err)
		return
	}
	if !changed {
		return
	}
	logger.Info("layout changed", "file", w.fn, "name", layout.Name)

	select {
	case w.layoutC <- layout:
	case <-time.After(750 * time.Millisecond):
		// Forget the layout so that it is offered again on the next poll
		w.last = nil
		go w.report(errors.New("layout update dropped").With("file", w.fn).With("stack", stack.Trace().TrimRuntime()))
	}
}

// Run polls the layout file until quitC is closed
func (w *Watcher) Run(quitC <-chan struct{}) {

	poll := time.NewTicker(w.interval)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			w.poll()
		case <-quitC:
			return
		}
	}
}
