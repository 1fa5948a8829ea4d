package main

// This file contains the terminal preview. Each segment is drawn as a row of
// cells, one per pixel, colored with the segment's current color

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	mixer "github.com/spookyvision/color-mixer"
	"github.com/spookyvision/color-mixer/model"
)

const (
	labelWidth = 24
	pixelRune  = '█'
)

type preview struct {
	screen tcell.Screen
	layout *model.Layout
	player *mixer.Player
	msgC   chan<- string
	status string
}

func runTUI(layout *model.Layout, player *mixer.Player, subscribeC chan chan *mixer.Frame, layoutC <-chan *model.Layout, msgC chan<- string, quitC chan struct{}) (err errors.Error) {

	defer close(quitC)

	screen, errGo := tcell.NewScreen()
	if errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = screen.Init(); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	defer screen.Fini()

	pv := &preview{
		screen: screen,
		layout: layout,
		player: player,
		msgC:   msgC,
		status: "q quit, + faster, - slower",
	}

	frameC := make(chan *mixer.Frame, 1)
	subscribeC <- frameC

	eventC := make(chan tcell.Event, 1)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventC <- ev:
			case <-quitC:
				return
			}
		}
	}()

	for {
		select {
		case frame, isOpen := <-frameC:
			if !isOpen {
				return nil
			}
			pv.draw(frame)
		case ev := <-eventC:
			if !pv.handle(ev) {
				return nil
			}
		case layout := <-layoutC:
			pv.reload(layout)
		}
	}
}

// handle processes a terminal event returning false when the preview should
// exit
func (pv *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		pv.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case '+':
			pv.scale(1, 2)
		case '-':
			pv.scale(2, 1)
		}
	}
	return true
}

// scale multiplies every segment period by num/den, shorter periods cycling
// faster
func (pv *preview) scale(num uint64, den uint64) {
	err := pv.player.Edit(func(state *mixer.State) errors.Error {
		return state.UpdateAll(func(seg *mixer.Segment) errors.Error {
			return seg.ScaleSpeed(num, den)
		})
	})
	if err != nil {
		pv.status = err.Error()
	} else {
		pv.status = fmt.Sprintf("periods scaled by %d/%d", num, den)
	}
	select {
	case pv.msgC <- pv.status:
	default:
	}
}

// reload swaps the strip for the one described by a changed layout file
func (pv *preview) reload(layout *model.Layout) {
	state, err := layout.State()
	if err == nil {
		err = pv.player.Edit(func(current *mixer.State) errors.Error {
			current.Replace(state)
			return nil
		})
	}
	if err != nil {
		pv.status = err.Error()
	} else {
		pv.layout = layout
		pv.status = fmt.Sprintf("layout %s reloaded", layout.Name)
	}
	select {
	case pv.msgC <- pv.status:
	default:
	}
}

func (pv *preview) label(idx int) string {
	if idx < len(pv.layout.Segments) && len(pv.layout.Segments[idx].Name) != 0 {
		return pv.layout.Segments[idx].Name
	}
	return fmt.Sprintf("segment %d", idx)
}

func (pv *preview) text(x int, y int, style tcell.Style, str string) {
	for _, r := range str {
		pv.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (pv *preview) draw(frame *mixer.Frame) {
	pv.screen.Clear()
	width, height := pv.screen.Size()

	for i, c := range frame.Colors {
		y := i * 2
		if y >= height-2 {
			break
		}
		pv.text(0, y, tcell.StyleDefault, fmt.Sprintf("%-16.16s %s", pv.label(i), c.Hex()))

		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		for x := 0; x < frame.Lengths[i] && labelWidth+x < width; x++ {
			pv.screen.SetContent(labelWidth+x, y, pixelRune, nil, style)
		}
	}

	pv.text(0, height-1, tcell.StyleDefault.Reverse(true), fmt.Sprintf(" %8d ms  %s ", frame.Elapsed, pv.status))
	pv.screen.Show()
}
