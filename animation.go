package mixer

// This file contains the frame, a snapshot of the colors on a strip at a
// single instant.
//
// Frames are the unit handed from the player to whatever is displaying the
// strip, be that a terminal, a log or a test, and are never modified once
// built so they can be shared between subscribers

import (
	"image/color"

	"github.com/cnf/structhash"
)

// Frame holds the color of every segment at an elapsed time
type Frame struct {
	Elapsed uint64  // Milliseconds since the animation clock started
	Colors  []Color // Segment colors in logical RGB order, one per segment
	Output  []Color // Segment colors in the channel order of their pixels
	Lengths []int   // Pixel count of each segment
}

// NewFrame samples every segment of state at elapsedMs
func NewFrame(state *State, elapsedMs uint64) (frame *Frame) {
	frame = &Frame{
		Elapsed: elapsedMs,
		Colors:  make([]Color, 0, state.Len()),
		Output:  make([]Color, 0, state.Len()),
		Lengths: make([]int, 0, state.Len()),
	}
	for _, seg := range state.All() {
		c := seg.ColorAt(elapsedMs)
		frame.Colors = append(frame.Colors, c)
		if seg.BGR() {
			c = c.BGR()
		}
		frame.Output = append(frame.Output, c)
		frame.Lengths = append(frame.Lengths, seg.Length())
	}
	return frame
}

// PixelCount is the number of physical pixels covered by the frame
func (frame *Frame) PixelCount() (count int) {
	for _, l := range frame.Lengths {
		count += l
	}
	return count
}

// Pixels lays the frame out pixel by pixel, each segment repeated over its
// length in output channel order. buf is reused when it has the capacity
func (frame *Frame) Pixels(buf []color.RGBA) []color.RGBA {
	count := frame.PixelCount()
	if cap(buf) < count {
		buf = make([]color.RGBA, count)
	}
	buf = buf[:count]

	pos := 0
	for i, c := range frame.Output {
		for j := 0; j < frame.Lengths[i]; j++ {
			buf[pos] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
			pos++
		}
	}
	return buf
}

// Digest identifies the visible content of the frame, frames showing the same
// pixels have the same digest regardless of when they were sampled
func (frame *Frame) Digest() []byte {
	return structhash.Md5(struct {
		Output  []Color
		Lengths []int
	}{
		Output:  frame.Output,
		Lengths: frame.Lengths,
	}, 1)
}
