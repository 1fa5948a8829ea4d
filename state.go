package mixer

// This file contains the ordered collection of segments making up a strip

import (
	"iter"

	"github.com/karlmutch/errors"
)

// State is the ordered list of segments on a strip. Indices are stable, a
// segment keeps its index until the state is rebuilt
type State struct {
	segments []Segment
}

// NewState creates a state holding the segments in the order given
func NewState(segments ...Segment) (state *State) {
	state = &State{
		segments: make([]Segment, 0, len(segments)),
	}
	state.segments = append(state.segments, segments...)
	return state
}

// NewStateFrom creates a state from a sequence of segments, preserving the
// order in which the sequence yields them
func NewStateFrom(segments iter.Seq[Segment]) (state *State) {
	state = NewEmptyState()
	for seg := range segments {
		state.segments = append(state.segments, seg)
	}
	return state
}

func NewEmptyState() (state *State) {
	return &State{
		segments: []Segment{},
	}
}

func (state *State) Len() int {
	return len(state.segments)
}

func (state *State) checkIndex(idx int) (err errors.Error) {
	if idx < 0 || idx >= len(state.segments) {
		return kindErr(msgIndexRange).With("index", idx).With("len", len(state.segments))
	}
	return nil
}

// At returns a copy of the segment at idx
func (state *State) At(idx int) (seg Segment, err errors.Error) {
	if err = state.checkIndex(idx); err != nil {
		return seg, err
	}
	return state.segments[idx], nil
}

// All iterates over the segments in order. The segments yielded are copies,
// use Update or Set to change them
func (state *State) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i, seg := range state.segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Segments returns a copy of the segment list
func (state *State) Segments() (segs []Segment) {
	segs = make([]Segment, len(state.segments))
	copy(segs, state.segments)
	return segs
}

// Append adds segments to the end of the strip
func (state *State) Append(segs ...Segment) {
	state.segments = append(state.segments, segs...)
}

// Set replaces the segment at idx. Segments with a zero period, such as the
// zero value, are rejected
func (state *State) Set(idx int, seg Segment) (err errors.Error) {
	if err = state.checkIndex(idx); err != nil {
		return err
	}
	if seg.speedMs == 0 {
		return kindErr(msgInvalidDuration).With("index", idx)
	}
	state.segments[idx] = seg
	return nil
}

// Update applies fn to a copy of the segment at idx and stores the result only
// when fn succeeds, a failed edit leaves the segment as it was
func (state *State) Update(idx int, fn func(seg *Segment) errors.Error) (err errors.Error) {
	if err = state.checkIndex(idx); err != nil {
		return err
	}
	edited := state.segments[idx]
	if err = fn(&edited); err != nil {
		return err.With("index", idx)
	}
	return state.Set(idx, edited)
}

// UpdateAll applies fn to every segment. Either every segment is updated or,
// on the first failure, none are
func (state *State) UpdateAll(fn func(seg *Segment) errors.Error) (err errors.Error) {
	edited := state.Segments()
	for i := range edited {
		if err = fn(&edited[i]); err != nil {
			return err.With("index", i)
		}
		if edited[i].speedMs == 0 {
			return kindErr(msgInvalidDuration).With("index", i)
		}
	}
	state.segments = edited
	return nil
}

func (state *State) SetColors(idx int, a Color, b Color) (err errors.Error) {
	return state.Update(idx, func(seg *Segment) errors.Error {
		seg.SetColors(a, b)
		return nil
	})
}

func (state *State) SetSpeedMs(idx int, speedMs uint64) (err errors.Error) {
	return state.Update(idx, func(seg *Segment) errors.Error {
		return seg.SetSpeedMs(speedMs)
	})
}

// Colors returns the color of every segment elapsedMs into the animation
func (state *State) Colors(elapsedMs uint64) (colors []Color) {
	colors = make([]Color, len(state.segments))
	for i := range state.segments {
		colors[i] = state.segments[i].ColorAt(elapsedMs)
	}
	return colors
}

// Replace swaps in the segments of other, used when a whole layout is reloaded
func (state *State) Replace(other *State) {
	state.segments = other.Segments()
}

// Clone returns an independent copy of the state
func (state *State) Clone() (cpy *State) {
	return &State{
		segments: state.Segments(),
	}
}
