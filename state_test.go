package mixer

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karlmutch/errors"
)

func testSegments(t *testing.T) []Segment {
	return []Segment{
		mustSegment(t, 10, false, orange, magenta, 2000),
		mustSegment(t, 5, true, Color{0, 0, 0}, Color{255, 255, 255}, 300),
		mustSegment(t, 1, false, Color{255, 0, 0}, Color{0, 0, 255}, 97),
	}
}

func hexes(state *State, elapsed uint64) (text []string) {
	for _, c := range state.Colors(elapsed) {
		text = append(text, c.Hex())
	}
	return text
}

func TestStateConstruction(t *testing.T) {
	segs := testSegments(t)

	empty := NewEmptyState()
	if empty.Len() != 0 {
		t.Errorf("expected an empty state, got %d segments", empty.Len())
	}
	if len(empty.Colors(100)) != 0 {
		t.Error("expected no colors from an empty state")
	}

	fromArgs := NewState(segs...)
	fromSeq := NewStateFrom(slices.Values(segs))

	for _, state := range []*State{fromArgs, fromSeq} {
		if state.Len() != len(segs) {
			t.Fatalf("expected %d segments got %d", len(segs), state.Len())
		}
		for i, seg := range state.All() {
			if seg.SpeedMs() != segs[i].SpeedMs() || seg.Length() != segs[i].Length() {
				t.Errorf("segment %d out of order", i)
			}
		}
	}

	// The state owns its own copy of the segments
	segs[0].SetColors(Color{1, 1, 1}, Color{2, 2, 2})
	if seg, _ := fromArgs.At(0); seg.ColorA() != orange {
		t.Errorf("state changed with the caller's slice, %v", seg.ColorA())
	}
}

func TestStateIterationStops(t *testing.T) {
	state := NewState(testSegments(t)...)
	visited := 0
	for i := range state.All() {
		visited++
		if i == 1 {
			break
		}
	}
	if visited != 2 {
		t.Errorf("expected to stop after 2 segments, visited %d", visited)
	}
}

func TestStateColors(t *testing.T) {
	state := NewState(testSegments(t)...)
	got := state.Colors(0)
	want := []Color{orange, {0, 0, 0}, {255, 0, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected colors (-want +got):\n%s", diff)
	}
}

func TestStateSetColors(t *testing.T) {
	state := NewState(testSegments(t)...)

	if err := state.SetColors(2, Color{0, 255, 0}, Color{0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if got := state.Colors(0)[2]; got != (Color{0, 255, 0}) {
		t.Errorf("unexpected color after edit %v", got)
	}

	err := state.SetColors(3, Color{}, Color{})
	if !IsIndexRange(err) {
		t.Errorf("expected index range error, got %v", err)
	}
	if err = state.SetColors(-1, Color{}, Color{}); !IsIndexRange(err) {
		t.Errorf("expected index range error, got %v", err)
	}
}

func TestStateRejectedEditsLeaveStateAlone(t *testing.T) {
	state := NewState(testSegments(t)...)
	before := hexes(state, 150)

	if err := state.SetSpeedMs(1, 0); !IsInvalidDuration(err) {
		t.Errorf("expected invalid duration error, got %v", err)
	}
	if err := state.Set(0, Segment{}); !IsInvalidDuration(err) {
		t.Errorf("expected invalid duration error, got %v", err)
	}

	// A failure part way through an edit must not leak the partial change
	err := state.Update(0, func(seg *Segment) errors.Error {
		seg.SetColors(Color{9, 9, 9}, Color{9, 9, 9})
		return seg.SetSpeedMs(0)
	})
	if !IsInvalidDuration(err) {
		t.Errorf("expected invalid duration error, got %v", err)
	}

	calls := 0
	err = state.UpdateAll(func(seg *Segment) errors.Error {
		calls++
		seg.SetColorA(Color{9, 9, 9})
		if calls == 3 {
			return seg.SetSpeedMs(0)
		}
		return nil
	})
	if !IsInvalidDuration(err) {
		t.Errorf("expected invalid duration error, got %v", err)
	}

	if diff := cmp.Diff(before, hexes(state, 150)); diff != "" {
		t.Errorf("state changed by rejected edits (-want +got):\n%s", diff)
	}
}

func TestStateUpdateAll(t *testing.T) {
	state := NewState(testSegments(t)...)
	err := state.UpdateAll(func(seg *Segment) errors.Error {
		return seg.ScaleSpeed(2, 1)
	})
	if err != nil {
		t.Fatal(err)
	}

	var speeds []uint64
	for _, seg := range state.All() {
		speeds = append(speeds, seg.SpeedMs())
	}
	if diff := cmp.Diff([]uint64{4000, 600, 194}, speeds); diff != "" {
		t.Errorf("unexpected speeds (-want +got):\n%s", diff)
	}
}

func TestStateAppendClone(t *testing.T) {
	state := NewEmptyState()
	state.Append(DefaultSegment())
	state.Append(testSegments(t)...)
	if state.Len() != 4 {
		t.Fatalf("expected 4 segments got %d", state.Len())
	}

	cpy := state.Clone()
	if err := cpy.SetColors(0, Color{1, 2, 3}, Color{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if seg, _ := state.At(0); seg.ColorA() != orange {
		t.Errorf("clone shares segments with the original, %v", seg.ColorA())
	}

	if _, err := state.At(4); !IsIndexRange(err) {
		t.Errorf("expected index range error, got %v", err)
	}
}

func TestStateReplace(t *testing.T) {
	state := NewState(DefaultSegment())
	other := NewState(testSegments(t)...)

	state.Replace(other)
	if diff := cmp.Diff(hexes(other, 321), hexes(state, 321)); diff != "" {
		t.Errorf("unexpected colors after replace (-want +got):\n%s", diff)
	}
	if err := other.SetColors(0, Color{}, Color{}); err != nil {
		t.Fatal(err)
	}
	if seg, _ := state.At(0); seg.ColorA() != orange {
		t.Errorf("replaced state shares segments, %v", seg.ColorA())
	}
}
