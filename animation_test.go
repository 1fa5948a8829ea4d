package mixer

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func constantState(t *testing.T, a Color, b Color) *State {
	return NewState(
		mustSegment(t, 2, true, a, a, 500),
		mustSegment(t, 3, false, b, b, 700),
	)
}

func TestFrameColors(t *testing.T) {
	red, green := Color{255, 0, 0}, Color{0, 255, 0}
	frame := NewFrame(constantState(t, red, green), 0)

	if diff := cmp.Diff([]Color{red, green}, frame.Colors); diff != "" {
		t.Errorf("unexpected colors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Color{{0, 0, 255}, green}, frame.Output); diff != "" {
		t.Errorf("unexpected output colors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, frame.Lengths); diff != "" {
		t.Errorf("unexpected lengths (-want +got):\n%s", diff)
	}
}

func TestFramePixels(t *testing.T) {
	red, green := Color{255, 0, 0}, Color{0, 255, 0}
	frame := NewFrame(constantState(t, red, green), 0)

	if frame.PixelCount() != 5 {
		t.Fatalf("expected 5 pixels got %d", frame.PixelCount())
	}

	blue := color.RGBA{B: 255, A: 255}
	grn := color.RGBA{G: 255, A: 255}
	want := []color.RGBA{blue, blue, grn, grn, grn}

	got := frame.Pixels(nil)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", diff)
	}

	buf := make([]color.RGBA, 0, 16)
	reused := frame.Pixels(buf)
	if &reused[0] != &buf[:1][0] {
		t.Error("expected the supplied buffer to be reused")
	}
	if diff := cmp.Diff(want, reused); diff != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", diff)
	}

	empty := NewFrame(NewEmptyState(), 10)
	if len(empty.Pixels(nil)) != 0 {
		t.Error("expected no pixels from an empty strip")
	}
}

func TestFrameDigest(t *testing.T) {
	red, green := Color{255, 0, 0}, Color{0, 255, 0}
	state := constantState(t, red, green)

	first := NewFrame(state, 0)
	later := NewFrame(state, 777)
	if !bytes.Equal(first.Digest(), later.Digest()) {
		t.Error("frames with identical pixels have different digests")
	}

	if err := state.SetColors(1, red, red); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first.Digest(), NewFrame(state, 0).Digest()) {
		t.Error("frames with different pixels have the same digest")
	}
}
