package mixer

// This file contains the segment, a run of pixels that cycles there and back
// between two colors over a fixed period. The color shown by a segment is a
// pure function of its fields and the elapsed time handed to it

import (
	"math/bits"

	"github.com/cnf/structhash"
	"github.com/fogleman/ease"
	"github.com/karlmutch/errors"
)

// Segment is an independently animated region of a strip
type Segment struct {
	length  int      // Number of physical pixels, used only when laying out frames
	bgr     bool     // Pixels expect blue, green, red channel order on output
	colors  [2]Color // Endpoint colors, the cycle runs 0 -> 1 -> 0
	speedMs uint64   // Milliseconds for one complete there and back cycle
}

// NewSegment creates a segment of length pixels that cycles between colors a
// and b every speedMs milliseconds
func NewSegment(length int, bgr bool, a Color, b Color, speedMs uint64) (seg Segment, err errors.Error) {
	if length < 0 {
		return seg, kindErr(msgInvalidLength).With("length", length)
	}
	if speedMs == 0 {
		return seg, kindErr(msgInvalidDuration).With("speed_ms", speedMs)
	}
	return Segment{
		length:  length,
		bgr:     bgr,
		colors:  [2]Color{a, b},
		speedMs: speedMs,
	}, nil
}

// DefaultSegment is the orange to magenta segment a fresh strip starts with
func DefaultSegment() Segment {
	return Segment{
		length:  10,
		colors:  [2]Color{MustParseHex("#ff9600"), MustParseHex("#ff0adc")},
		speedMs: 2000,
	}
}

// Mix returns the color at fraction t, [0, 1), of a full cycle.
//
// The first half of the cycle eases from color A to color B and the second
// half runs the same curve from B back to A, t == 0.5 belonging to the
// second half
func (seg *Segment) Mix(t float64) Color {
	from, to := seg.colors[0], seg.colors[1]
	if t >= 0.5 {
		from, to = to, from
		t -= 0.5
	}
	t = ease.InOutSine(t * 2.0)

	return fromColorful(from.colorful().BlendLuv(to.colorful(), t))
}

// ColorAt returns the color shown elapsedMs milliseconds into the animation
func (seg *Segment) ColorAt(elapsedMs uint64) Color {
	// Only reachable through the zero value as constructors and setters
	// reject a zero period
	if seg.speedMs == 0 {
		return seg.colors[0]
	}
	wrapped := elapsedMs % seg.speedMs
	return seg.Mix(float64(wrapped) / float64(seg.speedMs))
}

// OutputAt is ColorAt with the channels in the order the pixels expect
func (seg *Segment) OutputAt(elapsedMs uint64) Color {
	c := seg.ColorAt(elapsedMs)
	if seg.bgr {
		return c.BGR()
	}
	return c
}

// PreviewAt returns the color percent of the way through one cycle, percent
// being clamped into [0, 100]. 100 is a full cycle and so shows color A again
func (seg *Segment) PreviewAt(percent float64) Color {
	fraction := percent / 100.0
	if fraction < 0 {
		fraction = 0
	}
	// Long periods round up to 2^64 as a float, past the end of the cycle
	pos := fraction * float64(seg.speedMs)
	if fraction >= 1 || pos >= float64(seg.speedMs) {
		return seg.ColorAt(seg.speedMs)
	}
	return seg.ColorAt(uint64(pos))
}

func (seg *Segment) SpeedMs() uint64 {
	return seg.speedMs
}

func (seg *Segment) Length() int {
	return seg.length
}

func (seg *Segment) BGR() bool {
	return seg.bgr
}

func (seg *Segment) ColorA() Color {
	return seg.colors[0]
}

func (seg *Segment) ColorB() Color {
	return seg.colors[1]
}

// SetColors replaces both endpoint colors
func (seg *Segment) SetColors(a Color, b Color) {
	seg.colors = [2]Color{a, b}
}

func (seg *Segment) SetColorA(c Color) {
	seg.colors[0] = c
}

func (seg *Segment) SetColorB(c Color) {
	seg.colors[1] = c
}

// SetSpeedMs changes the cycle period, a zero period is rejected and leaves
// the segment unchanged
func (seg *Segment) SetSpeedMs(speedMs uint64) (err errors.Error) {
	if speedMs == 0 {
		return kindErr(msgInvalidDuration).With("speed_ms", speedMs)
	}
	seg.speedMs = speedMs
	return nil
}

// ScaleSpeed multiplies the cycle period by num/den, the result never drops
// below a single millisecond
func (seg *Segment) ScaleSpeed(num uint64, den uint64) (err errors.Error) {
	if num == 0 || den == 0 {
		return kindErr(msgInvalidDuration).With("num", num).With("den", den)
	}
	hi, lo := bits.Mul64(seg.speedMs, num)
	if hi >= den {
		return kindErr(msgInvalidDuration).With("speed_ms", seg.speedMs).With("num", num).With("den", den)
	}
	scaled, _ := bits.Div64(hi, lo, den)
	if scaled == 0 {
		scaled = 1
	}
	seg.speedMs = scaled
	return nil
}

type segmentDigest struct {
	Length  int
	BGR     bool
	A       []byte
	B       []byte
	SpeedMs uint64
}

// Hash returns a digest of the segment's fields, equal segments produce
// equal digests
func (seg *Segment) Hash() []byte {
	return structhash.Md5(segmentDigest{
		Length:  seg.length,
		BGR:     seg.bgr,
		A:       seg.colors[0].Hash(),
		B:       seg.colors[1].Hash(),
		SpeedMs: seg.speedMs,
	}, 1)
}

// The prime table gives segments periods that share no common factor so that
// a strip of them takes a long time to repeat its overall pattern
var primes = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// PrimeSpeed returns the idx'th prime from the table multiplied by factor, for
// use as a cycle period in milliseconds
func PrimeSpeed(idx int, factor uint64) (speedMs uint64, err errors.Error) {
	if idx < 0 || idx >= len(primes) {
		return 0, kindErr(msgIndexRange).With("prime", idx).With("max", len(primes)-1)
	}
	hi, speedMs := bits.Mul64(primes[idx], factor)
	if speedMs == 0 || hi != 0 {
		return 0, kindErr(msgInvalidDuration).With("prime", idx).With("factor", factor)
	}
	return speedMs, nil
}
