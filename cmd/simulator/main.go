package main

// The simulator runs a strip layout without a display, writing the color of
// every segment to stdout at each step. By default the clock is simulated and
// advanced by the step on every tick so output is reproducible, with -realtime
// the system clock is used and accelerated by the scale factor

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/karlmutch/envflag"
	logxi "github.com/mgutz/logxi/v1"

	mixer "github.com/spookyvision/color-mixer"
	"github.com/spookyvision/color-mixer/model"
)

var (
	layoutFile = flag.String("layout", "", "A yaml or toml file describing the segments of the strip, a single default segment is used when empty")
	step       = flag.Duration("step", 100*time.Millisecond, "Animation time between successive output lines")
	duration   = flag.Duration("duration", 4*time.Second, "Total animation time to simulate")
	realtime   = flag.Bool("realtime", false, "Pace output against the system clock rather than simulating it")
	scale      = flag.Int("scale", 1, "factor by which to accelerate the relative rate of the clock")
	pixels     = flag.Bool("pixels", false, "Print every pixel in output channel order rather than one color per segment")

	// create Logger interface
	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stderr), "color-mixer-simulator")
)

// virtualClock advances by a fixed step each time it is read
type virtualClock struct {
	now  time.Time
	step time.Duration
}

func (vc *virtualClock) read() (now time.Time) {
	now = vc.now
	vc.now = vc.now.Add(vc.step)
	return now
}

// scaledClock runs the system clock scale times faster from the moment it is
// created
type scaledClock struct {
	start time.Time
	scale int
}

func (sc *scaledClock) read() time.Time {
	return sc.start.Add(time.Since(sc.start) * time.Duration(sc.scale))
}

func newControl() (ctl *mixer.Control) {
	if !*realtime {
		vc := &virtualClock{now: time.Now(), step: *step}
		return mixer.NewControlWithClock(vc.read)
	}
	if *scale < 1 {
		logW.Warn("scale must be at least 1, using 1", "scale", *scale)
		*scale = 1
	}
	sc := &scaledClock{start: time.Now(), scale: *scale}
	return mixer.NewControlWithClock(sc.read)
}

func format(frame *mixer.Frame) string {
	fields := []string{fmt.Sprintf("%8d", frame.Elapsed)}
	if *pixels {
		for _, px := range frame.Pixels(nil) {
			fields = append(fields, mixer.FromColor(px).Hex())
		}
	} else {
		for _, c := range frame.Colors {
			fields = append(fields, c.Hex())
		}
	}
	return strings.Join(fields, " ")
}

func main() {

	envflag.Parse()

	layout := model.DefaultLayout()
	if len(*layoutFile) != 0 {
		loaded, err := model.Load(*layoutFile)
		if err != nil {
			logW.Error("could not load layout", "error", err.Error())
			os.Exit(-1)
		}
		layout = loaded
	}

	state, err := layout.State()
	if err != nil {
		logW.Error("invalid layout", "error", err.Error())
		os.Exit(-1)
	}
	logW.Debug(fmt.Sprintf("loaded layout %s with %d segments", layout.Name, state.Len()))

	if *step <= 0 {
		logW.Error("step must be positive", "step", step.String())
		os.Exit(-1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	ctl := newControl()
	limit := uint64(*duration / time.Millisecond)

	var pace *time.Ticker
	if *realtime {
		interval := *step / time.Duration(*scale)
		if interval <= 0 {
			interval = time.Millisecond
		}
		pace = time.NewTicker(interval)
		defer pace.Stop()
	}

	for elapsed := ctl.Now(); elapsed <= limit; elapsed = ctl.Tick() {
		fmt.Fprintln(out, format(mixer.NewFrame(state, elapsed)))

		if pace != nil {
			out.Flush()
			<-pace.C
		}
	}
}
