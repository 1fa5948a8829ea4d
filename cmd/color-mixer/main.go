package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	mixer "github.com/spookyvision/color-mixer"
	"github.com/spookyvision/color-mixer/model"
	"github.com/spookyvision/color-mixer/version"
)

var (
	logger = logxi.New("color-mixer")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	layoutFile = flag.String("layout", "", "A yaml or toml file describing the segments of the strip, a single default segment is used when empty")
	refresh    = flag.Duration("refresh", 30*time.Millisecond, "The interval at which the strip is sampled")
	watch      = flag.Duration("watch", time.Second, "Interval at which the layout file is checked for edits, zero disables reloading")
	logFile    = flag.String("log-file", "", "File internal logging is written to, the terminal is taken over by the preview")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       segment color cycling preview      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "color-mixer animates a strip of segments, each easing between two colors, in the terminal")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func loadLayout() (layout *model.Layout, err errors.Error) {
	if len(*layoutFile) == 0 {
		return model.DefaultLayout(), nil
	}
	return model.Load(*layoutFile)
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	// The preview owns the terminal so logging goes to a file, or nowhere
	var logW io.Writer = io.Discard
	if len(*logFile) != 0 {
		f, errGo := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if errGo != nil {
			fmt.Fprintln(os.Stderr, errGo.Error())
			os.Exit(-1)
		}
		defer f.Close()
		logW = f
	}
	logger = logxi.NewLogger(logxi.NewConcurrentWriter(logW), "color-mixer")
	mixerLog := logxi.NewLogger(logxi.NewConcurrentWriter(logW), "mixer")
	mixer.SetLogger(mixerLog)
	modelLog := logxi.NewLogger(logxi.NewConcurrentWriter(logW), "model")
	model.SetLogger(modelLog)

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
		mixerLog.SetLevel(logxi.LevelDebug)
		modelLog.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	layout, err := loadLayout()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}

	state, err := layout.State()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
	logger.Info("layout loaded", "name", layout.Name, "segments", state.Len())

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 1)
	msgC := make(chan string, 1)

	player := mixer.NewPlayer(state, mixer.NewControl(), *refresh)
	subscribeC := player.Start(errorC, quitC)

	go runMonitoring(subscribeC, quitC)
	go msgWatch(msgC, errorC, quitC)

	layoutC := make(chan *model.Layout, 1)
	if len(*layoutFile) != 0 && *watch > 0 {
		go model.NewWatcher(*layoutFile, *watch, layout, layoutC, errorC).Run(quitC)
	}

	if err := runTUI(layout, player, subscribeC, layoutC, msgC, quitC); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
}
