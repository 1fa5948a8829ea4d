package model

// This module defines the strip layout description that is read from
// configuration files and turned into the segments the mixer animates

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"
	"gopkg.in/yaml.v2"

	mixer "github.com/spookyvision/color-mixer"
)

// DefaultFactor scales prime table entries into cycle periods when a layout
// does not name its own factor
const DefaultFactor = 3000

var (
	logger = logxi.New("model")
)

// SetLogger redirects layout loading diagnostics
func SetLogger(l logxi.Logger) {
	logger = l
}

type SegmentConfig struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Length  int    `json:"length" yaml:"length" toml:"length"`
	BGR     bool   `json:"bgr" yaml:"bgr" toml:"bgr"`
	ColorA  string `json:"colorA" yaml:"color_a" toml:"color_a"`
	ColorB  string `json:"colorB" yaml:"color_b" toml:"color_b"`
	SpeedMs uint64 `json:"speedMs" yaml:"speed_ms" toml:"speed_ms"`
	Prime   *int   `json:"prime,omitempty" yaml:"prime" toml:"prime"` // Index into the prime table, used when SpeedMs is zero
}

type Layout struct {
	Name     string          `json:"name" yaml:"name" toml:"name"`
	Factor   uint64          `json:"factor" yaml:"factor" toml:"factor"`
	Segments []SegmentConfig `json:"segments" yaml:"segments" toml:"segments"`
}

// DefaultLayout is a single default segment
func DefaultLayout() (layout *Layout) {
	seg := mixer.DefaultSegment()
	return &Layout{
		Name:   "default",
		Factor: DefaultFactor,
		Segments: []SegmentConfig{
			{
				Name:    "default",
				Length:  seg.Length(),
				BGR:     seg.BGR(),
				ColorA:  seg.ColorA().Hex(),
				ColorB:  seg.ColorB().Hex(),
				SpeedMs: seg.SpeedMs(),
			},
		},
	}
}

// Load reads a layout file, the format being chosen from the file extension
func Load(fn string) (layout *Layout, err errors.Error) {
	byt, errGo := os.ReadFile(fn)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fn).With("stack", stack.Trace().TrimRuntime())
	}

	layout, err = Decode(bytes.NewReader(byt), filepath.Ext(fn))
	if err != nil {
		return nil, err.With("file", fn)
	}
	if layout.Name == "" {
		layout.Name = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	}
	logger.Debug("layout loaded", "file", fn, "name", layout.Name, "segments", len(layout.Segments))
	return layout, nil
}

// Decode parses a layout in the named format, one of yaml, yml or toml with
// or without a leading dot
func Decode(rdr io.Reader, format string) (layout *Layout, err errors.Error) {
	layout = &Layout{}

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		byt, errGo := io.ReadAll(rdr)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
		if errGo = yaml.UnmarshalStrict(byt, layout); errGo != nil {
			return nil, errors.Wrap(errGo).With("format", format).With("stack", stack.Trace().TrimRuntime())
		}
	case "toml":
		md, errGo := toml.NewDecoder(rdr).Decode(layout)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("format", format).With("stack", stack.Trace().TrimRuntime())
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			errGo = fmt.Errorf("unknown layout keys %v", undecoded)
			return nil, errors.Wrap(errGo).With("format", format).With("stack", stack.Trace().TrimRuntime())
		}
	default:
		errGo := fmt.Errorf("unknown layout format %q", format)
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}

	if layout.Factor == 0 {
		layout.Factor = DefaultFactor
	}
	return layout, nil
}

// Segment builds the mixer segment described by the configuration, factor
// scaling the prime table when the period is selected that way
func (cfg *SegmentConfig) Segment(factor uint64) (seg mixer.Segment, err errors.Error) {
	a, err := mixer.ParseHex(cfg.ColorA)
	if err != nil {
		return seg, err.With("segment", cfg.Name).With("field", "color_a")
	}
	b, err := mixer.ParseHex(cfg.ColorB)
	if err != nil {
		return seg, err.With("segment", cfg.Name).With("field", "color_b")
	}

	speedMs := cfg.SpeedMs
	if speedMs == 0 && cfg.Prime != nil {
		if speedMs, err = mixer.PrimeSpeed(*cfg.Prime, factor); err != nil {
			return seg, err.With("segment", cfg.Name)
		}
	}

	if seg, err = mixer.NewSegment(cfg.Length, cfg.BGR, a, b, speedMs); err != nil {
		return seg, err.With("segment", cfg.Name)
	}
	return seg, nil
}

// State builds the strip described by the layout. Nothing is built if any
// segment is invalid
func (layout *Layout) State() (state *mixer.State, err errors.Error) {
	segs := make([]mixer.Segment, 0, len(layout.Segments))
	for i := range layout.Segments {
		seg, err := layout.Segments[i].Segment(layout.Factor)
		if err != nil {
			return nil, err.With("index", i)
		}
		segs = append(segs, seg)
	}
	return mixer.NewState(segs...), nil
}
