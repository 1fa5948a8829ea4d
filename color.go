package mixer

// This file contains the 8 bit RGB color value used throughout the engine
// along with its conversions to and from the CIE L*u*v* space that segment
// mixing is performed in

import (
	"image/color"
	"strings"

	"github.com/cnf/structhash"
	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"
)

const hexDigits = "0123456789abcdefABCDEF"

// Color is an sRGB color with 8 bits per channel. It is a plain value,
// comparable with == and usable as a map key
type Color struct {
	R, G, B uint8
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Luv returns the perceptual L*u*v* coordinates of the color using the D65
// white point. Lightness is scaled to [0, 1] rather than [0, 100]
func (c Color) Luv() (l, u, v float64) {
	return c.colorful().Luv()
}

// FromLuv converts L*u*v* coordinates back into an 8 bit color. Coordinates
// that fall outside of the sRGB gamut are clamped channel by channel
func FromLuv(l, u, v float64) Color {
	return fromColorful(colorful.Luv(l, u, v))
}

// ParseHex parses color text of the form #rrggbb, hex digits in either case
func ParseHex(text string) (c Color, err errors.Error) {
	if len(text) != 7 || text[0] != '#' {
		return c, kindErr(msgMalformedColor).With("text", text)
	}
	for _, r := range text[1:] {
		if !strings.ContainsRune(hexDigits, r) {
			return c, kindErr(msgMalformedColor).With("text", text)
		}
	}

	parsed, errGo := colorful.Hex(strings.ToLower(text))
	if errGo != nil {
		return c, kindErr(msgMalformedColor).With("text", text).With("cause", errGo.Error())
	}
	return fromColorful(parsed), nil
}

// MustParseHex is ParseHex for color literals known to be valid
func MustParseHex(text string) Color {
	c, err := ParseHex(text)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// Hash returns a digest of the three channels, colors that are equal channel
// by channel produce equal digests
func (c Color) Hash() []byte {
	return structhash.Md5(c, 1)
}

// Hex formats the color as lowercase #rrggbb text
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// RGBA implements the image/color Color interface, colors are always opaque
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// BGR returns the color with the red and blue channels exchanged
func (c Color) BGR() Color {
	return Color{R: c.B, G: c.G, B: c.R}
}

// FromColor converts any image/color value, dropping its alpha. Fully
// transparent colors carry no channel information and convert to black
func FromColor(c color.Color) Color {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return Color{}
	}
	return fromColorful(col)
}
