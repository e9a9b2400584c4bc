package colorutils

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrMalformedHex is returned when a hex string is not exactly six hex digits.
var ErrMalformedHex = errors.New("malformed hex color")

// RGB is an 8 bit per channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV holds hue in degrees [0,360) and saturation/value as percentages [0,100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// ColorRecord is the color entry stored in palettes.
type ColorRecord struct {
	RGB RGB    `json:"rgb"`
	HSV HSV    `json:"hsv"`
	Hex string `json:"hex"`
}

// NormalizeHue wraps h into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-14 + 360 rounds to 360
	if h >= 360 {
		h = 0
	}
	return h
}

// RGBToHSV converts RGB (0-255) to HSV rounded to whole degrees and percents.
func RGBToHSV(red, green, blue uint8) HSV {
	r := float64(red) / 255
	g := float64(green) / 255
	b := float64(blue) / 255

	maxC := max(r, g, b)
	minC := min(r, g, b)
	diff := maxC - minC

	h := 0.0
	s := 0.0
	v := maxC * 100

	if maxC != 0 {
		s = diff / maxC * 100
	}

	if diff != 0 {
		switch maxC {
		case r:
			h = (g - b) / diff
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/diff + 2
		default:
			h = (r-g)/diff + 4
		}
		h *= 60
	}

	return HSV{
		H: math.Mod(math.Round(h), 360),
		S: math.Round(s),
		V: math.Round(v),
	}
}

// HSVToRGB converts HSV (h in degrees, s and v in percent) to RGB.
func HSVToRGB(h, s, v float64) RGB {
	h = NormalizeHue(h)
	s = math.Max(0, math.Min(1, s/100))
	v = math.Max(0, math.Min(1, v/100))

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}

// RGBToHex formats a color as an uppercase "#RRGGBB" string.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// HexToRGB parses "#RRGGBB" or "RRGGBB".
func HexToRGB(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, hex)
	}

	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, hex)
	}
	return RGB{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8 & 0xFF),
		B: uint8(rgb & 0xFF),
	}, nil
}

// FormatRGB renders "rgb(R, G, B)".
func FormatRGB(c RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// FormatHSV renders "hsv(H°, S%, V%)".
func FormatHSV(c HSV) string {
	return fmt.Sprintf("hsv(%d°, %d%%, %d%%)", int(math.Round(c.H)), int(math.Round(c.S)), int(math.Round(c.V)))
}

// Hex returns the canonical hex string of the color.
func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// HSV converts the color with RGBToHSV.
func (c RGB) HSV() HSV {
	return RGBToHSV(c.R, c.G, c.B)
}

// NRGBA returns the opaque image/color value.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor drops alpha from any color.Color.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// NewColorRecord builds a palette record from a hex string such as an eyedropper result.
func NewColorRecord(hex string) (ColorRecord, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return ColorRecord{}, err
	}
	return ColorRecord{RGB: rgb, HSV: rgb.HSV(), Hex: rgb.Hex()}, nil
}

// RecordFromHSV builds a palette record from a wheel selection. The stored HSV
// is the one the widget reported, not the re-derived one.
func RecordFromHSV(c HSV) ColorRecord {
	rgb := HSVToRGB(c.H, c.S, c.V)
	return ColorRecord{
		RGB: rgb,
		HSV: HSV{H: NormalizeHue(math.Round(c.H)), S: math.Round(c.S), V: math.Round(c.V)},
		Hex: rgb.Hex(),
	}
}

// NearestName returns the closest CSS color name.
func NearestName(c RGB) string {
	best := ""
	bestDist := math.MaxInt
	for _, name := range colornames.Names {
		n := colornames.Map[name]
		dr := int(n.R) - int(c.R)
		dg := int(n.G) - int(c.G)
		db := int(n.B) - int(c.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}
