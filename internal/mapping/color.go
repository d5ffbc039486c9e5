package mapping

import (
	"math"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Waveform is an oscillator shape
type Waveform string

const (
	WaveformSine     Waveform = "sine"
	WaveformTriangle Waveform = "triangle"
	WaveformSawtooth Waveform = "sawtooth"
)

const (
	colorMinFrequency  = 200.0
	colorFrequencySpan = 600.0
	hueDegrees         = 360.0

	sawtoothSaturation = 0.70
	triangleSaturation = 0.40

	// volumeFloor is the volume modifier of pure black. Volume rises
	// linearly with lightness to 1.0 at pure white.
	volumeFloor = 0.5
)

var hexDigitsPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RGB is a color in 8-bit channels
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL is hue in [0,360), saturation and lightness in [0,1]
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ColorMapping is the sound derived from a hex color
type ColorMapping struct {
	Input          string   `json:"input"`
	Frequency      float64  `json:"frequency"`
	Waveform       Waveform `json:"waveform"`
	VolumeModifier float64  `json:"volume_modifier"`
	RGB            RGB      `json:"rgb"`
	HSL            HSL      `json:"hsl"`
	Complementary  string   `json:"complementary"`
}

// MapColor converts a 3- or 6-digit hex color (leading '#' optional) to sound
// parameters. Hue picks the frequency in [200,800) Hz, saturation picks the
// waveform, and lightness picks the volume modifier (0.5 + l/2).
func MapColor(hex string) (ColorMapping, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return ColorMapping{}, err
	}

	hsl := RGBToHSL(rgb)

	return ColorMapping{
		Input:          hex,
		Frequency:      colorMinFrequency + (hsl.H/hueDegrees)*colorFrequencySpan,
		Waveform:       waveformForSaturation(hsl.S),
		VolumeModifier: volumeFloor + hsl.L*(1-volumeFloor),
		RGB:            rgb,
		HSL:            hsl,
		Complementary:  complementary(hsl),
	}, nil
}

// HexToRGB parses a hex color, expanding 3-digit shorthand
func HexToRGB(hex string) (RGB, error) {
	m := hexDigitsPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, newInputError("color", hex, ErrInvalidColorFormat)
	}

	digits := m[1]
	if len(digits) == 3 {
		var b strings.Builder
		for _, d := range digits {
			b.WriteRune(d)
			b.WriteRune(d)
		}
		digits = b.String()
	}

	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return RGB{}, newInputError("color", hex, ErrInvalidColorFormat)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// RGBToHSL converts 8-bit RGB to HSL
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h = math.Mod(h*60, hueDegrees)

	return HSL{H: h, S: s, L: l}
}

func waveformForSaturation(s float64) Waveform {
	switch {
	case s > sawtoothSaturation:
		return WaveformSawtooth
	case s > triangleSaturation:
		return WaveformTriangle
	default:
		return WaveformSine
	}
}

// complementary rotates the hue by 180 degrees and keeps saturation and lightness
func complementary(hsl HSL) string {
	h := math.Mod(hsl.H+hueDegrees/2, hueDegrees)
	return strings.ToUpper(colorful.Hsl(h, hsl.S, hsl.L).Clamped().Hex())
}
