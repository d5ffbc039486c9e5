package mapping

import (
	"math"
	"strconv"
	"strings"
)

// Pattern is the rhythmic character of a number
type Pattern string

const (
	PatternSteady   Pattern = "steady"
	PatternPulse    Pattern = "pulse"
	PatternArpeggio Pattern = "arpeggio"
	PatternSweep    Pattern = "sweep"
	PatternWave     Pattern = "wave"
)

const (
	numberMinFrequency = 100.0
	numberCycle        = 100.0

	oscillatorStep     = 10.0
	maxOscillatorCount = 5

	minSides          = 3
	sidesCycle        = 7
	rotationCycle     = 7
	hueStep           = 30.0
	maxParticleCount  = 50
	rotationSpeedUnit = 1.0
)

// patternRules are applied in order; a later match overrides an earlier one
var patternRules = []struct {
	divisor float64
	pattern Pattern
}{
	{2, PatternPulse},
	{3, PatternArpeggio},
	{5, PatternSweep},
	{7, PatternWave},
}

// Visual describes the animated polygon for a number
type Visual struct {
	Sides         int     `json:"sides"`
	RotationSpeed float64 `json:"rotation_speed"`
	ColorHue      float64 `json:"color_hue"`
	ParticleCount int     `json:"particle_count"`
}

// NumberMapping is the sound and animation derived from a number
type NumberMapping struct {
	Input           float64 `json:"input"`
	Frequency       float64 `json:"frequency"`
	Pattern         Pattern `json:"pattern"`
	OscillatorCount int     `json:"oscillator_count"`
	Visual          Visual  `json:"visual"`
	IsNegative      bool    `json:"is_negative"`
	Magnitude       float64 `json:"magnitude"`
}

// MapNumber converts a finite number to pattern parameters. The frequency
// sweeps logarithmically over [100,1000) Hz every 100 units of magnitude.
func MapNumber(n float64) (NumberMapping, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return NumberMapping{}, newInputError("number", strconv.FormatFloat(n, 'g', -1, 64), ErrInvalidNumericInput)
	}

	magnitude := math.Abs(n)

	return NumberMapping{
		Input:           n,
		Frequency:       numberMinFrequency * math.Pow(10, math.Mod(magnitude, numberCycle)/numberCycle),
		Pattern:         PatternFor(n),
		OscillatorCount: oscillatorCount(magnitude),
		Visual: Visual{
			Sides:         minSides + int(math.Mod(math.Floor(magnitude), sidesCycle)),
			RotationSpeed: (floorModFloat(n, rotationCycle) + 1) * rotationSpeedUnit,
			ColorHue:      hueFor(n),
			ParticleCount: int(math.Min(math.Floor(magnitude), maxParticleCount)),
		},
		IsNegative: n < 0,
		Magnitude:  magnitude,
	}, nil
}

// ParseNumber parses a decimal string for the number mapper
func ParseNumber(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, newInputError("number", s, ErrInvalidNumericInput)
	}
	return n, nil
}

// PatternFor classifies a number by divisibility. Zero is divisible by
// everything and is therefore always a wave.
func PatternFor(n float64) Pattern {
	pattern := PatternSteady
	for _, rule := range patternRules {
		if math.Mod(n, rule.divisor) == 0 {
			pattern = rule.pattern
		}
	}
	return pattern
}

func oscillatorCount(magnitude float64) int {
	if magnitude >= oscillatorStep*(maxOscillatorCount-1) {
		return maxOscillatorCount
	}
	return int(math.Floor(magnitude/oscillatorStep)) + 1
}

// hueFor reduces n modulo one hue turn before scaling so large inputs cannot
// overflow to Inf
func hueFor(n float64) float64 {
	return floorModFloat(floorModFloat(n, hueDegrees/hueStep)*hueStep, hueDegrees)
}

// floorModFloat is a modulo whose result takes the sign of m
func floorModFloat(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}
