package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freqDelta = 1e-6

func TestMapTextPentatonic(t *testing.T) {
	result := MapText("ABC", TextOptions{Scale: ScalePentatonic})

	require.Len(t, result.Mappings, 3)
	assert.Equal(t, ScalePentatonic, result.Scale)

	a, b, c := result.Mappings[0], result.Mappings[1], result.Mappings[2]
	assert.Equal(t, 220.0, a.Frequency)
	assert.Equal(t, "A3", a.Note)
	assert.InDelta(t, 220*math.Pow(2, 2.0/12), b.Frequency, freqDelta)
	assert.Equal(t, "B3", b.Note)
	assert.InDelta(t, 220*math.Pow(2, 4.0/12), c.Frequency, freqDelta)
	assert.Equal(t, "C#4", c.Note)

	assert.Greater(t, b.Frequency, a.Frequency)
	assert.Greater(t, c.Frequency, b.Frequency)

	for i, m := range result.Mappings {
		assert.Equal(t, i, m.Index)
		assert.Equal(t, 0.2, m.Duration)
		assert.InDelta(t, float64(i)*0.2, m.Start, 1e-12)
	}
	assert.InDelta(t, 0.6, result.TotalDuration, 1e-12)
}

func TestMapTextWhitespaceIsRest(t *testing.T) {
	result := MapText("A B", TextOptions{})

	require.Len(t, result.Mappings, 2)
	assert.Equal(t, 0, result.Mappings[0].Index)
	assert.Equal(t, 2, result.Mappings[1].Index)
	assert.InDelta(t, 0.3, result.Mappings[1].Start, 1e-12)
	assert.InDelta(t, 0.5, result.TotalDuration, 1e-12)
}

func TestMapTextEmpty(t *testing.T) {
	result := MapText("", TextOptions{})
	assert.Empty(t, result.Mappings)
	assert.NotNil(t, result.Mappings)
	assert.Equal(t, 0.0, result.TotalDuration)
}

func TestMapTextCustomDuration(t *testing.T) {
	result := MapText("hi there", TextOptions{Scale: ScaleMajor, NoteDuration: 0.5})
	require.Len(t, result.Mappings, 7)
	assert.InDelta(t, 7*0.5+0.25, result.TotalDuration, 1e-12)
	for _, m := range result.Mappings {
		assert.Equal(t, 0.5, m.Duration)
	}
}

func TestMapTextInvalidDurationFallsBack(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		result := MapText("A", TextOptions{NoteDuration: d})
		require.Len(t, result.Mappings, 1)
		assert.Equal(t, DefaultNoteDuration, result.Mappings[0].Duration)
	}
}

func TestCharFrequency(t *testing.T) {
	tests := []struct {
		name  string
		char  rune
		scale ScaleName
		want  float64
	}{
		{name: "A is base", char: 'A', scale: ScalePentatonic, want: 220},
		{name: "lowercase matches uppercase", char: 'a', scale: ScalePentatonic, want: 220},
		{name: "F wraps pentatonic octave", char: 'F', scale: ScalePentatonic, want: 440},
		{name: "H wraps major octave", char: 'H', scale: ScaleMajor, want: 440},
		{name: "minor third", char: 'C', scale: ScaleMinor, want: 220 * math.Pow(2, 3.0/12)},
		{name: "Z pentatonic", char: 'Z', scale: ScalePentatonic, want: 220 * math.Pow(2, 60.0/12)},
		{name: "digit zero", char: '0', scale: ScalePentatonic, want: 220},
		{name: "digit five", char: '5', scale: ScalePentatonic, want: 220 * math.Pow(2, 5.0/12)},
		{name: "punctuation", char: '!', scale: ScalePentatonic, want: 220},
		{name: "non ascii letter", char: 'é', scale: ScalePentatonic, want: 220},
		{name: "unknown scale uses pentatonic", char: 'B', scale: ScaleName("lydian"), want: 220 * math.Pow(2, 2.0/12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CharFrequency(tt.char, tt.scale), freqDelta)
		})
	}
}

func TestFrequencyToNote(t *testing.T) {
	tests := []struct {
		freq float64
		want string
	}{
		{freq: 220, want: "A3"},
		{freq: 233.08, want: "A#3"},
		{freq: 440, want: "A4"},
		{freq: 261.63, want: "C4"},
		{freq: 27.5, want: "A0"},
		{freq: 0, want: "rest"},
		{freq: -10, want: "rest"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FrequencyToNote(tt.freq), "frequency %v", tt.freq)
	}
}

func TestMapTextIdempotent(t *testing.T) {
	assert.Equal(t, MapText("Synesthesia 2024!", TextOptions{}), MapText("Synesthesia 2024!", TextOptions{}))
}
