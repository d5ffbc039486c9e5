package mapping

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternFor(t *testing.T) {
	tests := []struct {
		n    float64
		want Pattern
	}{
		{n: 1, want: PatternSteady},
		{n: 4, want: PatternPulse},
		{n: 9, want: PatternArpeggio},
		{n: 6, want: PatternArpeggio}, // 2 and 3
		{n: 42, want: PatternWave},    // 2, 3 and 7
		{n: 10, want: PatternSweep},
		{n: 15, want: PatternSweep}, // 3 and 5
		{n: 7, want: PatternWave},
		{n: 21, want: PatternWave}, // 3 and 7
		{n: 210, want: PatternWave},
		{n: 0, want: PatternWave},
		{n: -6, want: PatternArpeggio},
		{n: 3.5, want: PatternSteady},
		{n: 11, want: PatternSteady},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PatternFor(tt.n), "number %v", tt.n)
	}
}

func TestMapNumber(t *testing.T) {
	result, err := MapNumber(42)
	require.NoError(t, err)

	assert.Equal(t, 42.0, result.Input)
	assert.Equal(t, PatternWave, result.Pattern)
	assert.Equal(t, 5, result.OscillatorCount)
	assert.False(t, result.IsNegative)
	assert.Equal(t, 42.0, result.Magnitude)
	assert.InDelta(t, 100*math.Pow(10, 0.42), result.Frequency, 1e-9)
	assert.Equal(t, Visual{Sides: 3, RotationSpeed: 1, ColorHue: 180, ParticleCount: 42}, result.Visual)
}

func TestMapNumberNegative(t *testing.T) {
	result, err := MapNumber(-5)
	require.NoError(t, err)

	assert.True(t, result.IsNegative)
	assert.Equal(t, 5.0, result.Magnitude)
	assert.Equal(t, PatternSweep, result.Pattern)
	assert.Equal(t, 8, result.Visual.Sides)
	assert.Equal(t, 3.0, result.Visual.RotationSpeed)
	assert.Equal(t, 210.0, result.Visual.ColorHue)
	assert.Equal(t, 5, result.Visual.ParticleCount)
}

func TestMapNumberFrequency(t *testing.T) {
	tests := []struct {
		n    float64
		want float64
	}{
		{n: 0, want: 100},
		{n: 50, want: 100 * math.Sqrt(10)},
		{n: 100, want: 100},
		{n: -150, want: 100 * math.Sqrt(10)},
	}
	for _, tt := range tests {
		result, err := MapNumber(tt.n)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, result.Frequency, 1e-9, "number %v", tt.n)
	}
}

func TestMapNumberOscillatorCount(t *testing.T) {
	tests := []struct {
		n    float64
		want int
	}{
		{n: 0, want: 1},
		{n: 9.99, want: 1},
		{n: 10, want: 2},
		{n: -25, want: 3},
		{n: 39.9, want: 4},
		{n: 40, want: 5},
		{n: 1e300, want: 5},
	}
	for _, tt := range tests {
		result, err := MapNumber(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.OscillatorCount, "number %v", tt.n)
	}
}

func TestMapNumberParticleCap(t *testing.T) {
	result, err := MapNumber(1000)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Visual.ParticleCount)
}

func TestMapNumberBounds(t *testing.T) {
	inputs := []float64{0, 0.001, 1, -1, 7.5, 99.999, 100, 123456.789, -987654321, 1e15, -1e-9, 1e308, -1e308, math.MaxFloat64, -math.MaxFloat64}
	for _, n := range inputs {
		result, err := MapNumber(n)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Frequency, 100.0, "number %v", n)
		assert.Less(t, result.Frequency, 1000.0, "number %v", n)
		assert.GreaterOrEqual(t, result.OscillatorCount, 1, "number %v", n)
		assert.LessOrEqual(t, result.OscillatorCount, 5, "number %v", n)
		assert.GreaterOrEqual(t, result.Visual.Sides, 3, "number %v", n)
		assert.LessOrEqual(t, result.Visual.Sides, 9, "number %v", n)
		assert.GreaterOrEqual(t, result.Visual.ColorHue, 0.0, "number %v", n)
		assert.Less(t, result.Visual.ColorHue, 360.0, "number %v", n)
		assert.GreaterOrEqual(t, result.Visual.RotationSpeed, 1.0, "number %v", n)
		assert.Less(t, result.Visual.RotationSpeed, 8.0, "number %v", n)
	}
}

func TestMapNumberHugeValuesKeepHue(t *testing.T) {
	result, err := MapNumber(1e308)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(result.Visual.ColorHue))

	small, err := MapNumber(13)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, small.Visual.ColorHue, 1e-9)
}

func TestMapNumberRejectsNonFinite(t *testing.T) {
	for _, n := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := MapNumber(n)
		assert.True(t, errors.Is(err, ErrInvalidNumericInput))
	}
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, n)

	for _, s := range []string{"", "abc", "NaN", "Inf", "1e400"} {
		_, err := ParseNumber(s)
		assert.True(t, errors.Is(err, ErrInvalidNumericInput), "input %q", s)
	}
}

func TestMapNumberIdempotent(t *testing.T) {
	a, err := MapNumber(-73.25)
	require.NoError(t, err)
	b, err := MapNumber(-73.25)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
