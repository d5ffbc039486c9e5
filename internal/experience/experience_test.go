package experience

import (
	"errors"
	"testing"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAuto(t *testing.T, content string) mapping.AutoResult {
	t.Helper()
	result, err := mapping.MapAuto(content, mapping.TextOptions{})
	require.NoError(t, err)
	return result
}

func TestBuildText(t *testing.T) {
	session := NewSession("s1", 1)
	plan, err := session.Build(mustAuto(t, "AB C"), Settings{Volume: 50, Speed: 5, Intensity: 100})
	require.NoError(t, err)

	assert.Equal(t, "s1", plan.SessionID)
	require.Len(t, plan.Voices, 3)
	assert.Equal(t, 220.0, plan.Voices[0].Frequency)
	assert.Equal(t, mapping.WaveformSine, plan.Voices[0].Waveform)
	assert.InDelta(t, 0.5, plan.Voices[0].Gain, 1e-12)
	assert.InDelta(t, 0.5, plan.Voices[2].Start, 1e-12)
	assert.InDelta(t, 0.7, plan.Duration, 1e-12)

	assert.Equal(t, LayoutCharacters, plan.Scene.Layout)
	require.Len(t, plan.Scene.Particles, 3)
	assert.Equal(t, "A", plan.Scene.Particles[0].Label)
	assert.Equal(t, "C", plan.Scene.Particles[2].Label)
	// A is pitch class 9
	assert.Equal(t, 270.0, plan.Scene.Particles[0].Hue)
}

func TestBuildColor(t *testing.T) {
	session := NewSession("s2", 2)
	plan, err := session.Build(mustAuto(t, "#FF0000"), Settings{Volume: 100, Speed: 5, Intensity: 100})
	require.NoError(t, err)

	require.Len(t, plan.Voices, 1)
	v := plan.Voices[0]
	assert.Equal(t, 200.0, v.Frequency)
	assert.Equal(t, mapping.WaveformSawtooth, v.Waveform)
	assert.InDelta(t, 0.75, v.Gain, 1e-12)
	assert.Equal(t, 1.0, v.Duration)

	assert.Equal(t, LayoutColor, plan.Scene.Layout)
	assert.Equal(t, "#00FFFF", plan.Scene.Background)
	assert.Len(t, plan.Scene.Particles, colorParticles)
}

func TestBuildNumberPatterns(t *testing.T) {
	tests := []struct {
		content      string
		wantVoices   int
		wantWaveform mapping.Waveform
	}{
		{content: "1", wantVoices: 1, wantWaveform: mapping.WaveformSine},     // steady, 1 oscillator
		{content: "22", wantVoices: 12, wantWaveform: mapping.WaveformSine},   // pulse, 3 oscillators x 4 pulses
		{content: "33", wantVoices: 4, wantWaveform: mapping.WaveformSine},    // arpeggio, 4 oscillators
		{content: "55", wantVoices: 5, wantWaveform: mapping.WaveformSawtooth}, // sweep
		{content: "14", wantVoices: 2, wantWaveform: mapping.WaveformTriangle}, // wave
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			plan, err := NewSession("n", 3).Build(mustAuto(t, tt.content), DefaultSettings())
			require.NoError(t, err)
			require.Len(t, plan.Voices, tt.wantVoices)
			for _, v := range plan.Voices {
				assert.Equal(t, tt.wantWaveform, v.Waveform)
				assert.LessOrEqual(t, v.Start+v.Duration, plan.Duration+1e-9)
			}
			assert.Equal(t, LayoutPolygon, plan.Scene.Layout)
		})
	}
}

func TestBuildNumberHarmonics(t *testing.T) {
	plan, err := NewSession("n", 3).Build(mustAuto(t, "33"), DefaultSettings())
	require.NoError(t, err)
	require.Len(t, plan.Voices, 4)

	base := plan.Voices[0].Frequency
	for i, v := range plan.Voices {
		assert.InDelta(t, base*float64(i+1), v.Frequency, 1e-9)
		assert.InDelta(t, 0.5/4, v.Gain, 1e-12)
		assert.InDelta(t, float64(i)*arpeggioStep, v.Start, 1e-12)
	}
}

func TestBuildSpeedScalesTime(t *testing.T) {
	normal, err := NewSession("a", 1).Build(mustAuto(t, "ABC"), Settings{Volume: 50, Speed: 5, Intensity: 70})
	require.NoError(t, err)
	fast, err := NewSession("a", 1).Build(mustAuto(t, "ABC"), Settings{Volume: 50, Speed: 10, Intensity: 70})
	require.NoError(t, err)

	assert.InDelta(t, normal.Duration/2, fast.Duration, 1e-12)
}

func TestBuildIntensityScalesParticles(t *testing.T) {
	plan, err := NewSession("a", 1).Build(mustAuto(t, "40"), Settings{Volume: 50, Speed: 5, Intensity: 50})
	require.NoError(t, err)
	assert.Len(t, plan.Scene.Particles, 20)

	plan, err = NewSession("a", 1).Build(mustAuto(t, "40"), Settings{Volume: 50, Speed: 5, Intensity: 0})
	require.NoError(t, err)
	assert.Empty(t, plan.Scene.Particles)
}

func TestBuildTextIntensitySamplesCharacters(t *testing.T) {
	plan, err := NewSession("a", 1).Build(mustAuto(t, "ABCDEFGHIJ"), Settings{Volume: 50, Speed: 5, Intensity: 50})
	require.NoError(t, err)
	require.Len(t, plan.Scene.Particles, 5)
	assert.Equal(t, "A", plan.Scene.Particles[0].Label)
	assert.Equal(t, "C", plan.Scene.Particles[1].Label)
	assert.Equal(t, "I", plan.Scene.Particles[4].Label)
	assert.Len(t, plan.Voices, 10)

	plan, err = NewSession("a", 1).Build(mustAuto(t, "ABCDEFGHIJ"), Settings{Volume: 50, Speed: 5, Intensity: 0})
	require.NoError(t, err)
	assert.Empty(t, plan.Scene.Particles)
}

func TestBuildParticlesInBounds(t *testing.T) {
	for _, content := range []string{"Hello there", "#123456", "49", "-7"} {
		plan, err := NewSession("b", 99).Build(mustAuto(t, content), Settings{Volume: 80, Speed: 7, Intensity: 100})
		require.NoError(t, err)
		for _, p := range plan.Scene.Particles {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, 1.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.Y, 1.0)
			assert.GreaterOrEqual(t, p.Size, minParticleSize)
		}
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	result := mustAuto(t, "#336699")

	a1, err := NewSession("a", 7).Build(result, DefaultSettings())
	require.NoError(t, err)
	a2, err := NewSession("a", 7).Build(result, DefaultSettings())
	require.NoError(t, err)
	b, err := NewSession("b", 8).Build(result, DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, a1.Scene.Particles, a2.Scene.Particles)
	assert.NotEqual(t, a1.Scene.Particles, b.Scene.Particles)
	assert.Equal(t, a1.Voices, b.Voices)
}

func TestBuildUnknown(t *testing.T) {
	_, err := NewSession("u", 1).Build(mapping.AutoResult{}, DefaultSettings())
	assert.True(t, errors.Is(err, mapping.ErrUnrecognizedContent))

	_, err = NewSession("u", 1).Build(mapping.AutoResult{Detected: mapping.Classification{Kind: mapping.KindText}}, DefaultSettings())
	assert.True(t, errors.Is(err, mapping.ErrUnrecognizedContent))
}

func TestSettingsNormalized(t *testing.T) {
	s := Settings{Volume: 150, Speed: 0, Intensity: -5}.normalized()
	assert.Equal(t, Settings{Volume: 100, Speed: 1, Intensity: 0}, s)
}
