package mapping

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAutoDispatch(t *testing.T) {
	text, err := MapAuto("Hello", TextOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindText, text.Detected.Kind)
	require.NotNil(t, text.Text)
	assert.Len(t, text.Text.Mappings, 5)
	assert.Nil(t, text.Color)
	assert.Nil(t, text.Number)

	color, err := MapAuto(" #F00 ", TextOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindColor, color.Detected.Kind)
	require.NotNil(t, color.Color)
	assert.Equal(t, "#F00", color.Color.Input)
	assert.Equal(t, "#00FFFF", color.Color.Complementary)

	number, err := MapAuto("21", TextOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindNumber, number.Detected.Kind)
	require.NotNil(t, number.Number)
	assert.Equal(t, PatternWave, number.Number.Pattern)
}

func TestMapAutoUsesTextOptions(t *testing.T) {
	result, err := MapAuto("h", TextOptions{Scale: ScaleMajor, NoteDuration: 1})
	require.NoError(t, err)
	require.Len(t, result.Text.Mappings, 1)
	assert.Equal(t, ScaleMajor, result.Text.Scale)
	assert.Equal(t, 440.0, result.Text.Mappings[0].Frequency)
	assert.Equal(t, 1.0, result.Text.TotalDuration)
}

func TestMapAutoUnknown(t *testing.T) {
	for _, content := range []string{"", "  "} {
		result, err := MapAuto(content, TextOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnrecognizedContent))
		assert.Equal(t, KindUnknown, result.Detected.Kind)
		assert.Nil(t, result.Mapping())
	}
}

func TestAutoResultJSON(t *testing.T) {
	result, err := MapAuto("42", TextOptions{})
	require.NoError(t, err)

	b, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	detected, ok := decoded["detected"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", detected["type"])
	assert.Equal(t, 42.0, detected["value"])

	mapping, ok := decoded["mapping"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wave", mapping["pattern"])
}

func TestMapAutoConcurrent(t *testing.T) {
	inputs := []string{"#123abc", "3.75", "concurrency", "77"}
	want := make([]AutoResult, len(inputs))
	for i, in := range inputs {
		r, err := MapAuto(in, TextOptions{})
		require.NoError(t, err)
		want[i] = r
	}

	var wg sync.WaitGroup
	results := make([][]AutoResult, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, in := range inputs {
				r, _ := MapAuto(in, TextOptions{})
				results[g] = append(results[g], r)
			}
		}(g)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestParseScale(t *testing.T) {
	s, err := ParseScale(" Major ")
	require.NoError(t, err)
	assert.Equal(t, ScaleMajor, s)

	s, err = ParseScale("")
	require.NoError(t, err)
	assert.Equal(t, ScalePentatonic, s)

	s, err = ParseScale("dorian")
	assert.True(t, errors.Is(err, ErrUnknownScale))
	assert.Equal(t, ScalePentatonic, s)

	assert.Equal(t, ScaleMinor, ScaleOrDefault("minor"))
	assert.Equal(t, ScalePentatonic, ScaleOrDefault("invalid"))
	assert.Equal(t, []int{0, 2, 4, 7, 9}, ScalePentatonic.Offsets())
	assert.Equal(t, []ScaleName{ScaleMajor, ScaleMinor, ScalePentatonic}, Scales())
	assert.Equal(t, "pentatonic", ScaleName("").String())
}
