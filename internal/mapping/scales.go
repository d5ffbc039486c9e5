package mapping

import (
	"sort"
	"strings"
)

// ScaleName identifies one of the built-in musical scales.
// The zero value means pentatonic.
type ScaleName string

const (
	ScalePentatonic ScaleName = "pentatonic"
	ScaleMajor      ScaleName = "major"
	ScaleMinor      ScaleName = "minor"

	DefaultScale = ScalePentatonic
)

// scaleTable holds semitone offsets from the tonic. Read-only after init.
var scaleTable = map[ScaleName][]int{
	ScalePentatonic: {0, 2, 4, 7, 9},
	ScaleMajor:      {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:      {0, 2, 3, 5, 7, 8, 10},
}

// ParseScale resolves a scale name case-insensitively. An empty name is the default scale.
func ParseScale(name string) (ScaleName, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return DefaultScale, nil
	}
	s := ScaleName(trimmed)
	if _, ok := scaleTable[s]; !ok {
		return DefaultScale, newInputError("scale", name, ErrUnknownScale)
	}
	return s, nil
}

// ScaleOrDefault resolves name and falls back to the default scale for unknown names.
func ScaleOrDefault(name string) ScaleName {
	s, _ := ParseScale(name)
	return s
}

// Offsets returns a copy of the scale's semitone offsets.
func (s ScaleName) Offsets() []int {
	offsets := scaleTable[s.resolve()]
	out := make([]int, len(offsets))
	copy(out, offsets)
	return out
}

// String returns the canonical name.
func (s ScaleName) String() string {
	return string(s.resolve())
}

func (s ScaleName) resolve() ScaleName {
	if _, ok := scaleTable[s]; ok {
		return s
	}
	return DefaultScale
}

// Scales lists the built-in scale names in sorted order.
func Scales() []ScaleName {
	names := make([]ScaleName, 0, len(scaleTable))
	for name := range scaleTable {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
