package mapping

import (
	"math"
	"strconv"
	"unicode"
)

const (
	// BaseFrequency is A3 in Hz
	BaseFrequency = 220.0

	// DefaultNoteDuration is the per-note duration in seconds
	DefaultNoteDuration = 0.2

	// restFactor scales the note duration for whitespace rests
	restFactor = 0.5

	semitonesPerOctave = 12
	referenceFrequency = 440.0 // A4
	referenceMIDINote  = 69
)

var noteNames = [semitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// TextOptions controls text mapping. The zero value uses the pentatonic
// scale and DefaultNoteDuration.
type TextOptions struct {
	Scale        ScaleName
	NoteDuration float64
}

func (o TextOptions) noteDuration() float64 {
	if o.NoteDuration <= 0 || math.IsNaN(o.NoteDuration) || math.IsInf(o.NoteDuration, 0) {
		return DefaultNoteDuration
	}
	return o.NoteDuration
}

// NoteMapping is one sounded character of the input text
type NoteMapping struct {
	Index     int     `json:"index"`
	Char      string  `json:"char"`
	Frequency float64 `json:"frequency"`
	Note      string  `json:"note"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
}

// TextMapping is the note sequence for a piece of text
type TextMapping struct {
	Input         string        `json:"input"`
	Scale         ScaleName     `json:"scale"`
	Mappings      []NoteMapping `json:"mappings"`
	TotalDuration float64       `json:"total_duration"`
}

// MapText converts text into an ordered note sequence. Whitespace produces no
// note but advances time by half a note duration.
func MapText(text string, opts TextOptions) TextMapping {
	scale := opts.Scale.resolve()
	duration := opts.noteDuration()

	result := TextMapping{
		Input:    text,
		Scale:    scale,
		Mappings: []NoteMapping{},
	}

	offset := 0.0
	index := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			offset += duration * restFactor
			index++
			continue
		}

		freq := CharFrequency(r, scale)
		result.Mappings = append(result.Mappings, NoteMapping{
			Index:     index,
			Char:      string(r),
			Frequency: freq,
			Note:      FrequencyToNote(freq),
			Start:     offset,
			Duration:  duration,
		})
		offset += duration
		index++
	}

	result.TotalDuration = offset
	return result
}

// CharFrequency maps a single character to a frequency. Letters walk the
// scale upward octave by octave, digits step by semitones, anything else
// sounds the base frequency.
func CharFrequency(r rune, scale ScaleName) float64 {
	upper := unicode.ToUpper(r)

	switch {
	case upper >= 'A' && upper <= 'Z':
		offsets := scaleTable[scale.resolve()]
		noteIndex := int(upper - 'A')
		scaleIndex := noteIndex % len(offsets)
		octaveOffset := (noteIndex / len(offsets)) * semitonesPerOctave
		return semitonesAbove(BaseFrequency, offsets[scaleIndex]+octaveOffset)
	case r >= '0' && r <= '9':
		return semitonesAbove(BaseFrequency, int(r-'0'))
	default:
		return BaseFrequency
	}
}

func semitonesAbove(base float64, semitones int) float64 {
	return base * math.Pow(2, float64(semitones)/semitonesPerOctave)
}

// FrequencyToNote names the nearest equal-tempered note, e.g. 220 Hz is "A3".
// Non-positive frequencies are rests.
func FrequencyToNote(frequency float64) string {
	key, ok := FrequencyToMIDI(frequency)
	if !ok {
		return "rest"
	}
	octave := floorDiv(key, semitonesPerOctave) - 1
	return noteNames[floorMod(key, semitonesPerOctave)] + strconv.Itoa(octave)
}

// FrequencyToMIDI returns the nearest MIDI key number for a frequency
func FrequencyToMIDI(frequency float64) (int, bool) {
	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return 0, false
	}
	semitones := semitonesPerOctave*math.Log2(frequency/referenceFrequency) + referenceMIDINote
	return int(math.Round(semitones)), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
