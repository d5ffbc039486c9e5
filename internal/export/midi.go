package export

import (
	"fmt"
	"io"
	"math"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	DefaultBPM      = 120.0
	DefaultVelocity = 100

	ticksPerQuarter = 960
	secondsPerMin   = 60.0
	maxMIDIKey      = 127
	noteChannel     = 0
)

// MIDIOptions controls the Standard MIDI File export
type MIDIOptions struct {
	BPM      float64
	Velocity uint8
}

func (o MIDIOptions) withDefaults() MIDIOptions {
	if o.BPM <= 0 || math.IsNaN(o.BPM) || math.IsInf(o.BPM, 0) {
		o.BPM = DefaultBPM
	}
	if o.Velocity == 0 || o.Velocity > maxMIDIKey {
		o.Velocity = DefaultVelocity
	}
	return o
}

// BuildMIDI lays out a text note sequence as a format 1 SMF with a tempo
// track and one note track. Note starts and lengths follow the mapping's
// seconds at the given tempo.
func BuildMIDI(seq mapping.TextMapping, opts MIDIOptions) (*smf.SMF, error) {
	opts = opts.withDefaults()
	ticksPerSecond := ticksPerQuarter * opts.BPM / secondsPerMin

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(opts.BPM))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("add tempo track: %w", err)
	}

	var notes smf.Track
	notes.Add(0, smf.MetaTrackSequenceName(seq.Input))

	var cursor uint32
	for _, n := range seq.Mappings {
		key, ok := mapping.FrequencyToMIDI(n.Frequency)
		if !ok {
			continue
		}
		key = clampKey(key)

		start := uint32(math.Round(n.Start * ticksPerSecond))
		if start < cursor {
			start = cursor
		}
		length := uint32(math.Round(n.Duration * ticksPerSecond))
		if length == 0 {
			length = 1
		}

		notes.Add(start-cursor, midi.NoteOn(noteChannel, uint8(key), opts.Velocity)) //nolint:gosec // key is clamped to 0..127
		notes.Add(length, midi.NoteOff(noteChannel, uint8(key)))                     //nolint:gosec // key is clamped to 0..127
		cursor = start + length
	}

	// Trailing rests still count toward the song length.
	end := uint32(math.Round(seq.TotalDuration * ticksPerSecond))
	if end < cursor {
		end = cursor
	}
	notes.Close(end - cursor)

	if err := sm.Add(notes); err != nil {
		return nil, fmt.Errorf("add note track: %w", err)
	}
	return sm, nil
}

// WriteMIDI encodes the sequence as a Standard MIDI File to w
func WriteMIDI(w io.Writer, seq mapping.TextMapping, opts MIDIOptions) (int64, error) {
	sm, err := BuildMIDI(seq, opts)
	if err != nil {
		return 0, err
	}
	n, err := sm.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write midi: %w", err)
	}
	return n, nil
}

func clampKey(key int) int {
	if key < 0 {
		return 0
	}
	if key > maxMIDIKey {
		return maxMIDIKey
	}
	return key
}
