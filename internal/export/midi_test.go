package export

import (
	"bytes"
	"testing"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteEvent struct {
	tick uint32
	key  uint8
	on   bool
}

func readNotes(t *testing.T, data []byte) (*smf.SMF, []noteEvent) {
	t.Helper()

	sm, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, sm.Tracks, 2)

	var events []noteEvent
	var tick uint32
	for _, ev := range sm.Tracks[1] {
		tick += ev.Delta
		var ch, key, vel uint8
		msg := midi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			events = append(events, noteEvent{tick: tick, key: key, on: true})
		case msg.GetNoteEnd(&ch, &key):
			events = append(events, noteEvent{tick: tick, key: key, on: false})
		}
	}
	return sm, events
}

func TestWriteMIDI(t *testing.T) {
	seq := mapping.MapText("ABC", mapping.TextOptions{})

	var buf bytes.Buffer
	n, err := WriteMIDI(&buf, seq, MIDIOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	sm, events := readNotes(t, buf.Bytes())
	assert.Equal(t, smf.MetricTicks(ticksPerQuarter), sm.TimeFormat)

	// 120 BPM at 960 ticks per quarter is 1920 ticks per second; 0.2s is 384 ticks.
	want := []noteEvent{
		{tick: 0, key: 57, on: true},
		{tick: 384, key: 57},
		{tick: 384, key: 59, on: true},
		{tick: 768, key: 59},
		{tick: 768, key: 61, on: true},
		{tick: 1152, key: 61},
	}
	assert.Equal(t, want, events)
}

func TestWriteMIDIRests(t *testing.T) {
	seq := mapping.MapText("A A", mapping.TextOptions{})

	var buf bytes.Buffer
	_, err := WriteMIDI(&buf, seq, MIDIOptions{BPM: 60})
	require.NoError(t, err)

	_, events := readNotes(t, buf.Bytes())
	require.Len(t, events, 4)
	// 60 BPM is 960 ticks per second: second note starts after 0.2s + 0.1s rest.
	assert.Equal(t, uint32(288), events[2].tick)
}

func TestWriteMIDIEmpty(t *testing.T) {
	seq := mapping.MapText("", mapping.TextOptions{})

	var buf bytes.Buffer
	_, err := WriteMIDI(&buf, seq, MIDIOptions{})
	require.NoError(t, err)

	_, events := readNotes(t, buf.Bytes())
	assert.Empty(t, events)
}

func TestMIDIOptionsDefaults(t *testing.T) {
	opts := MIDIOptions{BPM: -1, Velocity: 200}.withDefaults()
	assert.Equal(t, DefaultBPM, opts.BPM)
	assert.Equal(t, uint8(DefaultVelocity), opts.Velocity)
	assert.Equal(t, 0, clampKey(-3))
	assert.Equal(t, 127, clampKey(400))
}
