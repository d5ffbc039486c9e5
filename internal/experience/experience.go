// Package experience composes mapping results into a synchronized playback
// and animation plan for the browser shells.
//
// A Session owns the random source used for particle jitter, so concurrent
// sessions never share state. The mapping engine itself stays deterministic.
package experience

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
)

const (
	DefaultVolume    = 50
	DefaultSpeed     = 5
	DefaultIntensity = 70

	maxVolume    = 100
	minSpeed     = 1
	maxSpeed     = 10
	maxIntensity = 100

	colorToneSeconds  = 1.0
	numberToneSeconds = 1.0
	colorParticles    = 30

	pulseCount       = 4
	pulseLength      = 0.125
	arpeggioStep     = 0.15
	arpeggioLength   = 0.6
	pitchClassDegree = 30.0
)

// Layout tells the renderer how to arrange particles
type Layout string

const (
	LayoutCharacters Layout = "characters"
	LayoutColor      Layout = "color"
	LayoutPolygon    Layout = "polygon"
)

// Settings are the user-controlled knobs, on the preference scales:
// volume and intensity 0-100, speed 1-10 with 5 as normal speed.
type Settings struct {
	Volume    int `json:"volume"`
	Speed     int `json:"speed"`
	Intensity int `json:"intensity"`
}

// DefaultSettings returns the settings of a new user
func DefaultSettings() Settings {
	return Settings{Volume: DefaultVolume, Speed: DefaultSpeed, Intensity: DefaultIntensity}
}

func (s Settings) normalized() Settings {
	s.Volume = clampInt(s.Volume, 0, maxVolume)
	s.Speed = clampInt(s.Speed, minSpeed, maxSpeed)
	s.Intensity = clampInt(s.Intensity, 0, maxIntensity)
	return s
}

func (s Settings) timeScale() float64 {
	return float64(DefaultSpeed) / float64(s.Speed)
}

func (s Settings) level() float64 {
	return float64(s.Volume) / maxVolume
}

// Voice is one oscillator the audio shell should schedule. Times are seconds
// from the start of the experience.
type Voice struct {
	Frequency float64          `json:"frequency"`
	Waveform  mapping.Waveform `json:"waveform"`
	Start     float64          `json:"start"`
	Duration  float64          `json:"duration"`
	Gain      float64          `json:"gain"`
}

// Particle is a point in normalized [0,1) canvas space
type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Size  float64 `json:"size"`
	Hue   float64 `json:"hue"`
	Label string  `json:"label,omitempty"`
}

// Scene is what the visual shell animates
type Scene struct {
	Layout        Layout     `json:"layout"`
	Hue           float64    `json:"hue"`
	Saturation    float64    `json:"saturation"`
	Lightness     float64    `json:"lightness"`
	Sides         int        `json:"sides,omitempty"`
	RotationSpeed float64    `json:"rotation_speed,omitempty"`
	Background    string     `json:"background,omitempty"`
	Particles     []Particle `json:"particles"`
}

// Plan is a complete experience for one submission
type Plan struct {
	SessionID string             `json:"session_id"`
	Content   mapping.AutoResult `json:"content"`
	Settings  Settings           `json:"settings"`
	Voices    []Voice            `json:"voices"`
	Scene     Scene              `json:"scene"`
	Duration  float64            `json:"duration"`
}

// Session owns the randomness of one viewer. It is not safe for concurrent use.
type Session struct {
	id  string
	rng *rand.Rand
}

// NewSession creates a session whose particle jitter is reproducible from seed
func NewSession(id string, seed int64) *Session {
	return &Session{id: id, rng: rand.New(rand.NewSource(seed))} //nolint:gosec // visual jitter only
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Build composes a plan from an auto-mapping result
func (s *Session) Build(result mapping.AutoResult, settings Settings) (Plan, error) {
	settings = settings.normalized()
	plan := Plan{
		SessionID: s.id,
		Content:   result,
		Settings:  settings,
	}

	switch result.Detected.Kind {
	case mapping.KindText:
		if result.Text == nil {
			return plan, fmt.Errorf("text result without mapping: %w", mapping.ErrUnrecognizedContent)
		}
		plan.Voices, plan.Duration = textVoices(*result.Text, settings)
		plan.Scene = s.textScene(*result.Text, settings)
	case mapping.KindColor:
		if result.Color == nil {
			return plan, fmt.Errorf("color result without mapping: %w", mapping.ErrUnrecognizedContent)
		}
		plan.Voices, plan.Duration = colorVoices(*result.Color, settings)
		plan.Scene = s.colorScene(*result.Color, settings)
	case mapping.KindNumber:
		if result.Number == nil {
			return plan, fmt.Errorf("number result without mapping: %w", mapping.ErrUnrecognizedContent)
		}
		plan.Voices, plan.Duration = numberVoices(*result.Number, settings)
		plan.Scene = s.numberScene(*result.Number, settings)
	case mapping.KindUnknown:
		return plan, mapping.ErrUnrecognizedContent
	default:
		return plan, fmt.Errorf("%w: kind %s", mapping.ErrUnrecognizedContent, result.Detected.Kind)
	}

	return plan, nil
}

func textVoices(m mapping.TextMapping, settings Settings) ([]Voice, float64) {
	scale := settings.timeScale()
	voices := make([]Voice, 0, len(m.Mappings))
	for _, n := range m.Mappings {
		voices = append(voices, Voice{
			Frequency: n.Frequency,
			Waveform:  mapping.WaveformSine,
			Start:     n.Start * scale,
			Duration:  n.Duration * scale,
			Gain:      settings.level(),
		})
	}
	return voices, m.TotalDuration * scale
}

func colorVoices(m mapping.ColorMapping, settings Settings) ([]Voice, float64) {
	duration := colorToneSeconds * settings.timeScale()
	return []Voice{{
		Frequency: m.Frequency,
		Waveform:  m.Waveform,
		Start:     0,
		Duration:  duration,
		Gain:      settings.level() * m.VolumeModifier,
	}}, duration
}

func numberWaveform(p mapping.Pattern) mapping.Waveform {
	switch p {
	case mapping.PatternSweep:
		return mapping.WaveformSawtooth
	case mapping.PatternWave:
		return mapping.WaveformTriangle
	case mapping.PatternSteady, mapping.PatternPulse, mapping.PatternArpeggio:
		return mapping.WaveformSine
	default:
		return mapping.WaveformSine
	}
}

// numberVoices stacks oscillatorCount harmonics of the base frequency
func numberVoices(m mapping.NumberMapping, settings Settings) ([]Voice, float64) {
	scale := settings.timeScale()
	waveform := numberWaveform(m.Pattern)
	gain := settings.level() / float64(m.OscillatorCount)
	total := numberToneSeconds * scale

	var voices []Voice
	for i := 0; i < m.OscillatorCount; i++ {
		freq := m.Frequency * float64(i+1)
		switch m.Pattern {
		case mapping.PatternPulse:
			step := total / pulseCount
			for p := 0; p < pulseCount; p++ {
				voices = append(voices, Voice{Frequency: freq, Waveform: waveform, Start: float64(p) * step, Duration: pulseLength * scale, Gain: gain})
			}
		case mapping.PatternArpeggio:
			start := float64(i) * arpeggioStep * scale
			voices = append(voices, Voice{Frequency: freq, Waveform: waveform, Start: start, Duration: arpeggioLength * scale, Gain: gain})
			total = math.Max(total, start+arpeggioLength*scale)
		case mapping.PatternSteady, mapping.PatternSweep, mapping.PatternWave:
			voices = append(voices, Voice{Frequency: freq, Waveform: waveform, Start: 0, Duration: total, Gain: gain})
		default:
			voices = append(voices, Voice{Frequency: freq, Waveform: waveform, Start: 0, Duration: total, Gain: gain})
		}
	}
	return voices, total
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
