package experience

import (
	"math"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
)

const (
	minParticleSize  = 2.0
	particleSizeSpan = 4.0
	jitter           = 0.05
	polygonRadius    = 0.35
	hueCircle        = 360.0
)

// scaledCount applies intensity to a particle budget. Any non-zero budget at
// non-zero intensity keeps at least one particle.
func scaledCount(n int, settings Settings) int {
	if n <= 0 || settings.Intensity == 0 {
		return 0
	}
	scaled := int(math.Round(float64(n) * float64(settings.Intensity) / maxIntensity))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// textScene places particles for sounded characters, left to right, colored
// by pitch class. Below full intensity the characters are sampled evenly.
func (s *Session) textScene(m mapping.TextMapping, settings Settings) Scene {
	total := len(m.Mappings)
	count := scaledCount(total, settings)
	scene := Scene{
		Layout:     LayoutCharacters,
		Saturation: 0.8,
		Lightness:  0.6,
		Particles:  make([]Particle, 0, count),
	}

	for j := 0; j < count; j++ {
		i := j * total / count
		n := m.Mappings[i]
		p := s.particle(settings)
		p.X = (float64(i) + 0.5) / float64(total)
		p.Y = clampUnit(0.5 + s.jitter())
		p.Hue = pitchClassHue(n.Frequency)
		p.Label = n.Char
		scene.Particles = append(scene.Particles, p)
	}
	if count > 0 {
		scene.Hue = scene.Particles[0].Hue
	}
	return scene
}

func (s *Session) colorScene(m mapping.ColorMapping, settings Settings) Scene {
	count := scaledCount(colorParticles, settings)
	scene := Scene{
		Layout:     LayoutColor,
		Hue:        m.HSL.H,
		Saturation: m.HSL.S,
		Lightness:  m.HSL.L,
		Background: m.Complementary,
		Particles:  make([]Particle, 0, count),
	}
	for i := 0; i < count; i++ {
		p := s.particle(settings)
		p.X = s.rng.Float64()
		p.Y = s.rng.Float64()
		p.Hue = m.HSL.H
		scene.Particles = append(scene.Particles, p)
	}
	return scene
}

// numberScene spreads particles over the polygon's vertices
func (s *Session) numberScene(m mapping.NumberMapping, settings Settings) Scene {
	count := scaledCount(m.Visual.ParticleCount, settings)
	scene := Scene{
		Layout:        LayoutPolygon,
		Hue:           m.Visual.ColorHue,
		Saturation:    0.7,
		Lightness:     0.5,
		Sides:         m.Visual.Sides,
		RotationSpeed: m.Visual.RotationSpeed,
		Particles:     make([]Particle, 0, count),
	}
	if m.IsNegative {
		scene.Lightness = 0.3
	}

	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i%m.Visual.Sides) / float64(m.Visual.Sides)
		p := s.particle(settings)
		p.X = clampUnit(0.5 + polygonRadius*math.Cos(angle) + s.jitter())
		p.Y = clampUnit(0.5 + polygonRadius*math.Sin(angle) + s.jitter())
		p.Hue = m.Visual.ColorHue
		scene.Particles = append(scene.Particles, p)
	}
	return scene
}

// particle draws velocity and size; callers set position and hue
func (s *Session) particle(settings Settings) Particle {
	speed := 1 / settings.timeScale()
	return Particle{
		VX:   (s.rng.Float64() - 0.5) * speed,
		VY:   (s.rng.Float64() - 0.5) * speed,
		Size: minParticleSize + s.rng.Float64()*particleSizeSpan,
	}
}

func (s *Session) jitter() float64 {
	return (s.rng.Float64()*2 - 1) * jitter
}

func pitchClassHue(frequency float64) float64 {
	key, ok := mapping.FrequencyToMIDI(frequency)
	if !ok {
		return 0
	}
	return math.Mod(float64(((key%12)+12)%12)*pitchClassDegree, hueCircle)
}

// clampUnit keeps a coordinate inside [0,1)
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
