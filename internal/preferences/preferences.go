package preferences

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Conceptual-Machines/synesthesia-api/internal/experience"
	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/Conceptual-Machines/synesthesia-api/internal/models"
)

const (
	// MaxPresets is the number of presets kept per user
	MaxPresets = 10

	// DefaultUser is the identifier used when a request names no user
	DefaultUser = "default"

	userKeyLength  = 16
	presetIDLength = 8
	presetIDField  = "id"
	minVolume      = 0
	maxVolume      = 100
	minSpeed       = 1
	maxSpeed       = 10
	minIntensity   = 0
	maxIntensity   = 100
)

// ErrInvalidPreference is returned for out-of-range updates
var ErrInvalidPreference = errors.New("invalid preference")

// Preferences is what a user sees and edits
type Preferences struct {
	Volume    int             `json:"volume"`
	Speed     int             `json:"speed"`
	Intensity int             `json:"intensity"`
	Scale     string          `json:"scale"`
	Presets   []models.Preset `json:"presets"`
}

// Defaults returns the preferences of a user with nothing stored
func Defaults() Preferences {
	return Preferences{
		Volume:    experience.DefaultVolume,
		Speed:     experience.DefaultSpeed,
		Intensity: experience.DefaultIntensity,
		Scale:     mapping.DefaultScale.String(),
		Presets:   []models.Preset{},
	}
}

// Settings converts to experience settings
func (p Preferences) Settings() experience.Settings {
	return experience.Settings{Volume: p.Volume, Speed: p.Speed, Intensity: p.Intensity}
}

// Update is a partial change; nil fields are left alone
type Update struct {
	Volume    *int            `json:"volume,omitempty"`
	Speed     *int            `json:"speed,omitempty"`
	Intensity *int            `json:"intensity,omitempty"`
	Scale     *string         `json:"scale,omitempty"`
	Presets   []models.Preset `json:"presets,omitempty"`
}

// Validate checks ranges and the scale name
func (u Update) Validate() error {
	if u.Volume != nil && (*u.Volume < minVolume || *u.Volume > maxVolume) {
		return fmt.Errorf("%w: volume must be between %d and %d", ErrInvalidPreference, minVolume, maxVolume)
	}
	if u.Speed != nil && (*u.Speed < minSpeed || *u.Speed > maxSpeed) {
		return fmt.Errorf("%w: speed must be between %d and %d", ErrInvalidPreference, minSpeed, maxSpeed)
	}
	if u.Intensity != nil && (*u.Intensity < minIntensity || *u.Intensity > maxIntensity) {
		return fmt.Errorf("%w: intensity must be between %d and %d", ErrInvalidPreference, minIntensity, maxIntensity)
	}
	if u.Scale != nil {
		if _, err := mapping.ParseScale(*u.Scale); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPreference, err)
		}
	}
	if len(u.Presets) > MaxPresets {
		return fmt.Errorf("%w: at most %d presets", ErrInvalidPreference, MaxPresets)
	}
	return nil
}

func (u Update) apply(p *Preferences) {
	if u.Volume != nil {
		p.Volume = *u.Volume
	}
	if u.Speed != nil {
		p.Speed = *u.Speed
	}
	if u.Intensity != nil {
		p.Intensity = *u.Intensity
	}
	if u.Scale != nil {
		p.Scale = mapping.ScaleOrDefault(*u.Scale).String()
	}
	if u.Presets != nil {
		p.Presets = u.Presets
	}
}

// Store persists preferences by hashed user key
type Store interface {
	// Load returns false when nothing is stored for key
	Load(ctx context.Context, key string) (Preferences, bool, error)
	Save(ctx context.Context, key string, prefs Preferences) error
}

// Service reads and writes user preferences. Read-modify-write cycles for the
// same user are serialized; last write wins.
type Service struct {
	store Store
	locks sync.Map // user key -> *sync.Mutex
}

// NewService creates a preferences service over store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// UserKey hashes a user identifier to the stored key
func UserKey(identifier string) string {
	if identifier == "" {
		identifier = DefaultUser
	}
	sum := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(sum[:])[:userKeyLength]
}

func (s *Service) lock(key string) func() {
	m, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Get returns the stored preferences for user, or the defaults
func (s *Service) Get(ctx context.Context, user string) (Preferences, error) {
	return s.get(ctx, UserKey(user))
}

func (s *Service) get(ctx context.Context, key string) (Preferences, error) {
	prefs, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}
	if prefs.Presets == nil {
		prefs.Presets = []models.Preset{}
	}
	return prefs, nil
}

// Set merges update into the user's preferences and stores the result
func (s *Service) Set(ctx context.Context, user string, update Update) (Preferences, error) {
	if err := update.Validate(); err != nil {
		return Preferences{}, err
	}

	key := UserKey(user)
	defer s.lock(key)()

	prefs, err := s.get(ctx, key)
	if err != nil {
		return Preferences{}, err
	}
	update.apply(&prefs)

	if err := s.store.Save(ctx, key, prefs); err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}

// AddPreset appends a preset with a content-derived id and keeps the first
// MaxPresets entries.
func (s *Service) AddPreset(ctx context.Context, user string, preset models.Preset) ([]models.Preset, error) {
	id, err := PresetID(preset)
	if err != nil {
		return nil, err
	}

	stored := make(models.Preset, len(preset)+1)
	for k, v := range preset {
		stored[k] = v
	}
	stored[presetIDField] = id

	key := UserKey(user)
	defer s.lock(key)()

	prefs, err := s.get(ctx, key)
	if err != nil {
		return nil, err
	}

	prefs.Presets = append(prefs.Presets, stored)
	if len(prefs.Presets) > MaxPresets {
		prefs.Presets = prefs.Presets[:MaxPresets]
	}

	if err := s.store.Save(ctx, key, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return prefs.Presets, nil
}

// PresetID hashes the preset's JSON encoding, ignoring any existing id
func PresetID(preset models.Preset) (string, error) {
	content := make(models.Preset, len(preset))
	for k, v := range preset {
		if k != presetIDField {
			content[k] = v
		}
	}
	b, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("%w: preset is not serializable: %v", ErrInvalidPreference, err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:presetIDLength], nil
}
