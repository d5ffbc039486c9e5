package preferences

import (
	"context"
	"errors"

	"github.com/Conceptual-Machines/synesthesia-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps one user_preferences row per user key
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over a migrated database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load implements Store
func (s *GormStore) Load(ctx context.Context, key string) (Preferences, bool, error) {
	var row models.UserPreference
	err := s.db.WithContext(ctx).Where("user_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Preferences{}, false, nil
	}
	if err != nil {
		return Preferences{}, false, err
	}

	return Preferences{
		Volume:    row.Volume,
		Speed:     row.Speed,
		Intensity: row.Intensity,
		Scale:     row.Scale,
		Presets:   row.Presets,
	}, true, nil
}

// Save implements Store as an upsert on user_key
func (s *GormStore) Save(ctx context.Context, key string, prefs Preferences) error {
	row := models.UserPreference{
		UserKey:   key,
		Volume:    prefs.Volume,
		Speed:     prefs.Speed,
		Intensity: prefs.Intensity,
		Scale:     prefs.Scale,
		Presets:   prefs.Presets,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"volume", "speed", "intensity", "scale", "presets", "updated_at"}),
	}).Create(&row).Error
}
