package models

import (
	"time"
)

// Preset is a saved set of user settings. Keys are client-defined; "id" is
// assigned by the server.
type Preset map[string]any

// UserPreference stores the preferences of one hashed user key
type UserPreference struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserKey   string    `gorm:"uniqueIndex;size:16;not null" json:"-"`
	Volume    int       `gorm:"not null;default:50" json:"volume"`
	Speed     int       `gorm:"not null;default:5" json:"speed"`
	Intensity int       `gorm:"not null;default:70" json:"intensity"`
	Scale     string    `gorm:"not null;default:'pentatonic'" json:"scale"`
	Presets   []Preset  `gorm:"serializer:json;type:jsonb" json:"presets"`
}
