package main

import (
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/synesthesia-api/internal/config"
	"github.com/Conceptual-Machines/synesthesia-api/internal/preferences"
	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	filtered := filterSensitiveHeaders(map[string]string{
		"Authorization": "Bearer x",
		"X-User-ID":     "alice",
		"Content-Type":  "application/json",
	})

	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["X-User-ID"])
	assert.Equal(t, "application/json", filtered["Content-Type"])
}

func TestFileStoreWithoutDatabase(t *testing.T) {
	cfg := &config.Config{PreferencesFile: filepath.Join(t.TempDir(), "prefs.json")}

	store, storage := newPreferenceStore(cfg)
	assert.Equal(t, storageFile, storage)
	assert.IsType(t, &preferences.FileStore{}, store)
}
