package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Conceptual-Machines/synesthesia-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferences.json")
	return NewService(NewFileStore(path)), path
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestGetDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	prefs, err := svc.Get(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, 50, prefs.Volume)
	assert.Equal(t, 5, prefs.Speed)
	assert.Equal(t, 70, prefs.Intensity)
	assert.Equal(t, "pentatonic", prefs.Scale)
	assert.Empty(t, prefs.Presets)
	assert.NotNil(t, prefs.Presets)
}

func TestSetMergesWithExisting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "user1", Update{Volume: intPtr(80), Speed: intPtr(8)})
	require.NoError(t, err)

	prefs, err := svc.Set(ctx, "user1", Update{Volume: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, 90, prefs.Volume)
	assert.Equal(t, 8, prefs.Speed)
	assert.Equal(t, 70, prefs.Intensity)

	got, err := svc.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, prefs, got)

	other, err := svc.Get(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, 50, other.Volume)
}

func TestSetNormalizesScale(t *testing.T) {
	svc, _ := newTestService(t)

	prefs, err := svc.Set(context.Background(), "u", Update{Scale: strPtr("Minor")})
	require.NoError(t, err)
	assert.Equal(t, "minor", prefs.Scale)
}

func TestSetRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	updates := []Update{
		{Volume: intPtr(101)},
		{Volume: intPtr(-1)},
		{Speed: intPtr(0)},
		{Speed: intPtr(11)},
		{Intensity: intPtr(200)},
		{Scale: strPtr("lydian")},
		{Presets: make([]models.Preset, MaxPresets+1)},
	}
	for i, u := range updates {
		_, err := svc.Set(context.Background(), "u", u)
		assert.True(t, errors.Is(err, ErrInvalidPreference), "update %d", i)
	}
}

func TestSavesToFile(t *testing.T) {
	svc, path := newTestService(t)

	_, err := svc.Set(context.Background(), "user1", Update{Volume: intPtr(90)})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved map[string]Preferences
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, 90, saved[UserKey("user1")].Volume)

	// A fresh store sees the same data.
	reloaded := NewService(NewFileStore(path))
	prefs, err := reloaded.Get(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 90, prefs.Volume)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	assert.Equal(t, 0, store.Len())

	_, ok, err := store.Load(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddPreset(t *testing.T) {
	svc, _ := newTestService(t)

	presets, err := svc.AddPreset(context.Background(), "user1", models.Preset{"name": "My Preset", "volume": 60.0})
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "My Preset", presets[0]["name"])
	assert.Len(t, presets[0]["id"], 8)
}

func TestAddPresetLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := svc.AddPreset(ctx, "user1", models.Preset{"name": fmt.Sprintf("Preset %d", i)})
		require.NoError(t, err)
	}

	prefs, err := svc.Get(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, prefs.Presets, MaxPresets)
	assert.Equal(t, "Preset 0", prefs.Presets[0]["name"])
	assert.Equal(t, "Preset 9", prefs.Presets[MaxPresets-1]["name"])
}

func TestPresetIDs(t *testing.T) {
	a, err := PresetID(models.Preset{"name": "Preset 1"})
	require.NoError(t, err)
	b, err := PresetID(models.Preset{"name": "Preset 2"})
	require.NoError(t, err)
	again, err := PresetID(models.Preset{"name": "Preset 1", "id": "ignored"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)

	_, err = PresetID(models.Preset{"bad": func() {}})
	assert.True(t, errors.Is(err, ErrInvalidPreference))
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, UserKey("test_user"), UserKey("test_user"))
	assert.Len(t, UserKey("test_user"), 16)
	assert.NotEqual(t, UserKey("user1"), UserKey("user2"))
	assert.Equal(t, UserKey(DefaultUser), UserKey(""))
}

func TestConcurrentPresetsAreNotLost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < MaxPresets; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddPreset(ctx, "shared", models.Preset{"n": i})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	prefs, err := svc.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, prefs.Presets, MaxPresets)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (Preferences, bool, error) {
	return Preferences{}, false, errors.New("connection refused")
}

func (failingStore) Save(context.Context, string, Preferences) error {
	return errors.New("connection refused")
}

func TestStoreErrorsPropagate(t *testing.T) {
	svc := NewService(failingStore{})

	_, err := svc.Get(context.Background(), "u")
	assert.ErrorContains(t, err, "load preferences")

	_, err = svc.Set(context.Background(), "u", Update{Volume: intPtr(10)})
	assert.ErrorContains(t, err, "load preferences")
}
