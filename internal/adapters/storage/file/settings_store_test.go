package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"medication-tracker/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "settings.json")

	st, err := OpenSettingsStore(path)
	require.NoError(t, err)

	_, err = st.Get(ctx, "u1")
	assert.ErrorIs(t, err, settings.ErrNotFound)

	saved := settings.AppSettings{
		UserID:              "u1",
		ThresholdExpiring:   7,
		ThresholdRunningOut: 5,
		ShowDelayDisclaimer: false,
		UpdatedAt:           time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.Save(ctx, saved))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed")

	reopened, err := OpenSettingsStore(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.ThresholdExpiring)
	assert.Equal(t, 5, got.ThresholdRunningOut)
	assert.False(t, got.ShowDelayDisclaimer)
	assert.True(t, saved.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSettingsStore_DeleteIsPersisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")

	st, err := OpenSettingsStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, settings.Defaults("u1")))
	require.NoError(t, st.Save(ctx, settings.Defaults("u2")))
	require.NoError(t, st.Delete(ctx, "u1"))
	assert.ErrorIs(t, st.Delete(ctx, "u1"), settings.ErrNotFound)

	reopened, err := OpenSettingsStore(path)
	require.NoError(t, err)
	_, err = reopened.Get(ctx, "u1")
	assert.ErrorIs(t, err, settings.ErrNotFound)
	_, err = reopened.Get(ctx, "u2")
	assert.NoError(t, err)
}

func TestSettingsStore_EmptyFileIsNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	st, err := OpenSettingsStore(path)
	require.NoError(t, err)
	_, err = st.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestSettingsStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenSettingsStore(path)
	assert.Error(t, err)
}
