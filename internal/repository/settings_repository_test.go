package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nightfall/internal/db"
	"nightfall/internal/repository"
)

func newSettingsRepo(t *testing.T) repository.SettingsRepository {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return repository.NewSettingsRepository(database)
}

func TestSettingsRepository_GetMissing(t *testing.T) {
	repo := newSettingsRepo(t)

	s, err := repo.Get(context.Background(), "story.variant")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestSettingsRepository_SetManyAndGet(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	err := repo.SetMany(ctx, map[string]string{
		"story.variant":     "legend",
		"story.strict":      "true",
		"story.image_count": "2",
	})
	require.NoError(t, err)

	s, err := repo.Get(ctx, "story.variant")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "legend", s.Value)
	require.False(t, s.UpdatedAt.IsZero())

	require.NoError(t, repo.SetMany(ctx, map[string]string{"story.variant": "single"}))
	s, err = repo.Get(ctx, "story.variant")
	require.NoError(t, err)
	require.Equal(t, "single", s.Value)
}

func TestSettingsRepository_GetByPrefix(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMany(ctx, map[string]string{
		"story.variant": "legend",
		"story.strict":  "false",
		"other.key":     "x",
	}))

	settings, err := repo.GetByPrefix(ctx, "story.")
	require.NoError(t, err)
	require.Len(t, settings, 2)
	require.Equal(t, "story.strict", settings[0].Key)
	require.Equal(t, "story.variant", settings[1].Key)
}

func TestSettingsRepository_SetManyEmpty(t *testing.T) {
	repo := newSettingsRepo(t)
	require.NoError(t, repo.SetMany(context.Background(), nil))
}

func TestSettingsRepository_Delete(t *testing.T) {
	repo := newSettingsRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetMany(ctx, map[string]string{"story.strict": "true"}))
	require.NoError(t, repo.Delete(ctx, "story.strict"))

	s, err := repo.Get(ctx, "story.strict")
	require.NoError(t, err)
	require.Nil(t, s)
}
