package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/tile"
)

func newTestStore(t *testing.T) (Persistence, string) {
	t.Helper()
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	require.NoError(t, err)
	return p, base
}

func TestSaveLoadIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	p, base := newTestStore(t)

	prof := profile.New("Work")
	prof.Tiles = append(prof.Tiles, tile.New("Email", tile.Action{Type: tile.ActionURL, Value: "mail.example.com"}))
	require.NoError(t, p.Save(ctx, prof))

	_, err := os.Stat(filepath.Join(base, "work.json"))
	require.NoError(t, err, "documents are stored under the lowercased name")

	got, err := p.Load(ctx, "WORK")
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	require.Len(t, got.Tiles, 1)
	assert.Equal(t, "Email", got.Tiles[0].Name)

	names, err := p.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, names)
}

func TestLoadFallsBackToExactName(t *testing.T) {
	ctx := context.Background()
	p, base := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, "Legacy.json"), []byte(`{"name":"Legacy","tiles":[]}`), 0o644))

	got, err := p.Load(ctx, "Legacy")
	require.NoError(t, err)
	assert.Equal(t, "Legacy", got.Name)
}

func TestLoadMissing(t *testing.T) {
	p, _ := newTestStore(t)
	_, err := p.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, p.Delete(context.Background(), "nope"), ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	p, base := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, "broken.json"), []byte(`{"name":"broken"}`), 0o644))

	_, err := p.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, profile.ErrMissingTiles)
}

func TestProfilesSkipsForeignFiles(t *testing.T) {
	ctx := context.Background()
	p, base := newTestStore(t)
	require.NoError(t, p.Save(ctx, profile.New("default")))
	require.NoError(t, p.Save(ctx, profile.New("Gaming")))
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sounds"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sounds", "ding.json"), []byte("{}"), 0o644))

	names, err := p.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "gaming"}, names)

	require.NoError(t, p.Delete(ctx, "GAMING"))
	names, err = p.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)
}

func TestSaveRejectsInvalid(t *testing.T) {
	p, _ := newTestStore(t)
	assert.ErrorIs(t, p.Save(context.Background(), &profile.Profile{Name: "x"}), profile.ErrMissingTiles)
	assert.ErrorIs(t, p.Save(context.Background(), profile.New("../escape")), profile.ErrInvalidName)
}
