package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "uploadedMusicLibrary")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "uploadedMusicLibrary", []byte(`[{"id":"a"}]`)))

	val, ok, err := s.Get(ctx, "uploadedMusicLibrary")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(val))

	require.NoError(t, s.Set(ctx, "uploadedMusicLibrary", []byte(`[]`)))
	val, _, _ = s.Get(ctx, "uploadedMusicLibrary")
	assert.Equal(t, `[]`, string(val))
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "musicFavorites", []byte(`["a"]`)))
	require.NoError(t, s.Remove(ctx, "musicFavorites"))

	_, ok, err := s.Get(ctx, "musicFavorites")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key stays a no-op.
	require.NoError(t, s.Remove(ctx, "musicFavorites"))
}

func TestFileStoreKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "musicLibrary", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "uploadedMusicLibrary", []byte(`[2]`)))

	val, ok, err := s.Get(ctx, "musicLibrary")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(val))
}
