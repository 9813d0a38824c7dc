package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunebox/model"
)

func TestComputeGenresCountsAndSorts(t *testing.T) {
	songs := []model.Song{
		{ID: "1", Genre: "Rock"},
		{ID: "2", Genre: "Rock"},
		{ID: "3", Genre: "Pop"},
	}

	genres := ComputeGenres(songs)
	require.Len(t, genres, 2)
	assert.Equal(t, model.Genre{Name: "Rock", Count: 2, Color: "#e74c3c"}, genres[0])
	assert.Equal(t, model.Genre{Name: "Pop", Count: 1, Color: "#9b59b6"}, genres[1])
}

func TestComputeGenresEmptyGenreIsUnknown(t *testing.T) {
	genres := ComputeGenres([]model.Song{{ID: "1"}, {ID: "2", Genre: "Unknown"}})
	require.Len(t, genres, 1)
	assert.Equal(t, "Unknown", genres[0].Name)
	assert.Equal(t, 2, genres[0].Count)
	assert.Equal(t, "#7f8c8d", genres[0].Color)
}

func TestComputeGenresStableTiebreak(t *testing.T) {
	songs := []model.Song{
		{ID: "1", Genre: "Jazz"},
		{ID: "2", Genre: "Electronic"},
		{ID: "3", Genre: "Jazz"},
		{ID: "4", Genre: "Electronic"},
		{ID: "5", Genre: "Country"},
	}

	genres := ComputeGenres(songs)
	require.Len(t, genres, 3)
	// Equal counts keep first-seen order.
	assert.Equal(t, "Jazz", genres[0].Name)
	assert.Equal(t, "Electronic", genres[1].Name)
	assert.Equal(t, "Country", genres[2].Name)
}

func TestComputeGenresUnrecognizedNameGetsNeutralColor(t *testing.T) {
	genres := ComputeGenres([]model.Song{{ID: "1", Genre: "Vaporwave"}})
	require.Len(t, genres, 1)
	assert.Equal(t, "#7f8c8d", genres[0].Color)
}

func TestFilterFavorites(t *testing.T) {
	songs := []model.Song{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}

	// Stale ids are dropped silently; library order is preserved.
	got := FilterFavorites(songs, []string{"c", "gone", "a"})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterFavoritesEmpty(t *testing.T) {
	assert.Empty(t, FilterFavorites(nil, []string{"a"}))
	assert.Empty(t, FilterFavorites([]model.Song{{ID: "a"}}, nil))
}
