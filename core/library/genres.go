package library

import (
	"sort"

	"tunebox/core/meta"
	"tunebox/model"
)

// ComputeGenres groups the song collection by genre, counts each bucket,
// attaches the display color and sorts descending by count. Ties keep
// first-seen library order.
func ComputeGenres(songs []model.Song) []model.Genre {
	counts := make(map[string]int)
	var order []string

	for _, song := range songs {
		name := song.Genre
		if name == "" {
			name = "Unknown"
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	genres := make([]model.Genre, 0, len(order))
	for _, name := range order {
		genres = append(genres, model.Genre{
			Name:  name,
			Count: counts[name],
			Color: meta.GenreColor(name),
		})
	}

	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].Count > genres[j].Count
	})
	return genres
}

// FilterFavorites returns the songs whose id is in the favorites list,
// preserving library order. Stale favorite ids simply drop out.
func FilterFavorites(songs []model.Song, favoriteIDs []string) []model.Song {
	set := make(map[string]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		set[id] = struct{}{}
	}

	out := make([]model.Song, 0)
	for _, song := range songs {
		if _, ok := set[song.ID]; ok {
			out = append(out, song)
		}
	}
	return out
}
