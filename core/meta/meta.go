// Package meta derives song metadata from filenames. No file bytes are ever
// inspected; everything here is string heuristics over the display name.
package meta

import (
	"path/filepath"
	"strings"
)

const unknownArtist = "Unknown Artist"

// InferTitleArtist splits a filename of the form "Artist - Title.ext" into
// its parts. Names without the " - " separator become the title with an
// unknown artist.
func InferTitleArtist(filename string) (title, artist string) {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	parts := strings.SplitN(name, " - ", 2)
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
	}
	return strings.TrimSpace(name), unknownArtist
}

// genreKeywords maps keyword groups to a genre tag. Order is significant:
// the first matching group wins, so "blues" is claimed by Jazz and never
// reaches a category of its own.
var genreKeywords = []struct {
	genre    string
	keywords []string
}{
	{"Rock", []string{"rock", "metal", "punk"}},
	{"Pop", []string{"pop", "dance"}},
	{"Hip-Hop", []string{"hip", "rap", "trap"}},
	{"Jazz", []string{"jazz", "blues"}},
	{"Classical", []string{"classical", "symphony"}},
	{"Electronic", []string{"electronic", "edm", "techno"}},
	{"Country", []string{"country", "folk"}},
	{"Reggae", []string{"reggae"}},
	{"Alternative", []string{"indie", "alternative"}},
}

// InferGenre tags a song by scanning the filename and artist for genre
// keywords. Unmatched songs get "Unknown".
func InferGenre(filename, artist string) string {
	text := strings.ToLower(filename + " " + artist)

	for _, group := range genreKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.genre
			}
		}
	}
	return "Unknown"
}
