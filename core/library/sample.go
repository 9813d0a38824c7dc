package library

import (
	"fmt"
	"math/rand"
	"sync"

	"tunebox/model"
)

// EmptyLibraryStrategy decides what an empty library shows. The sample
// generator keeps demo installs non-empty; production runs disable it.
type EmptyLibraryStrategy interface {
	Songs() []model.Song
}

// DisabledFallback leaves an empty library empty.
type DisabledFallback struct{}

func (DisabledFallback) Songs() []model.Song { return nil }

var (
	sampleGenres  = []string{"Rock", "Pop", "Hip-Hop", "Jazz", "Classical", "Electronic", "Country", "Blues"}
	sampleArtists = []string{"The Beatles", "Pink Floyd", "Led Zeppelin", "Queen", "Drake", "Taylor Swift", "Kendrick Lamar", "Adele"}
	sampleAlbums  = []string{"Abbey Road", "Dark Side of the Moon", "Led Zeppelin IV", "A Night at the Opera", "Views", "1989", "DAMN.", "25"}
)

// sampleCount is fixed: the fallback always produces songs song-1..song-50.
const sampleCount = 50

// SampleLibrary generates a randomized demo library of fixed shape. The
// randomness source is injected so tests can seed it.
type SampleLibrary struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampleLibrary creates a generator over the given randomness source.
func NewSampleLibrary(rng *rand.Rand) *SampleLibrary {
	return &SampleLibrary{rng: rng}
}

// Songs produces 50 sample songs with randomized genre, artist, album,
// duration (2-5 minutes), year and track number.
func (s *SampleLibrary) Songs() []model.Song {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs := make([]model.Song, 0, sampleCount)
	for i := 1; i <= sampleCount; i++ {
		songs = append(songs, model.Song{
			ID:          fmt.Sprintf("song-%d", i),
			Title:       fmt.Sprintf("Sample Song %d", i),
			Artist:      sampleArtists[s.rng.Intn(len(sampleArtists))],
			Album:       sampleAlbums[s.rng.Intn(len(sampleAlbums))],
			Genre:       sampleGenres[s.rng.Intn(len(sampleGenres))],
			Duration:    int64(s.rng.Intn(300000)) + 120000,
			URI:         fmt.Sprintf("file://path/to/song%d.mp3", i),
			Year:        s.rng.Intn(30) + 1994,
			TrackNumber: s.rng.Intn(15) + 1,
		})
	}
	return songs
}
