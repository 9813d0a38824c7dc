package library

import (
	"context"
	"sync"

	"tunebox/logger"
	"tunebox/model"
	"tunebox/repository"
)

// Library aggregates uploaded and device songs into the canonical song
// collection. The in-memory collection is a transient cache; the persisted
// snapshot is rebuilt wholesale on every Load.
type Library struct {
	store    repository.SongStore
	scanner  DeviceScanner
	fallback EmptyLibraryStrategy

	mu      sync.RWMutex
	songs   []model.Song
	loading bool
	subs    []func([]model.Song)
}

// NewLibrary creates the aggregator. fallback may be DisabledFallback{} to
// keep empty libraries empty.
func NewLibrary(store repository.SongStore, scanner DeviceScanner, fallback EmptyLibraryStrategy) *Library {
	return &Library{store: store, scanner: scanner, fallback: fallback}
}

// Load rebuilds the song collection: uploaded songs first, then device
// songs, then the empty-library fallback if both came back empty. The
// result is persisted as the canonical snapshot and returned. Load never
// fails; a broken device scan just means zero device songs.
func (l *Library) Load(ctx context.Context) []model.Song {
	l.setLoading(true)
	defer l.setLoading(false)

	uploaded := l.store.UploadedSongs(ctx)

	device, err := l.scanner.ScanDeviceMusic(ctx)
	if err != nil {
		logger.Info("device scan not available, using uploaded songs only",
			logger.ErrorField(err))
		device = nil
	}

	songs := make([]model.Song, 0, len(uploaded)+len(device))
	songs = append(songs, uploaded...)
	songs = append(songs, device...)

	if len(songs) == 0 && l.fallback != nil {
		songs = l.fallback.Songs()
		if len(songs) > 0 {
			logger.Info("library empty, using sample songs", logger.Int("count", len(songs)))
		}
	}

	l.store.PersistLibrarySnapshot(ctx, songs)

	l.mu.Lock()
	l.songs = songs
	subs := make([]func([]model.Song), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(songs)
	}

	logger.Info("library loaded",
		logger.Int("uploaded", len(uploaded)),
		logger.Int("device", len(device)),
		logger.Int("total", len(songs)))
	return songs
}

// Songs returns the current in-memory collection.
func (l *Library) Songs() []model.Song {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.songs
}

// IsLoading reports whether a Load is in flight.
func (l *Library) IsLoading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Subscribe registers a callback invoked with the new collection after
// every Load.
func (l *Library) Subscribe(fn func([]model.Song)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// FindSong looks a song up by id in the current collection.
func (l *Library) FindSong(id string) (model.Song, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range l.songs {
		if s.ID == id {
			return s, true
		}
	}
	return model.Song{}, false
}

func (l *Library) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}
