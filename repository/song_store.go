package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tunebox/logger"
	"tunebox/model"
	"tunebox/store"
)

// Storage keys. These and the JSON array layout of their values are the
// persisted-state contract and must round-trip exactly.
const (
	uploadedSongsKey   = "uploadedMusicLibrary"
	librarySnapshotKey = "musicLibrary"
)

// SongStore persists the uploaded-song list and the canonical library
// snapshot. Reads are fail-soft: a missing or corrupt blob is logged and
// treated as empty. AppendUploadedSongs is the one write whose failure
// callers must see.
type SongStore interface {
	UploadedSongs(ctx context.Context) []model.Song
	AppendUploadedSongs(ctx context.Context, songs []model.Song) error
	ClearUploadedSongs(ctx context.Context)
	PersistLibrarySnapshot(ctx context.Context, songs []model.Song)
	LibrarySnapshot(ctx context.Context) []model.Song
}

type kvSongStore struct {
	kv store.Store
}

// NewSongStore creates a SongStore over the given key-value store.
func NewSongStore(kv store.Store) SongStore {
	return &kvSongStore{kv: kv}
}

// readSongs deserializes a song blob, degrading to an empty list on any
// failure.
func (s *kvSongStore) readSongs(ctx context.Context, key string) []model.Song {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to read song blob, treating as empty",
			logger.String("key", key), logger.ErrorField(err))
		return []model.Song{}
	}
	if !ok {
		return []model.Song{}
	}

	var songs []model.Song
	if err := json.Unmarshal(data, &songs); err != nil {
		logger.Warn("failed to decode song blob, treating as empty",
			logger.String("key", key), logger.ErrorField(err))
		return []model.Song{}
	}
	return songs
}

func (s *kvSongStore) writeSongs(ctx context.Context, key string, songs []model.Song) error {
	data, err := json.Marshal(songs)
	if err != nil {
		return fmt.Errorf("failed to encode song blob for key %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write song blob for key %s: %w", key, err)
	}
	return nil
}

// UploadedSongs returns the persisted uploaded-song list in insertion order.
func (s *kvSongStore) UploadedSongs(ctx context.Context) []model.Song {
	return s.readSongs(ctx, uploadedSongsKey)
}

// AppendUploadedSongs concatenates songs after the existing list, preserving
// order and without deduplicating by id.
func (s *kvSongStore) AppendUploadedSongs(ctx context.Context, songs []model.Song) error {
	existing := s.readSongs(ctx, uploadedSongsKey)
	all := append(existing, songs...)
	if err := s.writeSongs(ctx, uploadedSongsKey, all); err != nil {
		return err
	}
	logger.Info("uploaded songs persisted",
		logger.Int("added", len(songs)), logger.Int("total", len(all)))
	return nil
}

// ClearUploadedSongs deletes the uploaded-songs blob entirely.
func (s *kvSongStore) ClearUploadedSongs(ctx context.Context) {
	if err := s.kv.Remove(ctx, uploadedSongsKey); err != nil {
		logger.Warn("failed to clear uploaded songs", logger.ErrorField(err))
	}
}

// PersistLibrarySnapshot overwrites the canonical snapshot blob wholesale.
func (s *kvSongStore) PersistLibrarySnapshot(ctx context.Context, songs []model.Song) {
	if err := s.writeSongs(ctx, librarySnapshotKey, songs); err != nil {
		logger.Warn("failed to persist library snapshot", logger.ErrorField(err))
	}
}

// LibrarySnapshot returns the last persisted library, empty if none.
func (s *kvSongStore) LibrarySnapshot(ctx context.Context) []model.Song {
	return s.readSongs(ctx, librarySnapshotKey)
}
