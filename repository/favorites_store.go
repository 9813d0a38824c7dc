package repository

import (
	"context"
	"encoding/json"

	"tunebox/logger"
	"tunebox/store"
)

const favoritesKey = "musicFavorites"

// FavoritesStore persists the set of favorited song ids. Entries are
// referential only: an id may point at a song no longer in the library, and
// stale entries are filtered at read time rather than cleaned up eagerly.
type FavoritesStore interface {
	Favorites(ctx context.Context) []string
	AddToFavorites(ctx context.Context, songID string)
	RemoveFromFavorites(ctx context.Context, songID string)
	ToggleFavorite(ctx context.Context, songID string)
	IsFavorite(ctx context.Context, songID string) bool
}

type kvFavoritesStore struct {
	kv store.Store

	// dedupOnAdd guards against duplicate ids in the persisted list. The
	// legacy behavior allows duplicates; membership tests are unaffected
	// either way since they use contains, not count.
	dedupOnAdd bool
}

// NewFavoritesStore creates a FavoritesStore. dedupOnAdd selects the
// duplicate-add policy.
func NewFavoritesStore(kv store.Store, dedupOnAdd bool) FavoritesStore {
	return &kvFavoritesStore{kv: kv, dedupOnAdd: dedupOnAdd}
}

// Favorites returns the persisted id list, empty on any read failure.
func (s *kvFavoritesStore) Favorites(ctx context.Context) []string {
	data, ok, err := s.kv.Get(ctx, favoritesKey)
	if err != nil {
		logger.Warn("failed to read favorites, treating as empty", logger.ErrorField(err))
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn("failed to decode favorites, treating as empty", logger.ErrorField(err))
		return []string{}
	}
	return ids
}

func (s *kvFavoritesStore) write(ctx context.Context, ids []string) {
	data, err := json.Marshal(ids)
	if err != nil {
		logger.Warn("failed to encode favorites", logger.ErrorField(err))
		return
	}
	if err := s.kv.Set(ctx, favoritesKey, data); err != nil {
		logger.Warn("failed to write favorites", logger.ErrorField(err))
	}
}

func contains(ids []string, songID string) bool {
	for _, id := range ids {
		if id == songID {
			return true
		}
	}
	return false
}

// AddToFavorites appends songID to the persisted list.
func (s *kvFavoritesStore) AddToFavorites(ctx context.Context, songID string) {
	ids := s.Favorites(ctx)
	if s.dedupOnAdd && contains(ids, songID) {
		return
	}
	s.write(ctx, append(ids, songID))
}

// RemoveFromFavorites drops every occurrence of songID.
func (s *kvFavoritesStore) RemoveFromFavorites(ctx context.Context, songID string) {
	ids := s.Favorites(ctx)
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != songID {
			kept = append(kept, id)
		}
	}
	s.write(ctx, kept)
}

// ToggleFavorite flips membership for songID.
func (s *kvFavoritesStore) ToggleFavorite(ctx context.Context, songID string) {
	if s.IsFavorite(ctx, songID) {
		s.RemoveFromFavorites(ctx, songID)
	} else {
		s.AddToFavorites(ctx, songID)
	}
}

// IsFavorite reports whether songID is in the persisted list.
func (s *kvFavoritesStore) IsFavorite(ctx context.Context, songID string) bool {
	return contains(s.Favorites(ctx), songID)
}
