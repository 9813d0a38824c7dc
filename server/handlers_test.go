package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunebox/core/library"
	"tunebox/core/player"
	"tunebox/media"
	"tunebox/model"
	"tunebox/repository"
	"tunebox/store"
)

type fakeIndex struct {
	assets []library.MediaAsset
}

func (f fakeIndex) ListAudioAssets(context.Context, int) ([]library.MediaAsset, error) {
	return f.assets, nil
}

type testEnv struct {
	router    *mux.Router
	kv        *store.MemoryStore
	songStore repository.SongStore
	lib       *library.Library
}

func newTestEnv(t *testing.T, granted bool, assets []library.MediaAsset) *testEnv {
	t.Helper()

	kv := store.NewMemoryStore()
	songStore := repository.NewSongStore(kv)
	favorites := repository.NewFavoritesStore(kv, false)

	perm := media.StaticAuthority{Granted: granted}
	scanner := library.NewScanner(perm, fakeIndex{assets: assets}, 0)
	lib := library.NewLibrary(songStore, scanner, library.DisabledFallback{})
	session := player.NewPlayer(player.NoopEngine{})

	hub := NewHub()
	go hub.Run()

	handler := NewAPIHandler(lib, scanner, songStore, favorites, session, perm, hub)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	return &testEnv{router: router, kv: kv, songStore: songStore, lib: lib}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func deviceAsset(id string) library.MediaAsset {
	return library.MediaAsset{
		ID:           id,
		Filename:     id + ".mp3",
		Duration:     60,
		URI:          "/music/" + id + ".mp3",
		CreationTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandleSongsServesSnapshotBeforeFirstLoad(t *testing.T) {
	env := newTestEnv(t, true, nil)
	env.songStore.PersistLibrarySnapshot(context.Background(), []model.Song{{ID: "song-1", Title: "Old"}})

	var resp struct {
		Songs     []model.Song `json:"songs"`
		IsLoading bool         `json:"isLoading"`
	}
	rec := env.do(t, http.MethodGet, "/api/songs", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Songs, 1)
	assert.Equal(t, "song-1", resp.Songs[0].ID)
	assert.False(t, resp.IsLoading)
}

func TestHandleRefreshAggregatesLibrary(t *testing.T) {
	env := newTestEnv(t, true, []library.MediaAsset{deviceAsset("asset-1")})
	require.NoError(t, env.songStore.AppendUploadedSongs(context.Background(),
		[]model.Song{{ID: "uploaded-1-a", Title: "Mine", Genre: "Rock"}}))

	var resp struct {
		Songs []model.Song `json:"songs"`
	}
	rec := env.do(t, http.MethodPost, "/api/library/refresh", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Songs, 2)
	assert.Equal(t, "uploaded-1-a", resp.Songs[0].ID)
	assert.Equal(t, "asset-1", resp.Songs[1].ID)
}

func TestHandleGenres(t *testing.T) {
	env := newTestEnv(t, true, nil)
	require.NoError(t, env.songStore.AppendUploadedSongs(context.Background(), []model.Song{
		{ID: "a", Genre: "Rock"},
		{ID: "b", Genre: "Rock"},
		{ID: "c", Genre: "Pop"},
	}))
	env.do(t, http.MethodPost, "/api/library/refresh", nil, nil)

	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	rec := env.do(t, http.MethodGet, "/api/genres", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Genres, 2)
	assert.Equal(t, "Rock", resp.Genres[0].Name)
	assert.Equal(t, 2, resp.Genres[0].Count)
}

func TestFavoritesEndpoints(t *testing.T) {
	env := newTestEnv(t, true, []library.MediaAsset{deviceAsset("asset-1")})
	env.do(t, http.MethodPost, "/api/library/refresh", nil, nil)

	var toggleResp struct {
		IsFavorite bool `json:"isFavorite"`
	}
	rec := env.do(t, http.MethodPost, "/api/favorites/asset-1/toggle", nil, &toggleResp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, toggleResp.IsFavorite)

	var listResp struct {
		IDs   []string     `json:"ids"`
		Songs []model.Song `json:"songs"`
	}
	env.do(t, http.MethodGet, "/api/favorites", nil, &listResp)
	assert.Equal(t, []string{"asset-1"}, listResp.IDs)
	require.Len(t, listResp.Songs, 1)

	// Stale ids stay in the list but drop out of the songs view.
	env.do(t, http.MethodPut, "/api/favorites/gone", nil, nil)
	listResp.IDs = nil
	listResp.Songs = nil
	env.do(t, http.MethodGet, "/api/favorites", nil, &listResp)
	assert.Contains(t, listResp.IDs, "gone")
	assert.Len(t, listResp.Songs, 1)

	rec = env.do(t, http.MethodPost, "/api/favorites/asset-1/toggle", nil, &toggleResp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, toggleResp.IsFavorite)
}

func TestHandleUploadCreatesSongs(t *testing.T) {
	env := newTestEnv(t, true, nil)

	payload := map[string]interface{}{
		"files": []map[string]string{
			{"name": "Queen - Under Pressure.mp3", "uri": "file:///inbox/up.mp3"},
		},
	}

	var resp struct {
		Songs []model.Song `json:"songs"`
	}
	rec := env.do(t, http.MethodPost, "/api/uploads", payload, &resp)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, resp.Songs, 1)
	assert.Equal(t, "Under Pressure", resp.Songs[0].Title)
	assert.Equal(t, "Queen", resp.Songs[0].Artist)

	stored := env.songStore.UploadedSongs(context.Background())
	require.Len(t, stored, 1)
}

func TestHandleUploadPermissionDenied(t *testing.T) {
	env := newTestEnv(t, false, nil)

	payload := map[string]interface{}{
		"files": []map[string]string{{"name": "a.mp3", "uri": "file:///a"}},
	}
	rec := env.do(t, http.MethodPost, "/api/uploads", payload, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleClearUploads(t *testing.T) {
	env := newTestEnv(t, true, nil)
	require.NoError(t, env.songStore.AppendUploadedSongs(context.Background(),
		[]model.Song{{ID: "uploaded-1-a"}}))

	rec := env.do(t, http.MethodDelete, "/api/uploads", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.songStore.UploadedSongs(context.Background()))
}

func TestHandleScanPermissionDenied(t *testing.T) {
	env := newTestEnv(t, false, nil)
	rec := env.do(t, http.MethodPost, "/api/scan", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPlayerEndpoints(t *testing.T) {
	env := newTestEnv(t, true, []library.MediaAsset{deviceAsset("asset-1")})
	env.do(t, http.MethodPost, "/api/library/refresh", nil, nil)

	rec := env.do(t, http.MethodPost, "/api/player/play", map[string]string{"songId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var state model.PlayerState
	rec = env.do(t, http.MethodPost, "/api/player/play", map[string]string{"songId": "asset-1"}, &state)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, state.CurrentSong)
	assert.Equal(t, "asset-1", state.CurrentSong.ID)
	assert.True(t, state.IsPlaying)

	rec = env.do(t, http.MethodPost, "/api/player/pause", nil, &state)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, state.IsPlaying)

	rec = env.do(t, http.MethodPost, "/api/player/resume", nil, &state)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.IsPlaying)

	rec = env.do(t, http.MethodPost, "/api/player/stop", nil, &state)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, state.IsPlaying)
}
