package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"tunebox/core/library"
	"tunebox/core/player"
	"tunebox/logger"
	"tunebox/media"
	"tunebox/model"
	"tunebox/repository"
)

// APIHandler exposes the library core to the UI layer over HTTP.
type APIHandler struct {
	lib       *library.Library
	scanner   *library.Scanner
	songStore repository.SongStore
	favorites repository.FavoritesStore
	session   *player.Player
	perm      library.PermissionAuthority
	hub       *Hub

	// One upload batch at a time; the UI disables its trigger while an
	// upload runs, the server enforces the same rule for stray callers.
	uploadMu  sync.Mutex
	uploading bool
}

// NewAPIHandler wires the handler to the core components.
func NewAPIHandler(
	lib *library.Library,
	scanner *library.Scanner,
	songStore repository.SongStore,
	favorites repository.FavoritesStore,
	session *player.Player,
	perm library.PermissionAuthority,
	hub *Hub,
) *APIHandler {
	return &APIHandler{
		lib:       lib,
		scanner:   scanner,
		songStore: songStore,
		favorites: favorites,
		session:   session,
		perm:      perm,
		hub:       hub,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// HandleSongs returns the current song collection with the loading flag.
// Before the first load it serves the persisted snapshot so the UI has
// something to render.
func (h *APIHandler) HandleSongs(w http.ResponseWriter, r *http.Request) {
	songs := h.lib.Songs()
	if songs == nil {
		songs = h.songStore.LibrarySnapshot(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songs":     songs,
		"isLoading": h.lib.IsLoading(),
	})
}

// HandleRefresh rebuilds the library from the store and a device scan.
func (h *APIHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	songs := h.lib.Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// HandleGenres returns the genre rollup of the current collection.
func (h *APIHandler) HandleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"genres": library.ComputeGenres(h.lib.Songs()),
	})
}

// HandleFavorites returns the favorite id list and the matching songs.
// Stale ids drop out of the songs view but stay in the id list.
func (h *APIHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.Favorites(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ids":   ids,
		"songs": library.FilterFavorites(h.lib.Songs(), ids),
	})
}

// HandleToggleFavorite flips favorite membership for a song id.
func (h *APIHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["id"]
	h.favorites.ToggleFavorite(r.Context(), songID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         songID,
		"isFavorite": h.favorites.IsFavorite(r.Context(), songID),
	})
}

// HandleAddFavorite adds a song id to the favorites list.
func (h *APIHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["id"]
	h.favorites.AddToFavorites(r.Context(), songID)
	writeJSON(w, http.StatusOK, map[string]string{"id": songID})
}

// HandleRemoveFavorite removes a song id from the favorites list.
func (h *APIHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["id"]
	h.favorites.RemoveFromFavorites(r.Context(), songID)
	writeJSON(w, http.StatusOK, map[string]string{"id": songID})
}

type uploadRequest struct {
	Files []struct {
		Name string `json:"name"`
		URI  string `json:"uri"`
	} `json:"files"`
}

// HandleUpload imports a batch of files the UI already picked. The picker
// collaborator is request-scoped; progress goes out over the event hub.
func (h *APIHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	h.uploadMu.Lock()
	if h.uploading {
		h.uploadMu.Unlock()
		writeError(w, http.StatusConflict, "an upload is already in progress")
		return
	}
	h.uploading = true
	h.uploadMu.Unlock()
	defer func() {
		h.uploadMu.Lock()
		h.uploading = false
		h.uploadMu.Unlock()
	}()

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload payload")
		return
	}

	picked := make([]library.PickedFile, 0, len(req.Files))
	for _, f := range req.Files {
		picked = append(picked, library.PickedFile{Name: f.Name, URI: f.URI})
	}

	uploader := library.NewUploader(h.perm, media.StaticPicker{Files: picked}, h.songStore)
	uploader.OnProgress = func(pct float64) {
		h.hub.Broadcast("uploadProgress", map[string]float64{"progress": pct})
	}

	songs, err := uploader.UploadFiles(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrPermissionDenied) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		logger.Error("upload batch failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"songs": songs})
}

// HandleClearUploads deletes the uploaded-songs blob.
func (h *APIHandler) HandleClearUploads(w http.ResponseWriter, r *http.Request) {
	h.songStore.ClearUploadedSongs(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// HandleScan runs the device scan pipeline on demand.
func (h *APIHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	songs, err := h.scanner.ScanDeviceMusic(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrPermissionDenied) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// HandlePlayerState returns the current playback session snapshot.
func (h *APIHandler) HandlePlayerState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}

type playRequest struct {
	SongID string `json:"songId"`
}

// HandlePlay starts playback of a song from the current collection.
func (h *APIHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId required")
		return
	}

	song, ok := h.lib.FindSong(req.SongID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown song id")
		return
	}

	h.session.Play(r.Context(), song)
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandlePause pauses the playback session.
func (h *APIHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.session.Pause()
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandleResume resumes the playback session.
func (h *APIHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.session.Resume()
	writeJSON(w, http.StatusOK, h.session.State())
}

// HandleStop stops the playback session.
func (h *APIHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	h.session.Stop()
	writeJSON(w, http.StatusOK, h.session.State())
}

// RegisterRoutes attaches all API endpoints to the router.
func (h *APIHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/songs", h.HandleSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/library/refresh", h.HandleRefresh).Methods(http.MethodPost)
	router.HandleFunc("/api/genres", h.HandleGenres).Methods(http.MethodGet)

	router.HandleFunc("/api/favorites", h.HandleFavorites).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/{id}/toggle", h.HandleToggleFavorite).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{id}", h.HandleAddFavorite).Methods(http.MethodPut)
	router.HandleFunc("/api/favorites/{id}", h.HandleRemoveFavorite).Methods(http.MethodDelete)

	router.HandleFunc("/api/uploads", h.HandleUpload).Methods(http.MethodPost)
	router.HandleFunc("/api/uploads", h.HandleClearUploads).Methods(http.MethodDelete)
	router.HandleFunc("/api/scan", h.HandleScan).Methods(http.MethodPost)

	router.HandleFunc("/api/player", h.HandlePlayerState).Methods(http.MethodGet)
	router.HandleFunc("/api/player/play", h.HandlePlay).Methods(http.MethodPost)
	router.HandleFunc("/api/player/pause", h.HandlePause).Methods(http.MethodPost)
	router.HandleFunc("/api/player/resume", h.HandleResume).Methods(http.MethodPost)
	router.HandleFunc("/api/player/stop", h.HandleStop).Methods(http.MethodPost)

	router.HandleFunc("/ws", h.hub.ServeWS)
}
