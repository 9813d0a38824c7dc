package server

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"tunebox/config"
	"tunebox/core/library"
	"tunebox/core/player"
	"tunebox/logger"
	"tunebox/media"
	"tunebox/model"
	"tunebox/repository"
	"tunebox/store"
)

// Start wires the application together and runs the HTTP server until a
// shutdown signal arrives.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	kv, err := newStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize blob store", logger.ErrorField(err))
	}

	songStore := repository.NewSongStore(kv)
	favorites := repository.NewFavoritesStore(kv, cfg.FavoritesDedup)

	index := media.NewFSIndex(cfg.MusicDir)
	if err := index.Start(); err != nil {
		logger.Warn("music directory watcher unavailable", logger.ErrorField(err))
	}
	defer index.Close()

	perm := media.StaticAuthority{Granted: true}
	scanner := library.NewScanner(perm, index, cfg.MediaScanLimit)

	var fallback library.EmptyLibraryStrategy = library.DisabledFallback{}
	if cfg.SampleLibrary {
		fallback = library.NewSampleLibrary(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	lib := library.NewLibrary(songStore, scanner, fallback)

	var engine player.Engine = player.NoopEngine{}
	if cfg.MPVSocket != "" {
		engine = player.NewMPVEngine(cfg.MPVSocket)
	}
	session := player.NewPlayer(engine)
	defer session.Close()

	hub := NewHub()
	go hub.Run()

	lib.Subscribe(func(songs []model.Song) {
		hub.Broadcast("library", map[string]int{"count": len(songs)})
	})
	session.Subscribe(func(state model.PlayerState) {
		hub.Broadcast("playerState", state)
	})

	handler := NewAPIHandler(lib, scanner, songStore, favorites, session, perm, hub)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "tunebox"})
	}).Methods(http.MethodGet)
	handler.RegisterRoutes(router)

	// First load happens in the background so startup is not gated on a
	// device scan.
	go lib.Load(context.Background())

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", logger.ErrorField(err))
	}
}

// newStore selects the blob store backend from config.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(cfg)
	default:
		return store.NewFileStore(cfg.DataDir)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
