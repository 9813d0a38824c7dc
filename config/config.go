package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Values come from the
// environment (optionally seeded from a .env file) with simple defaults.
type Config struct {
	ServerPort string

	// Store selection: "redis" talks to a Redis instance, "file" keeps
	// blobs as JSON files under DataDir.
	StoreBackend string
	DataDir      string

	// Redis settings, used when StoreBackend is "redis".
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MusicDir is the directory the device media index scans for audio.
	MusicDir       string
	MediaScanLimit int

	// SampleLibrary enables the demo fallback that fills an empty library
	// with generated songs. Disable for production-like runs.
	SampleLibrary bool

	// FavoritesDedup guards addToFavorites against duplicate ids. The
	// legacy behavior is to allow duplicates, so the default is false.
	FavoritesDedup bool

	// MPVSocket is the path of the mpv IPC socket used by the playback
	// engine. Empty disables real playback.
	MPVSocket string

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override variables already set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StoreBackend:   getEnv("STORE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "data"),
		RedisHost:      getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		MusicDir:       getEnv("MUSIC_DIR", "music"),
		MediaScanLimit: getEnvInt("MEDIA_SCAN_LIMIT", 1000),
		SampleLibrary:  getEnvBool("SAMPLE_LIBRARY", true),
		FavoritesDedup: getEnvBool("FAVORITES_DEDUP", false),
		MPVSocket:      getEnv("MPV_SOCKET", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPath:        getEnv("LOG_PATH", ""),
	}
}
