// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the service needs to start. Crash early if
// required values are missing.
type Config struct {
	Port         string
	ClientID     string
	ClientSecret string
	RedirectURL  string

	SpotifyAPIBaseURL string
	PlaylistBaseURL   string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	HistoryDBPath string
}

// Load reads configuration from environment variables and applies the
// defaults for everything optional.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		ClientID:          os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret:      os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURL:       getEnv("SPOTIFY_REDIRECT_URL", "http://127.0.0.1:8080/callback"),
		SpotifyAPIBaseURL: getEnv("SPOTIFY_API_BASE_URL", "https://api.spotify.com/v1"),
		PlaylistBaseURL:   getEnv("PLAYLIST_BASE_URL", "https://open.spotify.com/playlist"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		HistoryDBPath:     getEnv("HISTORY_DB_PATH", "medley.db"),
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	return cfg, nil
}

// Addr is the listen address derived from the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
