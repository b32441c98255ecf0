package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	Seed              bool
	LobbyTTL          time.Duration
	CountdownInterval time.Duration
}

// Load reads configuration from the environment, after sourcing a local
// .env file if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:              ":8080",
		LobbyTTL:          time.Hour,
		CountdownInterval: time.Second,
	}

	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if v := os.Getenv("SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv("LOBBY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOBBY_TTL %q: %w", v, err)
		}
		cfg.LobbyTTL = d
	}

	if v := os.Getenv("COUNTDOWN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COUNTDOWN_INTERVAL %q: %w", v, err)
		}
		cfg.CountdownInterval = d
	}

	return cfg, nil
}
