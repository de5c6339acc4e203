// Package config reads process configuration from the environment.
// main loads .env (godotenv) before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/hiddenwords/internal/game"
)

type Config struct {
	Port         string
	LogLevel     string
	LogFile      string
	ClientOrigin string
	JWTSecret    string
	WordsFile    string
	PuzzleLength int
	GameSeconds  int
	IdleTTL      time.Duration
	DailySalt    string
}

// Load returns the configuration with defaults filled in.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		PuzzleLength: game.DefaultBaseLength,
		GameSeconds:  game.DefaultDuration,
		IdleTTL:      30 * time.Minute,
	}
	cfg.ClientOrigin = getEnv("CLIENT_ORIGIN", defaultOrigin(cfg.Port))

	var err error
	if cfg.PuzzleLength, err = envInt("PUZZLE_LENGTH", cfg.PuzzleLength); err != nil {
		return Config{}, err
	}
	if cfg.GameSeconds, err = envInt("GAME_SECONDS", cfg.GameSeconds); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("GAME_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("GAME_IDLE_TTL: invalid duration %q", v)
		}
		cfg.IdleTTL = d
	}
	return cfg, nil
}

// WithPort returns cfg listening on port. The client origin follows the
// port unless CLIENT_ORIGIN is set.
func (cfg Config) WithPort(port string) Config {
	cfg.Port = port
	if os.Getenv("CLIENT_ORIGIN") == "" {
		cfg.ClientOrigin = defaultOrigin(port)
	}
	return cfg
}

func defaultOrigin(port string) string { return "http://localhost:" + port }

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", k, v)
	}
	return n, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
