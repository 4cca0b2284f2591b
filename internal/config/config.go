// internal/config/config.go
//
// Process configuration read from the environment.
//
// Sources, in order:
//  1. a .env file in the working directory, if present (never overrides the
//     real environment);
//  2. environment variables parsed into Config;
//  3. command-line flags, applied by cmd/wordle after Load returns.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the game, the stats store and the server.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Terminal game.
	StatsFile        string `env:"STATS_FILE"`
	WordsAnswersFile string `env:"WORDS_ANSWERS_FILE"`
	WordsAllowedFile string `env:"WORDS_ALLOWED_FILE"`

	// HTTP server.
	Port           string `env:"PORT" envDefault:"5175"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"data/wordle.db"`
	DailySalt      string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"wordle_token"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// Players and games untouched for this long are dropped from memory.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.JWTExpiresDays <= 0 {
		return Config{}, fmt.Errorf("parse env: JWT_EXPIRES_DAYS must be positive, got %d", c.JWTExpiresDays)
	}
	if c.SessionIdleTTL <= 0 {
		return Config{}, fmt.Errorf("parse env: SESSION_IDLE_TTL must be positive, got %s", c.SessionIdleTTL)
	}
	return c, nil
}

// TokenTTL is the lifetime of issued auth tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

// StatsPath is where the terminal game keeps its statistics: STATS_FILE when
// set, otherwise wordle/stats.txt under the user config directory.
func (c Config) StatsPath() (string, error) {
	if c.StatsFile != "" {
		return c.StatsFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("stats path: %w", err)
	}
	return filepath.Join(dir, "wordle", "stats.txt"), nil
}
