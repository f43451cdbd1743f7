// Package config loads bot configuration from TOML files and the
// environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// tokenEnvVar overrides the config-file token when set.
const tokenEnvVar = "COVERBOT_TOKEN"

// ErrMissingToken is returned when no bot credential is configured.
// This is the one configuration error that is fatal at startup.
var ErrMissingToken = errors.New("bot token not configured (set bot_token or COVERBOT_TOKEN)")

type Config struct {
	BotToken string  `koanf:"bot_token"`
	AdminIDs []int64 `koanf:"admin_ids"`

	// DataDir roots the interaction log and state database. Empty
	// means the XDG data directory.
	DataDir string `koanf:"data_dir"`

	// TempDir holds downloaded audio files during tag extraction.
	// Empty means the OS temp directory.
	TempDir string `koanf:"temp_dir"`

	DefaultLanguage string `koanf:"default_language"`

	// RetentionDays bounds the interaction log age for /cleanup.
	RetentionDays int `koanf:"retention_days"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultLanguage: "ar",
		RetentionDays:   30,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv(tokenEnvVar); token != "" {
		cfg.BotToken = token
	}
	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}

	if cfg.DataDir != "" {
		cfg.DataDir = expandPath(cfg.DataDir)
	}
	if cfg.TempDir != "" {
		cfg.TempDir = expandPath(cfg.TempDir)
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/coverbot/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "coverbot", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// IsAdmin reports whether the user is on the admin allowlist.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.AdminIDs, userID)
}
