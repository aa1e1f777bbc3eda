package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds the user settings mcmap reads at startup.
type Config struct {
	LogLevel            logrus.Level
	FlagsPath           string
	RecentLocationLimit int
	DefaultGameVersion  string
}

const (
	defaultConfigPath          = "~/.config/mcmap/config.toml"
	defaultFlagsPath           = "~/.config/mcmap/flags.toml"
	defaultLogLevel            = logrus.InfoLevel
	defaultRecentLocationLimit = 15
	defaultGameVersion         = "1.21.3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:            defaultLogLevel,
		FlagsPath:           mustExpand(defaultFlagsPath),
		RecentLocationLimit: defaultRecentLocationLimit,
		DefaultGameVersion:  defaultGameVersion,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogLevel            string `toml:"log_level"`
		FlagsPath           string `toml:"flags_path"`
		RecentLocationLimit *int   `toml:"recent_location_limit"`
		DefaultGameVersion  string `toml:"default_game_version"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel, err = logrus.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if flagsPath := strings.TrimSpace(raw.FlagsPath); flagsPath != "" {
		cfg.FlagsPath = mustExpand(flagsPath)
	}

	if raw.RecentLocationLimit != nil {
		if *raw.RecentLocationLimit < 0 {
			return Config{}, fmt.Errorf("parse config: recent_location_limit must not be negative")
		}
		cfg.RecentLocationLimit = *raw.RecentLocationLimit
	}

	if version := strings.TrimSpace(raw.DefaultGameVersion); version != "" {
		cfg.DefaultGameVersion = version
	}

	return cfg, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	if expanded, err := ExpandPath(path); err == nil {
		return expanded
	}
	return path
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// absolute form of path.
func ExpandPath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", errors.New("path is empty")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
