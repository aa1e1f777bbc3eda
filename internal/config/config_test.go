package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Fatalf("LogLevel = %v, want %v", cfg.LogLevel, logrus.InfoLevel)
	}
	wantFlags := filepath.Join(home, ".config", "mcmap", "flags.toml")
	if cfg.FlagsPath != wantFlags {
		t.Fatalf("FlagsPath = %q, want %q", cfg.FlagsPath, wantFlags)
	}
	if cfg.RecentLocationLimit != 15 {
		t.Fatalf("RecentLocationLimit = %d, want 15", cfg.RecentLocationLimit)
	}
	if cfg.DefaultGameVersion != "1.21.3" {
		t.Fatalf("DefaultGameVersion = %q, want %q", cfg.DefaultGameVersion, "1.21.3")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_level = "  debug "
flags_path = "  ~/.mcmap/flags.toml  "
recent_location_limit = 4
default_game_version = " 1.20.6 "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Fatalf("LogLevel = %v, want %v", cfg.LogLevel, logrus.DebugLevel)
	}
	if !strings.HasPrefix(cfg.FlagsPath, home) {
		t.Fatalf("FlagsPath = %q, want it under HOME %q", cfg.FlagsPath, home)
	}
	if cfg.RecentLocationLimit != 4 {
		t.Fatalf("RecentLocationLimit = %d, want 4", cfg.RecentLocationLimit)
	}
	if cfg.DefaultGameVersion != "1.20.6" {
		t.Fatalf("DefaultGameVersion = %q, want %q", cfg.DefaultGameVersion, "1.20.6")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_level = "   "
flags_path = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"syntax":         `log_level = [`,
		"level":          `log_level = "loud"`,
		"negative limit": `recent_location_limit = -1`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

func TestNewLogger_UsesConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: logrus.WarnLevel}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("output %q contains info message at warn level", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("output %q missing warn message", out)
	}
}

func TestExpandPath_OnlyBareTildeIsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != home {
		t.Fatalf("ExpandPath(~) = %q, want %q", got, home)
	}

	got, err = ExpandPath("~other/x")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if strings.HasPrefix(got, home) {
		t.Fatalf("ExpandPath(~other/x) = %q, want it outside HOME", got)
	}
}
