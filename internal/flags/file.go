package flags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/mcmap/internal/config"
)

const defaultFlagsPath = "~/.config/mcmap/flags.toml"

// DefaultPath returns the default flag file path.
func DefaultPath() string {
	return defaultFlagsPath
}

// FileStore persists flags as a flat TOML table of dotted keys.
// Every SetBool rewrites the whole file.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]bool
}

// OpenFile loads the store at path. A missing or unreadable file yields an
// empty store; only path resolution errors are returned.
func OpenFile(path string) (*FileStore, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve flags path: %w", err)
	}

	store := &FileStore{path: resolved, values: make(map[string]bool)}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return store, nil // missing file means defaults
	}

	values := make(map[string]bool)
	if err := toml.Unmarshal(data, &values); err != nil {
		return store, nil // corrupt file means defaults
	}
	store.values = values
	return store, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Bool(key string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create flags dir: %w", err)
	}
	data, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write flags: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultFlagsPath
	}
	return config.ExpandPath(path)
}
