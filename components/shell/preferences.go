package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ThemeStore persists the dark mode flag.
type ThemeStore interface {
	// LoadDarkMode returns the stored flag; ok is false when nothing was stored.
	LoadDarkMode(ctx context.Context) (dark bool, ok bool, err error)
	SaveDarkMode(ctx context.Context, dark bool) error
}

// InMemoryThemeStore is a concurrency-safe store for tests and single process hosts.
type InMemoryThemeStore struct {
	mu    sync.RWMutex
	dark  bool
	saved bool
}

// NewInMemoryThemeStore creates an empty store.
func NewInMemoryThemeStore() *InMemoryThemeStore {
	return &InMemoryThemeStore{}
}

// LoadDarkMode returns the stored flag.
func (s *InMemoryThemeStore) LoadDarkMode(context.Context) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark, s.saved, nil
}

// SaveDarkMode stores the flag.
func (s *InMemoryThemeStore) SaveDarkMode(_ context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	s.saved = true
	return nil
}

type themePreferences struct {
	DarkMode bool `yaml:"dark_mode"`
}

// FileThemeStore keeps the flag in a small YAML file.
type FileThemeStore struct {
	mu   sync.Mutex
	path string
}

// NewFileThemeStore stores preferences at path.
func NewFileThemeStore(path string) *FileThemeStore {
	return &FileThemeStore{path: path}
}

// LoadDarkMode reads the file. A missing file is not an error.
func (s *FileThemeStore) LoadDarkMode(context.Context) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("shell: read theme preferences: %w", err)
	}
	var prefs themePreferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return false, false, fmt.Errorf("shell: parse theme preferences: %w", err)
	}
	return prefs.DarkMode, true, nil
}

// SaveDarkMode writes the file, creating parent directories.
func (s *FileThemeStore) SaveDarkMode(_ context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := yaml.Marshal(themePreferences{DarkMode: dark})
	if err != nil {
		return fmt.Errorf("shell: encode theme preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("shell: create theme preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("shell: write theme preferences: %w", err)
	}
	return nil
}
