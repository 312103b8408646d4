// Package file provides the TOML-backed settings store for the corpora
// CLI.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the persistent defaults for ingestion runs.
type Settings struct {
	// Formats are the accepted document extensions, without dots.
	Formats []string `toml:"formats"`

	// ExcludePatterns are additional exclude globs applied during scans.
	ExcludePatterns []string `toml:"exclude_patterns"`

	// CollapseWhitespace collapses whitespace runs in document content.
	CollapseWhitespace bool `toml:"collapse_whitespace"`

	// RemoteTimeoutSeconds bounds a single remote fetch.
	RemoteTimeoutSeconds int `toml:"remote_timeout_seconds"`

	// RemoteFetchRate is the per-second remote fetch rate limit.
	RemoteFetchRate float64 `toml:"remote_fetch_rate"`
}

// SettingsStore is a file-based settings store using TOML.
// Settings are stored in a TOML file within the corpora config directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.corpora/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".corpora")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.settings
	out.Formats = append([]string(nil), s.settings.Formats...)
	out.ExcludePatterns = append([]string(nil), s.settings.ExcludePatterns...)
	return out
}

// Update applies fn to the settings and persists the result.
func (s *SettingsStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.settings)
	return s.save()
}

// Load reads the settings file from disk.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, &s.settings)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// save writes the settings to disk. Callers must hold the lock.
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}
