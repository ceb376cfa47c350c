package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the persisted defaults for the tool. Command line flags
// override these at run time; empty fields mean "not configured".
type Settings struct {
	// Token is a personal access token stored directly in the file.
	Token string `toml:"token,omitempty"`

	// TokenFile points at a file whose content is the token, for
	// setups that keep secrets out of the config file.
	TokenFile string `toml:"token_file,omitempty"`

	// Destination is the default backup directory root.
	Destination string `toml:"destination,omitempty"`

	// LogLevel is the default log verbosity.
	LogLevel string `toml:"log_level,omitempty"`
}

// ConfigStore persists Settings as a TOML file in the ghattic config
// directory. The file may hold a token, so the directory is created
// 0700 and the file written 0600.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.ghattic/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".ghattic")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *ConfigStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Store replaces the settings and persists them immediately.
func (s *ConfigStore) Store(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// save writes the settings to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// Restricted permissions: the file may contain a token.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", s.filePath, err)
	}
	return nil
}

// Load reads the settings from the TOML file. A missing file is not
// an error, the settings just stay empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = Settings{}
			return nil
		}
		return fmt.Errorf("read config %s: %w", s.filePath, err)
	}

	var loaded Settings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse config %s: %w", s.filePath, err)
	}

	s.settings = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
