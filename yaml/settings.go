// Package yaml stores user settings as a YAML file.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/fs"
	yamlv3 "gopkg.in/yaml.v3"
)

// Ensure SettingsService implements mdclip.SettingsService at compile time.
var _ mdclip.SettingsService = (*SettingsService)(nil)

// SettingsService implements mdclip.SettingsService over a single YAML file.
// The file holds the API key, so it is written with 0600 permissions.
type SettingsService struct {
	path string
}

// NewSettingsService creates a SettingsService for the file at path.
func NewSettingsService(path string) *SettingsService {
	return &SettingsService{path: path}
}

// Path returns the settings file location.
func (s *SettingsService) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields default settings.
func (s *SettingsService) Load(ctx context.Context) (*mdclip.Settings, error) {
	settings := &mdclip.Settings{Model: mdclip.DefaultModel}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yamlv3.Unmarshal(data, settings); err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "invalid settings file %s: %v", s.path, err)
	}
	if settings.Model == "" {
		settings.Model = mdclip.DefaultModel
	}
	return settings, nil
}

// Save validates and writes settings, replacing the file atomically.
func (s *SettingsService) Save(ctx context.Context, settings *mdclip.Settings) error {
	if settings == nil {
		return mdclip.Errorf(mdclip.EINVALID, "settings required")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return fs.WriteFileAtomic(s.path, data, 0600)
}
