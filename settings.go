package mdclip

import (
	"context"
	"slices"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// KnownModels lists the Gemini models offered without configuration.
var KnownModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// Settings is the user configuration.
type Settings struct {
	EnrichmentEnabled bool     `yaml:"enrichment_enabled"`
	APIKey            string   `yaml:"api_key"`
	Model             string   `yaml:"model"`
	CustomModels      []string `yaml:"custom_models"`

	// LastSaveDir is the directory the user last saved an artifact to.
	LastSaveDir string `yaml:"last_save_dir"`
}

// EnrichmentActive reports whether enrichment should run:
// the flag is on and an API key is configured.
func (s *Settings) EnrichmentActive() bool {
	return s.EnrichmentEnabled && s.APIKey != ""
}

// Models returns the known models followed by custom models, without duplicates.
func (s *Settings) Models() []string {
	models := slices.Clone(KnownModels)
	for _, m := range s.CustomModels {
		if !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	return models
}

// Validate returns an error if the settings contain invalid fields.
func (s *Settings) Validate() error {
	if s.Model != "" && !slices.Contains(s.Models(), s.Model) {
		return Errorf(EINVALID, "unknown model %q", s.Model)
	}
	return nil
}

// SettingsService persists user configuration.
type SettingsService interface {
	// Load returns the stored settings, or defaults if none were saved.
	Load(ctx context.Context) (*Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, s *Settings) error
}
