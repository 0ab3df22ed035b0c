package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/mdclip"
)

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Load(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	enrichment := "off"
	if settings.EnrichmentEnabled {
		enrichment = "on"
	}

	apiKey := "not set"
	switch {
	case deps.EnvAPIKey != "":
		apiKey = maskKey(deps.EnvAPIKey) + " (from GEMINI_API_KEY)"
	case settings.APIKey != "":
		apiKey = maskKey(settings.APIKey)
	}

	fmt.Fprintf(deps.Stdout, "Enrichment:    %s\n", enrichment)
	fmt.Fprintf(deps.Stdout, "API key:       %s\n", apiKey)
	fmt.Fprintf(deps.Stdout, "Model:         %s\n", settings.Model)
	if len(settings.CustomModels) > 0 {
		fmt.Fprintf(deps.Stdout, "Custom models: %s\n", strings.Join(settings.CustomModels, ", "))
	}
	if settings.LastSaveDir != "" {
		fmt.Fprintf(deps.Stdout, "Last save dir: %s\n", settings.LastSaveDir)
	}
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	if !c.EnableEnrichment && !c.DisableEnrichment && c.APIKey == "" && !c.ClearAPIKey && c.Model == "" {
		fmt.Fprintln(deps.Stderr, "Error: nothing to set. Run 'mdclip config set --help' for options")
		return mdclip.Errorf(mdclip.EINVALID, "nothing to set")
	}

	return updateSettings(deps, func(s *mdclip.Settings) error {
		switch {
		case c.EnableEnrichment:
			s.EnrichmentEnabled = true
		case c.DisableEnrichment:
			s.EnrichmentEnabled = false
		}
		switch {
		case c.APIKey != "":
			s.APIKey = strings.TrimSpace(c.APIKey)
		case c.ClearAPIKey:
			s.APIKey = ""
		}
		if c.Model != "" {
			s.Model = c.Model
		}
		return nil
	}, "Settings saved")
}

// Run executes the config add-model command.
func (c *ConfigAddModelCmd) Run(deps *Dependencies) error {
	name := strings.TrimSpace(c.Name)
	return updateSettings(deps, func(s *mdclip.Settings) error {
		if name == "" {
			return mdclip.Errorf(mdclip.EINVALID, "model name required")
		}
		if slices.Contains(s.Models(), name) {
			return mdclip.Errorf(mdclip.EINVALID, "model %q is already available", name)
		}
		s.CustomModels = append(s.CustomModels, name)
		return nil
	}, fmt.Sprintf("Added model %q", name))
}

// Run executes the config remove-model command.
func (c *ConfigRemoveModelCmd) Run(deps *Dependencies) error {
	return updateSettings(deps, func(s *mdclip.Settings) error {
		if slices.Contains(mdclip.KnownModels, c.Name) {
			return mdclip.Errorf(mdclip.EINVALID, "cannot remove built-in model %q", c.Name)
		}
		i := slices.Index(s.CustomModels, c.Name)
		if i < 0 {
			return mdclip.Errorf(mdclip.ENOTFOUND, "model %q not found", c.Name)
		}
		s.CustomModels = slices.Delete(s.CustomModels, i, i+1)
		if s.Model == c.Name {
			s.Model = mdclip.DefaultModel
		}
		return nil
	}, fmt.Sprintf("Removed model %q", c.Name))
}

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Load(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	for _, m := range settings.Models() {
		marker := " "
		if m == settings.Model {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s\n", marker, m)
	}
	return nil
}

// updateSettings loads the settings, applies fn and saves the result.
func updateSettings(deps *Dependencies, fn func(*mdclip.Settings) error, done string) error {
	settings, err := deps.Settings.Load(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	if err := fn(settings); err != nil {
		printError(deps.Stderr, err)
		return err
	}
	if err := deps.Settings.Save(deps.Ctx, settings); err != nil {
		printError(deps.Stderr, err)
		return err
	}
	fmt.Fprintln(deps.Stdout, done)
	return nil
}

// maskKey hides all but the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
