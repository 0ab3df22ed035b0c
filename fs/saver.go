package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mdclip"
)

// ErrSaveCancelled is returned when the user dismisses the save dialog or
// declines to overwrite an existing file.
var ErrSaveCancelled = mdclip.Errorf(mdclip.EINVALID, "save cancelled")

// Ensure Saver implements mdclip.Saver at compile time.
var _ mdclip.Saver = (*Saver)(nil)

// Saver writes artifacts to disk. With a Prompter it behaves like a save
// dialog: the user picks the final path starting from the last directory
// used, and must confirm overwrites. Without one it writes straight to the
// proposed path.
type Saver struct {
	// Prompter asks for the path and overwrite confirmation. Optional.
	Prompter mdclip.Prompter

	// Settings remembers the last directory saved to. Optional.
	Settings mdclip.SettingsService

	// Dir overrides the proposed directory when set.
	Dir string

	// Overwrite replaces existing files without asking.
	Overwrite bool

	// HomeDir returns the user's home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
}

// Save writes data under the chosen path and returns it.
func (s *Saver) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if suggestedName == "" {
		return "", mdclip.Errorf(mdclip.EINVALID, "filename required")
	}

	var settings *mdclip.Settings
	if s.Settings != nil {
		var err error
		if settings, err = s.Settings.Load(ctx); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.proposedDir(settings), suggestedName)

	if s.Prompter != nil {
		chosen, ok, err := s.Prompter.PromptPath(ctx, path)
		if err != nil {
			return "", err
		}
		if !ok || strings.TrimSpace(chosen) == "" {
			return "", ErrSaveCancelled
		}
		path = s.resolve(chosen, suggestedName)
	}

	if _, err := os.Stat(path); err == nil {
		if err := s.confirmOverwrite(ctx, path); err != nil {
			return "", err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if settings != nil && settings.LastSaveDir != filepath.Dir(path) {
		settings.LastSaveDir = filepath.Dir(path)
		// Remembering the directory is best-effort; the file is already written.
		_ = s.Settings.Save(ctx, settings)
	}

	return path, nil
}

func (s *Saver) confirmOverwrite(ctx context.Context, path string) error {
	if s.Overwrite {
		return nil
	}
	if s.Prompter == nil {
		return mdclip.Errorf(mdclip.EINVALID, "file already exists: %s", path)
	}

	ok, err := s.Prompter.Confirm(ctx, fmt.Sprintf("%s already exists. Replace it?", path))
	if err != nil {
		return err
	}
	if !ok {
		return ErrSaveCancelled
	}
	return nil
}

// proposedDir picks the starting directory: an explicit Dir, the last
// directory saved to, ~/Downloads, or the working directory.
func (s *Saver) proposedDir(settings *mdclip.Settings) string {
	if s.Dir != "" {
		return s.expand(s.Dir)
	}
	if settings != nil && settings.LastSaveDir != "" && isDir(settings.LastSaveDir) {
		return settings.LastSaveDir
	}
	if home, err := s.homeDir(); err == nil {
		if downloads := filepath.Join(home, "Downloads"); isDir(downloads) {
			return downloads
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// resolve expands ~ and appends the suggested name when the chosen path
// is an existing directory.
func (s *Saver) resolve(chosen, suggestedName string) string {
	path := s.expand(strings.TrimSpace(chosen))
	if isDir(path) {
		path = filepath.Join(path, suggestedName)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func (s *Saver) expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := s.homeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (s *Saver) homeDir() (string, error) {
	if s.HomeDir != nil {
		return s.HomeDir()
	}
	return os.UserHomeDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
