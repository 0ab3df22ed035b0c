package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of mdclip.SettingsService.
type SettingsService struct {
	LoadFn func(ctx context.Context) (*mdclip.Settings, error)
	SaveFn func(ctx context.Context, s *mdclip.Settings) error
}

func (s *SettingsService) Load(ctx context.Context) (*mdclip.Settings, error) {
	return s.LoadFn(ctx)
}

func (s *SettingsService) Save(ctx context.Context, settings *mdclip.Settings) error {
	return s.SaveFn(ctx, settings)
}
