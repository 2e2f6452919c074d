package services

import (
	"context"

	"inkwell/internal/config"
)

// SettingsService exposes AI provider settings to the frontend. URL and key
// formats are not validated here; the frontend AI client owns that.
type SettingsService interface {
	Startup(ctx context.Context)
	GetAISettings() config.AISettings
	SaveAISettings(settings config.AISettings) error
}

type settingsService struct {
	store *config.Store
	ctx   context.Context
}

func NewSettingsService(store *config.Store) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *settingsService) GetAISettings() config.AISettings {
	return s.store.Load().AISettings
}

// SaveAISettings replaces the ai_settings field through a whole-document
// read-modify-write so a concurrent path override is not clobbered with
// stale in-memory state.
func (s *settingsService) SaveAISettings(settings config.AISettings) error {
	cfg := s.store.Load()
	cfg.AISettings = settings
	return s.store.Save(cfg)
}
