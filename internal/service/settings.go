package service

import (
	"context"
	"sync"

	"storefront/internal/entity"
	"storefront/internal/repository"
)

// SettingsService is the process-wide settings provider: loaded once,
// cached until a save or an explicit Refresh.
type SettingsService struct {
	repo *repository.SettingsRepository

	mu     sync.RWMutex
	cached *entity.StoreSettings
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the cached settings, loading them on first use. A load
// failure falls back to the defaults so the storefront keeps rendering.
func (s *SettingsService) GetSettings(ctx context.Context) entity.StoreSettings {
	s.mu.RLock()
	if s.cached != nil {
		settings := *s.cached
		s.mu.RUnlock()
		return settings
	}
	s.mu.RUnlock()

	rows, err := s.repo.GetSettings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading store settings")
		return entity.DefaultStoreSettings()
	}
	settings := entity.SettingsFromRows(rows)

	s.mu.Lock()
	s.cached = &settings
	s.mu.Unlock()
	return settings
}

// UpdateSettings replaces the whole settings object and refreshes the cache.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings entity.StoreSettings) error {
	if err := s.repo.SaveSettings(ctx, settings.SettingsToRows()); err != nil {
		logger.Error().Err(err).Msg("Error saving store settings")
		return err
	}
	s.mu.Lock()
	s.cached = &settings
	s.mu.Unlock()
	return nil
}

// Refresh drops the cache; the next GetSettings hits the database.
func (s *SettingsService) Refresh() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
