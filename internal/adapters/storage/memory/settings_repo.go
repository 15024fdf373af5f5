package memory

import (
	"context"
	"sync"

	"medication-tracker/internal/domain/settings"
)

type settingsRepo struct {
	mu     sync.RWMutex
	byUser map[string]settings.AppSettings
}

func NewSettingsRepo() settings.Repository {
	return &settingsRepo{
		byUser: make(map[string]settings.AppSettings),
	}
}

func (r *settingsRepo) Get(ctx context.Context, userID string) (settings.AppSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byUser[userID]
	if !ok {
		return settings.AppSettings{}, notFound(settings.ErrNotFound)
	}
	return s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[s.UserID] = s
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userID]; !ok {
		return notFound(settings.ErrNotFound)
	}
	delete(r.byUser, userID)
	return nil
}
