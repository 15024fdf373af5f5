package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"medication-tracker/internal/domain/settings"
)

var ErrNotFound = errors.New("not found")

// settingsRecord es el formato en disco; se mantiene separado del modelo de dominio.
type settingsRecord struct {
	UserID              string    `json:"user_id"`
	ThresholdExpiring   int       `json:"threshold_expiring"`
	ThresholdRunningOut int       `json:"threshold_running_out"`
	ShowDelayDisclaimer bool      `json:"show_delay_disclaimer"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SettingsStore guarda la configuración de todos los usuarios en un único archivo JSON.
// Cada cambio reescribe el archivo de forma atómica (tmp + rename).
type SettingsStore struct {
	mu     sync.RWMutex
	path   string
	byUser map[string]settings.AppSettings
}

// OpenSettingsStore carga path si existe. Un archivo inexistente o vacío equivale a sin datos.
func OpenSettingsStore(path string) (*SettingsStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create settings dir: %w", err)
		}
	}
	s := &SettingsStore{
		path:   path,
		byUser: make(map[string]settings.AppSettings),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SettingsStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	var records []settingsRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s: %w", s.path, err)
	}
	for _, r := range records {
		s.byUser[r.UserID] = settings.AppSettings{
			UserID:              r.UserID,
			ThresholdExpiring:   r.ThresholdExpiring,
			ThresholdRunningOut: r.ThresholdRunningOut,
			ShowDelayDisclaimer: r.ShowDelayDisclaimer,
			UpdatedAt:           r.UpdatedAt,
		}
	}
	return nil
}

func (s *SettingsStore) Get(ctx context.Context, userID string) (settings.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.byUser[userID]
	if !ok {
		return settings.AppSettings{}, fmt.Errorf("%w: %w", ErrNotFound, settings.ErrNotFound)
	}
	return cfg, nil
}

func (s *SettingsStore) Save(ctx context.Context, cfg settings.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.byUser[cfg.UserID]
	s.byUser[cfg.UserID] = cfg
	if err := s.flush(); err != nil {
		if existed {
			s.byUser[cfg.UserID] = prev
		} else {
			delete(s.byUser, cfg.UserID)
		}
		return err
	}
	return nil
}

func (s *SettingsStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.byUser[userID]
	if !ok {
		return fmt.Errorf("%w: %w", ErrNotFound, settings.ErrNotFound)
	}
	delete(s.byUser, userID)
	if err := s.flush(); err != nil {
		s.byUser[userID] = prev
		return err
	}
	return nil
}

// flush requiere s.mu tomado.
func (s *SettingsStore) flush() error {
	records := make([]settingsRecord, 0, len(s.byUser))
	for _, cfg := range s.byUser {
		records = append(records, settingsRecord{
			UserID:              cfg.UserID,
			ThresholdExpiring:   cfg.ThresholdExpiring,
			ThresholdRunningOut: cfg.ThresholdRunningOut,
			ShowDelayDisclaimer: cfg.ShowDelayDisclaimer,
			UpdatedAt:           cfg.UpdatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].UserID < records[j].UserID })

	if err := atomicWriteFileJSON(s.path, records); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data any) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}
