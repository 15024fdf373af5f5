package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/medications"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("settings not found")
)

var validate = validator.New()

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Get devuelve la configuración guardada o los valores por defecto.
func (s *Service) Get(ctx context.Context, userID string) (AppSettings, error) {
	if strings.TrimSpace(userID) == "" {
		return AppSettings{}, ErrInvalidInput
	}
	cfg, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Defaults(userID), nil
	}
	if err != nil {
		return AppSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return cfg, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	ThresholdExpiring   *int `validate:"omitempty,gte=0,lte=365"`
	ThresholdRunningOut *int `validate:"omitempty,gte=0,lte=365"`
	ShowDelayDisclaimer *bool
}

func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (AppSettings, error) {
	if err := validate.Struct(in); err != nil {
		return AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return AppSettings{}, err
	}

	if in.ThresholdExpiring != nil {
		cfg.ThresholdExpiring = *in.ThresholdExpiring
	}
	if in.ThresholdRunningOut != nil {
		cfg.ThresholdRunningOut = *in.ThresholdRunningOut
	}
	if in.ShowDelayDisclaimer != nil {
		cfg.ShowDelayDisclaimer = *in.ShowDelayDisclaimer
	}
	cfg.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, cfg); err != nil {
		return AppSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return cfg, nil
}

// DismissDisclaimer oculta el aviso de atraso de dosis.
func (s *Service) DismissDisclaimer(ctx context.Context, userID string) (AppSettings, error) {
	hide := false
	return s.Update(ctx, userID, UpdateInput{ShowDelayDisclaimer: &hide})
}

// Reset vuelve a los valores por defecto.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// Thresholds implementa medications.ThresholdSource.
func (s *Service) Thresholds(ctx context.Context, userID string) (medications.Thresholds, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return medications.Thresholds{}, err
	}
	return medications.Thresholds{
		Expiring:   cfg.ThresholdExpiring,
		RunningOut: cfg.ThresholdRunningOut,
	}, nil
}
