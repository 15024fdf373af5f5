package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
)

// DefaultUpcoming es la cantidad de próximas citas del panel.
const DefaultUpcoming = 3

var validate = validator.New()

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

func (s *Service) Location() *time.Location {
	return s.now().Location()
}

type CreateInput struct {
	Type      Type   `validate:"required,oneof=Consulta Exame"`
	Doctor    string `validate:"required,max=120"`
	Specialty string `validate:"max=120"`
	Location  string `validate:"max=200"`
	Notes     string `validate:"max=1000"`
	Date      time.Time
	Time      string `validate:"required"`
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	in.Doctor = strings.TrimSpace(in.Doctor)
	if err := validate.Struct(in); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Date.IsZero() {
		return Appointment{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	clock, err := dates.NormalizeClock(in.Time)
	if err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Doctor:    in.Doctor,
		Specialty: strings.TrimSpace(in.Specialty),
		Location:  strings.TrimSpace(in.Location),
		Notes:     strings.TrimSpace(in.Notes),
		Date:      dates.Midnight(in.Date),
		Time:      clock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(userID) == "" || id == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// Upcoming devuelve las citas con fecha y hora >= ahora, la más cercana primero.
func (s *Service) Upcoming(ctx context.Context, userID string, limit int) ([]Appointment, error) {
	if limit <= 0 {
		limit = DefaultUpcoming
	}
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Upcoming(all, s.now(), limit), nil
}

// Upcoming filtra y recorta una lista ya ordenada por (fecha, hora).
func Upcoming(sorted []Appointment, now time.Time, limit int) []Appointment {
	clock := dates.Clock(now)
	out := make([]Appointment, 0, limit)
	for _, a := range sorted {
		diff := dates.DaysBetween(now, a.Date)
		if diff < 0 || (diff == 0 && a.Time < clock) {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}

type UpdateInput struct {
	Type      *Type   `validate:"omitempty,oneof=Consulta Exame"`
	Doctor    *string `validate:"omitempty,min=1,max=120"`
	Specialty *string `validate:"omitempty,max=120"`
	Location  *string `validate:"omitempty,max=200"`
	Notes     *string `validate:"omitempty,max=1000"`
	Date      *time.Time
	Time      *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Appointment, error) {
	if err := validate.Struct(in); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	a, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Doctor != nil {
		doctor := strings.TrimSpace(*in.Doctor)
		if doctor == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.Doctor = doctor
	}
	if in.Specialty != nil {
		a.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.Location != nil {
		a.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Date != nil {
		a.Date = dates.Midnight(*in.Date)
	}
	if in.Time != nil {
		clock, err := dates.NormalizeClock(*in.Time)
		if err != nil {
			return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		a.Time = clock
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByUser(ctx, userID)
}
