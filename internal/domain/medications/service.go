package medications

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
	ErrNotFound     = errors.New("medication not found")
)

const (
	defaultStock        = 30
	defaultDurationDays = 7
)

var validate = validator.New()

type Service struct {
	repo Repository
	uow  UnitOfWork
	now  func() time.Time
}

// NewService crea el servicio; loc define qué es "hoy" para los valores por defecto.
func NewService(repo Repository, uow UnitOfWork, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		uow:  uow,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

// Now devuelve la hora actual en la zona configurada.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) Today() time.Time {
	return dates.Midnight(s.now())
}

func (s *Service) Location() *time.Location {
	return s.now().Location()
}

type CreateInput struct {
	Name              string            `validate:"required,max=120"`
	Dosage            string            `validate:"max=60"`
	Unit              Unit              `validate:"omitempty,oneof=comprimido gota ml dose"`
	Category          Category          `validate:"omitempty,oneof=continuous period intervals contraceptive prn"`
	DosesToken        string            `validate:"omitempty,oneof=1x 2x 3x 4x 5x custom"`
	IntervalDays      int               `validate:"gte=0,lte=365"`
	IntervalType      IntervalType      `validate:"omitempty,oneof=weekly biweekly monthly quarterly quadrimesterly custom"`
	ContraceptiveType ContraceptiveType `validate:"omitempty,oneof=daily 21_7 24_4 28_continuous"`
	Times             []string          `validate:"max=24"`
	StartDate         *time.Time
	EndDate           *time.Time
	DurationDays      int  `validate:"gte=0,lte=3650"`
	MaxDosesPerDay    int  `validate:"gte=0,lte=24"`
	TotalStock        *int `validate:"omitempty,gte=0"`
	CurrentStock      *int `validate:"omitempty,gte=0"`
	ExpiryDate        *time.Time
	Notes             string `validate:"max=1000"`
	Color             string `validate:"max=40"`
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return Medication{}, ErrInvalidInput
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return Medication{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	m := Medication{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              in.Name,
		Dosage:            strings.TrimSpace(in.Dosage),
		Unit:              in.Unit,
		Category:          in.Category,
		DosesToken:        in.DosesToken,
		IntervalDays:      in.IntervalDays,
		IntervalType:      in.IntervalType,
		ContraceptiveType: in.ContraceptiveType,
		Times:             in.Times,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		DurationDays:      in.DurationDays,
		MaxDosesPerDay:    in.MaxDosesPerDay,
		TotalStock:        defaultStock,
		ExpiryDate:        in.ExpiryDate,
		Notes:             strings.TrimSpace(in.Notes),
		Color:             strings.TrimSpace(in.Color),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.TotalStock != nil {
		m.TotalStock = *in.TotalStock
	}
	m.CurrentStock = m.TotalStock
	if in.CurrentStock != nil {
		m.CurrentStock = *in.CurrentStock
	}

	if m.Color == "" {
		existing, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return Medication{}, fmt.Errorf("list medications: %w", err)
		}
		m.Color = Palette[len(existing)%len(Palette)]
	}

	if err := s.normalize(&m); err != nil {
		return Medication{}, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, fmt.Errorf("create medication: %w", err)
	}
	return m, nil
}

// normalize aplica los valores por defecto de cada categoría y valida la coherencia del régimen.
func (s *Service) normalize(m *Medication) error {
	if m.Category == "" {
		m.Category = CategoryContinuous
	}
	if !m.Category.Valid() {
		return ErrInvalidInput
	}
	if m.Unit == "" {
		m.Unit = UnitTablet
	}
	if m.Category.Recurring() && m.DosesToken == "" {
		m.DosesToken = "1x"
	}

	if m.Category == CategoryIntervals {
		if days, ok := intervalPresets[m.IntervalType]; ok {
			m.IntervalDays = days
		}
	}
	if m.IntervalDays < 1 {
		m.IntervalDays = 1
	}

	times, err := normalizeTimes(m.Times)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	autoSpread := m.Category == CategoryContinuous || m.Category == CategoryPeriod
	switch {
	case len(times) == 0 && rulesFor(m.Category).needsTimes:
		first := DefaultFirstDose
		if !autoSpread {
			times = []string{first}
			break
		}
		if times, err = GenerateTimes(m.DosesToken, first); err != nil {
			return err
		}
	case len(times) == 1 && autoSpread && TokenCount(m.DosesToken) > 1:
		if times, err = GenerateTimes(m.DosesToken, times[0]); err != nil {
			return err
		}
	}
	if m.Times, err = normalizeTimes(times); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if m.StartDate != nil {
		d := dates.Midnight(*m.StartDate)
		m.StartDate = &d
	} else if m.Category.Recurring() {
		d := dates.Midnight(s.now())
		m.StartDate = &d
	}

	if m.Category == CategoryPeriod {
		if m.DurationDays < 1 {
			m.DurationDays = defaultDurationDays
		}
		end := dates.AddDays(*m.StartDate, m.DurationDays-1)
		m.EndDate = &end
	} else {
		m.DurationDays = 0
	}

	if m.EndDate != nil && m.StartDate != nil && dates.DaysBetween(*m.StartDate, *m.EndDate) < 0 {
		return fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	if m.CurrentStock < 0 || m.TotalStock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalidInput)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(userID) == "" || id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// UserIDs devuelve los usuarios con medicamentos registrados.
func (s *Service) UserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDs(ctx)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name              *string            `validate:"omitempty,min=1,max=120"`
	Dosage            *string            `validate:"omitempty,max=60"`
	Unit              *Unit              `validate:"omitempty,oneof=comprimido gota ml dose"`
	Category          *Category          `validate:"omitempty,oneof=continuous period intervals contraceptive prn"`
	DosesToken        *string            `validate:"omitempty,oneof=1x 2x 3x 4x 5x custom"`
	IntervalDays      *int               `validate:"omitempty,gte=1,lte=365"`
	IntervalType      *IntervalType      `validate:"omitempty,oneof=weekly biweekly monthly quarterly quadrimesterly custom"`
	ContraceptiveType *ContraceptiveType `validate:"omitempty,oneof=daily 21_7 24_4 28_continuous"`
	Times             *[]string
	StartDate         *time.Time
	EndDate           *time.Time
	ClearEndDate      bool
	DurationDays      *int `validate:"omitempty,gte=1,lte=3650"`
	MaxDosesPerDay    *int `validate:"omitempty,gte=0,lte=24"`
	TotalStock        *int `validate:"omitempty,gte=0"`
	CurrentStock      *int `validate:"omitempty,gte=0"`
	ExpiryDate        *time.Time
	ClearExpiryDate   bool
	Notes             *string `validate:"omitempty,max=1000"`
	Color             *string `validate:"omitempty,max=40"`
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Medication, error) {
	if err := validate.Struct(in); err != nil {
		return Medication{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = name
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Unit != nil {
		m.Unit = *in.Unit
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.DosesToken != nil {
		m.DosesToken = *in.DosesToken
	}
	if in.IntervalDays != nil {
		m.IntervalDays = *in.IntervalDays
	}
	if in.IntervalType != nil {
		m.IntervalType = *in.IntervalType
	}
	if in.ContraceptiveType != nil {
		m.ContraceptiveType = *in.ContraceptiveType
	}
	if in.Times != nil {
		m.Times = *in.Times
	}
	if in.StartDate != nil {
		m.StartDate = in.StartDate
	}
	if in.ClearEndDate {
		m.EndDate = nil
	} else if in.EndDate != nil {
		m.EndDate = in.EndDate
	}
	if in.DurationDays != nil {
		m.DurationDays = *in.DurationDays
	}
	if in.MaxDosesPerDay != nil {
		m.MaxDosesPerDay = *in.MaxDosesPerDay
	}
	if in.TotalStock != nil {
		m.TotalStock = *in.TotalStock
	}
	if in.CurrentStock != nil {
		m.CurrentStock = *in.CurrentStock
	}
	if in.ClearExpiryDate {
		m.ExpiryDate = nil
	} else if in.ExpiryDate != nil {
		m.ExpiryDate = in.ExpiryDate
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Color != nil {
		m.Color = strings.TrimSpace(*in.Color)
	}

	if err := s.normalize(&m); err != nil {
		return Medication{}, err
	}
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, fmt.Errorf("update medication: %w", err)
	}
	return m, nil
}

// Delete borra el medicamento y sus registros de dosis en la misma unidad de trabajo.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.uow.Do(ctx, func(ctx context.Context, tx TxRepos) error {
		if err := tx.Doses.DeleteByMedication(ctx, userID, id); err != nil {
			return fmt.Errorf("delete doses: %w", err)
		}
		if err := tx.Medications.Delete(ctx, userID, id); err != nil {
			return fmt.Errorf("delete medication: %w", err)
		}
		return nil
	})
}

// DeleteAllForUser borra todos los medicamentos del usuario y sus registros de dosis.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	return s.uow.Do(ctx, func(ctx context.Context, tx TxRepos) error {
		if err := tx.Doses.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete doses: %w", err)
		}
		if err := tx.Medications.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete medications: %w", err)
		}
		return nil
	})
}

// StatusOn evalúa stock y validez del medicamento para date.
func (s *Service) StatusOn(ctx context.Context, userID, id string, date time.Time, th Thresholds) (Medication, Status, error) {
	m, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return Medication{}, Status{}, err
	}
	return m, StatusOn(m, date, s.Today(), th), nil
}
