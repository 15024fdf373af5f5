package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

// MaxRangeDays limita los rangos de agenda y calendario.
const MaxRangeDays = 62

type Service struct {
	meds  medications.Repository
	doses doses.Repository
	uow   medications.UnitOfWork
	now   func() time.Time
}

func NewService(meds medications.Repository, doseRepo doses.Repository, uow medications.UnitOfWork, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		meds:  meds,
		doses: doseRepo,
		uow:   uow,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) Location() *time.Location {
	return s.now().Location()
}

// Day devuelve la agenda de un día con su resumen.
func (s *Service) Day(ctx context.Context, userID string, date time.Time) (DaySchedule, error) {
	days, err := s.Range(ctx, userID, date, date)
	if err != nil {
		return DaySchedule{}, err
	}
	return days[0], nil
}

// Range devuelve la agenda de cada día entre from y to (inclusive).
func (s *Service) Range(ctx context.Context, userID string, from, to time.Time) ([]DaySchedule, error) {
	meds, records, err := s.load(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return BuildRange(meds, records, from, to, s.now()), nil
}

// Calendar devuelve las entradas del calendario entre from y to.
func (s *Service) Calendar(ctx context.Context, userID string, from, to time.Time) ([]CalendarDay, error) {
	days, err := s.Range(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, BuildCalendarDay(d, now))
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, userID string, from, to time.Time) ([]medications.Medication, []doses.DoseEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil, ErrInvalidInput
	}
	n := dates.DaysBetween(from, to)
	if n < 0 || n >= MaxRangeDays {
		return nil, nil, fmt.Errorf("%w: range must be between 1 and %d days", ErrInvalidInput, MaxRangeDays)
	}

	meds, err := s.meds.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list medications: %w", err)
	}
	from, to = dates.Midnight(from), dates.Midnight(to)
	records, err := s.doses.List(ctx, userID, doses.ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, nil, fmt.Errorf("list doses: %w", err)
	}
	return meds, records, nil
}
