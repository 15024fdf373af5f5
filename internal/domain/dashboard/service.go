package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/domain/schedule"
	"medication-tracker/internal/domain/settings"
)

var ErrInvalidInput = errors.New("invalid input")

// Service compone la vista "hoy": agenda, alertas, próximas consultas y aviso de atraso.
type Service struct {
	meds     *medications.Service
	schedule *schedule.Service
	appts    *appointments.Service
	settings *settings.Service

	upcomingLimit int
}

func NewService(meds *medications.Service, sched *schedule.Service, appts *appointments.Service, cfg *settings.Service, upcomingLimit int) *Service {
	if upcomingLimit <= 0 {
		upcomingLimit = appointments.DefaultUpcoming
	}
	return &Service{
		meds:          meds,
		schedule:      sched,
		appts:         appts,
		settings:      cfg,
		upcomingLimit: upcomingLimit,
	}
}

type Overview struct {
	Date        time.Time
	Schedule    schedule.DaySchedule
	Alerts      []medications.Alert
	Upcoming    []appointments.Appointment
	Settings    settings.AppSettings
	ShowDelayed bool
}

// Overview arma el panel del día actual.
// ShowDelayed se activa cuando hay dosis atrasadas y el usuario no ocultó el aviso.
func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	if strings.TrimSpace(userID) == "" {
		return Overview{}, ErrInvalidInput
	}

	cfg, err := s.settings.Get(ctx, userID)
	if err != nil {
		return Overview{}, fmt.Errorf("settings: %w", err)
	}

	today := dates.Midnight(s.schedule.Now())
	day, err := s.schedule.Day(ctx, userID, today)
	if err != nil {
		return Overview{}, fmt.Errorf("schedule: %w", err)
	}

	alerts, err := s.alerts(ctx, userID, today, thresholdsOf(cfg))
	if err != nil {
		return Overview{}, err
	}

	upcoming, err := s.appts.Upcoming(ctx, userID, s.upcomingLimit)
	if err != nil {
		return Overview{}, fmt.Errorf("appointments: %w", err)
	}

	return Overview{
		Date:        today,
		Schedule:    day,
		Alerts:      alerts,
		Upcoming:    upcoming,
		Settings:    cfg,
		ShowDelayed: day.Summary.Missed > 0 && cfg.ShowDelayDisclaimer,
	}, nil
}

// Alerts devuelve las alertas de stock y validez de hoy con los umbrales del usuario.
func (s *Service) Alerts(ctx context.Context, userID string) ([]medications.Alert, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	th, err := s.settings.Thresholds(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return s.alerts(ctx, userID, s.meds.Today(), th)
}

func (s *Service) alerts(ctx context.Context, userID string, today time.Time, th medications.Thresholds) ([]medications.Alert, error) {
	meds, err := s.meds.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("medications: %w", err)
	}
	return BuildAlerts(meds, today, th), nil
}

// BuildAlerts junta las alertas de todos los medicamentos.
// Primero las de stock, luego las de validez; dentro de cada grupo, por nombre.
func BuildAlerts(meds []medications.Medication, today time.Time, th medications.Thresholds) []medications.Alert {
	out := []medications.Alert{}
	for _, m := range meds {
		out = append(out, medications.Alerts(m, today, th)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := alertGroup(out[i].Kind), alertGroup(out[j].Kind)
		if gi != gj {
			return gi < gj
		}
		return strings.ToLower(out[i].MedicationName) < strings.ToLower(out[j].MedicationName)
	})
	return out
}

func alertGroup(k medications.AlertKind) int {
	switch k {
	case medications.AlertOutOfStock:
		return 0
	case medications.AlertRunningOut:
		return 1
	case medications.AlertExpired:
		return 2
	default:
		return 3
	}
}

// DeleteUserData borra medicamentos (con sus dosis), consultas y configuración del usuario.
func (s *Service) DeleteUserData(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.meds.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("medications: %w", err)
	}
	if err := s.appts.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("appointments: %w", err)
	}
	if err := s.settings.Reset(ctx, userID); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// UserIDs lista los usuarios con medicamentos registrados.
func (s *Service) UserIDs(ctx context.Context) ([]string, error) {
	return s.meds.UserIDs(ctx)
}

func thresholdsOf(cfg settings.AppSettings) medications.Thresholds {
	return medications.Thresholds{
		Expiring:   cfg.ThresholdExpiring,
		RunningOut: cfg.ThresholdRunningOut,
	}
}
