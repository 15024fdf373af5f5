package dashboard

import (
	"context"
	"fmt"
	"time"

	"medication-tracker/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule: todos los días a las 07:00.
const DefaultSweepSchedule = "0 7 * * *"

// Sweeper recorre periódicamente a los usuarios y registra en el log sus alertas de stock y validez.
type Sweeper struct {
	svc  *Service
	log  logger.Logger
	cron *cron.Cron

	timeout time.Duration
}

func NewSweeper(svc *Service, log logger.Logger) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{
		svc:     svc,
		log:     log.With(map[string]any{"component": "alert_sweep"}),
		timeout: time.Minute,
	}
}

// Start agenda el barrido con una expresión cron de 5 campos. Vacía usa DefaultSweepSchedule.
func (s *Sweeper) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	c := cron.New(cron.WithLocation(s.svc.meds.Location()))
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("alert sweep scheduled", map[string]any{"schedule": schedule})
	return nil
}

// Stop detiene el cron y espera a que termine un barrido en curso.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("alert sweep failed", map[string]any{"error": err})
		return
	}
	s.log.Info("alert sweep finished", map[string]any{"alerts": n})
}

// RunOnce hace un barrido y devuelve cuántas alertas se registraron.
// Un usuario que falla no corta el barrido de los demás.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	users, err := s.svc.UserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	total := 0
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		alerts, err := s.svc.Alerts(ctx, userID)
		if err != nil {
			s.log.Warn("could not compute alerts", map[string]any{"user_id": userID, "error": err})
			continue
		}
		for _, a := range alerts {
			fields := map[string]any{
				"user_id":       userID,
				"medication_id": a.MedicationID,
				"medication":    a.MedicationName,
				"kind":          string(a.Kind),
			}
			if a.Days != nil {
				fields["days"] = *a.Days
			}
			s.log.Warn(a.Message, fields)
		}
		total += len(alerts)
	}
	return total, nil
}
