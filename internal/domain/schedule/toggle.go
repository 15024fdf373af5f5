package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfStock: marcar como tomada sin stock requiere confirmación explícita.
	ErrOutOfStock = errors.New("medication out of stock")
)

// ToggleInput identifica el horario a alternar: por DoseID, o por (MedicationID, Time, Date).
// Date nil = hoy. Confirm permite marcar como tomada aunque el stock sea 0.
type ToggleInput struct {
	DoseID       string
	MedicationID string
	Time         string
	Date         *time.Time
	Confirm      bool
}

// ToggleResult describe el efecto aplicado. Changed=false indica un no-op.
type ToggleResult struct {
	Changed    bool
	Created    bool
	Deleted    bool
	Status     doses.Status
	Dose       *doses.DoseEvent
	Medication medications.Medication
}

// Toggle alterna taken <-> pending y ajusta el stock en una sola unidad de trabajo.
//
//   - registro existente: taken -> pending devuelve 1 unidad; pending/missed -> taken consume 1.
//     En PRN, taken -> pending borra el registro.
//   - horario virtual (MedicationID + Time): crea el registro como taken y consume 1.
//     Fuera de PRN, la hora y la fecha tienen que estar en la agenda del medicamento.
//   - PRN con MedicationID y sin Time: usa la hora actual.
//   - sin registro ni datos suficientes: no-op.
func (s *Service) Toggle(ctx context.Context, userID string, in ToggleInput) (ToggleResult, error) {
	if strings.TrimSpace(userID) == "" {
		return ToggleResult{}, ErrInvalidInput
	}
	in.DoseID = strings.TrimSpace(in.DoseID)
	in.MedicationID = strings.TrimSpace(in.MedicationID)
	if in.Time != "" {
		clock, err := dates.NormalizeClock(in.Time)
		if err != nil {
			return ToggleResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Time = clock
	}

	now := s.now()
	date := dates.Midnight(now)
	if in.Date != nil {
		date = dates.Midnight(*in.Date)
	}

	var res ToggleResult
	err := s.uow.Do(ctx, func(ctx context.Context, tx medications.TxRepos) error {
		existing, found, err := s.resolve(ctx, tx.Doses, userID, in, date)
		if err != nil {
			return err
		}
		// PRN sin hora: registro rápido con la hora actual.
		if !found && in.MedicationID != "" && in.Time == "" {
			med, err := tx.Medications.GetByID(ctx, userID, in.MedicationID)
			if err != nil {
				return fmt.Errorf("get medication: %w", err)
			}
			if !med.IsPRN() {
				return nil
			}
			in.Time = dates.Clock(now)
			existing, found, err = s.resolve(ctx, tx.Doses, userID, in, date)
			if err != nil {
				return err
			}
		}
		if found {
			r, err := toggleExisting(ctx, tx, userID, existing, in.Confirm, now)
			res = r
			return err
		}
		if in.MedicationID == "" || in.Time == "" {
			return nil
		}
		r, err := toggleVirtual(ctx, tx, userID, VirtualSlot{MedicationID: in.MedicationID, Time: in.Time, Date: date}, in.Confirm, now)
		res = r
		return err
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return res, nil
}

// resolve busca el registro por id y, si no aparece, por (medicamento, fecha, hora).
func (s *Service) resolve(ctx context.Context, repo doses.Repository, userID string, in ToggleInput, date time.Time) (doses.DoseEvent, bool, error) {
	if in.DoseID != "" {
		d, err := repo.GetByID(ctx, userID, in.DoseID)
		switch {
		case err == nil:
			return d, true, nil
		case !errors.Is(err, doses.ErrNotFound):
			return doses.DoseEvent{}, false, fmt.Errorf("get dose: %w", err)
		}
	}
	if in.MedicationID == "" || in.Time == "" {
		return doses.DoseEvent{}, false, nil
	}
	d, err := repo.FindSlot(ctx, userID, in.MedicationID, date, in.Time)
	switch {
	case err == nil:
		return d, true, nil
	case errors.Is(err, doses.ErrNotFound):
		return doses.DoseEvent{}, false, nil
	default:
		return doses.DoseEvent{}, false, fmt.Errorf("find dose: %w", err)
	}
}

func toggleExisting(ctx context.Context, tx medications.TxRepos, userID string, d doses.DoseEvent, confirm bool, now time.Time) (ToggleResult, error) {
	med, err := tx.Medications.GetByID(ctx, userID, d.MedicationID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("get medication: %w", err)
	}

	next := doses.StatusTaken
	if d.Status == doses.StatusTaken {
		next = doses.StatusPending
	}
	taking := next == doses.StatusTaken
	if taking && !medications.HasStock(med.CurrentStock) && !confirm {
		return ToggleResult{}, ErrOutOfStock
	}

	res := ToggleResult{Changed: true, Status: next}
	if !taking && med.IsPRN() {
		if err := tx.Doses.Delete(ctx, userID, d.ID); err != nil {
			return ToggleResult{}, fmt.Errorf("delete dose: %w", err)
		}
		res.Deleted = true
	} else {
		if err := tx.Doses.UpdateStatus(ctx, userID, d.ID, next, now); err != nil {
			return ToggleResult{}, fmt.Errorf("update dose: %w", err)
		}
		d.Status = next
		d.UpdatedAt = now
		res.Dose = &d
	}

	med.CurrentStock = medications.UpdatedStock(med.CurrentStock, taking)
	med.UpdatedAt = now
	if err := tx.Medications.UpdateStock(ctx, userID, med.ID, med.CurrentStock, now); err != nil {
		return ToggleResult{}, fmt.Errorf("update stock: %w", err)
	}
	res.Medication = med
	return res, nil
}

func toggleVirtual(ctx context.Context, tx medications.TxRepos, userID string, v VirtualSlot, confirm bool, now time.Time) (ToggleResult, error) {
	med, err := tx.Medications.GetByID(ctx, userID, v.MedicationID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("get medication: %w", err)
	}
	if med.Category.Recurring() {
		if !slices.Contains(med.Times, v.Time) {
			return ToggleResult{}, fmt.Errorf("%w: %s is not a scheduled time for this medication", ErrInvalidInput, v.Time)
		}
		if !ScheduledOn(med, v.Date) {
			return ToggleResult{}, fmt.Errorf("%w: medication is not scheduled on %s", ErrInvalidInput, dates.FormatDate(v.Date))
		}
	}
	if !medications.HasStock(med.CurrentStock) && !confirm {
		return ToggleResult{}, ErrOutOfStock
	}

	d := doses.DoseEvent{
		ID:           uuid.NewString(),
		UserID:       userID,
		MedicationID: med.ID,
		Date:         v.Date,
		Time:         v.Time,
		Status:       doses.StatusTaken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Doses.Create(ctx, d); err != nil {
		return ToggleResult{}, fmt.Errorf("create dose: %w", err)
	}

	med.CurrentStock = medications.UpdatedStock(med.CurrentStock, true)
	med.UpdatedAt = now
	if err := tx.Medications.UpdateStock(ctx, userID, med.ID, med.CurrentStock, now); err != nil {
		return ToggleResult{}, fmt.Errorf("update stock: %w", err)
	}

	return ToggleResult{
		Changed:    true,
		Created:    true,
		Status:     doses.StatusTaken,
		Dose:       &d,
		Medication: med,
	}, nil
}
