package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
)

type dosesRepo struct {
	s    *Store
	inTx bool
}

func (r *dosesRepo) Create(ctx context.Context, d doses.DoseEvent) error {
	defer r.s.lock(r.inTx)()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dose id required")
	}
	if _, exists := r.s.doses[d.ID]; exists {
		return errors.New("dose already exists")
	}
	// un registro por (medicamento, fecha, hora)
	for _, cur := range r.s.doses {
		if sameSlot(cur, d.UserID, d.MedicationID, d.Date, d.Time) {
			return errors.New("dose slot already recorded")
		}
	}
	r.s.doses[d.ID] = d
	return nil
}

func (r *dosesRepo) GetByID(ctx context.Context, userID, id string) (doses.DoseEvent, error) {
	defer r.s.rlock(r.inTx)()

	d, ok := r.s.doses[id]
	if !ok || d.UserID != userID {
		return doses.DoseEvent{}, notFound(doses.ErrNotFound)
	}
	return d, nil
}

func (r *dosesRepo) FindSlot(ctx context.Context, userID, medicationID string, date time.Time, clock string) (doses.DoseEvent, error) {
	defer r.s.rlock(r.inTx)()

	for _, d := range r.s.doses {
		if sameSlot(d, userID, medicationID, date, clock) {
			return d, nil
		}
	}
	return doses.DoseEvent{}, notFound(doses.ErrNotFound)
}

func (r *dosesRepo) List(ctx context.Context, userID string, filter doses.ListFilter) ([]doses.DoseEvent, error) {
	defer r.s.rlock(r.inTx)()

	out := make([]doses.DoseEvent, 0)
	for _, d := range r.s.doses {
		if d.UserID != userID {
			continue
		}
		if filter.MedicationID != "" && d.MedicationID != filter.MedicationID {
			continue
		}
		if filter.From != nil && dates.DaysBetween(*filter.From, d.Date) < 0 {
			continue
		}
		if filter.To != nil && dates.DaysBetween(d.Date, *filter.To) < 0 {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		if diff := dates.DaysBetween(out[j].Date, out[i].Date); diff != 0 {
			return diff < 0
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].MedicationID < out[j].MedicationID
	})
	return out, nil
}

func (r *dosesRepo) UpdateStatus(ctx context.Context, userID, id string, status doses.Status, at time.Time) error {
	defer r.s.lock(r.inTx)()

	d, ok := r.s.doses[id]
	if !ok || d.UserID != userID {
		return notFound(doses.ErrNotFound)
	}
	d.Status = status
	d.UpdatedAt = at
	r.s.doses[id] = d
	return nil
}

func (r *dosesRepo) Delete(ctx context.Context, userID, id string) error {
	defer r.s.lock(r.inTx)()

	d, ok := r.s.doses[id]
	if !ok || d.UserID != userID {
		return notFound(doses.ErrNotFound)
	}
	delete(r.s.doses, id)
	return nil
}

func (r *dosesRepo) DeleteByMedication(ctx context.Context, userID, medicationID string) error {
	defer r.s.lock(r.inTx)()

	for id, d := range r.s.doses {
		if d.UserID == userID && d.MedicationID == medicationID {
			delete(r.s.doses, id)
		}
	}
	return nil
}

func (r *dosesRepo) DeleteByUser(ctx context.Context, userID string) error {
	defer r.s.lock(r.inTx)()

	for id, d := range r.s.doses {
		if d.UserID == userID {
			delete(r.s.doses, id)
		}
	}
	return nil
}

func sameSlot(d doses.DoseEvent, userID, medicationID string, date time.Time, clock string) bool {
	return d.UserID == userID &&
		d.MedicationID == medicationID &&
		d.Time == clock &&
		dates.DaysBetween(d.Date, date) == 0
}
