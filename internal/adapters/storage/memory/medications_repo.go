package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"medication-tracker/internal/domain/medications"
)

type medicationsRepo struct {
	s    *Store
	inTx bool
}

func (r *medicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	defer r.s.lock(r.inTx)()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.s.meds[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.s.meds[m.ID] = copyMedication(m)
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, userID, id string) (medications.Medication, error) {
	defer r.s.rlock(r.inTx)()

	m, ok := r.s.meds[id]
	if !ok || m.UserID != userID {
		return medications.Medication{}, notFound(medications.ErrNotFound)
	}
	return copyMedication(m), nil
}

func (r *medicationsRepo) ListByUser(ctx context.Context, userID string) ([]medications.Medication, error) {
	defer r.s.rlock(r.inTx)()

	out := make([]medications.Medication, 0)
	for _, m := range r.s.meds {
		if m.UserID == userID {
			out = append(out, copyMedication(m))
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	defer r.s.lock(r.inTx)()

	cur, ok := r.s.meds[m.ID]
	if !ok || cur.UserID != m.UserID {
		return notFound(medications.ErrNotFound)
	}
	r.s.meds[m.ID] = copyMedication(m)
	return nil
}

func (r *medicationsRepo) UpdateStock(ctx context.Context, userID, id string, stock int, at time.Time) error {
	defer r.s.lock(r.inTx)()

	m, ok := r.s.meds[id]
	if !ok || m.UserID != userID {
		return notFound(medications.ErrNotFound)
	}
	m.CurrentStock = stock
	m.UpdatedAt = at
	r.s.meds[id] = m
	return nil
}

func (r *medicationsRepo) Delete(ctx context.Context, userID, id string) error {
	defer r.s.lock(r.inTx)()

	m, ok := r.s.meds[id]
	if !ok || m.UserID != userID {
		return notFound(medications.ErrNotFound)
	}
	delete(r.s.meds, id)
	return nil
}

func (r *medicationsRepo) DeleteByUser(ctx context.Context, userID string) error {
	defer r.s.lock(r.inTx)()

	for id, m := range r.s.meds {
		if m.UserID == userID {
			delete(r.s.meds, id)
		}
	}
	return nil
}

func (r *medicationsRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	defer r.s.rlock(r.inTx)()

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, m := range r.s.meds {
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		seen[m.UserID] = struct{}{}
		out = append(out, m.UserID)
	}
	sort.Strings(out)
	return out, nil
}

// copyMedication evita compartir slices y punteros con el llamador.
func copyMedication(m medications.Medication) medications.Medication {
	m.Times = append([]string(nil), m.Times...)
	m.StartDate = copyTime(m.StartDate)
	m.EndDate = copyTime(m.EndDate)
	m.ExpiryDate = copyTime(m.ExpiryDate)
	return m
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func notFound(domainErr error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, domainErr)
}
