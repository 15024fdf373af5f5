package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medication-tracker/internal/domain/appointments"
)

type appointmentsRepo struct {
	s *Store
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.s.appts[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	r.s.appts[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, userID, id string) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appts[id]
	if !ok || a.UserID != userID {
		return appointments.Appointment{}, notFound(appointments.ErrNotFound)
	}
	return a, nil
}

func (r *appointmentsRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.s.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Before(out[j]) != out[j].Before(out[i]) {
			return out[i].Before(out[j])
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.appts[a.ID]
	if !ok || cur.UserID != a.UserID {
		return notFound(appointments.ErrNotFound)
	}
	r.s.appts[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appts[id]
	if !ok || a.UserID != userID {
		return notFound(appointments.ErrNotFound)
	}
	delete(r.s.appts, id)
	return nil
}

func (r *appointmentsRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, a := range r.s.appts {
		if a.UserID == userID {
			delete(r.s.appts, id)
		}
	}
	return nil
}
