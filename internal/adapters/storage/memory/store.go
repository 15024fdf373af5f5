package memory

import (
	"context"
	"errors"
	"sync"

	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store guarda medicamentos, dosis y citas en memoria.
// Implementa medications.UnitOfWork: Do toma el lock exclusivo, trabaja sobre el estado
// y lo restaura desde una copia si fn devuelve error.
type Store struct {
	mu sync.RWMutex

	meds  map[string]medications.Medication
	doses map[string]doses.DoseEvent
	appts map[string]appointments.Appointment
}

func NewStore() *Store {
	return &Store{
		meds:  make(map[string]medications.Medication),
		doses: make(map[string]doses.DoseEvent),
		appts: make(map[string]appointments.Appointment),
	}
}

func (s *Store) Medications() medications.Repository {
	return &medicationsRepo{s: s}
}

func (s *Store) Doses() doses.Repository {
	return &dosesRepo{s: s}
}

func (s *Store) Appointments() appointments.Repository {
	return &appointmentsRepo{s: s}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx medications.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	medsSnap := cloneMap(s.meds)
	dosesSnap := cloneMap(s.doses)

	tx := medications.TxRepos{
		Medications: &medicationsRepo{s: s, inTx: true},
		Doses:       &dosesRepo{s: s, inTx: true},
	}
	if err := fn(ctx, tx); err != nil {
		s.meds = medsSnap
		s.doses = dosesSnap
		return err
	}
	return nil
}

// lock/unlock no hacen nada dentro de Do, que ya tiene el lock exclusivo.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
