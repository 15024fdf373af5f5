package medications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"medication-tracker/internal/domain/doses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, userID, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok || m.UserID != userID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) UpdateStock(ctx context.Context, userID, id string, stock int, at time.Time) error {
	m, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	m.CurrentStock = stock
	r.byID[id] = m
	return nil
}

func (r *testRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByUser(ctx context.Context, userID string) error {
	for id, m := range r.byID {
		if m.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *testRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range r.byID {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

// testDoses solo registra qué medicamentos se limpiaron.
type testDoses struct {
	doses.Repository
	deletedFor []string
	fail       error
}

func (d *testDoses) DeleteByMedication(ctx context.Context, userID, medicationID string) error {
	if d.fail != nil {
		return d.fail
	}
	d.deletedFor = append(d.deletedFor, medicationID)
	return nil
}

type testUoW struct {
	meds  Repository
	doses doses.Repository
}

func (u testUoW) Do(ctx context.Context, fn func(ctx context.Context, tx TxRepos) error) error {
	return fn(ctx, TxRepos{Medications: u.meds, Doses: u.doses})
}

func newTestService(now time.Time) (*Service, *testRepo, *testDoses) {
	repo := newTestRepo()
	ds := &testDoses{}
	svc := NewService(repo, testUoW{meds: repo, doses: ds}, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, ds
}

// -------------------------
// Tests
// -------------------------

func TestCreate_AppliesDefaults(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	m, err := svc.Create(context.Background(), "u1", CreateInput{Name: "  Dipirona "})
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Dipirona", m.Name)
	assert.Equal(t, CategoryContinuous, m.Category)
	assert.Equal(t, UnitTablet, m.Unit)
	assert.Equal(t, "1x", m.DosesToken)
	assert.Equal(t, 1, m.IntervalDays)
	assert.Equal(t, []string{"08:00"}, m.Times)
	require.NotNil(t, m.StartDate)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *m.StartDate)
	assert.Equal(t, 30, m.TotalStock)
	assert.Equal(t, 30, m.CurrentStock)
	assert.Equal(t, Palette[0], m.Color)
}

func TestCreate_SpreadsTimesFromFirstDose(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))

	m, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:       "Amoxicilina",
		DosesToken: "3x",
		Times:      []string{"7:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"07:00", "15:00", "23:00"}, m.Times)
	assert.InDelta(t, 3.0, DosesPerDay(m), 1e-9)
}

func TestCreate_PeriodComputesEndDate(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	m, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:         "Antibiótico",
		Category:     CategoryPeriod,
		StartDate:    &start,
		DurationDays: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, m.EndDate)
	assert.Equal(t, time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC), *m.EndDate)
}

func TestCreate_IntervalPreset(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))

	m, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:         "Vitamina D",
		Category:     CategoryIntervals,
		IntervalType: IntervalBiweekly,
		IntervalDays: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, m.IntervalDays)
}

func TestCreate_RotatesPalette(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", CreateInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u1", CreateInput{Name: "B"})
	require.NoError(t, err)

	assert.Equal(t, Palette[0], a.Color)
	assert.Equal(t, Palette[1], b.Color)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	negative := -1
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	cases := map[string]CreateInput{
		"blank name":       {Name: "   "},
		"bad category":     {Name: "X", Category: "weekly"},
		"bad token":        {Name: "X", DosesToken: "9x"},
		"negative stock":   {Name: "X", CurrentStock: &negative},
		"bad time":         {Name: "X", Times: []string{"25:00"}},
		"end before start": {Name: "X", StartDate: &start, EndDate: &end},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Create(ctx, "", CreateInput{Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialAndClear(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	m, err := svc.Create(ctx, "u1", CreateInput{Name: "Losartana", ExpiryDate: &expiry})
	require.NoError(t, err)

	stock := 60
	name := "Losartana 50mg"
	updated, err := svc.Update(ctx, "u1", m.ID, UpdateInput{
		Name:            &name,
		CurrentStock:    &stock,
		ClearExpiryDate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Losartana 50mg", updated.Name)
	assert.Equal(t, 60, updated.CurrentStock)
	assert.Nil(t, updated.ExpiryDate)
	assert.Equal(t, m.Times, updated.Times)

	_, err = svc.Update(ctx, "u2", m.ID, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_CascadesDoses(t *testing.T) {
	svc, repo, ds := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m, err := svc.Create(ctx, "u1", CreateInput{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", m.ID))
	assert.Equal(t, []string{m.ID}, ds.deletedFor)
	assert.Empty(t, repo.byID)

	assert.ErrorIs(t, svc.Delete(ctx, "u1", m.ID), ErrNotFound)
}

func TestDelete_PropagatesDoseCleanupFailure(t *testing.T) {
	svc, repo, ds := newTestService(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	m, err := svc.Create(ctx, "u1", CreateInput{Name: "A"})
	require.NoError(t, err)

	ds.fail = errors.New("boom")
	err = svc.Delete(ctx, "u1", m.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete doses")
	assert.Len(t, repo.byID, 1)
}
