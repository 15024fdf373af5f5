package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_DoCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	require.NoError(t, st.Medications().Create(ctx, medications.Medication{ID: "m1", UserID: "u1", CurrentStock: 5}))

	err := st.Do(ctx, func(ctx context.Context, tx medications.TxRepos) error {
		if err := tx.Doses.Create(ctx, doses.DoseEvent{ID: "d1", UserID: "u1", MedicationID: "m1", Date: day(2024, 3, 1), Time: "08:00", Status: doses.StatusTaken}); err != nil {
			return err
		}
		return tx.Medications.UpdateStock(ctx, "u1", "m1", 4, time.Now())
	})
	require.NoError(t, err)

	m, err := st.Medications().GetByID(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, 4, m.CurrentStock)

	_, err = st.Doses().GetByID(ctx, "u1", "d1")
	assert.NoError(t, err)
}

func TestStore_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	require.NoError(t, st.Medications().Create(ctx, medications.Medication{ID: "m1", UserID: "u1", CurrentStock: 5}))

	boom := errors.New("boom")
	err := st.Do(ctx, func(ctx context.Context, tx medications.TxRepos) error {
		require.NoError(t, tx.Doses.Create(ctx, doses.DoseEvent{ID: "d1", UserID: "u1", MedicationID: "m1", Date: day(2024, 3, 1), Time: "08:00"}))
		require.NoError(t, tx.Medications.UpdateStock(ctx, "u1", "m1", 4, time.Now()))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	m, err := st.Medications().GetByID(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, 5, m.CurrentStock)

	_, err = st.Doses().GetByID(ctx, "u1", "d1")
	assert.ErrorIs(t, err, doses.ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMedicationsRepo_ScopedByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Medications()
	require.NoError(t, repo.Create(ctx, medications.Medication{ID: "m1", UserID: "u1", Times: []string{"08:00"}}))
	require.NoError(t, repo.Create(ctx, medications.Medication{ID: "m2", UserID: "u2"}))

	_, err := repo.GetByID(ctx, "u2", "m1")
	assert.ErrorIs(t, err, medications.ErrNotFound)

	assert.Error(t, repo.Create(ctx, medications.Medication{ID: "m1", UserID: "u1"}))

	m, err := repo.GetByID(ctx, "u1", "m1")
	require.NoError(t, err)
	m.Times[0] = "09:00"
	again, _ := repo.GetByID(ctx, "u1", "m1")
	assert.Equal(t, "08:00", again.Times[0], "stored copy must not be shared")

	ids, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, ids)

	require.NoError(t, repo.DeleteByUser(ctx, "u1"))
	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDosesRepo_SlotAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Doses()

	require.NoError(t, repo.Create(ctx, doses.DoseEvent{ID: "d1", UserID: "u1", MedicationID: "m1", Date: day(2024, 3, 1), Time: "08:00"}))
	require.NoError(t, repo.Create(ctx, doses.DoseEvent{ID: "d2", UserID: "u1", MedicationID: "m1", Date: day(2024, 3, 2), Time: "08:00"}))
	require.NoError(t, repo.Create(ctx, doses.DoseEvent{ID: "d3", UserID: "u1", MedicationID: "m2", Date: day(2024, 3, 2), Time: "07:00"}))

	err := repo.Create(ctx, doses.DoseEvent{ID: "dx", UserID: "u1", MedicationID: "m1", Date: day(2024, 3, 1), Time: "08:00"})
	assert.Error(t, err, "one record per slot")

	d, err := repo.FindSlot(ctx, "u1", "m1", day(2024, 3, 2), "08:00")
	require.NoError(t, err)
	assert.Equal(t, "d2", d.ID)

	_, err = repo.FindSlot(ctx, "u1", "m1", day(2024, 3, 3), "08:00")
	assert.ErrorIs(t, err, doses.ErrNotFound)

	from := day(2024, 3, 2)
	list, err := repo.List(ctx, "u1", doses.ListFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d3", list[0].ID)
	assert.Equal(t, "d2", list[1].ID)

	list, err = repo.List(ctx, "u1", doses.ListFilter{MedicationID: "m1", To: &from})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.DeleteByMedication(ctx, "u1", "m1"))
	list, err = repo.List(ctx, "u1", doses.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAppointmentsRepo_SortedByDateAndTime(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Appointments()

	require.NoError(t, repo.Create(ctx, appointments.Appointment{ID: "a1", UserID: "u1", Date: day(2024, 5, 2), Time: "09:00"}))
	require.NoError(t, repo.Create(ctx, appointments.Appointment{ID: "a2", UserID: "u1", Date: day(2024, 5, 1), Time: "15:00"}))
	require.NoError(t, repo.Create(ctx, appointments.Appointment{ID: "a3", UserID: "u1", Date: day(2024, 5, 1), Time: "08:30"}))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a3", "a2", "a1"}, []string{list[0].ID, list[1].ID, list[2].ID})

	err = repo.Delete(ctx, "u2", "a1")
	assert.ErrorIs(t, err, appointments.ErrNotFound)
}

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepo()

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, settings.ErrNotFound)

	require.NoError(t, repo.Save(ctx, settings.AppSettings{UserID: "u1", ThresholdExpiring: 10}))
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.ThresholdExpiring)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), settings.ErrNotFound)
}
