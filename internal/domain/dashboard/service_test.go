package dashboard

import (
	"context"
	"testing"
	"time"

	mem "medication-tracker/internal/adapters/storage/memory"
	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/domain/schedule"
	"medication-tracker/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *mem.Store
	svc      *Service
	appts    *appointments.Service
	settings *settings.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := mem.NewStore()
	meds := medications.NewService(store.Medications(), store, time.UTC)
	sched := schedule.NewService(store.Medications(), store.Doses(), store, time.UTC)
	appts := appointments.NewService(store.Appointments(), time.UTC)
	cfg := settings.NewService(mem.NewSettingsRepo())
	return fixture{
		store:    store,
		svc:      NewService(meds, sched, appts, cfg, 0),
		appts:    appts,
		settings: cfg,
	}
}

func (f fixture) addMedication(t *testing.T, m medications.Medication) {
	t.Helper()
	now := time.Now().UTC()
	m.Category = medications.CategoryContinuous
	m.IntervalDays = 1
	m.CreatedAt, m.UpdatedAt = now, now
	require.NoError(t, f.store.Medications().Create(context.Background(), m))
}

func expiry(days int) *time.Time {
	d := dates.Midnight(time.Now().UTC()).AddDate(0, 0, days)
	return &d
}

func TestBuildAlerts_GroupsThenName(t *testing.T) {
	today := dates.Midnight(time.Now().UTC())
	th := medications.Thresholds{Expiring: 3, RunningOut: 3}
	meds := []medications.Medication{
		{ID: "1", Name: "zinco", Category: medications.CategoryContinuous, IntervalDays: 1, Times: []string{"08:00"}, CurrentStock: 30, ExpiryDate: expiry(-1)},
		{ID: "2", Name: "Aspirina", Category: medications.CategoryContinuous, IntervalDays: 1, Times: []string{"08:00"}, CurrentStock: 30, ExpiryDate: expiry(2)},
		{ID: "3", Name: "Metformina", Category: medications.CategoryContinuous, IntervalDays: 1, Times: []string{"08:00", "20:00"}, CurrentStock: 4},
		{ID: "4", Name: "Losartana", Category: medications.CategoryContinuous, IntervalDays: 1, Times: []string{"08:00"}, CurrentStock: 0},
		{ID: "5", Name: "Vitamina D", Category: medications.CategoryPRN, CurrentStock: 0, ExpiryDate: expiry(100)},
	}

	alerts := BuildAlerts(meds, today, th)

	got := make([]string, 0, len(alerts))
	for _, a := range alerts {
		got = append(got, string(a.Kind)+":"+a.MedicationName)
	}
	assert.Equal(t, []string{
		"out_of_stock:Losartana",
		"out_of_stock:Vitamina D",
		"running_out:Metformina",
		"expired:zinco",
		"expiring_soon:Aspirina",
	}, got)
	require.NotNil(t, alerts[2].Days)
	assert.Equal(t, 2, *alerts[2].Days)
}

func TestBuildAlerts_EmptyIsNotNil(t *testing.T) {
	alerts := BuildAlerts(nil, time.Now(), medications.Thresholds{})
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestOverview_CombinesScheduleAlertsAndAppointments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := dates.Midnight(time.Now().UTC())

	f.addMedication(t, medications.Medication{ID: "m1", UserID: "u1", Name: "Losartana", Times: []string{"00:00"}, CurrentStock: 0})
	require.NoError(t, f.store.Doses().Create(ctx, doses.DoseEvent{
		ID: "d1", UserID: "u1", MedicationID: "m1", Date: today, Time: "00:00", Status: doses.StatusMissed,
	}))

	_, err := f.appts.Create(ctx, "u1", appointments.CreateInput{
		Type: appointments.TypeConsultation, Doctor: "Dra. Souza", Date: today.AddDate(0, 0, 1), Time: "09:30",
	})
	require.NoError(t, err)

	ov, err := f.svc.Overview(ctx, "u1")
	require.NoError(t, err)

	assert.True(t, ov.Date.Equal(today))
	require.Len(t, ov.Schedule.Slots, 1)
	assert.Equal(t, 1, ov.Schedule.Summary.Missed)
	require.Len(t, ov.Alerts, 1)
	assert.Equal(t, medications.AlertOutOfStock, ov.Alerts[0].Kind)
	require.Len(t, ov.Upcoming, 1)
	assert.Equal(t, "Dra. Souza", ov.Upcoming[0].Doctor)
	assert.True(t, ov.ShowDelayed)

	_, err = f.settings.DismissDisclaimer(ctx, "u1")
	require.NoError(t, err)

	ov, err = f.svc.Overview(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ov.ShowDelayed)
}

func TestOverview_RequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Overview(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Alerts(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAlerts_UsesUserThresholds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addMedication(t, medications.Medication{ID: "m1", UserID: "u1", Name: "Metformina", Times: []string{"08:00"}, CurrentStock: 10})

	alerts, err := f.svc.Alerts(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, alerts)

	th := 15
	_, err = f.settings.Update(ctx, "u1", settings.UpdateInput{ThresholdRunningOut: &th})
	require.NoError(t, err)

	alerts, err = f.svc.Alerts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, medications.AlertRunningOut, alerts[0].Kind)
}

func TestDeleteUserData_OnlyTouchesThatUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := dates.Midnight(time.Now().UTC())

	f.addMedication(t, medications.Medication{ID: "m1", UserID: "u1", Name: "A", Times: []string{"08:00"}, CurrentStock: 5})
	f.addMedication(t, medications.Medication{ID: "m2", UserID: "u2", Name: "B", Times: []string{"08:00"}, CurrentStock: 5})
	require.NoError(t, f.store.Doses().Create(ctx, doses.DoseEvent{
		ID: "d1", UserID: "u1", MedicationID: "m1", Date: today, Time: "08:00", Status: doses.StatusTaken,
	}))
	_, err := f.appts.Create(ctx, "u1", appointments.CreateInput{
		Type: appointments.TypeExam, Doctor: "Lab", Date: today.AddDate(0, 0, 3), Time: "07:00",
	})
	require.NoError(t, err)
	hide := false
	_, err = f.settings.Update(ctx, "u1", settings.UpdateInput{ShowDelayDisclaimer: &hide})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUserData(ctx, "u1"))

	users, err := f.svc.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, users)

	recs, err := f.store.Doses().List(ctx, "u1", doses.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, recs)

	appts, err := f.appts.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, appts)

	cfg, err := f.settings.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults("u1"), cfg)
}
