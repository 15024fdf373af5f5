package schedule

import (
	"testing"

	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDisplayMode(t *testing.T) {
	today := day(2024, 5, 10)

	cases := []struct {
		name        string
		date        int
		hasActivity bool
		isPRN       bool
		want        DisplayMode
	}{
		{"future", 11, false, false, ModeStatus},
		{"future prn", 11, false, true, ModeStatus},
		{"future with activity", 12, true, false, ModeStatus},
		{"today idle", 10, false, false, ModeStatus},
		{"today with activity", 10, true, false, ModeConsumption},
		{"today prn", 10, false, true, ModeConsumption},
		{"past", 9, false, false, ModeConsumption},
		{"past prn", 1, true, true, ModeConsumption},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDisplayMode(day(2024, 5, tc.date), today, tc.hasActivity, tc.isPRN)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildCalendarDay_Indicators(t *testing.T) {
	now := at(2024, 5, 10, 12, 0)
	start := ptr(day(2024, 5, 1))
	meds := []medications.Medication{
		{ID: "taken", Name: "A", Category: medications.CategoryContinuous, Times: []string{"08:00"}, StartDate: start, CurrentStock: 10},
		{ID: "late", Name: "B", Category: medications.CategoryContinuous, Times: []string{"09:00"}, StartDate: start, CurrentStock: 10},
		{ID: "explicit", Name: "C", Category: medications.CategoryContinuous, Times: []string{"10:00"}, StartDate: start, CurrentStock: 10},
		{ID: "idle", Name: "D", Category: medications.CategoryContinuous, Times: []string{"22:00"}, StartDate: start, CurrentStock: 0},
		{ID: "prn", Name: "E", Category: medications.CategoryPRN},
	}
	records := []doses.DoseEvent{
		{ID: "1", MedicationID: "taken", Date: day(2024, 5, 10), Time: "08:00", Status: doses.StatusTaken},
		{ID: "2", MedicationID: "explicit", Date: day(2024, 5, 10), Time: "10:00", Status: doses.StatusMissed},
		{ID: "3", MedicationID: "prn", Date: day(2024, 5, 10), Time: "11:00", Status: doses.StatusTaken},
	}

	cal := BuildCalendarDay(BuildDay(meds, records, day(2024, 5, 10), now), now)
	got := map[string]CalendarEntry{}
	for _, e := range cal.Entries {
		got[e.Medication.ID] = e
	}
	require.Len(t, got, 5)

	assert.Equal(t, IndicatorTaken, got["taken"].Indicator)
	assert.Equal(t, IndicatorNotTaken, got["late"].Indicator)
	assert.Equal(t, IndicatorMissed, got["explicit"].Indicator)
	assert.Equal(t, IndicatorPRNDose, got["prn"].Indicator)

	assert.Equal(t, ModeStatus, got["idle"].Mode)
	assert.Equal(t, IndicatorOutOfStock, got["idle"].Indicator)
}

func TestBuildCalendarDay_FutureProjection(t *testing.T) {
	now := at(2024, 5, 10, 12, 0)
	meds := []medications.Medication{
		{ID: "short", Name: "A", Category: medications.CategoryContinuous, Times: []string{"08:00", "20:00"}, IntervalDays: 1, CurrentStock: 10},
		{ID: "expired", Name: "B", Category: medications.CategoryContinuous, Times: []string{"08:00"}, CurrentStock: 100, ExpiryDate: ptr(day(2024, 5, 12))},
		{ID: "ok", Name: "C", Category: medications.CategoryContinuous, Times: []string{"09:00"}, CurrentStock: 100},
	}

	cal := BuildCalendarDay(BuildDay(meds, nil, day(2024, 5, 15), now), now)
	got := map[string]CalendarEntry{}
	for _, e := range cal.Entries {
		got[e.Medication.ID] = e
		assert.Equal(t, ModeStatus, e.Mode)
	}

	assert.Equal(t, IndicatorOutOfStock, got["short"].Indicator)
	assert.Equal(t, IndicatorExpired, got["expired"].Indicator)
	assert.Equal(t, IndicatorAvailable, got["ok"].Indicator)
}
