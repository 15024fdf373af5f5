package medications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDosesPerDay_ByCategory(t *testing.T) {
	cases := []struct {
		name string
		med  Medication
		want float64
	}{
		{"continuous two times", Medication{Category: CategoryContinuous, Times: []string{"08:00", "20:00"}, IntervalDays: 1}, 2},
		{"period every other day", Medication{Category: CategoryPeriod, Times: []string{"08:00", "20:00"}, IntervalDays: 2}, 1},
		{"intervals weekly", Medication{Category: CategoryIntervals, Times: []string{"08:00"}, IntervalDays: 7}, 1.0 / 7},
		{"contraceptive", Medication{Category: CategoryContraceptive, Times: []string{"21:00"}}, 1},
		{"prn", Medication{Category: CategoryPRN, Times: []string{"08:00"}}, 0},
		{"unknown category", Medication{Category: "legacy"}, 1},
		{"zero interval treated as daily", Medication{Category: CategoryContinuous, Times: []string{"08:00"}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DosesPerDay(tc.med), 1e-9)
		})
	}
}

func TestDaysOfStockLeft(t *testing.T) {
	med := Medication{Category: CategoryContinuous, Times: []string{"08:00", "20:00"}, IntervalDays: 1, CurrentStock: 10}
	got := DaysOfStockLeft(med)
	require.NotNil(t, got)
	assert.Equal(t, 5, *got)

	med.CurrentStock = 11
	assert.Equal(t, 5, *DaysOfStockLeft(med), "partial days round down")

	med.CurrentStock = 0
	assert.Equal(t, 0, *DaysOfStockLeft(med))

	prn := Medication{Category: CategoryPRN, CurrentStock: 20}
	assert.Nil(t, DaysOfStockLeft(prn))
}

func TestDaysOfStockLeft_MonotonicWithStock(t *testing.T) {
	med := Medication{Category: CategoryContinuous, Times: []string{"07:00", "13:00", "21:00"}, IntervalDays: 2}
	prev := -1
	for stock := 0; stock <= 50; stock++ {
		med.CurrentStock = stock
		got := *DaysOfStockLeft(med)
		assert.GreaterOrEqual(t, got, prev, "stock %d", stock)
		prev = got
	}
}

func TestProjectStockOnDate(t *testing.T) {
	today := day(2024, 1, 1)
	med := Medication{Category: CategoryContinuous, Times: []string{"08:00", "20:00"}, IntervalDays: 1, CurrentStock: 10}

	assert.Equal(t, 10.0, ProjectStockOnDate(med, day(2023, 12, 20), today), "past is not projected")
	assert.Equal(t, 10.0, ProjectStockOnDate(med, today, today))
	assert.Equal(t, 6.0, ProjectStockOnDate(med, day(2024, 1, 3), today))

	target := day(2024, 1, 11)
	assert.Equal(t, 0.0, ProjectStockOnDate(med, target, today))
	assert.True(t, IsOutOfStockOnDate(med, target, today))
	assert.False(t, IsOutOfStockOnDate(med, day(2024, 1, 4), today))
}

func TestUpdatedStock(t *testing.T) {
	assert.Equal(t, 4, UpdatedStock(5, true))
	assert.Equal(t, 6, UpdatedStock(5, false))
	assert.Equal(t, 0, UpdatedStock(0, true), "clamped at zero")
}

func TestGenerateTimes(t *testing.T) {
	got, err := GenerateTimes("2x", "08:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "20:00"}, got)

	got, err = GenerateTimes("3x", "22:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"22:00", "06:00", "14:00"}, got)

	got, err = GenerateTimes("5x", "08:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "12:48", "17:36", "22:24", "03:12"}, got)

	got, err = GenerateTimes("custom", "9:30")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30"}, got)

	_, err = GenerateTimes("2x", "nope")
	assert.Error(t, err)
}
