package schedule

import (
	"testing"
	"time"

	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestIsActiveOn_IntervalFromStart(t *testing.T) {
	med := medications.Medication{
		ID:           "m1",
		Category:     medications.CategoryIntervals,
		IntervalDays: 3,
		Times:        []string{"08:00"},
		StartDate:    ptr(day(2024, 1, 1)),
	}

	assert.True(t, IsActiveOn(med, day(2024, 1, 1), nil))
	assert.True(t, IsActiveOn(med, day(2024, 1, 7), nil))
	assert.False(t, IsActiveOn(med, day(2024, 1, 8), nil))
	assert.False(t, IsActiveOn(med, day(2023, 12, 29), nil), "before start")
}

func TestIsActiveOn_EndDateInclusive(t *testing.T) {
	med := medications.Medication{
		ID:        "m1",
		Category:  medications.CategoryPeriod,
		Times:     []string{"08:00"},
		StartDate: ptr(day(2024, 1, 1)),
		EndDate:   ptr(day(2024, 1, 7)),
	}

	assert.True(t, IsActiveOn(med, day(2024, 1, 7), nil))
	assert.False(t, IsActiveOn(med, day(2024, 1, 8), nil))
}

func TestIsActiveOn_NoStartDateAlwaysActive(t *testing.T) {
	med := medications.Medication{ID: "m1", Category: medications.CategoryContinuous, Times: []string{"08:00"}}
	assert.True(t, IsActiveOn(med, day(1999, 1, 1), nil))
}

func TestIsActiveOn_PRNOnlyWhenLogged(t *testing.T) {
	med := medications.Medication{ID: "p1", Category: medications.CategoryPRN, StartDate: ptr(day(2024, 1, 1))}
	logged := []doses.DoseEvent{{ID: "d1", MedicationID: "p1", Date: day(2024, 1, 5), Time: "14:10", Status: doses.StatusTaken}}

	assert.True(t, IsActiveOn(med, day(2024, 1, 5), logged))
	assert.False(t, IsActiveOn(med, day(2024, 1, 6), logged))
}

func TestSlotStatus_DerivedFromClock(t *testing.T) {
	now := at(2024, 3, 1, 9, 0)
	today := day(2024, 3, 1)

	assert.Equal(t, doses.StatusMissed, SlotStatus(nil, today, "07:00", now))
	assert.Equal(t, doses.StatusPending, SlotStatus(nil, today, "10:00", now))
	assert.Equal(t, doses.StatusPending, SlotStatus(nil, today, "09:00", now), "same minute is not yet past")
	assert.Equal(t, doses.StatusMissed, SlotStatus(nil, day(2024, 2, 29), "23:00", now))
	assert.Equal(t, doses.StatusPending, SlotStatus(nil, day(2024, 3, 2), "00:00", now))

	pending := doses.DoseEvent{Status: doses.StatusPending}
	assert.Equal(t, doses.StatusMissed, SlotStatus(&pending, today, "07:00", now))

	missed := doses.DoseEvent{Status: doses.StatusMissed}
	assert.Equal(t, doses.StatusMissed, SlotStatus(&missed, day(2024, 3, 2), "10:00", now), "stored missed always wins")

	taken := doses.DoseEvent{Status: doses.StatusTaken}
	assert.Equal(t, doses.StatusTaken, SlotStatus(&taken, today, "07:00", now))
}

func TestBuildDay_MergesRecordsAndSorts(t *testing.T) {
	now := at(2024, 3, 1, 12, 0)
	meds := []medications.Medication{
		{ID: "a", Name: "Alfa", Category: medications.CategoryContinuous, Times: []string{"08:00", "20:00"}, StartDate: ptr(day(2024, 1, 1))},
		{ID: "b", Name: "Beta", Category: medications.CategoryContinuous, Times: []string{"07:00"}, StartDate: ptr(day(2024, 1, 1))},
		{ID: "p", Name: "Prn", Category: medications.CategoryPRN},
		{ID: "x", Name: "Futuro", Category: medications.CategoryContinuous, Times: []string{"06:00"}, StartDate: ptr(day(2024, 4, 1))},
	}
	records := []doses.DoseEvent{
		{ID: "d1", MedicationID: "a", Date: day(2024, 3, 1), Time: "08:00", Status: doses.StatusTaken},
		{ID: "d2", MedicationID: "p", Date: day(2024, 3, 1), Time: "15:30", Status: doses.StatusTaken},
		{ID: "d3", MedicationID: "a", Date: day(2024, 2, 29), Time: "20:00", Status: doses.StatusTaken},
	}

	got := BuildDay(meds, records, day(2024, 3, 1), now)
	require.Len(t, got.Slots, 4)

	times := []string{}
	for _, s := range got.Slots {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"07:00", "08:00", "15:30", "20:00"}, times)

	assert.Equal(t, doses.StatusMissed, got.Slots[0].Status)
	assert.IsType(t, VirtualSlot{}, got.Slots[0].Slot)

	assert.Equal(t, doses.StatusTaken, got.Slots[1].Status)
	rec, ok := got.Slots[1].Record()
	require.True(t, ok)
	assert.Equal(t, "d1", rec.ID)

	assert.Equal(t, "p", got.Slots[2].Medication.ID)
	assert.Equal(t, doses.StatusPending, got.Slots[3].Status)

	assert.Equal(t, Summary{Taken: 2, Pending: 1, Missed: 1, Total: 4, Progress: 50}, got.Summary)
}

func TestBuildRange_OneEntryPerDay(t *testing.T) {
	meds := []medications.Medication{
		{ID: "a", Name: "Alfa", Category: medications.CategoryIntervals, IntervalDays: 2, Times: []string{"08:00"}, StartDate: ptr(day(2024, 3, 1))},
	}
	got := BuildRange(meds, nil, day(2024, 3, 1), day(2024, 3, 5), at(2024, 3, 1, 0, 0))

	require.Len(t, got, 5)
	counts := []int{}
	for _, d := range got {
		counts = append(counts, d.Summary.Total)
	}
	assert.Equal(t, []int{1, 0, 1, 0, 1}, counts)
}

func TestBuildRange_InvertedRangeIsEmpty(t *testing.T) {
	meds := []medications.Medication{{ID: "m1", Category: medications.CategoryContinuous, Times: []string{"08:00"}, IntervalDays: 1}}

	got := BuildRange(meds, nil, day(2024, 3, 5), day(2024, 3, 1), at(2024, 3, 1, 0, 0))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScheduledOn(t *testing.T) {
	m := medications.Medication{
		Category:     medications.CategoryIntervals,
		IntervalDays: 7,
		Times:        []string{"08:00"},
		StartDate:    ptr(day(2024, 1, 1)),
		EndDate:      ptr(day(2024, 1, 31)),
	}
	assert.True(t, ScheduledOn(m, day(2024, 1, 1)))
	assert.True(t, ScheduledOn(m, day(2024, 1, 29)))
	assert.False(t, ScheduledOn(m, day(2024, 1, 2)))
	assert.False(t, ScheduledOn(m, day(2023, 12, 25)))
	assert.False(t, ScheduledOn(m, day(2024, 2, 5)))

	prn := medications.Medication{Category: medications.CategoryPRN}
	assert.False(t, ScheduledOn(prn, day(2024, 1, 1)))
}
