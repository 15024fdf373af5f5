package schedule

import (
	"sort"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

type slotKey struct {
	medicationID string
	date         string
	time         string
}

func keyOf(d doses.DoseEvent) slotKey {
	return slotKey{medicationID: d.MedicationID, date: dates.FormatDate(d.Date), time: d.Time}
}

// index agrupa registros por horario y por (medicamento, fecha).
type index struct {
	bySlot map[slotKey]doses.DoseEvent
	byDay  map[slotKey][]string // time vacío en la clave
}

func newIndex(records []doses.DoseEvent) index {
	idx := index{
		bySlot: make(map[slotKey]doses.DoseEvent, len(records)),
		byDay:  make(map[slotKey][]string),
	}
	for _, d := range records {
		k := keyOf(d)
		idx.bySlot[k] = d
		dk := slotKey{medicationID: d.MedicationID, date: k.date}
		idx.byDay[dk] = append(idx.byDay[dk], d.Time)
	}
	return idx
}

func (i index) loggedTimes(medicationID string, date time.Time) []string {
	times := append([]string(nil), i.byDay[slotKey{medicationID: medicationID, date: dates.FormatDate(date)}]...)
	sort.Strings(times)
	return times
}

// IsActiveOn indica si el medicamento tiene dosis en date.
// PRN solo está activo si hay registros ese día. Sin fecha de inicio se considera siempre activo.
func IsActiveOn(m medications.Medication, date time.Time, records []doses.DoseEvent) bool {
	return newIndex(records).isActiveOn(m, date)
}

func (i index) isActiveOn(m medications.Medication, date time.Time) bool {
	if !m.Category.Recurring() {
		return len(i.loggedTimes(m.ID, date)) > 0
	}
	return ScheduledOn(m, date)
}

// ScheduledOn aplica la recurrencia (inicio, fin e intervalo) sin mirar registros.
// Para PRN siempre es false.
func ScheduledOn(m medications.Medication, date time.Time) bool {
	if !m.Category.Recurring() {
		return false
	}
	if m.StartDate == nil {
		return true
	}
	diff := dates.DaysBetween(*m.StartDate, date)
	if diff < 0 {
		return false
	}
	if m.EndDate != nil && dates.DaysBetween(*m.EndDate, date) > 0 {
		return false
	}
	return diff%m.Interval() == 0
}

// slotTimes: horarios del día. PRN usa los horarios registrados, no los nominales.
func (i index) slotTimes(m medications.Medication, date time.Time) []string {
	if !m.Category.Recurring() {
		return i.loggedTimes(m.ID, date)
	}
	return m.Times
}

// SlotStatus resuelve el estado efectivo de un horario.
// taken y missed registrados siempre ganan. Sin registro (o pending) depende de si ya pasó la hora.
func SlotStatus(record *doses.DoseEvent, date time.Time, clock string, now time.Time) doses.Status {
	if record != nil {
		switch record.Status {
		case doses.StatusTaken:
			return doses.StatusTaken
		case doses.StatusMissed:
			return doses.StatusMissed
		}
	}
	switch {
	case dates.IsFuture(date, now):
		return doses.StatusPending
	case dates.IsPast(date, now):
		return doses.StatusMissed
	case clock < dates.Clock(now):
		return doses.StatusMissed
	default:
		return doses.StatusPending
	}
}

// BuildDay genera la agenda de date combinando la recurrencia con los registros existentes.
// now debe estar en la zona local del usuario.
func BuildDay(meds []medications.Medication, records []doses.DoseEvent, date, now time.Time) DaySchedule {
	return buildDay(meds, newIndex(records), date, now)
}

func buildDay(meds []medications.Medication, idx index, date, now time.Time) DaySchedule {
	date = dates.Midnight(date)
	day := dates.FormatDate(date)
	slots := make([]DoseSlot, 0)

	for _, m := range meds {
		if !idx.isActiveOn(m, date) {
			continue
		}
		for _, clock := range idx.slotTimes(m, date) {
			sl := DoseSlot{Medication: m, Time: clock}
			if rec, ok := idx.bySlot[slotKey{medicationID: m.ID, date: day, time: clock}]; ok {
				sl.Slot = PersistedSlot{Dose: rec}
				sl.Status = SlotStatus(&rec, date, clock, now)
			} else {
				sl.Slot = VirtualSlot{MedicationID: m.ID, Time: clock, Date: date}
				sl.Status = SlotStatus(nil, date, clock, now)
			}
			slots = append(slots, sl)
		}
	}

	sort.SliceStable(slots, func(a, b int) bool {
		if slots[a].Time != slots[b].Time {
			return slots[a].Time < slots[b].Time
		}
		return slots[a].Medication.Name < slots[b].Medication.Name
	})

	return DaySchedule{Date: date, Slots: slots, Summary: summarize(slots)}
}

// BuildRange genera una agenda por día entre from y to (inclusive).
func BuildRange(meds []medications.Medication, records []doses.DoseEvent, from, to, now time.Time) []DaySchedule {
	idx := newIndex(records)
	n := dates.DaysBetween(from, to)
	if n < 0 {
		return []DaySchedule{}
	}
	out := make([]DaySchedule, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, buildDay(meds, idx, dates.AddDays(from, i), now))
	}
	return out
}
