package schedule

import (
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

// DisplayMode decide qué muestra el calendario para un medicamento en una fecha.
type DisplayMode string

const (
	// ModeStatus muestra disponibilidad (vencido, sin stock, disponible).
	ModeStatus DisplayMode = "STATUS"
	// ModeConsumption muestra lo que se tomó o no.
	ModeConsumption DisplayMode = "CONSUMPTION"
)

// ResolveDisplayMode: futuro => STATUS; hoy sin actividad y no PRN => STATUS; resto => CONSUMPTION.
func ResolveDisplayMode(date, today time.Time, hasActivity, isPRN bool) DisplayMode {
	if dates.IsFuture(date, today) {
		return ModeStatus
	}
	if dates.IsToday(date, today) && !isPRN && !hasActivity {
		return ModeStatus
	}
	return ModeConsumption
}

type Indicator string

const (
	IndicatorExpired    Indicator = "expired"
	IndicatorOutOfStock Indicator = "out_of_stock"
	IndicatorAvailable  Indicator = "available"
	IndicatorPRNDose    Indicator = "prn_dose"
	IndicatorMissed     Indicator = "missed"
	IndicatorNotTaken   Indicator = "not_taken"
	IndicatorTaken      Indicator = "taken"
	IndicatorNone       Indicator = "none"
)

// CalendarEntry es un medicamento activo en un día del calendario.
type CalendarEntry struct {
	Medication medications.Medication
	Times      []string
	Mode       DisplayMode
	Indicator  Indicator
}

type CalendarDay struct {
	Date    time.Time
	Entries []CalendarEntry
}

// activity resume los horarios de un medicamento en el día.
type activity struct {
	taken         bool
	missed        bool // registro explícito
	elapsedUnused bool // pendiente con la hora ya pasada
}

func (a activity) any() bool {
	return a.taken || a.missed || a.elapsedUnused
}

// BuildCalendarDay arma las entradas del calendario para date.
func BuildCalendarDay(day DaySchedule, now time.Time) CalendarDay {
	type group struct {
		med   medications.Medication
		times []string
		act   activity
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, sl := range day.Slots {
		g, ok := groups[sl.Medication.ID]
		if !ok {
			g = &group{med: sl.Medication}
			groups[sl.Medication.ID] = g
			order = append(order, sl.Medication.ID)
		}
		g.times = append(g.times, sl.Time)

		rec, persisted := sl.Record()
		switch {
		case sl.Status == doses.StatusTaken:
			g.act.taken = true
		case persisted && rec.Status == doses.StatusMissed:
			g.act.missed = true
		case sl.Status == doses.StatusMissed:
			g.act.elapsedUnused = true
		}
	}

	today := dates.Midnight(now)
	out := CalendarDay{Date: day.Date, Entries: make([]CalendarEntry, 0, len(order))}
	for _, id := range order {
		g := groups[id]
		isPRN := !g.med.Category.Recurring()
		mode := ResolveDisplayMode(day.Date, today, g.act.any(), isPRN)

		e := CalendarEntry{Medication: g.med, Times: g.times, Mode: mode}
		if mode == ModeStatus {
			e.Indicator = statusIndicator(g.med, day.Date, today)
		} else {
			e.Indicator = consumptionIndicator(g.act, isPRN)
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}

func statusIndicator(m medications.Medication, date, today time.Time) Indicator {
	switch {
	case medications.IsExpired(m.ExpiryDate, date):
		return IndicatorExpired
	case medications.IsOutOfStockOnDate(m, date, today):
		return IndicatorOutOfStock
	default:
		return IndicatorAvailable
	}
}

func consumptionIndicator(a activity, isPRN bool) Indicator {
	switch {
	case isPRN:
		return IndicatorPRNDose
	case a.missed:
		return IndicatorMissed
	case a.elapsedUnused:
		return IndicatorNotTaken
	case a.taken:
		return IndicatorTaken
	default:
		return IndicatorNone
	}
}
