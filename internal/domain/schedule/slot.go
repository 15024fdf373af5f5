package schedule

import (
	"time"

	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

// Slot es un horario de dosis: persistido (ya tuvo interacción) o virtual (solo calculado).
type Slot interface {
	isSlot()
}

// PersistedSlot envuelve un registro existente.
type PersistedSlot struct {
	Dose doses.DoseEvent
}

// VirtualSlot es un horario sin registro; se persiste recién en el primer toggle.
type VirtualSlot struct {
	MedicationID string
	Time         string
	Date         time.Time
}

func (PersistedSlot) isSlot() {}
func (VirtualSlot) isSlot()   {}

// DoseSlot es un horario ya resuelto con su estado efectivo.
type DoseSlot struct {
	Slot       Slot
	Medication medications.Medication
	Time       string
	Status     doses.Status
}

// Record devuelve el registro persistido, si existe.
func (d DoseSlot) Record() (doses.DoseEvent, bool) {
	if p, ok := d.Slot.(PersistedSlot); ok {
		return p.Dose, true
	}
	return doses.DoseEvent{}, false
}

// Summary cuenta los estados del día.
type Summary struct {
	Taken    int
	Pending  int
	Missed   int
	Total    int
	Progress int // % tomado, 0..100
}

type DaySchedule struct {
	Date    time.Time
	Slots   []DoseSlot
	Summary Summary
}

func summarize(slots []DoseSlot) Summary {
	var s Summary
	for _, sl := range slots {
		switch sl.Status {
		case doses.StatusTaken:
			s.Taken++
		case doses.StatusMissed:
			s.Missed++
		default:
			s.Pending++
		}
	}
	s.Total = len(slots)
	if s.Total > 0 {
		s.Progress = s.Taken * 100 / s.Total
	}
	return s
}
