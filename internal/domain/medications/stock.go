package medications

import (
	"math"
	"time"

	"medication-tracker/internal/domain/dates"
)

// DosesPerDay devuelve el consumo medio diario según la categoría.
func DosesPerDay(m Medication) float64 {
	return rulesFor(m.Category).rate(m)
}

// DaysOfStockLeft devuelve los días enteros de cobertura del stock actual.
// nil si el medicamento no tiene consumo fijo (prn o tasa <= 0).
func DaysOfStockLeft(m Medication) *int {
	rate := DosesPerDay(m)
	if m.IsPRN() || rate <= 0 {
		return nil
	}
	days := 0
	if m.CurrentStock > 0 {
		days = int(math.Floor(float64(m.CurrentStock) / rate))
	}
	return &days
}

// ProjectStockOnDate estima el stock en target. Para hoy o fechas pasadas devuelve el stock actual.
func ProjectStockOnDate(m Medication, target, today time.Time) float64 {
	ahead := dates.DaysBetween(today, target)
	if ahead <= 0 {
		return float64(m.CurrentStock)
	}
	projected := float64(m.CurrentStock) - float64(ahead)*DosesPerDay(m)
	return math.Max(0, projected)
}

func IsOutOfStockOnDate(m Medication, target, today time.Time) bool {
	return ProjectStockOnDate(m, target, today) <= 0
}

// UpdatedStock aplica el efecto de un cambio de estado de dosis sobre el stock.
// taken consume una unidad y cualquier otro estado la devuelve. Nunca baja de 0.
func UpdatedStock(current int, taken bool) int {
	if taken {
		current--
	} else {
		current++
	}
	if current < 0 {
		return 0
	}
	return current
}
