package medications

import (
	"fmt"
	"time"

	"medication-tracker/internal/domain/dates"
)

type StockStatus string

const (
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
	StockRunningOut StockStatus = "RUNNING_OUT"
	StockAvailable  StockStatus = "AVAILABLE"
)

type ExpiryStatus string

const (
	ExpiryNoDate       ExpiryStatus = "NO_DATE"
	ExpiryExpired      ExpiryStatus = "EXPIRED"
	ExpiryExpiringSoon ExpiryStatus = "EXPIRING_SOON"
	ExpiryValid        ExpiryStatus = "VALID"
)

// Thresholds son los umbrales en días para las alertas.
type Thresholds struct {
	Expiring   int
	RunningOut int
}

// DaysUntilExpiry cuenta días calendario hasta el vencimiento (negativo si ya venció).
func DaysUntilExpiry(expiry *time.Time, ref time.Time) *int {
	if expiry == nil {
		return nil
	}
	d := dates.DaysBetween(ref, *expiry)
	return &d
}

// IsExpired: el medicamento es válido hasta el final del día de vencimiento.
func IsExpired(expiry *time.Time, ref time.Time) bool {
	if expiry == nil {
		return false
	}
	return dates.IsPast(*expiry, ref)
}

func IsExpiringSoon(expiry *time.Time, ref time.Time, thresholdDays int) bool {
	d := DaysUntilExpiry(expiry, ref)
	if d == nil {
		return false
	}
	return *d >= 0 && *d <= thresholdDays
}

func HasStock(current int) bool {
	return current > 0
}

func IsStockRunningOut(daysLeft *int, thresholdDays int) bool {
	return daysLeft != nil && *daysLeft <= thresholdDays
}

// StockStatusOf clasifica el stock: OUT_OF_STOCK > RUNNING_OUT > AVAILABLE.
func StockStatusOf(m Medication, daysLeft *int, thresholdDays int) StockStatus {
	if !HasStock(m.CurrentStock) {
		return StockOutOfStock
	}
	if IsStockRunningOut(daysLeft, thresholdDays) {
		return StockRunningOut
	}
	return StockAvailable
}

// ExpiryStatusOf clasifica la validez: NO_DATE > EXPIRED > EXPIRING_SOON > VALID.
func ExpiryStatusOf(m Medication, ref time.Time, thresholdDays int) ExpiryStatus {
	if m.ExpiryDate == nil {
		return ExpiryNoDate
	}
	if IsExpired(m.ExpiryDate, ref) {
		return ExpiryExpired
	}
	if IsExpiringSoon(m.ExpiryDate, ref, thresholdDays) {
		return ExpiryExpiringSoon
	}
	return ExpiryValid
}

// Status resume la situación de un medicamento en una fecha.
type Status struct {
	Stock          StockStatus
	Expiry         ExpiryStatus
	DaysLeft       *int
	DaysToExpiry   *int
	DosesPerDay    float64
	ProjectedStock float64
	OutOfStockOn   bool
	ExpiredOn      bool
}

// StatusOn evalúa stock y validez de m para date, tomando today como referencia de proyección.
func StatusOn(m Medication, date, today time.Time, th Thresholds) Status {
	daysLeft := DaysOfStockLeft(m)
	return Status{
		Stock:          StockStatusOf(m, daysLeft, th.RunningOut),
		Expiry:         ExpiryStatusOf(m, today, th.Expiring),
		DaysLeft:       daysLeft,
		DaysToExpiry:   DaysUntilExpiry(m.ExpiryDate, today),
		DosesPerDay:    DosesPerDay(m),
		ProjectedStock: ProjectStockOnDate(m, date, today),
		OutOfStockOn:   IsOutOfStockOnDate(m, date, today),
		ExpiredOn:      IsExpired(m.ExpiryDate, date),
	}
}

type AlertKind string

const (
	AlertOutOfStock   AlertKind = "out_of_stock"
	AlertRunningOut   AlertKind = "running_out"
	AlertExpired      AlertKind = "expired"
	AlertExpiringSoon AlertKind = "expiring_soon"
)

// Alert es un aviso de stock o validez para el panel.
type Alert struct {
	MedicationID   string
	MedicationName string
	Color          string
	Kind           AlertKind
	Days           *int
	Message        string
}

// Alerts genera como máximo una alerta de stock y una de validez por medicamento.
func Alerts(m Medication, today time.Time, th Thresholds) []Alert {
	out := make([]Alert, 0, 2)
	base := Alert{MedicationID: m.ID, MedicationName: m.Name, Color: m.Color}

	daysLeft := DaysOfStockLeft(m)
	switch StockStatusOf(m, daysLeft, th.RunningOut) {
	case StockOutOfStock:
		a := base
		a.Kind = AlertOutOfStock
		a.Message = "sin stock"
		out = append(out, a)
	case StockRunningOut:
		a := base
		a.Kind = AlertRunningOut
		a.Days = daysLeft
		a.Message = fmt.Sprintf("stock para %d día(s)", *daysLeft)
		out = append(out, a)
	}

	days := DaysUntilExpiry(m.ExpiryDate, today)
	switch ExpiryStatusOf(m, today, th.Expiring) {
	case ExpiryExpired:
		a := base
		a.Kind = AlertExpired
		a.Days = days
		a.Message = "vencido"
		out = append(out, a)
	case ExpiryExpiringSoon:
		a := base
		a.Kind = AlertExpiringSoon
		a.Days = days
		if *days == 0 {
			a.Message = "vence hoy"
		} else {
			a.Message = fmt.Sprintf("vence en %d día(s)", *days)
		}
		out = append(out, a)
	}

	return out
}
