package appointments

import (
	"time"

	"medication-tracker/internal/domain/dates"
)

// Type define el tipo de cita.
// @Enum Consulta, Exame
type Type string

const (
	TypeConsultation Type = "Consulta"
	TypeExam         Type = "Exame"
)

// Appointment representa una consulta o examen agendado.
type Appointment struct {
	ID     string
	UserID string

	Type      Type
	Doctor    string
	Specialty string
	Location  string
	Notes     string

	Date time.Time // fecha calendario
	Time string    // HH:MM

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Before ordena por (fecha, hora) ascendente.
func (a Appointment) Before(b Appointment) bool {
	if d := dates.DaysBetween(b.Date, a.Date); d != 0 {
		return d < 0
	}
	return a.Time < b.Time
}
