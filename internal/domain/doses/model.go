package doses

import "time"

// Status es el estado de una dosis registrada.
// @Enum pending, taken, missed
type Status string

const (
	StatusPending Status = "pending"
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
)

// DoseEvent es el registro persistido de una interacción con un horario de dosis.
// Los horarios sin registro son virtuales y no se guardan hasta el primer toggle.
type DoseEvent struct {
	ID           string
	UserID       string
	MedicationID string

	Date time.Time // fecha calendario (medianoche)
	Time string    // HH:MM

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter filtra registros por medicamento y rango de fechas (inclusivo).
type ListFilter struct {
	MedicationID string
	From         *time.Time
	To           *time.Time
}
