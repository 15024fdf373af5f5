package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, userID, id string) (Appointment, error)
	// ListByUser devuelve las citas ordenadas por (fecha, hora) ascendente.
	ListByUser(ctx context.Context, userID string) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
