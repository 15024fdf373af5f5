package doses

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d DoseEvent) error
	GetByID(ctx context.Context, userID, id string) (DoseEvent, error)
	// FindSlot busca el registro de (medicationID, date, clock).
	FindSlot(ctx context.Context, userID, medicationID string, date time.Time, clock string) (DoseEvent, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]DoseEvent, error)
	UpdateStatus(ctx context.Context, userID, id string, status Status, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByMedication(ctx context.Context, userID, medicationID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
