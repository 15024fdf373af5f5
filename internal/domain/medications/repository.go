package medications

import (
	"context"
	"time"

	"medication-tracker/internal/domain/doses"
)

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, userID, id string) (Medication, error)
	ListByUser(ctx context.Context, userID string) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	UpdateStock(ctx context.Context, userID, id string, stock int, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	// ListUserIDs devuelve los usuarios con al menos un medicamento.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// TxRepos son repositorios que escriben dentro de la misma unidad de trabajo.
type TxRepos struct {
	Medications Repository
	Doses       doses.Repository
}

// UnitOfWork ejecuta fn de forma atómica: si fn devuelve error no queda ninguna escritura aplicada.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx TxRepos) error) error
}
