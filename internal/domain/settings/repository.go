package settings

import "context"

// Repository persiste la configuración por usuario.
// Get devuelve ErrNotFound si el usuario nunca guardó cambios.
type Repository interface {
	Get(ctx context.Context, userID string) (AppSettings, error)
	Save(ctx context.Context, s AppSettings) error
	Delete(ctx context.Context, userID string) error
}
