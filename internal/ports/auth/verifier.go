package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken lo devuelven los verificadores cuando el token no es aceptable.
var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
