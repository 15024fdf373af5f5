package auth

// Claims representa la información extraída del token.
// UserID es el dueño de todos los datos (medicamentos, dosis, citas, configuración).
type Claims struct {
	UserID string
	Email  string
}
