package settings

import "time"

// AppSettings son las preferencias del usuario para alertas y avisos.
type AppSettings struct {
	UserID string

	ThresholdExpiring   int // días antes del vencimiento
	ThresholdRunningOut int // días de stock restantes
	ShowDelayDisclaimer bool

	UpdatedAt time.Time
}

// Defaults devuelve la configuración inicial de un usuario.
func Defaults(userID string) AppSettings {
	return AppSettings{
		UserID:              userID,
		ThresholdExpiring:   3,
		ThresholdRunningOut: 3,
		ShowDelayDisclaimer: true,
	}
}
