package doses

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, loc *time.Location) {
	r.Get("/doses", listDosesHandler(svc, loc))
}

// DoseResponse representa un registro de dosis devuelto por la API.
type DoseResponse struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medication_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse se exporta para que schedule reutilice el mismo formato.
func ToResponse(d DoseEvent) DoseResponse {
	return DoseResponse{
		ID:           d.ID,
		MedicationID: d.MedicationID,
		Date:         dates.FormatDate(d.Date),
		Time:         d.Time,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// listDosesHandler godoc
// @Summary Listar registros de dosis
// @Description Devuelve los registros de dosis persistidos del usuario. Los horarios virtuales (sin interacción) no aparecen aquí; ver /schedule.
// @Tags doses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medication_id query string false "Filtrar por medicamento"
// @Param date query string false "Filtrar por fecha (YYYY-MM-DD)"
// @Success 200 {array} DoseResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /doses [get]
func listDosesHandler(svc *Service, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter := ListFilter{MedicationID: strings.TrimSpace(r.URL.Query().Get("medication_id"))}
		if v := r.URL.Query().Get("date"); strings.TrimSpace(v) != "" {
			d, err := dates.ParseDate(v, loc)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			filter.From = &d
			filter.To = &d
		}

		items, err := svc.List(r.Context(), claims.UserID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]DoseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, ToResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
