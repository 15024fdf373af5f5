package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medication-tracker/internal/domain/appointments"
	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/domain/schedule"
	"medication-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
	r.Get("/alerts", alertsHandler(svc))
	r.Delete("/me/data", deleteUserDataHandler(svc))
}

type AlertResponse struct {
	MedicationID   string                `json:"medication_id"`
	MedicationName string                `json:"medication_name"`
	Color          string                `json:"color"`
	Kind           medications.AlertKind `json:"kind" enums:"out_of_stock,running_out,expired,expiring_soon"`
	Days           *int                  `json:"days,omitempty"`
	Message        string                `json:"message"`
}

type dashboardResponse struct {
	Date                string                             `json:"date"`
	Schedule            schedule.DayResponse               `json:"schedule"`
	Alerts              []AlertResponse                    `json:"alerts"`
	Upcoming            []appointments.AppointmentResponse `json:"upcoming_appointments"`
	ShowDelayDisclaimer bool                               `json:"show_delay_disclaimer"`
}

// dashboardHandler godoc
// @Summary Panel del día
// @Description Agenda de hoy con resumen, alertas de stock/validez, próximas citas y si corresponde mostrar el aviso de dosis atrasadas.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} dashboardResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ov, err := svc.Overview(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dashboardResponse{
			Date:                dates.FormatDate(ov.Date),
			Schedule:            schedule.ToDayResponse(ov.Schedule),
			Alerts:              toAlertResponses(ov.Alerts),
			Upcoming:            appointments.ToResponses(ov.Upcoming),
			ShowDelayDisclaimer: ov.ShowDelayed,
		})
	}
}

// alertsHandler godoc
// @Summary Alertas de hoy
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} AlertResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /alerts [get]
func alertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		alerts, err := svc.Alerts(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAlertResponses(alerts))
	}
}

// deleteUserDataHandler godoc
// @Summary Borrar todos mis datos
// @Description Elimina medicamentos, registros de dosis, citas y configuración del usuario.
// @Tags dashboard
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 204 {string} string "no content"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me/data [delete]
func deleteUserDataHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.DeleteUserData(r.Context(), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toAlertResponses(alerts []medications.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertResponse{
			MedicationID:   a.MedicationID,
			MedicationName: a.MedicationName,
			Color:          a.Color,
			Kind:           a.Kind,
			Days:           a.Days,
			Message:        a.Message,
		})
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
