package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medication-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/settings", getSettingsHandler(svc))
	r.Patch("/settings", updateSettingsHandler(svc))
	r.Post("/settings/disclaimer/dismiss", dismissDisclaimerHandler(svc))
}

type updateSettingsRequest struct {
	ThresholdExpiring   *int  `json:"threshold_expiring"`
	ThresholdRunningOut *int  `json:"threshold_running_out"`
	ShowDelayDisclaimer *bool `json:"show_delay_disclaimer"`
}

type settingsResponse struct {
	ThresholdExpiring   int        `json:"threshold_expiring"`
	ThresholdRunningOut int        `json:"threshold_running_out"`
	ShowDelayDisclaimer bool       `json:"show_delay_disclaimer"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// getSettingsHandler godoc
// @Summary Obtener configuración
// @Description Devuelve los umbrales de alerta y el aviso de atraso. Si nunca se guardó, devuelve los valores por defecto (3, 3, true).
// @Tags settings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} settingsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /settings [get]
func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cfg, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(cfg))
	}
}

// updateSettingsHandler godoc
// @Summary Actualizar configuración
// @Description Actualiza solo los campos enviados y los persiste.
// @Tags settings
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body updateSettingsRequest true "Campos a actualizar"
// @Success 200 {object} settingsResponse
// @Failure 400 {string} string "invalid json / umbrales fuera de rango"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /settings [patch]
func updateSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		cfg, err := svc.Update(r.Context(), claims.UserID, UpdateInput{
			ThresholdExpiring:   req.ThresholdExpiring,
			ThresholdRunningOut: req.ThresholdRunningOut,
			ShowDelayDisclaimer: req.ShowDelayDisclaimer,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(cfg))
	}
}

// dismissDisclaimerHandler godoc
// @Summary Ocultar aviso de atraso
// @Tags settings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} settingsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /settings/disclaimer/dismiss [post]
func dismissDisclaimerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cfg, err := svc.DismissDisclaimer(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(cfg))
	}
}

func toSettingsResponse(s AppSettings) settingsResponse {
	out := settingsResponse{
		ThresholdExpiring:   s.ThresholdExpiring,
		ThresholdRunningOut: s.ThresholdRunningOut,
		ShowDelayDisclaimer: s.ShowDelayDisclaimer,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
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
