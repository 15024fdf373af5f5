package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/doses/toggle", toggleDoseHandler(svc))

	r.Get("/schedule", dayScheduleHandler(svc))
	r.Get("/schedule/range", rangeScheduleHandler(svc))
	r.Get("/calendar", calendarHandler(svc))
}

type toggleRequest struct {
	DoseID       string `json:"dose_id"`
	MedicationID string `json:"medication_id"`
	Time         string `json:"time"` // HH:MM
	Date         string `json:"date"` // YYYY-MM-DD, opcional (hoy)
	Confirm      bool   `json:"confirm"`
}

type toggleResponse struct {
	Changed      bool                `json:"changed"`
	Created      bool                `json:"created"`
	Deleted      bool                `json:"deleted"`
	Status       doses.Status        `json:"status,omitempty"`
	Dose         *doses.DoseResponse `json:"dose,omitempty"`
	MedicationID string              `json:"medication_id,omitempty"`
	CurrentStock *int                `json:"current_stock,omitempty"`
}

// SlotResponse es un horario de la agenda. dose_id vacío indica un horario virtual.
type SlotResponse struct {
	MedicationID   string               `json:"medication_id"`
	MedicationName string               `json:"medication_name"`
	Dosage         string               `json:"dosage"`
	Unit           medications.Unit     `json:"unit"`
	Category       medications.Category `json:"usage_category"`
	Color          string               `json:"color"`
	Date           string               `json:"date"`
	Time           string               `json:"time"`
	Status         doses.Status         `json:"status"`
	DoseID         string               `json:"dose_id,omitempty"`
	Virtual        bool                 `json:"virtual"`
}

type SummaryResponse struct {
	Taken    int `json:"taken"`
	Pending  int `json:"pending"`
	Missed   int `json:"missed"`
	Total    int `json:"total"`
	Progress int `json:"progress"`
}

// DayResponse es la agenda de un día.
type DayResponse struct {
	Date    string          `json:"date"`
	Slots   []SlotResponse  `json:"slots"`
	Summary SummaryResponse `json:"summary"`
}

type calendarEntryResponse struct {
	MedicationID   string      `json:"medication_id"`
	MedicationName string      `json:"medication_name"`
	Color          string      `json:"color"`
	Times          []string    `json:"times"`
	Mode           DisplayMode `json:"mode"`
	Indicator      Indicator   `json:"indicator"`
}

type calendarDayResponse struct {
	Date    string                  `json:"date"`
	Entries []calendarEntryResponse `json:"entries"`
}

// toggleDoseHandler godoc
// @Summary Alternar dosis (tomada / pendiente)
// @Description Alterna el estado de un horario de dosis y ajusta el stock en la misma transacción. Se identifica por dose_id o por medication_id + time (+ date, por defecto hoy). Sin datos suficientes la operación no hace nada (changed=false). Marcar como tomada con stock 0 devuelve 409 salvo confirm=true.
// @Tags doses
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body toggleRequest true "Horario a alternar"
// @Success 200 {object} toggleResponse
// @Failure 400 {string} string "invalid json / date o time inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "medication out of stock"
// @Failure 500 {string} string "could not save changes, please try again"
// @Router /doses/toggle [post]
func toggleDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		date, err := dates.ParseOptionalDate(req.Date, svc.Location())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Toggle(r.Context(), claims.UserID, ToggleInput{
			DoseID:       req.DoseID,
			MedicationID: req.MedicationID,
			Time:         req.Time,
			Date:         date,
			Confirm:      req.Confirm,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := toggleResponse{
			Changed: res.Changed,
			Created: res.Created,
			Deleted: res.Deleted,
			Status:  res.Status,
		}
		if res.Changed {
			stock := res.Medication.CurrentStock
			out.MedicationID = res.Medication.ID
			out.CurrentStock = &stock
		}
		if res.Dose != nil {
			d := doses.ToResponse(*res.Dose)
			out.Dose = &d
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// dayScheduleHandler godoc
// @Summary Agenda del día
// @Description Genera los horarios de dosis de la fecha indicada con su estado (pending, taken, missed) y el resumen del día. Incluye horarios virtuales sin registro.
// @Tags schedule
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param date query string false "Fecha (YYYY-MM-DD). Por defecto hoy"
// @Success 200 {object} DayResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /schedule [get]
func dayScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date, err := dateParam(r, "date", dates.Midnight(svc.Now()), svc.Location())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		day, err := svc.Day(r.Context(), claims.UserID, date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToDayResponse(day))
	}
}

// rangeScheduleHandler godoc
// @Summary Agenda por rango
// @Description Genera la agenda de cada día entre from y to (inclusive, máximo 62 días).
// @Tags schedule
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string true "Fecha inicial (YYYY-MM-DD)"
// @Param to query string true "Fecha final (YYYY-MM-DD)"
// @Success 200 {array} DayResponse
// @Failure 400 {string} string "rango inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /schedule/range [get]
func rangeScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		from, to, err := rangeParams(r, svc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		days, err := svc.Range(r.Context(), claims.UserID, from, to)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]DayResponse, 0, len(days))
		for _, d := range days {
			out = append(out, ToDayResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// calendarHandler godoc
// @Summary Calendario
// @Description Para cada día entre from y to lista los medicamentos activos con su modo (STATUS o CONSUMPTION) e indicador: expired, out_of_stock, available, prn_dose, missed, not_taken, taken.
// @Tags schedule
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string true "Fecha inicial (YYYY-MM-DD)"
// @Param to query string true "Fecha final (YYYY-MM-DD)"
// @Success 200 {array} calendarDayResponse
// @Failure 400 {string} string "rango inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /calendar [get]
func calendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		from, to, err := rangeParams(r, svc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		days, err := svc.Calendar(r.Context(), claims.UserID, from, to)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]calendarDayResponse, 0, len(days))
		for _, d := range days {
			cd := calendarDayResponse{Date: dates.FormatDate(d.Date), Entries: make([]calendarEntryResponse, 0, len(d.Entries))}
			for _, e := range d.Entries {
				cd.Entries = append(cd.Entries, calendarEntryResponse{
					MedicationID:   e.Medication.ID,
					MedicationName: e.Medication.Name,
					Color:          e.Medication.Color,
					Times:          e.Times,
					Mode:           e.Mode,
					Indicator:      e.Indicator,
				})
			}
			out = append(out, cd)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// ToDayResponse se exporta para el panel.
func ToDayResponse(d DaySchedule) DayResponse {
	out := DayResponse{
		Date:  dates.FormatDate(d.Date),
		Slots: make([]SlotResponse, 0, len(d.Slots)),
		Summary: SummaryResponse{
			Taken:    d.Summary.Taken,
			Pending:  d.Summary.Pending,
			Missed:   d.Summary.Missed,
			Total:    d.Summary.Total,
			Progress: d.Summary.Progress,
		},
	}
	for _, sl := range d.Slots {
		sr := SlotResponse{
			MedicationID:   sl.Medication.ID,
			MedicationName: sl.Medication.Name,
			Dosage:         sl.Medication.Dosage,
			Unit:           sl.Medication.Unit,
			Category:       sl.Medication.Category,
			Color:          sl.Medication.Color,
			Date:           out.Date,
			Time:           sl.Time,
			Status:         sl.Status,
		}
		switch v := sl.Slot.(type) {
		case PersistedSlot:
			sr.DoseID = v.Dose.ID
		case VirtualSlot:
			sr.Virtual = true
		}
		out.Slots = append(out.Slots, sr)
	}
	return out
}

func dateParam(r *http.Request, name string, def time.Time, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def, nil
	}
	d, err := dates.ParseDate(v, loc)
	if err != nil {
		return time.Time{}, errors.New(name + " must be YYYY-MM-DD")
	}
	return d, nil
}

func rangeParams(r *http.Request, svc *Service) (time.Time, time.Time, error) {
	today := dates.Midnight(svc.Now())
	from, err := dateParam(r, "from", today, svc.Location())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dateParam(r, "to", dates.AddDays(from, 6), svc.Location())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutOfStock):
		http.Error(w, "medication out of stock: update current_stock or resend with confirm=true", http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, medications.ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "could not save changes, please try again", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
