package medications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
	"medication-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// ThresholdSource entrega los umbrales de alerta del usuario.
// Se usa una interfaz para no importar settings desde aquí.
type ThresholdSource interface {
	Thresholds(ctx context.Context, userID string) (Thresholds, error)
}

func RegisterRoutes(r chi.Router, svc *Service, thresholds ThresholdSource) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))

		mr.Get("/{medicationID}/status", medicationStatusHandler(svc, thresholds))
	})
}

// createMedicationRequest es el cuerpo para registrar un medicamento. Fechas en YYYY-MM-DD, horarios HH:MM.
type createMedicationRequest struct {
	Name              string            `json:"name"`
	Dosage            string            `json:"dosage"`
	Unit              Unit              `json:"unit" enums:"comprimido,gota,ml,dose"`
	UsageCategory     Category          `json:"usage_category" enums:"continuous,period,intervals,contraceptive,prn"`
	DosesPerDay       string            `json:"doses_per_day" enums:"1x,2x,3x,4x,5x,custom"`
	IntervalDays      int               `json:"interval_days"`
	IntervalType      IntervalType      `json:"interval_type"`
	ContraceptiveType ContraceptiveType `json:"contraceptive_type"`
	Times             []string          `json:"times"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	DurationDays      int               `json:"duration_days"`
	MaxDosesPerDay    int               `json:"max_doses_per_day"`
	TotalStock        *int              `json:"total_stock"`
	CurrentStock      *int              `json:"current_stock"`
	ExpiryDate        string            `json:"expiry_date"`
	Notes             string            `json:"notes"`
	Color             string            `json:"color"`
}

type updateMedicationRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name              *string            `json:"name"`
	Dosage            *string            `json:"dosage"`
	Unit              *Unit              `json:"unit"`
	UsageCategory     *Category          `json:"usage_category"`
	DosesPerDay       *string            `json:"doses_per_day"`
	IntervalDays      *int               `json:"interval_days"`
	IntervalType      *IntervalType      `json:"interval_type"`
	ContraceptiveType *ContraceptiveType `json:"contraceptive_type"`
	Times             *[]string          `json:"times"`
	StartDate         *string            `json:"start_date"`
	EndDate           *string            `json:"end_date"` // "" o null limpia
	DurationDays      *int               `json:"duration_days"`
	MaxDosesPerDay    *int               `json:"max_doses_per_day"`
	TotalStock        *int               `json:"total_stock"`
	CurrentStock      *int               `json:"current_stock"`
	ExpiryDate        *string            `json:"expiry_date"` // "" o null limpia
	Notes             *string            `json:"notes"`
	Color             *string            `json:"color"`
}

// MedicationResponse representa un medicamento devuelto por la API.
type MedicationResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Dosage            string            `json:"dosage"`
	Unit              Unit              `json:"unit"`
	UsageCategory     Category          `json:"usage_category"`
	DosesPerDay       string            `json:"doses_per_day,omitempty"`
	IntervalDays      int               `json:"interval_days"`
	IntervalType      IntervalType      `json:"interval_type,omitempty"`
	ContraceptiveType ContraceptiveType `json:"contraceptive_type,omitempty"`
	Times             []string          `json:"times"`
	StartDate         string            `json:"start_date,omitempty"`
	EndDate           string            `json:"end_date,omitempty"`
	DurationDays      int               `json:"duration_days,omitempty"`
	MaxDosesPerDay    int               `json:"max_doses_per_day,omitempty"`
	TotalStock        int               `json:"total_stock"`
	CurrentStock      int               `json:"current_stock"`
	ExpiryDate        string            `json:"expiry_date,omitempty"`
	Notes             string            `json:"notes"`
	Color             string            `json:"color"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type statusResponse struct {
	Medication     MedicationResponse `json:"medication"`
	Date           string             `json:"date"`
	StockStatus    StockStatus        `json:"stock_status"`
	ExpiryStatus   ExpiryStatus       `json:"expiry_status"`
	DosesPerDay    float64            `json:"doses_per_day"`
	DaysOfStock    *int               `json:"days_of_stock_left"`
	DaysToExpiry   *int               `json:"days_until_expiry"`
	ProjectedStock float64            `json:"projected_stock"`
	OutOfStockOn   bool               `json:"out_of_stock_on_date"`
	ExpiredOn      bool               `json:"expired_on_date"`
}

// createMedicationHandler godoc
// @Summary Registrar medicamento
// @Description Crea un medicamento. Si faltan datos se aplican valores por defecto: categoría continuous, 1x, horario 08:00, inicio hoy, stock 30, duración 7 días para period y color de la paleta.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicationRequest true "Datos del medicamento"
// @Success 201 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		loc := svc.Location()
		start, err := dates.ParseOptionalDate(req.StartDate, loc)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := dates.ParseOptionalDate(req.EndDate, loc)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		expiry, err := dates.ParseOptionalDate(req.ExpiryDate, loc)
		if err != nil {
			http.Error(w, "expiry_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:              req.Name,
			Dosage:            req.Dosage,
			Unit:              req.Unit,
			Category:          req.UsageCategory,
			DosesToken:        req.DosesPerDay,
			IntervalDays:      req.IntervalDays,
			IntervalType:      req.IntervalType,
			ContraceptiveType: req.ContraceptiveType,
			Times:             req.Times,
			StartDate:         start,
			EndDate:           end,
			DurationDays:      req.DurationDays,
			MaxDosesPerDay:    req.MaxDosesPerDay,
			TotalStock:        req.TotalStock,
			CurrentStock:      req.CurrentStock,
			ExpiryDate:        expiry,
			Notes:             req.Notes,
			Color:             req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Lista los medicamentos del usuario autenticado, en orden de alta.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} MedicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]MedicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, ToResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} MedicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento (parcial)
// @Description Actualiza solo los campos enviados. Para reponer stock enviar current_stock. Para limpiar end_date o expiry_date enviar "" o null.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a actualizar"
// @Success 200 {object} MedicationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 500 {string} string "internal error"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updateMedicationRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		// Presencia de campos para distinguir null de "no enviado".
		var present map[string]json.RawMessage
		_ = json.NewDecoder(bytes.NewReader(body)).Decode(&present)

		in := UpdateInput{
			Name:              req.Name,
			Dosage:            req.Dosage,
			Unit:              req.Unit,
			Category:          req.UsageCategory,
			DosesToken:        req.DosesPerDay,
			IntervalDays:      req.IntervalDays,
			IntervalType:      req.IntervalType,
			ContraceptiveType: req.ContraceptiveType,
			Times:             req.Times,
			DurationDays:      req.DurationDays,
			MaxDosesPerDay:    req.MaxDosesPerDay,
			TotalStock:        req.TotalStock,
			CurrentStock:      req.CurrentStock,
			Notes:             req.Notes,
			Color:             req.Color,
		}

		loc := svc.Location()
		if req.StartDate != nil {
			d, err := dates.ParseDate(*req.StartDate, loc)
			if err != nil {
				http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.StartDate = &d
		}
		if _, ok := present["end_date"]; ok {
			if in.EndDate, err = parseClearableDate(req.EndDate, loc); err != nil {
				http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.ClearEndDate = in.EndDate == nil
		}
		if _, ok := present["expiry_date"]; ok {
			if in.ExpiryDate, err = parseClearableDate(req.ExpiryDate, loc); err != nil {
				http.Error(w, "expiry_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.ClearExpiryDate = in.ExpiryDate == nil
		}

		m, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Eliminar medicamento
// @Description Elimina el medicamento y todos sus registros de dosis en una sola transacción.
// @Tags medications
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Success 204 "sin contenido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 500 {string} string "internal error"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "medicationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// medicationStatusHandler godoc
// @Summary Estado de stock y validez
// @Description Clasifica stock (OUT_OF_STOCK, RUNNING_OUT, AVAILABLE) y validez (NO_DATE, EXPIRED, EXPIRING_SOON, VALID) con los umbrales del usuario, y proyecta el stock a la fecha indicada.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param date query string false "Fecha de proyección (YYYY-MM-DD). Por defecto hoy"
// @Success 200 {object} statusResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 500 {string} string "internal error"
// @Router /medications/{medicationID}/status [get]
func medicationStatusHandler(svc *Service, thresholds ThresholdSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date := svc.Today()
		if v := r.URL.Query().Get("date"); strings.TrimSpace(v) != "" {
			d, err := dates.ParseDate(v, svc.Location())
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			date = d
		}

		th, err := thresholds.Thresholds(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m, st, err := svc.StatusOn(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), date, th)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Medication:     ToResponse(m),
			Date:           dates.FormatDate(date),
			StockStatus:    st.Stock,
			ExpiryStatus:   st.Expiry,
			DosesPerDay:    st.DosesPerDay,
			DaysOfStock:    st.DaysLeft,
			DaysToExpiry:   st.DaysToExpiry,
			ProjectedStock: st.ProjectedStock,
			OutOfStockOn:   st.OutOfStockOn,
			ExpiredOn:      st.ExpiredOn,
		})
	}
}

func parseClearableDate(v *string, loc *time.Location) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	return dates.ParseOptionalDate(*v, loc)
}

// ToResponse se exporta para que dashboard y schedule usen el mismo formato.
func ToResponse(m Medication) MedicationResponse {
	times := m.Times
	if times == nil {
		times = []string{}
	}
	return MedicationResponse{
		ID:                m.ID,
		Name:              m.Name,
		Dosage:            m.Dosage,
		Unit:              m.Unit,
		UsageCategory:     m.Category,
		DosesPerDay:       m.DosesToken,
		IntervalDays:      m.IntervalDays,
		IntervalType:      m.IntervalType,
		ContraceptiveType: m.ContraceptiveType,
		Times:             times,
		StartDate:         dates.FormatOptionalDate(m.StartDate),
		EndDate:           dates.FormatOptionalDate(m.EndDate),
		DurationDays:      m.DurationDays,
		MaxDosesPerDay:    m.MaxDosesPerDay,
		TotalStock:        m.TotalStock,
		CurrentStock:      m.CurrentStock,
		ExpiryDate:        dates.FormatOptionalDate(m.ExpiryDate),
		Notes:             m.Notes,
		Color:             m.Color,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
