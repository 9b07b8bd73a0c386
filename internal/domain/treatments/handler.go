package treatments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = time.DateOnly

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/treatments", func(tr chi.Router) {
		tr.Post("/", logTreatmentHandler(svc))
		tr.Get("/", listTreatmentsHandler(svc))
		tr.Get("/{treatmentID}", getTreatmentHandler(svc))
		tr.Post("/{treatmentID}/checkups", recordCheckupHandler(svc))
	})
}

type logTreatmentRequest struct {
	Type              string  `json:"type" enums:"VACCINE,VITAMINS,ANTIBIOTICS,ANTI_INFLAMMATORY,DEWORMER"`
	AdministeredAt    string  `json:"administered_at"` // YYYY-MM-DD
	Product           string  `json:"product"`
	Dose              string  `json:"dose"`
	NextDueDate       *string `json:"next_due_date"`       // YYYY-MM-DD, opcional
	WithdrawalEndDate *string `json:"withdrawal_end_date"` // YYYY-MM-DD, opcional (se valida)
	Notes             string  `json:"notes"`
}

type recordCheckupRequest struct {
	CheckedAt string `json:"checked_at"` // YYYY-MM-DD
	Recovered bool   `json:"recovered"`
	Notes     string `json:"notes"`
}

type checkupResponse struct {
	ID         string    `json:"id"`
	CheckedAt  string    `json:"checked_at"`
	Recovered  bool      `json:"recovered"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recorded_at"`
	RecordedBy string    `json:"recorded_by"`
}

// treatmentResponse incluye los campos derivados (estado, retiro, próximo chequeo).
type treatmentResponse struct {
	ID                string                    `json:"id"`
	AnimalID          string                    `json:"animal_id"`
	Type              lifecycle.TreatmentType   `json:"type"`
	TypeLabel         string                    `json:"type_label"`
	AdministeredAt    string                    `json:"administered_at"`
	Product           string                    `json:"product"`
	Dose              string                    `json:"dose"`
	NextDueDate       *string                   `json:"next_due_date,omitempty"`
	NextDueManual     bool                      `json:"next_due_manual"`
	WithdrawalEndDate string                    `json:"withdrawal_end_date"`
	InWithdrawal      bool                      `json:"in_withdrawal"`
	Status            *lifecycle.ScheduleStatus `json:"status,omitempty"`
	NextCheckup       *string                   `json:"next_checkup,omitempty"`
	Recovered         bool                      `json:"recovered"`
	Checkups          []checkupResponse         `json:"checkups"`
	Notes             string                    `json:"notes"`
	RecordedAt        time.Time                 `json:"recorded_at"`
	RecordedBy        string                    `json:"recorded_by"`
}

// logTreatmentHandler godoc
// @Summary Registrar tratamiento
// @Description Registra una administración. El fin de retiro se calcula según el tipo; si se envía withdrawal_end_date debe coincidir. Vacunas, vitaminas y desparasitarios proponen la próxima dosis.
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Quién registra (para el historial)"
// @Param animalID path string true "ID del animal"
// @Param payload body logTreatmentRequest true "Tratamiento; fechas en formato YYYY-MM-DD"
// @Success 201 {object} treatmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "fecha anterior al nacimiento"
// @Router /animals/{animalID}/treatments [post]
func logTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		administered, err := parseDate(req.AdministeredAt)
		if err != nil {
			http.Error(w, "administered_at must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		in := LogInput{
			Type:           req.Type,
			AdministeredAt: administered,
			Product:        req.Product,
			Dose:           req.Dose,
			Notes:          req.Notes,
		}
		if req.NextDueDate != nil {
			d, err := parseDate(*req.NextDueDate)
			if err != nil {
				http.Error(w, "next_due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.NextDueDate = &d
		}
		if req.WithdrawalEndDate != nil {
			d, err := parseDate(*req.WithdrawalEndDate)
			if err != nil {
				http.Error(w, "withdrawal_end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.WithdrawalEndDate = &d
		}

		v, err := svc.Log(r.Context(), chi.URLParam(r, "animalID"), middleware.ActorID(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTreatmentResponse(v))
	}
}

// listTreatmentsHandler godoc
// @Summary Tratamientos del animal
// @Description Lista los tratamientos (más reciente primero) con estado de próxima dosis, retiro vigente y próximo chequeo calculados hoy.
// @Tags treatments
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} treatmentResponse
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/treatments [get]
func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]treatmentResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toTreatmentResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getTreatmentHandler godoc
// @Summary Detalle de tratamiento
// @Tags treatments
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 200 {object} treatmentResponse
// @Failure 404 {string} string "not found"
// @Router /animals/{animalID}/treatments/{treatmentID} [get]
func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"), chi.URLParam(r, "treatmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTreatmentResponse(v))
	}
}

// recordCheckupHandler godoc
// @Summary Registrar chequeo
// @Description Solo antibióticos y antiinflamatorios. El próximo chequeo es el último + 3 días hasta que se registra la recuperación.
// @Tags treatments
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Quién registra (para el historial)"
// @Param animalID path string true "ID del animal"
// @Param treatmentID path string true "ID del tratamiento"
// @Param payload body recordCheckupRequest true "Chequeo; checked_at en formato YYYY-MM-DD"
// @Success 201 {object} treatmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "chequeo fuera de orden"
// @Router /animals/{animalID}/treatments/{treatmentID}/checkups [post]
func recordCheckupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordCheckupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		on, err := parseDate(req.CheckedAt)
		if err != nil {
			http.Error(w, "checked_at must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.RecordCheckup(r.Context(), chi.URLParam(r, "animalID"), chi.URLParam(r, "treatmentID"), middleware.ActorID(r.Context()), CheckupInput{
			CheckedAt: on,
			Recovered: req.Recovered,
			Notes:     req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTreatmentResponse(v))
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toTreatmentResponse(v View) treatmentResponse {
	t := v.Treatment
	checkups := make([]checkupResponse, 0, len(v.Checkups))
	for _, c := range v.Checkups {
		checkups = append(checkups, checkupResponse{
			ID:         c.ID,
			CheckedAt:  c.CheckedAt.Format(dateLayout),
			Recovered:  c.Recovered,
			Notes:      c.Notes,
			RecordedAt: c.RecordedAt,
			RecordedBy: c.RecordedBy,
		})
	}
	return treatmentResponse{
		ID:                t.ID,
		AnimalID:          t.AnimalID,
		Type:              t.Type,
		TypeLabel:         t.Type.Label(),
		AdministeredAt:    t.AdministeredAt.Format(dateLayout),
		Product:           t.Product,
		Dose:              t.Dose,
		NextDueDate:       formatDate(t.NextDueDate),
		NextDueManual:     t.NextDueManual,
		WithdrawalEndDate: t.WithdrawalEndDate.Format(dateLayout),
		InWithdrawal:      v.InWithdrawal,
		Status:            v.Status,
		NextCheckup:       formatDate(v.NextCheckup),
		Recovered:         v.Recovered,
		Checkups:          checkups,
		Notes:             t.Notes,
		RecordedAt:        t.RecordedAt,
		RecordedBy:        t.RecordedBy,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutOfOrder):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, animals.ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "treatment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
