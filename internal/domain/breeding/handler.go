package breeding

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
	r.Post("/breeding", recordBreedingHandler(svc))
	r.Get("/animals/{animalID}/breeding", listBreedingHandler(svc))
}

type recordBreedingRequest struct {
	DamID        string `json:"dam_id"`
	SireID       string `json:"sire_id"`
	BreedingDate string `json:"breeding_date"` // YYYY-MM-DD
	Method       string `json:"method" enums:"natural,artificial"`
	Notes        string `json:"notes"`
}

type breedingResponse struct {
	ID             string                   `json:"id"`
	DamID          string                   `json:"dam_id"`
	SireID         string                   `json:"sire_id,omitempty"`
	Species        lifecycle.Species        `json:"species"`
	BreedingDate   string                   `json:"breeding_date"`
	Method         Method                   `json:"method"`
	CheckDueDate   string                   `json:"pregnancy_check_due"`
	CheckDueSoonOn string                   `json:"pregnancy_check_due_soon_from"`
	Status         lifecycle.ScheduleStatus `json:"pregnancy_check_status"`
	Notes          string                   `json:"notes"`
	RecordedAt     time.Time                `json:"recorded_at"`
	RecordedBy     string                   `json:"recorded_by"`
}

// recordBreedingHandler godoc
// @Summary Registrar servicio
// @Description Registra un servicio. La madre debe ser hembra; el padre (opcional) macho de la misma especie. Marca a la madre como servida y calcula la fecha de tacto (servicio + 3 meses).
// @Tags breeding
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Quién registra (para el historial)"
// @Param payload body recordBreedingRequest true "Servicio; breeding_date en formato YYYY-MM-DD"
// @Success 201 {object} breedingResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 409 {string} string "servicio anterior al nacimiento"
// @Router /breeding [post]
func recordBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordBreedingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		on, err := time.Parse(dateLayout, strings.TrimSpace(req.BreedingDate))
		if err != nil {
			http.Error(w, "breeding_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Record(r.Context(), middleware.ActorID(r.Context()), RecordInput{
			DamID:        req.DamID,
			SireID:       req.SireID,
			BreedingDate: on,
			Method:       req.Method,
			Notes:        req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBreedingResponse(v))
	}
}

// listBreedingHandler godoc
// @Summary Servicios del animal
// @Description Servicios donde el animal es madre o padre, con el estado del tacto calculado hoy.
// @Tags breeding
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} breedingResponse
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/breeding [get]
func listBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]breedingResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toBreedingResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toBreedingResponse(v View) breedingResponse {
	rec := v.Record
	return breedingResponse{
		ID:             rec.ID,
		DamID:          rec.DamID,
		SireID:         rec.SireID,
		Species:        rec.Species,
		BreedingDate:   rec.BreedingDate.Format(dateLayout),
		Method:         rec.Method,
		CheckDueDate:   v.Check.CheckDueDate.Format(dateLayout),
		CheckDueSoonOn: v.Check.DueSoonFrom.Format(dateLayout),
		Status:         v.Status,
		Notes:          rec.Notes,
		RecordedAt:     rec.RecordedAt,
		RecordedBy:     rec.RecordedBy,
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
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
