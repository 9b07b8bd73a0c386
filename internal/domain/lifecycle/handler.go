package lifecycle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el motor sin persistencia: útil para simular antes de registrar.
func RegisterRoutes(r chi.Router, e *Engine) {
	r.Route("/engine", func(er chi.Router) {
		er.Post("/classify", classifyHandler(e))
		er.Post("/withdrawal", withdrawalHandler(e))
		er.Post("/pregnancy-check", pregnancyCheckHandler(e))
	})
	r.Get("/policy", policyHandler(e))
}

type classifyRequest struct {
	Species string `json:"species" enums:"cattle,goat,sheep"`
	Sex     string `json:"sex" enums:"male,female"`
	// Uno de los dos: edad en meses o fecha de nacimiento (YYYY-MM-DD).
	AgeMonths   *int    `json:"age_months"`
	DateOfBirth *string `json:"date_of_birth"`
	HasBred     bool    `json:"has_bred"`
	IsNewborn   bool    `json:"is_newborn"`
	Castrated   bool    `json:"castrated"`
}

type classifyResponse struct {
	Species   Species `json:"species"`
	Sex       Sex     `json:"sex"`
	AgeMonths int     `json:"age_months"`
	Category  string  `json:"category"`
	Juvenile  bool    `json:"juvenile"`
}

type withdrawalRequest struct {
	Type           string `json:"type" enums:"VACCINE,VITAMINS,ANTIBIOTICS,ANTI_INFLAMMATORY,DEWORMER"`
	AdministeredAt string `json:"administered_at"` // YYYY-MM-DD
}

type withdrawalResponse struct {
	Withdrawal
	InWithdrawal bool            `json:"in_withdrawal"`
	Status       *ScheduleStatus `json:"next_due_status,omitempty"`
	Checkups     bool            `json:"checkups"`
}

type pregnancyCheckRequest struct {
	BreedingDate string `json:"breeding_date"` // YYYY-MM-DD
}

type pregnancyCheckResponse struct {
	PregnancyCheck
	Status ScheduleStatus `json:"status"`
}

// classifyHandler godoc
// @Summary Clasificar
// @Description Calcula la categoría para especie, sexo, edad (o fecha de nacimiento) e historial de servicio.
// @Tags engine
// @Accept json
// @Produce json
// @Param payload body classifyRequest true "Datos a clasificar"
// @Success 200 {object} classifyResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /engine/classify [post]
func classifyHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		species, err := ParseSpecies(req.Species)
		if err != nil {
			http.Error(w, "species must be cattle, goat or sheep", http.StatusBadRequest)
			return
		}
		sex, err := ParseSex(req.Sex)
		if err != nil {
			http.Error(w, "sex must be male or female", http.StatusBadRequest)
			return
		}

		var age int
		switch {
		case req.DateOfBirth != nil:
			dob, err := time.Parse(time.DateOnly, strings.TrimSpace(*req.DateOfBirth))
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			age, err = AgeInMonths(dob, e.Now())
			if err != nil {
				writeError(w, err)
				return
			}
		case req.AgeMonths != nil:
			age = *req.AgeMonths
		default:
			http.Error(w, "age_months or date_of_birth required", http.StatusBadRequest)
			return
		}

		cat, err := e.Classify(species, sex, age, req.HasBred, req.IsNewborn)
		if err != nil {
			writeError(w, err)
			return
		}
		if req.Castrated {
			if cat, err = Castrate(cat); err != nil {
				writeError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, classifyResponse{
			Species:   species,
			Sex:       sex,
			AgeMonths: age,
			Category:  cat.String(),
			Juvenile:  cat.IsJuvenile(),
		})
	}
}

// withdrawalHandler godoc
// @Summary Calcular retiro
// @Description Fin de retiro y próxima dosis propuesta para un tipo y fecha de administración.
// @Tags engine
// @Accept json
// @Produce json
// @Param payload body withdrawalRequest true "Tipo y fecha de administración"
// @Success 200 {object} withdrawalResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /engine/withdrawal [post]
func withdrawalHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req withdrawalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		t, err := ParseTreatmentType(req.Type)
		if err != nil {
			http.Error(w, "unknown treatment type", http.StatusBadRequest)
			return
		}
		on, err := time.Parse(time.DateOnly, strings.TrimSpace(req.AdministeredAt))
		if err != nil {
			http.Error(w, "administered_at must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		wd, err := e.ComputeWithdrawal(t, on)
		if err != nil {
			writeError(w, err)
			return
		}
		now := e.Now()
		resp := withdrawalResponse{
			Withdrawal:   wd,
			InWithdrawal: wd.Active(now),
			Checkups:     e.HasCheckups(t),
		}
		if wd.AutoNextDue != nil {
			st, err := e.RoutineStatus(*wd.AutoNextDue, now)
			if err != nil {
				writeError(w, err)
				return
			}
			resp.Status = &st
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// pregnancyCheckHandler godoc
// @Summary Ventana de tacto
// @Description Fecha de tacto (servicio + 3 meses) y su estado hoy.
// @Tags engine
// @Accept json
// @Produce json
// @Param payload body pregnancyCheckRequest true "Fecha de servicio"
// @Success 200 {object} pregnancyCheckResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /engine/pregnancy-check [post]
func pregnancyCheckHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pregnancyCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		on, err := time.Parse(time.DateOnly, strings.TrimSpace(req.BreedingDate))
		if err != nil {
			http.Error(w, "breeding_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		pc, err := e.PregnancyCheckWindow(on)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pregnancyCheckResponse{
			PregnancyCheck: pc,
			Status:         e.PregnancyCheckStatus(pc, e.Now()),
		})
	}
}

// policyHandler godoc
// @Summary Política vigente
// @Description Cortes de edad, días de retiro, intervalos y catálogo de razas en uso.
// @Tags engine
// @Produce json
// @Success 200 {object} Policy
// @Router /policy [get]
func policyHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, e.Policy())
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutOfOrder):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
