package reminders

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/lifecycle"

	"github.com/go-chi/chi/v5"
)

const dateLayout = time.DateOnly

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reminders", listRemindersHandler(svc))
}

type reminderResponse struct {
	AnimalID  string                   `json:"animal_id"`
	AnimalTag string                   `json:"animal_tag"`
	Species   lifecycle.Species        `json:"species"`
	Kind      Kind                     `json:"kind"`
	Title     string                   `json:"title"`
	DueDate   string                   `json:"due_date"`
	Status    lifecycle.ScheduleStatus `json:"status"`
	RefID     string                   `json:"ref_id"`
}

// listRemindersHandler godoc
// @Summary Pendientes del rodeo
// @Description Próximas dosis (banda de 30 días), chequeos abiertos y tactos (banda de 7 días) que están por vencer o vencidos.
// @Tags reminders
// @Produce json
// @Param date query string false "Fecha de referencia YYYY-MM-DD (por defecto hoy)"
// @Param kind query string false "routine_treatment | checkup | pregnancy_check"
// @Param status query string false "due_soon | overdue"
// @Success 200 {array} reminderResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 500 {string} string "internal error"
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		now := svc.Today()
		if v := strings.TrimSpace(q.Get("date")); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			now = d
		}
		kind := Kind(strings.TrimSpace(q.Get("kind")))
		switch kind {
		case "", KindRoutineTreatment, KindCheckup, KindPregnancyCheck:
		default:
			http.Error(w, "unknown kind", http.StatusBadRequest)
			return
		}
		status := lifecycle.ScheduleStatus(strings.TrimSpace(q.Get("status")))
		if status != "" && !status.NeedsAttention() {
			http.Error(w, "status must be due_soon or overdue", http.StatusBadRequest)
			return
		}

		items, err := svc.Due(r.Context(), now)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, it := range items {
			if kind != "" && it.Kind != kind {
				continue
			}
			if status != "" && it.Status != status {
				continue
			}
			out = append(out, reminderResponse{
				AnimalID:  it.AnimalID,
				AnimalTag: it.AnimalTag,
				Species:   it.Species,
				Kind:      it.Kind,
				Title:     it.Title,
				DueDate:   it.DueDate.Format(dateLayout),
				Status:    it.Status,
				RefID:     it.RefID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
