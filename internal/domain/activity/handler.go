package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// AnimalLookup confirma que el animal existe (evita importar el módulo animals).
type AnimalLookup func(ctx context.Context, animalID string) error

func RegisterRoutes(r chi.Router, svc *Service, lookup AnimalLookup) {
	r.Get("/animals/{animalID}/activity", listActivityHandler(svc, lookup))
}

// entryResponse representa una entrada del historial devuelta por la API.
type entryResponse struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animal_id"`
	Type       EntryType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	ActorID    string    `json:"actor_id"`
	RefID      string    `json:"ref_id,omitempty"`
}

// listActivityHandler godoc
// @Summary Historial de un animal
// @Description Lista el historial (append-only) del animal, del más reciente al más antiguo. Permite filtrar por tipos, rango de fechas y texto.
// @Tags activity
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param limit query int false "Máximo de entradas (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: TREATMENT_LOGGED,CHECKUP_RECORDED)"
// @Param from query string false "occurred_at mínimo (RFC3339)"
// @Param to query string false "occurred_at máximo (RFC3339)"
// @Param q query string false "Texto libre en título/notas"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/activity [get]
func listActivityHandler(svc *Service, lookup AnimalLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		if lookup != nil {
			if err := lookup(r.Context(), animalID); err != nil {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), animalID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=TREATMENT_LOGGED,CHECKUP_RECORDED
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]EntryType, 0, len(parts))
		for _, p := range parts {
			t := EntryType(strings.ToUpper(strings.TrimSpace(p)))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown activity type " + string(t))
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	if v := strings.TrimSpace(r.URL.Query().Get("q")); v != "" {
		filter.Query = v
	}

	return filter, nil
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		AnimalID:   e.AnimalID,
		Type:       e.Type,
		OccurredAt: e.OccurredAt,
		RecordedAt: e.RecordedAt,
		Title:      e.Title,
		Notes:      e.Notes,
		ActorID:    e.ActorID,
		RefID:      e.RefID,
	}
}

// writeJSON está duplicado en cada módulo a propósito (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
