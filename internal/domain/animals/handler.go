package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = time.DateOnly

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))

		// Perfil con edad y categoría calculadas al leer
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
	})
}

type createAnimalRequest struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Species     string `json:"species" enums:"cattle,goat,sheep"`
	Breed       string `json:"breed"`
	Sex         string `json:"sex" enums:"male,female"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	HasBred     bool   `json:"has_bred"`
	IsNewborn   bool   `json:"is_newborn"`
	Castrated   bool   `json:"castrated"`
	DamID       string `json:"dam_id"`
	SireID      string `json:"sire_id"`
	Notes       string `json:"notes"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Tag         *string `json:"tag"`
	Name        *string `json:"name"`
	Breed       *string `json:"breed"`
	DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
	HasBred     *bool   `json:"has_bred"`
	IsNewborn   *bool   `json:"is_newborn"`
	Castrated   *bool   `json:"castrated"`
	Notes       *string `json:"notes"`
}

// animalResponse es la ficha del animal con su categoría calculada.
type animalResponse struct {
	ID          string            `json:"id"`
	Tag         string            `json:"tag"`
	Name        string            `json:"name"`
	Species     lifecycle.Species `json:"species"`
	Breed       string            `json:"breed"`
	Sex         lifecycle.Sex     `json:"sex"`
	DateOfBirth string            `json:"date_of_birth"`
	AgeMonths   int               `json:"age_months"`
	Category    string            `json:"category"`
	HasBred     bool              `json:"has_bred"`
	IsNewborn   bool              `json:"is_newborn"`
	Castrated   bool              `json:"castrated"`
	DamID       string            `json:"dam_id,omitempty"`
	SireID      string            `json:"sire_id,omitempty"`
	Notes       string            `json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Da de alta un animal. La fecha de nacimiento no puede ser futura. La raza debe estar en el catálogo de la especie (o "other").
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Quién registra (para el historial)"
// @Param payload body createAnimalRequest true "Datos del animal; date_of_birth en formato YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dob, err := time.Parse(dateLayout, strings.TrimSpace(req.DateOfBirth))
		if err != nil {
			http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), middleware.ActorID(r.Context()), CreateInput{
			Tag:         req.Tag,
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Sex:         req.Sex,
			DateOfBirth: dob,
			HasBred:     req.HasBred,
			IsNewborn:   req.IsNewborn,
			Castrated:   req.Castrated,
			DamID:       req.DamID,
			SireID:      req.SireID,
			Notes:       req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.ProfileOf(a)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(p))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Param species query string false "CSV de especies (cattle,goat,sheep)"
// @Param q query string false "Texto en caravana/nombre"
// @Param limit query int false "Máximo (1-500). Por defecto 100"
// @Success 200 {array} animalResponse
// @Failure 400 {string} string "especie inválida"
// @Failure 500 {string} string "internal error"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{Limit: 100}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				filter.Limit = n
			}
		}
		if v := strings.TrimSpace(r.URL.Query().Get("species")); v != "" {
			for _, part := range strings.Split(v, ",") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				s, err := lifecycle.ParseSpecies(part)
				if err != nil {
					http.Error(w, "unknown species "+part, http.StatusBadRequest)
					return
				}
				filter.Species = append(filter.Species, s)
			}
		}
		filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			p, err := svc.ProfileOf(a)
			if err != nil {
				writeError(w, err)
				return
			}
			out = append(out, toAnimalResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Perfil del animal
// @Description Devuelve la ficha con edad en meses y categoría calculadas con la fecha de hoy.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Profile(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(p))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description PATCH de la ficha. Especie y sexo no se editan.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Quién registra (para el historial)"
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "nacimiento posterior a un tratamiento o servicio"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateProfileInput{
			Tag:       req.Tag,
			Name:      req.Name,
			Breed:     req.Breed,
			HasBred:   req.HasBred,
			IsNewborn: req.IsNewborn,
			Castrated: req.Castrated,
			Notes:     req.Notes,
		}
		if req.DateOfBirth != nil {
			dob, err := time.Parse(dateLayout, strings.TrimSpace(*req.DateOfBirth))
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DateOfBirth = &dob
		}

		a, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "animalID"), middleware.ActorID(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.ProfileOf(a)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(p))
	}
}

func toAnimalResponse(p Profile) animalResponse {
	a := p.Animal
	return animalResponse{
		ID:          a.ID,
		Tag:         a.Tag,
		Name:        a.Name,
		Species:     a.Species,
		Breed:       a.Breed,
		Sex:         a.Sex,
		DateOfBirth: a.DateOfBirth.Format(dateLayout),
		AgeMonths:   p.AgeMonths,
		Category:    p.Category.String(),
		HasBred:     a.HasBred,
		IsNewborn:   a.IsNewborn,
		Castrated:   a.Castrated,
		DamID:       a.DamID,
		SireID:      a.SireID,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutOfOrder):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
