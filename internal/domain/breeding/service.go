package breeding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = lifecycle.ErrInvalidInput
	ErrOutOfOrder   = lifecycle.ErrOutOfOrder
)

// Herd lo cumple *animals.Service.
type Herd interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	MarkBred(ctx context.Context, id, actorID string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	engine  *lifecycle.Engine
	herd    Herd
	journal activity.Journal
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, engine *lifecycle.Engine, herd Herd, journal activity.Journal, log logger.Logger) *Service {
	if journal == nil {
		journal = activity.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		engine:  engine,
		herd:    herd,
		journal: journal,
		log:     log,
		now:     engine.Clock,
	}
}

type RecordInput struct {
	DamID        string
	SireID       string
	BreedingDate time.Time
	Method       string
	Notes        string
}

// Record registra el servicio, marca a la madre como servida y deja rastro en el historial de ambos.
func (s *Service) Record(ctx context.Context, actorID string, in RecordInput) (View, error) {
	dam, err := s.parent(ctx, in.DamID, lifecycle.SexFemale)
	if err != nil {
		return View{}, err
	}

	var sire animals.Animal
	if strings.TrimSpace(in.SireID) != "" {
		sire, err = s.parent(ctx, in.SireID, lifecycle.SexMale)
		if err != nil {
			return View{}, err
		}
		if sire.Species != dam.Species {
			return View{}, fmt.Errorf("%w: sire must be a %s", ErrInvalidInput, dam.Species)
		}
		if sire.Castrated {
			return View{}, fmt.Errorf("%w: sire is castrated", ErrInvalidInput)
		}
	}

	method, err := ParseMethod(in.Method)
	if err != nil {
		return View{}, fmt.Errorf("%w: method must be natural or artificial", ErrInvalidInput)
	}

	pc, err := s.engine.PregnancyCheckWindow(in.BreedingDate)
	if err != nil {
		return View{}, err
	}
	if pc.BreedingDate.Before(lifecycle.DateOf(dam.DateOfBirth)) {
		return View{}, fmt.Errorf("%w: breeding dated before the dam was born", ErrOutOfOrder)
	}
	if sire.ID != "" && pc.BreedingDate.Before(lifecycle.DateOf(sire.DateOfBirth)) {
		return View{}, fmt.Errorf("%w: breeding dated before the sire was born", ErrOutOfOrder)
	}

	rec := Record{
		ID:           uuid.NewString(),
		DamID:        dam.ID,
		SireID:       sire.ID,
		Species:      dam.Species,
		BreedingDate: pc.BreedingDate,
		Method:       method,
		Notes:        strings.TrimSpace(in.Notes),
		RecordedAt:   s.now(),
		RecordedBy:   actorID,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return View{}, err
	}

	if _, err := s.herd.MarkBred(ctx, dam.ID, actorID); err != nil {
		return View{}, err
	}

	title := fmt.Sprintf("Bred (%s), pregnancy check due %s", method, pc.CheckDueDate.Format(time.DateOnly))
	for _, id := range []string{dam.ID, sire.ID} {
		if id == "" {
			continue
		}
		activity.AppendOrLog(ctx, s.journal, s.log, activity.AppendInput{
			AnimalID:   id,
			Type:       activity.EntryBreedingRecorded,
			OccurredAt: rec.BreedingDate,
			Title:      title,
			Notes:      rec.Notes,
			ActorID:    actorID,
			RefID:      rec.ID,
		})
	}

	return s.viewOf(rec)
}

// ListByAnimal devuelve los servicios del animal, el más reciente primero.
func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]View, error) {
	if _, err := s.herd.GetByID(ctx, animalID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].BreedingDate.After(items[j].BreedingDate)
	})

	out := make([]View, 0, len(items))
	for _, rec := range items {
		v, err := s.viewOf(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EarliestRecord devuelve el servicio más antiguo en que participó el animal (como madre o padre).
func (s *Service) EarliestRecord(ctx context.Context, animalID string) (time.Time, bool, error) {
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return time.Time{}, false, err
	}
	var earliest time.Time
	for _, rec := range items {
		if earliest.IsZero() || rec.BreedingDate.Before(earliest) {
			earliest = rec.BreedingDate
		}
	}
	return earliest, !earliest.IsZero(), nil
}

func (s *Service) parent(ctx context.Context, id string, sex lifecycle.Sex) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, fmt.Errorf("%w: %s id required", ErrInvalidInput, role(sex))
	}
	a, err := s.herd.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return animals.Animal{}, fmt.Errorf("%w: %s %s not found", ErrInvalidInput, role(sex), id)
		}
		return animals.Animal{}, err
	}
	if a.Sex != sex {
		return animals.Animal{}, fmt.Errorf("%w: %s must be %s", ErrInvalidInput, role(sex), sex)
	}
	return a, nil
}

func role(sex lifecycle.Sex) string {
	if sex == lifecycle.SexFemale {
		return "dam"
	}
	return "sire"
}

func (s *Service) viewOf(rec Record) (View, error) {
	// La ventana se recalcula con la política vigente; el servicio guarda solo la fecha.
	pc, err := s.engine.PregnancyCheckWindow(rec.BreedingDate)
	if err != nil {
		return View{}, err
	}
	return View{
		Record: rec,
		Check:  pc,
		Status: s.engine.PregnancyCheckStatus(pc, s.now()),
	}, nil
}
