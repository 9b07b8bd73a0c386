package reminders

import (
	"context"
	"sort"
	"time"

	"farm-livestock-records/internal/domain/animals"
	"farm-livestock-records/internal/domain/breeding"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/domain/treatments"
)

type AnimalLister interface {
	List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error)
}

type TreatmentLister interface {
	ListByAnimal(ctx context.Context, animalID string) ([]treatments.View, error)
}

type BreedingLister interface {
	ListByAnimal(ctx context.Context, animalID string) ([]breeding.View, error)
}

type Service struct {
	engine     *lifecycle.Engine
	animals    AnimalLister
	treatments TreatmentLister
	breeding   BreedingLister
}

func NewService(engine *lifecycle.Engine, animals AnimalLister, treatments TreatmentLister, breeding BreedingLister) *Service {
	return &Service{
		engine:     engine,
		animals:    animals,
		treatments: treatments,
		breeding:   breeding,
	}
}

// Due arma la lista de pendientes del rodeo a la fecha now.
//
// Solo cuenta el registro más reciente de cada obligación: una dosis nueva del
// mismo tipo reemplaza a la anterior y un servicio nuevo reemplaza el tacto del anterior.
func (s *Service) Due(ctx context.Context, now time.Time) ([]Reminder, error) {
	herd, err := s.animals.List(ctx, animals.ListFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]Reminder, 0)
	for _, a := range herd {
		items, err := s.forAnimal(ctx, a, now)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if out[i].AnimalTag != out[j].AnimalTag {
			return out[i].AnimalTag < out[j].AnimalTag
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

func (s *Service) forAnimal(ctx context.Context, a animals.Animal, now time.Time) ([]Reminder, error) {
	var out []Reminder
	base := Reminder{AnimalID: a.ID, AnimalTag: tagOf(a), Species: a.Species}

	views, err := s.treatments.ListByAnimal(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	// views viene del más reciente al más antiguo
	seen := map[lifecycle.TreatmentType]bool{}
	for _, v := range views {
		t := v.Treatment
		latest := !seen[t.Type]
		seen[t.Type] = true

		if latest && t.NextDueDate != nil {
			st, err := s.engine.RoutineStatus(*t.NextDueDate, now)
			if err != nil {
				return nil, err
			}
			if st.NeedsAttention() {
				r := base
				r.Kind = KindRoutineTreatment
				r.Title = t.Type.Label() + " due"
				r.DueDate = *t.NextDueDate
				r.Status = st
				r.RefID = t.ID
				out = append(out, r)
			}
		}

		if v.NextCheckup != nil {
			// la cadencia de chequeo es continua: el próximo siempre está dentro de la banda
			st, err := lifecycle.StatusFor(*v.NextCheckup, now, s.engine.Policy().CheckupIntervalDays)
			if err != nil {
				return nil, err
			}
			if st.NeedsAttention() {
				r := base
				r.Kind = KindCheckup
				r.Title = t.Type.Label() + " checkup"
				r.DueDate = *v.NextCheckup
				r.Status = st
				r.RefID = t.ID
				out = append(out, r)
			}
		}
	}

	if a.Sex != lifecycle.SexFemale {
		return out, nil
	}
	services, err := s.breeding.ListByAnimal(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	for _, v := range services {
		if v.Record.DamID != a.ID {
			continue
		}
		st := s.engine.PregnancyCheckStatus(v.Check, now)
		if st.NeedsAttention() {
			r := base
			r.Kind = KindPregnancyCheck
			r.Title = "Pregnancy check"
			r.DueDate = v.Check.CheckDueDate
			r.Status = st
			r.RefID = v.Record.ID
			out = append(out, r)
		}
		// solo el servicio más reciente
		break
	}
	return out, nil
}

func tagOf(a animals.Animal) string {
	if a.Tag != "" {
		return a.Tag
	}
	return a.Name
}

// Today es la fecha del reloj del motor; la usa el handler cuando no llega ?date.
func (s *Service) Today() time.Time {
	return s.engine.Now()
}
