package treatments

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
	ErrNotFound     = errors.New("treatment not found")
)

// AnimalGetter lo cumple *animals.Service.
type AnimalGetter interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	engine  *lifecycle.Engine
	animals AnimalGetter
	journal activity.Journal
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, engine *lifecycle.Engine, animals AnimalGetter, journal activity.Journal, log logger.Logger) *Service {
	if journal == nil {
		journal = activity.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		engine:  engine,
		animals: animals,
		journal: journal,
		log:     log,
		now:     engine.Clock,
	}
}

type LogInput struct {
	Type           string
	AdministeredAt time.Time
	Product        string
	Dose           string
	// NextDueDate pisa la propuesta automática (o la agrega para tipos sin una).
	NextDueDate *time.Time
	// WithdrawalEndDate es opcional; si viene debe coincidir con la calculada.
	WithdrawalEndDate *time.Time
	Notes             string
}

func (s *Service) Log(ctx context.Context, animalID, actorID string, in LogInput) (View, error) {
	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return View{}, err
	}

	tt, err := lifecycle.ParseTreatmentType(in.Type)
	if err != nil {
		return View{}, err
	}
	w, err := s.engine.ComputeWithdrawal(tt, in.AdministeredAt)
	if err != nil {
		return View{}, err
	}
	if w.AdministeredOn.Before(lifecycle.DateOf(a.DateOfBirth)) {
		return View{}, fmt.Errorf("%w: treatment dated before the animal was born", ErrOutOfOrder)
	}

	// El fin de retiro siempre sale de la fecha de administración.
	if in.WithdrawalEndDate != nil && !lifecycle.DateOf(*in.WithdrawalEndDate).Equal(w.EndDate) {
		return View{}, fmt.Errorf("%w: withdrawal end date must be %s for %s", ErrInvalidInput, w.EndDate.Format(time.DateOnly), tt.Label())
	}

	t := Treatment{
		ID:                uuid.NewString(),
		AnimalID:          a.ID,
		Type:              tt,
		AdministeredAt:    w.AdministeredOn,
		Product:           strings.TrimSpace(in.Product),
		Dose:              strings.TrimSpace(in.Dose),
		NextDueDate:       w.AutoNextDue,
		WithdrawalEndDate: w.EndDate,
		Notes:             strings.TrimSpace(in.Notes),
		RecordedAt:        s.now(),
		RecordedBy:        actorID,
	}
	if in.NextDueDate != nil {
		if err := lifecycle.ValidateNextDue(w.AdministeredOn, *in.NextDueDate); err != nil {
			return View{}, err
		}
		next := lifecycle.DateOf(*in.NextDueDate)
		t.NextDueDate = &next
		t.NextDueManual = true
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return View{}, err
	}

	title := tt.Label()
	if t.Product != "" {
		title += ": " + t.Product
	}
	notes := t.Notes
	if w.Days > 0 {
		notes = strings.TrimSpace(fmt.Sprintf("withdrawal until %s. %s", w.EndDate.Format(time.DateOnly), notes))
	}
	activity.AppendOrLog(ctx, s.journal, s.log, activity.AppendInput{
		AnimalID:   a.ID,
		Type:       activity.EntryTreatmentLogged,
		OccurredAt: t.AdministeredAt,
		Title:      title,
		Notes:      notes,
		ActorID:    actorID,
		RefID:      t.ID,
	})

	return s.viewOf(t, nil)
}

// ListByAnimal devuelve los tratamientos del animal, el más reciente primero.
func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]View, error) {
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].AdministeredAt.Equal(items[j].AdministeredAt) {
			return items[i].AdministeredAt.After(items[j].AdministeredAt)
		}
		return items[i].RecordedAt.After(items[j].RecordedAt)
	})

	out := make([]View, 0, len(items))
	for _, t := range items {
		checkups, err := s.repo.ListCheckups(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		v, err := s.viewOf(t, checkups)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EarliestRecord devuelve la administración más antigua del animal.
func (s *Service) EarliestRecord(ctx context.Context, animalID string) (time.Time, bool, error) {
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return time.Time{}, false, err
	}
	var earliest time.Time
	for _, t := range items {
		if earliest.IsZero() || t.AdministeredAt.Before(earliest) {
			earliest = t.AdministeredAt
		}
	}
	return earliest, !earliest.IsZero(), nil
}

func (s *Service) Get(ctx context.Context, animalID, treatmentID string) (View, error) {
	t, err := s.treatmentOf(ctx, animalID, treatmentID)
	if err != nil {
		return View{}, err
	}
	checkups, err := s.repo.ListCheckups(ctx, t.ID)
	if err != nil {
		return View{}, err
	}
	return s.viewOf(t, checkups)
}

type CheckupInput struct {
	CheckedAt time.Time
	Recovered bool
	Notes     string
}

// RecordCheckup agrega un chequeo a un tratamiento con cadencia de seguimiento.
// Un chequeo anterior al último (o a la administración) es ErrOutOfOrder.
func (s *Service) RecordCheckup(ctx context.Context, animalID, treatmentID, actorID string, in CheckupInput) (View, error) {
	t, err := s.treatmentOf(ctx, animalID, treatmentID)
	if err != nil {
		return View{}, err
	}
	checkups, err := s.repo.ListCheckups(ctx, t.ID)
	if err != nil {
		return View{}, err
	}

	out, err := s.engine.RecordCheckup(courseOf(t, checkups), lifecycle.Checkup{On: in.CheckedAt, Recovered: in.Recovered})
	if err != nil {
		return View{}, err
	}

	c := Checkup{
		ID:          uuid.NewString(),
		TreatmentID: t.ID,
		AnimalID:    t.AnimalID,
		CheckedAt:   *out.Course.LastCheckupOn,
		Recovered:   in.Recovered,
		Notes:       strings.TrimSpace(in.Notes),
		RecordedAt:  s.now(),
		RecordedBy:  actorID,
	}
	if err := s.repo.AddCheckup(ctx, c); err != nil {
		return View{}, err
	}

	title := "Checkup: " + t.Type.Label()
	if c.Recovered {
		title += " (recovered)"
	} else if out.NextCheckupOn != nil {
		title += ", next " + out.NextCheckupOn.Format(time.DateOnly)
	}
	activity.AppendOrLog(ctx, s.journal, s.log, activity.AppendInput{
		AnimalID:   t.AnimalID,
		Type:       activity.EntryCheckupRecorded,
		OccurredAt: c.CheckedAt,
		Title:      title,
		Notes:      c.Notes,
		ActorID:    actorID,
		RefID:      t.ID,
	})

	return s.viewOf(t, append(checkups, c))
}

func (s *Service) treatmentOf(ctx context.Context, animalID, treatmentID string) (Treatment, error) {
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return Treatment{}, err
	}
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(treatmentID))
	if err != nil {
		return Treatment{}, err
	}
	// no se filtra la existencia de tratamientos de otro animal
	if t.AnimalID != animalID {
		return Treatment{}, ErrNotFound
	}
	return t, nil
}

func courseOf(t Treatment, checkups []Checkup) lifecycle.Course {
	c := lifecycle.Course{Type: t.Type, AdministeredOn: t.AdministeredAt}
	for _, chk := range checkups {
		on := chk.CheckedAt
		if c.LastCheckupOn == nil || !on.Before(*c.LastCheckupOn) {
			c.LastCheckupOn = &on
		}
		if chk.Recovered {
			c.Recovered = true
		}
	}
	return c
}

func (s *Service) viewOf(t Treatment, checkups []Checkup) (View, error) {
	now := s.now()
	if checkups == nil {
		checkups = []Checkup{}
	}
	v := View{
		Treatment:    t,
		Checkups:     checkups,
		InWithdrawal: lifecycle.WithdrawalOf(t.Type, t.AdministeredAt, t.WithdrawalEndDate).Active(now),
	}
	if t.NextDueDate != nil {
		st, err := s.engine.RoutineStatus(*t.NextDueDate, now)
		if err != nil {
			return View{}, err
		}
		v.Status = &st
	}
	if s.engine.HasCheckups(t.Type) {
		course := courseOf(t, checkups)
		v.Recovered = course.Recovered
		v.NextCheckup = s.engine.NextCheckup(course)
	}
	return v, nil
}
