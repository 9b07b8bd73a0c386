package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-livestock-records/internal/domain/activity"
	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = lifecycle.ErrInvalidInput
	ErrOutOfOrder   = lifecycle.ErrOutOfOrder
	ErrNotFound     = errors.New("animal not found")
)

// BreedOther siempre se acepta aunque no esté en el catálogo.
const BreedOther = "other"

// Records lo cumplen los módulos cuyos registros no pueden ser anteriores al nacimiento
// (tratamientos, servicios). ok=false si el animal no tiene ninguno.
type Records interface {
	EarliestRecord(ctx context.Context, animalID string) (earliest time.Time, ok bool, err error)
}

type Service struct {
	repo    Repository
	engine  *lifecycle.Engine
	journal activity.Journal
	log     logger.Logger
	records []Records
	now     func() time.Time
}

func NewService(repo Repository, engine *lifecycle.Engine, journal activity.Journal, log logger.Logger) *Service {
	if journal == nil {
		journal = activity.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		engine:  engine,
		journal: journal,
		log:     log,
		now:     engine.Clock,
	}
}

// TrackRecords registra los módulos que se consultan antes de mover una fecha de nacimiento.
// Se llama una vez construidos esos servicios.
func (s *Service) TrackRecords(records ...Records) {
	s.records = append(s.records, records...)
}

type CreateInput struct {
	Tag         string
	Name        string
	Species     string
	Breed       string
	Sex         string
	DateOfBirth time.Time
	HasBred     bool
	IsNewborn   bool
	Castrated   bool
	DamID       string
	SireID      string
	Notes       string
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Animal, error) {
	species, err := lifecycle.ParseSpecies(in.Species)
	if err != nil {
		return Animal{}, fmt.Errorf("%w: species must be cattle, goat or sheep", ErrInvalidInput)
	}
	sex, err := lifecycle.ParseSex(in.Sex)
	if err != nil {
		return Animal{}, fmt.Errorf("%w: sex must be male or female", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Tag) == "" && strings.TrimSpace(in.Name) == "" {
		return Animal{}, fmt.Errorf("%w: tag or name required", ErrInvalidInput)
	}

	now := s.now()

	// La fecha de nacimiento futura es error de quien llama, no se corrige.
	if _, err := lifecycle.AgeInMonths(in.DateOfBirth, now); err != nil {
		return Animal{}, err
	}
	breed, err := s.normalizeBreed(species, in.Breed)
	if err != nil {
		return Animal{}, err
	}

	a := Animal{
		ID:          uuid.NewString(),
		Tag:         strings.TrimSpace(in.Tag),
		Name:        strings.TrimSpace(in.Name),
		Species:     species,
		Breed:       breed,
		Sex:         sex,
		DateOfBirth: in.DateOfBirth,
		HasBred:     in.HasBred && sex == lifecycle.SexFemale,
		IsNewborn:   in.IsNewborn,
		Castrated:   in.Castrated,
		DamID:       strings.TrimSpace(in.DamID),
		SireID:      strings.TrimSpace(in.SireID),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Castrated && sex != lifecycle.SexMale {
		return Animal{}, fmt.Errorf("%w: only males can be castrated", ErrInvalidInput)
	}
	if err := s.checkParent(ctx, a, a.DamID, lifecycle.SexFemale); err != nil {
		return Animal{}, err
	}
	if err := s.checkParent(ctx, a, a.SireID, lifecycle.SexMale); err != nil {
		return Animal{}, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}

	activity.AppendOrLog(ctx, s.journal, s.log, activity.AppendInput{
		AnimalID: a.ID,
		Type:     activity.EntryAnimalRegistered,
		Title:    fmt.Sprintf("%s %s registered", a.Species, displayName(a)),
		ActorID:  actorID,
		RefID:    a.ID,
	})
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Exists es el AnimalLookup que usan los módulos que no importan animals.
func (s *Service) Exists(ctx context.Context, id string) error {
	_, err := s.GetByID(ctx, id)
	return err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	return s.repo.List(ctx, filter)
}

// Profile calcula edad y categoría con la fecha de hoy.
func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return s.ProfileOf(a)
}

func (s *Service) ProfileOf(a Animal) (Profile, error) {
	age, err := lifecycle.AgeInMonths(a.DateOfBirth, s.now())
	if err != nil {
		return Profile{}, err
	}
	cat, err := s.engine.Classify(a.Species, a.Sex, age, a.HasBred, a.IsNewborn)
	if err != nil {
		return Profile{}, err
	}
	// Castración: estado ortogonal que se aplica después de clasificar.
	if a.Castrated {
		cat, err = lifecycle.Castrate(cat)
		if err != nil {
			return Profile{}, err
		}
	}
	return Profile{Animal: a, AgeMonths: age, Category: cat}, nil
}

// UpdateProfileInput usa punteros para PATCH: nil = no tocar.
// Especie y sexo no se editan; un error de carga se corrige dando de alta otra ficha.
type UpdateProfileInput struct {
	Tag         *string
	Name        *string
	Breed       *string
	DateOfBirth *time.Time
	HasBred     *bool
	IsNewborn   *bool
	Castrated   *bool
	Notes       *string
}

func (s *Service) UpdateProfile(ctx context.Context, id, actorID string, in UpdateProfileInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	now := s.now()
	changed := make([]string, 0)

	if in.Tag != nil {
		a.Tag = strings.TrimSpace(*in.Tag)
		changed = append(changed, "tag")
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
		changed = append(changed, "name")
	}
	if a.Tag == "" && a.Name == "" {
		return Animal{}, fmt.Errorf("%w: tag or name required", ErrInvalidInput)
	}
	if in.Breed != nil {
		b, err := s.normalizeBreed(a.Species, *in.Breed)
		if err != nil {
			return Animal{}, err
		}
		a.Breed = b
		changed = append(changed, "breed")
	}
	if in.DateOfBirth != nil {
		if _, err := lifecycle.AgeInMonths(*in.DateOfBirth, now); err != nil {
			return Animal{}, err
		}
		if err := s.checkBirthBeforeRecords(ctx, a.ID, *in.DateOfBirth); err != nil {
			return Animal{}, err
		}
		a.DateOfBirth = *in.DateOfBirth
		changed = append(changed, "date_of_birth")
	}
	if in.HasBred != nil {
		if *in.HasBred && a.Sex != lifecycle.SexFemale {
			return Animal{}, fmt.Errorf("%w: breeding history only applies to females", ErrInvalidInput)
		}
		a.HasBred = *in.HasBred
		changed = append(changed, "has_bred")
	}
	if in.IsNewborn != nil {
		a.IsNewborn = *in.IsNewborn
		changed = append(changed, "is_newborn")
	}
	if in.Castrated != nil {
		if *in.Castrated && a.Sex != lifecycle.SexMale {
			return Animal{}, fmt.Errorf("%w: only males can be castrated", ErrInvalidInput)
		}
		a.Castrated = *in.Castrated
		changed = append(changed, "castrated")
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
		changed = append(changed, "notes")
	}

	if len(changed) == 0 {
		return a, nil
	}
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}

	activity.AppendOrLog(ctx, s.journal, s.log, activity.AppendInput{
		AnimalID: a.ID,
		Type:     activity.EntryProfileUpdated,
		Title:    "Profile updated",
		Notes:    "fields: " + strings.Join(changed, ", "),
		ActorID:  actorID,
		RefID:    a.ID,
	})
	return a, nil
}

// MarkBred la usa breeding al registrar un servicio. Idempotente.
func (s *Service) MarkBred(ctx context.Context, id, actorID string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.HasBred {
		return a, nil
	}
	bred := true
	return s.UpdateProfile(ctx, id, actorID, UpdateProfileInput{HasBred: &bred})
}

// Policy expone la política vigente (catálogo de razas incluido).
func (s *Service) Policy() lifecycle.Policy {
	return s.engine.Policy()
}

// checkBirthBeforeRecords impide que el nacimiento quede después de un tratamiento o servicio ya cargado.
func (s *Service) checkBirthBeforeRecords(ctx context.Context, animalID string, dob time.Time) error {
	born := lifecycle.DateOf(dob)
	for _, r := range s.records {
		earliest, ok, err := r.EarliestRecord(ctx, animalID)
		if err != nil {
			return err
		}
		if ok && born.After(lifecycle.DateOf(earliest)) {
			return fmt.Errorf("%w: date of birth %s is after a record dated %s",
				ErrOutOfOrder, born.Format(time.DateOnly), lifecycle.DateOf(earliest).Format(time.DateOnly))
		}
	}
	return nil
}

func (s *Service) normalizeBreed(species lifecycle.Species, raw string) (string, error) {
	breed := strings.TrimSpace(raw)
	if breed == "" || strings.EqualFold(breed, BreedOther) {
		return strings.ToLower(breed), nil
	}
	p := s.engine.Policy()
	if len(p.Breeds[species]) == 0 {
		return breed, nil
	}
	for _, b := range p.Breeds[species] {
		if strings.EqualFold(b, breed) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: breed %q is not in the %s catalog", ErrInvalidInput, breed, species)
}

func (s *Service) checkParent(ctx context.Context, child Animal, parentID string, sex lifecycle.Sex) error {
	if parentID == "" {
		return nil
	}
	p, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: parent %s not found", ErrInvalidInput, parentID)
		}
		return err
	}
	if p.Species != child.Species || p.Sex != sex {
		return fmt.Errorf("%w: parent %s must be a %s %s", ErrInvalidInput, parentID, sex, child.Species)
	}
	return nil
}

func displayName(a Animal) string {
	if a.Tag != "" {
		return a.Tag
	}
	return a.Name
}
