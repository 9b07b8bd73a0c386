package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"farm-livestock-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Journal es lo que necesitan los otros módulos para dejar rastro en el historial.
type Journal interface {
	Append(ctx context.Context, in AppendInput) (Entry, error)
}

// Discard descarta las entradas (tests, herramientas offline).
var Discard Journal = discard{}

type discard struct{}

func (discard) Append(context.Context, AppendInput) (Entry, error) { return Entry{}, nil }

// AppendOrLog escribe en el historial y deja en el log una escritura fallida.
// El error no se propaga: el registro de origen ya quedó guardado.
func AppendOrLog(ctx context.Context, j Journal, log logger.Logger, in AppendInput) {
	if _, err := j.Append(ctx, in); err != nil {
		log.Error("activity append failed", map[string]any{
			"animal_id": in.AnimalID,
			"type":      string(in.Type),
			"ref_id":    in.RefID,
			"err":       err,
		})
	}
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AppendInput struct {
	AnimalID   string
	Type       EntryType
	OccurredAt time.Time
	Title      string
	Notes      string
	ActorID    string
	RefID      string
}

func (s *Service) Append(ctx context.Context, in AppendInput) (Entry, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if !in.Type.Valid() {
		return Entry{}, ErrInvalidInput
	}

	now := s.now()

	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	actor := strings.TrimSpace(in.ActorID)
	if actor == "" {
		actor = ActorAnonymous
	}

	e := Entry{
		ID:         uuid.NewString(),
		AnimalID:   strings.TrimSpace(in.AnimalID),
		Type:       in.Type,
		OccurredAt: occurred,
		RecordedAt: now,
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		ActorID:    actor,
		RefID:      strings.TrimSpace(in.RefID),
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]Entry, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID, filter)
}
