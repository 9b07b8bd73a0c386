package breeding

import (
	"strings"
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
)

type Method string

const (
	MethodNatural    Method = "natural"
	MethodArtificial Method = "artificial"
)

func ParseMethod(raw string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return MethodNatural, nil
	case MethodNatural, MethodArtificial:
		return m, nil
	}
	return "", ErrInvalidInput
}

// Record es un servicio (monta o inseminación). Inmutable.
type Record struct {
	ID      string
	DamID   string
	SireID  string // vacío si no se conoce (ej. semen sin registrar)
	Species lifecycle.Species

	BreedingDate time.Time
	Method       Method
	Notes        string

	RecordedAt time.Time
	RecordedBy string
}

// View suma la ventana de tacto/ecografía y su estado a la fecha de lectura.
type View struct {
	Record Record
	Check  lifecycle.PregnancyCheck
	Status lifecycle.ScheduleStatus
}
