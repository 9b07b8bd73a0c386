package activity

import "time"

// Entry es una línea del historial del animal. Solo se agregan, nunca se editan:
// una corrección es una entrada nueva.
type Entry struct {
	ID       string
	AnimalID string

	Type EntryType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	ActorID string
	// RefID apunta al registro que originó la entrada (tratamiento, chequeo, servicio).
	RefID string
}
