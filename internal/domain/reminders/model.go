package reminders

import (
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
)

type Kind string

const (
	KindRoutineTreatment Kind = "routine_treatment"
	KindCheckup          Kind = "checkup"
	KindPregnancyCheck   Kind = "pregnancy_check"
)

// Reminder es una obligación que necesita atención (due_soon u overdue) a una fecha dada.
type Reminder struct {
	AnimalID  string
	AnimalTag string
	Species   lifecycle.Species

	Kind    Kind
	Title   string
	DueDate time.Time
	Status  lifecycle.ScheduleStatus
	// RefID apunta al tratamiento o servicio que originó el recordatorio.
	RefID string
}
