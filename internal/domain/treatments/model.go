package treatments

import (
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
)

// Treatment es una administración registrada. Inmutable: una corrección es un registro nuevo.
type Treatment struct {
	ID       string
	AnimalID string

	Type           lifecycle.TreatmentType
	AdministeredAt time.Time

	Product string
	Dose    string // "5 ml", "1 bolo"

	// NextDueDate es la propuesta automática o la que cargó el usuario (NextDueManual).
	NextDueDate   *time.Time
	NextDueManual bool

	WithdrawalEndDate time.Time

	Notes string

	RecordedAt time.Time
	RecordedBy string
}

// Checkup es un control de seguimiento de un tratamiento reactivo.
type Checkup struct {
	ID          string
	TreatmentID string
	AnimalID    string

	CheckedAt time.Time
	Recovered bool
	Notes     string

	RecordedAt time.Time
	RecordedBy string
}

// View agrega lo que se deriva al momento de leer; nada de esto se persiste.
type View struct {
	Treatment Treatment
	Checkups  []Checkup

	InWithdrawal bool
	// Status es nil cuando no hay próxima dosis.
	Status      *lifecycle.ScheduleStatus
	NextCheckup *time.Time
	Recovered   bool
}
