package lifecycle

import (
	"fmt"
	"time"
)

// PregnancyCheck es la ventana derivada de un servicio. El estado no se guarda:
// se recalcula con PregnancyCheckStatus en cada lectura.
type PregnancyCheck struct {
	BreedingDate time.Time `json:"breeding_date"`
	CheckDueDate time.Time `json:"check_due_date"`
	DueSoonFrom  time.Time `json:"due_soon_from"`
}

// PregnancyCheckWindow = servicio + meses de calendario (con ajuste a fin de mes).
func (e *Engine) PregnancyCheckWindow(breedingDate time.Time) (PregnancyCheck, error) {
	if breedingDate.IsZero() {
		return PregnancyCheck{}, fmt.Errorf("%w: breeding date required", ErrInvalidInput)
	}
	day := dateOf(breedingDate)
	if day.After(e.Now()) {
		return PregnancyCheck{}, fmt.Errorf("%w: breeding date %s is in the future", ErrInvalidInput, day.Format(time.DateOnly))
	}

	due := addMonths(day, e.policy.PregnancyCheck.AfterMonths)
	return PregnancyCheck{
		BreedingDate: day,
		CheckDueDate: due,
		DueSoonFrom:  addDays(due, -e.policy.PregnancyCheck.DueSoonDays),
	}, nil
}

// PregnancyCheckStatus: due_soon si faltan entre 0 y la banda (7 días), overdue si ya pasó,
// not_due en otro caso.
func (e *Engine) PregnancyCheckStatus(pc PregnancyCheck, now time.Time) ScheduleStatus {
	left := DaysBetween(now, pc.CheckDueDate)
	switch {
	case left < 0:
		return StatusOverdue
	case left <= e.policy.PregnancyCheck.DueSoonDays:
		return StatusDueSoon
	default:
		return StatusNotDue
	}
}
