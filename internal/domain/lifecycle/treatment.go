package lifecycle

import (
	"fmt"
	"time"
)

// Withdrawal es la ventana de retiro derivada de una administración.
// Se recalcula siempre desde la fecha de administración; no se guarda aparte.
type Withdrawal struct {
	Type           TreatmentType `json:"type"`
	AdministeredOn time.Time     `json:"administered_on"`
	EndDate        time.Time     `json:"withdrawal_end_date"`
	Days           int           `json:"withdrawal_days"`
	// AutoNextDue es la próxima dosis propuesta (nil = se carga a mano o no aplica).
	AutoNextDue *time.Time `json:"auto_next_due,omitempty"`
}

// Active indica si now cae dentro de [administración, fin de retiro], ambos inclusive.
// Un tipo sin días de retiro (vacunas, vitaminas) nunca restringe la venta.
func (w Withdrawal) Active(now time.Time) bool {
	if w.Days <= 0 {
		return false
	}
	d := dateOf(now)
	return !d.Before(w.AdministeredOn) && !d.After(w.EndDate)
}

// WithdrawalOf rearma la ventana de un registro ya guardado.
func WithdrawalOf(t TreatmentType, administered, end time.Time) Withdrawal {
	day := dateOf(administered)
	return Withdrawal{
		Type:           t,
		AdministeredOn: day,
		EndDate:        dateOf(end),
		Days:           DaysBetween(day, end),
	}
}

// DateOf normaliza a fecha de calendario (UTC, sin hora).
func DateOf(t time.Time) time.Time {
	return dateOf(t)
}

func (e *Engine) rule(t TreatmentType) (TreatmentRule, error) {
	r, ok := e.policy.Treatments[t]
	if !ok {
		return TreatmentRule{}, fmt.Errorf("%w: unknown treatment type %q", ErrInvalidInput, t)
	}
	return r, nil
}

// ComputeWithdrawal calcula fin de retiro = administración + días del tipo,
// y la próxima dosis automática para los tipos de rutina.
func (e *Engine) ComputeWithdrawal(t TreatmentType, administered time.Time) (Withdrawal, error) {
	r, err := e.rule(t)
	if err != nil {
		return Withdrawal{}, err
	}
	if administered.IsZero() {
		return Withdrawal{}, fmt.Errorf("%w: administration date required", ErrInvalidInput)
	}
	day := dateOf(administered)
	if day.After(e.Now()) {
		return Withdrawal{}, fmt.Errorf("%w: administration date %s is in the future", ErrInvalidInput, day.Format(time.DateOnly))
	}

	w := Withdrawal{
		Type:           t,
		AdministeredOn: day,
		EndDate:        addDays(day, r.WithdrawalDays),
		Days:           r.WithdrawalDays,
	}
	if !r.NextDue.IsZero() {
		next := addInterval(day, r.NextDue)
		w.AutoNextDue = &next
	}
	return w, nil
}

// StatusFor parte el tiempo en tres tramos contiguos:
// completed si now < due-band, due_soon si due-band <= now <= due, overdue si now > due.
func StatusFor(due, now time.Time, dueSoonBandDays int) (ScheduleStatus, error) {
	if due.IsZero() || now.IsZero() {
		return "", fmt.Errorf("%w: dates required", ErrInvalidInput)
	}
	if dueSoonBandDays < 0 {
		return "", fmt.Errorf("%w: negative due soon band", ErrInvalidInput)
	}
	d := dateOf(due)
	n := dateOf(now)
	switch {
	case n.After(d):
		return StatusOverdue, nil
	case n.Before(addDays(d, -dueSoonBandDays)):
		return StatusCompleted, nil
	default:
		return StatusDueSoon, nil
	}
}

// RoutineStatus usa la banda de recordatorios de rutina de la política.
func (e *Engine) RoutineStatus(due, now time.Time) (ScheduleStatus, error) {
	return StatusFor(due, now, e.policy.RoutineDueSoonDays)
}

// ValidateNextDue revisa una próxima dosis cargada a mano: no puede ser anterior a la administración.
func ValidateNextDue(administered, nextDue time.Time) error {
	if nextDue.IsZero() {
		return fmt.Errorf("%w: next due date required", ErrInvalidInput)
	}
	if dateOf(nextDue).Before(dateOf(administered)) {
		return fmt.Errorf("%w: next due date is before the administration date", ErrInvalidInput)
	}
	return nil
}

// HasCheckups indica si el tipo usa la cadencia de chequeos (antibióticos, antiinflamatorios).
func (e *Engine) HasCheckups(t TreatmentType) bool {
	r, err := e.rule(t)
	return err == nil && r.Checkups
}
