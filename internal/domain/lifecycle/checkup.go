package lifecycle

import (
	"fmt"
	"time"
)

// Course es el estado de un tratamiento reactivo con chequeos de seguimiento.
type Course struct {
	Type           TreatmentType
	AdministeredOn time.Time
	LastCheckupOn  *time.Time
	Recovered      bool
}

type Checkup struct {
	On        time.Time
	Recovered bool
}

type CheckupOutcome struct {
	Course Course
	// NextCheckupOn es nil cuando el chequeo reporta recuperación.
	NextCheckupOn *time.Time
	// El retiro queda anclado a la administración, la recuperación no lo acorta.
	WithdrawalEndDate time.Time
}

// OpenCourse arranca la cadencia para un tipo con chequeos.
func (e *Engine) OpenCourse(t TreatmentType, administered time.Time) (Course, error) {
	if !e.HasCheckups(t) {
		return Course{}, fmt.Errorf("%w: %s has no checkup cadence", ErrInvalidInput, t)
	}
	w, err := e.ComputeWithdrawal(t, administered)
	if err != nil {
		return Course{}, err
	}
	return Course{Type: t, AdministeredOn: w.AdministeredOn}, nil
}

// NextCheckup devuelve último chequeo (o administración) + intervalo, o nil si ya se recuperó.
func (e *Engine) NextCheckup(c Course) *time.Time {
	if c.Recovered || !e.HasCheckups(c.Type) {
		return nil
	}
	from := c.AdministeredOn
	if c.LastCheckupOn != nil {
		from = *c.LastCheckupOn
	}
	next := addDays(from, e.policy.CheckupIntervalDays)
	return &next
}

// RecordCheckup aplica un chequeo sobre una copia del curso.
func (e *Engine) RecordCheckup(c Course, chk Checkup) (CheckupOutcome, error) {
	r, err := e.rule(c.Type)
	if err != nil {
		return CheckupOutcome{}, err
	}
	if !r.Checkups {
		return CheckupOutcome{}, fmt.Errorf("%w: %s has no checkup cadence", ErrInvalidInput, c.Type)
	}
	if c.Recovered {
		return CheckupOutcome{}, fmt.Errorf("%w: recovery already recorded", ErrInvalidInput)
	}
	if chk.On.IsZero() || c.AdministeredOn.IsZero() {
		return CheckupOutcome{}, fmt.Errorf("%w: dates required", ErrInvalidInput)
	}

	day := dateOf(chk.On)
	if day.After(e.Now()) {
		return CheckupOutcome{}, fmt.Errorf("%w: checkup date %s is in the future", ErrInvalidInput, day.Format(time.DateOnly))
	}
	if day.Before(dateOf(c.AdministeredOn)) {
		return CheckupOutcome{}, fmt.Errorf("%w: checkup before administration", ErrOutOfOrder)
	}
	if c.LastCheckupOn != nil && day.Before(dateOf(*c.LastCheckupOn)) {
		return CheckupOutcome{}, fmt.Errorf("%w: checkup before previous checkup on %s", ErrOutOfOrder, dateOf(*c.LastCheckupOn).Format(time.DateOnly))
	}

	next := Course{
		Type:           c.Type,
		AdministeredOn: dateOf(c.AdministeredOn),
		LastCheckupOn:  &day,
		Recovered:      chk.Recovered,
	}
	return CheckupOutcome{
		Course:            next,
		NextCheckupOn:     e.NextCheckup(next),
		WithdrawalEndDate: addDays(next.AdministeredOn, r.WithdrawalDays),
	}, nil
}
