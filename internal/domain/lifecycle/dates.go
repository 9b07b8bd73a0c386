package lifecycle

import (
	"fmt"
	"time"
)

// Todas las reglas trabajan con fechas de calendario (sin hora).
// dateOf conserva el año/mes/día tal como los ve quien llama, en UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return dateOf(t).AddDate(0, 0, days)
}

// addMonths suma meses de calendario ajustando al último día del mes destino
// (30 nov + 3 meses = 28/29 feb, no 2 mar). time.AddDate normalizaría el desborde.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := dateOf(t).Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := daysIn(first.Year(), first.Month())
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func addInterval(t time.Time, i Interval) time.Time {
	return addDays(addMonths(t, i.Months), i.Days)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AgeInMonths devuelve los meses completos transcurridos entre el nacimiento y la fecha de referencia.
// Un mes está completo cuando nacimiento + n meses (con ajuste a fin de mes) <= referencia,
// así que un animal de 29 días tiene 0 meses.
func AgeInMonths(dateOfBirth, referenceDate time.Time) (int, error) {
	dob := dateOf(dateOfBirth)
	ref := dateOf(referenceDate)
	if dateOfBirth.IsZero() || referenceDate.IsZero() {
		return 0, fmt.Errorf("%w: dates required", ErrInvalidInput)
	}
	if dob.After(ref) {
		return 0, fmt.Errorf("%w: date of birth %s is after %s", ErrInvalidInput, dob.Format(time.DateOnly), ref.Format(time.DateOnly))
	}

	months := (ref.Year()-dob.Year())*12 + int(ref.Month()-dob.Month())
	if addMonths(dob, months).After(ref) {
		months--
	}
	return months, nil
}

// DaysBetween cuenta días de calendario de a -> b (negativo si b es anterior).
func DaysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}
