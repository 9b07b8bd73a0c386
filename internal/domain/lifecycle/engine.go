// Package lifecycle contiene las reglas de clasificación por etapa de vida y
// el cálculo de obligaciones en el tiempo (retiro, próximas dosis, chequeos, preñez).
//
// Todo es puro: no hay I/O, no hay estado mutable compartido y la única fuente
// de "hoy" es el reloj inyectado en NewEngine.
package lifecycle

import (
	"fmt"
	"time"
)

type Engine struct {
	policy Policy
	now    func() time.Time
}

// NewEngine valida y copia la política. now puede ser nil (usa time.Now).
func NewEngine(policy Policy, now func() time.Time) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		policy: policy.Clone(),
		now:    now,
	}, nil
}

// MustDefaultEngine es para main/tests: la política por defecto siempre es válida.
func MustDefaultEngine() *Engine {
	e, err := NewEngine(DefaultPolicy(), nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Policy devuelve una copia; modificarla no afecta al motor.
func (e *Engine) Policy() Policy {
	return e.policy.Clone()
}

// Clock es el reloj inyectado sin truncar; los servicios lo usan para sus marcas de tiempo.
func (e *Engine) Clock() time.Time {
	return e.now()
}

// Now devuelve la fecha de hoy según el reloj inyectado.
func (e *Engine) Now() time.Time {
	return dateOf(e.now())
}

// Classify asigna exactamente una categoría.
//
//   - isNewborn manda sobre la edad y el sexo: siempre devuelve la etiqueta juvenil.
//   - Por debajo del corte juvenil (edad < corte) es juvenil.
//   - Macho: Yearling Bull por debajo del corte de macho joven (por defecto solo bovinos), si no Bull/Buck/Ram.
//   - Hembra: Cow/Doe/Ewe solo si ya fue servida; si no Heifer/Maiden Doe/Maiden Ewe sin importar la edad.
//
// Steer/Wether no se derivan de estos datos.
func (e *Engine) Classify(species Species, sex Sex, ageInMonths int, hasBred, isNewborn bool) (Category, error) {
	l, ok := labels[species]
	if !ok {
		return Category{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, species)
	}
	if !sex.Valid() {
		return Category{}, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, sex)
	}
	if ageInMonths < 0 {
		return Category{}, fmt.Errorf("%w: negative age %d", ErrInvalidInput, ageInMonths)
	}

	if isNewborn {
		return l.juvenile, nil
	}
	if ageInMonths < e.policy.JuvenileCutoffMonths[species] {
		return l.juvenile, nil
	}

	if sex == SexMale {
		if young, ok := e.policy.YoungMaleCutoffMonths[species]; ok && l.youngMale != nil && ageInMonths < young {
			return *l.youngMale, nil
		}
		return l.adultMale, nil
	}

	if hasBred {
		return l.adultFemale, nil
	}
	return l.maiden, nil
}

// ClassifyAt calcula la edad a la fecha de hoy y clasifica.
func (e *Engine) ClassifyAt(species Species, sex Sex, dateOfBirth time.Time, hasBred, isNewborn bool) (Category, int, error) {
	age, err := AgeInMonths(dateOfBirth, e.now())
	if err != nil {
		return Category{}, 0, err
	}
	c, err := e.Classify(species, sex, age, hasBred, isNewborn)
	if err != nil {
		return Category{}, 0, err
	}
	return c, age, nil
}

// JuvenileCutoff devuelve el corte juvenil (en meses) de la especie.
func (e *Engine) JuvenileCutoff(species Species) int {
	return e.policy.JuvenileCutoffMonths[species]
}
