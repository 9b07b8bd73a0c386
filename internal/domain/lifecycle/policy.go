package lifecycle

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Interval es un desplazamiento de calendario (meses con ajuste a fin de mes + días).
type Interval struct {
	Months int `yaml:"months,omitempty" json:"months,omitempty"`
	Days   int `yaml:"days,omitempty" json:"days,omitempty"`
}

func (i Interval) IsZero() bool { return i.Months == 0 && i.Days == 0 }

// TreatmentRule fija los desplazamientos de un tipo de tratamiento.
type TreatmentRule struct {
	WithdrawalDays int `yaml:"withdrawal_days" json:"withdrawal_days"`
	// NextDue vacío = sin próxima dosis automática (se carga a mano).
	NextDue Interval `yaml:"next_due" json:"next_due"`
	// Checkups activa la cadencia de chequeos mientras el animal no se recupera.
	Checkups bool `yaml:"checkups" json:"checkups"`
}

type PregnancyCheckRule struct {
	AfterMonths int `yaml:"after_months" json:"after_months"`
	DueSoonDays int `yaml:"due_soon_days" json:"due_soon_days"`
}

// Policy es la tabla versionada de reglas que recibe el motor al construirse.
// Cambiar un valor es un cambio de política (nueva versión), no un parámetro de llamada.
type Policy struct {
	Version string `yaml:"version" json:"version"`

	JuvenileCutoffMonths map[Species]int `yaml:"juvenile_cutoff_months" json:"juvenile_cutoff_months"`
	// Tramo de macho joven: Yearling Bull (bovinos) o Buckling (cabras, apagado por defecto).
	YoungMaleCutoffMonths map[Species]int `yaml:"young_male_cutoff_months" json:"young_male_cutoff_months"`

	Treatments map[TreatmentType]TreatmentRule `yaml:"treatments" json:"treatments"`

	RoutineDueSoonDays  int                `yaml:"routine_due_soon_days" json:"routine_due_soon_days"`
	CheckupIntervalDays int                `yaml:"checkup_interval_days" json:"checkup_interval_days"`
	PregnancyCheck      PregnancyCheckRule `yaml:"pregnancy_check" json:"pregnancy_check"`

	// Catálogo de razas por especie; lo extiende quien llama, el motor no lo modifica.
	Breeds map[Species][]string `yaml:"breeds" json:"breeds"`
}

const DefaultPolicyVersion = "2025.1"

func DefaultPolicy() Policy {
	return Policy{
		Version: DefaultPolicyVersion,
		JuvenileCutoffMonths: map[Species]int{
			SpeciesCattle: 12,
			SpeciesGoat:   12,
			SpeciesSheep:  12,
		},
		YoungMaleCutoffMonths: map[Species]int{
			SpeciesCattle: 24,
		},
		Treatments: map[TreatmentType]TreatmentRule{
			TreatmentVaccine:          {WithdrawalDays: 0},
			TreatmentVitamins:         {WithdrawalDays: 0, NextDue: Interval{Days: 14}},
			TreatmentDewormer:         {WithdrawalDays: 14, NextDue: Interval{Months: 3}},
			TreatmentAntibiotics:      {WithdrawalDays: 21, Checkups: true},
			TreatmentAntiInflammatory: {WithdrawalDays: 7, Checkups: true},
		},
		RoutineDueSoonDays:  30,
		CheckupIntervalDays: 3,
		PregnancyCheck: PregnancyCheckRule{
			AfterMonths: 3,
			DueSoonDays: 7,
		},
		Breeds: map[Species][]string{
			SpeciesCattle: {"Angus", "Hereford", "Holstein", "Jersey", "Brahman", "Charolais", "Simmental"},
			SpeciesGoat:   {"Boer", "Nubian", "Saanen", "Alpine", "Kiko", "LaMancha"},
			SpeciesSheep:  {"Merino", "Suffolk", "Dorper", "Texel", "Katahdin", "Romney"},
		},
	}
}

// LoadPolicy lee una política completa en YAML y la valida.
func LoadPolicy(r io.Reader) (Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return Policy{}, fmt.Errorf("%w: policy yaml: %v", ErrInvalidInput, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate exige una tabla completa: cada especie con su corte juvenil y cada tipo de tratamiento con su regla.
func (p Policy) Validate() error {
	if strings.TrimSpace(p.Version) == "" {
		return fmt.Errorf("%w: policy version required", ErrInvalidInput)
	}
	for _, s := range []Species{SpeciesCattle, SpeciesGoat, SpeciesSheep} {
		cut, ok := p.JuvenileCutoffMonths[s]
		if !ok || cut <= 0 {
			return fmt.Errorf("%w: juvenile cutoff missing for %s", ErrInvalidInput, s)
		}
		if young, ok := p.YoungMaleCutoffMonths[s]; ok && young <= cut {
			return fmt.Errorf("%w: young male cutoff for %s must be above the juvenile cutoff", ErrInvalidInput, s)
		}
	}
	for s := range p.JuvenileCutoffMonths {
		if !s.Valid() {
			return fmt.Errorf("%w: unknown species %q", ErrInvalidInput, s)
		}
	}
	for s := range p.YoungMaleCutoffMonths {
		if l, ok := labels[s]; !ok || l.youngMale == nil {
			return fmt.Errorf("%w: no young male category for species %q", ErrInvalidInput, s)
		}
	}
	for _, t := range AllTreatmentTypes() {
		rule, ok := p.Treatments[t]
		if !ok {
			return fmt.Errorf("%w: treatment rule missing for %s", ErrInvalidInput, t)
		}
		if rule.WithdrawalDays < 0 || rule.NextDue.Months < 0 || rule.NextDue.Days < 0 {
			return fmt.Errorf("%w: negative offset for %s", ErrInvalidInput, t)
		}
	}
	for t := range p.Treatments {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown treatment type %q", ErrInvalidInput, t)
		}
	}
	if p.RoutineDueSoonDays < 0 {
		return fmt.Errorf("%w: routine due soon band must be >= 0", ErrInvalidInput)
	}
	if p.CheckupIntervalDays <= 0 {
		return fmt.Errorf("%w: checkup interval must be > 0", ErrInvalidInput)
	}
	if p.PregnancyCheck.AfterMonths <= 0 || p.PregnancyCheck.DueSoonDays < 0 {
		return fmt.Errorf("%w: invalid pregnancy check rule", ErrInvalidInput)
	}
	for s := range p.Breeds {
		if !s.Valid() {
			return fmt.Errorf("%w: breeds listed for unknown species %q", ErrInvalidInput, s)
		}
	}
	return nil
}

// Clone copia profunda: el motor guarda su propia copia.
func (p Policy) Clone() Policy {
	out := p
	out.JuvenileCutoffMonths = cloneMap(p.JuvenileCutoffMonths)
	out.YoungMaleCutoffMonths = cloneMap(p.YoungMaleCutoffMonths)
	out.Treatments = cloneMap(p.Treatments)
	out.Breeds = make(map[Species][]string, len(p.Breeds))
	for s, list := range p.Breeds {
		out.Breeds[s] = slices.Clone(list)
	}
	return out
}

// WithBreeds devuelve una nueva versión de la política con razas agregadas.
// La política original no se toca.
func (p Policy) WithBreeds(version string, species Species, breeds ...string) Policy {
	out := p.Clone()
	out.Version = version
	for _, b := range breeds {
		b = strings.TrimSpace(b)
		if b == "" || out.HasBreed(species, b) {
			continue
		}
		out.Breeds[species] = append(out.Breeds[species], b)
	}
	return out
}

// HasBreed compara sin distinguir mayúsculas.
func (p Policy) HasBreed(species Species, breed string) bool {
	for _, b := range p.Breeds[species] {
		if strings.EqualFold(b, strings.TrimSpace(breed)) {
			return true
		}
	}
	return false
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
