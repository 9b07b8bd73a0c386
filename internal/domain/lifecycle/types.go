package lifecycle

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfOrder indica un evento fechado antes de otro del que depende.
	ErrOutOfOrder = errors.New("out of order")
)

// Species define las especies soportadas.
// @Enum cattle, goat, sheep
type Species string

const (
	SpeciesCattle Species = "cattle"
	SpeciesGoat   Species = "goat"
	SpeciesSheep  Species = "sheep"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesCattle, SpeciesGoat, SpeciesSheep:
		return true
	}
	return false
}

// ParseSpecies acepta mayúsculas/minúsculas ("Cattle", "cattle").
func ParseSpecies(raw string) (Species, error) {
	s := Species(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidInput
	}
	return s, nil
}

// Sex define el sexo del animal.
// @Enum male, female
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

func ParseSex(raw string) (Sex, error) {
	s := Sex(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidInput
	}
	return s, nil
}

// TreatmentType define los tratamientos que se pueden registrar.
// @Enum VACCINE, VITAMINS, ANTIBIOTICS, ANTI_INFLAMMATORY, DEWORMER
type TreatmentType string

const (
	TreatmentVaccine          TreatmentType = "VACCINE"
	TreatmentVitamins         TreatmentType = "VITAMINS"
	TreatmentAntibiotics      TreatmentType = "ANTIBIOTICS"
	TreatmentAntiInflammatory TreatmentType = "ANTI_INFLAMMATORY"
	TreatmentDewormer         TreatmentType = "DEWORMER"
)

var treatmentLabels = map[TreatmentType]string{
	TreatmentVaccine:          "Vaccine",
	TreatmentVitamins:         "Vitamins",
	TreatmentAntibiotics:      "Antibiotics",
	TreatmentAntiInflammatory: "Anti-Inflammatory",
	TreatmentDewormer:         "Dewormer",
}

// AllTreatmentTypes en el orden en que se muestran en formularios.
func AllTreatmentTypes() []TreatmentType {
	return []TreatmentType{
		TreatmentVaccine,
		TreatmentVitamins,
		TreatmentAntibiotics,
		TreatmentAntiInflammatory,
		TreatmentDewormer,
	}
}

func (t TreatmentType) Valid() bool {
	_, ok := treatmentLabels[t]
	return ok
}

func (t TreatmentType) Label() string {
	return treatmentLabels[t]
}

// ParseTreatmentType acepta el código ("ANTI_INFLAMMATORY") o la etiqueta ("Anti-Inflammatory").
func ParseTreatmentType(raw string) (TreatmentType, error) {
	raw = strings.TrimSpace(raw)
	if t := TreatmentType(strings.ToUpper(raw)); t.Valid() {
		return t, nil
	}
	for t, label := range treatmentLabels {
		if strings.EqualFold(label, raw) {
			return t, nil
		}
	}
	return "", ErrInvalidInput
}

// ScheduleStatus es derivado; nunca se persiste.
type ScheduleStatus string

const (
	StatusCompleted ScheduleStatus = "completed"
	StatusDueSoon   ScheduleStatus = "due_soon"
	StatusOverdue   ScheduleStatus = "overdue"
	// StatusNotDue solo aplica al chequeo de preñez: todavía no hay aviso.
	StatusNotDue ScheduleStatus = "not_due"
)

// NeedsAttention es true para due_soon y overdue.
func (s ScheduleStatus) NeedsAttention() bool {
	return s == StatusDueSoon || s == StatusOverdue
}
