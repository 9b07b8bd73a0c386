package animals

import (
	"time"

	"farm-livestock-records/internal/domain/lifecycle"
)

// Animal representa la ficha básica de un animal del rodeo/majada.
type Animal struct {
	ID  string
	Tag string // caravana / arete

	Name    string
	Species lifecycle.Species
	Breed   string
	Sex     lifecycle.Sex

	DateOfBirth time.Time

	// HasBred solo tiene sentido para hembras; en machos se guarda siempre false.
	HasBred bool
	// IsNewborn es una marca administrativa (evaluación sanitaria pendiente), no la edad.
	IsNewborn bool
	// Castrated lo marca el usuario; la clasificación por edad nunca lo deduce.
	Castrated bool

	DamID  string
	SireID string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile es la vista calculada al momento de leer (edad y categoría nunca se guardan).
type Profile struct {
	Animal    Animal
	AgeMonths int
	Category  lifecycle.Category
}
