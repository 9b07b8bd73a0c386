package lifecycle

import (
	"fmt"
	"strings"
)

// Category es la categoría de etapa de vida de un animal.
// Los campos no se exportan: solo existen los valores declarados abajo,
// así que una combinación especie/categoría inválida no se puede construir.
type Category struct {
	species Species
	label   string
	sex     Sex // "" = sin sexo (juveniles)
}

var (
	CattleCalf         = Category{SpeciesCattle, "Calf", ""}
	CattleHeifer       = Category{SpeciesCattle, "Heifer", SexFemale}
	CattleCow          = Category{SpeciesCattle, "Cow", SexFemale}
	CattleYearlingBull = Category{SpeciesCattle, "Yearling Bull", SexMale}
	CattleBull         = Category{SpeciesCattle, "Bull", SexMale}
	CattleSteer        = Category{SpeciesCattle, "Steer", SexMale}

	GoatKid       = Category{SpeciesGoat, "Kid", ""}
	GoatMaidenDoe = Category{SpeciesGoat, "Maiden Doe", SexFemale}
	GoatDoe       = Category{SpeciesGoat, "Doe", SexFemale}
	GoatBuckling  = Category{SpeciesGoat, "Buckling", SexMale}
	GoatBuck      = Category{SpeciesGoat, "Buck", SexMale}
	GoatWether    = Category{SpeciesGoat, "Wether", SexMale}

	SheepLamb      = Category{SpeciesSheep, "Lamb", ""}
	SheepMaidenEwe = Category{SpeciesSheep, "Maiden Ewe", SexFemale}
	SheepEwe       = Category{SpeciesSheep, "Ewe", SexFemale}
	SheepRam       = Category{SpeciesSheep, "Ram", SexMale}
	SheepWether    = Category{SpeciesSheep, "Wether", SexMale}
)

// Vocabulario por especie (sin categorías cruzadas).
var categoriesBySpecies = map[Species][]Category{
	SpeciesCattle: {CattleCalf, CattleHeifer, CattleCow, CattleYearlingBull, CattleBull, CattleSteer},
	SpeciesGoat:   {GoatKid, GoatMaidenDoe, GoatDoe, GoatBuckling, GoatBuck, GoatWether},
	SpeciesSheep:  {SheepLamb, SheepMaidenEwe, SheepEwe, SheepRam, SheepWether},
}

// Etiquetas fijas que usa el clasificador por especie.
type speciesLabels struct {
	juvenile    Category
	maiden      Category
	adultFemale Category
	youngMale   *Category
	adultMale   Category
	castrated   Category
}

var labels = map[Species]speciesLabels{
	SpeciesCattle: {
		juvenile:    CattleCalf,
		maiden:      CattleHeifer,
		adultFemale: CattleCow,
		youngMale:   &CattleYearlingBull,
		adultMale:   CattleBull,
		castrated:   CattleSteer,
	},
	SpeciesGoat: {
		juvenile:    GoatKid,
		maiden:      GoatMaidenDoe,
		adultFemale: GoatDoe,
		youngMale:   &GoatBuckling, // solo si la política define un corte para cabras
		adultMale:   GoatBuck,
		castrated:   GoatWether,
	},
	SpeciesSheep: {
		juvenile:    SheepLamb,
		maiden:      SheepMaidenEwe,
		adultFemale: SheepEwe,
		adultMale:   SheepRam,
		castrated:   SheepWether,
	},
}

func (c Category) Species() Species { return c.species }
func (c Category) String() string   { return c.label }
func (c Category) IsZero() bool     { return c.label == "" }

// Sex devuelve "" para las categorías juveniles (sin sexo).
func (c Category) Sex() Sex { return c.sex }

// IsJuvenile es true para Calf/Kid/Lamb.
func (c Category) IsJuvenile() bool {
	l, ok := labels[c.species]
	return ok && c == l.juvenile
}

// IsCastrated es true para Steer/Wether.
func (c Category) IsCastrated() bool {
	l, ok := labels[c.species]
	return ok && c == l.castrated
}

// AllowsSex indica si la categoría es consistente con el sexo dado.
func (c Category) AllowsSex(sex Sex) bool {
	return c.sex == "" || c.sex == sex
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.label), nil
}

// CategoriesFor devuelve el vocabulario de la especie (copia).
func CategoriesFor(species Species) []Category {
	src := categoriesBySpecies[species]
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// ParseCategory busca la etiqueta dentro del vocabulario de la especie.
// Se usa en formularios de edición, donde Steer/Wether se eligen a mano.
func ParseCategory(species Species, label string) (Category, error) {
	label = strings.TrimSpace(label)
	for _, c := range categoriesBySpecies[species] {
		if strings.EqualFold(c.label, label) {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: category %q is not defined for %s", ErrInvalidInput, label, species)
}

// CastratedCategory devuelve Steer/Wether para la especie.
func CastratedCategory(species Species) (Category, error) {
	l, ok := labels[species]
	if !ok {
		return Category{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, species)
	}
	return l.castrated, nil
}

// Castrate aplica la castración sobre una categoría ya clasificada.
// Solo cambia a los machos que dejaron de ser juveniles.
func Castrate(c Category) (Category, error) {
	if c.sex != SexMale || c.IsJuvenile() || c.IsCastrated() {
		return c, nil
	}
	return CastratedCategory(c.species)
}
