package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Size define el porte, que en estética determina tiempos y precios.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Pet pertenece a exactamente un cliente.
type Pet struct {
	ID       int64
	ClientID int64

	Name    string
	Species Species
	Breed   string
	Sex     Sex
	Size    Size

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
