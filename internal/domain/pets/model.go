package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Status define la disponibilidad para adopción.
// La única escritura de adopted sale del cierre de una adopción (complete).
// @Enum available, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	AgeMonths   int
	Description string
	PhotoURL    string
	City        string

	Status    Status
	AdoptedBy *string
	AdoptedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusUpdate es la escritura parcial de adopción sobre la mascota.
// AdoptedBy/AdoptedAt son opcionales: los adapters solo escriben los
// campos que vienen seteados.
type StatusUpdate struct {
	Status    Status
	AdoptedBy *string
	AdoptedAt *time.Time
	UpdatedAt time.Time
}
