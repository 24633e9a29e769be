package adoptions

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidTransition: el status actual ya no admite la acción pedida.
	// El Outcome que acompaña al error trae el status vigente para que la UI
	// pueda mostrar "ya fue aceptada/rechazada".
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConcurrentModification: la escritura condicional perdió la carrera
	// contra otra transición. El caller debe recargar y reintentar.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrPetUnavailable: la mascota ya no está disponible para adopción.
	ErrPetUnavailable = errors.New("pet unavailable")
)
