package profiles

import "time"

// Profile es el perfil público mínimo de un usuario. La identidad vive
// en el servicio de sesiones; acá solo guardamos lo que la UI muestra.
type Profile struct {
	UserID string

	Name     string
	Email    string
	Phone    string
	City     string
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
