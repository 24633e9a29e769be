package auth

// Claims representa la información extraída de la sesión verificada.
type Claims struct {
	UserID string
	Email  string
}
