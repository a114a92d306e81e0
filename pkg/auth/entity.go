package auth

// Administrator is an operator allowed to manage users.
// PasswordHash holds a bcrypt hash, never the plain password.
type Administrator struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}
