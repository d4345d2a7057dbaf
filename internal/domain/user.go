package domain

// User is a credential record in the in-memory user directory, keyed by
// email. Passwords are held verbatim; the directory is never persisted.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
