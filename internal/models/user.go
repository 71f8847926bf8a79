package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	PasswordHash string `json:"-"`
}

// Actor identifies who is performing an operation. It is built from the
// request's token claims and handed to the service layer; services decide
// permissions from IsAdmin, never from the username.
type Actor struct {
	Name    string
	IsAdmin bool
}
