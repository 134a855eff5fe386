// Package models defines the persistent entities of the bookmark manager.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server; handlers expose users as PublicUser only.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the client-facing representation of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AsPublic strips the credential fields.
func (u *User) AsPublic() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
