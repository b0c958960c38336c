package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID        int64
	Email     string
	Password  string
	Role      Role
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthPayload is what a login hands back and what the signed token carries.
type AuthPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Payload() AuthPayload {
	return AuthPayload{ID: u.ID, Email: u.Email, Role: u.Role}
}
