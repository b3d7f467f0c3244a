package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is the encoded credential
// ("iterations.salt.digest"), never the cleartext password, and must
// not be logged or displayed.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
