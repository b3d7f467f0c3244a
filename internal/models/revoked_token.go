package models

import (
	"time"
)

// RevokedToken represents a revoked or invalidated access token.
// Entries are keyed by the jti claim and become inert once ExpiresAt
// passes; the store purges them lazily.
type RevokedToken struct {
	TokenID   string    `json:"token_id"`   // JTI (JWT ID) claim from the token
	ExpiresAt time.Time `json:"expires_at"` // Token expiration time
	CreatedAt time.Time `json:"created_at"` // Time when token was revoked
}
