package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// DefaultTokenLifetime bounds a session when no lifetime is configured.
const DefaultTokenLifetime = time.Hour

// TokenClaims is the authenticated identity carried by a valid token.
type TokenClaims struct {
	UserID    uuid.UUID
	Username  string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues, validates and revokes the signed session tokens
// handed to callers on sign-in.
type TokenService interface {
	// Issue signs a token for the user: subject, username claim and a
	// fresh jti, expiring after the configured lifetime.
	Issue(user *models.User) (string, error)

	// Validate checks structure, signature, issuer/audience, expiry and
	// revocation, in that order, and returns the claims on success.
	// Failures collapse into ErrTokenMalformed, ErrTokenExpired or
	// ErrTokenRevoked; adversarial input is an expected outcome here,
	// not an internal error.
	Validate(tokenString string) (*TokenClaims, error)

	// Revoke marks the token's jti revoked until the token's own
	// expiry. The payload is read without signature verification so
	// sign-out also works with an expired or corrupt token; an
	// unparsable token is a logged no-op. Revocation only subtracts
	// validity, it is not a security boundary by itself.
	Revoke(tokenString string)
}

// jwtClaims is the wire shape: RegisteredClaims plus the username.
type jwtClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type jwtService struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	revoked  *repositories.RevocationStore
}

// NewJWTService fails fast on a weak signing key; a short key is a
// deployment mistake, not a per-request condition.
func NewJWTService(
	secret []byte,
	issuer string,
	audience string,
	lifetime time.Duration,
	revoked *repositories.RevocationStore,
) (TokenService, error) {
	if len(secret) < 32 {
		return nil, utils.ErrSecretTooShort
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &jwtService{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
		revoked:  revoked,
	}, nil
}

func (j *jwtService) Issue(user *models.User) (string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	claims := jwtClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			Subject:   user.ID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) Validate(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
	)

	var claims jwtClaims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	})
	if err != nil {
		// The library verifies the signature before validating claims,
		// so nothing below this point runs on an unverified payload.
		// Claim errors arrive joined; a wrong issuer or audience makes
		// the token malformed even when it is also expired.
		switch {
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, utils.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, utils.ErrTokenExpired
		}
		return nil, utils.ErrTokenMalformed
	}
	if !token.Valid {
		return nil, utils.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, utils.ErrTokenMalformed
	}
	if claims.ID == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, utils.ErrTokenMalformed
	}

	if j.revoked.IsRevoked(claims.ID, time.Now().UTC()) {
		return nil, utils.ErrTokenRevoked
	}

	return &TokenClaims{
		UserID:    userID,
		Username:  claims.Username,
		JTI:       claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (j *jwtService) Revoke(tokenString string) {
	var claims jwtClaims
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims)
	if err != nil || claims.ID == "" {
		utils.Logger.WithError(err).Warn("Revoke skipped: token payload unparsable or missing jti")
		return
	}

	// Without a usable exp, retain the entry for one full lifetime so
	// it still self-expires.
	expiresAt := time.Now().UTC().Add(j.lifetime)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	j.revoked.Revoke(claims.ID, expiresAt)
}
