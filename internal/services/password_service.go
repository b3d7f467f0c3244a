package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Sl1me945/TaskManager/internal/utils"
)

const (
	// DefaultHashIterations is the PBKDF2 cost factor for newly created
	// credentials. The iteration count is stored inside each encoded
	// credential, so raising it later never invalidates old ones.
	DefaultHashIterations = 100_000

	saltSize   = 16
	digestSize = 32
)

// PasswordHasher derives and verifies salted password credentials.
// The encoded form is "<iterations>.<base64 salt>.<base64 digest>".
type PasswordHasher interface {
	// Hash derives a credential from a password. Fails on an empty
	// password; an empty credential is never valid.
	Hash(password string) (string, error)

	// Verify re-derives a digest with the credential's stored salt and
	// iteration count and compares in constant time. Any malformed
	// credential verifies as false, never as an error, so a parse
	// failure is indistinguishable from a wrong password.
	Verify(encoded, password string) bool
}

type pbkdf2Hasher struct {
	iterations int
}

func NewPasswordHasher() PasswordHasher {
	return &pbkdf2Hasher{iterations: DefaultHashIterations}
}

// NewPasswordHasherWithIterations lets callers raise the cost factor.
// Values below 1 fall back to the default.
func NewPasswordHasherWithIterations(iterations int) PasswordHasher {
	if iterations < 1 {
		iterations = DefaultHashIterations
	}
	return &pbkdf2Hasher{iterations: iterations}
}

func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", utils.ErrEmptyPassword
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, h.iterations, digestSize, sha256.New)

	encoded := fmt.Sprintf("%d.%s.%s",
		h.iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(digest),
	)

	wipe(salt)
	wipe(digest)

	return encoded, nil
}

func (h *pbkdf2Hasher) Verify(encoded, password string) bool {
	if strings.TrimSpace(encoded) == "" || strings.TrimSpace(password) == "" {
		return false
	}

	parts := strings.Split(encoded, ".")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	digest, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	// A truncated salt or digest is a forgery, not a credential; an
	// empty digest would otherwise compare equal to an empty candidate.
	if len(salt) != saltSize || len(digest) != digestSize {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), salt, iterations, len(digest), sha256.New)

	// Fixed-time compare; must not short-circuit on the first
	// mismatched byte.
	match := subtle.ConstantTimeCompare(candidate, digest) == 1

	wipe(candidate)
	wipe(digest)
	wipe(salt)

	return match
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
