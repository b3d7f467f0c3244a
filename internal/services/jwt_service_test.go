package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sl1me945/TaskManager/internal/models"
	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const (
	testIssuer   = "TaskManager"
	testAudience = "TaskManagerClient"
)

func newTestTokenService(t *testing.T, lifetime time.Duration) (TokenService, *repositories.RevocationStore) {
	t.Helper()
	store := repositories.NewRevocationStore()
	svc, err := NewJWTService(testSecret, testIssuer, testAudience, lifetime, store)
	require.NoError(t, err)
	return svc, store
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Username: "andrii"}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService([]byte("too-short"), testIssuer, testAudience, time.Hour, repositories.NewRevocationStore())
	assert.ErrorIs(t, err, utils.ErrSecretTooShort)
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)
	user := testUser()

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "andrii", claims.Username)
	assert.NotEmpty(t, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestTwoTokensForSameUserAreIndependent(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)
	user := testUser()

	first, err := svc.Issue(user)
	require.NoError(t, err)
	second, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	svc.Revoke(first)

	_, err = svc.Validate(first)
	assert.ErrorIs(t, err, utils.ErrTokenRevoked)
	_, err = svc.Validate(second)
	assert.NoError(t, err)
}

func TestValidateRejectsMalformedStructure(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d", "!!.!!.!!"} {
		_, err := svc.Validate(bad)
		assert.ErrorIs(t, err, utils.ErrTokenMalformed, "input %q", bad)
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	tamperedPayload := parts[0] + "." + flip(parts[1]) + "." + parts[2]
	_, err = svc.Validate(tamperedPayload)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)

	tamperedSignature := parts[0] + "." + parts[1] + "." + flip(parts[2])
	_, err = svc.Validate(tamperedSignature)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)
}

func TestValidateRejectsForeignKeyAndWrongAudience(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	otherSecret := []byte("ffffffffffffffffffffffffffffffff")
	forged := signedTestToken(t, otherSecret, testIssuer, testAudience, time.Now().Add(time.Hour))
	_, err := svc.Validate(forged)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)

	wrongIssuer := signedTestToken(t, testSecret, "SomeoneElse", testAudience, time.Now().Add(time.Hour))
	_, err = svc.Validate(wrongIssuer)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)

	wrongAudience := signedTestToken(t, testSecret, testIssuer, "OtherClient", time.Now().Add(time.Hour))
	_, err = svc.Validate(wrongAudience)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)
}

func TestValidateForeignAndExpiredTokenIsMalformed(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	// Wrong issuer or audience outranks expiry: a token from another
	// system never reads as "your session expired".
	past := time.Now().Add(-time.Minute)

	expiredWrongIssuer := signedTestToken(t, testSecret, "SomeoneElse", testAudience, past)
	_, err := svc.Validate(expiredWrongIssuer)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)

	expiredWrongAudience := signedTestToken(t, testSecret, testIssuer, "OtherClient", past)
	_, err = svc.Validate(expiredWrongAudience)
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	// Correctly signed, but already expired: expiry wins over a valid
	// signature.
	expired := signedTestToken(t, testSecret, testIssuer, testAudience, time.Now().Add(-time.Minute))
	_, err := svc.Validate(expired)
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
}

func TestRevokeThenValidate(t *testing.T) {
	svc, store := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.NoError(t, err)

	svc.Revoke(token)
	require.Equal(t, 1, store.Len())

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, utils.ErrTokenRevoked)
}

func TestRevokeDoesNotRequireValidSignature(t *testing.T) {
	svc, _ := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	// Corrupt the signature segment; the payload (and jti) survive.
	parts := strings.Split(token, ".")
	corrupted := parts[0] + "." + parts[1] + ".AAAA"

	svc.Revoke(corrupted)

	// The genuine token shares the jti, so it is revoked too.
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, utils.ErrTokenRevoked)
}

func TestRevokeUnparsableTokenIsNoOp(t *testing.T) {
	svc, store := newTestTokenService(t, time.Hour)

	svc.Revoke("")
	svc.Revoke("complete garbage")
	svc.Revoke("a.b.c")

	assert.Equal(t, 0, store.Len())
}

func TestExpiredRevocationEntryIsInert(t *testing.T) {
	svc, store := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	claims, err := svc.Validate(token)
	require.NoError(t, err)

	// Simulate the token's natural expiry having passed: the entry is
	// stale, lookup drops it, and validation outcome for the token is
	// decided by the exp claim (still "invalid", just not "revoked").
	store.Revoke(claims.JTI, time.Now().Add(-time.Second))
	require.Equal(t, 1, store.Len())

	validated, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, claims.JTI, validated.JTI)
	assert.Equal(t, 0, store.Len())
}

func TestSessionLifecycleScenario(t *testing.T) {
	svc, store := newTestTokenService(t, time.Hour)
	user := &models.User{ID: uuid.New(), Username: "andrii"}

	// t0: issue; t0+1s: valid.
	token, err := svc.Issue(user)
	require.NoError(t, err)
	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	// t0+2s: revoke; t0+3s: invalid, reason revoked.
	svc.Revoke(token)
	_, err = svc.Validate(token)
	require.ErrorIs(t, err, utils.ErrTokenRevoked)

	// t0+2h: past natural expiry. The revocation entry may be purged
	// by then; the outcome must still be "invalid", now as expired.
	store.Sweep(time.Now().Add(2 * time.Hour))
	expired := signedTestToken(t, testSecret, testIssuer, testAudience, time.Now().Add(-time.Hour))
	_, err = svc.Validate(expired)
	require.ErrorIs(t, err, utils.ErrTokenExpired)
}

// signedTestToken builds a correctly signed token with arbitrary
// issuer/audience/expiry, for exercising each rejection branch.
func signedTestToken(t *testing.T, secret []byte, issuer, audience string, expiresAt time.Time) string {
	t.Helper()

	claims := jwtClaims{
		Username: "andrii",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   uuid.NewString(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}
