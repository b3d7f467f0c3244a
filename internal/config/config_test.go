package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sl1me945/TaskManager/internal/utils"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultAppPort, cfg.AppPort)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultIssuer, cfg.JWTIssuer)
	assert.Equal(t, DefaultAudience, cfg.JWTAudience)
	assert.Equal(t, DefaultExpiryHours, cfg.JWTExpiryHours)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("DATA_DIR", "/var/lib/taskmanager")
	t.Setenv("JWT_ISSUER", "CustomIssuer")
	t.Setenv("JWT_EXPIRY_HOURS", "12")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.AppPort)
	assert.Equal(t, "/var/lib/taskmanager", cfg.DataDir)
	assert.Equal(t, "CustomIssuer", cfg.JWTIssuer)
	assert.Equal(t, 12, cfg.JWTExpiryHours)
	assert.Equal(t, 12*time.Hour, cfg.TokenLifetime())
}

func TestSigningKeyAcceptsRawAndBase64(t *testing.T) {
	raw := "0123456789abcdef0123456789abcdef"

	cfg := &Config{JWTSecretKey: raw}
	key, err := cfg.SigningKey()
	require.NoError(t, err)
	assert.Equal(t, []byte(raw), key)

	cfg = &Config{JWTSecretKey: base64.StdEncoding.EncodeToString([]byte(raw))}
	key, err = cfg.SigningKey()
	require.NoError(t, err)
	assert.Equal(t, []byte(raw), key)
}

func TestSigningKeyRejectsMissingOrShortKey(t *testing.T) {
	// The two failures are distinct: callers treat an absent key as
	// "not configured" but a present-but-short key as fatal.
	cfg := &Config{}
	_, err := cfg.SigningKey()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrSecretTooShort)

	cfg = &Config{JWTSecretKey: "   "}
	_, err = cfg.SigningKey()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrSecretTooShort)

	cfg = &Config{JWTSecretKey: "short"}
	_, err = cfg.SigningKey()
	assert.ErrorIs(t, err, utils.ErrSecretTooShort)

	// Base64 that decodes to fewer than 32 bytes is short too.
	cfg = &Config{JWTSecretKey: "c2hvcnQ="}
	_, err = cfg.SigningKey()
	assert.ErrorIs(t, err, utils.ErrSecretTooShort)
}

func TestTokenLifetimeFallsBackToDefault(t *testing.T) {
	cfg := &Config{JWTExpiryHours: 0}
	assert.Equal(t, time.Duration(DefaultExpiryHours)*time.Hour, cfg.TokenLifetime())

	cfg = &Config{JWTExpiryHours: -3}
	assert.Equal(t, time.Duration(DefaultExpiryHours)*time.Hour, cfg.TokenLifetime())
}

func TestStringMasksSecret(t *testing.T) {
	cfg := &Config{JWTSecretKey: "super-secret-value-super-secret-value"}

	out := cfg.String()
	assert.NotContains(t, out, "super-secret-value")
	assert.Contains(t, out, "********")
}
