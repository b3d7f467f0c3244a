package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Sl1me945/TaskManager/internal/utils"
)

const (
	DefaultIssuer      = "TaskManager"
	DefaultAudience    = "TaskManagerClient"
	DefaultExpiryHours = 1
	DefaultDataDir     = "data"
	DefaultAppPort     = "8080"
)

// Config holds all application configuration. JWTSecretKey is either
// base64 or the raw key bytes; SigningKey resolves it.
type Config struct {
	AppPort       string `mapstructure:"APP_PORT"`
	DataDir       string `mapstructure:"DATA_DIR"`
	AllowedOrigin string `mapstructure:"ALLOWED_ORIGIN"`

	JWTSecretKey   string `mapstructure:"JWT_SECRET_KEY"`
	JWTIssuer      string `mapstructure:"JWT_ISSUER"`
	JWTAudience    string `mapstructure:"JWT_AUDIENCE"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
}

// LoadFromEnv reads configuration from the environment, loading .env
// first when present (local development only).
func LoadFromEnv() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	keys := []string{
		"APP_PORT", "DATA_DIR", "ALLOWED_ORIGIN",
		"JWT_SECRET_KEY", "JWT_ISSUER", "JWT_AUDIENCE", "JWT_EXPIRY_HOURS",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("APP_PORT", DefaultAppPort)
	v.SetDefault("DATA_DIR", DefaultDataDir)
	v.SetDefault("JWT_ISSUER", DefaultIssuer)
	v.SetDefault("JWT_AUDIENCE", DefaultAudience)
	v.SetDefault("JWT_EXPIRY_HOURS", DefaultExpiryHours)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// SigningKey decodes JWT_SECRET_KEY, treating it as base64 first and
// falling back to raw bytes. Fails when the key is absent or shorter
// than 32 bytes; issuing tokens with a weak key is a startup error.
func (c *Config) SigningKey() ([]byte, error) {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return nil, errors.New("JWT_SECRET_KEY is not configured")
	}

	key, err := base64.StdEncoding.DecodeString(c.JWTSecretKey)
	if err != nil {
		key = []byte(c.JWTSecretKey)
	}

	if len(key) < 32 {
		return nil, fmt.Errorf("%w (got %d)", utils.ErrSecretTooShort, len(key))
	}
	return key, nil
}

func (c *Config) TokenLifetime() time.Duration {
	hours := c.JWTExpiryHours
	if hours <= 0 {
		hours = DefaultExpiryHours
	}
	return time.Duration(hours) * time.Hour
}

// String implements Stringer with the secret masked.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DataDir: %s\n", c.DataDir))
	sb.WriteString(fmt.Sprintf("  AllowedOrigin: %s\n", c.AllowedOrigin))
	sb.WriteString(fmt.Sprintf("  JWTIssuer: %s\n", c.JWTIssuer))
	sb.WriteString(fmt.Sprintf("  JWTAudience: %s\n", c.JWTAudience))
	sb.WriteString(fmt.Sprintf("  JWTExpiryHours: %d\n", c.JWTExpiryHours))
	if c.JWTSecretKey != "" {
		sb.WriteString("  JWTSecretKey: ********\n")
	} else {
		sb.WriteString("  JWTSecretKey: (empty)\n")
	}
	return sb.String()
}
