package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// DefaultJWTExpirationHours matches the token lifetime of the auth provider.
const DefaultJWTExpirationHours = 24

// JWTConfig holds the shared secret used to verify bearer tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig(v *viper.Viper) (*JWTConfig, error) {
	if err := v.BindEnv("jwt_secret", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind JWT_SECRET: %w", err)
	}
	if err := v.BindEnv("jwt_expiration_hours", "JWT_EXPIRATION_HOURS"); err != nil {
		return nil, fmt.Errorf("failed to bind JWT_EXPIRATION_HOURS: %w", err)
	}

	secret := v.GetString("jwt_secret")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours := DefaultJWTExpirationHours
	if raw := v.GetString("jwt_expiration_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = hours
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
