// Package config loads runtime settings from flags, environment variables and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment variables, e.g. OPPORTUNITY_MATCHER_PORT.
const EnvPrefix = "OPPORTUNITY_MATCHER"

// Defaults
const (
	DefaultPort  = 8080
	DefaultLimit = 10
	MaxLimit     = 100
)

// Keys shared by the viper instance and the cobra flags bound to it.
const (
	KeyDatabaseURL   = "database_url"
	KeySQLite        = "sqlite"
	KeyPort          = "port"
	KeyLimit         = "limit"
	KeyRAG           = "rag"
	KeyProfiles      = "profiles"
	KeyOpportunities = "opportunities"
	KeyJSON          = "json"
	KeyDebug         = "debug"
)

// Config is the merged runtime configuration.
type Config struct {
	DatabaseURL string `mapstructure:"database_url"`
	// SQLitePath selects a local database file over DatabaseURL.
	SQLitePath  string `mapstructure:"sqlite"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	Limit       int    `mapstructure:"limit" validate:"min=1,max=100"`
	UseRAG      bool   `mapstructure:"rag"`

	// File sources replace the database when both are set.
	ProfilesFile      string `mapstructure:"profiles" validate:"required_with=OpportunitiesFile"`
	OpportunitiesFile string `mapstructure:"opportunities"`

	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) error {
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLimit, DefaultLimit)
	v.SetDefault(KeyRAG, true)
	v.SetDefault(KeySQLite, "")
	v.SetDefault(KeyProfiles, "")
	v.SetDefault(KeyOpportunities, "")
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyDebug, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Shared with the auth provider and the migration tooling, so no prefix.
	if err := v.BindEnv(KeyDatabaseURL, EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}
	return nil
}

// Load reads an optional config file into v and unmarshals the result.
// An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := SetDefaults(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and that file sources come in pairs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config error: invalid %s (%s)", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.ProfilesFile != "" && c.OpportunitiesFile == "" {
		return fmt.Errorf("config error: 'profiles' requires 'opportunities'")
	}
	return nil
}

// UsesFiles reports whether profiles and opportunities come from JSON files.
func (c *Config) UsesFiles() bool {
	return c.OpportunitiesFile != "" && c.ProfilesFile != ""
}
