package config

import (
	"fmt"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the application settings.
type Config struct {
	AppPort          string
	AuthMode         string
	APIKey           string
	APIKeyHash       string
	JWTSecret        string
	StoreDriver      string
	DatabaseDSN      string
	RabbitMQURL      string
	MergePolicy      models.MergePolicy
	DefaultPageLimit int
	SeedCatalog      bool
	RequestLogging   bool
}

// SetDefaults registers every key's default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("AUTH_MODE", services.AuthModeStatic)
	v.SetDefault("API_KEY", "your-secret-api-key")
	v.SetDefault("API_KEY_HASH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("MERGE_POLICY", string(models.MergeLegacy))
	v.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	v.SetDefault("SEED_CATALOG", true)
	v.SetDefault("REQUEST_LOGGING", true)
}

// Load reads configuration from an optional file named by CONFIG_FILE and
// from environment variables, which take precedence.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	policy, err := models.ParseMergePolicy(v.GetString("MERGE_POLICY"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		AuthMode:         v.GetString("AUTH_MODE"),
		APIKey:           v.GetString("API_KEY"),
		APIKeyHash:       v.GetString("API_KEY_HASH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		StoreDriver:      v.GetString("STORE_DRIVER"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		MergePolicy:      policy,
		DefaultPageLimit: v.GetInt("DEFAULT_PAGE_LIMIT"),
		SeedCatalog:      v.GetBool("SEED_CATALOG"),
		RequestLogging:   v.GetBool("REQUEST_LOGGING"),
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.DefaultPageLimit < 1 {
		return nil, fmt.Errorf("DEFAULT_PAGE_LIMIT must be at least 1, got %d", cfg.DefaultPageLimit)
	}
	if _, err := cfg.AuthSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AuthSecret returns the secret the configured auth mode verifies against.
func (c *Config) AuthSecret() (string, error) {
	var secret string
	switch c.AuthMode {
	case services.AuthModeStatic:
		secret = c.APIKey
	case services.AuthModeBcrypt:
		secret = c.APIKeyHash
	case services.AuthModeJWT:
		secret = c.JWTSecret
	default:
		return "", fmt.Errorf("unknown auth mode %q", c.AuthMode)
	}
	if secret == "" {
		return "", fmt.Errorf("auth mode %q needs a secret", c.AuthMode)
	}
	return secret, nil
}
