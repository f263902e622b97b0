package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Profile store backends.
const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	LogLevel                         string `mapstructure:"LOG_LEVEL"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	ProfileStore                     string `mapstructure:"PROFILE_STORE"`
	UsersCollection                  string `mapstructure:"USERS_COLLECTION"`
	HeartbeatSubscription            string `mapstructure:"HEARTBEAT_SUBSCRIPTION"`
	MaxBodyBytes                     int64  `mapstructure:"MAX_BODY_BYTES"`
}

// projectEnvVars are checked in order for the project ID.
var projectEnvVars = []string{"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"}

var keys = []string{
	"PORT",
	"GIN_MODE",
	"LOG_LEVEL",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CLIENT_URL",
	"PROFILE_STORE",
	"USERS_COLLECTION",
	"HEARTBEAT_SUBSCRIPTION",
	"MAX_BODY_BYTES",
}

// LoadConfig loads configuration from environment variables using Viper.
// When CONFIG_FILE is set, that file is read first and environment
// variables take precedence over its values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROFILE_STORE", StoreFirestore)
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("MAX_BODY_BYTES", 100*1024)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	// The first name is the key; the runtime's project variables are fallbacks.
	if err := v.BindEnv(projectEnvVars...); err != nil {
		return nil, fmt.Errorf("failed to bind FIREBASE_PROJECT_ID: %w", err)
	}

	if err := v.BindEnv("CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind CONFIG_FILE: %w", err)
	}
	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and normalizes enumerations.
func (c *Config) Validate() error {
	c.ProfileStore = strings.ToLower(strings.TrimSpace(c.ProfileStore))
	// An empty FIREBASE_PROJECT_ID is allowed: the Firebase and Pub/Sub
	// clients then detect the project from the credentials.
	switch c.ProfileStore {
	case StoreFirestore, StoreMemory:
	default:
		return fmt.Errorf("PROFILE_STORE must be %q or %q, got %q", StoreFirestore, StoreMemory, c.ProfileStore)
	}
	if c.UsersCollection == "" {
		return errors.New("USERS_COLLECTION must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// IsRelease reports whether the service runs in gin release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
