package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/jwtx"
)

type Config struct {
	Issuer              string        // Optional: issuer claim for tokens (default: climblog-dev)
	TokenTTL            time.Duration // Optional: access token lifetime (default: 15m)
	KeyFile             string        // Optional: sealed Ed25519 signing key, empty for an ephemeral key (default: ./signing.key)
	MasterKeyPath       string        // Optional: path to master encryption key file sealing KeyFile
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./climblog.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Seed                bool          // Optional: load the reference catalog into an empty database (default: true)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("DEVSERVER_ISSUER", "climblog-dev"),
		TokenTTL:            getEnvDurationOrDefault("DEVSERVER_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		KeyFile:             getEnvOrDefault("DEVSERVER_KEY_FILE", "signing.key"),
		MasterKeyPath:       os.Getenv("DEVSERVER_MASTER_KEY_PATH"),
		DatabaseFile:        getEnvOrDefault("DEVSERVER_DATABASE_FILE", "climblog.db"),
		PepperFile:          getEnvOrDefault("DEVSERVER_PEPPER_FILE", "pepper"),
		Seed:                getEnvBoolOrDefault("DEVSERVER_SEED", true),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
