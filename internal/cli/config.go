package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
)

// Store kinds accepted by --store.
const (
	StoreBolt   = "bolt"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is what the persistent flags resolve to. Every field defaults to
// its environment variable.
type Config struct {
	APIURL        string
	Store         string
	StorePath     string
	MasterKeyPath string
	Timeout       time.Duration
	Grace         time.Duration
	Env           string
	LogLevel      string
	LogFormat     string
	JSON          bool
}

func defaultConfig() Config {
	return Config{
		APIURL:        getEnvOrDefault("CLIMBLOG_API_URL", climbsdk.DefaultBaseURL),
		Store:         getEnvOrDefault("CLIMBLOG_STORE", StoreBolt),
		StorePath:     getEnvOrDefault("CLIMBLOG_STORE_PATH", defaultStorePath()),
		MasterKeyPath: os.Getenv("CLIMBLOG_MASTER_KEY_PATH"),
		Timeout:       getEnvDurationOrDefault("CLIMBLOG_TIMEOUT", climbsdk.DefaultTimeout),
		Grace:         getEnvDurationOrDefault("CLIMBLOG_GRACE", jwtx.DefaultGrace),
		Env:           getEnvOrDefault("ENV", "prod"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// defaultStorePath is ~/.climblog/session.db, or ./.climblog/session.db
// when there is no home directory.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".climblog", "session.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
