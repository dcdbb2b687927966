package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds the application configuration. It is built once at startup
// and never mutated.
type Config struct {
	ServerPort int
	DevMode    string
	LogLevel   string

	StoreDriver   string
	DatabasePath  string
	MongoURL      string
	MongoDatabase string

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	CORSAllowedOrigins []string

	// JobReadRequiresOwner scopes GET /job/get-job/{id} to the token's user.
	JobReadRequiresOwner bool
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.DevMode == "development"
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, fallback string) string {
		if value, exists := lookup(key); exists && value != "" {
			return value
		}
		return fallback
	}

	port, err := strconv.Atoi(getEnv("PORT", "3009"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	expiresIn, err := ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	ownerReads, err := strconv.ParseBool(getEnv("JOB_READ_REQUIRES_OWNER", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_READ_REQUIRES_OWNER: %w", err)
	}

	cfg := &Config{
		ServerPort:           port,
		DevMode:              getEnv("DEV_MODE", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabasePath:         getEnv("DATABASE_PATH", "./jobportal.db"),
		MongoURL:             getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase:        getEnv("MONGODB_DATABASE", "jobportal"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpiresIn:         expiresIn,
		BcryptCost:           cost,
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JobReadRequiresOwner: ownerReads,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	switch c.StoreDriver {
	case DriverSQLite, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// ParseDuration accepts Go durations plus a day suffix, e.g. "7d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("bad day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
