package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := load(envFrom(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, 3009, cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "./jobportal.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.JobReadRequiresOwner)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := load(envFrom(map[string]string{
		"JWT_SECRET":              "s",
		"PORT":                    "8080",
		"STORE_DRIVER":            "Mongo",
		"MONGODB_URL":             "mongodb://db:27017",
		"JWT_EXPIRES_IN":          "7d",
		"CORS_ALLOWED_ORIGINS":    "http://a.test, http://b.test,",
		"JOB_READ_REQUIRES_OWNER": "true",
		"DEV_MODE":                "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.JobReadRequiresOwner)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"bad port", map[string]string{"JWT_SECRET": "s", "PORT": "http"}},
		{"bad expiry", map[string]string{"JWT_SECRET": "s", "JWT_EXPIRES_IN": "soon"}},
		{"negative expiry", map[string]string{"JWT_SECRET": "s", "JWT_EXPIRES_IN": "-1h"}},
		{"bad driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "redis"}},
		{"bad cost", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "ten"}},
		{"bad bool", map[string]string{"JWT_SECRET": "s", "JOB_READ_REQUIRES_OWNER": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(envFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	d, err := ParseDuration("1d")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	d, err = ParseDuration("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}
