package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, `
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: guesthouse
  ssl_mode: disable
kafka:
  brokers: ["localhost:9092"]
  booking_topic: bookings
auth:
  jwt_secret: s3cr3t
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 30, cfg.Booking.SuggestionHorizonDays)
	assert.Equal(t, 5, cfg.Booking.SuggestionMaxResults)
	assert.Equal(t, 28, cfg.Calendar.RowHeightPx)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=guesthouse sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_SecretFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	path := writeConfig(t, "http:\n  address: \":9000\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "http: [not a map"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadConfig(writeConfig(t, "http:\n  address: \":9000\"\n"))
	assert.ErrorContains(t, err, "jwt_secret is required")
}
