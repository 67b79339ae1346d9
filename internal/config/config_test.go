package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "salon"
password = "from-file"
dbname = "salon_booking"

[booking]
timezone = "Asia/Dhaka"
stale_pending_policy = "reject"

[kafka]
brokers = ["kafka:9092"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "reject", cfg.Booking.StalePendingPolicy)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "@every 60s", cfg.Scheduler.RemindersSpec, "defaults survive partial files")
	assert.Equal(t, 60, cfg.Booking.ReminderLeadMinutes)
	assert.Equal(t,
		"host=db port=5433 user=salon password=from-env dbname=salon_booking sslmode=disable",
		cfg.Database.DSN())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Dhaka", loc.String())
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	_, err := Load(writeConfig(t, `
[database]
dbname = "x"

[booking]
stale_pending_policy = "complete"
`))

	assert.Error(t, err)
}
