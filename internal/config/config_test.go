package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
api:
  environment: "test"
  base_url: "localhost:8080"
  port: "8080"
  jwt_signing_key: "secret"
  allowed_cors_domains:
    - "http://localhost:3000"

postgres:
  host: "localhost"
  port: "5432"
  user: "klublotto"
  password: "secret"
  db_name: "klublotto"
  ssl_mode: "disable"

lottery:
  timezone: "Europe/Copenhagen"
  cutoff_weekday: 6
  cutoff_hour: 17
  seed_on_boot: true
  seed_years: 20
`

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)

	assert.Equal(t, "klublotto", conf.Postgres.DBName)
	assert.Equal(t, "disable", conf.Postgres.SSLMode)

	assert.Equal(t, "Europe/Copenhagen", conf.Lottery.Timezone)
	assert.Equal(t, 6, conf.Lottery.CutoffWeekday)
	assert.Equal(t, 17, conf.Lottery.CutoffHour)
	assert.True(t, conf.Lottery.SeedOnBoot)
	assert.Equal(t, 20, conf.Lottery.SeedYears)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
