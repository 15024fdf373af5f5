package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, AuthModeDev, cfg.AuthMode)
	assert.Equal(t, 3, cfg.UpcomingLimit)
	assert.Equal(t, "0 7 * * *", cfg.AlertSweepCron)
	assert.Empty(t, cfg.DBDSN)
	assert.True(t, cfg.IsDev())
}

func TestLoad_EnvFileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9000\nTIMEZONE=America/Sao_Paulo\nUPCOMING_LIMIT=5\nSETTINGS_FILE=/tmp/settings.json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PORT", "9100")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 5, cfg.UpcomingLimit)
	assert.Equal(t, "/tmp/settings.json", cfg.SettingsFile)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8080", Env: "development", AuthMode: AuthModeDev, UpcomingLimit: 3}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"dev auth in production": func(c *Config) { c.Env = "production" },
		"short jwt secret":       func(c *Config) { c.AuthMode = AuthModeJWT; c.JWTSecret = "short" },
		"remote without url":     func(c *Config) { c.AuthMode = AuthModeRemote },
		"unknown auth mode":      func(c *Config) { c.AuthMode = "basic" },
		"bad cron":               func(c *Config) { c.AlertSweepCron = "every day" },
		"bad timezone":           func(c *Config) { c.Timezone = "Mars/Olympus" },
		"upcoming limit":         func(c *Config) { c.UpcomingLimit = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nthis line is not a key value pair\n"), 0o644))

	_, err := load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
