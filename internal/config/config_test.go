package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"ENV", "CATALOG_PATH", "HTTP_ADDRESS", "HTTP_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "STORAGE_DRIVER", "SQLITE_PATH", "MYSQL_DSN", "SLOT_KEY",
	"CONFIG_PATH",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "policies.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "savedPolicies", cfg.Storage.SlotKey)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", DriverMemory)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
env: prod
http_server:
  address: ":9000"
  timeout: 10s
cors:
  allowed_origins: ["https://hr.example.com"]
storage:
  driver: mysql
  mysql_dsn: "user:pass@tcp(db:3306)/leave"
catalog_path: catalog.yaml
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"https://hr.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, DriverMySQL, cfg.Storage.Driver)
	assert.Equal(t, "user:pass@tcp(db:3306)/leave", cfg.Storage.MySQLDSN)
	assert.Equal(t, "savedPolicies", cfg.Storage.SlotKey)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDRESS", ":7000")
	path := writeFile(t, "http_server:\n  address: \":9000\"\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Address)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"mysql without dsn", map[string]string{"STORAGE_DRIVER": DriverMySQL}},
		{"unknown env", map[string]string{"ENV": "staging"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")

			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	clearEnv(t)
	assert.Empty(t, Path(""))

	t.Setenv("CONFIG_PATH", "/etc/leave-rules.yaml")
	assert.Equal(t, "/etc/leave-rules.yaml", Path(""))
	assert.Equal(t, "./local.yaml", Path("./local.yaml"))
}
