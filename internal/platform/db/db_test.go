package db

import (
	"os"
	"path/filepath"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsAndYAML(t *testing.T) {
	path := writeConfig(t, `
version: "1.0.0"
mode: dev
database:
  host: db.internal
  user: vault
  password: secret
  dbname: game_vault_db
orders:
  placement: inline
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, 0, cfg.DB.MaxIdleConns)
	assert.Equal(t, "inline", cfg.Orders.Placement)
	assert.Equal(t, "UTC", cfg.Rentals.TimeZone)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  host: yaml-host\n  port: 3306\n")
	t.Setenv("GAMEVAULT_DB_HOST", "env-host")
	t.Setenv("GAMEVAULT_DB_PORT", "3307")
	t.Setenv("GAMEVAULT_MIGRATE_ON_START", "true")
	t.Setenv("GAMEVAULT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.DB.Host)
	assert.Equal(t, 3307, cfg.DB.Port)
	assert.True(t, cfg.DB.MigrateOnStart)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_BadEnvPort(t *testing.T) {
	path := writeConfig(t, "mode: release\n")
	t.Setenv("GAMEVAULT_DB_PORT", "not-a-port")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "GAMEVAULT_DB_PORT")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "127.0.0.1", Port: 3306, Username: "vault", Password: "p@ss", DBName: "game_vault_db"}

	parsed, err := mysql.ParseDSN(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3306", parsed.Addr)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.True(t, parsed.ParseTime)
	assert.False(t, parsed.MultiStatements)

	mig, err := mysql.ParseDSN(c.migrationDSN())
	require.NoError(t, err)
	assert.True(t, mig.MultiStatements)
}
