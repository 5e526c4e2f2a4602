package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := NewConfig(writeConfig(t, "logger:\n  level: INFO\n"))
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1", config.HTTPServer.Host)
		require.Equal(t, 8005, config.HTTPServer.Port)
		require.Equal(t, "INFO", config.Logger.Level)
		require.Equal(t, "file", config.Storage.StorageType)
		require.Equal(t, "./data", config.Storage.File.Dir)
		require.Equal(t, "Local", config.Calendar.Location)
	})

	t.Run("env values", func(t *testing.T) {
		t.Setenv("TEST_CALENDAR_DSN", "/tmp/calendar.db")
		config, err := NewConfig(writeConfig(t, `
storage:
  storageType: sql
  database:
    dsn: $env:TEST_CALENDAR_DSN
`))
		require.NoError(t, err)
		require.Equal(t, "sql", config.Storage.StorageType)
		require.Equal(t, "sqlite3", config.Storage.Database.Driver)
		require.Equal(t, "/tmp/calendar.db", config.Storage.Database.DSN)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
