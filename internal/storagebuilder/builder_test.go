package storagebuilder

import (
	"context"
	"path/filepath"
	"testing"

	filestorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/file"
	memorystorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/memory"
	sqlstorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/sql"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	t.Run("memory", func(t *testing.T) {
		s, err := New(Config{StorageType: "memory"})
		require.NoError(t, err)
		require.IsType(t, &memorystorage.Storage{}, s)
	})

	t.Run("file", func(t *testing.T) {
		s, err := New(Config{StorageType: "file", File: filestorage.Config{Dir: filepath.Join(dir, "data")}})
		require.NoError(t, err)
		require.IsType(t, &filestorage.Storage{}, s)
		require.NoError(t, s.Set(context.Background(), "k", "v"))
	})

	t.Run("sql", func(t *testing.T) {
		s, err := New(Config{
			StorageType: "sql",
			Database:    sqlstorage.Config{Driver: sqlstorage.DriverSQLite, DSN: filepath.Join(dir, "calendar.db")},
		})
		require.NoError(t, err)
		require.IsType(t, &sqlstorage.Storage{}, s)
		require.NoError(t, s.Close(context.Background()))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Config{StorageType: "cloud"})
		require.Error(t, err)
	})

	t.Run("file without dir", func(t *testing.T) {
		_, err := New(Config{StorageType: "file"})
		require.Error(t, err)
	})
}
