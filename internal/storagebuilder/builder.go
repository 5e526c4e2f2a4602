package storagebuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/kv"
	filestorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/file"
	memorystorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/memory"
	sqlstorage "github.com/lomoval/otus-golang/pocketcal/internal/kv/sql"
)

const connectTimeout = 15 * time.Second

type Config struct {
	StorageType string
	File        filestorage.Config
	Database    sqlstorage.Config
}

func New(config Config) (kv.Storage, error) {
	var s kv.Storage
	switch config.StorageType {
	case "memory":
		s = memorystorage.New()
	case "file":
		s = filestorage.New(config.File)
	case "sql":
		s = sqlstorage.New(config.Database)
	default:
		return nil, fmt.Errorf("unknown storage type %s", config.StorageType)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := s.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s storage: %w", config.StorageType, err)
	}
	return s, nil
}
