package kv

import (
	"context"
	"errors"
)

var ErrNotConnected = errors.New("storage is not connected")

// Storage is an on-device key/value store holding whole serialized values.
type Storage interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	// Get returns found=false without error when the key has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}
