package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: record not found")

// Storage is the persistence port behind the application state: a flat
// key-value store holding one JSON document per record name.
type Storage interface {
	// Get returns ErrNotFound when key was never set or was cleared.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}
