package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the device-persisted key-value storage the session and theme
// managers write through. Values are opaque bytes; keys are fixed constants
// owned by the callers. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
