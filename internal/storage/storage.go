package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("slot not found")

// Slot is a named durable value, the server-side stand-in for one browser
// storage key. Writes replace the whole value; the last writer wins.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
