package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a generic key-value store for JSON-serializable objects.
//
// Load reports found=false both for absent keys and for rows whose
// payload no longer unmarshals; callers treat either as "no persisted
// state" and fall back to first-run seeding.
type KV interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, out any) (found bool, err error)
	Delete(ctx context.Context, key string) error
}
