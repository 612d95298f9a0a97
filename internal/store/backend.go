package store

import "context"

// Backend is raw key-value blob storage. Get returns *errs.NotFoundError when
// the key is absent and *errs.DatabaseError on I/O failure.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Name() string
}
