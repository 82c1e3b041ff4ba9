package storage

import "context"

// Store is whole-value key-value storage for per-user client state (the
// activity log and the viewed-post-id list). Values are opaque JSON blobs;
// there are no partial updates. Get returns a nil value and nil error for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
