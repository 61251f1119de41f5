package repository

import "context"

// KeyValueStore is the asynchronous key-value capability used by the
// guest habit backend and as the persistence substrate for user
// preferences. Keys are scoped to one owner by the implementation
// (e.g. a session prefix in Redis).
type KeyValueStore interface {
	// Get returns the value for key, or errs.ErrNotFound if the key
	// is absent.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	Remove(ctx context.Context, key string) error

	// Clear removes every key in the store's scope.
	Clear(ctx context.Context) error
}
