// Package credentials persists the session credential between runs. It is
// the CLI's counterpart of a browser's local storage: a single opaque token
// under a well-known key, nothing else.
package credentials

import "context"

// KeyToken is the storage key for the bearer credential.
const KeyToken = "token"

// Repository is a small key/value store for persisted credentials.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
