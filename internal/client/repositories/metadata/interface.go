// Package metadata persists small named values (the credential slot among
// them) in the client database.
package metadata

import (
	"context"
)

// Repository is a key/value store over the metadata table.
type Repository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
