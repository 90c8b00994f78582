// Package store contains the persisted key-value storage of the client
// and the credentials kept in it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is an error that is returned when the requested key is not present.
var ErrNotFound = errors.New("not found")

// Interface defines methods for a durable string key-value storage.
type Interface interface {
	// Get returns the value of the key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// GetMany returns the values of the present keys, read at once.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// Put stores all given pairs in a single transaction.
	Put(ctx context.Context, kvs map[string]string) error
	// Delete removes the keys in a single transaction, missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Subscribe returns a channel of the storage snapshots, the current
	// one is delivered immediately.
	Subscribe() (<-chan map[string]string, func())
}
