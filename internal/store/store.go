// Package store provides the durable key-value storage backing the catalog
// cache and per-profile user state. An absent key is a cache miss, never an
// error.
package store

import "errors"

var (
	ErrDirRequired  = errors.New("storage directory not provided")
	ErrPathRequired = errors.New("database path not provided")
	ErrKeyRequired  = errors.New("key is required")
)

// Store is the key-value contract shared by all backends. Get reports
// whether the key was present; Set and Clear return an error only when the
// underlying medium fails.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Clear(key string) error
}
