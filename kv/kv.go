// Package kv defines the typed capability set the index needs from an
// external key-value store: hash increment, hash scan, set membership and
// absolute TTL. It plays the same role ethdb.Database plays over a raw
// blob engine in the teacher this package is adapted from — a narrow,
// typed wrapper, not a general store interface.
package kv

import "fmt"

// StorageError wraps any failure returned by a Store implementation. It is
// always fatal to the request that triggered it; the engine never retries.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("kv: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the capability set spec.md §4.2 requires of the backing
// key-value store. Implementations must make HIncrBy create the hash and
// field on demand, and SAdd create the set on demand.
type Store interface {
	// HIncrBy increments field of the hash at key by delta and returns the
	// new value, creating the hash and field if absent.
	HIncrBy(key, field string, delta int64) (int64, error)

	// HGetAll returns every field/value pair of the hash at key. A missing
	// hash yields a nil/empty slice, not an error.
	HGetAll(key string) ([]HashField, error)

	// SAdd adds members to the set at key, creating it if absent, and
	// returns how many of them were newly added.
	SAdd(key string, members ...string) (added int, err error)

	// SMembers returns every member of the set at key. A missing set
	// yields a nil/empty slice, not an error.
	SMembers(key string) ([]string, error)

	// ExpireAt idempotently sets the absolute expiration of key to the
	// given Unix epoch seconds.
	ExpireAt(key string, unixSeconds int64) error

	// Close releases any resources held by the store.
	Close() error
}

// HashField is one field/value pair returned by HGetAll. Value is the
// store's decimal text encoding of the accumulated integer, matching
// spec.md §6's "decimal-encoded signed integers as stored by the host's
// hash-increment primitive".
type HashField struct {
	Field string
	Value string
}
