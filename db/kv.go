// Package db provides the ordered key-value stores the pool persists its state in.
package db

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownBackend = errors.New("unknown db backend")
)

// Batch collects writes applied atomically by KV.Write.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
}

// KV is an ordered key-value store.
// Slices passed to Iterate callbacks are only valid during the call.
type KV interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	// Iterate calls fn for every key starting with prefix, in ascending order
	// (descending if reverse), until fn returns false.
	Iterate(prefix []byte, reverse bool, fn func(key, value []byte) bool) error
	// Write applies every write fn makes on the batch atomically and durably.
	Write(fn func(b Batch)) error
	Close() error
}

type Backend string

const (
	LevelDB Backend = "leveldb"
	Pebble  Backend = "pebble"
)

// Open opens (creating if needed) a store of the given backend in dir.
func Open(backend Backend, dir string) (KV, error) {
	switch backend {
	case LevelDB:
		return OpenLevelDB(dir)
	case Pebble:
		return OpenPebble(dir)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// prefixEnd returns the smallest key greater than every key starting with prefix,
// or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
