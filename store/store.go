// Package store keeps learned value tables between runs.
package store

import (
	"strings"

	"github.com/pkg/errors"
)

// Store loads and saves a value table, keyed by pile.
type Store interface {
	// Load returns the saved values, or an empty map if nothing was saved yet.
	Load() (map[int]float64, error)
	// Save replaces the saved values.
	Save(values map[int]float64) error
	Close() error
}

// Kinds of store accepted by Open.
const (
	KindGob     = "gob"
	KindLevelDB = "leveldb"
	KindRedis   = "redis"
)

// Open returns the store of the given kind. For gob and leveldb, location is a
// filesystem path. For redis it is a server address, optionally followed by
// "/" and the hash key to use.
func Open(kind, location string) (Store, error) {
	switch strings.ToLower(kind) {
	case "", KindGob:
		return NewGobFile(location), nil
	case KindLevelDB:
		return OpenLevelDB(location)
	case KindRedis:
		addr, key, _ := strings.Cut(location, "/")
		return NewRedis(addr, key), nil
	default:
		return nil, errors.Errorf("unknown store kind %q", kind)
	}
}
