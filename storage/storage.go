// Package storage defines the durable string-keyed store the settings
// service persists its records into.
package storage

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Delete when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store is a flat string-keyed, string-valued store with synchronous
// reads and writes. A Set fully replaces the prior value for the key.
// Implementations give no transactional guarantees across keys.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (value string, found bool, err error)

	// Set writes value under key, replacing any prior value.
	Set(key, value string) error

	// Delete removes key. Returns ErrKeyNotFound if it was not present.
	Delete(key string) error
}

// StoreType names a Store implementation selectable from config.
type StoreType int

const (
	StoreTypeLocal StoreType = iota
	StoreTypeSqlite
	StoreTypePostgres
	StoreTypeMysql
	StoreTypeRedis
	StoreTypeYAML
)

func (st StoreType) String() string {
	return [...]string{"local", "sqlite", "psql", "mysql", "redis", "yaml"}[st]
}

// IsSQL reports whether the store type is backed by gorm.
func (st StoreType) IsSQL() bool {
	return st == StoreTypeSqlite || st == StoreTypePostgres || st == StoreTypeMysql
}

// ParseStoreType maps a config value to a StoreType.
func ParseStoreType(s string) (StoreType, error) {
	for st := StoreTypeLocal; st <= StoreTypeYAML; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StoreTypeLocal, fmt.Errorf("store type '%s' not supported", s)
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*GormStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*YAMLStore)(nil)
)
