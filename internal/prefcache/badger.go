package prefcache

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "pref:"

// BadgerBackend stores preferences in a Badger database.
type BadgerBackend struct {
	db *badger.DB
}

// NewBadgerBackend opens the database in dir. An empty dir opens an
// in-memory database.
func NewBadgerBackend(dir string) (*BadgerBackend, error) {
	var opts badger.Options
	if strings.TrimSpace(dir) == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger cache: open: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

// Get returns the value stored under key.
func (b *BadgerBackend) Get(key string) (string, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("badger cache: get %s: %w", key, err)
	}
	return string(value), true, nil
}

// Set stores value under key.
func (b *BadgerBackend) Set(key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("badger cache: set %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (b *BadgerBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
