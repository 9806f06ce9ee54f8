package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dkoval/ivory/internal/engine"
)

const keyPreferences = "preferences"

// Preferences holds the driver settings that survive restarts. They
// seed the engine configuration and are updated by setoption.
type Preferences struct {
	Depth    int       `json:"depth"`
	Workers  int       `json:"workers"`
	LastUsed time.Time `json:"last_used"`
}

// DefaultPreferences returns the engine's default configuration.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Depth:   engine.DefaultDepth,
		Workers: engine.DefaultWorkers,
	}
}

// Store wraps BadgerDB for persistent preference storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences persists the preferences, stamping LastUsed.
func (s *Store) SavePreferences(prefs *Preferences) error {
	prefs.LastUsed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the stored preferences, or defaults when
// nothing has been saved yet.
func (s *Store) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}
