package bakestore

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes. The blob directory path completes the key, so one store
// tracks any number of bake locations.
const (
	prefixBake   = "bake:"
	prefixVerify = "verify:"
)

// BakeRecord describes one baked blob set.
type BakeRecord struct {
	Dir        string            `json:"dir"`
	BakedAt    time.Time         `json:"baked_at"`
	WordBits   int               `json:"word_bits"`
	ByteOrder  string            `json:"byte_order"`
	Compressed bool              `json:"compressed"`
	Digests    map[string]string `json:"digests"` // blob name -> xxh64
	Elapsed    time.Duration     `json:"elapsed"`
}

// VerifyRecord describes the latest verification of a baked blob set
// against the live tables.
type VerifyRecord struct {
	Dir        string        `json:"dir"`
	VerifiedAt time.Time     `json:"verified_at"`
	OK         bool          `json:"ok"`
	Error      string        `json:"error,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Store wraps BadgerDB for persistent bake bookkeeping.
type Store struct {
	db *badger.DB
}

// Open opens the store in the platform data directory.
func Open() (*Store, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store in an explicit directory. Tools and tests use this
// to keep their records out of the user's data directory.
func OpenAt(dbDir string) (*Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutBake records a bake, replacing any earlier record for the same
// directory.
func (s *Store) PutBake(rec *BakeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixBake+rec.Dir), data)
	})
}

// Bake returns the bake record for a directory. The second return is false
// when no bake has been recorded there.
func (s *Store) Bake(dir string) (*BakeRecord, bool, error) {
	rec := &BakeRecord{}
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixBake + dir))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil || !found {
		return nil, false, err
	}

	return rec, true, nil
}

// Bakes returns every recorded bake.
func (s *Store) Bakes() ([]*BakeRecord, error) {
	var recs []*BakeRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixBake)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec := &BakeRecord{}
				if err := json.Unmarshal(val, rec); err != nil {
					return err
				}
				recs = append(recs, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return recs, err
}

// PutVerify records a verification result, replacing any earlier record for
// the same directory.
func (s *Store) PutVerify(rec *VerifyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixVerify+rec.Dir), data)
	})
}

// Verify returns the latest verification record for a directory. The second
// return is false when the directory has never been verified.
func (s *Store) Verify(dir string) (*VerifyRecord, bool, error) {
	rec := &VerifyRecord{}
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixVerify + dir))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil || !found {
		return nil, false, err
	}

	return rec, true, nil
}
