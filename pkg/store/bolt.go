package store

import (
	"context"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/vdomkit/internal/errors"
)

const bucketSnapshots = "snapshots"

// BoltStore keeps snapshots in a bolt database file, one key per ID in the
// "snapshots" bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path. timeout bounds waiting
// for another process to release the file lock; zero waits forever.
func OpenBolt(path string, timeout time.Duration) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.New(errors.CodeStoreUnavailable).
			WithDetail("Cannot open bolt database " + path).
			Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New(errors.CodeStoreUnavailable).Wrap(err)
	}
	return &BoltStore{db: db}, nil
}

// Save implements Store.
func (s *BoltStore) Save(_ context.Context, id string, data []byte) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(id), data)
	})
	if err != nil {
		return errors.New(errors.CodeStoreWrite).Wrap(err)
	}
	return nil
}

// Load implements Store.
func (s *BoltStore) Load(_ context.Context, id string) ([]byte, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Values are only valid inside the transaction.
		if v := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(id)); v != nil {
			data = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New(errors.CodeStoreRead).Wrap(err)
	}
	return data, nil
}

// Delete implements Store.
func (s *BoltStore) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Delete([]byte(id))
	})
	if err != nil {
		return errors.New(errors.CodeStoreWrite).Wrap(err)
	}
	return nil
}

// List implements Store. Bolt keeps keys sorted.
func (s *BoltStore) List(_ context.Context) ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.New(errors.CodeStoreRead).Wrap(err)
	}
	return ids, nil
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
