package store

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/Semior001/politicalfeed/pkg/pubsub"
	bolt "go.etcd.io/bbolt"
)

const prefsBktName = "auth_preferences"

// Bolt is a storage that uses BoltDB as a backend.
type Bolt struct {
	db *bolt.DB

	// mu keeps published snapshots in the commit order
	mu   sync.Mutex
	snap *pubsub.Value[map[string]string]
}

// NewBolt creates new Bolt storage.
func NewBolt(dir string) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "politicalfeed.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{prefsBktName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create top-level bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	b := &Bolt{db: db}

	initial, err := b.load()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load initial snapshot: %w", err)
	}
	b.snap = pubsub.NewValue(initial)

	return b, nil
}

// Get returns the value of the key.
func (b *Bolt) Get(_ context.Context, key string) (val string, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(prefsBktName)).Get([]byte(key))
		if bts == nil {
			return ErrNotFound
		}
		val = string(bts)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("view storage: %w", err)
	}
	return val, nil
}

// GetMany returns the values of the present keys, read in one transaction.
func (b *Bolt) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	res := make(map[string]string, len(keys))
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(prefsBktName))
		for _, k := range keys {
			if bts := bkt.Get([]byte(k)); bts != nil {
				res[k] = string(bts)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}
	return res, nil
}

// Put stores all pairs in one transaction.
func (b *Bolt) Put(_ context.Context, kvs map[string]string) error {
	return b.update(func(bkt *bolt.Bucket) error {
		for k, v := range kvs {
			if err := bkt.Put([]byte(k), []byte(v)); err != nil {
				return fmt.Errorf("put %s: %w", k, err)
			}
		}
		return nil
	})
}

// Delete removes keys in one transaction.
func (b *Bolt) Delete(_ context.Context, keys ...string) error {
	return b.update(func(bkt *bolt.Bucket) error {
		for _, k := range keys {
			if err := bkt.Delete([]byte(k)); err != nil {
				return fmt.Errorf("remove %s: %w", k, err)
			}
		}
		return nil
	})
}

// update applies fn in a write transaction and publishes the snapshot
// read back from the same transaction.
func (b *Bolt) update(fn func(bkt *bolt.Bucket) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var snap map[string]string
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(prefsBktName))
		if err := fn(bkt); err != nil {
			return err
		}

		var err error
		snap, err = readAll(bkt)
		return err
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	b.snap.Set(snap)
	return nil
}

// Subscribe returns a channel of storage snapshots.
func (b *Bolt) Subscribe() (<-chan map[string]string, func()) { return b.snap.Subscribe() }

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }

func (b *Bolt) load() (res map[string]string, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		res, err = readAll(tx.Bucket([]byte(prefsBktName)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}
	return res, nil
}

func readAll(bkt *bolt.Bucket) (map[string]string, error) {
	res := map[string]string{}
	err := bkt.ForEach(func(k, v []byte) error {
		res[string(k)] = string(v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read bucket: %w", err)
	}
	return res, nil
}
