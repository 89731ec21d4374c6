package kvstore

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	bolt "go.etcd.io/bbolt"
)

var entriesBucket = []byte("entries")

// keyPrefix is prepended to every stored key because bbolt rejects empty keys.
const keyPrefix = "k:"

// Bolt stores the mapping in one bbolt bucket.
type Bolt struct {
	db   *bolt.DB
	path string
}

// OpenBolt creates or opens a bbolt database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}
	return &Bolt{db: db, path: path}, nil
}

// Path returns the database file path.
func (b *Bolt) Path() string {
	return b.path
}

// Load copies the bucket into a Mapping. Values that are not valid UTF-8 are corruption.
func (b *Bolt) Load() (Mapping, error) {
	m := Mapping{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(entriesBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			if !utf8.Valid(v) {
				return &CorruptError{Path: b.path, Reason: fmt.Sprintf("bad map: value for %q is not a string", k)}
			}
			if !bytes.HasPrefix(k, []byte(keyPrefix)) {
				return &CorruptError{Path: b.path, Reason: fmt.Sprintf("bad map: unexpected key %q", k)}
			}
			m[string(k[len(keyPrefix):])] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Save drops and recreates the bucket with the contents of m.
func (b *Bolt) Save(m Mapping) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(entriesBucket) != nil {
			if err := tx.DeleteBucket(entriesBucket); err != nil {
				return fmt.Errorf("clearing bucket: %w", err)
			}
		}
		bucket, err := tx.CreateBucket(entriesBucket)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		for k, v := range m {
			if err := bucket.Put([]byte(keyPrefix+k), []byte(v)); err != nil {
				return fmt.Errorf("putting %q: %w", k, err)
			}
		}
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
