package memdb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/helioledger/go-helioledger/db"
)

type memdb struct {
	db map[string][]byte
	sync.RWMutex
}

// New creates a memory-based key-value store
// which is mainly used for testing.
func New() db.Database {
	return &memdb{db: make(map[string][]byte)}
}

func init() {
	db.Register("memory", func(path string) db.Database { return New() })
}

// Buckets are emulated by prefixing keys with the bucket name.
func bucketKey(bucket string, key []byte) string {
	return bucket + "/" + string(key)
}

func (m *memdb) NewBucket(name string) error {
	return nil
}

// Put writes the key/value pair to the store.
func (m *memdb) Put(bucket string, key, value []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return fmt.Errorf("memdb is closed")
	}

	val := make([]byte, len(value))
	copy(val, value)
	m.db[bucketKey(bucket, key)] = val
	return nil
}

// Delete deletes the key from the store.
func (m *memdb) Delete(bucket string, key []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return fmt.Errorf("memdb is closed")
	}

	delete(m.db, bucketKey(bucket, key))
	return nil
}

// Get retrieves the value of the key. A missing key yields a nil
// value and no error.
func (m *memdb) Get(bucket string, key []byte) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.db == nil {
		return nil, fmt.Errorf("memdb is closed")
	}

	if val, ok := m.db[bucketKey(bucket, key)]; ok {
		return val, nil
	}
	return nil, nil
}

// GetAll retrieves the values of the keys with the prefix.
func (m *memdb) GetAll(bucket string, keyPrefix []byte) ([][]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.db == nil {
		return nil, fmt.Errorf("memdb is closed")
	}

	prefix := bucketKey(bucket, keyPrefix)
	var vals [][]byte
	for k, v := range m.db {
		if strings.HasPrefix(k, prefix) {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

// Close closes the store.
func (m *memdb) Close() error {
	m.Lock()
	defer m.Unlock()

	m.db = nil
	return nil
}

// Begin returns a transaction which applies writes directly. The
// memory store does not support rollback, which is acceptable for
// the tests it serves.
func (m *memdb) Begin() (db.Tx, error) {
	return &memdbTx{db: m}, nil
}

type memdbTx struct {
	db *memdb
}

func (tx *memdbTx) Get(bucket string, key []byte) ([]byte, error) {
	return tx.db.Get(bucket, key)
}

func (tx *memdbTx) GetAll(bucket string, keyPrefix []byte) ([][]byte, error) {
	return tx.db.GetAll(bucket, keyPrefix)
}

func (tx *memdbTx) Put(bucket string, key, value []byte) error {
	return tx.db.Put(bucket, key, value)
}

func (tx *memdbTx) Delete(bucket string, key []byte) error {
	return tx.db.Delete(bucket, key)
}

func (tx *memdbTx) Rollback() error {
	return nil
}

func (tx *memdbTx) Commit() error {
	return nil
}
