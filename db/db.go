package db

import (
	"fmt"
)

// Getter is the read-only role of a database or transaction.
type Getter interface {
	Get(bucket string, key []byte) ([]byte, error)
	GetAll(bucket string, keyPrefix []byte) ([][]byte, error)
}

// Putter is the write-only role of a database or transaction.
type Putter interface {
	Put(bucket string, key []byte, value []byte) error
	Delete(bucket string, key []byte) error
}

// Tx is a manually managed database transaction.
type Tx interface {
	Getter
	Putter
	Rollback() error
	Commit() error
}

// Database is the generic storage interface used by the ledger store.
type Database interface {
	Getter
	Putter
	NewBucket(name string) error
	Begin() (Tx, error)
	Close() error
}

// Ctor creates a database instance backed by the given file path.
type Ctor func(path string) Database

var constructors = make(map[string]Ctor)

// Register makes a database backend available by name. Backends call
// this from their package init.
func Register(name string, ctor Ctor) {
	constructors[name] = ctor
}

// New creates a database with the named backend.
func New(backend string, path string) (Database, error) {
	ctor, ok := constructors[backend]
	if !ok {
		return nil, fmt.Errorf("database backend %s not registered", backend)
	}
	return ctor(path), nil
}
