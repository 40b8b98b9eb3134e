package sales

import (
	"errors"
	"sync/atomic"
	"time"
)

// ErrNotLoaded is returned when no dataset has been stored yet.
var ErrNotLoaded = errors.New("sales dataset not loaded")

// ErrNilSnapshot is returned when trying to store a nil snapshot.
var ErrNilSnapshot = errors.New("nil sales snapshot")

// Snapshot is an immutable dataset together with its filter options.
type Snapshot struct {
	Sales    []Sale
	Options  FilterOptions
	LoadedAt time.Time
}

// NewSnapshot normalizes raw records and indexes their filter options.
func NewSnapshot(raw []map[string]string) *Snapshot {
	data := NormalizeAll(raw)
	return &Snapshot{
		Sales:    data,
		Options:  BuildOptions(data),
		LoadedAt: time.Now(),
	}
}

// Storage is the main interface for our sales storage layer.
type Storage interface {
	Store(snap *Snapshot) error
	Snapshot() (*Snapshot, error)
}

// LocalStorage keeps the current snapshot in memory. Readers always
// observe one whole snapshot; Store replaces it atomically.
type LocalStorage struct {
	current atomic.Pointer[Snapshot]
}

// NewLocalStorage instantiates an empty LocalStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// Store publishes snap as the current snapshot.
// Returns ErrNilSnapshot if snap is nil.
func (l *LocalStorage) Store(snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	l.current.Store(snap)
	return nil
}

// Snapshot returns the current snapshot.
// Returns ErrNotLoaded if nothing was stored yet.
func (l *LocalStorage) Snapshot() (*Snapshot, error) {
	s := l.current.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}
