package qlearn

import (
	"sync"
)

// Table is the durable storage behind a ValueStore.
type Table interface {
	// Scan calls fn for every entry in the table, stopping at the first error.
	Scan(fn func(key StateKey, value float64) error) error
	// Put durably writes a single entry, replacing any previous value.
	Put(key StateKey, value float64) error
	// PutBatch durably writes all entries in a single transaction:
	// if it fails, none of the entries have been written.
	PutBatch(entries map[StateKey]float64) error
	// Clear durably removes all entries.
	Clear() error
	Close() error
}

// MemTable implements Table in memory. Nothing survives the process,
// so it is only useful for tests and throwaway runs.
type MemTable struct {
	mx      sync.Mutex
	entries map[StateKey]float64
}

// NewMemTable returns an empty MemTable.
func NewMemTable() *MemTable {
	return &MemTable{entries: make(map[StateKey]float64)}
}

// Scan implements Table.
func (t *MemTable) Scan(fn func(key StateKey, value float64) error) error {
	t.mx.Lock()
	defer t.mx.Unlock()
	for key, value := range t.entries {
		if err := fn(key, value); err != nil {
			return err
		}
	}

	return nil
}

// Put implements Table.
func (t *MemTable) Put(key StateKey, value float64) error {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.entries[key] = value
	return nil
}

// PutBatch implements Table.
func (t *MemTable) PutBatch(entries map[StateKey]float64) error {
	t.mx.Lock()
	defer t.mx.Unlock()
	for key, value := range entries {
		t.entries[key] = value
	}

	return nil
}

// Clear implements Table.
func (t *MemTable) Clear() error {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.entries = make(map[StateKey]float64)
	return nil
}

// Close implements io.Closer.
func (t *MemTable) Close() error {
	return nil
}
