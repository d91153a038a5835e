package qlearn

import (
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ValueStore caches the value of every known state in memory, with all
// writes persisted to a durable Table before they become visible.
//
// It is safe to use from multiple goroutines. Reads never wait on the
// durable Table: writers hold a separate lock while persisting and only
// take the cache lock to publish their result.
type ValueStore struct {
	table Table

	// writeMu serializes durable writes so that the order of entries
	// in the Table always matches the order in the cache.
	writeMu sync.Mutex

	mu    sync.Mutex
	cache map[StateKey]float64
}

// NewValueStore loads all entries of the given Table into memory and
// returns a ValueStore backed by it.
func NewValueStore(table Table) (*ValueStore, error) {
	cache := make(map[StateKey]float64)
	err := table.Scan(func(key StateKey, value float64) error {
		cache[key] = value
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "error loading value table")
	}

	glog.Infof("Loaded %d state values", len(cache))
	return &ValueStore{
		table: table,
		cache: cache,
	}, nil
}

// Get returns the value of the given state, or 0 if it has never been set.
func (vs *ValueStore) Get(key StateKey) float64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.cache[key]
}

// Set durably writes the value of a single state. If the write fails,
// the cached value is left unchanged.
func (vs *ValueStore) Set(key StateKey, value float64) error {
	vs.writeMu.Lock()
	defer vs.writeMu.Unlock()

	if err := vs.table.Put(key, value); err != nil {
		return errors.Wrapf(err, "error persisting value of state %q", key)
	}

	vs.mu.Lock()
	vs.cache[key] = value
	vs.mu.Unlock()
	return nil
}

// BatchSet durably writes all the given values in one transaction.
// Either every entry is written and cached, or (on error) none are.
func (vs *ValueStore) BatchSet(values map[StateKey]float64) error {
	if len(values) == 0 {
		return nil
	}

	vs.writeMu.Lock()
	defer vs.writeMu.Unlock()

	if err := vs.table.PutBatch(values); err != nil {
		return errors.Wrapf(err, "error persisting batch of %d values", len(values))
	}

	vs.mu.Lock()
	for key, value := range values {
		vs.cache[key] = value
	}
	vs.mu.Unlock()

	glog.V(2).Infof("Persisted batch of %d values", len(values))
	return nil
}

// Clear durably removes all values. Concurrent readers observe either
// the full set of values or an empty store.
func (vs *ValueStore) Clear() error {
	vs.writeMu.Lock()
	defer vs.writeMu.Unlock()

	if err := vs.table.Clear(); err != nil {
		return errors.Wrap(err, "error clearing value table")
	}

	vs.mu.Lock()
	vs.cache = make(map[StateKey]float64)
	vs.mu.Unlock()
	return nil
}

// Count returns the number of cached values.
func (vs *ValueStore) Count() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.cache)
}

// Close implements io.Closer by closing the underlying Table.
func (vs *ValueStore) Close() error {
	return vs.table.Close()
}

// Snapshot returns a copy of all cached values.
func (vs *ValueStore) Snapshot() map[StateKey]float64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	result := make(map[StateKey]float64, len(vs.cache))
	for key, value := range vs.cache {
		result[key] = value
	}

	return result
}
