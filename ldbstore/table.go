package ldbstore

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/internal/codec"
)

// Table implements qlearn.Table with entries stored in a LevelDB database,
// keyed by the raw bytes of the qlearn.StateKey.
type Table struct {
	path string

	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New opens (creating if necessary) the LevelDB database at the given
// directory path and returns a Table backed by it.
func New(path string, opts *opt.Options) (*Table, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening leveldb at %s", path)
	}

	return &Table{
		path:  path,
		db:    db,
		wOpts: &opt.WriteOptions{Sync: true},
	}, nil
}

// Close implements io.Closer.
func (t *Table) Close() error {
	return t.db.Close()
}

// Scan implements qlearn.Table.
func (t *Table) Scan(fn func(key qlearn.StateKey, value float64) error) error {
	iter := t.db.NewIterator(nil, t.rOpts)
	defer iter.Release()

	n := 0
	for iter.Next() {
		value, err := codec.DecodeFloat64(iter.Value())
		if err != nil {
			return errors.Wrapf(err, "error decoding value of %q", iter.Key())
		}

		if err := fn(qlearn.StateKey(iter.Key()), value); err != nil {
			return err
		}
		n++
	}

	if err := iter.Error(); err != nil {
		return err
	}

	glog.V(1).Infof("Scanned %d entries from %s", n, t.path)
	return nil
}

// Put implements qlearn.Table.
func (t *Table) Put(key qlearn.StateKey, value float64) error {
	return t.db.Put([]byte(key), codec.EncodeFloat64(value), t.wOpts)
}

// PutBatch implements qlearn.Table.
func (t *Table) PutBatch(entries map[qlearn.StateKey]float64) error {
	batch := new(leveldb.Batch)
	for key, value := range entries {
		batch.Put([]byte(key), codec.EncodeFloat64(value))
	}

	return t.db.Write(batch, t.wOpts)
}

// Clear implements qlearn.Table by deleting every key in one batch.
func (t *Table) Clear() error {
	iter := t.db.NewIterator(nil, t.rOpts)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}

	glog.V(1).Infof("Deleting %d entries from %s", batch.Len(), t.path)
	return t.db.Write(batch, t.wOpts)
}
