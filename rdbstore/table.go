package rdbstore

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/internal/codec"
)

// Table implements qlearn.Table with entries stored in a RocksDB database.
type Table struct {
	path string
	opts dbOptions
	db   *rocksdb.DB
}

// New opens (creating if necessary) the RocksDB database described by params.
func New(params Params) (*Table, error) {
	opts := params.newOptions()
	db, err := rocksdb.OpenDb(opts.db, params.Path)
	if err != nil {
		opts.destroy()
		return nil, errors.Wrapf(err, "error opening rocksdb at %s", params.Path)
	}

	return &Table{
		path: params.Path,
		opts: opts,
		db:   db,
	}, nil
}

// Close implements io.Closer.
func (t *Table) Close() error {
	t.db.Close()
	t.opts.destroy()
	return nil
}

// Scan implements qlearn.Table.
func (t *Table) Scan(fn func(key qlearn.StateKey, value float64) error) error {
	it := t.db.NewIterator(t.opts.read)
	defer it.Close()

	n := 0
	for it.SeekToFirst(); it.Valid(); it.Next() {
		k := it.Key()
		v := it.Value()
		key := qlearn.StateKey(k.Data())
		value, err := codec.DecodeFloat64(v.Data())
		k.Free()
		v.Free()
		if err != nil {
			return errors.Wrapf(err, "error decoding value of %q", key)
		}

		if err := fn(key, value); err != nil {
			return err
		}
		n++
	}

	if err := it.Err(); err != nil {
		return err
	}

	glog.V(1).Infof("Scanned %d entries from %s", n, t.path)
	return nil
}

// Put implements qlearn.Table.
func (t *Table) Put(key qlearn.StateKey, value float64) error {
	return t.db.Put(t.opts.write, []byte(key), codec.EncodeFloat64(value))
}

// PutBatch implements qlearn.Table.
func (t *Table) PutBatch(entries map[qlearn.StateKey]float64) error {
	wb := rocksdb.NewWriteBatch()
	defer wb.Destroy()
	for key, value := range entries {
		wb.Put([]byte(key), codec.EncodeFloat64(value))
	}

	return t.db.Write(t.opts.write, wb)
}

// Clear implements qlearn.Table by deleting every key in one batch.
func (t *Table) Clear() error {
	wb := rocksdb.NewWriteBatch()
	defer wb.Destroy()

	it := t.db.NewIterator(t.opts.read)
	for it.SeekToFirst(); it.Valid(); it.Next() {
		k := it.Key()
		wb.Delete(k.Data())
		k.Free()
	}

	err := it.Err()
	it.Close()
	if err != nil {
		return err
	}

	glog.V(1).Infof("Deleting %d entries from %s", wb.Count(), t.path)
	return t.db.Write(t.opts.write, wb)
}
