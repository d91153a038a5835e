package rdbstore

import (
	rocksdb "github.com/tecbot/gorocksdb"
)

// Params configure a RocksDB Table.
type Params struct {
	Path string
	// Sync flushes every write to disk before it returns.
	Sync bool
	// FillCache keeps blocks read by Scan in the block cache.
	FillCache bool
}

// DefaultParams returns Params for a synced database at path.
func DefaultParams(path string) Params {
	return Params{Path: path, Sync: true}
}

// dbOptions are the native option handles of an open Table.
type dbOptions struct {
	db    *rocksdb.Options
	read  *rocksdb.ReadOptions
	write *rocksdb.WriteOptions
}

func (p Params) newOptions() dbOptions {
	opts := rocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)

	rOpts := rocksdb.NewDefaultReadOptions()
	rOpts.SetFillCache(p.FillCache)

	wOpts := rocksdb.NewDefaultWriteOptions()
	wOpts.SetSync(p.Sync)

	return dbOptions{db: opts, read: rOpts, write: wOpts}
}

func (o dbOptions) destroy() {
	o.db.Destroy()
	o.read.Destroy()
	o.write.Destroy()
}
