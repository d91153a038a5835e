// Package rdbstore implements a durable qlearn.Table that keeps state
// values in a RocksDB database.
//
// Batches are written with a single rocksdb.WriteBatch, which RocksDB
// applies atomically. Writes are synced to disk unless Params.Sync is false.
package rdbstore
