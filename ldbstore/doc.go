// Package ldbstore implements a durable qlearn.Table that keeps state
// values on disk in a LevelDB database.
//
// Batches are written with a single leveldb.Batch, which LevelDB applies
// atomically, and every write is synced to disk before it returns.
package ldbstore
