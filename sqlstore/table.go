// Package sqlstore implements a durable qlearn.Table that keeps state
// values in a single-file SQLite database.
package sqlstore

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/golang/glog"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

const tableName = "qvalues"

var createTable = fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		State TEXT PRIMARY KEY,
		Value REAL
	);`, tableName)

var upsert = fmt.Sprintf(`INSERT OR REPLACE INTO %s (State, Value) VALUES (?, ?)`, tableName)

// Table implements qlearn.Table with entries stored in the SQLite table
// qvalues(State TEXT PRIMARY KEY, Value REAL).
type Table struct {
	path string

	mu   sync.Mutex
	conn *sql.DB
}

// New opens (creating if necessary) the SQLite database at the given file
// path and ensures the value table exists.
func New(path string) (*Table, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=FULL")
	if err != nil {
		return nil, errors.Wrapf(err, "error opening sqlite database %s", path)
	}

	// SQLite only supports one writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if _, err := conn.Exec(createTable); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "error creating value table")
	}

	return &Table{path: path, conn: conn}, nil
}

// Close implements io.Closer.
func (t *Table) Close() error {
	return t.conn.Close()
}

// Scan implements qlearn.Table.
func (t *Table) Scan(fn func(key qlearn.StateKey, value float64) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.conn.Query(fmt.Sprintf("SELECT State, Value FROM %s", tableName))
	if err != nil {
		return errors.Wrap(err, "error querying value table")
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}

		if err := fn(qlearn.StateKey(key), value); err != nil {
			return err
		}
		n++
	}

	if err := rows.Err(); err != nil {
		return err
	}

	glog.V(1).Infof("Scanned %d entries from %s", n, t.path)
	return nil
}

// Put implements qlearn.Table.
func (t *Table) Put(key qlearn.StateKey, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.conn.Exec(upsert, string(key), value)
	return err
}

// PutBatch implements qlearn.Table. All entries are written in one
// transaction, which is rolled back if any of them fails.
func (t *Table) PutBatch(entries map[qlearn.StateKey]float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := t.conn.Begin()
	if err != nil {
		return errors.Wrap(err, "error beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return errors.Wrap(err, "error preparing upsert")
	}
	defer stmt.Close()

	for key, value := range entries {
		if _, err := stmt.Exec(string(key), value); err != nil {
			return errors.Wrapf(err, "error writing value of %q", key)
		}
	}

	return tx.Commit()
}

// Clear implements qlearn.Table by recreating the value table.
func (t *Table) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := t.conn.Begin()
	if err != nil {
		return errors.Wrap(err, "error beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return errors.Wrap(err, "error dropping value table")
	}

	if _, err := tx.Exec(createTable); err != nil {
		return errors.Wrap(err, "error creating value table")
	}

	return tx.Commit()
}
