package sqlstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timpalpant/go-qothello"
)

func TestTable_ColdStart(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-sql-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)
	path := filepath.Join(tmpDir, "qvalues.db")

	table, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	vs, err := qlearn.NewValueStore(table)
	if err != nil {
		t.Fatal(err)
	}

	if err := vs.Set("a", 0.25); err != nil {
		t.Fatal(err)
	}

	if err := vs.BatchSet(map[qlearn.StateKey]float64{"a": 0.5, "b": -1}); err != nil {
		t.Fatal(err)
	}
	vs.Close()

	table, err = New(path)
	if err != nil {
		t.Fatal(err)
	}

	vs, err = qlearn.NewValueStore(table)
	if err != nil {
		t.Fatal(err)
	}
	defer vs.Close()

	if vs.Count() != 2 {
		t.Errorf("expected 2 values after reload, got %d", vs.Count())
	}

	if got := vs.Get("a"); got != 0.5 {
		t.Errorf("expected a=0.5, got %v", got)
	}

	if got := vs.Get("b"); got != -1 {
		t.Errorf("expected b=-1, got %v", got)
	}
}

func TestTable_Clear(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-sql-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	table, err := New(filepath.Join(tmpDir, "qvalues.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if err := table.Put("a", 1); err != nil {
		t.Fatal(err)
	}

	if err := table.Clear(); err != nil {
		t.Fatal(err)
	}

	n := 0
	if err := table.Scan(func(qlearn.StateKey, float64) error { n++; return nil }); err != nil {
		t.Fatal(err)
	}

	if n != 0 {
		t.Errorf("expected empty table after Clear, got %d entries", n)
	}

	// The table must still be usable after being recreated.
	if err := table.Put("b", 2); err != nil {
		t.Fatal(err)
	}
}

func TestTable_PartialBatchRollsBack(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-sql-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)
	path := filepath.Join(tmpDir, "qvalues.db")

	table, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	vs, err := qlearn.NewValueStore(table)
	if err != nil {
		t.Fatal(err)
	}

	if err := vs.BatchSet(map[qlearn.StateKey]float64{"a": 1, "b": 2}); err != nil {
		t.Fatal(err)
	}

	// Abort any write of state "z", wherever it falls in the batch.
	_, err = table.conn.Exec(`
		CREATE TRIGGER abort_z BEFORE INSERT ON qvalues
		WHEN NEW.State = 'z'
		BEGIN
			SELECT RAISE(ABORT, 'rejected');
		END;`)
	if err != nil {
		t.Fatal(err)
	}

	batch := map[qlearn.StateKey]float64{"a": 10, "c": 3, "d": 4, "z": 5, "e": 6}
	if err := vs.BatchSet(batch); err == nil {
		t.Fatal("expected batch containing z to fail")
	}

	checkUnchanged := func(vs *qlearn.ValueStore) {
		if vs.Count() != 2 {
			t.Errorf("expected 2 values, got %v", vs.Snapshot())
		}

		if vs.Get("a") != 1 || vs.Get("b") != 2 {
			t.Errorf("existing values changed: %v", vs.Snapshot())
		}

		for key := range batch {
			if key != "a" && vs.Get(key) != 0 {
				t.Errorf("value of %q from failed batch is visible", key)
			}
		}
	}

	checkUnchanged(vs)
	vs.Close()

	table, err = New(path)
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := qlearn.NewValueStore(table)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	checkUnchanged(reopened)
}
