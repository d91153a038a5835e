package ldbstore

import (
	"os"
	"testing"

	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-qothello"
)

func newTestTable(t *testing.T, path string) *Table {
	table, err := New(path, &opt.Options{})
	if err != nil {
		t.Fatal(err)
	}

	return table
}

func TestTable_ColdStart(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-ldb-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	vs, err := qlearn.NewValueStore(newTestTable(t, tmpDir))
	if err != nil {
		t.Fatal(err)
	}

	if err := vs.Set("a", 1.5); err != nil {
		t.Fatal(err)
	}

	if err := vs.BatchSet(map[qlearn.StateKey]float64{"b": -2.0, "c": 42.0}); err != nil {
		t.Fatal(err)
	}

	if err := vs.Close(); err != nil {
		t.Fatal(err)
	}

	vs, err = qlearn.NewValueStore(newTestTable(t, tmpDir))
	if err != nil {
		t.Fatal(err)
	}
	defer vs.Close()

	expected := map[qlearn.StateKey]float64{"a": 1.5, "b": -2.0, "c": 42.0}
	if vs.Count() != len(expected) {
		t.Errorf("expected %d values after reload, got %d", len(expected), vs.Count())
	}

	for key, want := range expected {
		if got := vs.Get(key); got != want {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
}

func TestTable_Clear(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-ldb-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	table := newTestTable(t, tmpDir)
	defer table.Close()

	if err := table.PutBatch(map[qlearn.StateKey]float64{"a": 1, "b": 2}); err != nil {
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
}

func TestTable_PutOverwrites(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "qothello-ldb-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	table := newTestTable(t, tmpDir)
	defer table.Close()

	for _, v := range []float64{1, 2, 3} {
		if err := table.Put("a", v); err != nil {
			t.Fatal(err)
		}
	}

	values := make(map[qlearn.StateKey]float64)
	err = table.Scan(func(key qlearn.StateKey, value float64) error {
		values[key] = value
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(values) != 1 || values["a"] != 3 {
		t.Errorf("expected {a: 3}, got %v", values)
	}
}
