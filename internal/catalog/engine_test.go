package catalog

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/value"
)

type noopFlusher struct{ calls int }

func (f *noopFlusher) DumpAll(dir string, tables map[string]*table.Table) error {
	f.calls++
	return nil
}

func plainTable(t *testing.T) *table.Table {
	age, err := column.New(value.KindInteger, "age", 0, nil, column.Flags{})
	assert.NilError(t, err)
	tbl, err := table.New("users", []column.Column{age})
	assert.NilError(t, err)
	return tbl
}

func TestInstallLookupReplace(t *testing.T) {
	e := NewEngine(WriteSettings{InMemory: true}, &noopFlusher{})
	defer e.Close()

	_, ok := e.Lookup("users")
	assert.Equal(t, ok, false)

	e.Install("users", plainTable(t))
	tbl, ok := e.Lookup("users")
	assert.Equal(t, ok, true)
	assert.Equal(t, tbl.Name, "users")

	assert.DeepEqual(t, e.Tables(), []string{"users"})

	e.Install("users", plainTable(t))
	tbl2, _ := e.Lookup("users")
	assert.Assert(t, tbl != tbl2)
}

func TestFlushIsNoOpInMemory(t *testing.T) {
	f := &noopFlusher{}
	e := NewEngine(WriteSettings{InMemory: true}, f)
	defer e.Close()

	e.Install("users", plainTable(t))
	assert.NilError(t, e.Flush(f))
	assert.Equal(t, f.calls, 0)
}

func TestFlushCallsFlusherWhenNotInMemory(t *testing.T) {
	f := &noopFlusher{}
	e := NewEngine(WriteSettings{Dir: t.TempDir(), FlushInterval: time.Hour}, f)
	defer e.Close()

	e.Install("users", plainTable(t))
	assert.NilError(t, e.Flush(f))
	assert.Equal(t, f.calls, 1)
}

func TestMultipleEnginesAreIndependent(t *testing.T) {
	e1 := NewEngine(WriteSettings{InMemory: true}, &noopFlusher{})
	defer e1.Close()
	e2 := NewEngine(WriteSettings{InMemory: true}, &noopFlusher{})
	defer e2.Close()

	e1.Install("users", plainTable(t))
	_, ok := e2.Lookup("users")
	assert.Equal(t, ok, false)
}
