// Package table implements the schema and row store: typed columns,
// defaults, auto-increment, uniqueness, secondary indexes, and the ordered
// record log, grounded on the teacher's internal/builder (Table, Field,
// PagingManager) and internal/parser (ValidateType, Compare) packages.
package table

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/value"
)

// Error sentinels, one per behavioral kind in SPEC_FULL.md §7.
var (
	ErrSchema     = errors.New("schema error")
	ErrConstraint = errors.New("constraint error")
	ErrType       = errors.New("type error")
	ErrNotFound   = errors.New("not found")
)

// Table is the process-wide mutable row store for one declared schema.
type Table struct {
	locker sync.RWMutex

	Name    string
	columns []column.Column

	byName     map[string]*column.Column
	byPosition map[string]int

	keyColumn *column.Column

	autoIncrement map[string]int32

	arena   *arena
	indexes map[string]*orderedIndex
}

// New builds a table from a caller-supplied column list. If no column is
// unique, a synthetic Id column is appended and set as the key column (I3).
func New(name string, cols []column.Column) (*Table, error) {
	if name == "" {
		return nil, errors.Wrap(ErrSchema, "table name must not be empty")
	}

	t := &Table{
		Name:          name,
		byName:        make(map[string]*column.Column),
		byPosition:    make(map[string]int),
		autoIncrement: make(map[string]int32),
		arena:         newArena(),
		indexes:       make(map[string]*orderedIndex),
	}

	hasUnique := false
	for _, c := range cols {
		if c.Flags.Unique {
			hasUnique = true
		}
	}
	if !hasUnique {
		cols = append(cols, column.NewID())
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.Name] {
			return nil, errors.Wrapf(ErrSchema, "duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		cc := c
		t.columns = append(t.columns, cc)
	}
	for i := range t.columns {
		c := &t.columns[i]
		t.byName[c.Name] = c
		t.byPosition[c.Name] = i
		if c.Flags.Key {
			t.keyColumn = c
		}
		if c.Flags.AutoIncrement {
			t.autoIncrement[c.Name] = 0
		}
		if c.IsIndexed() {
			t.indexes[c.Name] = newOrderedIndex()
		}
	}
	if t.keyColumn == nil {
		for i := range t.columns {
			if t.columns[i].Flags.Unique {
				t.keyColumn = &t.columns[i]
				break
			}
		}
	}

	return t, nil
}

func (t *Table) GetLocker() *sync.RWMutex { return &t.locker }

// Columns returns the table's columns in declaration order.
func (t *Table) Columns() []column.Column {
	out := make([]column.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// KeyColumn returns the table's designated key column, which always exists
// after New: the declared {key} column, else the first unique column, else
// the synthesized Id.
func (t *Table) KeyColumn() *column.Column { return t.keyColumn }

// Column looks up a column descriptor by name.
func (t *Table) Column(name string) (*column.Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Position returns the declaration-order index of a column.
func (t *Table) Position(name string) (int, bool) {
	p, ok := t.byPosition[name]
	return p, ok
}

// Len reports the number of live records.
func (t *Table) Len() int {
	t.locker.RLock()
	defer t.locker.RUnlock()
	return t.arena.len()
}

func (t *Table) cellAt(r *Record, name string) (value.Value, bool) {
	pos, ok := t.byPosition[name]
	if !ok {
		return value.Value{}, false
	}
	return r.Get(pos), true
}

// rowView adapts a (table, record) pair to predicate.Row, so the predicate
// package can evaluate a WHERE tree without ever importing table.
type rowView struct {
	t *Table
	r *Record
}

func (v rowView) Value(name string) (value.Value, bool) { return v.t.cellAt(v.r, name) }

// RowView exposes r under the predicate.Row contract.
func (t *Table) RowView(r *Record) predicate.Row { return rowView{t, r} }
