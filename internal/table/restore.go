package table

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/value"
)

// LoadRecord commits a fully-formed cell vector straight to the arena and
// every index, bypassing Insert's shape/uniqueness checks and
// auto-increment assignment. It exists solely for the persistence layer's
// restore path (§6), which is reconstructing records that already passed
// those checks once, at the time they were first inserted; re-deriving
// auto-increment values would drop the very identifiers the dump is
// supposed to preserve. Any auto-increment column's counter is advanced
// past whatever value is loaded, so inserts after a restore keep handing
// out fresh values.
func (t *Table) LoadRecord(cells []value.Value) (Handle, error) {
	t.locker.Lock()
	defer t.locker.Unlock()

	if len(cells) != len(t.columns) {
		return NilHandle, errors.Wrapf(ErrSchema, "table %q: record has %d cells, want %d", t.Name, len(cells), len(t.columns))
	}

	for i, c := range t.columns {
		if !c.Flags.AutoIncrement {
			continue
		}
		if next := cells[i].Int() + 1; next > t.autoIncrement[c.Name] {
			t.autoIncrement[c.Name] = next
		}
	}

	rec := &Record{Cells: cells}
	handle := t.arena.append(rec)

	for name, idx := range t.indexes {
		pos := t.byPosition[name]
		idx.insert(cells[pos], handle)
	}

	return handle, nil
}
