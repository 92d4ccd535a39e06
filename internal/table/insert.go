package table

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/value"
)

// Insert implements §4.4: validate shape, build the record (defaults,
// overlay, auto-increment), check uniqueness by linear scan, then commit.
// Any failure before Commit leaves the table, and every auto-increment
// counter, untouched.
func (t *Table) Insert(values map[string]value.Value) (Handle, error) {
	t.locker.Lock()
	defer t.locker.Unlock()

	if err := t.validateInsertShape(values); err != nil {
		return NilHandle, err
	}

	cells := make([]value.Value, len(t.columns))
	for i, c := range t.columns {
		if c.Default != nil {
			cells[i] = *c.Default
		} else {
			cells[i] = value.Zero(c.Kind)
		}
	}
	for name, v := range values {
		pos := t.byPosition[name]
		cells[pos] = v
	}

	// Auto-increment columns are filled from their current counter with
	// post-increment semantics; the counter itself is bumped only once the
	// record has cleared uniqueness (below), so a rejected insert never
	// advances it.
	pendingIncrements := make(map[string]int32)
	for i, c := range t.columns {
		if !c.Flags.AutoIncrement {
			continue
		}
		current := t.autoIncrement[c.Name]
		cells[i] = value.Int(current)
		pendingIncrements[c.Name] = current + 1
	}

	if err := t.checkUniqueAgainstExisting(cells, NilHandle); err != nil {
		return NilHandle, err
	}

	rec := &Record{Cells: cells}
	handle := t.arena.append(rec)

	for name, next := range pendingIncrements {
		t.autoIncrement[name] = next
	}

	for name, idx := range t.indexes {
		pos := t.byPosition[name]
		idx.insert(cells[pos], handle)
	}

	return handle, nil
}

// validateInsertShape rejects an input mapping with more entries than
// columns, an unknown column name, or a write to an auto-increment column
// (ConstraintError, per §7: "attempt to write an auto-increment column").
func (t *Table) validateInsertShape(values map[string]value.Value) error {
	if len(values) > len(t.columns) {
		return errors.Wrapf(ErrSchema, "table %q: too many values for %d columns", t.Name, len(t.columns))
	}
	for name, v := range values {
		c, ok := t.byName[name]
		if !ok {
			return errors.Wrapf(ErrSchema, "table %q: unknown column %q", t.Name, name)
		}
		if c.Flags.AutoIncrement {
			return errors.Wrapf(ErrConstraint, "table %q: column %q is auto-increment and cannot be written directly", t.Name, name)
		}
		if c.Kind != v.Kind() && !(c.Kind == value.KindID && v.Kind() == value.KindInteger) {
			return errors.Wrapf(ErrType, "table %q: column %q expects %s, got %s", t.Name, name, c.Kind, v.Kind())
		}
	}
	return nil
}

// checkUniqueAgainstExisting scans every existing record for a unique-column
// collision with cells. skip excludes a record (by handle) from the scan,
// used by Update to compare "against the entire record set" minus itself.
func (t *Table) checkUniqueAgainstExisting(cells []value.Value, skip Handle) error {
	var violation error
	for i, c := range t.columns {
		if !c.Flags.Unique {
			continue
		}
		candidate := cells[i]
		_ = t.arena.each(func(r *Record) {
			if violation != nil || r.Handle == skip {
				return
			}
			if value.Equal(r.Get(i), candidate) {
				violation = errors.Wrapf(ErrConstraint, "table %q: unique violation on column %q", t.Name, c.Name)
			}
		})
		if violation != nil {
			return violation
		}
	}
	return nil
}
