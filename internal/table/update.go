package table

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/value"
)

// Update implements §4.6: every record matching pred (nil matches
// everything) has assignments applied, gated by the same shape and
// uniqueness rules as Insert, checked record-by-record against the entire
// table minus the record being updated itself. It returns the number of
// matching records, each of which had the assignments applied. A uniqueness violation on any one matched
// record aborts the whole call without mutating anything — matching is
// read-only scan first, mutation second.
func (t *Table) Update(pred predicate.Node, assignments map[string]value.Value) (int, error) {
	t.locker.Lock()
	defer t.locker.Unlock()

	if err := t.validateAssignmentShape(assignments); err != nil {
		return 0, err
	}

	var targets []*Record
	var evalErr error
	_ = t.arena.each(func(r *Record) {
		if evalErr != nil {
			return
		}
		ok, err := predicate.Eval(pred, t.RowView(r))
		if err != nil {
			evalErr = err
			return
		}
		if ok {
			targets = append(targets, r)
		}
	})
	if evalErr != nil {
		return 0, evalErr
	}
	if len(targets) == 0 {
		return 0, nil
	}

	updated := make([]*Record, len(targets))
	for i, r := range targets {
		next := r.Clone()
		for name, v := range assignments {
			pos := t.byPosition[name]
			next.Cells[pos] = v
		}
		if err := t.checkUniqueAgainstExisting(next.Cells, r.Handle); err != nil {
			return 0, err
		}
		updated[i] = next
	}

	for i, r := range targets {
		next := updated[i]
		for name, idx := range t.indexes {
			pos := t.byPosition[name]
			if !value.Equal(r.Get(pos), next.Get(pos)) {
				idx.remove(r.Handle)
				idx.insert(next.Cells[pos], r.Handle)
			}
		}
		t.arena.replace(r.Handle, next)
	}

	return len(targets), nil
}

// validateAssignmentShape rejects an unknown column or a write to an
// auto-increment column, mirroring Insert's shape check.
func (t *Table) validateAssignmentShape(assignments map[string]value.Value) error {
	for name, v := range assignments {
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
