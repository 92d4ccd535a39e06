package table

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/predicate"
)

// Select implements §4.5: scan records in declaration order, keep those
// matching pred (nil matches everything), and return them alongside the
// resolved projection. An empty projection means "all columns" and is
// returned as the table's full column name list so the caller (the view
// package) never has to special-case it.
func (t *Table) Select(projection []string, pred predicate.Node) ([]string, []*Record, error) {
	t.locker.RLock()
	defer t.locker.RUnlock()

	cols, err := t.resolveProjection(projection)
	if err != nil {
		return nil, nil, err
	}

	var matched []*Record
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
			matched = append(matched, r.Clone())
		}
	})
	if evalErr != nil {
		return nil, nil, evalErr
	}
	return cols, matched, nil
}

// resolveProjection validates a requested column list against the schema,
// defaulting to every column in declaration order when projection is empty.
func (t *Table) resolveProjection(projection []string) ([]string, error) {
	if len(projection) == 0 {
		cols := make([]string, len(t.columns))
		for i, c := range t.columns {
			cols[i] = c.Name
		}
		return cols, nil
	}
	for _, name := range projection {
		if _, ok := t.byName[name]; !ok {
			return nil, errors.Wrapf(ErrSchema, "table %q: unknown column %q in projection", t.Name, name)
		}
	}
	return projection, nil
}
