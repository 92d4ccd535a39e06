package table

import "github.com/tdbql/tdbql/internal/predicate"

// Delete implements §4.7: remove every record matching pred (nil matches
// everything), purging each one from every secondary index as it goes, and
// returns the number of records removed. Matching is read-only scan first,
// removal second, so the iteration contract in arena.each is never asked to
// observe its own deletions.
func (t *Table) Delete(pred predicate.Node) (int, error) {
	t.locker.Lock()
	defer t.locker.Unlock()

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

	for _, r := range targets {
		for _, idx := range t.indexes {
			idx.remove(r.Handle)
		}
		t.arena.delete(r.Handle)
	}

	return len(targets), nil
}
