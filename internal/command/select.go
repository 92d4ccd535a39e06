package command

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/view"
)

// Select returns a view (§4.9); printing it is left to the caller (the
// CLI), Execute only builds the view.
type Select struct {
	Table      string
	Projection []string
	Predicate  predicate.Node
}

func (c Select) Execute(cat Catalog) (*view.View, error) {
	t, ok := cat.Lookup(c.Table)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "unknown table %q", c.Table)
	}
	cols, recs, err := t.Select(c.Projection, c.Predicate)
	if err != nil {
		return nil, err
	}
	return view.New(t, c.Table, cols, recs)
}
