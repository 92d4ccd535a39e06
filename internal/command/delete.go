package command

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/view"
)

// Delete mutates the named table (§4.9).
type Delete struct {
	Table     string
	Predicate predicate.Node
}

func (c Delete) Execute(cat Catalog) (*view.View, error) {
	t, ok := cat.Lookup(c.Table)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "unknown table %q", c.Table)
	}
	_, err := t.Delete(c.Predicate)
	return nil, err
}
