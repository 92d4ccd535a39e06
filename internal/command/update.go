package command

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/value"
	"github.com/tdbql/tdbql/internal/view"
)

// Update mutates the named table (§4.9).
type Update struct {
	Table       string
	Assignments map[string]value.Value
	Predicate   predicate.Node
}

func (c Update) Execute(cat Catalog) (*view.View, error) {
	t, ok := cat.Lookup(c.Table)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "unknown table %q", c.Table)
	}
	_, err := t.Update(c.Predicate, c.Assignments)
	return nil, err
}
