package command

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/value"
	"github.com/tdbql/tdbql/internal/view"
)

// ErrNotFound is returned when a command names a table the catalog doesn't
// have (§7: NotFoundError).
var ErrNotFound = errors.New("not found")

// Insert mutates the named table (§4.9).
type Insert struct {
	Table  string
	Values map[string]value.Value
}

func (c Insert) Execute(cat Catalog) (*view.View, error) {
	t, ok := cat.Lookup(c.Table)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "unknown table %q", c.Table)
	}
	_, err := t.Insert(c.Values)
	return nil, err
}
