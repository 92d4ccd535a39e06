package command

import (
	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/view"
)

// CreateTable installs a fresh table, replacing any prior one of the same
// name (§4.9).
type CreateTable struct {
	Name    string
	Columns []column.Column
}

func (c CreateTable) Execute(cat Catalog) (*view.View, error) {
	t, err := table.New(c.Name, c.Columns)
	if err != nil {
		return nil, err
	}
	cat.Install(c.Name, t)
	return nil, nil
}
