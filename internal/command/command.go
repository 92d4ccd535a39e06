// Package command implements §4.9: each statement becomes a Command that
// carries the minimum state needed to run against a Catalog and exposes a
// single Execute, returning either no view (mutations) or a view (select).
package command

import (
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/view"
)

// Catalog is the process-wide table directory a Command runs against
// (§6 External Interfaces). Engine (internal/catalog) is the concrete,
// long-lived implementation; tests may supply a lighter one.
type Catalog interface {
	Lookup(name string) (*table.Table, bool)
	Install(name string, t *table.Table)
	Tables() []string
}

// Command is one parsed statement, ready to execute.
type Command interface {
	Execute(cat Catalog) (*view.View, error)
}
