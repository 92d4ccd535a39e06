// Package view implements the immutable projection result of a select:
// the column list, a name→position map, and the ordered record
// references, per SPEC_FULL.md §4.5 and the View glossary entry.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
)

// ErrSchema is returned when a view is asked for a column it doesn't carry.
var ErrSchema = errors.New("schema error")

// columnRef pairs a projected column's descriptor with its position in the
// underlying record's cell layout, since a projection's column order need
// not match declaration order.
type columnRef struct {
	col      column.Column
	position int
}

// View is the read-only result of Table.Select: a fixed column list, drawn
// from cols in the order requested, each resolved against t, plus the
// matching records in declaration/insertion order.
type View struct {
	TableName string
	refs      []columnRef
	nameIndex map[string]int
	Records   []*table.Record
}

// New resolves cols (as already validated/defaulted by Table.Select)
// against t and pairs them with records.
func New(t *table.Table, tableName string, cols []string, records []*table.Record) (*View, error) {
	v := &View{
		TableName: tableName,
		nameIndex: make(map[string]int, len(cols)),
		Records:   records,
	}
	for i, name := range cols {
		c, ok := t.Column(name)
		if !ok {
			return nil, errors.Wrapf(ErrSchema, "view: unknown column %q", name)
		}
		pos, _ := t.Position(name)
		v.refs = append(v.refs, columnRef{col: *c, position: pos})
		v.nameIndex[name] = i
	}
	return v, nil
}

// Columns returns the view's projected column descriptors in projection
// order.
func (v *View) Columns() []column.Column {
	out := make([]column.Column, len(v.refs))
	for i, r := range v.refs {
		out[i] = r.col
	}
	return out
}

// Position returns a projected column's index within the view (not its
// position in the underlying record).
func (v *View) Position(name string) (int, bool) {
	p, ok := v.nameIndex[name]
	return p, ok
}

// Len reports the number of rows in the view.
func (v *View) Len() int { return len(v.Records) }

// Row renders the i'th record's cells in projection order.
func (v *View) Row(i int) []string {
	rec := v.Records[i]
	out := make([]string, len(v.refs))
	for j, r := range v.refs {
		out[j] = rec.Get(r.position).String()
	}
	return out
}

// Print writes a header row of column names followed by one line per
// record, tab-separated, per §4.5's print operation.
func (v *View) Print(w io.Writer) error {
	names := make([]string, len(v.refs))
	for i, r := range v.refs {
		names[i] = r.col.Name
	}
	if _, err := fmt.Fprintln(w, strings.Join(names, "\t")); err != nil {
		return err
	}
	for i := range v.Records {
		if _, err := fmt.Fprintln(w, strings.Join(v.Row(i), "\t")); err != nil {
			return err
		}
	}
	return nil
}
