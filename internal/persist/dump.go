package persist

import (
	"fmt"
	"io"

	"github.com/tdbql/tdbql/internal/table"
)

// Dump writes one table in the format of §6: a #TABLE_NAME section naming
// it, a #COLUMNS section describing its schema, and a #DATA section with a
// header line followed by one record line per live row, in declaration
// order.
func Dump(w io.Writer, name string, t *table.Table) error {
	if err := writeMarker(w, markerTable); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, name); err != nil {
		return err
	}

	if err := writeMarker(w, markerColumns); err != nil {
		return err
	}
	cols := t.Columns()
	for _, c := range cols {
		if err := writeCSVLine(w, columnLine(c)); err != nil {
			return err
		}
	}

	if err := writeMarker(w, markerData); err != nil {
		return err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	if err := writeCSVLine(w, names); err != nil {
		return err
	}

	_, records, err := t.Select(nil, nil)
	if err != nil {
		return err
	}
	for _, rec := range records {
		fields := make([]string, len(cols))
		for i := range cols {
			fields[i] = rec.Get(i).String()
		}
		if err := writeCSVLine(w, fields); err != nil {
			return err
		}
	}
	return nil
}
