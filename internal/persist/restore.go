package persist

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/value"
)

// Restore reads one table dump produced by Dump and reconstructs its
// schema and rows. A mismatch between the header's column count and the
// schema's column count, or between a record line's field count and the
// column count, is fatal (§6, §7 IOError); a single trailing comma on a
// record line is accepted.
func Restore(r io.Reader) (string, *table.Table, error) {
	br := bufio.NewReader(r)

	if err := expectMarker(br, markerTable); err != nil {
		return "", nil, err
	}
	name, err := readLine(br)
	if err != nil {
		return "", nil, errors.Wrap(ErrIO, "missing table name")
	}

	if err := expectMarker(br, markerColumns); err != nil {
		return "", nil, err
	}
	var cols []column.Column
	for {
		line, err := readLine(br)
		if err != nil {
			return "", nil, errors.Wrap(ErrIO, "unexpected end of file in columns section")
		}
		if line == markerData {
			break
		}
		fields, err := readCSVLine(line)
		if err != nil {
			return "", nil, errors.Wrapf(ErrIO, "malformed column line: %v", err)
		}
		c, err := parseColumnLine(fields)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, c)
	}

	t, err := table.New(name, cols)
	if err != nil {
		return "", nil, err
	}

	headerLine, err := readLine(br)
	if err != nil {
		return "", nil, errors.Wrap(ErrIO, "missing header line")
	}
	header, err := readCSVLine(headerLine)
	if err != nil {
		return "", nil, errors.Wrapf(ErrIO, "malformed header line: %v", err)
	}
	if len(header) != len(t.Columns()) {
		return "", nil, errors.Wrapf(ErrIO, "header has %d columns, schema has %d", len(header), len(t.Columns()))
	}

	schemaCols := t.Columns()
	for {
		line, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}
		fields, err := readCSVLine(line)
		if err != nil {
			return "", nil, errors.Wrapf(ErrIO, "malformed record line: %v", err)
		}
		if len(fields) == len(schemaCols)+1 && fields[len(fields)-1] == "" {
			// A trailing comma after the last field is permitted (§6).
			fields = fields[:len(schemaCols)]
		}
		if len(fields) != len(schemaCols) {
			return "", nil, errors.Wrapf(ErrIO, "record has %d fields, want %d", len(fields), len(schemaCols))
		}
		cells := make([]value.Value, len(schemaCols))
		for i, c := range schemaCols {
			v, err := parseStoredValue(c.Kind, fields[i])
			if err != nil {
				return "", nil, err
			}
			cells[i] = v
		}
		if _, err := t.LoadRecord(cells); err != nil {
			return "", nil, err
		}
	}

	return name, t, nil
}
