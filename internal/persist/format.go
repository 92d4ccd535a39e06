// Package persist implements the text, line-oriented dump/restore format
// of SPEC_FULL.md §6 and the round-trip checksum helper of §6A. CSV
// escaping (the comma/quote rules in §6) is delegated to the standard
// library's encoding/csv — no third-party CSV library appears anywhere in
// the example pack, and the format is line-oriented rather than a true
// CSV document, so a single stdlib writer/reader per line is the natural
// fit rather than a hand-rolled escaper.
package persist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/value"
)

// ErrIO is the sentinel for a malformed dump: missing separator, a count
// mismatch, or an unknown kind string (§7: IOError).
var ErrIO = errors.New("io error")

const (
	markerTable   = "#TABLE_NAME"
	markerColumns = "#COLUMNS"
	markerData    = "#DATA"
)

func writeCSVLine(w io.Writer, fields []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func readCSVLine(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return fields, nil
}

// columnLine renders one <column-line>: kind_str, name, has_default(0|1),
// default_type_str, default_value_str, unique(0|1), key(0|1), index(0|1),
// aux.
func columnLine(c column.Column) []string {
	hasDefault := "0"
	defaultType, defaultValue := "", ""
	if c.Default != nil {
		hasDefault = "1"
		defaultType = c.Default.Kind().String()
		defaultValue = c.Default.String()
	}

	aux := "0"
	switch c.Kind {
	case value.KindInteger, value.KindID:
		aux = boolStr(c.Flags.AutoIncrement)
	case value.KindString, value.KindBytes:
		aux = strconv.Itoa(c.MaxLen)
	}

	return []string{
		c.Kind.String(),
		c.Name,
		hasDefault,
		defaultType,
		defaultValue,
		boolStr(c.Flags.Unique),
		boolStr(c.Flags.Key),
		boolStr(c.Flags.Index),
		aux,
	}
}

// parseColumnLine reverses columnLine, reconstructing a descriptor via
// column.New — except for the reserved Id column, which is reconstructed
// via column.NewID since column.New refuses to build a KindID column.
func parseColumnLine(fields []string) (column.Column, error) {
	if len(fields) != 9 {
		return column.Column{}, errors.Wrapf(ErrIO, "column line: expected 9 fields, got %d", len(fields))
	}
	kind, ok := kindFromString(fields[0])
	if !ok {
		return column.Column{}, errors.Wrapf(ErrIO, "column line: unknown kind %q", fields[0])
	}
	name := fields[1]

	if kind == value.KindID {
		return column.NewID(), nil
	}

	var def *value.Value
	if fields[2] == "1" {
		dv, err := parseStoredValue(kind, fields[4])
		if err != nil {
			return column.Column{}, err
		}
		def = &dv
	}

	unique, err := boolFromString(fields[5])
	if err != nil {
		return column.Column{}, err
	}
	key, err := boolFromString(fields[6])
	if err != nil {
		return column.Column{}, err
	}
	index, err := boolFromString(fields[7])
	if err != nil {
		return column.Column{}, err
	}

	maxLen := 0
	autoIncrement := false
	switch kind {
	case value.KindInteger:
		autoIncrement, err = boolFromString(fields[8])
		if err != nil {
			return column.Column{}, err
		}
	case value.KindString, value.KindBytes:
		maxLen, err = strconv.Atoi(fields[8])
		if err != nil {
			return column.Column{}, errors.Wrapf(ErrIO, "column line: invalid max_len %q", fields[8])
		}
	}

	return column.New(kind, name, maxLen, def, column.Flags{
		Unique:        unique,
		Key:           key,
		Index:         index,
		AutoIncrement: autoIncrement,
	})
}

// parseStoredValue reconstructs a cell from its stringified form per kind.
// Bool accepts both "1"/"0" and "true"/"false" (§9, Design Notes
// resolution (2)): the dump always emits true/false, but restore is
// deliberately lenient.
func parseStoredValue(kind value.Kind, s string) (value.Value, error) {
	switch kind {
	case value.KindInteger, value.KindID:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return value.Value{}, errors.Wrapf(ErrIO, "invalid integer cell %q", s)
		}
		if kind == value.KindID {
			return value.ID(int32(n)), nil
		}
		return value.Int(int32(n)), nil
	case value.KindBool:
		switch s {
		case "true", "1":
			return value.Bool(true), nil
		case "false", "0":
			return value.Bool(false), nil
		default:
			return value.Value{}, errors.Wrapf(ErrIO, "invalid bool cell %q", s)
		}
	case value.KindString:
		return value.Str(s), nil
	case value.KindBytes:
		return value.Bytes([]byte(s)), nil
	default:
		return value.Value{}, errors.Wrapf(ErrIO, "cannot restore a cell of kind %s", kind)
	}
}

func kindFromString(s string) (value.Kind, bool) {
	switch s {
	case "Int32":
		return value.KindInteger, true
	case "Id":
		return value.KindID, true
	case "Bool":
		return value.KindBool, true
	case "String":
		return value.KindString, true
	case "Bytes":
		return value.KindBytes, true
	default:
		return value.KindNone, false
	}
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func boolFromString(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, errors.Wrapf(ErrIO, "invalid boolean flag %q", s)
	}
}

// readLine reads one newline-delimited line, trimming the trailing
// newline/carriage return, and reports io.EOF distinctly from a final
// unterminated line so callers can tell "no more sections" from a
// truncated file.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	return line, nil
}

func expectMarker(r *bufio.Reader, marker string) error {
	line, err := readLine(r)
	if err != nil {
		return errors.Wrapf(ErrIO, "expected marker %s: %v", marker, err)
	}
	if line != marker {
		return errors.Wrapf(ErrIO, "expected marker %s, got %q", marker, line)
	}
	return nil
}

func writeMarker(w io.Writer, marker string) error {
	_, err := fmt.Fprintln(w, marker)
	return err
}
