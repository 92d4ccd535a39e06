// Package column implements the schema entry that describes one column of a
// table, grounded on the property/flag model of the teacher's internal/props
// and internal/parser packages (attrs-before-name, unique/key/autoincrement
// flags) but reshaped around the spec's explicit Column descriptor.
package column

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/value"
)

// ErrSchema is the sentinel for descriptor-construction failures: unknown
// column, attribute conflict, missing length for String/Bytes.
var ErrSchema = errors.New("schema error")

// Flags mirrors the spec's {unique, key, index, autoIncrement} flag set.
type Flags struct {
	Unique        bool
	Key           bool
	Index         bool
	AutoIncrement bool
}

// Column is immutable once attached to a table.
type Column struct {
	Name    string
	Kind    value.Kind
	MaxLen  int
	Default *value.Value
	Flags   Flags
}

// idColumn is the single reserved Id descriptor. New() never produces a
// Kind == value.KindID column; only NewID does.
func idColumn() Column {
	return Column{
		Name: "id",
		Kind: value.KindID,
		Flags: Flags{
			Key:           true,
			Unique:        true,
			AutoIncrement: true,
		},
	}
}

// NewID returns the reserved synthetic id column (I3): key, unique,
// auto-increment, named "id". It is never constructed by the parser.
func NewID() Column { return idColumn() }

// New constructs a column descriptor, enforcing the invariants in the data
// model: String/Bytes require a positive max_len, a default's variant must
// match kind, and key implies unique.
func New(kind value.Kind, name string, maxLen int, def *value.Value, flags Flags) (Column, error) {
	if name == "" {
		return Column{}, errors.Wrap(ErrSchema, "column name must not be empty")
	}
	if kind == value.KindID {
		return Column{}, errors.Wrapf(ErrSchema, "column %q: Id columns may only be created by the reserved factory", name)
	}
	if kind == value.KindString || kind == value.KindBytes {
		if maxLen <= 0 {
			return Column{}, errors.Wrapf(ErrSchema, "column %q: max_len must be positive for %s", name, kind)
		}
	} else if maxLen != 0 {
		return Column{}, errors.Wrapf(ErrSchema, "column %q: max_len is not meaningful for %s", name, kind)
	}

	if def != nil && def.Kind() != kind {
		return Column{}, errors.Wrapf(ErrSchema, "column %q: default kind %s does not match column kind %s", name, def.Kind(), kind)
	}

	if flags.Key {
		flags.Unique = true
	}
	if flags.AutoIncrement && kind != value.KindInteger {
		return Column{}, errors.Wrapf(ErrSchema, "column %q: autoincrement requires Int32", name)
	}
	if flags.AutoIncrement {
		// Auto-increment overrides any supplied default; keep the descriptor
		// unambiguous rather than silently dropping one or the other.
		def = nil
	}

	return Column{
		Name:    name,
		Kind:    kind,
		MaxLen:  maxLen,
		Default: def,
		Flags:   flags,
	}, nil
}

// IsIndexed reports whether the column participates in an ordered index,
// either because it was declared {index} or because uniqueness/keyness
// implies one.
func (c Column) IsIndexed() bool {
	return c.Flags.Index || c.Flags.Unique || c.Flags.Key
}
