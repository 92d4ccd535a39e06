// Package value implements the tagged-union value type shared by columns,
// records, literals, and predicates throughout tdbql.
package value

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags which arm of a Value is legal for a given column.
type Kind int

const (
	KindNone Kind = iota
	KindInteger
	KindID
	KindBool
	KindString
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Int32"
	case KindID:
		return "Id"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	default:
		return "None"
	}
}

// ParseKind maps a schema keyword to its Kind. The Id kind is never spelled
// in source text; it is only reachable through the reserved column factory.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "INT32":
		return KindInteger, true
	case "BOOL":
		return KindBool, true
	case "STRING":
		return KindString, true
	case "BYTES":
		return KindBytes, true
	default:
		return KindNone, false
	}
}

// ErrType is the sentinel for cross-variant comparisons and unsupported
// operators; callers wrap it with positional/contextual detail.
var ErrType = errors.New("type error")

// Value is a tagged union: exactly one of the typed fields is meaningful,
// selected by kind. Id and Integer both occupy the integer arm (I4 in the
// data model); Bool has its own arm.
type Value struct {
	kind  Kind
	i     int32
	b     bool
	s     string
	bytes []byte
}

func Int(i int32) Value  { return Value{kind: KindInteger, i: i} }
func ID(i int32) Value   { return Value{kind: KindID, i: i} }
func Bool(b bool) Value  { return Value{kind: KindBool, b: b} }
func Str(s string) Value { return Value{kind: KindString, s: s} }
func Bytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, bytes: cp}
}

// Zero returns the zero value for kind, used to fill cells before a default
// or an overlaid input value lands on them.
func Zero(kind Kind) Value {
	switch kind {
	case KindInteger:
		return Int(0)
	case KindID:
		return ID(0)
	case KindBool:
		return Bool(false)
	case KindString:
		return Str("")
	case KindBytes:
		return Bytes(nil)
	default:
		return Value{}
	}
}

func (v Value) Kind() Kind { return v.kind }

// Size reports the cell's storage size in bytes, used by the Cell{kind,
// size, value} shape the data model calls for.
func (v Value) Size() int {
	switch v.kind {
	case KindInteger, KindID:
		return 4
	case KindBool:
		return 1
	case KindString:
		return len(v.s)
	case KindBytes:
		return len(v.bytes)
	default:
		return 0
	}
}

func (v Value) Int() int32 {
	return v.i
}

func (v Value) Bool() bool { return v.b }

func (v Value) Str() string { return v.s }

func (v Value) Bytes() []byte { return v.bytes }

// SameVariant reports whether two values belong to the same kind family,
// treating Integer and Id as interchangeable (both occupy the int arm).
func SameVariant(a, b Value) bool {
	return normalizeKind(a.kind) == normalizeKind(b.kind)
}

func normalizeKind(k Kind) Kind {
	if k == KindID {
		return KindInteger
	}
	return k
}

// Compare orders two values of the same variant. ok is false when the
// variants differ and the comparison is therefore a TypeError at the call
// site.
func Compare(a, b Value) (cmp int, ok bool) {
	if !SameVariant(a, b) {
		return 0, false
	}
	switch normalizeKind(a.kind) {
	case KindInteger:
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	case KindBool:
		if a.b == b.b {
			return 0, true
		}
		if !a.b && b.b {
			return -1, true
		}
		return 1, true
	case KindString:
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	case KindBytes:
		na, nb := len(a.bytes), len(b.bytes)
		n := na
		if nb < n {
			n = nb
		}
		for i := 0; i < n; i++ {
			if a.bytes[i] != b.bytes[i] {
				if a.bytes[i] < b.bytes[i] {
					return -1, true
				}
				return 1, true
			}
		}
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// Equal reports whether a and b are the same variant and value. Used for
// uniqueness checks (I1) where ordering isn't needed, just identity.
func Equal(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// Equal is the method form of the package function above. go-cmp calls a
// value's own Equal method when one exists instead of walking its
// unexported fields, so structural comparisons of columns/defaults via
// cmp.Diff work without an IgnoreUnexported option.
func (v Value) Equal(other Value) bool { return Equal(v, other) }

// String renders v the way the dump format and SELECT's print operation
// expect: Int/Id decimal, Bool true/false, Str raw, Bytes the raw byte run.
func (v Value) String() string {
	switch v.kind {
	case KindInteger, KindID:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return v.s
	case KindBytes:
		return string(v.bytes)
	default:
		return ""
	}
}

// FormatIndexKey renders v into a form suitable as an ordered-index sort
// key: fixed-width so lexicographic byte order matches numeric order for
// integers, raw bytes otherwise.
func FormatIndexKey(v Value) string {
	switch v.kind {
	case KindInteger, KindID:
		// Bias by 2^31 so two's-complement ordering becomes lexicographic.
		return fmt.Sprintf("%011d", int64(v.i)+(1<<31))
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindString:
		return v.s
	case KindBytes:
		return string(v.bytes)
	default:
		return ""
	}
}
