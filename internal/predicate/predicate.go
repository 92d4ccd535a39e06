// Package predicate implements the WHERE-clause filter tree: comparison
// leaves plus AND/OR/NOT, evaluated against a record+table context. It is
// grounded on the teacher's internal/parser/compare.go comparator
// functions (compareInt, compareString), reshaped into the spec's
// three-node tree instead of runtime map-of-operators dispatch.
package predicate

import (
	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/value"
)

// ErrType is returned when a comparison crosses value variants or an
// operator isn't supported for the operand kind.
var ErrType = errors.New("type error")

// Row is the minimal read-only context a predicate needs: look up a
// column's value by name. Tables satisfy this without predicate needing to
// import the table package, keeping the dependency one-directional.
type Row interface {
	Value(column string) (value.Value, bool)
}

// Op is a comparison operator accepted by a leaf.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Node is any predicate tree node: a Comparison leaf, a Logical AND/OR, or
// a Not.
type Node interface {
	Eval(row Row) (bool, error)
}

// Comparison is a leaf: column op literal.
type Comparison struct {
	Column string
	Op     Op
	Value  value.Value
}

func (c Comparison) Eval(row Row) (bool, error) {
	cell, ok := row.Value(c.Column)
	if !ok {
		return false, errors.Wrapf(ErrType, "unknown column %q in predicate", c.Column)
	}
	cmp, ok := value.Compare(cell, c.Value)
	if !ok {
		return false, errors.Wrapf(ErrType, "cannot compare %s to %s on column %q", cell.Kind(), c.Value.Kind(), c.Column)
	}
	switch c.Op {
	case OpEq:
		return cmp == 0, nil
	case OpNe:
		return cmp != 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLe:
		return cmp <= 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGe:
		return cmp >= 0, nil
	default:
		return false, errors.Wrapf(ErrType, "unsupported operator %v", c.Op)
	}
}

// LogicalKind distinguishes AND from OR.
type LogicalKind int

const (
	LogicalAnd LogicalKind = iota
	LogicalOr
)

// Logical is the AND/OR node; evaluation short-circuits left-to-right.
type Logical struct {
	Kind  LogicalKind
	Left  Node
	Right Node
}

func (l Logical) Eval(row Row) (bool, error) {
	left, err := l.Left.Eval(row)
	if err != nil {
		return false, err
	}
	if l.Kind == LogicalAnd && !left {
		return false, nil
	}
	if l.Kind == LogicalOr && left {
		return true, nil
	}
	return l.Right.Eval(row)
}

// Not inverts its operand.
type Not struct {
	Operand Node
}

func (n Not) Eval(row Row) (bool, error) {
	v, err := n.Operand.Eval(row)
	if err != nil {
		return false, err
	}
	return !v, nil
}

// Eval evaluates node against row, treating a nil node as "match
// everything" (the absent predicate in §4.5/§4.7).
func Eval(node Node, row Row) (bool, error) {
	if node == nil {
		return true, nil
	}
	return node.Eval(row)
}
