package predicate

import (
	"testing"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/value"
)

type fakeRow map[string]value.Value

func (r fakeRow) Value(name string) (value.Value, bool) {
	v, ok := r[name]
	return v, ok
}

func TestComparisonOperators(t *testing.T) {
	row := fakeRow{"age": value.Int(30)}
	cases := []struct {
		op   Op
		rhs  int32
		want bool
	}{
		{OpEq, 30, true},
		{OpEq, 31, false},
		{OpNe, 31, true},
		{OpLt, 31, true},
		{OpLe, 30, true},
		{OpGt, 29, true},
		{OpGe, 30, true},
	}
	for _, c := range cases {
		ok, err := Comparison{Column: "age", Op: c.op, Value: value.Int(c.rhs)}.Eval(row)
		assert.NilError(t, err)
		assert.Equal(t, ok, c.want)
	}
}

func TestComparisonCrossVariantIsTypeError(t *testing.T) {
	row := fakeRow{"age": value.Int(30)}
	_, err := Comparison{Column: "age", Op: OpEq, Value: value.Str("30")}.Eval(row)
	assert.ErrorContains(t, err, "type error")
}

func TestComparisonUnknownColumn(t *testing.T) {
	row := fakeRow{}
	_, err := Comparison{Column: "missing", Op: OpEq, Value: value.Int(1)}.Eval(row)
	assert.ErrorContains(t, err, "unknown column")
}

func TestLogicalAndShortCircuits(t *testing.T) {
	row := fakeRow{"age": value.Int(30)}
	node := Logical{
		Kind: LogicalAnd,
		Left: Comparison{Column: "age", Op: OpEq, Value: value.Int(99)},
		// A right side referencing an unknown column would error if evaluated;
		// AND must short-circuit on a false left without reaching it.
		Right: Comparison{Column: "missing", Op: OpEq, Value: value.Int(1)},
	}
	ok, err := node.Eval(row)
	assert.NilError(t, err)
	assert.Equal(t, ok, false)
}

func TestLogicalOrShortCircuits(t *testing.T) {
	row := fakeRow{"age": value.Int(30)}
	node := Logical{
		Kind: LogicalOr,
		Left: Comparison{Column: "age", Op: OpEq, Value: value.Int(30)},
		Right: Comparison{Column: "missing", Op: OpEq, Value: value.Int(1)},
	}
	ok, err := node.Eval(row)
	assert.NilError(t, err)
	assert.Equal(t, ok, true)
}

func TestNotInverts(t *testing.T) {
	row := fakeRow{"age": value.Int(30)}
	node := Not{Operand: Comparison{Column: "age", Op: OpEq, Value: value.Int(30)}}
	ok, err := node.Eval(row)
	assert.NilError(t, err)
	assert.Equal(t, ok, false)
}

func TestEvalNilNodeMatchesEverything(t *testing.T) {
	ok, err := Eval(nil, fakeRow{})
	assert.NilError(t, err)
	assert.Equal(t, ok, true)
}
