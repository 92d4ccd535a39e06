package parser

import (
	"testing"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/command"
	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/value"
)

func parseOne(t *testing.T, src string) command.Command {
	p, err := New(src)
	assert.NilError(t, err)
	cmd, err := p.ParseStatement()
	assert.NilError(t, err)
	return cmd
}

func TestParseCreateTable(t *testing.T) {
	cmd := parseOne(t, `CREATE TABLE users ({key, autoincrement} id: INT32, {unique} name: STRING[64], age: INT32 = 0)`)
	ct, ok := cmd.(command.CreateTable)
	assert.Equal(t, ok, true)
	assert.Equal(t, ct.Name, "users")
	assert.Equal(t, len(ct.Columns), 3)
	assert.Equal(t, ct.Columns[0].Name, "id")
	assert.Equal(t, ct.Columns[0].Flags.Key, true)
	assert.Equal(t, ct.Columns[0].Flags.AutoIncrement, true)
	assert.Equal(t, ct.Columns[1].Flags.Unique, true)
	assert.Equal(t, ct.Columns[1].MaxLen, 64)
	assert.Equal(t, ct.Columns[2].Default.Int(), int32(0))
}

func TestParseInsert(t *testing.T) {
	cmd := parseOne(t, `INSERT (name = "ann", age = 30) TO users`)
	ins, ok := cmd.(command.Insert)
	assert.Equal(t, ok, true)
	assert.Equal(t, ins.Table, "users")
	assert.Equal(t, ins.Values["name"].Str(), "ann")
	assert.Equal(t, ins.Values["age"].Int(), int32(30))
}

func TestParseSelectStar(t *testing.T) {
	cmd := parseOne(t, `SELECT * FROM users`)
	sel, ok := cmd.(command.Select)
	assert.Equal(t, ok, true)
	assert.Equal(t, sel.Table, "users")
	assert.Equal(t, len(sel.Projection), 0)
}

func TestParseSelectProjectionAndWhere(t *testing.T) {
	cmd := parseOne(t, `SELECT name, age FROM users WHERE age >= 1 + 2`)
	sel, ok := cmd.(command.Select)
	assert.Equal(t, ok, true)
	assert.DeepEqual(t, sel.Projection, []string{"name", "age"})
	cmp, ok := sel.Predicate.(predicate.Comparison)
	assert.Equal(t, ok, true)
	assert.Equal(t, cmp.Column, "age")
	assert.Equal(t, cmp.Op, predicate.OpGe)
	assert.Equal(t, cmp.Value.Int(), int32(3))
}

func TestParseSelectQualifiedColumnDropsQualifier(t *testing.T) {
	cmd := parseOne(t, `SELECT users.name FROM users`)
	sel := cmd.(command.Select)
	assert.DeepEqual(t, sel.Projection, []string{"name"})
}

func TestParseSelectRejectsJoin(t *testing.T) {
	p, err := New(`SELECT * FROM users JOIN orders ON users.id = orders.user_id`)
	assert.NilError(t, err)
	_, err = p.ParseStatement()
	assert.ErrorContains(t, err, "joins are not supported")
}

func TestParseUpdate(t *testing.T) {
	cmd := parseOne(t, `UPDATE users SET age = 99 WHERE name == "ann"`)
	upd, ok := cmd.(command.Update)
	assert.Equal(t, ok, true)
	assert.Equal(t, upd.Table, "users")
	assert.Equal(t, upd.Assignments["age"].Int(), int32(99))
	cmp := upd.Predicate.(predicate.Comparison)
	assert.Equal(t, cmp.Column, "name")
}

func TestParseDeleteWithoutWhere(t *testing.T) {
	cmd := parseOne(t, `DELETE users`)
	del, ok := cmd.(command.Delete)
	assert.Equal(t, ok, true)
	assert.Equal(t, del.Table, "users")
	assert.Equal(t, del.Predicate, nil)
}

func TestParsePredicateAndOrNot(t *testing.T) {
	cmd := parseOne(t, `DELETE users WHERE !(age < 10) && name != "bob"`)
	del := cmd.(command.Delete)
	logical, ok := del.Predicate.(predicate.Logical)
	assert.Equal(t, ok, true)
	assert.Equal(t, logical.Kind, predicate.LogicalAnd)
	_, ok = logical.Left.(predicate.Not)
	assert.Equal(t, ok, true)
}

func TestParseHexLiteralInWhere(t *testing.T) {
	cmd := parseOne(t, `DELETE users WHERE payload == 0xA1B2`)
	del := cmd.(command.Delete)
	cmp := del.Predicate.(predicate.Comparison)
	assert.DeepEqual(t, cmp.Value.Bytes(), []byte{0xA1, 0xB2})
}

func TestParseUnknownStatementHeadFails(t *testing.T) {
	p, err := New(`FROB users`)
	assert.NilError(t, err)
	_, err = p.ParseStatement()
	assert.ErrorContains(t, err, "unknown statement head")
}

func TestParseMissingParenFails(t *testing.T) {
	p, err := New(`CREATE TABLE users age: INT32)`)
	assert.NilError(t, err)
	_, err = p.ParseStatement()
	assert.ErrorContains(t, err, "expected '('")
}

func TestConstantFoldingArithmeticInWhere(t *testing.T) {
	cmd := parseOne(t, `SELECT * FROM users WHERE age == 2 * 3 - 1`)
	sel := cmd.(command.Select)
	cmp := sel.Predicate.(predicate.Comparison)
	assert.Equal(t, cmp.Value.Kind(), value.KindInteger)
	assert.Equal(t, cmp.Value.Int(), int32(5))
}
