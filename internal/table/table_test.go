package table

import (
	"testing"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/predicate"
	"github.com/tdbql/tdbql/internal/value"
)

func usersTable(t *testing.T) *Table {
	name, err := column.New(value.KindString, "name", 64, nil, column.Flags{Unique: true})
	assert.NilError(t, err)
	age, err := column.New(value.KindInteger, "age", 0, nil, column.Flags{})
	assert.NilError(t, err)
	tbl, err := New("users", []column.Column{name, age})
	assert.NilError(t, err)
	return tbl
}

// plainTable has no unique column, so New synthesizes the Id column,
// giving these tests an auto-increment column to exercise.
func plainTable(t *testing.T) *Table {
	age, err := column.New(value.KindInteger, "age", 0, nil, column.Flags{})
	assert.NilError(t, err)
	tbl, err := New("plain", []column.Column{age})
	assert.NilError(t, err)
	return tbl
}

func TestNewSynthesizesIdWhenNoUniqueColumn(t *testing.T) {
	age, err := column.New(value.KindInteger, "age", 0, nil, column.Flags{})
	assert.NilError(t, err)
	tbl, err := New("plain", []column.Column{age})
	assert.NilError(t, err)
	_, ok := tbl.Column("id")
	assert.Equal(t, ok, true)
	assert.Equal(t, tbl.KeyColumn().Name, "id")
}

func TestNewRejectsDuplicateColumnNames(t *testing.T) {
	a, _ := column.New(value.KindInteger, "x", 0, nil, column.Flags{})
	b, _ := column.New(value.KindInteger, "x", 0, nil, column.Flags{})
	_, err := New("dup", []column.Column{a, b})
	assert.ErrorContains(t, err, "duplicate column")
}

func TestInsertAndSelect(t *testing.T) {
	tbl := usersTable(t)
	_, err := tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	assert.NilError(t, err)
	_, err = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})
	assert.NilError(t, err)

	cols, recs, err := tbl.Select(nil, nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, cols, []string{"name", "age"})
	assert.Equal(t, len(recs), 2)
}

func TestInsertRejectsUniqueViolation(t *testing.T) {
	tbl := usersTable(t)
	_, err := tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	assert.NilError(t, err)
	_, err = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(99)})
	assert.ErrorContains(t, err, "unique violation")
	assert.Equal(t, tbl.Len(), 1)
}

func TestInsertRejectsUnknownColumn(t *testing.T) {
	tbl := usersTable(t)
	_, err := tbl.Insert(map[string]value.Value{"nope": value.Int(1)})
	assert.ErrorContains(t, err, "unknown column")
}

func TestInsertRejectsDirectAutoIncrementWrite(t *testing.T) {
	tbl := plainTable(t)
	_, err := tbl.Insert(map[string]value.Value{"id": value.ID(5)})
	assert.ErrorContains(t, err, "auto-increment")
}

func TestAutoIncrementCounterDoesNotAdvanceOnRejectedInsert(t *testing.T) {
	tbl := plainTable(t)
	_, err := tbl.Insert(map[string]value.Value{"age": value.Int(1)})
	assert.NilError(t, err)

	_, err = tbl.Insert(map[string]value.Value{"nope": value.Int(7)})
	assert.ErrorContains(t, err, "unknown column")

	h, err := tbl.Insert(map[string]value.Value{"age": value.Int(2)})
	assert.NilError(t, err)
	rec, ok := tbl.arena.get(h)
	assert.Equal(t, ok, true)
	idPos, _ := tbl.Position("id")
	assert.Equal(t, rec.Get(idPos).Int(), int32(1))
}

func TestSelectWithPredicate(t *testing.T) {
	tbl := usersTable(t)
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})

	pred := predicate.Comparison{Column: "age", Op: predicate.OpGe, Value: value.Int(35)}
	_, recs, err := tbl.Select([]string{"name"}, pred)
	assert.NilError(t, err)
	assert.Equal(t, len(recs), 1)
	namePos, _ := tbl.Position("name")
	assert.Equal(t, recs[0].Get(namePos).Str(), "bob")
}

func TestSelectRejectsUnknownProjectionColumn(t *testing.T) {
	tbl := usersTable(t)
	_, _, err := tbl.Select([]string{"nope"}, nil)
	assert.ErrorContains(t, err, "unknown column")
}

func TestUpdateAppliesAssignmentsToMatches(t *testing.T) {
	tbl := usersTable(t)
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})

	pred := predicate.Comparison{Column: "name", Op: predicate.OpEq, Value: value.Str("ann")}
	n, err := tbl.Update(pred, map[string]value.Value{"age": value.Int(99)})
	assert.NilError(t, err)
	assert.Equal(t, n, 1)

	_, recs, err := tbl.Select(nil, predicate.Comparison{Column: "name", Op: predicate.OpEq, Value: value.Str("ann")})
	assert.NilError(t, err)
	agePos, _ := tbl.Position("age")
	assert.Equal(t, recs[0].Get(agePos).Int(), int32(99))
}

func TestUpdateRejectsUniqueViolationAndLeavesTableUnchanged(t *testing.T) {
	tbl := usersTable(t)
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})

	pred := predicate.Comparison{Column: "name", Op: predicate.OpEq, Value: value.Str("bob")}
	_, err := tbl.Update(pred, map[string]value.Value{"name": value.Str("ann")})
	assert.ErrorContains(t, err, "unique violation")

	_, recs, _ := tbl.Select(nil, predicate.Comparison{Column: "name", Op: predicate.OpEq, Value: value.Str("bob")})
	assert.Equal(t, len(recs), 1)
}

func TestDeleteRemovesMatches(t *testing.T) {
	tbl := usersTable(t)
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})

	n, err := tbl.Delete(predicate.Comparison{Column: "name", Op: predicate.OpEq, Value: value.Str("ann")})
	assert.NilError(t, err)
	assert.Equal(t, n, 1)
	assert.Equal(t, tbl.Len(), 1)

	_, recs, _ := tbl.Select(nil, nil)
	namePos, _ := tbl.Position("name")
	assert.Equal(t, recs[0].Get(namePos).Str(), "bob")
}

func TestDeleteWithNoPredicateRemovesEverything(t *testing.T) {
	tbl := usersTable(t)
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	_, _ = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})

	n, err := tbl.Delete(nil)
	assert.NilError(t, err)
	assert.Equal(t, n, 2)
	assert.Equal(t, tbl.Len(), 0)
}
