package view

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/value"
)

func buildTable(t *testing.T) *table.Table {
	name, err := column.New(value.KindString, "name", 64, nil, column.Flags{Unique: true})
	assert.NilError(t, err)
	age, err := column.New(value.KindInteger, "age", 0, nil, column.Flags{})
	assert.NilError(t, err)
	tbl, err := table.New("users", []column.Column{name, age})
	assert.NilError(t, err)
	_, err = tbl.Insert(map[string]value.Value{"name": value.Str("ann"), "age": value.Int(30)})
	assert.NilError(t, err)
	_, err = tbl.Insert(map[string]value.Value{"name": value.Str("bob"), "age": value.Int(40)})
	assert.NilError(t, err)
	return tbl
}

func TestViewProjectionAndPrint(t *testing.T) {
	tbl := buildTable(t)
	cols, recs, err := tbl.Select([]string{"name"}, nil)
	assert.NilError(t, err)

	v, err := New(tbl, "users", cols, recs)
	assert.NilError(t, err)
	assert.Equal(t, v.Len(), 2)
	assert.DeepEqual(t, v.Row(0), []string{"ann"})

	var buf bytes.Buffer
	assert.NilError(t, v.Print(&buf))
	assert.Equal(t, buf.String(), "name\nann\nbob\n")
}

func TestViewAllColumnsInDeclarationOrder(t *testing.T) {
	tbl := buildTable(t)
	cols, recs, err := tbl.Select(nil, nil)
	assert.NilError(t, err)

	v, err := New(tbl, "users", cols, recs)
	assert.NilError(t, err)
	assert.DeepEqual(t, v.Row(0), []string{"ann", "30"})
}

func TestViewRejectsUnknownColumn(t *testing.T) {
	tbl := buildTable(t)
	_, err := New(tbl, "users", []string{"nope"}, nil)
	assert.ErrorContains(t, err, "unknown column")
}

func TestViewColumnsMatchProjectionOrderNotDeclarationOrder(t *testing.T) {
	tbl := buildTable(t)
	cols, recs, err := tbl.Select([]string{"age", "name"}, nil)
	assert.NilError(t, err)

	v, err := New(tbl, "users", cols, recs)
	assert.NilError(t, err)

	ageCol, _ := tbl.Column("age")
	nameCol, _ := tbl.Column("name")
	want := []column.Column{*ageCol, *nameCol}
	if diff := cmp.Diff(want, v.Columns()); diff != "" {
		t.Fatalf("Columns() mismatch (-want +got):\n%s", diff)
	}
}
