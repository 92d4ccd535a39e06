package persist

import (
	"bytes"
	"testing"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/column"
	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/value"
)

func sampleTable(t *testing.T) *table.Table {
	login, err := column.New(value.KindString, "login", 32, nil, column.Flags{Unique: true})
	assert.NilError(t, err)
	hash, err := column.New(value.KindBytes, "password_hash", 8, nil, column.Flags{})
	assert.NilError(t, err)
	def := value.Bool(false)
	isAdmin, err := column.New(value.KindBool, "is_admin", 0, &def, column.Flags{})
	assert.NilError(t, err)

	tbl, err := table.New("users", []column.Column{login, hash, isAdmin})
	assert.NilError(t, err)

	_, err = tbl.Insert(map[string]value.Value{
		"login":         value.Str("a"),
		"password_hash": value.Bytes([]byte{0xde, 0xad}),
		"is_admin":      value.Bool(true),
	})
	assert.NilError(t, err)
	_, err = tbl.Insert(map[string]value.Value{
		"login":         value.Str("b"),
		"password_hash": value.Bytes([]byte{0xbe, 0xef}),
	})
	assert.NilError(t, err)
	return tbl
}

func TestDumpRestoreRoundTrip(t *testing.T) {
	tbl := sampleTable(t)

	var buf bytes.Buffer
	assert.NilError(t, Dump(&buf, "users", tbl))

	name, restored, err := Restore(&buf)
	assert.NilError(t, err)
	assert.Equal(t, name, "users")
	assert.Equal(t, restored.Len(), 2)

	before, err := Checksum(tbl)
	assert.NilError(t, err)
	after, err := Checksum(restored)
	assert.NilError(t, err)
	assert.DeepEqual(t, before, after)
}

func TestRestoreRejectsHeaderColumnCountMismatch(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	assert.NilError(t, Dump(&buf, "users", tbl))

	// Drop one field from the header line to force a count mismatch.
	corrupted := bytes.Replace(buf.Bytes(), []byte("login,password_hash,is_admin\n"), []byte("login,password_hash\n"), 1)

	_, _, err := Restore(bytes.NewReader(corrupted))
	assert.ErrorContains(t, err, "header has")
}

func TestCSVEscapeRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	assert.NilError(t, writeCSVLine(&buf, []string{`has,comma`, `has"quote`, "plain"}))
	fields, err := readCSVLine(buf.String()[:len(buf.String())-1])
	assert.NilError(t, err)
	assert.DeepEqual(t, fields, []string{`has,comma`, `has"quote`, "plain"})
}

func TestBoolDumpIsTrueFalseRestoreAcceptsBoth(t *testing.T) {
	v, err := parseStoredValue(value.KindBool, "true")
	assert.NilError(t, err)
	assert.Equal(t, v.Bool(), true)

	v, err = parseStoredValue(value.KindBool, "1")
	assert.NilError(t, err)
	assert.Equal(t, v.Bool(), true)

	v, err = parseStoredValue(value.KindBool, "0")
	assert.NilError(t, err)
	assert.Equal(t, v.Bool(), false)
}
