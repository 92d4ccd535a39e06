package column

import (
	"testing"

	"gotest.tools/assert"

	"github.com/tdbql/tdbql/internal/value"
)

func TestNewRejectsZeroMaxLenForStringAndBytes(t *testing.T) {
	_, err := New(value.KindString, "name", 0, nil, Flags{})
	assert.ErrorContains(t, err, "max_len")

	_, err = New(value.KindBytes, "blob", 0, nil, Flags{})
	assert.ErrorContains(t, err, "max_len")
}

func TestNewRejectsDefaultKindMismatch(t *testing.T) {
	def := value.Str("x")
	_, err := New(value.KindInteger, "age", 0, &def, Flags{})
	assert.ErrorContains(t, err, "default kind")
}

func TestKeyImpliesUnique(t *testing.T) {
	c, err := New(value.KindInteger, "id", 0, nil, Flags{Key: true})
	assert.NilError(t, err)
	assert.Equal(t, c.Flags.Unique, true)
}

func TestAutoIncrementOverridesDefault(t *testing.T) {
	def := value.Int(5)
	c, err := New(value.KindInteger, "counter", 0, &def, Flags{AutoIncrement: true})
	assert.NilError(t, err)
	assert.Assert(t, c.Default == nil)
}

func TestAutoIncrementRequiresInteger(t *testing.T) {
	_, err := New(value.KindString, "name", 16, nil, Flags{AutoIncrement: true})
	assert.ErrorContains(t, err, "autoincrement")
}

func TestNewIDNeverProducedByGenericFactory(t *testing.T) {
	_, err := New(value.KindID, "id", 0, nil, Flags{})
	assert.ErrorContains(t, err, "reserved factory")
}

func TestReservedIDColumn(t *testing.T) {
	c := NewID()
	assert.Equal(t, c.Name, "id")
	assert.Equal(t, c.Kind, value.KindID)
	assert.Equal(t, c.Flags.Key, true)
	assert.Equal(t, c.Flags.Unique, true)
	assert.Equal(t, c.Flags.AutoIncrement, true)
}
