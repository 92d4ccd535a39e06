package table

import (
	sorted "github.com/tobshub/go-sortedmap"

	"github.com/tdbql/tdbql/internal/value"
)

// indexEntry is the (value, handle) pair an ordered index stores per live
// record (glossary: "Ordered index — per-column multimap from value to
// record reference, preserving key order").
type indexEntry struct {
	val    value.Value
	handle Handle
}

// orderedIndex is one column's ordered multimap, backed by go-sortedmap the
// same way the teacher's internal/builder/rows.go backs the row log: the
// map key (the record Handle) is only for point removal, all ordering comes
// from the comparison function over the stored value.
type orderedIndex struct {
	m *sorted.SortedMap[Handle, indexEntry]
}

func newOrderedIndex() *orderedIndex {
	return &orderedIndex{
		m: sorted.New[Handle, indexEntry](0, func(a, b indexEntry) bool {
			if c, ok := value.Compare(a.val, b.val); ok && c != 0 {
				return c < 0
			}
			return value.FormatIndexKey(a.val)+a.handle.String() < value.FormatIndexKey(b.val)+b.handle.String()
		}),
	}
}

func (idx *orderedIndex) insert(v value.Value, h Handle) {
	e := indexEntry{val: v, handle: h}
	if !idx.m.Insert(h, e) {
		idx.m.Replace(h, e)
	}
}

func (idx *orderedIndex) remove(h Handle) {
	idx.m.Delete(h)
}

// handlesFor returns every handle currently indexed under a value equal to
// v (I5: exactly one entry per live record, so duplicates only occur for
// non-unique indexed columns).
func (idx *orderedIndex) handlesFor(v value.Value) []Handle {
	var out []Handle
	ch, err := idx.m.IterCh()
	if err != nil {
		return out
	}
	for rec := range ch.Records() {
		if value.Equal(rec.Val.val, v) {
			out = append(out, rec.Val.handle)
		}
	}
	return out
}

func (idx *orderedIndex) len() int {
	return idx.m.Len()
}
