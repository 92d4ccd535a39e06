package persist

import (
	"encoding/binary"
	"hash"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/internal/value"
)

// Checksum fingerprints t's schema and live rows with BLAKE2b-256 over a
// canonical byte encoding (§6A): columns in declaration order, then rows
// sorted by key-column value rather than arena iteration order, so the
// result is stable across a dump/restore round trip regardless of how the
// underlying ordered indexes happen to have been rebuilt.
func Checksum(t *table.Table) ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, err
	}

	cols := t.Columns()
	for _, c := range cols {
		writeFrame(h, columnLine(c))
	}

	_, records, err := t.Select(nil, nil)
	if err != nil {
		return [32]byte{}, err
	}

	keyPos := 0
	if kc := t.KeyColumn(); kc != nil {
		if p, ok := t.Position(kc.Name); ok {
			keyPos = p
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Get(keyPos), records[j].Get(keyPos)
		cmp, ok := value.Compare(a, b)
		return ok && cmp < 0
	})

	for _, rec := range records {
		fields := make([]string, len(cols))
		for i := range cols {
			fields[i] = rec.Get(i).String()
		}
		writeFrame(h, fields)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

// writeFrame hashes fields with each one's length prefixed, so "ab","c"
// and "a","bc" never collide the way naive concatenation would.
func writeFrame(h hash.Hash, fields []string) {
	var lenBuf [8]byte
	for _, f := range fields {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(f)))
		h.Write(lenBuf[:])
		h.Write([]byte(f))
	}
}
