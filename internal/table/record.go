package table

import (
	"github.com/google/uuid"

	"github.com/tdbql/tdbql/internal/value"
)

// Handle is the generational reference to a record described in SPEC_FULL.md
// §3A: minted once at insert time, stored both in the arena and in every
// ordered index, so a Delete never has to chase pointers or renumber
// anything else. Grounded on the teacher's internal/paging use of
// uuid.UUID as a stable page identifier, lifted to the row level.
type Handle = uuid.UUID

// NilHandle is the zero handle, used as a sentinel in places that need "no
// record".
var NilHandle = uuid.Nil

func newHandle() Handle { return uuid.New() }

// Record is an ordered vector of cells, one per column in declaration
// order (the data model's Record/Cell definition). seq records insertion
// order so the arena's ordered map can recover the stable append log
// (I-series invariant: "records ... in their insertion order").
type Record struct {
	Handle Handle
	Cells  []value.Value
	seq    int64
}

// Get returns the cell at position, or the zero Value if out of range.
func (r *Record) Get(position int) value.Value {
	if position < 0 || position >= len(r.Cells) {
		return value.Value{}
	}
	return r.Cells[position]
}

// Clone copies a record's cell vector so callers can mutate it (e.g. during
// Update) without racing readers that still hold the original slice.
func (r *Record) Clone() *Record {
	cells := make([]value.Value, len(r.Cells))
	copy(cells, r.Cells)
	return &Record{Handle: r.Handle, Cells: cells, seq: r.seq}
}
