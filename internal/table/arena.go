package table

import (
	sorted "github.com/tobshub/go-sortedmap"
)

// arena is the table's ordered record log (§3: "records (stable-ordered
// append log)"). It is keyed by the record's generational Handle so
// deletion never shifts anyone else's reference, and ordered by insertion
// sequence so iteration reproduces the record's declaration/insertion
// order, exactly as go-sortedmap is used for TDBTableRows in the teacher's
// internal/builder/rows.go.
type arena struct {
	m       *sorted.SortedMap[Handle, *Record]
	nextSeq int64
}

func newArena() *arena {
	return &arena{
		m: sorted.New[Handle, *Record](0, func(a, b *Record) bool {
			return a.seq < b.seq
		}),
	}
}

// append inserts a freshly built record and assigns it the next insertion
// sequence number, returning its handle.
func (a *arena) append(r *Record) Handle {
	r.Handle = newHandle()
	r.seq = a.nextSeq
	a.nextSeq++
	a.m.Insert(r.Handle, r)
	return r.Handle
}

func (a *arena) get(h Handle) (*Record, bool) {
	return a.m.Get(h)
}

// replace overwrites the record stored under h in place, preserving its
// insertion sequence (used by Update, which mutates cells without changing
// position in the log).
func (a *arena) replace(h Handle, r *Record) {
	if existing, ok := a.m.Get(h); ok {
		r.seq = existing.seq
	}
	r.Handle = h
	if !a.m.Insert(h, r) {
		a.m.Replace(h, r)
	}
}

func (a *arena) delete(h Handle) bool {
	return a.m.Delete(h)
}

func (a *arena) len() int {
	return a.m.Len()
}

// each calls fn for every live record in insertion order. It is the sole
// iteration primitive used by select, update, and delete so "the
// iteration contract must survive removal" (§4.7) has exactly one
// implementation to get right. The channel is always drained fully, even
// if fn has nothing left to do, so the underlying iterator never leaks.
func (a *arena) each(fn func(*Record)) error {
	ch, err := a.m.IterCh()
	if err != nil {
		return err
	}
	for rec := range ch.Records() {
		fn(rec.Val)
	}
	return nil
}
