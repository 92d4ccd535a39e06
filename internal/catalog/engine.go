// Package catalog implements the process-wide table directory: the
// concrete Engine named in SPEC_FULL.md §4.10, grounded on the teacher's
// TobsDB struct (internal/builder/tdb.go) but reshaped from a
// package-level global into an instantiable type so tests can run
// multiple engines side by side, as the Design Notes call for.
package catalog

import (
	"sync"
	"time"

	"github.com/tdbql/tdbql/internal/table"
	"github.com/tdbql/tdbql/pkg"
)

// WriteSettings mirrors the teacher's TDBWriteSettings: a destination
// directory, a flush interval, and an in-memory-only escape hatch.
type WriteSettings struct {
	Dir           string
	InMemory      bool
	FlushInterval time.Duration
}

// Engine is the narrow Catalog (command.Catalog) command package depends
// on, made concrete: a name→table map behind a single-writer/many-reader
// lock, a flush ticker, and the last-mutation timestamp.
type Engine struct {
	locker sync.RWMutex

	tables     pkg.Map[string, *table.Table]
	Write      WriteSettings
	LastChange time.Time

	ticker *time.Ticker
	done   chan struct{}
}

// flusher is satisfied by the persistence package; Engine depends on it
// only through this interface so catalog never imports persist (both
// packages import the table package; neither imports the other).
type flusher interface {
	DumpAll(dir string, tables map[string]*table.Table) error
}

// NewEngine builds an Engine and, unless Write.InMemory is set or
// Write.FlushInterval is not positive, starts a background ticker that
// calls Flush every Write.FlushInterval. Close
// stops the ticker; it does not itself flush (callers that want a final
// flush on shutdown call Flush explicitly, per §4.10).
func NewEngine(write WriteSettings, flush flusher) *Engine {
	e := &Engine{
		tables:     pkg.Map[string, *table.Table]{},
		Write:      write,
		LastChange: time.Now(),
		done:       make(chan struct{}),
	}
	if !write.InMemory && write.FlushInterval > 0 {
		e.ticker = time.NewTicker(write.FlushInterval)
		go e.flushLoop(flush)
	}
	return e
}

func (e *Engine) flushLoop(flush flusher) {
	for {
		select {
		case <-e.ticker.C:
			if err := e.Flush(flush); err != nil {
				pkg.ErrorLog("background flush failed;", err)
			}
		case <-e.done:
			return
		}
	}
}

// GetLocker satisfies pkg.HasLocker, so LockWrap/RLockWrap can drive the
// engine the same way they drive a Table.
func (e *Engine) GetLocker() *sync.RWMutex { return &e.locker }

// Lookup satisfies command.Catalog.
func (e *Engine) Lookup(name string) (*table.Table, bool) {
	var t *table.Table
	var ok bool
	pkg.RLockWrap(e, func() {
		t, ok = e.tables[name]
	})
	return t, ok
}

// Install satisfies command.Catalog: installing a table under a name that
// already exists replaces it (§4.9, CreateTable).
func (e *Engine) Install(name string, t *table.Table) {
	pkg.LockWrap(e, func() {
		e.tables[name] = t
		e.LastChange = time.Now()
		pkg.DebugLog("installed table", name)
	})
}

// Tables satisfies command.Catalog.
func (e *Engine) Tables() []string {
	var names []string
	pkg.RLockWrap(e, func() {
		names = e.tables.Keys()
	})
	return names
}

// Flush dumps every table via flush while holding the engine's read lock
// (§4.10, §5): a flush races with a concurrent writer only up to the
// granularity of Go's RWMutex, never observing a half-written table. It is
// a no-op in in-memory mode.
func (e *Engine) Flush(flush flusher) error {
	if e.Write.InMemory {
		return nil
	}
	var err error
	pkg.RLockWrap(e, func() {
		snapshot := make(map[string]*table.Table, len(e.tables))
		for name, t := range e.tables {
			snapshot[name] = t
		}
		err = flush.DumpAll(e.Write.Dir, snapshot)
	})
	if err != nil {
		pkg.ErrorLog("flush failed;", err)
	}
	return err
}

// Close stops the background flush ticker. It is safe to call on an
// in-memory engine (a no-op there).
func (e *Engine) Close() {
	if e.ticker != nil {
		e.ticker.Stop()
		close(e.done)
	}
}
