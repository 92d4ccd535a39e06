package persist

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tdbql/tdbql/internal/table"
)

// DumpAll writes every table in tables to its own "<name>.tdbql" file
// under dir, creating dir if necessary. It satisfies Engine's flusher
// interface (§4.10). Each file is opened, written, and closed before the
// next is touched — scoped acquisition, one handle at a time.
func DumpAll(dir string, tables map[string]*table.Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(ErrIO, "creating %q: %v", dir, err)
	}
	for name, t := range tables {
		if err := dumpOne(dir, name, t); err != nil {
			return err
		}
	}
	return nil
}

// Flusher adapts the package-level DumpAll function to catalog's flusher
// interface. catalog does not import persist; cmd/tdb wires a zero-value
// Flusher{} into catalog.NewEngine instead.
type Flusher struct{}

func (Flusher) DumpAll(dir string, tables map[string]*table.Table) error {
	return DumpAll(dir, tables)
}

func dumpOne(dir, name string, t *table.Table) error {
	path := filepath.Join(dir, name+".tdbql")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrIO, "creating %q: %v", path, err)
	}
	defer f.Close()
	return Dump(f, name, t)
}

// RestoreAll reads every "*.tdbql" file under dir and reconstructs its
// table. A missing dir is not an error: it means "nothing to restore yet"
// (first run against a fresh catalog directory).
func RestoreAll(dir string) (map[string]*table.Table, error) {
	out := make(map[string]*table.Table)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, errors.Wrapf(ErrIO, "reading %q: %v", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tdbql" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := restoreOne(path, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func restoreOne(path string, out map[string]*table.Table) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrIO, "opening %q: %v", path, err)
	}
	defer f.Close()
	name, t, err := Restore(f)
	if err != nil {
		return errors.Wrapf(err, "restoring %q", path)
	}
	out[name] = t
	return nil
}
