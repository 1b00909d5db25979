package refdata

import (
	"fmt"
	"os"
	"strings"

	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
)

// Kind distinguishes the instrument classes the classifier cares about.
type Kind string

const (
	KindFund     Kind = "fund"
	KindSecurity Kind = "security"
)

// Entry maps one broker-local instrument name to its canonical identifier.
type Entry struct {
	Instrument string
	Ticker     string
	Kind       Kind
}

// Table provides immutable in-memory lookup over the reference entries.
// It is loaded once per batch and safe for concurrent readers.
type Table struct {
	entries []Entry
	byName  map[string]Entry // keyed by folded instrument name
}

// NewTable creates a Table from a slice of entries.
func NewTable(entries []Entry) *Table {
	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[normalize.Fold(e.Instrument)] = e
	}
	return &Table{entries: entries, byName: byName}
}

// Load reads a reference CSV from disk and returns a Table. An unreadable
// or unparsable reference file is fatal: every row depends on it.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading reference table: %w", err)
	}
	return NewTable(entries), nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns all entries.
func (t *Table) All() []Entry {
	return t.entries
}

// Resolve finds an entry whose instrument name matches name, ignoring case
// and accents.
func (t *Table) Resolve(name string) (Entry, bool) {
	e, ok := t.byName[normalize.Fold(name)]
	return e, ok
}

// ResolveFund finds entries whose instrument name contains both the fund
// name and the share class (e.g. "RENTA PESOS" + "CLASE A"). It returns the
// first match in table order and the total number of matches, so callers
// can warn on ambiguity.
func (t *Table) ResolveFund(fundName, shareClass string) (Entry, int) {
	fund := normalize.Fold(fundName)
	class := normalize.Fold(shareClass)
	if class != "" && !strings.HasPrefix(class, "CLASE") {
		class = "CLASE " + class
	}

	var first Entry
	count := 0
	for _, e := range t.entries {
		folded := normalize.Fold(e.Instrument)
		if fund != "" && !strings.Contains(folded, fund) {
			continue
		}
		if class != "" && !strings.Contains(folded, class) {
			continue
		}
		if count == 0 {
			first = e
		}
		count++
	}
	return first, count
}

// IsFund reports whether name resolves to a mutual fund instrument.
// Unresolved names fall back to a vocabulary check on the name itself,
// since fund rows often carry the fund title rather than a listed species.
func (t *Table) IsFund(name string) bool {
	if e, ok := t.Resolve(name); ok {
		return e.Kind == KindFund
	}
	folded := normalize.Fold(name)
	return strings.Contains(folded, "FCI") || strings.Contains(folded, "FONDO")
}
