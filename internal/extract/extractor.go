// Package extract turns classified rows into fully populated output
// records, one extractor per operation category. Null is a legitimate
// terminal value for any field the input cannot determine; only a
// structurally unfillable shape is an error, and it fails that row alone.
package extract

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// Extractor produces the output record for one operation category.
type Extractor interface {
	Category() model.OperationCategory
	Extract(row model.NormalizedRow, ref *refdata.Table) (model.Operation, []model.Warning, error)
}

// Set holds the extractor for every extractable category.
type Set struct {
	byCategory map[model.OperationCategory]Extractor
}

// NewSet builds the four category extractors from configuration.
func NewSet(cfg *config.Config) *Set {
	extractors := []Extractor{
		NewTrade(cfg),
		NewMonetaryFlow(cfg),
		NewSecurityFlow(cfg),
		NewMutualFund(cfg),
	}
	byCategory := make(map[model.OperationCategory]Extractor, len(extractors))
	for _, e := range extractors {
		byCategory[e.Category()] = e
	}
	return &Set{byCategory: byCategory}
}

// For returns the extractor for a category.
func (s *Set) For(cat model.OperationCategory) (Extractor, bool) {
	e, ok := s.byCategory[cat]
	return e, ok
}

// resolveName maps a broker-local instrument name to its canonical ticker,
// falling back to the raw name with a lookup-miss warning.
func resolveName(name string, line int, ref *refdata.Table) (string, []model.Warning) {
	if name == "" {
		return "", nil
	}
	if e, ok := ref.Resolve(name); ok {
		return e.Ticker, nil
	}
	return name, []model.Warning{{
		Line:    line,
		Field:   "security_name",
		Kind:    model.WarnLookupMiss,
		Message: fmt.Sprintf("no reference entry for %q", name),
	}}
}

// absPtr returns a pointer to |d|, or nil for nil input.
func absPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	abs := d.Abs()
	return &abs
}
