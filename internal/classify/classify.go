// Package classify assigns exactly one operation category to a normalized
// row. The decision procedure is an explicit, priority-ordered rule table:
// the first matching rule wins, ties are never broken by a secondary
// heuristic, and classification is a pure function of the row's fields.
package classify

import (
	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// NoRuleMatched is the reason reported for the unclassified outcome.
const NoRuleMatched = "no rule matched"

// Outcome is the result of classifying one row.
type Outcome struct {
	Category model.OperationCategory
	Rule     string // name of the rule that matched, empty when unclassified
	Reason   string // set only for the unclassified outcome
}

// Rule pairs a named predicate with the category it assigns.
type Rule struct {
	Name     string
	Category model.OperationCategory
	Match    func(row model.NormalizedRow) bool
}

// Classifier evaluates the rule table against normalized rows. The
// reference table is read-only and shared across concurrent callers.
type Classifier struct {
	rules []Rule
}

// New builds a Classifier from the configured vocabulary and a reference
// table. Keyword sets are folded once here so per-row matching is cheap.
func New(vocab config.Vocabulary, ref *refdata.Table) *Classifier {
	income := normalize.FoldAll(vocab.Income)
	fund := normalize.FoldAll(append(append([]string{}, vocab.Subscription...), vocab.Redemption...))
	trade := normalize.FoldAll(append(append(append([]string{}, vocab.Buy...), vocab.Sell...), vocab.Trade...))
	cash := normalize.FoldAll(vocab.CashMovement())

	resolvesNonFund := func(row model.NormalizedRow) bool {
		if row.Security == "" {
			return false
		}
		e, ok := ref.Resolve(row.Security)
		return ok && e.Kind != refdata.KindFund
	}
	hasQuantityAndPrice := func(row model.NormalizedRow) bool {
		return row.Quantity != nil && row.Price != nil
	}

	// Rule order matters: keyword sets overlap, so precedence is encoded
	// here and nowhere else.
	rules := []Rule{
		{
			Name:     "income-on-security",
			Category: model.CategoryIncome,
			Match: func(row model.NormalizedRow) bool {
				return row.HasSecurity() && normalize.ContainsAny(row.Descriptor, income)
			},
		},
		{
			Name:     "mutual-fund",
			Category: model.CategoryMutualFund,
			Match: func(row model.NormalizedRow) bool {
				if normalize.ContainsAny(row.Descriptor, fund) {
					return true
				}
				return hasQuantityAndPrice(row) && row.Security != "" && ref.IsFund(row.Security)
			},
		},
		{
			Name:     "trade",
			Category: model.CategoryTrade,
			Match: func(row model.NormalizedRow) bool {
				if normalize.ContainsAny(row.Descriptor, trade) {
					return true
				}
				return hasQuantityAndPrice(row) && resolvesNonFund(row)
			},
		},
		{
			Name:     "security-flow",
			Category: model.CategorySecurityFlow,
			Match: func(row model.NormalizedRow) bool {
				return row.HasSecurity() && row.HasQuantity() && !row.HasAmount()
			},
		},
		{
			Name:     "monetary-flow",
			Category: model.CategoryMonetaryFlow,
			Match: func(row model.NormalizedRow) bool {
				return row.HasAmount() && !row.HasSecurity() && !row.HasQuantity() &&
					normalize.ContainsAny(row.Descriptor, cash)
			},
		},
	}

	return &Classifier{rules: rules}
}

// Classify returns the category of the first matching rule, or the explicit
// unclassified outcome when none matched.
func (c *Classifier) Classify(row model.NormalizedRow) Outcome {
	for _, rule := range c.rules {
		if rule.Match(row) {
			return Outcome{Category: rule.Category, Rule: rule.Name}
		}
	}
	return Outcome{Category: model.CategoryUnclassified, Reason: NoRuleMatched}
}

// RuleNames returns the rule table's names in priority order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}
