package extract

import (
	"github.com/shopspring/decimal"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// SecurityFlowExtractor produces SecurityFlow records for bare share
// movements (transfers in kind, initial loads, exchanges).
type SecurityFlowExtractor struct {
	concepts []config.ConceptRule // keywords pre-folded, in match order
}

// NewSecurityFlow builds a SecurityFlowExtractor from configuration.
func NewSecurityFlow(cfg *config.Config) *SecurityFlowExtractor {
	concepts := make([]config.ConceptRule, len(cfg.Vocabulary.Concepts))
	for i, c := range cfg.Vocabulary.Concepts {
		concepts[i] = config.ConceptRule{Keyword: normalize.Fold(c.Keyword), Tag: c.Tag}
	}
	return &SecurityFlowExtractor{concepts: concepts}
}

func (e *SecurityFlowExtractor) Category() model.OperationCategory {
	return model.CategorySecurityFlow
}

// Extract builds a SecurityFlow record. The quantity sign carries the
// direction; the output amount is always its absolute value. A pure
// security transfer has no cash side, so gross_payment_amount is 0 rather
// than null.
func (e *SecurityFlowExtractor) Extract(row model.NormalizedRow, ref *refdata.Table) (model.Operation, []model.Warning, error) {
	if row.Quantity == nil {
		return nil, nil, &model.SchemaViolationError{
			Category: model.CategorySecurityFlow,
			Field:    "asset_amount",
			Reason:   "quantity is required for a security flow",
		}
	}

	flowType := model.SecurityInflow
	if row.Quantity.IsNegative() {
		flowType = model.SecurityOutflow
	}

	concept := row.Description
	for _, c := range e.concepts {
		if c.Keyword != "" && normalize.ContainsAny(row.Descriptor, []string{c.Keyword}) {
			concept = c.Tag
			break
		}
	}

	gross := decimal.Zero
	if row.GrossAmount != nil {
		gross = row.GrossAmount.Abs()
	} else if row.Amount != nil {
		gross = row.Amount.Abs()
	}

	name := row.Security
	if name == "" {
		name = row.ISIN
	}
	assetName, warns := resolveName(name, row.Line, ref)

	flow := &model.SecurityFlow{
		FlowType:           flowType,
		Date:               model.NewDate(row.AgreementDate),
		Concept:            concept,
		AssetAmount:        row.Quantity.Abs(),
		AssetName:          assetName,
		GrossPaymentAmount: gross,
		Notes:              row.Description,
	}
	return flow, warns, nil
}
