package extract

import (
	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// MonetaryFlowExtractor produces MonetaryFlow records for cash movements.
type MonetaryFlowExtractor struct {
	deposit         []string
	withdrawal      []string
	fee             []string
	interest        []string
	transfer        []string
	defaultCurrency string
}

// NewMonetaryFlow builds a MonetaryFlowExtractor from configuration.
func NewMonetaryFlow(cfg *config.Config) *MonetaryFlowExtractor {
	v := cfg.Vocabulary
	return &MonetaryFlowExtractor{
		deposit:         normalize.FoldAll(v.Deposit),
		withdrawal:      normalize.FoldAll(v.Withdrawal),
		fee:             normalize.FoldAll(v.Fee),
		interest:        normalize.FoldAll(v.Interest),
		transfer:        normalize.FoldAll(v.Transfer),
		defaultCurrency: cfg.DefaultCurrency,
	}
}

func (e *MonetaryFlowExtractor) Category() model.OperationCategory {
	return model.CategoryMonetaryFlow
}

// Extract builds a MonetaryFlow record. The output amount is always the
// absolute value; direction is encoded only in the flow type.
func (e *MonetaryFlowExtractor) Extract(row model.NormalizedRow, ref *refdata.Table) (model.Operation, []model.Warning, error) {
	if row.Amount == nil {
		return nil, nil, &model.SchemaViolationError{
			Category: model.CategoryMonetaryFlow,
			Field:    "asset_amount",
			Reason:   "cash amount is required for a monetary flow",
		}
	}

	currency := row.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}

	flowType := e.flowType(row)
	flow := &model.MonetaryFlow{
		FlowType:    flowType,
		Date:        model.NewDate(row.AgreementDate),
		AssetAmount: row.Amount.Abs(),
		AssetName:   currency,
		Notes:       e.notes(flowType, currency, row.Description),
	}
	return flow, nil, nil
}

func (e *MonetaryFlowExtractor) flowType(row model.NormalizedRow) model.FlowType {
	switch {
	case normalize.ContainsAny(row.Descriptor, e.deposit):
		return model.FlowDeposit
	case normalize.ContainsAny(row.Descriptor, e.withdrawal):
		return model.FlowWithdrawal
	case normalize.ContainsAny(row.Descriptor, e.fee):
		return model.FlowFee
	case normalize.ContainsAny(row.Descriptor, e.interest):
		return model.FlowInterest
	case normalize.ContainsAny(row.Descriptor, e.transfer):
		if row.Amount.IsNegative() {
			return model.FlowTransferOut
		}
		return model.FlowTransferIn
	default:
		return model.FlowOther
	}
}

func (e *MonetaryFlowExtractor) notes(flowType model.FlowType, currency, description string) string {
	switch flowType {
	case model.FlowDeposit:
		return "Fondeo " + currency
	case model.FlowWithdrawal:
		return "Extracción " + currency
	default:
		return description
	}
}
