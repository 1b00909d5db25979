package extract

import (
	"fmt"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// MutualFundExtractor produces MutualFund records for subscriptions and
// redemptions on the fund market.
type MutualFundExtractor struct {
	redemption      []string
	exchange        string
	defaultCurrency string
}

// NewMutualFund builds a MutualFundExtractor from configuration.
func NewMutualFund(cfg *config.Config) *MutualFundExtractor {
	return &MutualFundExtractor{
		redemption:      normalize.FoldAll(cfg.Vocabulary.Redemption),
		exchange:        cfg.Exchanges.Fund,
		defaultCurrency: cfg.DefaultCurrency,
	}
}

func (e *MutualFundExtractor) Category() model.OperationCategory {
	return model.CategoryMutualFund
}

// Extract builds a MutualFund record. Fund statements usually omit the
// settlement date, so it defaults to the agreement date (and the term to
// "T"); trades keep the missing date null instead.
func (e *MutualFundExtractor) Extract(row model.NormalizedRow, ref *refdata.Table) (model.Operation, []model.Warning, error) {
	opType := model.FundSubscription
	if normalize.ContainsAny(row.Descriptor, e.redemption) {
		opType = model.FundRedemption
	}

	settlement := row.SettlementDate
	if settlement == nil {
		settlement = row.AgreementDate
	}

	securityName, warns := e.resolveFundName(row, ref)

	currency := row.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}

	fund := &model.MutualFund{
		FundOperationType: opType,
		AgreementDate:     model.NewDate(row.AgreementDate),
		SettlementTerm:    Term(row.AgreementDate, settlement),
		SettlementDate:    model.NewDate(settlement),
		Exchange:          e.exchange,
		SecurityAmount:    absPtr(row.Quantity),
		SecurityName:      securityName,
		NetPaymentAmount:  absPtr(row.Amount),
		Currency:          currency,
	}
	return fund, warns, nil
}

// resolveFundName maps the fund title (plus share class, when present) to
// its canonical ticker. Ambiguous matches take the first entry with a
// warning; misses fall back to the raw fund name with a warning.
func (e *MutualFundExtractor) resolveFundName(row model.NormalizedRow, ref *refdata.Table) (string, []model.Warning) {
	if row.Security == "" {
		return "", nil
	}

	if row.ShareClass != "" {
		entry, count := ref.ResolveFund(row.Security, row.ShareClass)
		switch {
		case count == 1:
			return entry.Ticker, nil
		case count > 1:
			return entry.Ticker, []model.Warning{{
				Line:    row.Line,
				Field:   "security_name",
				Kind:    model.WarnLookupMiss,
				Message: fmt.Sprintf("%d reference entries match %q class %q, using %q", count, row.Security, row.ShareClass, entry.Ticker),
			}}
		}
	}

	return resolveName(row.Security, row.Line, ref)
}
