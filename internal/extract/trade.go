package extract

import (
	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// TradeExtractor produces Trade records for purchases and sales on the
// configured exchange.
type TradeExtractor struct {
	buy             []string
	sell            []string
	exchange        string
	defaultCurrency string
}

// NewTrade builds a TradeExtractor from configuration.
func NewTrade(cfg *config.Config) *TradeExtractor {
	return &TradeExtractor{
		buy:             normalize.FoldAll(cfg.Vocabulary.Buy),
		sell:            normalize.FoldAll(cfg.Vocabulary.Sell),
		exchange:        cfg.Exchanges.Trade,
		defaultCurrency: cfg.DefaultCurrency,
	}
}

func (e *TradeExtractor) Category() model.OperationCategory { return model.CategoryTrade }

// Extract builds a Trade record. Unlike mutual fund rows, a trade missing
// its settlement date keeps both settlement_date and settlement_term null.
func (e *TradeExtractor) Extract(row model.NormalizedRow, ref *refdata.Table) (model.Operation, []model.Warning, error) {
	var partyRole *string
	switch {
	case normalize.ContainsAny(row.Descriptor, e.buy):
		role := "Purchase"
		partyRole = &role
	case normalize.ContainsAny(row.Descriptor, e.sell):
		role := "Sale"
		partyRole = &role
	}

	name := row.Security
	if name == "" {
		name = row.ISIN
	}
	securityName, warns := resolveName(name, row.Line, ref)

	currency := row.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}

	// The charge group always has at least one slot; a trade with no
	// detected charge carries a null-filled slot.
	charges := []model.Charge{{}}
	if row.ChargeAmount != nil {
		chargeName := "Comisión"
		charges = []model.Charge{{
			Name:     &chargeName,
			Amount:   absPtr(row.ChargeAmount),
			Currency: &currency,
		}}
	}

	trade := &model.Trade{
		PartyRole:        partyRole,
		AgreementDate:    model.NewDate(row.AgreementDate),
		SettlementTerm:   Term(row.AgreementDate, row.SettlementDate),
		SettlementDate:   model.NewDate(row.SettlementDate),
		Exchange:         e.exchange,
		SecurityAmount:   absPtr(row.Quantity),
		SecurityName:     securityName,
		NetPaymentAmount: row.Amount,
		Charges:          charges,
	}
	return trade, warns, nil
}
