package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one record from a broker export, keyed by source column header.
// It is owned by the orchestrator for the duration of one row's processing.
type RawRow struct {
	Line   int // 1-based position in the source file
	Fields map[string]string
}

// NormalizedRow holds the typed view of a RawRow. Pointer fields are nil
// when the source value was absent or failed to parse.
type NormalizedRow struct {
	Line           int
	AgreementDate  *time.Time
	SettlementDate *time.Time
	Description    string // descriptor as it appears in the source
	Descriptor     string // folded descriptor used for vocabulary matching
	Quantity       *decimal.Decimal
	Price          *decimal.Decimal
	Amount         *decimal.Decimal // net cash amount, sign as given
	GrossAmount    *decimal.Decimal
	ChargeAmount   *decimal.Decimal
	Currency       string
	Security       string // broker-local instrument name
	ISIN           string
	ShareClass     string
	Account        string
	Counterparty   string
	TransactionID  string
}

// HasQuantity reports whether the row carries a non-zero quantity.
func (r NormalizedRow) HasQuantity() bool {
	return r.Quantity != nil && !r.Quantity.IsZero()
}

// HasAmount reports whether the row carries a cash amount.
func (r NormalizedRow) HasAmount() bool {
	return r.Amount != nil
}

// HasSecurity reports whether the row names an instrument (by local name or ISIN).
func (r NormalizedRow) HasSecurity() bool {
	return r.Security != "" || r.ISIN != ""
}
