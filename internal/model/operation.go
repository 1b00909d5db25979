package model

import "github.com/shopspring/decimal"

// OperationCategory identifies the classification outcome for a row.
type OperationCategory string

const (
	CategoryTrade        OperationCategory = "Trade"
	CategoryMonetaryFlow OperationCategory = "MonetaryFlow"
	CategorySecurityFlow OperationCategory = "SecurityFlow"
	CategoryMutualFund   OperationCategory = "MutualFundTransaction"

	// CategoryIncome marks dividend/coupon/interest-on-security rows that are
	// handed off to the income collaborator rather than extracted here.
	CategoryIncome OperationCategory = "Income"

	// CategoryUnclassified is the explicit terminal outcome when no rule matched.
	CategoryUnclassified OperationCategory = "Unclassified"
)

// FlowType is the fine-grained kind of a monetary flow.
type FlowType string

const (
	FlowDeposit     FlowType = "MonetaryDeposit"
	FlowWithdrawal  FlowType = "MonetaryWithdrawal"
	FlowFee         FlowType = "Fee"
	FlowInterest    FlowType = "Interest Payment"
	FlowTransferIn  FlowType = "Transfer In"
	FlowTransferOut FlowType = "Transfer Out"
	FlowOther       FlowType = "Other"
)

// Security flow directions.
const (
	SecurityInflow  = "SecurityInflow"
	SecurityOutflow = "SecurityOutflow"
)

// Fund operation types.
const (
	FundSubscription = "FundSubscription"
	FundRedemption   = "FundRedemption"
)

// Operation is the tagged union over the four output record types. Every
// required field of a category's schema is present on its struct; nullable
// fields are pointers so JSON output carries an explicit null.
type Operation interface {
	Category() OperationCategory
}

// Charge is one slot of a trade's repeating charge group.
type Charge struct {
	Name     *string          `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency"`
}

// Trade is the output record for a security purchase or sale.
type Trade struct {
	PartyRole        *string          `json:"party_role"` // "Purchase" or "Sale"
	AgreementDate    *Date            `json:"agreement_date"`
	SettlementTerm   *string          `json:"settlement_term"` // "T" or "T+N"
	SettlementDate   *Date            `json:"settlement_date"`
	Exchange         string           `json:"exchange"`
	SecurityAmount   *decimal.Decimal `json:"security_amount"`
	SecurityName     string           `json:"security_name"`
	NetPaymentAmount *decimal.Decimal `json:"net_payment_amount"`
	Charges          []Charge         `json:"charges"` // always at least one slot
}

func (Trade) Category() OperationCategory { return CategoryTrade }

// MonetaryFlow is the output record for a cash movement.
type MonetaryFlow struct {
	FlowType    FlowType        `json:"flow_type"`
	Date        *Date           `json:"date"`
	AssetAmount decimal.Decimal `json:"asset_amount"` // always non-negative
	AssetName   string          `json:"asset_name"`
	Notes       string          `json:"notes"`
}

func (MonetaryFlow) Category() OperationCategory { return CategoryMonetaryFlow }

// SecurityFlow is the output record for a bare share movement.
type SecurityFlow struct {
	FlowType           string          `json:"flow_type"` // SecurityInflow or SecurityOutflow
	Date               *Date           `json:"date"`
	Concept            string          `json:"concept"`
	AssetAmount        decimal.Decimal `json:"asset_amount"` // always non-negative
	AssetName          string          `json:"asset_name"`
	GrossPaymentAmount decimal.Decimal `json:"gross_payment_amount"` // 0 when no cash co-occurs
	Notes              string          `json:"notes"`
}

func (SecurityFlow) Category() OperationCategory { return CategorySecurityFlow }

// MutualFund is the output record for a fund subscription or redemption.
type MutualFund struct {
	FundOperationType string           `json:"fund_operation_type"` // FundSubscription or FundRedemption
	AgreementDate     *Date            `json:"agreement_date"`
	SettlementTerm    *string          `json:"settlement_term"`
	SettlementDate    *Date            `json:"settlement_date"`
	Exchange          string           `json:"exchange"`
	SecurityAmount    *decimal.Decimal `json:"security_amount"`
	SecurityName      string           `json:"security_name"`
	NetPaymentAmount  *decimal.Decimal `json:"net_payment_amount"`
	Currency          string           `json:"currency"`
}

func (MutualFund) Category() OperationCategory { return CategoryMutualFund }
