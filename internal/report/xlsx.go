package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/pipeline"
)

var sheetHeaders = map[string][]string{
	"Trades": {
		"party_role", "agreement_date", "settlement_term", "settlement_date",
		"exchange", "security_amount", "security_name", "net_payment_amount",
		"charge_1_name", "charge_1_amount", "charge_1_currency",
	},
	"MonetaryFlows": {
		"flow_type", "date", "asset_amount", "asset_name", "notes",
	},
	"SecurityFlows": {
		"flow_type", "date", "concept", "asset_amount", "asset_name",
		"gross_payment_amount", "notes",
	},
	"MutualFunds": {
		"fund_operation_type", "agreement_date", "settlement_term",
		"settlement_date", "exchange", "security_amount", "security_name",
		"net_payment_amount", "currency",
	},
}

// sheetOrder keeps workbook layout stable across runs.
var sheetOrder = []string{"Trades", "MonetaryFlows", "SecurityFlows", "MutualFunds"}

// WriteXLSX writes extracted records to a workbook, one sheet per category.
// Unclassified, income, and failed rows are not written; they belong in
// the JSONL output.
func WriteXLSX(w io.Writer, results []pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	nextRow := make(map[string]int, len(sheetOrder))
	for _, sheet := range sheetOrder {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
		for col, h := range sheetHeaders[sheet] {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fmt.Errorf("writing header for %s: %w", sheet, err)
			}
		}
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("styling header of %s: %w", sheet, err)
		}
		nextRow[sheet] = 2
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}

	for _, r := range results {
		if r.Operation == nil {
			continue
		}
		sheet, values := flatten(r.Operation)
		if sheet == "" {
			continue
		}
		row := nextRow[sheet]
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d of %s: %w", row, sheet, err)
			}
		}
		nextRow[sheet] = row + 1
	}

	for _, sheet := range sheetOrder {
		if err := f.SetColWidth(sheet, "A", "I", 18); err != nil {
			return fmt.Errorf("sizing columns of %s: %w", sheet, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func flatten(op model.Operation) (sheet string, values []string) {
	switch v := op.(type) {
	case *model.Trade:
		charge := model.Charge{}
		if len(v.Charges) > 0 {
			charge = v.Charges[0]
		}
		return "Trades", []string{
			strValue(v.PartyRole), dateValue(v.AgreementDate), strValue(v.SettlementTerm),
			dateValue(v.SettlementDate), v.Exchange, decValue(v.SecurityAmount),
			v.SecurityName, decValue(v.NetPaymentAmount),
			strValue(charge.Name), decValue(charge.Amount), strValue(charge.Currency),
		}
	case *model.MonetaryFlow:
		return "MonetaryFlows", []string{
			string(v.FlowType), dateValue(v.Date), v.AssetAmount.String(), v.AssetName, v.Notes,
		}
	case *model.SecurityFlow:
		return "SecurityFlows", []string{
			v.FlowType, dateValue(v.Date), v.Concept, v.AssetAmount.String(),
			v.AssetName, v.GrossPaymentAmount.String(), v.Notes,
		}
	case *model.MutualFund:
		return "MutualFunds", []string{
			v.FundOperationType, dateValue(v.AgreementDate), strValue(v.SettlementTerm),
			dateValue(v.SettlementDate), v.Exchange, decValue(v.SecurityAmount),
			v.SecurityName, decValue(v.NetPaymentAmount), v.Currency,
		}
	default:
		return "", nil
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateValue(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func decValue(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
