package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
)

// dateLayouts are tried in order. Broker exports write dates day-first.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
}

// Normalizer maps raw rows onto the canonical field set. It is a pure
// transformation: a malformed field degrades to nil plus a warning, never
// an error.
type Normalizer struct {
	aliases map[string][]string // canonical field -> folded aliases, in priority order
}

// New builds a Normalizer from a canonical-field -> header-aliases map.
func New(aliases map[string][]string) *Normalizer {
	folded := make(map[string][]string, len(aliases))
	for field, names := range aliases {
		folded[field] = FoldAll(names)
	}
	return &Normalizer{aliases: folded}
}

// Normalize converts one RawRow into a NormalizedRow, collecting a warning
// for every field that was present but unparsable.
func (n *Normalizer) Normalize(raw model.RawRow) (model.NormalizedRow, []model.Warning) {
	byHeader := make(map[string]string, len(raw.Fields))
	for header, value := range raw.Fields {
		byHeader[Fold(header)] = value
	}

	var warns []model.Warning
	warn := func(field, msg string) {
		warns = append(warns, model.Warning{
			Line:    raw.Line,
			Field:   field,
			Kind:    model.WarnFieldParse,
			Message: msg,
		})
	}

	lookup := func(field string) string {
		for _, alias := range n.aliases[field] {
			if v, ok := byHeader[alias]; ok {
				if trimmed := strings.TrimSpace(v); trimmed != "" {
					return trimmed
				}
			}
		}
		return ""
	}

	date := func(field string) *time.Time {
		v := lookup(field)
		if v == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
		warn(field, fmt.Sprintf("unparsable date %q", v))
		return nil
	}

	amount := func(field string) *decimal.Decimal {
		v := lookup(field)
		if v == "" {
			return nil
		}
		d, err := CleanAmount(v)
		if err != nil {
			warn(field, err.Error())
			return nil
		}
		return &d
	}

	description := lookup(config.FieldDescription)

	row := model.NormalizedRow{
		Line:           raw.Line,
		AgreementDate:  date(config.FieldAgreementDate),
		SettlementDate: date(config.FieldSettlementDate),
		Description:    description,
		Descriptor:     Fold(description),
		Quantity:       amount(config.FieldQuantity),
		Price:          amount(config.FieldPrice),
		Amount:         amount(config.FieldAmount),
		GrossAmount:    amount(config.FieldGrossAmount),
		ChargeAmount:   amount(config.FieldChargeAmount),
		Currency:       Currency(lookup(config.FieldCurrency)),
		Security:       lookup(config.FieldSecurity),
		ISIN:           lookup(config.FieldISIN),
		ShareClass:     lookup(config.FieldShareClass),
		Account:        lookup(config.FieldAccount),
		Counterparty:   lookup(config.FieldCounterparty),
		TransactionID:  lookup(config.FieldTransactionID),
	}
	return row, warns
}

// Currency normalizes a currency token to an uppercase ISO-like code when
// recognizable, else passes it through untouched.
func Currency(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 3 && isLetters(trimmed) {
		return strings.ToUpper(trimmed)
	}
	return trimmed
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
