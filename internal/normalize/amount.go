package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanAmount parses a broker-formatted amount string into a decimal.
// It strips currency symbols and spacing, accepts both the "1.234,56" and
// "1,234.56" separator conventions, and treats a parenthesized value as
// negative. The sign is preserved as given.
func CleanAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		negative = true
		trimmed = trimmed[1 : len(trimmed)-1]
	}

	// Keep only digits, signs, and separators.
	var b strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+', r == '.', r == ',':
			b.WriteRune(r)
		}
	}
	cleaned := resolveSeparators(b.String())
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in amount %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// resolveSeparators rewrites s so '.' is the only decimal separator.
func resolveSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the rightmost is the decimal separator.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma only: a single comma with 1-2 trailing digits is a decimal
		// separator; anything else is a thousands separator.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		// Multiple dots can only be thousands separators.
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}
