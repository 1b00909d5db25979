package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
)

const (
	colInstrument = 0
	colTicker     = 1
	colKind       = 2
)

// ReadEntries reads an Especies-style reference CSV. The file has an
// "Instrumento,Ticker" header with an optional third "Tipo" column marking
// funds; when the column is absent the kind is inferred from the name.
func ReadEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reference CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("reference CSV is empty")
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func unmarshalEntry(record []string) (Entry, error) {
	if len(record) < 2 {
		return Entry{}, fmt.Errorf("expected at least 2 fields, got %d", len(record))
	}

	instrument := strings.TrimSpace(record[colInstrument])
	ticker := strings.TrimSpace(record[colTicker])
	if instrument == "" {
		return Entry{}, fmt.Errorf("empty instrument name")
	}
	if ticker == "" {
		return Entry{}, fmt.Errorf("empty ticker for instrument %q", instrument)
	}

	kindCol := ""
	if len(record) > colKind {
		kindCol = normalize.Fold(record[colKind])
	}
	kind := KindSecurity
	switch kindCol {
	case "FONDO", "FCI", "FUND":
		kind = KindFund
	case "":
		// No Tipo column (or left blank): infer from the name.
		if folded := normalize.Fold(instrument); strings.Contains(folded, "FCI") || strings.Contains(folded, "FONDO") {
			kind = KindFund
		}
	}

	return Entry{Instrument: instrument, Ticker: ticker, Kind: kind}, nil
}
