package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/brokerfeed-dev/brokerfeed/internal/model"
)

// CSVParser parses broker CSV exports. Brokers export either UTF-8 or
// Latin-1; the parser detects which and decodes accordingly.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a broker CSV and returns RawRows keyed by header.
func (p *CSVParser) Parse(r io.Reader) ([]model.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if !utf8.Valid(data) {
		data, err = io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("decoding Latin-1 CSV: %w", err)
		}
	}

	// Strip a UTF-8 BOM so the first header survives matching.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV records: %w", err)
	}
	return rowsFromRecords(records), nil
}
