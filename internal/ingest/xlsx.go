package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/brokerfeed-dev/brokerfeed/internal/model"
)

// XLSXParser parses broker Excel exports. Only the first sheet is read;
// broker statements put their data there.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads a broker workbook and returns RawRows keyed by header.
func (p *XLSXParser) Parse(r io.Reader) ([]model.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rowsFromRecords(records), nil
}
