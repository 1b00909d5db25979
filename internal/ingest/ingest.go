// Package ingest reads broker export files into raw rows. It owns encoding
// detection and sheet/column discovery so the processing core never touches
// file formats.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
)

// Parser converts a broker export into RawRows.
type Parser interface {
	Parse(r io.Reader) ([]model.RawRow, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	return r
}

// ForFile returns the parser matching a file's extension.
func ForFile(path string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return &CSVParser{}, nil
	case "xlsx", "xls":
		return &XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
}

// fundBannerPrefix marks the title row fund statements carry above the
// data ("Fondo PELLEGRINI RENTA PESOS").
const fundBannerPrefix = "FONDO "

// rowsFromRecords maps spreadsheet records onto RawRows using the first
// record as the header. Banner rows naming the fund are skipped, and the
// fund title is injected as a synthetic "Fondo" column on every following
// row, since fund statements never repeat the instrument per row.
func rowsFromRecords(records [][]string) []model.RawRow {
	if len(records) == 0 {
		return nil
	}

	headers := records[0]
	fundTitle := ""

	var rows []model.RawRow
	for i, rec := range records[1:] {
		line := i + 2 // 1-based, after the header

		if title, ok := bannerTitle(rec); ok {
			fundTitle = title
			continue
		}
		if isEmpty(rec) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" || col >= len(rec) {
				continue
			}
			fields[header] = strings.TrimSpace(rec[col])
		}
		if fundTitle != "" {
			if _, ok := fields["Fondo"]; !ok {
				fields["Fondo"] = fundTitle
			}
		}
		rows = append(rows, model.RawRow{Line: line, Fields: fields})
	}
	return rows
}

// bannerTitle reports whether a record is a fund banner and returns the
// fund name with the leading "Fondo" stripped.
func bannerTitle(rec []string) (string, bool) {
	if len(rec) == 0 {
		return "", false
	}
	first := strings.TrimSpace(rec[0])
	if first == "" {
		return "", false
	}
	for _, cell := range rec[1:] {
		if strings.TrimSpace(cell) != "" {
			return "", false
		}
	}
	if !strings.HasPrefix(normalize.Fold(first), fundBannerPrefix) {
		return "", false
	}
	return strings.TrimSpace(first[len("Fondo"):]), true
}

func isEmpty(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
