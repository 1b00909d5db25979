// Package runlog keeps an append-only CSV audit trail of batch runs, so
// re-imports and partial failures can be traced after the fact.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp    time.Time
	BatchID      string
	Source       string
	Rows         int
	Extracted    int
	Income       int
	Unclassified int
	Failed       int
	Warnings     int
}

// Header is the CSV header for the run log.
const Header = "timestamp,batch_id,source,rows,extracted,income,unclassified,failed,warnings"

const (
	numFields       = 9
	colTimestamp    = 0
	colBatchID      = 1
	colSource       = 2
	colRows         = 3
	colExtracted    = 4
	colIncome       = 5
	colUnclassified = 6
	colFailed       = 7
	colWarnings     = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colBatchID] = e.BatchID
	row[colSource] = e.Source
	row[colRows] = strconv.Itoa(e.Rows)
	row[colExtracted] = strconv.Itoa(e.Extracted)
	row[colIncome] = strconv.Itoa(e.Income)
	row[colUnclassified] = strconv.Itoa(e.Unclassified)
	row[colFailed] = strconv.Itoa(e.Failed)
	row[colWarnings] = strconv.Itoa(e.Warnings)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, numFields)
	for _, col := range []int{colRows, colExtracted, colIncome, colUnclassified, colFailed, colWarnings} {
		counts[col], err = strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
	}

	return Entry{
		Timestamp:    ts,
		BatchID:      record[colBatchID],
		Source:       record[colSource],
		Rows:         counts[colRows],
		Extracted:    counts[colExtracted],
		Income:       counts[colIncome],
		Unclassified: counts[colUnclassified],
		Failed:       counts[colFailed],
		Warnings:     counts[colWarnings],
	}, nil
}

// Append writes an entry to the run log at path, creating the file and
// header if needed.
func Append(path string, e Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return cw.Error()
}

// Read returns all entries from the run log at path. A missing file yields
// no entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
