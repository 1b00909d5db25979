package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const datePart = "20060102"

// FormatRecordID returns a deterministic record reference like
// "pellegrini_20240103_007". A zero date renders as "00000000" so rows
// without a parsable date still get a stable reference.
func FormatRecordID(source string, date time.Time, seq int) string {
	day := "00000000"
	if !date.IsZero() {
		day = date.Format(datePart)
	}
	return fmt.Sprintf("%s_%s_%03d", sanitize(source), day, seq)
}

// ParseRecordID parses a record reference back into its parts.
func ParseRecordID(ref string) (source string, date time.Time, seq int, err error) {
	i := strings.LastIndex(ref, "_")
	if i < 0 {
		return "", time.Time{}, 0, fmt.Errorf("invalid record ID format: %q", ref)
	}
	seq, err = strconv.Atoi(ref[i+1:])
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("invalid sequence in record ID %q: %w", ref, err)
	}

	rest := ref[:i]
	j := strings.LastIndex(rest, "_")
	if j < 0 {
		return "", time.Time{}, 0, fmt.Errorf("invalid record ID format: %q", ref)
	}

	day := rest[j+1:]
	if day != "00000000" {
		date, err = time.Parse(datePart, day)
		if err != nil {
			return "", time.Time{}, 0, fmt.Errorf("invalid date in record ID %q: %w", ref, err)
		}
	}
	return rest[:j], date, seq, nil
}

// sanitize lowercases the source name and keeps only letters and digits.
func sanitize(source string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return -1
	}, source)
	if cleaned == "" {
		return "batch"
	}
	return cleaned
}
