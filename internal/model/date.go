package model

import (
	"fmt"
	"time"
)

// DateFormat is the output date layout (MM/DD/YYYY).
const DateFormat = "01/02/2006"

// Date is a calendar date that serializes as MM/DD/YYYY.
type Date struct {
	time.Time
}

// NewDate wraps a time.Time; returns nil for a nil input.
func NewDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{*t}
}

// String returns the date in MM/DD/YYYY form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON renders the date as a quoted MM/DD/YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON parses a quoted MM/DD/YYYY string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse(DateFormat, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parsing date %s: %w", s, err)
	}
	d.Time = t
	return nil
}
