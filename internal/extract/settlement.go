package extract

import (
	"fmt"
	"time"
)

// MonthsApart returns the whole-calendar-month difference between two
// dates, ignoring the day of month: Jan 15 to Mar 15 is 2, and so is
// Jan 31 to Mar 1.
func MonthsApart(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// Term formats the settlement term from the agreement and settlement
// dates: "T" for same-calendar-month settlement, "T+N" for N whole months
// later. A settlement date before the agreement date (dirty data) clamps
// to "T". Either date missing yields nil: a term cannot be computed from
// one date.
func Term(agreement, settlement *time.Time) *string {
	if agreement == nil || settlement == nil {
		return nil
	}
	term := "T"
	if n := MonthsApart(*agreement, *settlement); n > 0 {
		term = fmt.Sprintf("T+%d", n)
	}
	return &term
}
