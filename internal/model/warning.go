package model

import "fmt"

// WarningKind distinguishes the non-fatal per-row issue classes.
type WarningKind string

const (
	WarnFieldParse     WarningKind = "field-parse"
	WarnLookupMiss     WarningKind = "lookup-miss"
	WarnClassification WarningKind = "classification"
)

// Warning records a non-fatal issue on one row. Warnings are collected and
// returned alongside results; they never abort the batch.
type Warning struct {
	Line    int
	Field   string
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("row %d [%s]: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("row %d [%s] %s: %s", w.Line, w.Kind, w.Field, w.Message)
}

// SchemaViolationError marks a row whose extractor could not populate a
// structurally required field shape. Fatal to that row only.
type SchemaViolationError struct {
	Category OperationCategory
	Field    string
	Reason   string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in %s record, field %s: %s", e.Category, e.Field, e.Reason)
}
