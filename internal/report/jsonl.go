// Package report serializes batch results: one JSON object per row for
// downstream tooling, or an Excel workbook for review by hand.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/pipeline"
)

// rowEnvelope is the JSON shape for one processed row. Record fields that
// could not be determined serialize as explicit nulls.
type rowEnvelope struct {
	Ref      string                  `json:"ref"`
	Line     int                     `json:"line"`
	Category model.OperationCategory `json:"category"`
	Rule     string                  `json:"rule,omitempty"`
	Record   model.Operation         `json:"record,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
	Error    string                  `json:"error,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

// WriteJSONL writes one JSON object per result, in input order.
func WriteJSONL(w io.Writer, results []pipeline.Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		env := rowEnvelope{
			Ref:      r.Ref,
			Line:     r.Line,
			Category: r.Outcome.Category,
			Rule:     r.Outcome.Rule,
			Record:   r.Operation,
			Reason:   r.Outcome.Reason,
		}
		if r.Err != nil {
			env.Error = r.Err.Error()
		}
		for _, warn := range r.Warnings {
			env.Warnings = append(env.Warnings, warn.String())
		}
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("encoding row %d: %w", r.Line, err)
		}
	}
	return nil
}
