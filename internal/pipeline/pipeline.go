// Package pipeline drives raw rows through normalization, classification,
// and extraction. Rows are independent: an error on one never affects
// another, and the batch result preserves input order regardless of how
// many workers processed it.
package pipeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brokerfeed-dev/brokerfeed/internal/classify"
	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/extract"
	"github.com/brokerfeed-dev/brokerfeed/internal/id"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/normalize"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

// Result is the outcome of processing one input row.
type Result struct {
	Line      int
	Ref       string // deterministic record reference
	Outcome   classify.Outcome
	Operation model.Operation // nil for unclassified, income, and failed rows
	Warnings  []model.Warning
	Err       error // non-nil only for row-fatal schema violations
}

// Summary aggregates a batch run.
type Summary struct {
	BatchID      uuid.UUID
	Source       string
	Total        int
	Extracted    int
	Income       int
	Unclassified int
	Failed       int
	Warnings     int
}

// Orchestrator wires the pipeline stages together for one batch
// configuration. The reference table is shared read-only across workers.
type Orchestrator struct {
	source     string
	normalizer *normalize.Normalizer
	classifier *classify.Classifier
	extractors *extract.Set
	ref        *refdata.Table
	workers    int
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSource names the batch source (broker or file name) used in record
// references and logs.
func WithSource(name string) Option {
	return func(o *Orchestrator) { o.source = name }
}

// WithWorkers sets the number of concurrent row workers.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) { o.workers = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an Orchestrator from configuration and a loaded reference
// table.
func New(cfg *config.Config, ref *refdata.Table, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:     "batch",
		normalizer: normalize.New(cfg.ColumnAliases),
		classifier: classify.New(cfg.Vocabulary, ref),
		extractors: extract.NewSet(cfg),
		ref:        ref,
		workers:    cfg.Workers,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// Process runs the batch and returns one Result per input row, in input
// order, plus a Summary. Per-row problems are collected in the results;
// nothing here aborts the batch.
func (o *Orchestrator) Process(rows []model.RawRow) ([]Result, Summary) {
	start := time.Now()
	results := make([]Result, len(rows))

	if o.workers == 1 || len(rows) < 2 {
		for i, raw := range rows {
			results[i] = o.processRow(raw)
		}
	} else {
		indices := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < o.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indices {
					results[i] = o.processRow(rows[i])
				}
			}()
		}
		for i := range rows {
			indices <- i
		}
		close(indices)
		wg.Wait()
	}

	summary := Summary{BatchID: uuid.New(), Source: o.source, Total: len(rows)}
	for _, r := range results {
		summary.Warnings += len(r.Warnings)
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Outcome.Category == model.CategoryUnclassified:
			summary.Unclassified++
		case r.Outcome.Category == model.CategoryIncome:
			summary.Income++
		default:
			summary.Extracted++
		}
	}

	o.logger.Info("batch processed",
		"batch_id", summary.BatchID.String(),
		"source", summary.Source,
		"rows", summary.Total,
		"extracted", summary.Extracted,
		"income", summary.Income,
		"unclassified", summary.Unclassified,
		"failed", summary.Failed,
		"warnings", summary.Warnings,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results, summary
}

func (o *Orchestrator) processRow(raw model.RawRow) Result {
	norm, warns := o.normalizer.Normalize(raw)

	var rowDate time.Time
	if norm.AgreementDate != nil {
		rowDate = *norm.AgreementDate
	}

	result := Result{
		Line:     raw.Line,
		Ref:      id.FormatRecordID(o.source, rowDate, raw.Line),
		Warnings: warns,
	}

	result.Outcome = o.classifier.Classify(norm)
	switch result.Outcome.Category {
	case model.CategoryUnclassified:
		result.Warnings = append(result.Warnings, model.Warning{
			Line:    raw.Line,
			Kind:    model.WarnClassification,
			Message: result.Outcome.Reason,
		})
		o.logger.Warn("row unclassified", "ref", result.Ref, "reason", result.Outcome.Reason)
	case model.CategoryIncome:
		// Dividend/coupon rows belong to the income collaborator.
		o.logger.Debug("row routed to income handling", "ref", result.Ref)
	default:
		extractor, ok := o.extractors.For(result.Outcome.Category)
		if !ok {
			result.Err = &model.SchemaViolationError{
				Category: result.Outcome.Category,
				Field:    "category",
				Reason:   "no extractor registered",
			}
			break
		}
		op, extractWarns, err := extractor.Extract(norm, o.ref)
		result.Warnings = append(result.Warnings, extractWarns...)
		if err != nil {
			result.Err = err
			o.logger.Warn("row excluded", "ref", result.Ref, "error", err.Error())
			break
		}
		result.Operation = op
	}
	return result
}
