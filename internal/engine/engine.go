// Package engine runs the campaign build pipeline: resolve, load, extract,
// index. The pipeline is synchronous and run to completion; a caller never
// observes a partially built index.
package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/emberfall/lorekeeper/internal/campaign"
	"github.com/emberfall/lorekeeper/internal/corpus"
	"github.com/emberfall/lorekeeper/internal/knowledge"
	"github.com/emberfall/lorekeeper/internal/knowledge/extract"
)

const tracerName = "github.com/emberfall/lorekeeper/internal/engine"

// BuildReport summarizes one index build. Partial-load and extraction
// warnings ride along here so callers can inspect data completeness; they
// never block a build from completing.
type BuildReport struct {
	CampaignID string
	Documents  int
	Records    int
	Missing    []string
	FileErrors []corpus.FileError
	Warnings   []extract.Warning
	BuiltAt    time.Time
	Elapsed    time.Duration
}

// Partial reports whether any expected input was skipped during the build.
func (r BuildReport) Partial() bool {
	return len(r.Missing) > 0 || len(r.FileErrors) > 0 || len(r.Warnings) > 0
}

// Build loads a resolved campaign's corpus and builds its knowledge index.
//
// Document load order is deterministic (role order, then lexicographic path
// order), and Build hands records to the index in that same order, so two
// builds from an unchanged corpus produce identical merged records.
func Build(ctx context.Context, resolved campaign.Campaign) (*knowledge.Index, BuildReport, error) {
	started := time.Now()
	_, span := otel.Tracer(tracerName).Start(ctx, "engine.Build",
		trace.WithAttributes(attribute.String("campaign.id", resolved.ID)))
	defer span.End()

	report := BuildReport{CampaignID: resolved.ID}

	loaded, err := corpus.Load(resolved)
	if err != nil {
		span.RecordError(err)
		return nil, report, err
	}
	report.Documents = len(loaded.Documents)
	report.Missing = loaded.Missing
	report.FileErrors = loaded.FileErrors

	var records []knowledge.Record
	for _, document := range loaded.Documents {
		extracted := extract.Document(document)
		records = append(records, extracted.Records...)
		report.Warnings = append(report.Warnings, extracted.Warnings...)
	}

	index := knowledge.Build(resolved.ID, records)
	report.Records = index.Len()
	report.BuiltAt = index.BuiltAt()
	report.Elapsed = time.Since(started)

	span.SetAttributes(
		attribute.Int("corpus.documents", report.Documents),
		attribute.Int("index.records", report.Records),
	)
	return index, report, nil
}
