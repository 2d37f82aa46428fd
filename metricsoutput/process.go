package metricsoutput

import (
	"io"
	"log"
)

// Options controls Process.
type Options struct {
	// Logger receives informational messages. Defaults to log.Default().
	Logger *log.Logger
}

// Result is everything Process derives from one report.
type Result struct {
	// Table holds every sample, after contamination classification.
	Table *Table

	DNA *Table
	RNA *Table

	Assessments []Assessment
}

// Process runs the whole report-to-tables pipeline in memory. Nothing is
// written; on error no partial result is returned.
func Process(r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	blocks, err := Extract(r)
	if err != nil {
		return nil, err
	}

	table := BuildTable(blocks)

	if err := NormalizeHeaders(table, logger); err != nil {
		return nil, err
	}

	assessments, err := ClassifyContamination(table)
	if err != nil {
		return nil, err
	}

	dna, rna := Split(table)

	return &Result{
		Table:       table,
		DNA:         dna,
		RNA:         rna,
		Assessments: assessments,
	}, nil
}
