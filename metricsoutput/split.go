package metricsoutput

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DNAOutputFilename = "MetricsOutput_MultiQC_DNA.tsv"
	RNAOutputFilename = "MetricsOutput_MultiQC_RNA.tsv"

	// Sample identifiers are assigned to a library type by substring. An
	// identifier may match both, or neither.
	DNAMarker = "D"
	RNAMarker = "R"
)

// IsDNASample reports whether the sample belongs in the DNA output.
func IsDNASample(sample string) bool { return strings.Contains(sample, DNAMarker) }

// IsRNASample reports whether the sample belongs in the RNA output.
func IsRNASample(sample string) bool { return strings.Contains(sample, RNAMarker) }

// Split partitions the table into its DNA and RNA subsets.
func Split(t *Table) (dna, rna *Table) {
	return t.Filter(IsDNASample), t.Filter(IsRNASample)
}

// WriteTSV writes the table with the index as the first column. Missing cells
// are written as NA.
func WriteTSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := append([]string{t.Index}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, sample := range t.Rows {
		record[0] = sample
		for j, cell := range t.Cells[i] {
			record[j+1] = MissingToken
			if cell.Valid {
				record[j+1] = cell.String
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteOutputs writes the DNA and RNA tables into dir under their standard
// file names and returns the paths written. An empty table produces no file.
// Both files are staged next to their destination and only renamed into
// place once every write has succeeded.
func WriteOutputs(dir string, dna, rna *Table) ([]string, error) {
	type output struct {
		table *Table
		path  string
		tmp   string
	}

	pending := make([]output, 0, 2)
	for _, o := range []output{
		{table: dna, path: filepath.Join(dir, DNAOutputFilename)},
		{table: rna, path: filepath.Join(dir, RNAOutputFilename)},
	} {
		if o.table == nil || o.table.Len() == 0 {
			continue
		}
		o.tmp = o.path + ".tmp"
		pending = append(pending, o)
	}

	cleanup := func() {
		for _, o := range pending {
			os.Remove(o.tmp)
		}
	}

	for _, o := range pending {
		if err := writeFile(o.tmp, o.table); err != nil {
			cleanup()
			return nil, err
		}
	}

	written := make([]string, 0, len(pending))
	for _, o := range pending {
		if err := os.Rename(o.tmp, o.path); err != nil {
			cleanup()
			return written, err
		}
		written = append(written, o.path)
	}

	return written, nil
}

func writeFile(path string, t *Table) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if err := WriteTSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
