package metricsoutput

import (
	"fmt"
	"log"
	"strings"
)

// MEDIAN_INSERT_SIZE is reported for both library types, in different units.
const (
	MedianInsertSizeDNALabel = "MEDIAN_INSERT_SIZE (bp)"
	MedianInsertSizeRNALabel = "MEDIAN_INSERT_SIZE (Count)"

	MedianInsertSizeDNA = "MEDIAN_INSERT_SIZE_DNA"
	MedianInsertSizeRNA = "MEDIAN_INSERT_SIZE_RNA"
)

// NormalizeHeaders disambiguates the DNA and RNA median insert size columns
// and then cuts every column label down to its first whitespace-delimited
// token, which removes unit annotations like "(M)" or "(%)".
//
// A run without DNA or without RNA libraries lacks one of the insert size
// columns; that is logged and is not an error. Labels that collapse onto an
// earlier label are logged and dropped. A label with no token at all is an
// ErrHeaderShape error.
func NormalizeHeaders(t *Table, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	sawDNA, sawRNA := false, false

	names := make([]string, len(t.Columns))
	for j, name := range t.Columns {
		if strings.Contains(name, MedianInsertSizeDNALabel) {
			sawDNA = true
			name = strings.ReplaceAll(name, MedianInsertSizeDNALabel, MedianInsertSizeDNA)
		}
		if strings.Contains(name, MedianInsertSizeRNALabel) {
			sawRNA = true
			name = strings.ReplaceAll(name, MedianInsertSizeRNALabel, MedianInsertSizeRNA)
		}

		fields := strings.Fields(name)
		if len(fields) == 0 {
			return fmt.Errorf("%w: column %d has label %q", ErrHeaderShape, j, t.Columns[j])
		}
		names[j] = fields[0]
	}

	if !sawDNA {
		logger.Printf("No %q column: this run appears to have no DNA libraries\n", MedianInsertSizeDNALabel)
	}
	if !sawRNA {
		logger.Printf("No %q column: this run appears to have no RNA libraries\n", MedianInsertSizeRNALabel)
	}

	// Collapse duplicates, keeping the first occurrence.
	seen := make(map[string]struct{}, len(names))
	drop := make([]int, 0)
	for j, name := range names {
		if _, exists := seen[name]; exists {
			logger.Printf("Column %q normalizes to %q, which is already present; dropping it\n", t.Columns[j], name)
			drop = append(drop, j)
			continue
		}
		seen[name] = struct{}{}
	}

	for k := len(drop) - 1; k >= 0; k-- {
		j := drop[k]
		names = append(names[:j:j], names[j+1:]...)
		t.DropColumn(j)
	}
	t.RenameColumns(names)

	return nil
}
