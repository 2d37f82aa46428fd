package metricsoutput

import (
	"strings"
)

// Markers of threshold-reference columns in Library QC blocks.
var guidelineMarkers = []string{"LSL Guideline", "USL Guideline"}

// CleanStatusBlock drops empty rows, residual [Section] rows and columns that
// are empty in every row.
func CleanStatusBlock(rows [][]string) [][]string {
	rows = dropRows(rows, func(row []string) bool {
		return isEmptyRow(row) || isSectionHeader(row[0])
	})

	return keepColumns(rows, nonEmptyColumns(rows))
}

// CleanMetricsBlock removes everything from the Library QC rows that is not
// sample data: guideline columns, empty columns, residual [Section] rows,
// empty rows, and exact duplicates such as the header line repeated for every
// analyte group.
func CleanMetricsBlock(rows [][]string) [][]string {
	keep := nonEmptyColumns(rows)
	for col := range guidelineColumns(rows) {
		delete(keep, col)
	}
	rows = keepColumns(rows, keep)

	rows = dropRows(rows, func(row []string) bool {
		return isEmptyRow(row) || isSectionHeader(row[0])
	})

	return dedupeRows(rows)
}

// guidelineColumns returns the indices of every column holding a guideline
// marker in any row.
func guidelineColumns(rows [][]string) map[int]struct{} {
	out := make(map[int]struct{})
	for _, row := range rows {
		for j, cell := range row {
			for _, marker := range guidelineMarkers {
				if strings.Contains(cell, marker) {
					out[j] = struct{}{}
				}
			}
		}
	}

	return out
}

// nonEmptyColumns returns the indices of columns with at least one non-blank
// cell.
func nonEmptyColumns(rows [][]string) map[int]struct{} {
	out := make(map[int]struct{})
	for _, row := range rows {
		for j, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out[j] = struct{}{}
			}
		}
	}

	return out
}

// keepColumns rewrites every row to hold only the retained column indices,
// in their original order. A short row stays short: cells it never had are
// not invented.
func keepColumns(rows [][]string, keep map[int]struct{}) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cols := make([]int, 0, len(keep))
	for j := 0; j < width; j++ {
		if _, ok := keep[j]; ok {
			cols = append(cols, j)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		newRow := make([]string, 0, len(cols))
		for _, j := range cols {
			if j >= len(row) {
				break
			}
			newRow = append(newRow, row[j])
		}
		out = append(out, newRow)
	}

	return out
}

func dropRows(rows [][]string, drop func(row []string) bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if drop(row) {
			continue
		}
		out = append(out, row)
	}

	return out
}

func dedupeRows(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	return dropRows(rows, func(row []string) bool {
		key := strings.Join(row, "\t")
		if _, exists := seen[key]; exists {
			return true
		}
		seen[key] = struct{}{}
		return false
	})
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
