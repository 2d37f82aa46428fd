package metricsoutput

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// IndexName labels the sample identifier column.
const IndexName = "Sample"

// Table is a sample-by-metric table: one row per sample identifier and one
// column per metric. An invalid cell is a missing value.
type Table struct {
	Index   string
	Rows    []string
	Columns []string
	Cells   [][]null.String

	rowIndex map[string]int
	colIndex map[string]int
}

// NewTable returns an empty table with the given index label.
func NewTable(index string) *Table {
	return &Table{
		Index:    index,
		Rows:     make([]string, 0),
		Columns:  make([]string, 0),
		Cells:    make([][]null.String, 0),
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// RowIndex returns the position of a sample, or -1.
func (t *Table) RowIndex(sample string) int {
	if i, ok := t.rowIndex[sample]; ok {
		return i
	}
	return -1
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if j, ok := t.colIndex[name]; ok {
		return j
	}
	return -1
}

// AddRow appends an all-missing row unless the sample is already present, and
// returns its position.
func (t *Table) AddRow(sample string) int {
	if i := t.RowIndex(sample); i >= 0 {
		return i
	}

	t.Rows = append(t.Rows, sample)
	t.Cells = append(t.Cells, make([]null.String, len(t.Columns)))
	t.rowIndex[sample] = len(t.Rows) - 1

	return len(t.Rows) - 1
}

// AddColumn appends an all-missing column unless it is already present, and
// returns its position.
func (t *Table) AddColumn(name string) int {
	if j := t.ColumnIndex(name); j >= 0 {
		return j
	}

	t.Columns = append(t.Columns, name)
	for i := range t.Cells {
		t.Cells[i] = append(t.Cells[i], null.String{})
	}
	t.colIndex[name] = len(t.Columns) - 1

	return len(t.Columns) - 1
}

// Value returns the cell at (sample, column). Unknown rows or columns read as
// missing.
func (t *Table) Value(sample, column string) null.String {
	i, j := t.RowIndex(sample), t.ColumnIndex(column)
	if i < 0 || j < 0 {
		return null.String{}
	}

	return t.Cells[i][j]
}

// Column returns a copy of one column's cells in row order.
func (t *Table) Column(name string) ([]null.String, bool) {
	j := t.ColumnIndex(name)
	if j < 0 {
		return nil, false
	}

	out := make([]null.String, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cells[i][j]
	}

	return out, true
}

// RenameColumns replaces the column labels. Labels must stay unique.
func (t *Table) RenameColumns(names []string) {
	t.Columns = names
	t.colIndex = make(map[string]int, len(names))
	for j, name := range names {
		t.colIndex[name] = j
	}
}

// DropColumn removes the column at position j.
func (t *Table) DropColumn(j int) {
	names := append(append([]string{}, t.Columns[:j]...), t.Columns[j+1:]...)
	for i, row := range t.Cells {
		t.Cells[i] = append(row[:j:j], row[j+1:]...)
	}
	t.RenameColumns(names)
}

// ReplaceToken marks every cell whose text is exactly token as missing.
func (t *Table) ReplaceToken(token string) {
	for i := range t.Cells {
		for j, cell := range t.Cells[i] {
			if cell.Valid && cell.String == token {
				t.Cells[i][j] = null.String{}
			}
		}
	}
}

// Filter returns a new table holding the rows whose sample identifier
// satisfies keep, in their original order, with every column.
func (t *Table) Filter(keep func(sample string) bool) *Table {
	out := NewTable(t.Index)
	out.RenameColumns(append([]string{}, t.Columns...))
	for i, sample := range t.Rows {
		if !keep(sample) {
			continue
		}
		k := out.AddRow(sample)
		copy(out.Cells[k], t.Cells[i])
	}

	return out
}

// Matrix is the metric-by-sample orientation that report blocks are written
// in. Metrics and Samples record first-seen order.
type Matrix struct {
	Metrics []string
	Samples []string

	values map[string]map[string]null.String
}

// NewMatrix builds a matrix from a cleaned block. The first row is the header:
// its first cell is the label of the metric name column and the remaining
// cells are sample identifiers. A later row carrying the same label starts a
// new header, so sub-blocks that list different samples are joined by
// identifier. Rows with a blank metric name are dropped.
func NewMatrix(rows [][]string) *Matrix {
	m := &Matrix{
		Metrics: make([]string, 0),
		Samples: make([]string, 0),
		values:  make(map[string]map[string]null.String),
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return m
	}

	label := rows[0][0]
	samples := m.addSamples(rows[0][1:])

	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		if label != "" && row[0] == label {
			samples = m.addSamples(row[1:])
			continue
		}

		metric := row[0]
		if strings.TrimSpace(metric) == "" {
			continue
		}

		for k, sample := range samples {
			if sample == "" {
				continue
			}
			if k+1 < len(row) {
				m.set(metric, sample, null.StringFrom(row[k+1]))
			} else {
				m.set(metric, sample, null.String{})
			}
		}
	}

	return m
}

func (m *Matrix) addSamples(header []string) []string {
	samples := make([]string, len(header))
	for k, sample := range header {
		sample = strings.TrimSpace(sample)
		samples[k] = sample
		if sample == "" {
			continue
		}
		if _, exists := m.indexOf(m.Samples, sample); !exists {
			m.Samples = append(m.Samples, sample)
		}
	}

	return samples
}

func (m *Matrix) indexOf(list []string, value string) (int, bool) {
	for i, v := range list {
		if v == value {
			return i, true
		}
	}

	return -1, false
}

// set stores a cell. A cell that already holds a value is never overwritten.
func (m *Matrix) set(metric, sample string, v null.String) {
	row, exists := m.values[metric]
	if !exists {
		row = make(map[string]null.String)
		m.values[metric] = row
		m.Metrics = append(m.Metrics, metric)
	}

	if old, ok := row[sample]; ok && old.Valid {
		return
	}
	row[sample] = v
}

// Get returns the cell for (metric, sample).
func (m *Matrix) Get(metric, sample string) null.String {
	return m.values[metric][sample]
}

// Concat appends the rows of o below m, keyed by metric name. Samples only
// present in o are added as new columns.
func (m *Matrix) Concat(o *Matrix) {
	for _, sample := range o.Samples {
		if _, exists := m.indexOf(m.Samples, sample); !exists {
			m.Samples = append(m.Samples, sample)
		}
	}

	for _, metric := range o.Metrics {
		for _, sample := range o.Samples {
			if v, ok := o.values[metric][sample]; ok {
				m.set(metric, sample, v)
			}
		}
	}
}

// Transpose turns samples into rows and metrics into columns.
func (m *Matrix) Transpose(index string) *Table {
	t := NewTable(index)
	t.RenameColumns(append([]string{}, m.Metrics...))

	for _, sample := range m.Samples {
		i := t.AddRow(sample)
		for j, metric := range m.Metrics {
			t.Cells[i][j] = m.values[metric][sample]
		}
	}

	return t
}

// BuildTable merges the Analysis Status and Library QC blocks into one
// sample-by-metric table.
func BuildTable(b Blocks) *Table {
	m := NewMatrix(b.Status)
	m.Concat(NewMatrix(b.Metrics))

	return m.Transpose(IndexName)
}
