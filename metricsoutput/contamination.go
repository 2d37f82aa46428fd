package metricsoutput

import (
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

const (
	ContaminationScoreColumn   = "CONTAMINATION_SCORE"
	ContaminationPValueColumn  = "CONTAMINATION_P_VALUE"
	ContaminationSummaryColumn = "CONTAMINATION_SUMMARY"

	// A library is flagged as contaminated only when both values exceed
	// their threshold.
	ContaminationScoreThreshold  = 3106.0
	ContaminationPValueThreshold = 0.049

	// MissingToken is how the report, and our output, spell a missing value.
	MissingToken = "NA"
)

// Assessment is the contamination call for one sample.
type Assessment struct {
	Sample string
	Score  null.Float
	PValue null.Float

	// Pass is true for a clean library, false for a contaminated one, and
	// invalid when either input value is missing.
	Pass null.Bool
}

// Contaminated reports whether the sample was assessed and flagged.
func (a Assessment) Contaminated() bool {
	return a.Pass.Valid && !a.Pass.Bool
}

// Assess applies the contamination thresholds. Both comparisons are strict.
func Assess(score, pValue null.Float) null.Bool {
	if !score.Valid || !pValue.Valid {
		return null.Bool{}
	}

	flagged := score.Float64 > ContaminationScoreThreshold && pValue.Float64 > ContaminationPValueThreshold

	return null.BoolFrom(!flagged)
}

// ClassifyContamination marks every NA cell in the table as missing, parses
// the contamination score and p-value columns, and fills in the
// CONTAMINATION_SUMMARY column. Any value that is present but not numeric
// aborts classification with a *CoercionError.
func ClassifyContamination(t *Table) ([]Assessment, error) {
	t.ReplaceToken(MissingToken)

	scores, err := floatColumn(t, ContaminationScoreColumn)
	if err != nil {
		return nil, err
	}

	pValues, err := floatColumn(t, ContaminationPValueColumn)
	if err != nil {
		return nil, err
	}

	j := t.AddColumn(ContaminationSummaryColumn)

	out := make([]Assessment, 0, t.Len())
	for i, sample := range t.Rows {
		a := Assessment{
			Sample: sample,
			Score:  scores[i],
			PValue: pValues[i],
			Pass:   Assess(scores[i], pValues[i]),
		}

		t.Cells[i][j] = null.String{}
		if a.Pass.Valid {
			t.Cells[i][j] = null.StringFrom(FormatBool(a.Pass.Bool))
		}

		out = append(out, a)
	}

	return out, nil
}

// FormatBool spells booleans the way the downstream MultiQC tables expect.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// floatColumn parses one column. Missing cells and NaN stay missing.
func floatColumn(t *Table, name string) ([]null.Float, error) {
	cells, ok := t.Column(name)
	if !ok {
		return nil, &ColumnError{Column: name}
	}

	out := make([]null.Float, len(cells))
	for i, cell := range cells {
		if !cell.Valid {
			continue
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(cell.String), 64)
		if err != nil {
			return nil, &CoercionError{Sample: t.Rows[i], Column: name, Value: cell.String, Err: err}
		}

		if !math.IsNaN(f) {
			out[i] = null.FloatFrom(f)
		}
	}

	return out, nil
}

// ContaminationSummary describes the contamination calls of a run.
type ContaminationSummary struct {
	Assessed    int
	Flagged     []string
	MedianScore float64
	MaxScore    float64
}

// SummarizeContamination aggregates assessments for reporting. Score
// statistics are zero when no sample could be assessed.
func SummarizeContamination(assessments []Assessment) (ContaminationSummary, error) {
	out := ContaminationSummary{Flagged: make([]string, 0)}

	scores := make(stats.Float64Data, 0, len(assessments))
	for _, a := range assessments {
		if !a.Pass.Valid {
			continue
		}
		out.Assessed++
		scores = append(scores, a.Score.Float64)
		if a.Contaminated() {
			out.Flagged = append(out.Flagged, a.Sample)
		}
	}

	if len(scores) == 0 {
		return out, nil
	}

	var err error
	if out.MedianScore, err = stats.Median(scores); err != nil {
		return out, err
	}
	if out.MaxScore, err = stats.Max(scores); err != nil {
		return out, err
	}

	return out, nil
}
