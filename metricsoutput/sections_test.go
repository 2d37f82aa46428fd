package metricsoutput

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// report joins lines with newlines and turns '|' into tabs.
func report(lines ...string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n")+"\n", "|", "\t")
}

func minimalReport() []string {
	return []string{
		"[Analysis Status]",
		"|S1-D|S1-R",
		"COMPLETED_ALL_STEPS|TRUE|TRUE",
		"",
		"[DNA Library QC Metrics]",
		"Metric (UOM)|LSL Guideline|USL Guideline|S1-D|S1-R",
		"CONTAMINATION_SCORE (NA)|NA|NA|10|NA",
		"CONTAMINATION_P_VALUE (NA)|NA|NA|0.5|NA",
		"[DNA Expanded Metrics]",
		"Metric (UOM)|S1-D|S1-R",
		"TOTAL_PF_READS (Count)|100|NA",
		"",
		"[RNA Library QC Metrics]",
		"Metric (UOM)|LSL Guideline|USL Guideline|S1-D|S1-R",
		"MEDIAN_INSERT_SIZE (Count)|80|NA|NA|140",
		"[RNA Expanded Metrics]",
		"Metric (UOM)|S1-D|S1-R",
		"TOTAL_PF_READS (Count)|NA|200",
	}
}

func without(lines []string, drop string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != drop {
			out = append(out, line)
		}
	}
	return out
}

func TestReadSections(t *testing.T) {
	in := report(
		"stray|line",
		"[Header]",
		"Output Date|2023-01-10",
		"# comment inside a section",
		"Software Version|2.2",
		"",
		"after|reset",
		"[Analysis Status]",
		"|S1",
		"[Empty]",
	)

	sections, err := ReadSections(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	expected := []Section{
		{Name: "Header", Rows: [][]string{{"Output Date", "2023-01-10"}, {"Software Version", "2.2"}}},
		{Name: "Analysis Status", Rows: [][]string{{"", "S1"}}},
		{Name: "Empty"},
	}

	if diff := cmp.Diff(expected, sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSectionsWithoutTrailingNewline(t *testing.T) {
	sections, err := ReadSections(strings.NewReader("[A]\r\nx\ty\r\nlast\tline"))
	if err != nil {
		t.Fatal(err)
	}

	expected := []Section{{Name: "A", Rows: [][]string{{"x", "y"}, {"last", "line"}}}}
	if diff := cmp.Diff(expected, sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractBlocks(t *testing.T) {
	blocks, err := Extract(strings.NewReader(report(minimalReport()...)))
	if err != nil {
		t.Fatal(err)
	}

	expectedStatus := [][]string{
		{"", "S1-D", "S1-R"},
		{"COMPLETED_ALL_STEPS", "TRUE", "TRUE"},
	}
	if diff := cmp.Diff(expectedStatus, blocks.Status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}

	expectedMetrics := [][]string{
		{"Metric (UOM)", "S1-D", "S1-R"},
		{"CONTAMINATION_SCORE (NA)", "10", "NA"},
		{"CONTAMINATION_P_VALUE (NA)", "0.5", "NA"},
		{"MEDIAN_INSERT_SIZE (Count)", "NA", "140"},
	}
	if diff := cmp.Diff(expectedMetrics, blocks.Metrics); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractBlocksMissingAnchor(t *testing.T) {
	for _, v := range []struct {
		drop   string
		anchor string
	}{
		{"[Analysis Status]", AnchorAnalysisStatus},
		{"[DNA Library QC Metrics]", AnchorDNALibraryQC},
		{"[DNA Expanded Metrics]", AnchorDNAExpanded},
		{"[RNA Library QC Metrics]", AnchorRNALibraryQC},
		{"[RNA Expanded Metrics]", AnchorRNAExpanded},
	} {
		_, err := Extract(strings.NewReader(report(without(minimalReport(), v.drop)...)))
		if !errors.Is(err, ErrSchema) {
			t.Errorf("Without %s: expected a schema error, got %v", v.drop, err)
			continue
		}

		var anchorErr *AnchorError
		if !errors.As(err, &anchorErr) || anchorErr.Anchor != v.anchor {
			t.Errorf("Without %s: expected the missing anchor to be %q, got %v", v.drop, v.anchor, err)
		}
	}
}

func TestExtractBlocksAnchorOutOfOrder(t *testing.T) {
	in := report(
		"[DNA Library QC Metrics]",
		"Metric (UOM)|S1-D",
		"[Analysis Status]",
		"|S1-D",
		"[DNA Expanded Metrics]",
		"[RNA Library QC Metrics]",
		"[RNA Expanded Metrics]",
	)

	_, err := Extract(strings.NewReader(in))

	var anchorErr *AnchorError
	if !errors.As(err, &anchorErr) {
		t.Fatalf("Expected an *AnchorError, got %v", err)
	}
	if anchorErr.Anchor != AnchorDNALibraryQC || anchorErr.After != AnchorAnalysisStatus {
		t.Errorf("Unexpected anchor error: %v", anchorErr)
	}
}

func TestExtractBlocksFirstAnchorWins(t *testing.T) {
	lines := minimalReport()
	lines = append(lines,
		"",
		"[Analysis Status]",
		"|S9-D",
		"COMPLETED_ALL_STEPS|FALSE",
	)

	blocks, err := Extract(strings.NewReader(report(lines...)))
	if err != nil {
		t.Fatal(err)
	}

	if len(blocks.Status) != 2 || blocks.Status[0][1] != "S1-D" {
		t.Errorf("Expected only the first Analysis Status block, got %v", blocks.Status)
	}
}

func TestExtractFixture(t *testing.T) {
	f, err := os.Open("testdata/MetricsOutput.tsv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	blocks, err := Extract(f)
	if err != nil {
		t.Fatal(err)
	}

	// One header line survives out of the four repeated ones.
	headers := 0
	for _, row := range blocks.Metrics {
		if row[0] == "Metric (UOM)" {
			headers++
		}
		for _, cell := range row {
			if strings.Contains(cell, "Guideline") {
				t.Errorf("Guideline column survived: %v", row)
			}
		}
		if row[0] == "TOTAL_PF_READS (Count)" {
			t.Errorf("Expanded Metrics row survived: %v", row)
		}
	}
	if headers != 1 {
		t.Errorf("Expected 1 header row in the metrics block, found %d", headers)
	}

	if n := len(blocks.Metrics); n != 11 {
		t.Errorf("Expected 11 metrics rows (1 header, 10 metrics), found %d", n)
	}

	// The status block's trailing tab produced an empty column that is gone.
	for _, row := range blocks.Status {
		if len(row) != 5 {
			t.Errorf("Expected 5 status cells, got %d: %q", len(row), row)
		}
	}
}
