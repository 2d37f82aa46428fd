package metricsoutput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Section anchors, matched as substrings of section names. Their order in the
// report is fixed.
const (
	AnchorAnalysisStatus = "Analysis Status"
	AnchorDNALibraryQC   = "DNA Library QC Metrics"
	AnchorDNAExpanded    = "DNA Expanded Metrics"
	AnchorRNALibraryQC   = "RNA Library QC Metrics"
	AnchorRNAExpanded    = "RNA Expanded Metrics"
)

var anchorOrder = []string{
	AnchorAnalysisStatus,
	AnchorDNALibraryQC,
	AnchorDNAExpanded,
	AnchorRNALibraryQC,
	AnchorRNAExpanded,
}

// Section is a named run of data rows, each already split on tabs.
type Section struct {
	Name string
	Rows [][]string
}

// ReadSections groups the data lines of a report under the section header
// that precedes them. Comments are skipped; data lines that follow a blank
// line, or that come before any header, belong to no section and are
// dropped.
func ReadSections(r io.Reader) ([]Section, error) {
	br := bufio.NewReader(r)

	sections := make([]Section, 0)
	current := ""

	for i := 0; ; i++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("report line %d: %w", i+1, err)
		}

		if line != "" {
			kind, name := ClassifyLine(line, current)
			switch kind {
			case LineSectionHeader:
				sections = append(sections, Section{Name: name})
			case LineData:
				if name != "" {
					last := &sections[len(sections)-1]
					last.Rows = append(last.Rows, strings.Split(strings.TrimRight(line, "\r\n"), "\t"))
				}
			}
			current = name
		}

		if err == io.EOF {
			break
		}
	}

	return sections, nil
}

// Blocks holds the raw rows of the two parts of the report that feed the
// metrics table.
type Blocks struct {
	// Status is the Analysis Status block.
	Status [][]string

	// Metrics holds the DNA and RNA Library QC blocks, without either
	// Expanded Metrics block.
	Metrics [][]string
}

type extractState int

const (
	seekingStatus extractState = iota
	collectingStatus
	collectingDNA
	skippingDNAExpanded
	collectingRNA
	extractDone
)

// LocateAnchors returns, for each anchor in report order, the index of the
// first section whose name contains it. A missing anchor, or one that comes
// before the anchor preceding it, is reported as an *AnchorError.
func LocateAnchors(sections []Section) ([]int, error) {
	positions := make([]int, len(anchorOrder))
	for k, anchor := range anchorOrder {
		positions[k] = -1
		for i, section := range sections {
			if strings.Contains(section.Name, anchor) {
				positions[k] = i
				break
			}
		}
		if positions[k] < 0 {
			return nil, &AnchorError{Anchor: anchor}
		}
	}

	for k := 1; k < len(positions); k++ {
		if positions[k] <= positions[k-1] {
			return nil, &AnchorError{Anchor: anchorOrder[k], After: anchorOrder[k-1]}
		}
	}

	return positions, nil
}

// ExtractBlocks collects the Analysis Status rows and the DNA and RNA Library
// QC rows, skipping both Expanded Metrics blocks and everything outside the
// anchored range, then cleans both blocks.
func ExtractBlocks(sections []Section) (Blocks, error) {
	positions, err := LocateAnchors(sections)
	if err != nil {
		return Blocks{}, err
	}

	var out Blocks

	state := seekingStatus
	for i, section := range sections {
		// Reaching the anchor for the current state moves us on to the next.
		if state != extractDone && i == positions[state] {
			state++
		}

		switch state {
		case collectingStatus:
			out.Status = append(out.Status, section.Rows...)
		case collectingDNA, collectingRNA:
			out.Metrics = append(out.Metrics, section.Rows...)
		}
	}

	out.Status = CleanStatusBlock(out.Status)
	out.Metrics = CleanMetricsBlock(out.Metrics)

	return out, nil
}

// Extract reads a report and returns its cleaned blocks.
func Extract(r io.Reader) (Blocks, error) {
	sections, err := ReadSections(r)
	if err != nil {
		return Blocks{}, err
	}

	return ExtractBlocks(sections)
}
