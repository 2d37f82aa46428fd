package metricsoutput

import (
	"regexp"
	"strings"
)

// LineKind is the role a raw report line plays.
type LineKind int

const (
	// LineData is a tab-separated row belonging to the current section.
	LineData LineKind = iota
	// LineComment starts with '#'.
	LineComment
	// LineReset is empty or whitespace-only and clears the current section.
	LineReset
	// LineSectionHeader looks like [Section Name].
	LineSectionHeader
)

func (k LineKind) String() string {
	switch k {
	case LineData:
		return "Data"
	case LineComment:
		return "Comment"
	case LineReset:
		return "Reset"
	case LineSectionHeader:
		return "SectionHeader"
	}

	return "Unknown"
}

var sectionHeaderPattern = regexp.MustCompile(`^\[(.*)\]\s*$`)

// ClassifyLine reports the kind of line and the section name in effect once
// the line has been consumed. current is the section name in effect before
// the line; an empty name means data lines are to be ignored.
func ClassifyLine(line, current string) (LineKind, string) {
	line = strings.TrimRight(line, "\r\n")

	if strings.HasPrefix(line, "#") {
		return LineComment, current
	}

	if strings.TrimSpace(line) == "" {
		return LineReset, ""
	}

	if m := sectionHeaderPattern.FindStringSubmatch(line); m != nil {
		return LineSectionHeader, m[1]
	}

	return LineData, current
}

// isSectionHeader reports whether a single cell looks like a [Section] marker.
func isSectionHeader(cell string) bool {
	return sectionHeaderPattern.MatchString(cell)
}
