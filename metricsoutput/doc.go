// Package metricsoutput flattens the sectioned MetricsOutput.tsv report
// written by the TSO500 local app into two sample-indexed tables, one for DNA
// libraries and one for RNA libraries, shaped for MultiQC custom content.
//
// The report is processed in a fixed sequence: lines are classified and
// grouped into sections, the Analysis Status block and the Library QC blocks
// are cut out and cleaned, merged into one metric-by-sample matrix and
// transposed, column labels are normalized, a contamination pass/fail column
// is derived, and finally the table is split by sample identifier.
//
// Missing values are carried internally as invalid null.String cells. The
// literal NA token is only recognized by ReplaceToken and only emitted by
// WriteTSV.
package metricsoutput
