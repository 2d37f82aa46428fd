package metricsoutput

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema means the report does not have the expected layout: a
	// section anchor or a required column is missing or out of place.
	ErrSchema = errors.New("report does not match the expected MetricsOutput layout")

	// ErrHeaderShape means a metric label could not be normalized at all.
	ErrHeaderShape = errors.New("unexpected metric label")

	// ErrCoercion means a contamination value could not be read as a number.
	ErrCoercion = errors.New("contamination value is not numeric")
)

// AnchorError describes a section anchor that was not found where expected.
type AnchorError struct {
	Anchor string

	// After is set when Anchor was seen before the anchor that must precede
	// it.
	After string
}

func (e *AnchorError) Error() string {
	if e.After != "" {
		return fmt.Sprintf("section %q appears before section %q", e.Anchor, e.After)
	}

	return fmt.Sprintf("section %q not found", e.Anchor)
}

func (e *AnchorError) Unwrap() error { return ErrSchema }

// ColumnError describes a required metric column that is absent.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("required column %q not found", e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrSchema }

// CoercionError describes a cell that failed numeric parsing.
type CoercionError struct {
	Sample string
	Column string
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("sample %s: %s value %q: %v", e.Sample, e.Column, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() []error { return []error{ErrCoercion, e.Err} }
