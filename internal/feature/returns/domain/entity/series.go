// Package entity defines the domain models for the yearly returns feature.
package entity

import (
	"fmt"
	"sort"
)

// Observation is a single point of a price or NAV series.
type Observation struct {
	Date  string // DD-MM-YYYY (e.g., "01-04-2023")
	Value any    // numeric or numeric string as delivered by the provider
}

// Series is an ordered list of observations. The slice order is the
// iteration order used when picking the first and last value of a year.
type Series []Observation

// YearlyReturns maps a calendar year to its percentage return.
type YearlyReturns map[int]float64

// Years returns the years present in r in ascending order.
func (r YearlyReturns) Years() []int {
	years := make([]int, 0, len(r))
	for y := range r {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DiagnosticKind classifies why an observation or a year was left out of the result.
type DiagnosticKind string

const (
	DiagnosticInvalidDate      DiagnosticKind = "invalid_date"
	DiagnosticInvalidValue     DiagnosticKind = "invalid_value"
	DiagnosticInsufficientData DiagnosticKind = "insufficient_data"
	DiagnosticZeroBaseValue    DiagnosticKind = "zero_base_value"
	DiagnosticNonFiniteReturn  DiagnosticKind = "non_finite_return"
)

// Diagnostic records an entry or a year that was skipped.
type Diagnostic struct {
	Kind DiagnosticKind
	Date string // set for per-entry diagnostics
	Year int    // set for per-year diagnostics
	Err  error
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticInvalidDate, DiagnosticInvalidValue:
		return fmt.Sprintf("%s: %s: %v", d.Kind, d.Date, d.Err)
	default:
		return fmt.Sprintf("%s: %d: %v", d.Kind, d.Year, d.Err)
	}
}
