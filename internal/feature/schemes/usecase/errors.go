// Package usecase implements the mutual fund scheme workflows.
package usecase

import "errors"

var (
	// ErrInvalidSchemeCode is returned when a scheme code is not a positive integer.
	ErrInvalidSchemeCode = errors.New("invalid scheme code")

	// ErrSchemeNotFound is returned by providers when no scheme exists for a code.
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrNoData is returned by providers when a scheme has no NAV history.
	ErrNoData = errors.New("no NAV data available")
)
