/*
errors.go - Centralized error types for the statutory engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages (family, ssp) return these directly or wrapped.

ERROR TAXONOMY:
  1. Malformed input  - bad date strings, invalid window/day counts.
     Fail fast with a descriptive error; no partial schedule is returned.
  2. Configuration gap - unknown tax year. Fatal for the calculation;
     never defaulted, since a stale rate misstates a legal payment.
  3. Ineligibility is NOT an error. It is data (EligibilityResult) and the
     schedule is still computed so callers can show "would have been paid
     X, but is ineligible because Y".

USAGE:
  if statutory.IsClientError(err) { respond 400 } else { respond 500 }
*/
package statutory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownTaxYear is returned when the rate table has no row for the
	// tax year a date falls in. The table must be kept current; silently
	// regressing to a stale rate is never acceptable.
	ErrUnknownTaxYear = errors.New("unknown tax year")

	// ErrInvalidDate is returned when a date string fails to parse.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidWindow is returned for a non-positive AWE window length.
	ErrInvalidWindow = errors.New("AWE window must be a positive number of weeks")

	// ErrInvalidQualifyingDays is returned when qualifying days per week is
	// outside 1..7.
	ErrInvalidQualifyingDays = errors.New("qualifying days per week must be between 1 and 7")

	// ErrScheduleNotFound is returned by schedule stores when no persisted
	// schedule matches the key.
	ErrScheduleNotFound = errors.New("schedule not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownTaxYearError reports a rate lookup for an unconfigured tax year.
type UnknownTaxYearError struct {
	Year TaxYear
}

func (e *UnknownTaxYearError) Error() string {
	return fmt.Sprintf("no statutory rates configured for tax year %s", e.Year)
}

func (e *UnknownTaxYearError) Unwrap() error { return ErrUnknownTaxYear }

// InvalidDateError reports a date string that failed to parse.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected %s", e.Input, DateLayout)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidQualifyingDays)
}

// IsConfigError returns true if the error indicates a rate table gap.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownTaxYear)
}
