/*
Package statutory provides the core UK statutory payment calculation types.

PURPOSE:
  This package contains the shared value types and algorithms underneath every
  statutory calculation: the validated day-granularity Date, the tax-year-keyed
  rate table, the Average Weekly Earnings calculator, and the schedule line
  types that the family payment, SSP, and holiday pay engines emit.

KEY CONCEPTS IN THIS FILE (types.go):
  - PayItem: A historical gross pay record (AWE input)
  - PaymentWeek / PaymentDay: Immutable schedule line entries
  - EligibilityResult: Accumulated (not short-circuited) eligibility reasons
  - PaymentType: Identifies which statutory element a schedule belongs to

DESIGN PRINCIPLES:
  1. Immutability: Every calculation is a pure function of its inputs; results
     are snapshots, never live objects
  2. Precision: Uses decimal.Decimal to avoid floating-point errors; statutory
     amounts are rounded to 2 decimals per week/day, not just at the total
  3. No ambient state: The rate table is injected and the clock is an argument,
     so every calculation is deterministic and safely concurrent

USAGE:
  rates := statutory.DefaultRateTable()
  awe, err := statutory.AverageWeeklyEarnings(history, refDate, statutory.RelevantPeriodWeeks)

SEE ALSO:
  - rates.go: Tax-year-keyed statutory rate table
  - awe.go: Average Weekly Earnings calculation
  - date.go: Validated date value type
*/
package statutory

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Rounding convention
// =============================================================================

// Round2 rounds a money amount to 2 decimal places (half away from zero),
// the conventional payroll rounding applied at each step of a schedule.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// MustMoney parses a money literal. Panics on malformed input; intended for
// compiled-in rate values and tests only.
func MustMoney(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// PAY HISTORY - Input to the AWE calculation
// =============================================================================

// PayItem is a historical pay record supplied by the pay-history provider.
// It has no identity beyond its date and amount.
type PayItem struct {
	PaidOn Date
	Gross  decimal.Decimal
}

// =============================================================================
// SCHEDULE LINES - Immutable snapshot entries
// =============================================================================

// PaymentWeek is one line of a family payment schedule: a 7-day week with
// the gross payable for that week and the weekly rate in force at its start.
type PaymentWeek struct {
	Index      int // 1-based
	StartDate  Date
	EndDate    Date
	Gross      decimal.Decimal
	CapApplied bool
	RateUsed   decimal.Decimal // family weekly rate in force at StartDate
}

// PaymentDay is one line of an SSP schedule: a single qualifying sick day
// with its payable status and, where unpaid, the reason.
type PaymentDay struct {
	Date       Date
	Payable    bool
	WaitingDay bool
	Gross      decimal.Decimal
	Note       string
}

// =============================================================================
// ELIGIBILITY - Reasons accumulate, they never short-circuit
// =============================================================================

// EligibilityResult reports every failed eligibility check at once so a
// caller can show all of them, not just the first.
type EligibilityResult struct {
	Eligible bool
	Reasons  []string
}

// Fail records a failed check. Further checks still run.
func (e *EligibilityResult) Fail(reason string) {
	e.Eligible = false
	e.Reasons = append(e.Reasons, reason)
}

// =============================================================================
// PAYMENT TYPES - Statutory elements a schedule can belong to
// =============================================================================

type PaymentType string

const (
	PaymentMaternity           PaymentType = "maternity"
	PaymentAdoption            PaymentType = "adoption"
	PaymentPaternity           PaymentType = "paternity"
	PaymentSharedParental      PaymentType = "shared_parental"
	PaymentParentalBereavement PaymentType = "parental_bereavement"
	PaymentSSP                 PaymentType = "ssp"
	PaymentHoliday             PaymentType = "holiday"
)

// ElementCode returns the payroll element code used when persisting a
// schedule for this payment type.
func (p PaymentType) ElementCode() string {
	switch p {
	case PaymentMaternity:
		return "SMP"
	case PaymentAdoption:
		return "SAP"
	case PaymentPaternity:
		return "SPP"
	case PaymentSharedParental:
		return "SHPP"
	case PaymentParentalBereavement:
		return "SPBP"
	case PaymentSSP:
		return "SSP"
	case PaymentHoliday:
		return "HOL"
	default:
		return string(p)
	}
}
