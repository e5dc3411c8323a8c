// Package family implements the statutory family payment scheduler: one
// tiered weekly schedule algorithm shared by Maternity, Adoption, Paternity,
// Shared Parental, and Parental Bereavement pay, parameterized per payment
// type by a tier rule and a week count.
package family

import (
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

// =============================================================================
// INPUT - Caller-supplied values for a family payment calculation
// =============================================================================

// Input carries the values a family payment calculation needs. The absence
// source is responsible for business-rule validation (overlaps etc.); the
// engine only computes.
type Input struct {
	// PayHistory feeds the AWE calculation over the 8-week relevant period
	// ending at the reference week Saturday.
	PayHistory []statutory.PayItem

	// ReferenceWeekSaturday is the Saturday of the qualifying week
	// (maternity/paternity), matching week (adoption), or relevant week
	// (shared parental / parental bereavement).
	ReferenceWeekSaturday statutory.Date

	// PayStartDate is the first day of the first payment week.
	PayStartDate statutory.Date

	// ServiceWeeks is the completed weeks of continuous service at the
	// reference week.
	ServiceWeeks int

	// WeeksChosen is the claimant's chosen week count for paternity,
	// shared parental, and parental bereavement pay. Ignored for
	// maternity/adoption. Clamped to the statutory range per payment type.
	WeeksChosen int
}

// =============================================================================
// RESULT - Immutable snapshot of a family payment calculation
// =============================================================================

// Result is the outcome of a family payment calculation. The schedule is
// always computed, even when ineligible, so callers can show what would
// have been paid.
type Result struct {
	Type     statutory.PaymentType
	Eligible bool
	Reasons  []string

	AWE        decimal.Decimal // average weekly earnings at the reference week
	WeeklyAt90 decimal.Decimal // 90% of AWE, rounded to 2 decimals

	Schedule []statutory.PaymentWeek
	Total    decimal.Decimal

	// First6Total and Remaining33Total are populated for maternity and
	// adoption only (the 6-week/33-week tier split).
	First6Total      decimal.Decimal
	Remaining33Total decimal.Decimal
}

// PeriodStart returns the first day of the schedule.
func (r Result) PeriodStart() statutory.Date {
	if len(r.Schedule) == 0 {
		return statutory.Date{}
	}
	return r.Schedule[0].StartDate
}

// PeriodEnd returns the last day of the schedule.
func (r Result) PeriodEnd() statutory.Date {
	if len(r.Schedule) == 0 {
		return statutory.Date{}
	}
	return r.Schedule[len(r.Schedule)-1].EndDate
}
