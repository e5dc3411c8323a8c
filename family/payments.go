/*
payments.go - Per-payment-type tier rules

PURPOSE:
  Supplies each statutory family payment's parameters to the shared
  scheduler:

  Maternity / Adoption:      39 weeks; weeks 1-6 pay 90% of AWE uncapped,
                             weeks 7-39 pay min(90% of AWE, cap).
  Paternity:                 1-2 weeks chosen by the claimant; every week
                             pays min(90% of AWE, cap).
  Parental Bereavement:      1-2 weeks; same tier as paternity.
  Shared Parental:           1-37 weeks (clamped); every week capped.

SEE ALSO:
  - scheduler.go: The shared cap/rounding/date-stepping algorithm
*/
package family

import (
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

const (
	maternityWeeks    = 39
	uncappedWeeks     = 6 // weeks 1-6 of maternity/adoption pay 90% AWE uncapped
	paternityMaxWeeks = 2
	sharedMaxWeeks    = 37
	bereavementWeeks  = 2
)

// maternityTier: 90% of AWE throughout, uncapped for the first 6 weeks.
func maternityTier(weekIdx int, weeklyAt90 decimal.Decimal) (decimal.Decimal, bool) {
	return weeklyAt90, weekIdx >= uncappedWeeks
}

// cappedTier: min(90% of AWE, cap) for every week.
func cappedTier(_ int, weeklyAt90 decimal.Decimal) (decimal.Decimal, bool) {
	return weeklyAt90, true
}

// Maternity computes a 39-week Statutory Maternity Pay schedule.
func (c *Calculator) Maternity(in Input) (Result, error) {
	result, err := c.calculate(statutory.PaymentMaternity, in, maternityWeeks, maternityTier)
	if err != nil {
		return Result{}, err
	}
	result.First6Total, result.Remaining33Total = splitTotals(result.Schedule)
	return result, nil
}

// Adoption computes a 39-week Statutory Adoption Pay schedule. The tier
// rules are identical to maternity; the reference week is the matching week.
func (c *Calculator) Adoption(in Input) (Result, error) {
	result, err := c.calculate(statutory.PaymentAdoption, in, maternityWeeks, maternityTier)
	if err != nil {
		return Result{}, err
	}
	result.First6Total, result.Remaining33Total = splitTotals(result.Schedule)
	return result, nil
}

// Paternity computes a Statutory Paternity Pay schedule of 1 or 2 weeks.
func (c *Calculator) Paternity(in Input) (Result, error) {
	weeks := clampWeeks(in.WeeksChosen, 1, paternityMaxWeeks)
	return c.calculate(statutory.PaymentPaternity, in, weeks, cappedTier)
}

// SharedParental computes a Statutory Shared Parental Pay schedule of 1-37
// weeks, clamping the claimant's choice to that range.
func (c *Calculator) SharedParental(in Input) (Result, error) {
	weeks := clampWeeks(in.WeeksChosen, 1, sharedMaxWeeks)
	return c.calculate(statutory.PaymentSharedParental, in, weeks, cappedTier)
}

// ParentalBereavement computes a Statutory Parental Bereavement Pay
// schedule of 1 or 2 weeks.
func (c *Calculator) ParentalBereavement(in Input) (Result, error) {
	weeks := clampWeeks(in.WeeksChosen, 1, bereavementWeeks)
	return c.calculate(statutory.PaymentParentalBereavement, in, weeks, cappedTier)
}

// splitTotals sums the already-rounded weekly figures into the 6-week and
// 33-week tier totals for maternity/adoption.
func splitTotals(schedule []statutory.PaymentWeek) (first6, remaining33 decimal.Decimal) {
	first6 = decimal.Zero
	remaining33 = decimal.Zero
	for _, week := range schedule {
		if week.Index <= uncappedWeeks {
			first6 = first6.Add(week.Gross)
		} else {
			remaining33 = remaining33.Add(week.Gross)
		}
	}
	return statutory.Round2(first6), statutory.Round2(remaining33)
}
