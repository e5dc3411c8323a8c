/*
scheduler.go - Generic tiered weekly schedule algorithm

PURPOSE:
  All five family payments share one shape: a run of consecutive 7-day weeks
  starting at the pay start date, each week's gross computed as
  min(tierAmount, capForThatWeek) where the cap is the family weekly rate
  looked up BY THAT WEEK'S START DATE. A rate change effective mid-schedule
  (the April boundary) therefore applies from the week it takes effect, not
  retroactively.

TIER RULES:
  A tier rule decides, per week index, the amount before the cap and whether
  the cap applies at all. Maternity/adoption pay 90% of AWE uncapped for
  weeks 1-6 and capped from week 7; every other payment type is capped from
  week 1. Implementing the cap/rounding/date-stepping once avoids
  duplicating it five times.

ROUNDING:
  Every weekly figure is rounded to 2 decimals before summing; the total is
  the rounded sum of already-rounded weeks.

ELIGIBILITY:
  Checked once per calculation, not per week: continuous service of at least
  26 completed weeks at the reference week AND AWE at or above the Lower
  Earnings Limit at that date. Both checks run; both reasons are reported
  when both fail. The schedule is computed either way.
*/
package family

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

// MinServiceWeeks is the continuous service requirement at the reference
// week for every family payment type.
const MinServiceWeeks = 26

var ninetyPercent = statutory.MustMoney("0.90")

// tierRule returns the gross for a week before any cap, and whether the
// family weekly cap applies to that week. weekIdx is 0-based.
type tierRule func(weekIdx int, weeklyAt90 decimal.Decimal) (amount decimal.Decimal, capped bool)

// Calculator computes family payment schedules against an injected rate
// table. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates *statutory.RateTable
}

func NewCalculator(rates *statutory.RateTable) *Calculator {
	return &Calculator{rates: rates}
}

// calculate runs the shared algorithm for one payment type.
func (c *Calculator) calculate(paymentType statutory.PaymentType, in Input, weeks int, tier tierRule) (Result, error) {
	awe, err := statutory.AverageWeeklyEarnings(in.PayHistory, in.ReferenceWeekSaturday, statutory.RelevantPeriodWeeks)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Type:       paymentType,
		Eligible:   true,
		AWE:        awe.AWE,
		WeeklyAt90: statutory.Round2(awe.AWE.Mul(ninetyPercent)),
	}

	// Eligibility preconditions: both checks run, both reasons surface.
	elig := statutory.EligibilityResult{Eligible: true}
	if in.ServiceWeeks < MinServiceWeeks {
		elig.Fail(fmt.Sprintf("continuous service is %d completed weeks at the reference week; %d required",
			in.ServiceWeeks, MinServiceWeeks))
	}
	lel, err := c.rates.LowerEarningsLimit(in.ReferenceWeekSaturday)
	if err != nil {
		return Result{}, err
	}
	if awe.AWE.LessThan(lel) {
		elig.Fail(fmt.Sprintf("average weekly earnings %s below the lower earnings limit %s",
			awe.AWE.StringFixed(2), lel.StringFixed(2)))
	}
	result.Eligible = elig.Eligible
	result.Reasons = elig.Reasons

	// Week-by-week schedule. The cap is looked up by each week's start
	// date so an April rate change applies from the week it takes effect.
	total := decimal.Zero
	result.Schedule = make([]statutory.PaymentWeek, 0, weeks)
	for i := 0; i < weeks; i++ {
		start := in.PayStartDate.AddDays(7 * i)
		end := start.AddDays(6)

		cap, err := c.rates.FamilyWeeklyRate(start)
		if err != nil {
			return Result{}, err
		}

		amount, capped := tier(i, result.WeeklyAt90)
		capApplied := false
		if capped && amount.GreaterThan(cap) {
			amount = cap
			capApplied = true
		}
		gross := statutory.Round2(amount)

		result.Schedule = append(result.Schedule, statutory.PaymentWeek{
			Index:      i + 1,
			StartDate:  start,
			EndDate:    end,
			Gross:      gross,
			CapApplied: capApplied,
			RateUsed:   cap,
		})
		total = total.Add(gross)
	}
	result.Total = statutory.Round2(total)

	return result, nil
}

// clampWeeks bounds a claimant's chosen week count to the statutory range.
func clampWeeks(chosen, min, max int) int {
	if chosen < min {
		return min
	}
	if chosen > max {
		return max
	}
	return chosen
}
