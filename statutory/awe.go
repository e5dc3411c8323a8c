/*
awe.go - Average Weekly Earnings calculation

PURPOSE:
  Computes the wage-history average that sizes every statutory payment.
  One algorithm serves both reference-date conventions:
  - family payments: the qualifying/matching week Saturday
  - SSP: the day before the first day of sickness

WINDOW:
  Pay items dated within [referenceDate - (windowWeeks*7 - 1) days,
  referenceDate] inclusive are summed and divided by windowWeeks. The
  standard relevant period is 8 weeks (RelevantPeriodWeeks).

EMPTY WINDOWS:
  A new starter with no pay history is legitimate: the result is AWE 0 with
  a warning, never an error. Downstream eligibility reads a zero AWE as
  "below the Lower Earnings Limit" and reports it as an ineligibility
  reason, not a crash.
*/
package statutory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RelevantPeriodWeeks is the AWE window length used by every statutory
// calculation: the eight-week relevant period ending at the reference date.
const RelevantPeriodWeeks = 8

// AWEResult is the outcome of an AWE calculation. Computed fresh per call
// and never mutated afterwards.
type AWEResult struct {
	AWE           decimal.Decimal // weekly average, rounded to 2 decimals
	ReferenceDate Date
	WindowItems   []PayItem // the items that fell inside the window, ascending
	Warnings      []string
}

// AverageWeeklyEarnings computes the weekly average of the gross pay items
// falling in the windowWeeks-week window ending at referenceDate.
func AverageWeeklyEarnings(payHistory []PayItem, referenceDate Date, windowWeeks int) (AWEResult, error) {
	if windowWeeks <= 0 {
		return AWEResult{}, fmt.Errorf("%w: %d weeks", ErrInvalidWindow, windowWeeks)
	}

	windowStart := referenceDate.AddDays(-(windowWeeks*7 - 1))

	var items []PayItem
	total := decimal.Zero
	for _, item := range payHistory {
		if item.PaidOn.Before(windowStart) || item.PaidOn.After(referenceDate) {
			continue
		}
		items = append(items, item)
		total = total.Add(item.Gross)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PaidOn.Before(items[j].PaidOn) })

	result := AWEResult{ReferenceDate: referenceDate, WindowItems: items}
	if len(items) == 0 {
		result.AWE = decimal.Zero
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"no pay items in the %d-week window ending %s", windowWeeks, referenceDate))
		return result, nil
	}

	result.AWE = Round2(total.Div(decimal.NewFromInt(int64(windowWeeks))))
	return result, nil
}
