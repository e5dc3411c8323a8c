/*
Package holiday implements the contractual holiday pay calculator.

PURPOSE:
  Computes a daily holiday-pay rate and the amount for a leave period, for
  salaried or hourly employees.

BASIS SELECTION (priority chain):
  1. AnnualSalary > 0                 -> salaried
     dailyRate = annualSalary / (52.14285714 * 5)
  2. HourlyRate > 0 && HoursPerWeek>0 -> hourly
     dailyRate = hourlyRate * hoursPerWeek / 5
  3. otherwise                        -> unknown, rate 0

  daysOfLeave <= 0 short-circuits to a zero-amount, zero-rate result with
  basis unknown regardless of available salary data.

ROUNDING:
  The amount is the unrounded daily rate times days, rounded to 2 decimals;
  the reported daily rate is rounded separately. (26000 salary over 5 days:
  rate 99.73, amount 498.63, not 498.65.)
*/
package holiday

import (
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

// Basis identifies which pay figure a holiday rate was derived from.
type Basis string

const (
	BasisSalaried Basis = "salaried"
	BasisHourly   Basis = "hourly"
	BasisUnknown  Basis = "unknown"
)

// 52.14285714 weeks/year (365 / 7) over a 5-day working week.
var (
	weeksPerYear = statutory.MustMoney("52.14285714")
	daysPerWeek  = statutory.MustMoney("5")
)

// Input carries the values for a holiday pay calculation. PeriodStart,
// PeriodEnd, and Frequency are caller metadata echoed into the result.
type Input struct {
	AnnualSalary decimal.Decimal
	HourlyRate   decimal.Decimal
	HoursPerWeek decimal.Decimal
	DaysOfLeave  decimal.Decimal

	PeriodStart statutory.Date
	PeriodEnd   statutory.Date
	Frequency   string
}

// Result is the outcome of a holiday pay calculation.
type Result struct {
	Amount    decimal.Decimal
	DailyRate decimal.Decimal
	Basis     Basis

	PeriodStart statutory.Date
	PeriodEnd   statutory.Date
	Frequency   string
}

// Calculate computes holiday pay for a leave period. Degenerate inputs
// (no leave days, no pay basis) produce explicit zero results, never errors.
func Calculate(in Input) Result {
	result := Result{
		Basis:       BasisUnknown,
		Amount:      decimal.Zero,
		DailyRate:   decimal.Zero,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Frequency:   in.Frequency,
	}

	// Deliberate early return: zero leave days is a zero result whatever
	// salary data is supplied.
	if !in.DaysOfLeave.IsPositive() {
		return result
	}

	var rate decimal.Decimal
	switch {
	case in.AnnualSalary.IsPositive():
		result.Basis = BasisSalaried
		rate = in.AnnualSalary.Div(weeksPerYear.Mul(daysPerWeek))
	case in.HourlyRate.IsPositive() && in.HoursPerWeek.IsPositive():
		result.Basis = BasisHourly
		rate = in.HourlyRate.Mul(in.HoursPerWeek).Div(daysPerWeek)
	default:
		return result
	}

	result.Amount = statutory.Round2(rate.Mul(in.DaysOfLeave))
	result.DailyRate = statutory.Round2(rate)
	return result
}
