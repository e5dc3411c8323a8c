/*
rates.go - Tax-year-keyed statutory rate table

PURPOSE:
  Holds the legally-defined weekly rates for each UK tax year and answers
  date-based lookups across the 6-April boundary. Exactly one rate set
  applies to any calendar date.

TAX YEAR BOUNDARY:
  A date on/after 6 April of year Y belongs to tax year "Y-(Y+1)"; a date
  before 6 April belongs to "(Y-1)-Y". So 2025-04-05 is in 2024-25 and
  2025-04-06 is in 2025-26.

UNKNOWN YEARS ARE FATAL:
  An unknown tax year is a configuration gap, not a user error. Lookups
  return UnknownTaxYearError rather than silently falling back to a stale
  rate, because a defaulted rate would misstate a legally-defined payment.

DEPLOYMENT:
  New tax years are appended at the start of each tax year, either by
  extending DefaultRateTable or via the config package's YAML rate file.
  The table is treated as versioned and effectively immutable at runtime.

SEE ALSO:
  - config/rates.go: YAML-driven rate table construction
  - awe.go: Consumes LowerEarningsLimit for eligibility checks
*/
package statutory

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TAX YEAR - "2024-25" style identifier keyed on the 6 April boundary
// =============================================================================

type TaxYear string

// TaxYearFor returns the tax year a date falls in.
func TaxYearFor(d Date) TaxYear {
	start := d.Year()
	if d.Before(NewDate(start, time.April, 6)) {
		start--
	}
	return TaxYearID(start)
}

// TaxYearID builds the identifier for the tax year starting 6 April of the
// given calendar year, e.g. TaxYearID(2024) == "2024-25".
func TaxYearID(startYear int) TaxYear {
	return TaxYear(fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100))
}

// =============================================================================
// STATUTORY RATES - One row per tax year
// =============================================================================

// StatutoryRates are the weekly statutory figures for a single tax year.
type StatutoryRates struct {
	// FamilyWeekly is the weekly cap for SMP/SAP/SPP/ShPP/SPBP.
	FamilyWeekly decimal.Decimal

	// SSPWeekly is the weekly SSP rate, divided by qualifying days per week
	// to produce a daily rate.
	SSPWeekly decimal.Decimal

	// LELWeekly is the Lower Earnings Limit; AWE below this makes an
	// employee ineligible for most statutory payments.
	LELWeekly decimal.Decimal
}

// =============================================================================
// RATE TABLE - Explicit, injectable configuration value
// =============================================================================

// RateTable maps tax years to their statutory rates. It is an explicit value
// injected into the calculators so "current rates" is never ambient state.
type RateTable struct {
	rates map[TaxYear]StatutoryRates
}

// NewRateTable builds a table from the given rows. The map is copied.
func NewRateTable(rows map[TaxYear]StatutoryRates) *RateTable {
	rates := make(map[TaxYear]StatutoryRates, len(rows))
	for year, row := range rows {
		rates[year] = row
	}
	return &RateTable{rates: rates}
}

// DefaultRateTable returns the compiled-in rates. Updated each April.
func DefaultRateTable() *RateTable {
	return NewRateTable(map[TaxYear]StatutoryRates{
		"2024-25": {
			FamilyWeekly: MustMoney("184.03"),
			SSPWeekly:    MustMoney("116.75"),
			LELWeekly:    MustMoney("123.00"),
		},
		"2025-26": {
			FamilyWeekly: MustMoney("187.18"),
			SSPWeekly:    MustMoney("118.75"),
			LELWeekly:    MustMoney("125.00"),
		},
	})
}

// Years returns the configured tax years, sorted ascending.
func (rt *RateTable) Years() []TaxYear {
	years := make([]TaxYear, 0, len(rt.rates))
	for year := range rt.rates {
		years = append(years, year)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

// RatesForYear returns the rates for a tax year. An unknown year is a
// configuration gap and aborts the calculation.
func (rt *RateTable) RatesForYear(year TaxYear) (StatutoryRates, error) {
	rates, ok := rt.rates[year]
	if !ok {
		return StatutoryRates{}, &UnknownTaxYearError{Year: year}
	}
	return rates, nil
}

// RatesOn returns the rates in force on a calendar date.
func (rt *RateTable) RatesOn(d Date) (StatutoryRates, error) {
	return rt.RatesForYear(TaxYearFor(d))
}

// =============================================================================
// CONVENIENCE ACCESSORS - Same date-based dispatch
// =============================================================================

func (rt *RateTable) FamilyWeeklyRate(d Date) (decimal.Decimal, error) {
	rates, err := rt.RatesOn(d)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rates.FamilyWeekly, nil
}

func (rt *RateTable) SSPWeeklyRate(d Date) (decimal.Decimal, error) {
	rates, err := rt.RatesOn(d)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rates.SSPWeekly, nil
}

func (rt *RateTable) LowerEarningsLimit(d Date) (decimal.Decimal, error) {
	rates, err := rt.RatesOn(d)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rates.LELWeekly, nil
}
