/*
Package ssp implements the Statutory Sick Pay engine.

PURPOSE:
  Builds linked Periods of Incapacity for Work from a list of qualifying
  sick days and produces a day-by-day payable schedule.

ALGORITHM (state machine over the sorted, de-duplicated day list):
  1. PIW construction: maximal consecutive runs of at least 4 days. Days in
     shorter runs are reported payable=false with note "below PIW length".
  2. Spell linking: PIWs with gaps of at most 56 days share one spell.
  3. Waiting days: the first 3 qualifying days of each spell (across its
     PIWs, in date order) are unpaid.
  4. Payable days: subsequent days pay sspWeeklyRate(date)/qualifyingDays,
     rounded to 2 decimals, until the cumulative paid-day count reaches
     28 weeks' worth; after that every day is "cap reached".
  5. Eligibility: AWE over the 8-week window ending the day before the
     first sick day must reach the Lower Earnings Limit. The schedule is
     computed even when ineligible; it simply will not be paid.

ORDERING:
  The schedule is emitted in ascending date order matching the
  de-duplicated, sorted input: one entry per distinct qualifying day.

SEE ALSO:
  - piw.go: PIW construction and spell linking
  - statutory/awe.go: The shared AWE algorithm
*/
package ssp

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

const (
	// WaitingDays is the number of unpaid waiting days served per linked
	// spell before SSP becomes payable.
	WaitingDays = 3

	// MaxPayableWeeks caps SSP at 28 weeks; the day cap is
	// MaxPayableWeeks * qualifyingDaysPerWeek.
	MaxPayableWeeks = 28
)

// Schedule notes for unpayable days.
const (
	NoteWaitingDay     = "waiting day"
	NoteBelowPIWLength = "below PIW length"
	NoteCapReached     = "cap reached"
)

// Result is the outcome of an SSP calculation.
type Result struct {
	Eligible bool
	Reasons  []string

	AWE decimal.Decimal // 8-week average ending the day before first sickness

	DaysInPIWs        int // qualifying days that made it into a PIW
	WaitingDaysServed int
	DaysPaid          int
	Total             decimal.Decimal

	CapDays    int // 28 weeks * qualifying days per week
	CapApplied bool

	Schedule []statutory.PaymentDay
}

// Calculator computes SSP schedules against an injected rate table. It
// holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates *statutory.RateTable
}

func NewCalculator(rates *statutory.RateTable) *Calculator {
	return &Calculator{rates: rates}
}

// Calculate produces the day-by-day SSP schedule for the given qualifying
// sick days. firstSickDay anchors the AWE reference date (the day before it).
func (c *Calculator) Calculate(payHistory []statutory.PayItem, firstSickDay statutory.Date, sickDays []statutory.Date, qualifyingDaysPerWeek int) (Result, error) {
	if qualifyingDaysPerWeek < 1 || qualifyingDaysPerWeek > 7 {
		return Result{}, fmt.Errorf("%w: got %d", statutory.ErrInvalidQualifyingDays, qualifyingDaysPerWeek)
	}

	days := normalizeDays(sickDays)
	piws, excluded := buildPIWs(days)
	spells := linkSpells(piws)

	result := Result{
		Eligible: true,
		CapDays:  MaxPayableWeeks * qualifyingDaysPerWeek,
	}

	// Eligibility: AWE against LEL at the day before the first sick day.
	reference := firstSickDay.AddDays(-1)
	awe, err := statutory.AverageWeeklyEarnings(payHistory, reference, statutory.RelevantPeriodWeeks)
	if err != nil {
		return Result{}, err
	}
	result.AWE = awe.AWE
	lel, err := c.rates.LowerEarningsLimit(reference)
	if err != nil {
		return Result{}, err
	}
	elig := statutory.EligibilityResult{Eligible: true}
	if awe.AWE.LessThan(lel) {
		elig.Fail(fmt.Sprintf("average weekly earnings %s below the lower earnings limit %s",
			awe.AWE.StringFixed(2), lel.StringFixed(2)))
	}
	result.Eligible = elig.Eligible
	result.Reasons = elig.Reasons

	// Day statuses keyed by date string; the schedule is emitted afterwards
	// in input order so short-run days slot back in at the right place.
	entries := make(map[string]statutory.PaymentDay, len(days))
	for _, d := range excluded {
		entries[d.String()] = statutory.PaymentDay{Date: d, Note: NoteBelowPIWLength}
	}

	qdpw := decimal.NewFromInt(int64(qualifyingDaysPerWeek))
	total := decimal.Zero
	for _, spell := range spells {
		served := 0
		for _, piw := range spell {
			result.DaysInPIWs += len(piw.Days)
			for _, d := range piw.Days {
				entry := statutory.PaymentDay{Date: d}
				switch {
				case served < WaitingDays:
					served++
					entry.WaitingDay = true
					entry.Note = NoteWaitingDay
				case result.DaysPaid >= result.CapDays:
					result.CapApplied = true
					entry.Note = NoteCapReached
				default:
					rate, err := c.rates.SSPWeeklyRate(d)
					if err != nil {
						return Result{}, err
					}
					entry.Payable = true
					entry.Gross = statutory.Round2(rate.Div(qdpw))
					total = total.Add(entry.Gross)
					result.DaysPaid++
				}
				entries[d.String()] = entry
			}
		}
		result.WaitingDaysServed += served
	}
	result.Total = statutory.Round2(total)

	result.Schedule = make([]statutory.PaymentDay, 0, len(days))
	for _, d := range days {
		result.Schedule = append(result.Schedule, entries[d.String()])
	}

	return result, nil
}
