/*
piw.go - Periods of Incapacity for Work and spell linking

PURPOSE:
  Turns a sorted, de-duplicated list of qualifying sick days into the legal
  structures SSP is paid against:

  PIW:          A maximal run of consecutive qualifying sick days of length
                at least 4. Shorter runs never enter a PIW; their days are
                reported in the schedule as unpayable.
  Linked spell: Consecutive PIWs separated by gaps of at most 56 days form
                one spell. Waiting-day counters are scoped to the spell, not
                the individual PIW: a relapse within 8 weeks does not serve
                its waiting days again.

GAP SEMANTICS:
  The gap is the count of days strictly between one PIW's end and the next
  PIW's start. A gap of exactly 56 days links; 57 starts a new spell.
*/
package ssp

import (
	"sort"

	"github.com/warp/statutory-engine/statutory"
)

const (
	// minPIWDays is the minimum run length for a Period of Incapacity
	// for Work.
	minPIWDays = 4

	// maxLinkGapDays is the largest gap (days strictly between two PIWs)
	// that still links them into one spell.
	maxLinkGapDays = 56
)

// PIW is a maximal run of at least 4 consecutive qualifying sick days.
type PIW struct {
	Start statutory.Date
	End   statutory.Date
	Days  []statutory.Date
}

// normalizeDays sorts the qualifying sick days and drops duplicates.
func normalizeDays(days []statutory.Date) []statutory.Date {
	sorted := make([]statutory.Date, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	out := sorted[:0]
	for _, d := range sorted {
		if len(out) > 0 && out[len(out)-1].Equal(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// buildPIWs scans sorted de-duplicated days for maximal consecutive runs.
// Runs shorter than minPIWDays are returned as excluded days.
func buildPIWs(days []statutory.Date) (piws []PIW, excluded []statutory.Date) {
	var run []statutory.Date
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) >= minPIWDays {
			piws = append(piws, PIW{Start: run[0], End: run[len(run)-1], Days: run})
		} else {
			excluded = append(excluded, run...)
		}
		run = nil
	}

	for _, d := range days {
		if len(run) > 0 && statutory.DaysBetween(run[len(run)-1], d) != 1 {
			flush()
		}
		run = append(run, d)
	}
	flush()
	return piws, excluded
}

// linkSpells groups PIWs in date order into linked spells.
func linkSpells(piws []PIW) [][]PIW {
	var spells [][]PIW
	for _, piw := range piws {
		if len(spells) > 0 {
			last := spells[len(spells)-1]
			gap := statutory.DaysBetween(last[len(last)-1].End, piw.Start) - 1
			if gap <= maxLinkGapDays {
				spells[len(spells)-1] = append(last, piw)
				continue
			}
		}
		spells = append(spells, []PIW{piw})
	}
	return spells
}
