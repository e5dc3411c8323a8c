package statutory

import (
	"time"
)

// =============================================================================
// DATE - Validated day-granularity value
// =============================================================================

// DateLayout is the only wire format accepted for dates.
const DateLayout = "2006-01-02"

// Date is a calendar day, normalized to UTC midnight. It is constructed via
// NewDate or a fallible ParseDate at the system boundary, so internal
// algorithms never need to re-validate dates.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "2006-01-02" string. Malformed input is an error,
// never a silent fallback.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Err: err}
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateOf truncates a clock value to a Date. Callers pass their clock in;
// the engine never reads ambient time.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { t := d.t.AddDate(0, 0, n); return NewDate(t.Year(), t.Month(), t.Day()) }

// DaysBetween returns the number of days from 'from' to 'to' (negative if
// 'to' is earlier).
func DaysBetween(from, to Date) int { return int(to.t.Sub(from.t).Hours() / 24) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }
