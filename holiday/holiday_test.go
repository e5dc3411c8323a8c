package holiday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/statutory-engine/holiday"
	"github.com/warp/statutory-engine/statutory"
)

func TestHolidayPay_Salaried(t *testing.T) {
	// GIVEN: A 26,000 salary and 5 days of leave
	// WHEN: Computing holiday pay
	// THEN: Daily rate 26000/(52.14285714*5) reports as 99.73, but the
	//       amount multiplies the unrounded rate: 498.63, not 498.65

	result := holiday.Calculate(holiday.Input{
		AnnualSalary: statutory.MustMoney("26000"),
		DaysOfLeave:  statutory.MustMoney("5"),
	})

	assert.Equal(t, holiday.BasisSalaried, result.Basis)
	assert.Equal(t, "99.73", result.DailyRate.StringFixed(2))
	assert.Equal(t, "498.63", result.Amount.StringFixed(2))
}

func TestHolidayPay_Hourly(t *testing.T) {
	// 15/hour * 40 hours / 5 days = 120.00/day; 3 days = 360.00.
	result := holiday.Calculate(holiday.Input{
		HourlyRate:   statutory.MustMoney("15.00"),
		HoursPerWeek: statutory.MustMoney("40"),
		DaysOfLeave:  statutory.MustMoney("3"),
	})

	assert.Equal(t, holiday.BasisHourly, result.Basis)
	assert.Equal(t, "120.00", result.DailyRate.StringFixed(2))
	assert.Equal(t, "360.00", result.Amount.StringFixed(2))
}

func TestHolidayPay_SalaryTakesPriorityOverHourly(t *testing.T) {
	result := holiday.Calculate(holiday.Input{
		AnnualSalary: statutory.MustMoney("26000"),
		HourlyRate:   statutory.MustMoney("15.00"),
		HoursPerWeek: statutory.MustMoney("40"),
		DaysOfLeave:  statutory.MustMoney("1"),
	})

	assert.Equal(t, holiday.BasisSalaried, result.Basis)
	assert.Equal(t, "99.73", result.Amount.StringFixed(2))
}

func TestHolidayPay_ZeroLeaveDays(t *testing.T) {
	// Zero (or negative) leave days is a zero result whatever pay data is
	// supplied, with basis unknown.
	for _, days := range []string{"0", "-2"} {
		result := holiday.Calculate(holiday.Input{
			AnnualSalary: statutory.MustMoney("26000"),
			DaysOfLeave:  statutory.MustMoney(days),
		})
		assert.Equal(t, holiday.BasisUnknown, result.Basis, "days %s", days)
		assert.True(t, result.Amount.IsZero())
		assert.True(t, result.DailyRate.IsZero())
	}
}

func TestHolidayPay_NoPayBasis(t *testing.T) {
	// Hourly rate without hours per week cannot form a basis.
	result := holiday.Calculate(holiday.Input{
		HourlyRate:  statutory.MustMoney("15.00"),
		DaysOfLeave: statutory.MustMoney("5"),
	})

	assert.Equal(t, holiday.BasisUnknown, result.Basis)
	assert.True(t, result.Amount.IsZero())
}

func TestHolidayPay_FractionalDays(t *testing.T) {
	// Half days are supported: 2.5 days at 99.726... = 249.32.
	result := holiday.Calculate(holiday.Input{
		AnnualSalary: statutory.MustMoney("26000"),
		DaysOfLeave:  statutory.MustMoney("2.5"),
	})

	assert.Equal(t, "249.32", result.Amount.StringFixed(2))
}

func TestHolidayPay_EchoesPeriodMetadata(t *testing.T) {
	start := statutory.NewDate(2025, time.August, 4)
	end := statutory.NewDate(2025, time.August, 8)

	result := holiday.Calculate(holiday.Input{
		AnnualSalary: statutory.MustMoney("26000"),
		DaysOfLeave:  statutory.MustMoney("5"),
		PeriodStart:  start,
		PeriodEnd:    end,
		Frequency:    "monthly",
	})

	assert.True(t, result.PeriodStart.Equal(start))
	assert.True(t, result.PeriodEnd.Equal(end))
	assert.Equal(t, "monthly", result.Frequency)
}
