package statutory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/statutory-engine/statutory"
)

// =============================================================================
// TAX YEAR BOUNDARY
// =============================================================================

func TestTaxYearFor_AprilBoundary(t *testing.T) {
	// The UK tax year turns over on 6 April: the 5th belongs to the old
	// year, the 6th to the new one.
	tests := []struct {
		date statutory.Date
		want statutory.TaxYear
	}{
		{statutory.NewDate(2025, time.April, 5), "2024-25"},
		{statutory.NewDate(2025, time.April, 6), "2025-26"},
		{statutory.NewDate(2024, time.April, 6), "2024-25"},
		{statutory.NewDate(2025, time.January, 1), "2024-25"},
		{statutory.NewDate(2025, time.December, 31), "2025-26"},
		{statutory.NewDate(2026, time.April, 5), "2025-26"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, statutory.TaxYearFor(tc.date), "date %s", tc.date)
	}
}

func TestTaxYearID_Format(t *testing.T) {
	assert.Equal(t, statutory.TaxYear("2024-25"), statutory.TaxYearID(2024))
	assert.Equal(t, statutory.TaxYear("2099-00"), statutory.TaxYearID(2099))
}

// =============================================================================
// RATE LOOKUPS
// =============================================================================

func TestRateTable_RatesOn_BoundaryDispatch(t *testing.T) {
	// GIVEN: The default table with 2024-25 and 2025-26 rows
	// WHEN: Looking up either side of 6 April 2025
	// THEN: Each date resolves to its own year's rates
	rates := statutory.DefaultRateTable()

	before, err := rates.RatesOn(statutory.NewDate(2025, time.April, 5))
	require.NoError(t, err)
	assert.Equal(t, "184.03", before.FamilyWeekly.StringFixed(2))
	assert.Equal(t, "116.75", before.SSPWeekly.StringFixed(2))
	assert.Equal(t, "123.00", before.LELWeekly.StringFixed(2))

	after, err := rates.RatesOn(statutory.NewDate(2025, time.April, 6))
	require.NoError(t, err)
	assert.Equal(t, "187.18", after.FamilyWeekly.StringFixed(2))
	assert.Equal(t, "118.75", after.SSPWeekly.StringFixed(2))
	assert.Equal(t, "125.00", after.LELWeekly.StringFixed(2))
}

func TestRateTable_UnknownYear_IsFatal(t *testing.T) {
	// An unconfigured tax year must surface as an error, never a stale
	// default rate.
	rates := statutory.DefaultRateTable()

	_, err := rates.RatesOn(statutory.NewDate(1999, time.June, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, statutory.ErrUnknownTaxYear)
	assert.True(t, statutory.IsConfigError(err))

	var unknownErr *statutory.UnknownTaxYearError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, statutory.TaxYear("1999-00"), unknownErr.Year)
}

func TestRateTable_ConvenienceAccessors(t *testing.T) {
	rates := statutory.DefaultRateTable()
	d := statutory.NewDate(2025, time.June, 1)

	family, err := rates.FamilyWeeklyRate(d)
	require.NoError(t, err)
	assert.Equal(t, "187.18", family.StringFixed(2))

	ssp, err := rates.SSPWeeklyRate(d)
	require.NoError(t, err)
	assert.Equal(t, "118.75", ssp.StringFixed(2))

	lel, err := rates.LowerEarningsLimit(d)
	require.NoError(t, err)
	assert.Equal(t, "125.00", lel.StringFixed(2))
}

func TestRateTable_Years_Sorted(t *testing.T) {
	rates := statutory.DefaultRateTable()
	assert.Equal(t, []statutory.TaxYear{"2024-25", "2025-26"}, rates.Years())
}
