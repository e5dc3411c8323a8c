package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/statutory-engine/api"
	"github.com/warp/statutory-engine/statutory"
	"github.com/warp/statutory-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func setupTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := api.NewHandler(statutory.DefaultRateTable(), store)
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// weeklyPayDTOs builds 8 weekly payslips of 'gross' ending at 'end'.
func weeklyPayDTOs(end statutory.Date, gross string) []api.PayItemDTO {
	dtos := make([]api.PayItemDTO, 8)
	for i := 0; i < 8; i++ {
		dtos[i] = api.PayItemDTO{
			PaidOn: end.AddDays(-7 * i).String(),
			Gross:  statutory.MustMoney(gross),
		}
	}
	return dtos
}

// =============================================================================
// FAMILY CALCULATIONS
// =============================================================================

func TestCalculateMaternity_FullSchedule(t *testing.T) {
	// GIVEN: Inline pay history with AWE 600
	// WHEN: POSTing a maternity calculation
	// THEN: 200 with 39 weeks, the 6/33 split, and persisted=false

	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/maternity", api.FamilyCalculationRequest{
		PayHistory:            weeklyPayDTOs(statutory.NewDate(2025, time.March, 22), "600.00"),
		ReferenceWeekSaturday: "2025-03-22",
		PayStartDate:          "2025-03-30",
		ServiceWeeks:          52,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.FamilyCalculationResponse
	decodeBody(t, resp, &body)

	assert.Equal(t, "maternity", body.PaymentType)
	assert.True(t, body.Eligible)
	assert.Len(t, body.Schedule, 39)
	assert.Equal(t, "540.00", body.WeeklyAt90.StringFixed(2))
	assert.Equal(t, "9416.94", body.Total.StringFixed(2))
	require.NotNil(t, body.First6Total)
	assert.Equal(t, "3240.00", body.First6Total.StringFixed(2))
	require.NotNil(t, body.Remaining33Total)
	assert.Equal(t, "6176.94", body.Remaining33Total.StringFixed(2))
	assert.False(t, body.Persisted)
}

func TestCalculatePaternity_NoSplitTotals(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/paternity", api.FamilyCalculationRequest{
		PayHistory:            weeklyPayDTOs(statutory.NewDate(2025, time.June, 7), "600.00"),
		ReferenceWeekSaturday: "2025-06-07",
		PayStartDate:          "2025-06-15",
		ServiceWeeks:          52,
		WeeksChosen:           2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.FamilyCalculationResponse
	decodeBody(t, resp, &body)

	assert.Len(t, body.Schedule, 2)
	assert.Nil(t, body.First6Total, "6/33 split is maternity/adoption only")
	assert.Nil(t, body.Remaining33Total)
}

func TestCalculateMaternity_Ineligible_IsStill200(t *testing.T) {
	// Ineligibility is a domain outcome, not an HTTP error.
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/maternity", api.FamilyCalculationRequest{
		PayHistory:            weeklyPayDTOs(statutory.NewDate(2025, time.June, 7), "100.00"),
		ReferenceWeekSaturday: "2025-06-07",
		PayStartDate:          "2025-06-15",
		ServiceWeeks:          10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.FamilyCalculationResponse
	decodeBody(t, resp, &body)

	assert.False(t, body.Eligible)
	assert.Len(t, body.Reasons, 2)
	assert.Len(t, body.Schedule, 39)
}

func TestCalculateMaternity_MalformedDate(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/maternity", api.FamilyCalculationRequest{
		ReferenceWeekSaturday: "22/03/2025",
		PayStartDate:          "2025-03-30",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body api.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "invalid_input", body.Code)
	assert.Contains(t, body.Error, "reference_week_saturday")
}

func TestCalculateMaternity_InvalidJSON(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Post(server.URL+"/api/calculations/maternity",
		"application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// SSP
// =============================================================================

func TestCalculateSSP_LinkedPIWs(t *testing.T) {
	server := setupTestServer(t)

	sickDays := []string{
		"2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06",
		"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13",
	}
	resp := postJSON(t, server.URL+"/api/calculations/ssp", api.SSPCalculationRequest{
		PayHistory:            weeklyPayDTOs(statutory.NewDate(2025, time.June, 2), "500.00"),
		FirstSickDay:          "2025-06-03",
		SickDays:              sickDays,
		QualifyingDaysPerWeek: 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.SSPCalculationResponse
	decodeBody(t, resp, &body)

	assert.True(t, body.Eligible)
	assert.Equal(t, 3, body.WaitingDaysServed)
	assert.Equal(t, 5, body.DaysPaid)
	assert.Equal(t, "118.75", body.Total.StringFixed(2))
	require.Len(t, body.Schedule, 8)
	assert.Equal(t, "waiting day", body.Schedule[0].Note)
	assert.True(t, body.Schedule[7].Payable)
}

func TestCalculateSSP_InvalidQualifyingDays(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/ssp", api.SSPCalculationRequest{
		FirstSickDay:          "2025-06-03",
		SickDays:              []string{"2025-06-03"},
		QualifyingDaysPerWeek: 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body api.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "invalid_input", body.Code)
}

// =============================================================================
// HOLIDAY PAY
// =============================================================================

func TestCalculateHolidayPay(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculations/holiday-pay", api.HolidayPayRequest{
		AnnualSalary: statutory.MustMoney("26000"),
		DaysOfLeave:  statutory.MustMoney("5"),
		PeriodStart:  "2025-08-04",
		PeriodEnd:    "2025-08-08",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.HolidayPayResponse
	decodeBody(t, resp, &body)

	assert.Equal(t, "salaried", body.Basis)
	assert.Equal(t, "99.73", body.DailyRate.StringFixed(2))
	assert.Equal(t, "498.63", body.Amount.StringFixed(2))
	assert.Equal(t, "2025-08-04", body.PeriodStart)
}

// =============================================================================
// RATES
// =============================================================================

func TestGetRates(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/rates?date=2025-04-05")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.RatesResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "2024-25", body.TaxYear)
	assert.Equal(t, "184.03", body.FamilyWeekly.StringFixed(2))

	resp, err = http.Get(server.URL + "/api/rates?tax_year=2025-26")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "118.75", body.SSPWeekly.StringFixed(2))
}

func TestGetRates_UnknownYearIsServerSide(t *testing.T) {
	// A missing tax year is a rate table gap, not the caller's fault.
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/rates?tax_year=1999-00")
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body api.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "rate_table_gap", body.Code)
}

// =============================================================================
// PERSISTENCE FLOW
// =============================================================================

func TestStoredPayHistoryFeedsCalculationAndPersists(t *testing.T) {
	// GIVEN: Pay items recorded against an employee
	// WHEN: Calculating maternity with employee_id + claim_ref and no
	//       inline history
	// THEN: The stored history feeds AWE, the snapshot is persisted, and
	//       the schedules endpoint returns it

	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/employees/emp-1/pay-items",
		weeklyPayDTOs(statutory.NewDate(2025, time.March, 22), "600.00"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recorded map[string]int
	decodeBody(t, resp, &recorded)
	assert.Equal(t, 8, recorded["recorded"])

	resp = postJSON(t, server.URL+"/api/calculations/maternity", api.FamilyCalculationRequest{
		EmployeeID:            "emp-1",
		ClaimRef:              "mat-2025",
		ReferenceWeekSaturday: "2025-03-22",
		PayStartDate:          "2025-03-30",
		ServiceWeeks:          52,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var calc api.FamilyCalculationResponse
	decodeBody(t, resp, &calc)
	assert.Equal(t, "600.00", calc.AWE.StringFixed(2))
	assert.True(t, calc.Persisted)

	resp, err := http.Get(server.URL + "/api/employees/emp-1/schedules")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedules []api.ScheduleRecordDTO
	decodeBody(t, resp, &schedules)
	require.Len(t, schedules, 1)
	assert.Equal(t, "mat-2025", schedules[0].ClaimRef)
	assert.Equal(t, "SMP", schedules[0].ElementCode)
	assert.Equal(t, "9416.94", schedules[0].Total.StringFixed(2))
	assert.True(t, schedules[0].Eligible)

	// Re-running the same claim upserts in place.
	resp = postJSON(t, server.URL+"/api/calculations/maternity", api.FamilyCalculationRequest{
		EmployeeID:            "emp-1",
		ClaimRef:              "mat-2025",
		ReferenceWeekSaturday: "2025-03-22",
		PayStartDate:          "2025-03-30",
		ServiceWeeks:          52,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/employees/emp-1/schedules")
	require.NoError(t, err)
	decodeBody(t, resp, &schedules)
	assert.Len(t, schedules, 1)
}

func TestListPayItems_WindowQuery(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/employees/emp-1/pay-items", []api.PayItemDTO{
		{PaidOn: "2025-05-09", Gross: statutory.MustMoney("500.00")},
		{PaidOn: "2025-05-23", Gross: statutory.MustMoney("500.00")},
		{PaidOn: "2025-01-10", Gross: statutory.MustMoney("500.00")},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/employees/emp-1/pay-items?from=2025-04-01&to=2025-05-31")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []api.PayItemDTO
	decodeBody(t, resp, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-05-09", items[0].PaidOn)
}
