/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response types returned to clients
  - *DTO: Embedded line/record shapes

MONEY:
  Money fields are decimal.Decimal, which marshals as a quoted decimal
  string ("498.63"). Clients must not round-trip statutory amounts through
  floats.

DATES:
  Dates travel as "2006-01-02" strings and are parsed fallibly in handlers;
  a malformed date is a 400, never a silent fallback.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/family"
	"github.com/warp/statutory-engine/holiday"
	"github.com/warp/statutory-engine/ssp"
	"github.com/warp/statutory-engine/statutory"
)

// =============================================================================
// SHARED SHAPES
// =============================================================================

// PayItemDTO is a historical gross pay record.
type PayItemDTO struct {
	PaidOn string          `json:"paid_on"`
	Gross  decimal.Decimal `json:"gross"`
}

// PaymentWeekDTO is one family payment schedule line.
type PaymentWeekDTO struct {
	Index      int             `json:"index"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Gross      decimal.Decimal `json:"gross"`
	CapApplied bool            `json:"cap_applied"`
	RateUsed   decimal.Decimal `json:"rate_used"`
}

// PaymentDayDTO is one SSP schedule line.
type PaymentDayDTO struct {
	Date       string          `json:"date"`
	Payable    bool            `json:"payable"`
	WaitingDay bool            `json:"waiting_day"`
	Gross      decimal.Decimal `json:"gross"`
	Note       string          `json:"note,omitempty"`
}

// ScheduleRecordDTO is a persisted schedule snapshot.
type ScheduleRecordDTO struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	ClaimRef    string          `json:"claim_ref"`
	PaymentType string          `json:"payment_type"`
	ElementCode string          `json:"element_code"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	AWE         decimal.Decimal `json:"awe"`
	Total       decimal.Decimal `json:"total"`
	Eligible    bool            `json:"eligible"`
	Reasons     []string        `json:"reasons,omitempty"`
	UpdatedAt   string          `json:"updated_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// FAMILY PAYMENTS
// =============================================================================

// FamilyCalculationRequest drives SMP/SAP/SPP/ShPP/SPBP calculations.
// If EmployeeID is set and PayHistory is empty, the pay history is loaded
// from the store over the relevant period ending at the reference week
// Saturday. Setting both EmployeeID and ClaimRef persists the result.
type FamilyCalculationRequest struct {
	EmployeeID            string       `json:"employee_id,omitempty"`
	ClaimRef              string       `json:"claim_ref,omitempty"`
	PayHistory            []PayItemDTO `json:"pay_history,omitempty"`
	ReferenceWeekSaturday string       `json:"reference_week_saturday"`
	PayStartDate          string       `json:"pay_start_date"`
	ServiceWeeks          int          `json:"service_weeks"`
	WeeksChosen           int          `json:"weeks_chosen,omitempty"`
}

// FamilyCalculationResponse is the schedule plus eligibility outcome.
type FamilyCalculationResponse struct {
	PaymentType      string           `json:"payment_type"`
	Eligible         bool             `json:"eligible"`
	Reasons          []string         `json:"reasons,omitempty"`
	AWE              decimal.Decimal  `json:"awe"`
	WeeklyAt90       decimal.Decimal  `json:"weekly_at_90pct"`
	Schedule         []PaymentWeekDTO `json:"schedule"`
	Total            decimal.Decimal  `json:"total"`
	First6Total      *decimal.Decimal `json:"first_6_total,omitempty"`
	Remaining33Total *decimal.Decimal `json:"remaining_33_total,omitempty"`
	Persisted        bool             `json:"persisted"`
}

// =============================================================================
// SSP
// =============================================================================

type SSPCalculationRequest struct {
	EmployeeID            string       `json:"employee_id,omitempty"`
	ClaimRef              string       `json:"claim_ref,omitempty"`
	PayHistory            []PayItemDTO `json:"pay_history,omitempty"`
	FirstSickDay          string       `json:"first_sick_day"`
	SickDays              []string     `json:"sick_days"`
	QualifyingDaysPerWeek int          `json:"qualifying_days_per_week"`
}

type SSPCalculationResponse struct {
	Eligible          bool            `json:"eligible"`
	Reasons           []string        `json:"reasons,omitempty"`
	AWE               decimal.Decimal `json:"awe"`
	DaysInPIWs        int             `json:"days_in_piws"`
	WaitingDaysServed int             `json:"waiting_days_served"`
	DaysPaid          int             `json:"days_paid"`
	Total             decimal.Decimal `json:"total"`
	CapDays           int             `json:"cap_days"`
	CapApplied        bool            `json:"cap_applied"`
	Schedule          []PaymentDayDTO `json:"schedule"`
	Persisted         bool            `json:"persisted"`
}

// =============================================================================
// HOLIDAY PAY
// =============================================================================

type HolidayPayRequest struct {
	AnnualSalary decimal.Decimal `json:"annual_salary"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	HoursPerWeek decimal.Decimal `json:"hours_per_week"`
	DaysOfLeave  decimal.Decimal `json:"days_of_leave"`
	PeriodStart  string          `json:"period_start,omitempty"`
	PeriodEnd    string          `json:"period_end,omitempty"`
	Frequency    string          `json:"frequency,omitempty"`
}

type HolidayPayResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Basis       string          `json:"basis"`
	PeriodStart string          `json:"period_start,omitempty"`
	PeriodEnd   string          `json:"period_end,omitempty"`
	Frequency   string          `json:"frequency,omitempty"`
}

// =============================================================================
// RATES
// =============================================================================

type RatesResponse struct {
	TaxYear      string          `json:"tax_year"`
	FamilyWeekly decimal.Decimal `json:"family_weekly"`
	SSPWeekly    decimal.Decimal `json:"ssp_weekly"`
	LELWeekly    decimal.Decimal `json:"lel_weekly"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPayItems(dtos []PayItemDTO) ([]statutory.PayItem, error) {
	items := make([]statutory.PayItem, 0, len(dtos))
	for _, dto := range dtos {
		paidOn, err := statutory.ParseDate(dto.PaidOn)
		if err != nil {
			return nil, err
		}
		items = append(items, statutory.PayItem{PaidOn: paidOn, Gross: dto.Gross})
	}
	return items, nil
}

func toPayItemDTOs(items []statutory.PayItem) []PayItemDTO {
	dtos := make([]PayItemDTO, len(items))
	for i, item := range items {
		dtos[i] = PayItemDTO{PaidOn: item.PaidOn.String(), Gross: item.Gross}
	}
	return dtos
}

func toPaymentWeekDTOs(weeks []statutory.PaymentWeek) []PaymentWeekDTO {
	dtos := make([]PaymentWeekDTO, len(weeks))
	for i, week := range weeks {
		dtos[i] = PaymentWeekDTO{
			Index:      week.Index,
			StartDate:  week.StartDate.String(),
			EndDate:    week.EndDate.String(),
			Gross:      week.Gross,
			CapApplied: week.CapApplied,
			RateUsed:   week.RateUsed,
		}
	}
	return dtos
}

func toPaymentDayDTOs(days []statutory.PaymentDay) []PaymentDayDTO {
	dtos := make([]PaymentDayDTO, len(days))
	for i, day := range days {
		dtos[i] = PaymentDayDTO{
			Date:       day.Date.String(),
			Payable:    day.Payable,
			WaitingDay: day.WaitingDay,
			Gross:      day.Gross,
			Note:       day.Note,
		}
	}
	return dtos
}

func toFamilyResponse(result family.Result, persisted bool) FamilyCalculationResponse {
	resp := FamilyCalculationResponse{
		PaymentType: string(result.Type),
		Eligible:    result.Eligible,
		Reasons:     result.Reasons,
		AWE:         result.AWE,
		WeeklyAt90:  result.WeeklyAt90,
		Schedule:    toPaymentWeekDTOs(result.Schedule),
		Total:       result.Total,
		Persisted:   persisted,
	}
	if result.Type == statutory.PaymentMaternity || result.Type == statutory.PaymentAdoption {
		first6 := result.First6Total
		remaining33 := result.Remaining33Total
		resp.First6Total = &first6
		resp.Remaining33Total = &remaining33
	}
	return resp
}

func toSSPResponse(result ssp.Result, persisted bool) SSPCalculationResponse {
	return SSPCalculationResponse{
		Eligible:          result.Eligible,
		Reasons:           result.Reasons,
		AWE:               result.AWE,
		DaysInPIWs:        result.DaysInPIWs,
		WaitingDaysServed: result.WaitingDaysServed,
		DaysPaid:          result.DaysPaid,
		Total:             result.Total,
		CapDays:           result.CapDays,
		CapApplied:        result.CapApplied,
		Schedule:          toPaymentDayDTOs(result.Schedule),
		Persisted:         persisted,
	}
}

func toHolidayResponse(result holiday.Result) HolidayPayResponse {
	resp := HolidayPayResponse{
		Amount:    result.Amount,
		DailyRate: result.DailyRate,
		Basis:     string(result.Basis),
		Frequency: result.Frequency,
	}
	if !result.PeriodStart.IsZero() {
		resp.PeriodStart = result.PeriodStart.String()
	}
	if !result.PeriodEnd.IsZero() {
		resp.PeriodEnd = result.PeriodEnd.String()
	}
	return resp
}

func toScheduleRecordDTO(rec statutory.ScheduleRecord) ScheduleRecordDTO {
	return ScheduleRecordDTO{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		ClaimRef:    rec.ClaimRef,
		PaymentType: string(rec.PaymentType),
		ElementCode: rec.ElementCode,
		PeriodStart: rec.PeriodStart.String(),
		PeriodEnd:   rec.PeriodEnd.String(),
		AWE:         rec.AWE,
		Total:       rec.Total,
		Eligible:    rec.Eligible,
		Reasons:     rec.Reasons,
		UpdatedAt:   rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
