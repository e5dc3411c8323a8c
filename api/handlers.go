/*
handlers.go - HTTP handlers for the statutory calculation API

PURPOSE:
  Thin JSON handlers wrapping the pure calculators. Handlers do three
  things: parse/validate the request at the boundary (dates parse fallibly
  here, so the engine never sees a malformed date), run the calculation,
  and optionally persist the resulting schedule snapshot.

ERROR MAPPING:
  Ineligibility is NOT an HTTP error: the response is a 200 with
  eligible=false and the accumulated reasons, schedule included.
  Malformed input      -> 400 invalid_input
  Unknown tax year     -> 500 rate_table_gap (configuration, not the caller)
  Store failures       -> 500 internal

PERSISTENCE:
  A calculation request carrying employee_id and claim_ref is upserted into
  the schedule store keyed by (employee, claim, payment type, element code),
  so re-running a calculation replaces its previous snapshot.

SEE ALSO:
  - server.go: Route wiring
  - dto.go: Request/response shapes
*/
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/warp/statutory-engine/family"
	"github.com/warp/statutory-engine/holiday"
	"github.com/warp/statutory-engine/ssp"
	"github.com/warp/statutory-engine/statutory"
)

// Store is the persistence collaborator the handlers need: pay history in,
// schedule snapshots out.
type Store interface {
	statutory.PayHistoryStore
	statutory.ScheduleStore
}

// Handler holds the calculators and collaborators for all routes.
type Handler struct {
	rates  *statutory.RateTable
	family *family.Calculator
	ssp    *ssp.Calculator
	store  Store
	now    func() time.Time
}

// NewHandler creates a handler backed by the given rate table and store.
func NewHandler(rates *statutory.RateTable, store Store) *Handler {
	return &Handler{
		rates:  rates,
		family: family.NewCalculator(rates),
		ssp:    ssp.NewCalculator(rates),
		store:  store,
		now:    time.Now,
	}
}

// =============================================================================
// FAMILY PAYMENT CALCULATIONS
// =============================================================================

func (h *Handler) CalculateMaternity(w http.ResponseWriter, r *http.Request) {
	h.familyCalculation(w, r, statutory.PaymentMaternity, h.family.Maternity)
}

func (h *Handler) CalculateAdoption(w http.ResponseWriter, r *http.Request) {
	h.familyCalculation(w, r, statutory.PaymentAdoption, h.family.Adoption)
}

func (h *Handler) CalculatePaternity(w http.ResponseWriter, r *http.Request) {
	h.familyCalculation(w, r, statutory.PaymentPaternity, h.family.Paternity)
}

func (h *Handler) CalculateSharedParental(w http.ResponseWriter, r *http.Request) {
	h.familyCalculation(w, r, statutory.PaymentSharedParental, h.family.SharedParental)
}

func (h *Handler) CalculateParentalBereavement(w http.ResponseWriter, r *http.Request) {
	h.familyCalculation(w, r, statutory.PaymentParentalBereavement, h.family.ParentalBereavement)
}

func (h *Handler) familyCalculation(w http.ResponseWriter, r *http.Request, paymentType statutory.PaymentType, calc func(family.Input) (family.Result, error)) {
	var req FamilyCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "failed to decode request body")
		return
	}

	referenceWeek, err := statutory.ParseDate(req.ReferenceWeekSaturday)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "reference_week_saturday: "+err.Error())
		return
	}
	payStart, err := statutory.ParseDate(req.PayStartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "pay_start_date: "+err.Error())
		return
	}

	payHistory, err := h.resolvePayHistory(r.Context(), req.EmployeeID, req.PayHistory, referenceWeek)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	result, err := calc(family.Input{
		PayHistory:            payHistory,
		ReferenceWeekSaturday: referenceWeek,
		PayStartDate:          payStart,
		ServiceWeeks:          req.ServiceWeeks,
		WeeksChosen:           req.WeeksChosen,
	})
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	persisted := false
	if req.EmployeeID != "" && req.ClaimRef != "" {
		scheduleJSON, err := json.Marshal(toPaymentWeekDTOs(result.Schedule))
		if err == nil {
			_, err = h.store.UpsertSchedule(r.Context(), statutory.ScheduleRecord{
				EmployeeID:  req.EmployeeID,
				ClaimRef:    req.ClaimRef,
				PaymentType: paymentType,
				ElementCode: paymentType.ElementCode(),
				PeriodStart: result.PeriodStart(),
				PeriodEnd:   result.PeriodEnd(),
				AWE:         result.AWE,
				Total:       result.Total,
				Eligible:    result.Eligible,
				Reasons:     result.Reasons,
				Schedule:    scheduleJSON,
			})
		}
		if err != nil {
			h.writeCalcError(w, err)
			return
		}
		persisted = true
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(result, persisted))
}

// =============================================================================
// SSP CALCULATION
// =============================================================================

func (h *Handler) CalculateSSP(w http.ResponseWriter, r *http.Request) {
	var req SSPCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "failed to decode request body")
		return
	}

	firstSickDay, err := statutory.ParseDate(req.FirstSickDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "first_sick_day: "+err.Error())
		return
	}
	sickDays := make([]statutory.Date, 0, len(req.SickDays))
	for _, s := range req.SickDays {
		day, err := statutory.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "sick_days: "+err.Error())
			return
		}
		sickDays = append(sickDays, day)
	}

	payHistory, err := h.resolvePayHistory(r.Context(), req.EmployeeID, req.PayHistory, firstSickDay.AddDays(-1))
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	result, err := h.ssp.Calculate(payHistory, firstSickDay, sickDays, req.QualifyingDaysPerWeek)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	persisted := false
	if req.EmployeeID != "" && req.ClaimRef != "" && len(result.Schedule) > 0 {
		scheduleJSON, err := json.Marshal(toPaymentDayDTOs(result.Schedule))
		if err == nil {
			_, err = h.store.UpsertSchedule(r.Context(), statutory.ScheduleRecord{
				EmployeeID:  req.EmployeeID,
				ClaimRef:    req.ClaimRef,
				PaymentType: statutory.PaymentSSP,
				ElementCode: statutory.PaymentSSP.ElementCode(),
				PeriodStart: result.Schedule[0].Date,
				PeriodEnd:   result.Schedule[len(result.Schedule)-1].Date,
				AWE:         result.AWE,
				Total:       result.Total,
				Eligible:    result.Eligible,
				Reasons:     result.Reasons,
				Schedule:    scheduleJSON,
			})
		}
		if err != nil {
			h.writeCalcError(w, err)
			return
		}
		persisted = true
	}

	writeJSON(w, http.StatusOK, toSSPResponse(result, persisted))
}

// =============================================================================
// HOLIDAY PAY CALCULATION
// =============================================================================

func (h *Handler) CalculateHolidayPay(w http.ResponseWriter, r *http.Request) {
	var req HolidayPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "failed to decode request body")
		return
	}

	in := holiday.Input{
		AnnualSalary: req.AnnualSalary,
		HourlyRate:   req.HourlyRate,
		HoursPerWeek: req.HoursPerWeek,
		DaysOfLeave:  req.DaysOfLeave,
		Frequency:    req.Frequency,
	}
	if req.PeriodStart != "" {
		start, err := statutory.ParseDate(req.PeriodStart)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "period_start: "+err.Error())
			return
		}
		in.PeriodStart = start
	}
	if req.PeriodEnd != "" {
		end, err := statutory.ParseDate(req.PeriodEnd)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "period_end: "+err.Error())
			return
		}
		in.PeriodEnd = end
	}

	writeJSON(w, http.StatusOK, toHolidayResponse(holiday.Calculate(in)))
}

// =============================================================================
// RATES
// =============================================================================

// GetRates returns the statutory rates for ?tax_year=2025-26 or ?date=
// (defaulting to today).
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	var year statutory.TaxYear
	switch {
	case r.URL.Query().Get("tax_year") != "":
		year = statutory.TaxYear(r.URL.Query().Get("tax_year"))
	case r.URL.Query().Get("date") != "":
		d, err := statutory.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "date: "+err.Error())
			return
		}
		year = statutory.TaxYearFor(d)
	default:
		year = statutory.TaxYearFor(statutory.DateOf(h.now()))
	}

	rates, err := h.rates.RatesForYear(year)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RatesResponse{
		TaxYear:      string(year),
		FamilyWeekly: rates.FamilyWeekly,
		SSPWeekly:    rates.SSPWeekly,
		LELWeekly:    rates.LELWeekly,
	})
}

// =============================================================================
// PAY ITEMS
// =============================================================================

// AddPayItems records gross pay items for an employee.
func (h *Handler) AddPayItems(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var dtos []PayItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "failed to decode request body")
		return
	}
	items, err := toPayItems(dtos)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	for _, item := range items {
		if err := h.store.AddPayItem(r.Context(), employeeID, item); err != nil {
			h.writeCalcError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]int{"recorded": len(items)})
}

// ListPayItems returns an employee's pay history, optionally bounded by
// ?from= and ?to= dates.
func (h *Handler) ListPayItems(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	from := statutory.NewDate(1900, time.January, 1)
	to := statutory.DateOf(h.now())
	var err error
	if s := r.URL.Query().Get("from"); s != "" {
		if from, err = statutory.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "from: "+err.Error())
			return
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if to, err = statutory.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "to: "+err.Error())
			return
		}
	}

	items, err := h.store.PayHistory(r.Context(), employeeID, from, to)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayItemDTOs(items))
}

// ListSchedules returns the persisted schedule snapshots for an employee.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	records, err := h.store.ListSchedules(r.Context(), employeeID)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	dtos := make([]ScheduleRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toScheduleRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// resolvePayHistory prefers inline pay history; otherwise it loads the
// relevant period ending at the reference date from the store.
func (h *Handler) resolvePayHistory(ctx context.Context, employeeID string, dtos []PayItemDTO, reference statutory.Date) ([]statutory.PayItem, error) {
	if len(dtos) > 0 {
		return toPayItems(dtos)
	}
	if employeeID == "" {
		return nil, nil
	}
	from := reference.AddDays(-(statutory.RelevantPeriodWeeks*7 - 1))
	return h.store.PayHistory(ctx, employeeID, from, reference)
}

func (h *Handler) writeCalcError(w http.ResponseWriter, err error) {
	switch {
	case statutory.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case statutory.IsConfigError(err):
		writeError(w, http.StatusInternalServerError, "rate_table_gap", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
