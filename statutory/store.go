/*
store.go - Collaborator contracts for pay history and schedule persistence

PURPOSE:
  The engine itself is pure: it consumes plain values and returns schedule
  snapshots. These interfaces are the contracts for the two external
  collaborators that surround it:
  - PayHistorySource: supplies an employee's gross pay records for the AWE
    window (the list may be empty; the AWE calculator handles that).
  - ScheduleStore: upserts a computed schedule keyed by
    (employee, claim, payment type, element code) with idempotent
    update-if-exists semantics. At-most-one-writer per key is the store's
    responsibility, not the engine's.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store implementing both contracts.

SEE ALSO:
  - store/sqlite/sqlite.go: Concrete implementation
  - api/handlers.go: Wires calculations to these collaborators
*/
package statutory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE RECORD - Persisted snapshot of a calculation
// =============================================================================

// ScheduleRecord is the persisted form of a computed schedule. The schedule
// lines are stored as an opaque JSON snapshot: persistence treats a schedule
// as the frozen output of a calculation, not a live object.
type ScheduleRecord struct {
	ID          string
	EmployeeID  string
	ClaimRef    string
	PaymentType PaymentType
	ElementCode string
	PeriodStart Date
	PeriodEnd   Date
	AWE         decimal.Decimal
	Total       decimal.Decimal
	Eligible    bool
	Reasons     []string
	Schedule    []byte // JSON snapshot of the week/day lines

	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// PayHistorySource supplies historical pay items for an employee over an
// arbitrary lookback window.
type PayHistorySource interface {
	// PayHistory returns pay items with PaidOn in [from, to], ascending.
	// An empty result is legitimate (e.g. a new starter).
	PayHistory(ctx context.Context, employeeID string, from, to Date) ([]PayItem, error)
}

// PayHistoryStore extends PayHistorySource with writes.
type PayHistoryStore interface {
	PayHistorySource

	// AddPayItem records a gross pay item. Recording the same
	// (employee, date) twice replaces the amount.
	AddPayItem(ctx context.Context, employeeID string, item PayItem) error
}

// ScheduleStore persists computed schedules.
type ScheduleStore interface {
	// UpsertSchedule inserts or replaces the schedule for the record's
	// (EmployeeID, ClaimRef, PaymentType, ElementCode) key and returns the
	// stored record with its canonical ID and timestamps.
	UpsertSchedule(ctx context.Context, rec ScheduleRecord) (ScheduleRecord, error)

	// GetSchedule returns the schedule for a key, or ErrScheduleNotFound.
	GetSchedule(ctx context.Context, employeeID, claimRef string, paymentType PaymentType, elementCode string) (ScheduleRecord, error)

	// ListSchedules returns all persisted schedules for an employee.
	ListSchedules(ctx context.Context, employeeID string) ([]ScheduleRecord, error)
}
