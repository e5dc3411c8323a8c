/*
Package sqlite provides the SQLite-backed persistence collaborators.

PURPOSE:
  Implements the two contracts the pure engine leaves to collaborators:
  statutory.PayHistoryStore (gross pay records feeding AWE) and
  statutory.ScheduleStore (computed schedule snapshots). In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  pay_items:           One gross pay record per (employee, paid_on);
                       re-recording a date replaces the amount.
  statutory_schedules: One snapshot per (employee, claim, payment type,
                       element code); re-running a calculation upserts the
                       existing row. This is the at-most-one-writer-per-key
                       idempotency the engine requires of its sink.

MONEY AND DATES:
  Money is stored as decimal TEXT (never floats) and dates as "2006-01-02"
  TEXT, so a round-trip is bit-exact.

WAL MODE:
  SQLite is opened with WAL for better concurrency; a sync.RWMutex guards
  the connection as in-process writers may race.

USAGE:
  store, err := sqlite.New(":memory:")
  defer store.Close()

SEE ALSO:
  - statutory/store.go: Interface definitions
  - api/handlers.go: Wires calculations to this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/statutory-engine/statutory"
)

// Store implements statutory.PayHistoryStore and statutory.ScheduleStore.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ statutory.PayHistoryStore = (*Store)(nil)
	_ statutory.ScheduleStore   = (*Store)(nil)
)

// New creates a SQLite store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	-- Gross pay history feeding the AWE window
	CREATE TABLE IF NOT EXISTS pay_items (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		paid_on TEXT NOT NULL,
		gross TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(employee_id, paid_on)
	);

	CREATE INDEX IF NOT EXISTS idx_pay_items_employee_date
		ON pay_items(employee_id, paid_on);

	-- Computed schedule snapshots, one per calculation key
	CREATE TABLE IF NOT EXISTS statutory_schedules (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		claim_ref TEXT NOT NULL,
		payment_type TEXT NOT NULL,
		element_code TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		awe TEXT NOT NULL,
		total TEXT NOT NULL,
		eligible INTEGER NOT NULL,
		reasons_json TEXT NOT NULL,
		schedule_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, claim_ref, payment_type, element_code)
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_employee
		ON statutory_schedules(employee_id);
	CREATE INDEX IF NOT EXISTS idx_schedules_payment_type
		ON statutory_schedules(payment_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PAY HISTORY
// =============================================================================

// AddPayItem records a gross pay item. The same (employee, date) replaces
// the existing amount so replayed payroll feeds stay idempotent.
func (s *Store) AddPayItem(ctx context.Context, employeeID string, item statutory.PayItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pay_items (id, employee_id, paid_on, gross, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, paid_on) DO UPDATE SET gross = excluded.gross`,
		uuid.NewString(), employeeID, item.PaidOn.String(), item.Gross.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add pay item: %w", err)
	}
	return nil
}

// PayHistory returns pay items with paid_on in [from, to], ascending.
func (s *Store) PayHistory(ctx context.Context, employeeID string, from, to statutory.Date) ([]statutory.PayItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT paid_on, gross FROM pay_items
		WHERE employee_id = ? AND paid_on >= ? AND paid_on <= ?
		ORDER BY paid_on ASC`,
		employeeID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load pay history: %w", err)
	}
	defer rows.Close()

	var items []statutory.PayItem
	for rows.Next() {
		var paidOn, gross string
		if err := rows.Scan(&paidOn, &gross); err != nil {
			return nil, err
		}
		item, err := parsePayItem(paidOn, gross)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func parsePayItem(paidOn, gross string) (statutory.PayItem, error) {
	date, err := statutory.ParseDate(paidOn)
	if err != nil {
		return statutory.PayItem{}, fmt.Errorf("corrupt pay item date: %w", err)
	}
	amount, err := decimal.NewFromString(gross)
	if err != nil {
		return statutory.PayItem{}, fmt.Errorf("corrupt pay item amount %q: %w", gross, err)
	}
	return statutory.PayItem{PaidOn: date, Gross: amount}, nil
}

// =============================================================================
// SCHEDULES
// =============================================================================

// UpsertSchedule inserts or replaces the schedule snapshot for the record's
// (employee, claim, payment type, element code) key.
func (s *Store) UpsertSchedule(ctx context.Context, rec statutory.ScheduleRecord) (statutory.ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	reasons, err := json.Marshal(rec.Reasons)
	if err != nil {
		return statutory.ScheduleRecord{}, fmt.Errorf("failed to marshal reasons: %w", err)
	}
	scheduleJSON := rec.Schedule
	if scheduleJSON == nil {
		scheduleJSON = []byte("[]")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statutory_schedules
			(id, employee_id, claim_ref, payment_type, element_code,
			 period_start, period_end, awe, total, eligible,
			 reasons_json, schedule_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, claim_ref, payment_type, element_code) DO UPDATE SET
			period_start = excluded.period_start,
			period_end = excluded.period_end,
			awe = excluded.awe,
			total = excluded.total,
			eligible = excluded.eligible,
			reasons_json = excluded.reasons_json,
			schedule_json = excluded.schedule_json,
			updated_at = excluded.updated_at`,
		rec.ID, rec.EmployeeID, rec.ClaimRef, string(rec.PaymentType), rec.ElementCode,
		rec.PeriodStart.String(), rec.PeriodEnd.String(), rec.AWE.String(), rec.Total.String(),
		boolToInt(rec.Eligible), string(reasons), string(scheduleJSON),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return statutory.ScheduleRecord{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	// Read the row back so the caller sees the canonical ID and created_at
	// when an existing row was updated.
	return s.getScheduleLocked(ctx, rec.EmployeeID, rec.ClaimRef, rec.PaymentType, rec.ElementCode)
}

// GetSchedule returns the persisted schedule for a key.
func (s *Store) GetSchedule(ctx context.Context, employeeID, claimRef string, paymentType statutory.PaymentType, elementCode string) (statutory.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getScheduleLocked(ctx, employeeID, claimRef, paymentType, elementCode)
}

func (s *Store) getScheduleLocked(ctx context.Context, employeeID, claimRef string, paymentType statutory.PaymentType, elementCode string) (statutory.ScheduleRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, claim_ref, payment_type, element_code,
		       period_start, period_end, awe, total, eligible,
		       reasons_json, schedule_json, created_at, updated_at
		FROM statutory_schedules
		WHERE employee_id = ? AND claim_ref = ? AND payment_type = ? AND element_code = ?`,
		employeeID, claimRef, string(paymentType), elementCode)
	return scanSchedule(row)
}

// ListSchedules returns all persisted schedules for an employee, newest
// first.
func (s *Store) ListSchedules(ctx context.Context, employeeID string) ([]statutory.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, claim_ref, payment_type, element_code,
		       period_start, period_end, awe, total, eligible,
		       reasons_json, schedule_json, created_at, updated_at
		FROM statutory_schedules
		WHERE employee_id = ?
		ORDER BY updated_at DESC, claim_ref ASC`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var records []statutory.ScheduleRecord
	for rows.Next() {
		rec, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (statutory.ScheduleRecord, error) {
	var (
		rec                       statutory.ScheduleRecord
		paymentType               string
		periodStart, periodEnd    string
		awe, total                string
		eligible                  int
		reasonsJSON, scheduleJSON string
		createdAt, updatedAt      string
	)
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.ClaimRef, &paymentType, &rec.ElementCode,
		&periodStart, &periodEnd, &awe, &total, &eligible,
		&reasonsJSON, &scheduleJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return statutory.ScheduleRecord{}, statutory.ErrScheduleNotFound
	}
	if err != nil {
		return statutory.ScheduleRecord{}, err
	}

	rec.PaymentType = statutory.PaymentType(paymentType)
	if rec.PeriodStart, err = statutory.ParseDate(periodStart); err != nil {
		return statutory.ScheduleRecord{}, err
	}
	if rec.PeriodEnd, err = statutory.ParseDate(periodEnd); err != nil {
		return statutory.ScheduleRecord{}, err
	}
	if rec.AWE, err = decimal.NewFromString(awe); err != nil {
		return statutory.ScheduleRecord{}, fmt.Errorf("corrupt AWE %q: %w", awe, err)
	}
	if rec.Total, err = decimal.NewFromString(total); err != nil {
		return statutory.ScheduleRecord{}, fmt.Errorf("corrupt total %q: %w", total, err)
	}
	rec.Eligible = eligible != 0
	if err := json.Unmarshal([]byte(reasonsJSON), &rec.Reasons); err != nil {
		return statutory.ScheduleRecord{}, fmt.Errorf("corrupt reasons: %w", err)
	}
	rec.Schedule = []byte(scheduleJSON)
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return statutory.ScheduleRecord{}, err
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return statutory.ScheduleRecord{}, err
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
