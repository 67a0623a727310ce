/*
Package sqlite provides SQLite-backed persistence for the deadline engine.

PURPOSE:
  The core engines are pure computation; this package keeps the pieces
  that must survive a restart:

  custom_holidays:    The active caller-maintained holiday set, loaded
                      into the calendar Provider at startup and replaced
                      atomically on update.
  calendar_versions:  History of calendar data versions.
  deadline_audit:     Append-only log of every calculation/validation
                      served by the API. Deadline decisions have legal
                      weight; the audit trail records which rule produced
                      which date from which inputs.

WAL MODE:
  SQLite is opened with WAL so API reads don't block audit writes.

CONCURRENCY:
  A RWMutex serializes writers. With PostgreSQL the database would handle
  this; the schema translates with only dialect changes.

USAGE:
  store, err := sqlite.New("./data/deadline.db")
  if err != nil {
      log.Fatal().Err(err).Msg("open store")
  }
  defer store.Close()

SEE ALSO:
  - calendar/provider.go: Consumer of the custom holiday set
  - api/handlers.go: Writes the audit log
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gridswitch/deadline-engine/calendar"
)

// Store implements persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store with the given database path. Use ":memory:" for
// an in-memory database.
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
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Active custom holiday set (replaced as a whole on update)
	CREATE TABLE IF NOT EXISTS custom_holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		holiday_type TEXT NOT NULL,
		regions TEXT,
		description TEXT,
		one_time INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_custom_holidays_date
		ON custom_holidays(date);

	-- Calendar data version history
	CREATE TABLE IF NOT EXISTS calendar_versions (
		version TEXT NOT NULL,
		year INTEGER NOT NULL,
		last_updated TEXT NOT NULL,
		PRIMARY KEY (version, year)
	);

	-- Append-only audit log of served deadline decisions
	CREATE TABLE IF NOT EXISTS deadline_audit (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		commodity TEXT NOT NULL,
		use_case TEXT NOT NULL,
		requires_termination INTEGER NOT NULL,
		from_date TEXT NOT NULL,
		earliest_date TEXT NOT NULL,
		proposed_date TEXT,
		rule_id TEXT NOT NULL,
		retrospective INTEGER NOT NULL,
		valid INTEGER,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_deadline_audit_created
		ON deadline_audit(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_deadline_audit_rule
		ON deadline_audit(rule_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CUSTOM HOLIDAYS
// =============================================================================

// ReplaceCustomHolidays swaps the stored custom holiday set atomically.
func (s *Store) ReplaceCustomHolidays(ctx context.Context, holidays []calendar.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_holidays`); err != nil {
		return fmt.Errorf("failed to clear custom holidays: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, h := range holidays {
		var regions []string
		for _, r := range h.Regions {
			regions = append(regions, string(r))
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO custom_holidays (id, date, name, holiday_type, regions, description, one_time, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), h.Date.String(), h.Name, string(h.Type),
			strings.Join(regions, ","), h.Description, boolInt(h.OneTime), now)
		if err != nil {
			return fmt.Errorf("failed to insert custom holiday %s: %w", h.Date, err)
		}
	}

	return tx.Commit()
}

// LoadCustomHolidays returns the stored custom holiday set ordered by date.
func (s *Store) LoadCustomHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, name, holiday_type, regions, description, one_time
		FROM custom_holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom holidays: %w", err)
	}
	defer rows.Close()

	var out []calendar.Holiday
	for rows.Next() {
		var dateStr, name, htype string
		var regionsStr, description sql.NullString
		var oneTime int
		if err := rows.Scan(&dateStr, &name, &htype, &regionsStr, &description, &oneTime); err != nil {
			return nil, fmt.Errorf("failed to scan custom holiday: %w", err)
		}

		date, err := calendar.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored custom holiday has bad date %q: %w", dateStr, err)
		}

		var regions []calendar.Region
		if regionsStr.Valid && regionsStr.String != "" {
			for _, r := range strings.Split(regionsStr.String, ",") {
				regions = append(regions, calendar.Region(r))
			}
		}

		out = append(out, calendar.Holiday{
			Date:        date,
			Name:        name,
			Type:        calendar.HolidayType(htype),
			Regions:     regions,
			Description: description.String,
			OneTime:     oneTime != 0,
		})
	}
	return out, rows.Err()
}

// =============================================================================
// CALENDAR VERSIONS
// =============================================================================

// SaveCalendarVersion upserts a calendar version record.
func (s *Store) SaveCalendarVersion(ctx context.Context, v calendar.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar_versions (version, year, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(version, year) DO UPDATE SET last_updated = excluded.last_updated`,
		v.Version, v.Year, v.LastUpdated.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save calendar version: %w", err)
	}
	return nil
}

// LatestCalendarVersion returns the most recently updated version record,
// or nil when none is stored.
func (s *Store) LatestCalendarVersion(ctx context.Context) (*calendar.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT version, year, last_updated
		FROM calendar_versions ORDER BY last_updated DESC LIMIT 1`)

	var v calendar.Version
	var updated string
	if err := row.Scan(&v.Version, &v.Year, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query calendar version: %w", err)
	}

	t, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		return nil, fmt.Errorf("stored version has bad timestamp %q: %w", updated, err)
	}
	v.LastUpdated = t
	return &v, nil
}

// =============================================================================
// DEADLINE AUDIT
// =============================================================================

// AuditEntry is one served deadline decision.
type AuditEntry struct {
	ID                  string
	Operation           string // "calculate" or "validate"
	Commodity           string
	UseCase             string
	RequiresTermination bool
	FromDate            string
	EarliestDate        string
	ProposedDate        string // empty for calculations
	RuleID              string
	Retrospective       bool
	Valid               *bool // nil for calculations
	CreatedAt           time.Time
}

// RecordDeadlineAudit appends one audit entry. The store assigns the ID
// and timestamp when unset.
func (s *Store) RecordDeadlineAudit(ctx context.Context, e AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var valid sql.NullInt64
	if e.Valid != nil {
		valid = sql.NullInt64{Int64: int64(boolInt(*e.Valid)), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deadline_audit
			(id, operation, commodity, use_case, requires_termination,
			 from_date, earliest_date, proposed_date, rule_id, retrospective, valid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Operation, e.Commodity, e.UseCase, boolInt(e.RequiresTermination),
		e.FromDate, e.EarliestDate, nullStr(e.ProposedDate), e.RuleID,
		boolInt(e.Retrospective), valid, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// ListDeadlineAudit returns the most recent audit entries, newest first.
func (s *Store) ListDeadlineAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, commodity, use_case, requires_termination,
		       from_date, earliest_date, proposed_date, rule_id, retrospective, valid, created_at
		FROM deadline_audit ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var requiresTermination, retrospective int
		var proposed sql.NullString
		var valid sql.NullInt64
		var created string
		if err := rows.Scan(&e.ID, &e.Operation, &e.Commodity, &e.UseCase, &requiresTermination,
			&e.FromDate, &e.EarliestDate, &proposed, &e.RuleID, &retrospective, &valid, &created); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.RequiresTermination = requiresTermination != 0
		e.Retrospective = retrospective != 0
		e.ProposedDate = proposed.String
		if valid.Valid {
			v := valid.Int64 != 0
			e.Valid = &v
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
