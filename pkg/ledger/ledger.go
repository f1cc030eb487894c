package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/toolsathi/toolsathi/pkg/models"
)

// Ledger records and queries per-tool usage counters.
type Ledger interface {
	// Record increments the counter for a tool, creating the row on first use.
	// The increment is a single atomic upsert; a client retry after a lost
	// response double-counts, which is accepted as best-effort behavior.
	Record(ctx context.Context, toolID string) error
	// List returns all counters as stored. Callers sort for display.
	List(ctx context.Context) ([]models.UsageRecord, error)
	// Count returns the current counter for a tool, 0 if never used.
	Count(ctx context.Context, toolID string) (int64, error)
	// Total returns the sum of all counters.
	Total(ctx context.Context) (int64, error)
	// Close releases resources.
	Close() error
}

// SQLiteLedger implements Ledger with a SQLite database.
type SQLiteLedger struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS tool_usage (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tool_id TEXT UNIQUE,
	usage_count INTEGER DEFAULT 0
);
`

// New creates a SQLiteLedger and runs auto-migration.
func New(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger db: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Record upserts the row for toolID and increments its counter by one.
func (l *SQLiteLedger) Record(ctx context.Context, toolID string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO tool_usage (tool_id, usage_count) VALUES (?, 1)
		 ON CONFLICT(tool_id) DO UPDATE SET usage_count = usage_count + 1`,
		toolID,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// List returns all usage rows in storage order.
func (l *SQLiteLedger) List(ctx context.Context) ([]models.UsageRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, tool_id, usage_count FROM tool_usage`)
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	var records []models.UsageRecord
	for rows.Next() {
		var r models.UsageRecord
		if err := rows.Scan(&r.ID, &r.ToolID, &r.UsageCount); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the counter for a tool, 0 if the tool has never been used.
func (l *SQLiteLedger) Count(ctx context.Context, toolID string) (int64, error) {
	var count int64
	err := l.db.QueryRowContext(ctx,
		`SELECT usage_count FROM tool_usage WHERE tool_id = ?`, toolID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return count, nil
}

// Total returns the sum of all counters.
func (l *SQLiteLedger) Total(ctx context.Context) (int64, error) {
	var total int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(usage_count), 0) FROM tool_usage`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total usage: %w", err)
	}
	return total, nil
}

// Close releases the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
