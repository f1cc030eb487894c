// Package audit persists a log of generation requests: what was asked, which
// model answered, how long it took. The log also feeds the daily quota.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/toolsathi/toolsathi/pkg/models"
)

// Logger writes and queries generation log entries in SQLite.
type Logger struct {
	db   *sql.DB
	cfg  models.AuditConfig
	done chan struct{}
	wg   sync.WaitGroup
}

// New opens the audit SQLite database and creates the schema.
func New(cfg models.AuditConfig) (*Logger, error) {
	db, err := sql.Open("sqlite", cfg.DBPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}

	l := &Logger{
		db:   db,
		cfg:  cfg,
		done: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.retentionLoop()

	return l, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS generation_log (
		request_id  TEXT PRIMARY KEY,
		tool_id     TEXT NOT NULL,
		model       TEXT NOT NULL,
		input       TEXT,
		output      TEXT,
		status_code INTEGER,
		latency_ms  INTEGER,
		created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_genlog_tool ON generation_log(tool_id)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_genlog_created ON generation_log(created_at)`)
	return err
}

// NewRequestID returns a fresh request id for a generation call.
func NewRequestID() string {
	return uuid.NewString()
}

// Log inserts a generation log entry, truncating oversized output.
func (l *Logger) Log(ctx context.Context, entry models.GenerationLog) error {
	if l == nil || l.db == nil {
		return nil
	}
	if entry.RequestID == "" {
		entry.RequestID = NewRequestID()
	}

	output := entry.Output
	if l.cfg.MaxOutputSize > 0 && len(output) > l.cfg.MaxOutputSize {
		output = output[:l.cfg.MaxOutputSize]
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO generation_log
		(request_id, tool_id, model, input, output, status_code, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID, entry.ToolID, entry.Model, entry.Input, output,
		entry.StatusCode, entry.LatencyMs, entry.CreatedAt,
	)
	return err
}

// Query returns generation log entries matching the given options.
func (l *Logger) Query(ctx context.Context, opts models.GenerationLogQueryOpts) ([]models.GenerationLog, error) {
	q := `SELECT request_id, tool_id, model, input, output, status_code, latency_ms, created_at
		FROM generation_log WHERE 1=1`
	var args []any

	if opts.RequestID != "" {
		q += " AND request_id = ?"
		args = append(args, opts.RequestID)
	}
	if opts.ToolID != "" {
		q += " AND tool_id = ?"
		args = append(args, opts.ToolID)
	}
	if opts.Model != "" {
		q += " AND model = ?"
		args = append(args, opts.Model)
	}
	if !opts.Since.IsZero() {
		q += " AND created_at >= ?"
		args = append(args, opts.Since)
	}

	q += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	var entries []models.GenerationLog
	for rows.Next() {
		var e models.GenerationLog
		var input, output sql.NullString
		if err := rows.Scan(
			&e.RequestID, &e.ToolID, &e.Model, &input, &output,
			&e.StatusCode, &e.LatencyMs, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		e.Input = input.String
		e.Output = output.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountSince counts generations for a tool since a given time. An empty
// toolID counts across all tools.
func (l *Logger) CountSince(ctx context.Context, toolID string, since time.Time) (int64, error) {
	q := `SELECT COUNT(*) FROM generation_log WHERE created_at >= ?`
	args := []any{since}
	if toolID != "" {
		q += " AND tool_id = ?"
		args = append(args, toolID)
	}

	var count int64
	if err := l.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return count, nil
}

// Stats returns generation counts grouped by tool and day.
func (l *Logger) Stats(ctx context.Context) ([]models.GenerationStat, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT tool_id, date(created_at) as day, count(*) as cnt
		 FROM generation_log GROUP BY tool_id, day ORDER BY day DESC, tool_id`)
	if err != nil {
		return nil, fmt.Errorf("audit stats: %w", err)
	}
	defer rows.Close()

	var stats []models.GenerationStat
	for rows.Next() {
		var s models.GenerationStat
		var day sql.NullString
		if err := rows.Scan(&s.ToolID, &day, &s.Count); err != nil {
			return nil, fmt.Errorf("scan audit stat: %w", err)
		}
		s.Day = day.String
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Cleanup deletes entries older than the configured retention period.
func (l *Logger) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -l.cfg.RetentionDays)
	res, err := l.db.ExecContext(ctx,
		`DELETE FROM generation_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Close stops the retention goroutine and closes the database.
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait()
	return l.db.Close()
}

func (l *Logger) retentionLoop() {
	defer l.wg.Done()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			_, _ = l.Cleanup(context.Background())
		}
	}
}
