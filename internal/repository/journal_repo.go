package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pyrolysis_sim/internal/models"
)

const insertJournalSQL = `
		INSERT INTO journal_events (id, occurred_at, type, source, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`

const selectJournalSQL = `SELECT id, occurred_at, type, source, message, meta FROM journal_events`

type JournalSQLite struct {
	db *sql.DB
}

func NewJournalSQLite(db *sql.DB) *JournalSQLite { return &JournalSQLite{db: db} }

var _ JournalRepo = (*JournalSQLite)(nil)

// Append inserts a new journal row. If EventID or OccurredAt are empty, they’re set.
func (r *JournalSQLite) Append(ctx context.Context, e models.JournalEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertJournalSQL,
		e.EventID,
		e.OccurredAt.Format("2006-01-02 15:04:05"),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		strings.ToLower(strings.TrimSpace(e.Source)),
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert journal event %s: %w", e.EventID, err)
	}
	return nil
}

// List returns journal rows matching f, oldest first. With a Limit only the
// newest Limit rows are kept.
func (r *JournalSQLite) List(ctx context.Context, f JournalFilter) ([]models.JournalEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if src := strings.ToLower(strings.TrimSpace(f.Source)); src != "" {
		conds = append(conds, "source = ?")
		args = append(args, src)
	}

	q := selectJournalSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	if f.Limit > 0 {
		q = `SELECT * FROM (` + q + ` ORDER BY occurred_at DESC LIMIT ?)`
		args = append(args, f.Limit)
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	out := make([]models.JournalEvent, 0, 64)
	for rows.Next() {
		var ev models.JournalEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Source, &ev.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return out, nil
}
