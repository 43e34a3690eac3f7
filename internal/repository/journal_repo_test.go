package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pyrolysis_sim/internal/models"
)

var journalColumns = []string{"id", "occurred_at", "type", "source", "message", "meta"}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newJournalMock(t *testing.T) (*JournalSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewJournalSQLite(db), mock
}

func TestJournalAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertJournalSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			"STATUS_CHANGE", "reactor", "Heating started",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.JournalEvent{
		// EventID empty -> repo generates
		// OccurredAt zero -> repo sets UTC now
		Type:        " status_change ",
		Source:      "Reactor",
		Description: "Heating started",
		Metadata:    map[string]any{"target_c": 450},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestJournalAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	mock.ExpectExec("INSERT INTO journal_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.JournalEvent{Type: "alarm", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestJournalList_NoFilters_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"category": "FIRE"})

	rows := sqlmock.NewRows(journalColumns).
		AddRow("1", now, "SECURITY", "security", "overheating", string(js)).
		AddRow("2", now.Add(time.Hour), "COMMAND", "reactor", "start", nil).
		AddRow("3", now.Add(2*time.Hour), "COMMAND", "reactor", "stop", "{not json")

	mock.ExpectQuery(regexp.QuoteMeta(selectJournalSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), JournalFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	b, _ := json.Marshal(got[0].Metadata)
	if string(b) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", b, js)
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "{not json" {
		t.Fatalf("malformed meta should be kept raw, got %#v", got[2].Metadata)
	}
}

func TestJournalList_WithFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	from := time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectJournalSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? AND source = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows(journalColumns).
		AddRow("2", from, "ALARM", "alarms", "raised", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from, to, "ALARM", "alarms").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), JournalFilter{From: from, To: to, Type: " alarm ", Source: "Alarms"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Source != "alarms" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestJournalList_Limit(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	query := `SELECT * FROM (` + selectJournalSQL + ` WHERE type = ? ORDER BY occurred_at DESC LIMIT ?) ORDER BY occurred_at ASC`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("SECURITY", 10).
		WillReturnRows(sqlmock.NewRows(journalColumns))

	got, err := repo.List(ctx(t), JournalFilter{Type: "security", Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %d", len(got))
	}
}

func TestJournalList_ScanError(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	rows := sqlmock.NewRows(journalColumns).
		// occurred_at wrong type to force scan error
		AddRow("x", 123, "ALARM", "alarms", "msg", nil)
	mock.ExpectQuery("SELECT id, occurred_at").WillReturnRows(rows)

	if _, err := repo.List(ctx(t), JournalFilter{}); err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestJournalList_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newJournalMock(t)

	mock.ExpectQuery("SELECT id, occurred_at").WillReturnError(sql.ErrConnDone)

	_, err := repo.List(ctx(t), JournalFilter{})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone, got %v", err)
	}
}
