package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pyrolysis_sim/internal/models"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []models.SecurityEvent
	err    error
}

func (p *fakePublisher) PublishSecurityEvent(_ context.Context, ev models.SecurityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() {}

func TestStripStamp(t *testing.T) {
	cases := map[string]string{
		"[12:00:01] Reactor started": "Reactor started",
		"no stamp":                   "no stamp",
		"[broken":                    "[broken",
	}
	for in, want := range cases {
		if got := stripStamp(in); got != want {
			t.Errorf("stripStamp(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJournalWriter_FlushesOnCancel(t *testing.T) {
	repo := &fakeJournalRepo{}
	pub := &fakePublisher{}
	w := NewJournalWriter(repo, pub, 8, nil)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	w.RecordLog(models.LogLine{At: at, Source: "reactor", Type: models.EventStatusChange, Text: "[12:00:00] Status changed to HEATING"})
	w.RecordSecurity(models.SecurityEvent{ID: "sec-1", Category: models.CategoryFire})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected 1 journal row, got %d", len(repo.appended))
	}
	row := repo.appended[0]
	if row.Description != "Status changed to HEATING" || row.Source != "reactor" || !row.OccurredAt.Equal(at) {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.EventID == "" {
		t.Fatal("expected an event id")
	}
	if len(pub.events) != 1 || pub.events[0].ID != "sec-1" {
		t.Fatalf("expected security event published, got %+v", pub.events)
	}
}

func TestJournalWriter_DropsWhenFull(t *testing.T) {
	w := NewJournalWriter(&fakeJournalRepo{}, nil, 1, nil)

	w.RecordLog(models.LogLine{Text: "first"})
	w.RecordLog(models.LogLine{Text: "second"})
	w.RecordSecurity(models.SecurityEvent{ID: "x"})

	if got := w.Dropped(); got != 2 {
		t.Fatalf("Dropped = %d, want 2", got)
	}
}

func TestJournalWriter_ErrorsDoNotStopWriter(t *testing.T) {
	repo := &fakeJournalRepo{appendErr: errors.New("disk full")}
	pub := &fakePublisher{err: errors.New("nats down")}
	w := NewJournalWriter(repo, pub, 4, nil)

	w.RecordLog(models.LogLine{Text: "a"})
	w.RecordSecurity(models.SecurityEvent{ID: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("publish should still be attempted, got %d", len(pub.events))
	}
}

type blockingEngine struct {
	ran chan struct{}
}

func (b *blockingEngine) Run(ctx context.Context) {
	close(b.ran)
	<-ctx.Done()
}

func TestSimulatorService_RunStopsOnCancel(t *testing.T) {
	eng := &blockingEngine{ran: make(chan struct{})}
	svc := NewSimulatorService(eng, NewJournalWriter(&fakeJournalRepo{}, nil, 4, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	<-eng.ran
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("simulator did not stop after cancel")
	}
}
