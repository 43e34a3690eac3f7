package service

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/messaging"
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/repository"
)

const defaultJournalBuffer = 256

type journalItem struct {
	event    *models.JournalEvent
	security *models.SecurityEvent
}

// JournalWriter mirrors engine log lines into the audit journal and forwards
// security events to the outbound sink. RecordLog and RecordSecurity are
// called under the engine lock and never block; when the buffer is full the
// item is dropped and counted.
type JournalWriter struct {
	repo    repository.JournalRepo
	pub     messaging.Publisher
	log     *logger.Logger
	items   chan journalItem
	dropped atomic.Int64
}

func NewJournalWriter(repo repository.JournalRepo, pub messaging.Publisher, buffer int, log *logger.Logger) *JournalWriter {
	if buffer <= 0 {
		buffer = defaultJournalBuffer
	}
	if pub == nil {
		pub = messaging.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &JournalWriter{repo: repo, pub: pub, log: log, items: make(chan journalItem, buffer)}
}

// RecordLog is the engine log hook.
func (w *JournalWriter) RecordLog(line models.LogLine) {
	ev := models.JournalEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  line.At,
		Type:        line.Type,
		Source:      line.Source,
		Description: stripStamp(line.Text),
	}
	w.enqueue(journalItem{event: &ev})
}

// RecordSecurity is the engine security hook. The matching log line reaches
// the journal through RecordLog; only the sink gets the structured event.
func (w *JournalWriter) RecordSecurity(ev models.SecurityEvent) {
	w.enqueue(journalItem{security: &ev})
}

func (w *JournalWriter) enqueue(it journalItem) {
	select {
	case w.items <- it:
	default:
		n := w.dropped.Add(1)
		w.log.Warnw("journal_item_dropped", "dropped_total", n)
	}
}

// Dropped returns how many items were discarded because the buffer was full.
func (w *JournalWriter) Dropped() int64 { return w.dropped.Load() }

// Run writes queued items until ctx is cancelled, then flushes what is left.
func (w *JournalWriter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush(context.WithoutCancel(ctx))
			return nil
		case it := <-w.items:
			w.write(ctx, it)
		}
	}
}

func (w *JournalWriter) flush(ctx context.Context) {
	for {
		select {
		case it := <-w.items:
			w.write(ctx, it)
		default:
			return
		}
	}
}

func (w *JournalWriter) write(ctx context.Context, it journalItem) {
	if it.event != nil && w.repo != nil {
		if err := w.repo.Append(ctx, *it.event); err != nil {
			w.log.Errorw("journal_append_failed", "event_id", it.event.EventID, "err", err)
		}
	}
	if it.security != nil {
		if err := w.pub.PublishSecurityEvent(ctx, *it.security); err != nil {
			w.log.Warnw("security_publish_failed", "event_id", it.security.ID, "err", err)
		}
	}
}

// stripStamp drops the "[15:04:05] " prefix of a log line.
func stripStamp(text string) string {
	if strings.HasPrefix(text, "[") {
		if _, msg, ok := strings.Cut(text, "] "); ok {
			return msg
		}
	}
	return text
}
