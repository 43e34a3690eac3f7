package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/repository"
)

const maxJournalPage = 1000

type EventLogService struct {
	journal repository.JournalRepo
}

func NewEventLogService(journal repository.JournalRepo) *EventLogService {
	return &EventLogService{journal: journal}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errInvalidLimit     = errors.New("invalid limit: must be >= 0")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the
// time range and page size.
func normalizeAndValidateFilter(f LogFilter) (repository.JournalFilter, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.JournalFilter{}, errInvalidTimeRange
	}
	if f.Limit < 0 {
		return repository.JournalFilter{}, errInvalidLimit
	}
	limit := f.Limit
	if limit == 0 || limit > maxJournalPage {
		limit = maxJournalPage
	}

	return repository.JournalFilter{
		From:   from,
		To:     to,
		Type:   normalizeEventType(f.Type),
		Source: strings.TrimSpace(strings.ToLower(f.Source)),
		Limit:  limit,
	}, nil
}

// IsFilterError reports whether err came from filter validation.
func IsFilterError(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, errInvalidLimit)
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.JournalEvent, error) {
	jf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.journal.List(ctx, jf)
}
