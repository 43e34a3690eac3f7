package models

import "time"

// Journal event types.
const (
	EventStatusChange = "STATUS_CHANGE"
	EventCommand      = "COMMAND"
	EventFault        = "FAULT"
	EventAlarm        = "ALARM"
	EventSecurity     = "SECURITY"
	EventSupply       = "SUPPLY"
	EventDiagnostic   = "DIAGNOSTIC"
)

// JournalEvent is a single audit row mirrored from the simulation log.
type JournalEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // STATUS_CHANGE | COMMAND | FAULT | ALARM | SECURITY | SUPPLY | DIAGNOSTIC
	Source      string    `json:"source"`      // reactor | fleet | supply | alarms | security | diagnostics
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
