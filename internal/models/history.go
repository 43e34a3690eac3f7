package models

import "time"

// HistorySample is a timestamped copy of a committed snapshot.
type HistorySample struct {
	At       time.Time      `json:"at"`
	Snapshot SignalSnapshot `json:"snapshot"`
}

// LogLine is one human-readable entry of the event log buffer.
type LogLine struct {
	At     time.Time `json:"at"`
	Source string    `json:"source"`
	Type   string    `json:"type"`
	Text   string    `json:"text"` // "[15:04:05] message"
}
