package models

import "time"

// DiagnosticReport is the outcome of a simulated diagnostic run.
type DiagnosticReport struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Findings    []string  `json:"findings"`
}

// PlantState is the read-only surface exposed to the dashboard.
type PlantState struct {
	Primary        SignalSnapshot    `json:"primary"`
	Config         ReactorConfig     `json:"config"`
	Faults         Faults            `json:"faults"`
	Units          []SecondaryUnit   `json:"units"`
	Plants         []SupplyPlant     `json:"plants"`
	Economics      FleetEconomics    `json:"economics"`
	Alarms         []ActiveAlarm     `json:"alarms"`
	SecurityLevel  int               `json:"security_level"`
	SecurityEvents []SecurityEvent   `json:"security_events"`
	Diagnostics    *DiagnosticReport `json:"diagnostics,omitempty"`
	DiagnosticsRun bool              `json:"diagnostics_running"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
