package models

import (
	"fmt"
	"time"
)

// SignalID names a monitored SignalSnapshot field.
type SignalID string

const (
	SignalReactorTemp     SignalID = "reactor_temp"
	SignalWallTemp        SignalID = "wall_temp"
	SignalPressure        SignalID = "pressure"
	SignalGasLinePressure SignalID = "gas_line_pressure"
	SignalCondenserTemp   SignalID = "condenser_temp"
	SignalGasCO           SignalID = "gas_co"
	SignalBioOilTank      SignalID = "bio_oil_tank"
	SignalCharBin         SignalID = "char_bin"
)

// Severity is an alarm tier. The zero value means no alarm.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "NONE"
	}
}

// MarshalText renders the severity by name in JSON.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "NONE", "":
		*s = SeverityNone
	case "MEDIUM":
		*s = SeverityMedium
	case "HIGH":
		*s = SeverityHigh
	case "CRITICAL":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

// AlarmConfig holds the three ascending thresholds of one signal.
// A zero threshold disables its tier.
type AlarmConfig struct {
	Enabled       bool    `json:"enabled"`
	Medium        float64 `json:"medium"`
	High          float64 `json:"high"`
	Critical      float64 `json:"critical"`
	MediumSound   string  `json:"medium_sound"`
	HighSound     string  `json:"high_sound"`
	CriticalSound string  `json:"critical_sound"`
}

// ActiveAlarm exists only while its threshold condition holds.
type ActiveAlarm struct {
	Signal    SignalID  `json:"signal"`
	Severity  Severity  `json:"severity"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Sound     string    `json:"sound,omitempty"`
	RaisedAt  time.Time `json:"raised_at"`
}
