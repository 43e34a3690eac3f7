package service

import "time"

// SetpointParams carries a partial setpoint update. Nil fields are left as is.
type SetpointParams struct {
	TargetTempC    *float64
	ResidenceTimeS *float64
	OxygenPct      *float64
	FeedRateKgH    *float64
	Mode           *string // BIOCHAR | BIO_OIL | SYNGAS
}

func (p SetpointParams) empty() bool {
	return p.TargetTempC == nil && p.ResidenceTimeS == nil && p.OxygenPct == nil &&
		p.FeedRateKgH == nil && p.Mode == nil
}

// LogFilter supports journal filtering by time range, type and source.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "STATUS_CHANGE", "COMMAND", "FAULT", "ALARM", "SECURITY", "SUPPLY", "DIAGNOSTIC"
	Source string    // "", "reactor", "fleet", "supply", "alarms", "security", "diagnostics"
	Limit  int       // 0 means unlimited
}
