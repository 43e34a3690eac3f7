package models

import "time"

// Security event categories.
const (
	CategoryMechanical = "MECHANICAL"
	CategoryFire       = "FIRE"
	CategoryDirective  = "DIRECTIVE"
	CategorySupply     = "SUPPLY"
	CategorySafety     = "SAFETY"
)

// Security event severities.
const (
	SecurityLow      = "LOW"
	SecurityMedium   = "MEDIUM"
	SecurityHigh     = "HIGH"
	SecurityCritical = "CRITICAL"
)

// Global security levels.
const (
	SecurityLevelNormal   = 1
	SecurityLevelLockdown = 5
)

type SecurityEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Sector    string    `json:"sector"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
}
