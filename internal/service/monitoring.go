package service

import (
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/simulation"
)

const (
	defaultRecentLogs = 20
	maxRecentLogs     = 100
)

type monitoringEngine interface {
	State() models.PlantState
	History() []models.HistorySample
	Logs(n int) []models.LogLine
	Diagnostics() *models.DiagnosticReport
}

type MonitoringService struct {
	engine monitoringEngine
}

func NewMonitoringService(engine monitoringEngine) *MonitoringService {
	return &MonitoringService{engine: engine}
}

// GetState returns the latest committed plant state.
func (s *MonitoringService) GetState() models.PlantState {
	return s.engine.State()
}

func (s *MonitoringService) History() []models.HistorySample {
	return s.engine.History()
}

// RecentLogs returns the newest n log lines, oldest first. Non-positive n
// falls back to a default page; n is capped at the buffer size.
func (s *MonitoringService) RecentLogs(n int) []models.LogLine {
	switch {
	case n <= 0:
		n = defaultRecentLogs
	case n > maxRecentLogs:
		n = maxRecentLogs
	}
	return s.engine.Logs(n)
}

func (s *MonitoringService) Diagnostics() *models.DiagnosticReport {
	return s.engine.Diagnostics()
}

func (s *MonitoringService) Presets() []simulation.Preset {
	return simulation.Presets()
}
