package service

import (
	"strings"

	"pyrolysis_sim/internal/models"
)

type alarmEngine interface {
	State() models.PlantState
	AlarmConfigs() map[models.SignalID]models.AlarmConfig
	SetAlarmConfig(id models.SignalID, cfg models.AlarmConfig) error
}

type AlarmService struct {
	engine alarmEngine
}

func NewAlarmService(engine alarmEngine) *AlarmService {
	return &AlarmService{engine: engine}
}

func (s *AlarmService) ActiveAlarms() []models.ActiveAlarm {
	return s.engine.State().Alarms
}

func (s *AlarmService) AlarmConfigs() map[models.SignalID]models.AlarmConfig {
	return s.engine.AlarmConfigs()
}

func (s *AlarmService) SetAlarmConfig(signal string, cfg models.AlarmConfig) error {
	id := models.SignalID(strings.ToLower(strings.TrimSpace(signal)))
	return s.engine.SetAlarmConfig(id, cfg)
}

type securityEngine interface {
	State() models.PlantState
	ResetSecurityLevel() bool
}

type SecurityService struct {
	engine securityEngine
}

func NewSecurityService(engine securityEngine) *SecurityService {
	return &SecurityService{engine: engine}
}

// SecurityEvents returns the retained events, newest first.
func (s *SecurityService) SecurityEvents() []models.SecurityEvent {
	return s.engine.State().SecurityEvents
}

func (s *SecurityService) SecurityLevel() int {
	return s.engine.State().SecurityLevel
}

func (s *SecurityService) ResetSecurityLevel() bool {
	return s.engine.ResetSecurityLevel()
}
