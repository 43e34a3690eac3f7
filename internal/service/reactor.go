package service

import (
	"errors"
	"fmt"
	"strings"

	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/simulation"
)

var ErrNoSetpoints = errors.New("no setpoints given")

type reactorEngine interface {
	Start() error
	Stop() error
	EmergencyStop()
	UpdateConfig(mutate func(*models.ReactorConfig)) error
	ApplyPreset(name string) error
	SetFault(name string, active bool) error
	RunDiagnostics() bool
}

type ReactorService struct {
	engine reactorEngine
}

func NewReactorService(engine reactorEngine) *ReactorService {
	return &ReactorService{engine: engine}
}

func (s *ReactorService) Start() error { return s.engine.Start() }
func (s *ReactorService) Stop() error { return s.engine.Stop() }
func (s *ReactorService) EmergencyStop() { s.engine.EmergencyStop() }

// UpdateSetpoints merges every non-nil field into the current configuration
// and commits it in one step. A rejected request changes nothing.
func (s *ReactorService) UpdateSetpoints(p SetpointParams) error {
	if p.empty() {
		return ErrNoSetpoints
	}
	var mode models.OperatingMode
	if p.Mode != nil {
		mode = models.OperatingMode(strings.ToUpper(strings.TrimSpace(*p.Mode)))
		if !mode.Valid() {
			return fmt.Errorf("%w: unknown mode %q", simulation.ErrInvalidSetpoint, *p.Mode)
		}
	}
	return s.engine.UpdateConfig(func(cfg *models.ReactorConfig) {
		if p.Mode != nil {
			cfg.Mode = mode
		}
		if p.TargetTempC != nil {
			cfg.TargetTempC = *p.TargetTempC
		}
		if p.ResidenceTimeS != nil {
			cfg.ResidenceTimeS = *p.ResidenceTimeS
		}
		if p.OxygenPct != nil {
			cfg.OxygenPct = *p.OxygenPct
		}
		if p.FeedRateKgH != nil {
			cfg.FeedRateKgH = *p.FeedRateKgH
		}
	})
}

func (s *ReactorService) ApplyPreset(name string) error {
	return s.engine.ApplyPreset(strings.ToLower(strings.TrimSpace(name)))
}

func (s *ReactorService) SetFault(name string, active bool) error {
	return s.engine.SetFault(strings.ToLower(strings.TrimSpace(name)), active)
}

func (s *ReactorService) RunDiagnostics() bool { return s.engine.RunDiagnostics() }
