package service

import "strings"

type fleetEngine interface {
	ApplyFleetPreset(name string) error
	StartIdleUnits() int
	StopRunningUnits() int
	StartUnit(id string) error
	StopUnit(id string) error
}

// FleetService drives the secondary reactor units.
type FleetService struct {
	engine fleetEngine
}

func NewFleetService(engine fleetEngine) *FleetService {
	return &FleetService{engine: engine}
}

func (s *FleetService) ApplyFleetPreset(name string) error {
	return s.engine.ApplyFleetPreset(strings.ToLower(strings.TrimSpace(name)))
}

func (s *FleetService) StartIdleUnits() int { return s.engine.StartIdleUnits() }
func (s *FleetService) StopRunningUnits() int { return s.engine.StopRunningUnits() }

func (s *FleetService) StartUnit(id string) error { return s.engine.StartUnit(normalizeID(id)) }
func (s *FleetService) StopUnit(id string) error { return s.engine.StopUnit(normalizeID(id)) }

type supplyEngine interface {
	SetPlantRunning(id string, running bool) error
	SetPlantImpurity(id string, pct float64) error
	RestockPlant(id string, kg float64) (float64, error)
}

// SupplyService drives the feed-preparation plants.
type SupplyService struct {
	engine supplyEngine
}

func NewSupplyService(engine supplyEngine) *SupplyService {
	return &SupplyService{engine: engine}
}

func (s *SupplyService) SetPlantRunning(id string, running bool) error {
	return s.engine.SetPlantRunning(strings.ToLower(strings.TrimSpace(id)), running)
}

func (s *SupplyService) SetPlantImpurity(id string, pct float64) error {
	return s.engine.SetPlantImpurity(strings.ToLower(strings.TrimSpace(id)), pct)
}

func (s *SupplyService) RestockPlant(id string, kg float64) (float64, error) {
	return s.engine.RestockPlant(strings.ToLower(strings.TrimSpace(id)), kg)
}

// unit ids are upper case, e.g. R-02
func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
