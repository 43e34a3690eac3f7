package models

// MachineHealth is the binary health of a supply plant machine.
type MachineHealth string

const (
	MachineOK     MachineHealth = "OK"
	MachineJammed MachineHealth = "JAMMED"
)

type Machine struct {
	Name   string        `json:"name"`
	Health MachineHealth `json:"health"`
}

// Silo is a capacity-bounded store of one feedstock.
type Silo struct {
	Feedstock  FeedstockKind `json:"feedstock"`
	LevelKg    float64       `json:"level_kg"`
	CapacityKg float64       `json:"capacity_kg"`
}

// LevelPct returns the fill level as a percentage of capacity.
func (s Silo) LevelPct() float64 {
	if s.CapacityKg <= 0 {
		return 0
	}
	return s.LevelKg / s.CapacityKg * 100
}

// SupplyPlant is one feed-preparation plant and its output silo.
type SupplyPlant struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Feedstock       FeedstockKind `json:"feedstock"`
	Running         bool          `json:"running"`
	Machines        []Machine     `json:"machines"`
	CriticalMachine string        `json:"critical_machine"`
	NominalRateKgH  float64       `json:"nominal_rate_kg_h"`
	ThroughputKgH   float64       `json:"throughput_kg_h"`
	RawStockKg      float64       `json:"raw_stock_kg"`
	RawCapacityKg   float64       `json:"raw_capacity_kg"`
	InputRatio      float64       `json:"input_ratio"` // kg raw per kg product
	Silo            Silo          `json:"silo"`
	ImpurityPct     float64       `json:"impurity_pct"`
	Purity          float64       `json:"purity_pct"`
	Moisture        float64       `json:"moisture_pct"`
	TemperatureC    float64       `json:"temperature_c"`
	Overheating     bool          `json:"overheating"`
	RiskScore       float64       `json:"risk_score"`
}

// Jammed reports whether the named machine is jammed.
func (p *SupplyPlant) Jammed(name string) bool {
	for _, m := range p.Machines {
		if m.Name == name {
			return m.Health == MachineJammed
		}
	}
	return false
}

// AllOK reports whether every machine of the plant is healthy.
func (p *SupplyPlant) AllOK() bool {
	for _, m := range p.Machines {
		if m.Health != MachineOK {
			return false
		}
	}
	return true
}
