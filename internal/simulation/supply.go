package simulation

import (
	"errors"
	"fmt"
	"math"

	"pyrolysis_sim/internal/models"
)

// ----------- Supply chain constants -----------
// Jam/recovery odds and the thermal/risk model are tuned constants.
const (
	jamProbability     = 0.002 // per machine per tick, OK -> JAMMED
	recoverProbability = 0.05  // per machine per tick, JAMMED -> OK

	plantNominalC  = 60.0
	plantOverheatC = 90.0
	jamHeatC       = 1.5 // °C per jammed machine per tick
	plantCoolC     = 0.5 // °C relaxation per tick

	riskPerJam     = 4.0
	riskOverheat   = 10.0
	riskDecay      = 1.5
	riskThreshold  = 60.0
	riskMax        = 100.0
	conveyorKgH    = 300.0 // pellet conveyor into the primary hopper
	hopperRefillAt = 40.0  // hopper percentage below which the conveyor runs
)

var ErrUnknownPlant = errors.New("unknown supply plant")

// qualityProfile maps configured impurity to output purity and moisture.
type qualityProfile struct {
	basePurity, purityPerImpurity     float64
	baseMoisture, moisturePerImpurity float64
}

var qualityProfiles = map[models.FeedstockKind]qualityProfile{
	models.FeedstockPellet: {basePurity: 99.5, purityPerImpurity: 1.1, baseMoisture: 7, moisturePerImpurity: 0.12},
	models.FeedstockRubber: {basePurity: 98, purityPerImpurity: 1.4, baseMoisture: 1.2, moisturePerImpurity: 0.05},
}

// updateQuality derives purity and moisture from the impurity input.
func updateQuality(p *models.SupplyPlant) {
	q, ok := qualityProfiles[p.Feedstock]
	if !ok {
		q = qualityProfiles[models.FeedstockPellet]
	}
	p.Purity = clamp(q.basePurity-p.ImpurityPct*q.purityPerImpurity, 0, 100)
	p.Moisture = clamp(q.baseMoisture+p.ImpurityPct*q.moisturePerImpurity, 0, 100)
}

// stepPlant advances one plant by a tick and returns the kg it produced.
// The silo itself is settled by the caller together with fleet consumption.
func stepPlant(p *models.SupplyPlant, chance func() float64) float64 {
	if p.Running {
		for i := range p.Machines {
			m := &p.Machines[i]
			switch m.Health {
			case models.MachineOK:
				if chance() < jamProbability {
					m.Health = models.MachineJammed
				}
			case models.MachineJammed:
				if chance() < recoverProbability {
					m.Health = models.MachineOK
				}
			}
		}
	}

	p.ThroughputKgH = 0
	if p.Running && p.AllOK() && p.RawStockKg > 0 {
		p.ThroughputKgH = p.NominalRateKgH
	}
	produced := p.ThroughputKgH / 3600
	if p.InputRatio > 0 {
		produced = math.Min(produced, p.RawStockKg/p.InputRatio)
	}
	p.RawStockKg = clamp(p.RawStockKg-produced*p.InputRatio, 0, p.RawCapacityKg)
	updateQuality(p)

	jammed := 0
	for _, m := range p.Machines {
		if m.Health == models.MachineJammed {
			jammed++
		}
	}
	rest := AmbientC
	if p.Running {
		rest = plantNominalC
	}
	if p.Running && jammed > 0 {
		p.TemperatureC += jamHeatC * float64(jammed)
	} else if p.TemperatureC > rest {
		p.TemperatureC = math.Max(p.TemperatureC-plantCoolC, rest)
	} else {
		p.TemperatureC = math.Min(p.TemperatureC+plantCoolC, rest)
	}
	p.Overheating = p.TemperatureC > plantOverheatC

	switch {
	case jammed > 0 || p.Overheating:
		p.RiskScore += riskPerJam * float64(jammed)
		if p.Overheating {
			p.RiskScore += riskOverheat
		}
	default:
		p.RiskScore -= riskDecay
	}
	p.RiskScore = clamp(p.RiskScore, 0, riskMax)
	return produced
}

// settleSilo applies one tick of production and consumption against the
// previous level. Consumption can only draw on what was there last tick.
// It returns the kg actually consumed.
func settleSilo(s *models.Silo, prevKg, producedKg, demandKg float64) float64 {
	consumed := math.Min(demandKg, math.Max(prevKg, 0))
	s.LevelKg = clamp(prevKg+producedKg-consumed, 0, s.CapacityKg)
	return consumed
}

func findPlant(plants []*models.SupplyPlant, id string) (*models.SupplyPlant, error) {
	for _, p := range plants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlant, id)
}

func copyPlant(p *models.SupplyPlant) models.SupplyPlant {
	out := *p
	out.Machines = append([]models.Machine(nil), p.Machines...)
	return out
}
