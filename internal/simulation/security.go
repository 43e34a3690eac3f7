package simulation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"pyrolysis_sim/internal/models"
)

const (
	maxSecurityEvents  = 50
	sectorPrimary      = "PRIMARY"
	sectorFleetPrefix  = "FLEET/"
	sectorSupplyPrefix = "SUPPLY/"
)

// SecurityBus turns rising edges in plant state into discrete events. It
// keeps its own copy of the previous tick's flags so every rule fires
// once per edge.
type SecurityBus struct {
	level  int
	events []models.SecurityEvent

	jammed     map[string]bool // plantID/machine
	overheated map[string]bool
	compound   map[string]bool
	starved    map[string]bool
	estop      bool

	newID func() string
}

func NewSecurityBus() *SecurityBus {
	return &SecurityBus{
		level:      models.SecurityLevelNormal,
		jammed:     make(map[string]bool),
		overheated: make(map[string]bool),
		compound:   make(map[string]bool),
		starved:    make(map[string]bool),
		newID:      uuid.NewString,
	}
}

func (b *SecurityBus) Level() int { return b.level }

// ResetLevel returns the plant to normal security. Reports whether the level changed.
func (b *SecurityBus) ResetLevel() bool {
	if b.level == models.SecurityLevelNormal {
		return false
	}
	b.level = models.SecurityLevelNormal
	return true
}

// Events returns a copy, newest first.
func (b *SecurityBus) Events() []models.SecurityEvent {
	out := make([]models.SecurityEvent, len(b.events))
	copy(out, b.events)
	return out
}

// observePlants runs the supply rules against this tick's plant state.
func (b *SecurityBus) observePlants(plants []*models.SupplyPlant, now time.Time) []models.SecurityEvent {
	var fresh []models.SecurityEvent
	for _, p := range plants {
		sector := sectorSupplyPrefix + p.ID
		for _, m := range p.Machines {
			key := p.ID + "/" + m.Name
			isJammed := m.Health == models.MachineJammed
			if isJammed && !b.jammed[key] {
				fresh = append(fresh, b.event(now, sector, models.CategoryMechanical, models.SecurityMedium,
					fmt.Sprintf("%s: %s jammed", p.Name, m.Name)))
			}
			b.jammed[key] = isJammed
		}

		if p.Overheating && !b.overheated[p.ID] {
			fresh = append(fresh, b.event(now, sector, models.CategoryFire, models.SecurityHigh,
				fmt.Sprintf("%s: plant overheating at %.1f°C", p.Name, p.TemperatureC)))
		}
		b.overheated[p.ID] = p.Overheating

		compound := p.Jammed(p.CriticalMachine) && p.RiskScore > riskThreshold
		if compound && !b.compound[p.ID] {
			if b.level < models.SecurityLevelLockdown {
				b.level++
			}
			fresh = append(fresh, b.event(now, sector, models.CategoryDirective, models.SecurityCritical,
				fmt.Sprintf("%s: critical machine %s down at risk %.0f, security level %d", p.Name, p.CriticalMachine, p.RiskScore, b.level)))
		}
		b.compound[p.ID] = compound
	}
	return fresh
}

// observeUnits reports units that were starved on this tick.
func (b *SecurityBus) observeUnits(starved map[string]bool, units []*models.SecondaryUnit, now time.Time) []models.SecurityEvent {
	var fresh []models.SecurityEvent
	for _, u := range units {
		s := starved[u.ID]
		if s && !b.starved[u.ID] {
			fresh = append(fresh, b.event(now, sectorFleetPrefix+u.ID, models.CategorySupply, models.SecurityMedium,
				fmt.Sprintf("%s starved: %s silo empty", u.Name, u.Feedstock)))
		}
		b.starved[u.ID] = s
	}
	return fresh
}

func (b *SecurityBus) observeEmergencyStop(engaged bool, now time.Time) []models.SecurityEvent {
	defer func() { b.estop = engaged }()
	if engaged && !b.estop {
		return []models.SecurityEvent{b.event(now, sectorPrimary, models.CategorySafety, models.SecurityCritical,
			"Primary reactor emergency stop engaged")}
	}
	return nil
}

func (b *SecurityBus) event(now time.Time, sector, category, severity, msg string) models.SecurityEvent {
	return models.SecurityEvent{
		ID:        b.newID(),
		Timestamp: now,
		Sector:    sector,
		Category:  category,
		Message:   msg,
		Severity:  severity,
	}
}

// publish prepends fresh events and trims the list to its cap.
func (b *SecurityBus) publish(fresh []models.SecurityEvent) {
	if len(fresh) == 0 {
		return
	}
	merged := make([]models.SecurityEvent, 0, len(fresh)+len(b.events))
	for i := len(fresh) - 1; i >= 0; i-- {
		merged = append(merged, fresh[i])
	}
	merged = append(merged, b.events...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > maxSecurityEvents {
		merged = merged[:maxSecurityEvents]
	}
	b.events = merged
}
