package simulation

import (
	"fmt"
	"time"

	"pyrolysis_sim/internal/models"
)

// scheduleFunc runs fn once after d. time.AfterFunc in production.
type scheduleFunc func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// diagnostics is a one-shot delayed task guarded against re-entry.
type diagnostics struct {
	pending   bool
	startedAt time.Time
	last      *models.DiagnosticReport
}

// inspect builds findings from the committed state.
func inspect(faults models.Faults, plants []*models.SupplyPlant, alarms []models.ActiveAlarm, units []*models.SecondaryUnit) []string {
	var findings []string
	for _, name := range activeFaults(faults) {
		findings = append(findings, "fault active: "+name)
	}
	for _, p := range plants {
		for _, m := range p.Machines {
			if m.Health == models.MachineJammed {
				findings = append(findings, fmt.Sprintf("%s: %s jammed", p.Name, m.Name))
			}
		}
		if p.Overheating {
			findings = append(findings, fmt.Sprintf("%s: overheating at %.1f°C", p.Name, p.TemperatureC))
		}
		if p.Silo.LevelKg <= 0 {
			findings = append(findings, fmt.Sprintf("%s: output silo empty", p.Name))
		}
	}
	for _, u := range units {
		if u.Efficiency < 0.8 && u.Status == models.StatusStable {
			findings = append(findings, fmt.Sprintf("%s: low efficiency %.2f", u.Name, u.Efficiency))
		}
	}
	for _, a := range alarms {
		findings = append(findings, fmt.Sprintf("alarm %s %s at %.1f", a.Signal, a.Severity, a.Value))
	}
	if len(findings) == 0 {
		findings = append(findings, "all systems nominal")
	}
	return findings
}

func (d *diagnostics) report() *models.DiagnosticReport {
	if d.last == nil {
		return nil
	}
	r := *d.last
	r.Findings = append([]string(nil), d.last.Findings...)
	return &r
}
