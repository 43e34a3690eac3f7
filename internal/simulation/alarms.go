package simulation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"pyrolysis_sim/internal/models"
)

var ErrUnknownSignal = errors.New("unknown alarm signal")

const (
	soundChime  = "chime"
	soundKlaxon = "klaxon"
	soundSiren  = "siren"
)

// signalReaders maps each monitored signal to the snapshot field it watches.
var signalReaders = map[models.SignalID]func(models.SignalSnapshot) float64{
	models.SignalReactorTemp:     func(s models.SignalSnapshot) float64 { return s.ThermocoupleTempC },
	models.SignalWallTemp:        func(s models.SignalSnapshot) float64 { return s.WallTempC },
	models.SignalPressure:        func(s models.SignalSnapshot) float64 { return s.PressureKPa },
	models.SignalGasLinePressure: func(s models.SignalSnapshot) float64 { return s.GasLinePressureKPa },
	models.SignalCondenserTemp:   func(s models.SignalSnapshot) float64 { return s.CondenserTempC },
	models.SignalGasCO:           func(s models.SignalSnapshot) float64 { return s.GasCOPct },
	models.SignalBioOilTank:      func(s models.SignalSnapshot) float64 { return s.BioOilTankPct },
	models.SignalCharBin:         func(s models.SignalSnapshot) float64 { return s.CharBinLevelPct },
}

func tiered(medium, high, critical float64) models.AlarmConfig {
	return models.AlarmConfig{
		Enabled:       true,
		Medium:        medium,
		High:          high,
		Critical:      critical,
		MediumSound:   soundChime,
		HighSound:     soundKlaxon,
		CriticalSound: soundSiren,
	}
}

// DefaultAlarmConfigs returns a fresh copy of the factory thresholds.
func DefaultAlarmConfigs() map[models.SignalID]models.AlarmConfig {
	return map[models.SignalID]models.AlarmConfig{
		models.SignalReactorTemp:     tiered(620, 680, 750),
		models.SignalWallTemp:        tiered(680, 740, 820),
		models.SignalPressure:        tiered(110, 113, 116),
		models.SignalGasLinePressure: tiered(108, 112, 118),
		models.SignalCondenserTemp:   tiered(45, 55, 65),
		models.SignalGasCO:           tiered(40, 45, 50),
		models.SignalBioOilTank:      tiered(80, 90, 98),
		models.SignalCharBin:         tiered(80, 90, 98),
	}
}

// classify returns the highest tier met by value. Tiers are checked from
// critical down and compared literally, so inverted thresholds are honoured
// as configured.
func classify(cfg models.AlarmConfig, value float64) (models.Severity, float64, string) {
	if !cfg.Enabled {
		return models.SeverityNone, 0, ""
	}
	switch {
	case cfg.Critical != 0 && value >= cfg.Critical:
		return models.SeverityCritical, cfg.Critical, cfg.CriticalSound
	case cfg.High != 0 && value >= cfg.High:
		return models.SeverityHigh, cfg.High, cfg.HighSound
	case cfg.Medium != 0 && value >= cfg.Medium:
		return models.SeverityMedium, cfg.Medium, cfg.MediumSound
	}
	return models.SeverityNone, 0, ""
}

// AlarmChange describes one raise, escalation, de-escalation or clear.
type AlarmChange struct {
	Signal models.SignalID
	From   models.Severity
	To     models.Severity
	Value  float64
}

func (c AlarmChange) String() string {
	switch {
	case c.To == models.SeverityNone:
		return fmt.Sprintf("Alarm cleared: %s (%.1f)", c.Signal, c.Value)
	case c.From == models.SeverityNone:
		return fmt.Sprintf("Alarm raised: %s %s (%.1f)", c.Signal, c.To, c.Value)
	case c.To > c.From:
		return fmt.Sprintf("Alarm escalated: %s %s -> %s (%.1f)", c.Signal, c.From, c.To, c.Value)
	default:
		return fmt.Sprintf("Alarm eased: %s %s -> %s (%.1f)", c.Signal, c.From, c.To, c.Value)
	}
}

// AlarmEvaluator is level triggered: an alarm lives exactly as long as its
// condition holds on the latest evaluated snapshot.
type AlarmEvaluator struct {
	configs map[models.SignalID]models.AlarmConfig
	active  map[models.SignalID]models.ActiveAlarm
}

func NewAlarmEvaluator(configs map[models.SignalID]models.AlarmConfig) *AlarmEvaluator {
	if configs == nil {
		configs = DefaultAlarmConfigs()
	}
	return &AlarmEvaluator{
		configs: configs,
		active:  make(map[models.SignalID]models.ActiveAlarm),
	}
}

// Evaluate recomputes every alarm against s and reports what changed.
func (a *AlarmEvaluator) Evaluate(s models.SignalSnapshot, now time.Time) []AlarmChange {
	var changes []AlarmChange
	for _, id := range sortedSignals() {
		value := signalReaders[id](s)
		sev, threshold, sound := classify(a.configs[id], value)
		prev, had := a.active[id]

		if sev == models.SeverityNone {
			if had {
				delete(a.active, id)
				changes = append(changes, AlarmChange{Signal: id, From: prev.Severity, To: sev, Value: value})
			}
			continue
		}

		raisedAt := now
		if had {
			raisedAt = prev.RaisedAt
		}
		a.active[id] = models.ActiveAlarm{
			Signal:    id,
			Severity:  sev,
			Value:     value,
			Threshold: threshold,
			Sound:     sound,
			RaisedAt:  raisedAt,
		}
		if !had || prev.Severity != sev {
			changes = append(changes, AlarmChange{Signal: id, From: prev.Severity, To: sev, Value: value})
		}
	}
	return changes
}

// SetConfig replaces the thresholds of one signal. The next evaluation
// applies them.
func (a *AlarmEvaluator) SetConfig(id models.SignalID, cfg models.AlarmConfig) error {
	if _, ok := signalReaders[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSignal, id)
	}
	a.configs[id] = cfg
	return nil
}

func (a *AlarmEvaluator) Configs() map[models.SignalID]models.AlarmConfig {
	out := make(map[models.SignalID]models.AlarmConfig, len(a.configs))
	for id, cfg := range a.configs {
		out[id] = cfg
	}
	return out
}

// Active returns the current alarms, most severe first.
func (a *AlarmEvaluator) Active() []models.ActiveAlarm {
	out := make([]models.ActiveAlarm, 0, len(a.active))
	for _, al := range a.active {
		out = append(out, al)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Signal < out[j].Signal
	})
	return out
}

func sortedSignals() []models.SignalID {
	ids := make([]models.SignalID, 0, len(signalReaders))
	for id := range signalReaders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
