package simulation

import (
	"errors"
	"fmt"
	"time"

	"pyrolysis_sim/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid reactor transition")
	ErrInvalidSetpoint   = errors.New("invalid setpoint")
)

// Setpoint bounds.
const (
	maxResidenceS = 7200.0
	maxOxygenPct  = 21.0
	maxFeedKgH    = 500.0
)

type command int

const (
	cmdNone command = iota
	cmdStart
	cmdStop
)

// PrimaryReactor owns the status of the flagship unit and its committed snapshot.
type PrimaryReactor struct {
	status    models.ReactorStatus
	cfg       models.ReactorConfig
	faults    models.Faults
	pending   command
	committed models.SignalSnapshot
	noise     noiseFunc
	emit      emitFunc
}

func newPrimaryReactor(initial models.SignalSnapshot, cfg models.ReactorConfig, noise noiseFunc, emit emitFunc) *PrimaryReactor {
	return &PrimaryReactor{
		status:    models.StatusOff,
		cfg:       cfg,
		committed: initial,
		noise:     noise,
		emit:      emit,
	}
}

func (r *PrimaryReactor) Config() models.ReactorConfig { return r.cfg }

func (r *PrimaryReactor) Faults() models.Faults { return r.faults }

// Committed returns the last snapshot published by tick.
func (r *PrimaryReactor) Committed() models.SignalSnapshot { return r.committed }

// RequestStart latches a start command for the next tick. Only legal from OFF.
func (r *PrimaryReactor) RequestStart() error {
	if r.status != models.StatusOff {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, r.status)
	}
	r.pending = cmdStart
	return nil
}

// RequestStop latches a stop command for the next tick. Only legal from STABLE.
func (r *PrimaryReactor) RequestStop() error {
	if r.status != models.StatusStable {
		return fmt.Errorf("%w: cannot stop from %s", ErrInvalidTransition, r.status)
	}
	r.pending = cmdStop
	return nil
}

// EmergencyStop forces OFF immediately from any status.
func (r *PrimaryReactor) EmergencyStop(now time.Time) {
	from := r.status
	r.status = models.StatusOff
	r.pending = cmdNone
	next := emergencyStopSnapshot(r.committed)
	next.Timestamp = now
	next.Seq = r.committed.Seq + 1
	r.committed = next
	r.emit(sourceReactor, models.EventStatusChange, fmt.Sprintf("Emergency stop engaged (was %s)", from))
}

// tick advances the reactor by one second. deliveredKg is feedstock the
// conveyor dropped into the hopper since the last primary tick.
func (r *PrimaryReactor) tick(now time.Time, deliveredKg float64) models.SignalSnapshot {
	prev := r.committed

	switch {
	case r.pending == cmdStart && r.status == models.StatusOff:
		r.transition(models.StatusHeating, fmt.Sprintf("Heating started, target %.0f°C", r.cfg.TargetTempC))
	case r.pending == cmdStop && r.status == models.StatusStable:
		r.transition(models.StatusCooling, "Stop requested, cooling down")
	}
	r.pending = cmdNone

	var next models.SignalSnapshot
	switch r.status {
	case models.StatusHeating:
		next = heatingSnapshot(prev, r.cfg)
	case models.StatusStable:
		next = stableSnapshot(prev, r.cfg, r.noise)
		applyFaults(&next, r.faults)
	case models.StatusCooling:
		next = coolingSnapshot(prev, r.cfg)
	default:
		next = offSnapshot(prev, r.cfg)
	}
	integrateLevels(prev, &next, deliveredKg)
	next.EmergencyStop = prev.EmergencyStop && r.status == models.StatusOff

	switch {
	case r.status == models.StatusHeating && next.ReactorTempC >= r.cfg.TargetTempC:
		r.transition(models.StatusStable, fmt.Sprintf("Target %.0f°C reached, reactor stable", r.cfg.TargetTempC))
	case r.status == models.StatusCooling && next.ReactorTempC <= AmbientC+CoolEpsilonC:
		r.transition(models.StatusOff, "Cooled to ambient, reactor off")
	}

	next.Status = r.status
	updateTimers(prev, &next)
	next.Seq = prev.Seq + 1
	next.Timestamp = now
	r.committed = next
	return next
}

func (r *PrimaryReactor) transition(to models.ReactorStatus, msg string) {
	r.status = to
	r.emit(sourceReactor, models.EventStatusChange, msg)
}

// ---- setpoints ----

func validateConfig(cfg models.ReactorConfig) error {
	switch {
	case cfg.TargetTempC <= AmbientC || cfg.TargetTempC > MaxTargetC:
		return fmt.Errorf("%w: target temperature %.1f must be in (%.0f, %.0f]", ErrInvalidSetpoint, cfg.TargetTempC, AmbientC, MaxTargetC)
	case cfg.ResidenceTimeS <= 0 || cfg.ResidenceTimeS > maxResidenceS:
		return fmt.Errorf("%w: residence time %.1f must be in (0, %.0f]", ErrInvalidSetpoint, cfg.ResidenceTimeS, maxResidenceS)
	case cfg.OxygenPct < 0 || cfg.OxygenPct > maxOxygenPct:
		return fmt.Errorf("%w: oxygen %.1f%% must be in [0, %.0f]", ErrInvalidSetpoint, cfg.OxygenPct, maxOxygenPct)
	case !cfg.Mode.Valid():
		return fmt.Errorf("%w: unknown operating mode %q", ErrInvalidSetpoint, cfg.Mode)
	case cfg.FeedRateKgH < 0 || cfg.FeedRateKgH > maxFeedKgH:
		return fmt.Errorf("%w: feed rate %.1f must be in [0, %.0f]", ErrInvalidSetpoint, cfg.FeedRateKgH, maxFeedKgH)
	}
	return nil
}

// setConfig validates and replaces the whole configuration.
func (r *PrimaryReactor) setConfig(cfg models.ReactorConfig) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}
