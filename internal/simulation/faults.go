package simulation

import (
	"errors"
	"fmt"

	"pyrolysis_sim/internal/models"
)

// Fault names accepted by SetFault.
const (
	FaultCondenserBlockage = "condenser_blockage"
	FaultGasLineBlockage   = "gas_line_blockage"
	FaultSensorFailure     = "sensor_failure"
	FaultFeedContamination = "feed_contamination"
)

var ErrUnknownFault = errors.New("unknown fault")

// FaultNames lists every injectable fault.
func FaultNames() []string {
	return []string{FaultCondenserBlockage, FaultGasLineBlockage, FaultSensorFailure, FaultFeedContamination}
}

// setFault flips one toggle and reports whether it changed.
func setFault(f *models.Faults, name string, active bool) (bool, error) {
	var target *bool
	switch name {
	case FaultCondenserBlockage:
		target = &f.CondenserBlockage
	case FaultGasLineBlockage:
		target = &f.GasLineBlockage
	case FaultSensorFailure:
		target = &f.SensorFailure
	case FaultFeedContamination:
		target = &f.FeedContamination
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFault, name)
	}
	changed := *target != active
	*target = active
	return changed, nil
}

// activeFaults returns the names of the faults currently injected.
func activeFaults(f models.Faults) []string {
	var out []string
	if f.CondenserBlockage {
		out = append(out, FaultCondenserBlockage)
	}
	if f.GasLineBlockage {
		out = append(out, FaultGasLineBlockage)
	}
	if f.SensorFailure {
		out = append(out, FaultSensorFailure)
	}
	if f.FeedContamination {
		out = append(out, FaultFeedContamination)
	}
	return out
}

// applyFaults perturbs a freshly computed STABLE snapshot. Other statuses pass through.
func applyFaults(s *models.SignalSnapshot, f models.Faults) {
	if s.Status != models.StatusStable {
		return
	}
	if f.CondenserBlockage {
		s.CondenserTempC += 28
		s.PressureKPa += 4.5
		s.CondensateFlowLH *= 0.35
	}
	if f.GasLineBlockage {
		s.GasLinePressureKPa += 12
		s.PressureKPa += 2.5
		s.SyngasFlowM3H *= 0.3
	}
	if f.SensorFailure {
		s.ThermocoupleTempC = sensorStuckC
	}
	if f.FeedContamination {
		s.FeedContamination = 18
		s.GasCO2Pct += 6
		s.GasCH4Pct *= 0.7
		s.CondensateFlowLH *= 0.8
		s.GasOtherPct = otherGas(*s)
	}
}
