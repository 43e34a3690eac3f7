package simulation

import (
	"math"

	"pyrolysis_sim/internal/models"
)

// ----------- Signal model constants -----------
const (
	AmbientC     = 25.0  // ambient temperature °C
	AmbientKPa   = 101.3 // atmospheric pressure kPa
	OperatingKPa = 108.0 // nominal reactor pressure in STABLE
	CoolEpsilonC = 0.5   // band around ambient that ends COOLING
	MaxTargetC   = 900.0 // highest accepted setpoint °C

	heatGain      = 0.02 // share of the remaining gap closed per tick
	heatFloorC    = 0.5  // minimum advance per tick while below target
	coolGain      = 0.03
	coolFloorC    = 0.4
	pressureDecay = 0.05

	hopperCapacityKg = 2000.0
	bioOilTankL      = 3000.0
	charBinKg        = 1500.0
	oilDensityKgL    = 1.15

	sensorStuckC = 385.0
)

// noiseFunc returns a uniform sample in [-amplitude, amplitude].
type noiseFunc func(amplitude float64) float64

// productSplit is the mass fraction going to char, oil and gas.
type productSplit struct {
	char, oil, gas float64
}

var modeSplits = map[models.OperatingMode]productSplit{
	models.ModeBiochar: {char: 0.35, oil: 0.30, gas: 0.35},
	models.ModeBioOil:  {char: 0.15, oil: 0.65, gas: 0.20},
	models.ModeSyngas:  {char: 0.10, oil: 0.20, gas: 0.70},
}

// yieldSplit returns the product split for a mode. Hot runs crack char into gas
// and long residence times favour char.
func yieldSplit(mode models.OperatingMode, targetC, residenceS float64) productSplit {
	s, ok := modeSplits[mode]
	if !ok {
		s = modeSplits[models.ModeBiochar]
	}
	if targetC > 600 {
		shift := math.Min(s.char, 0.05)
		s.char -= shift
		s.gas += shift
	}
	if residenceS >= 600 {
		shift := math.Min(s.oil, 0.05)
		s.oil -= shift
		s.char += shift
	}
	return s
}

// approachTarget advances cur toward target by a bounded first-order step.
// It never overshoots and always moves by at least heatFloorC while below.
func approachTarget(cur, target float64) float64 {
	if cur >= target {
		return cur
	}
	step := (target-cur)*heatGain + heatFloorC
	return math.Min(cur+step, target)
}

// decayToward is the cooling counterpart of approachTarget.
func decayToward(cur, floor, gain, step float64) float64 {
	if cur <= floor {
		return floor
	}
	return math.Max(cur-((cur-floor)*gain+step), floor)
}

// heatingProgress is the 0..1 fraction of the way from ambient to target.
func heatingProgress(tempC, targetC float64) float64 {
	if targetC <= AmbientC {
		return 1
	}
	return clamp((tempC-AmbientC)/(targetC-AmbientC), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampPct(v float64) float64 { return clamp(v, 0, 100) }

func applyConfig(s *models.SignalSnapshot, cfg models.ReactorConfig) {
	s.TargetTempC = cfg.TargetTempC
	s.ResidenceTimeS = cfg.ResidenceTimeS
	s.OxygenPct = cfg.OxygenPct
	s.Mode = cfg.Mode
}

// zeroFlows stops every mass flow and closes the feed path.
func zeroFlows(s *models.SignalSnapshot) {
	s.FeedRateKgH = 0
	s.AugerSpeedRPM = 0
	s.VaporFlowM3H = 0
	s.CondensateFlowLH = 0
	s.SyngasFlowM3H = 0
	s.CharOutputKgH = 0
	s.CharYieldPct = 0
	s.OilYieldPct = 0
	s.GasYieldPct = 0
	s.FeedContamination = 0
	s.FeedValve = models.ValveClosed
	s.Auger = models.DriveOff
	s.FlareValve = models.ValveClosed
}

// purgeGas is the composition reported while the reactor is flushed with nitrogen.
func purgeGas(s *models.SignalSnapshot) {
	s.GasCOPct, s.GasCO2Pct, s.GasH2Pct, s.GasCH4Pct = 0, 0, 0, 0
	s.GasOtherPct = 100
}

// initialSnapshot is the cold, idle reactor at process start.
func initialSnapshot(cfg models.ReactorConfig, hopperPct, bioOilPct, charPct float64) models.SignalSnapshot {
	s := models.SignalSnapshot{
		Status:              models.StatusOff,
		ReactorTempC:        AmbientC,
		WallTempC:           AmbientC,
		ThermocoupleTempC:   AmbientC,
		CondenserTempC:      AmbientC,
		CondenserInletTempC: AmbientC,
		PressureKPa:         AmbientKPa,
		GasLinePressureKPa:  AmbientKPa,
		HopperLevelPct:      clampPct(hopperPct),
		BioOilTankPct:       clampPct(bioOilPct),
		CharBinLevelPct:     clampPct(charPct),
		VentValve:           models.ValveClosed,
		Burner:              models.DriveOff,
		PressureReliefArmed: true,
		InterlockOK:         true,
	}
	applyConfig(&s, cfg)
	zeroFlows(&s)
	purgeGas(&s)
	return s
}

// heatingSnapshot builds the next snapshot for a reactor in HEATING.
func heatingSnapshot(prev models.SignalSnapshot, cfg models.ReactorConfig) models.SignalSnapshot {
	next := prev
	next.Status = models.StatusHeating
	applyConfig(&next, cfg)

	next.ReactorTempC = approachTarget(prev.ReactorTempC, cfg.TargetTempC)
	progress := heatingProgress(next.ReactorTempC, cfg.TargetTempC)

	next.ThermocoupleTempC = next.ReactorTempC
	next.WallTempC = next.ReactorTempC + 15 + 40*(1-progress)
	next.CondenserInletTempC = AmbientC + (next.ReactorTempC-AmbientC)*0.3
	next.CondenserTempC = AmbientC + 5*progress
	next.PressureKPa = AmbientKPa + (OperatingKPa-AmbientKPa)*progress
	next.GasLinePressureKPa = AmbientKPa + 2*progress
	next.HeaterPowerKW = 40 + 80*(1-progress)
	next.CoolantFlowLH = 600

	zeroFlows(&next)
	purgeGas(&next)
	next.NitrogenPurge = true
	next.Burner = models.DriveOn
	next.VentValve = models.ValveClosed
	next.InterlockOK = true
	next.PressureReliefArmed = true
	return next
}

// stableSnapshot recomputes every process variable from the setpoints plus
// bounded noise. Levels are integrated separately so faults can act first.
func stableSnapshot(prev models.SignalSnapshot, cfg models.ReactorConfig, noise noiseFunc) models.SignalSnapshot {
	next := prev
	next.Status = models.StatusStable
	applyConfig(&next, cfg)

	next.ReactorTempC = cfg.TargetTempC + noise(2.5)
	next.ThermocoupleTempC = next.ReactorTempC
	next.WallTempC = cfg.TargetTempC + 25 + noise(4)
	next.CondenserInletTempC = cfg.TargetTempC*0.55 + noise(3)
	next.CondenserTempC = 35 + noise(1.5)
	next.PressureKPa = OperatingKPa + noise(0.6)
	next.GasLinePressureKPa = AmbientKPa + 3.5 + noise(0.4)
	next.HeaterPowerKW = 35 + cfg.TargetTempC*0.04 + noise(1.5)
	next.CoolantFlowLH = 900 + noise(15)

	next.InterlockOK = prev.HopperLevelPct > 0 && prev.BioOilTankPct < 100
	zeroFlows(&next)
	if next.InterlockOK {
		next.FeedRateKgH = math.Max(cfg.FeedRateKgH+noise(2), 0)
		next.AugerSpeedRPM = math.Max(next.FeedRateKgH*0.12+noise(0.3), 0)
		next.FeedValve = models.ValveOpen
		next.Auger = models.DriveOn
	}

	split := yieldSplit(cfg.Mode, cfg.TargetTempC, cfg.ResidenceTimeS)
	next.CharYieldPct = split.char * 100
	next.OilYieldPct = split.oil * 100
	next.GasYieldPct = split.gas * 100
	next.CharOutputKgH = next.FeedRateKgH * split.char
	next.CondensateFlowLH = next.FeedRateKgH * split.oil / oilDensityKgL
	next.VaporFlowM3H = next.FeedRateKgH * (split.oil + split.gas) * 1.6
	next.SyngasFlowM3H = next.FeedRateKgH * split.gas * 0.9

	next.GasCOPct = math.Max(34+noise(1.5), 0)
	next.GasCO2Pct = math.Max(22+cfg.OxygenPct*1.8+noise(1), 0)
	next.GasH2Pct = math.Max(16+(cfg.TargetTempC-500)*0.02+noise(1), 0)
	next.GasCH4Pct = math.Max(11+noise(0.8), 0)
	next.GasOtherPct = otherGas(next)

	next.NitrogenPurge = false
	next.Burner = models.DriveOn
	next.VentValve = models.ValveClosed
	next.PressureReliefArmed = true
	if next.SyngasFlowM3H > 0 {
		next.FlareValve = models.ValveOpen
	}
	return next
}

func otherGas(s models.SignalSnapshot) float64 {
	return math.Max(100-(s.GasCOPct+s.GasCO2Pct+s.GasH2Pct+s.GasCH4Pct), 0)
}

// integrateLevels moves consumable levels forward by one tick of flow.
func integrateLevels(prev models.SignalSnapshot, next *models.SignalSnapshot, deliveredKg float64) {
	feedKg := next.FeedRateKgH / 3600
	next.HopperLevelPct = clampPct(prev.HopperLevelPct + (deliveredKg-feedKg)/hopperCapacityKg*100)
	next.BioOilTankPct = clampPct(prev.BioOilTankPct + next.CondensateFlowLH/3600/bioOilTankL*100)
	next.CharBinLevelPct = clampPct(prev.CharBinLevelPct + next.CharOutputKgH/3600/charBinKg*100)
}

// coolingSnapshot decays temperatures and pressures toward ambient with all flows stopped.
func coolingSnapshot(prev models.SignalSnapshot, cfg models.ReactorConfig) models.SignalSnapshot {
	next := prev
	next.Status = models.StatusCooling
	applyConfig(&next, cfg)

	next.ReactorTempC = decayToward(prev.ReactorTempC, AmbientC, coolGain, coolFloorC)
	next.ThermocoupleTempC = next.ReactorTempC
	next.WallTempC = decayToward(prev.WallTempC, AmbientC, coolGain, coolFloorC)
	next.CondenserInletTempC = decayToward(prev.CondenserInletTempC, AmbientC, coolGain, coolFloorC)
	next.CondenserTempC = decayToward(prev.CondenserTempC, AmbientC, coolGain, coolFloorC)
	next.PressureKPa = AmbientKPa + (prev.PressureKPa-AmbientKPa)*(1-pressureDecay)
	next.GasLinePressureKPa = AmbientKPa + (prev.GasLinePressureKPa-AmbientKPa)*(1-pressureDecay)
	next.HeaterPowerKW = 0
	next.CoolantFlowLH = 600

	zeroFlows(&next)
	purgeGas(&next)
	next.NitrogenPurge = true
	next.Burner = models.DriveOff
	next.InterlockOK = true
	return next
}

// offSnapshot carries the previous readings forward unchanged.
func offSnapshot(prev models.SignalSnapshot, cfg models.ReactorConfig) models.SignalSnapshot {
	next := prev
	next.Status = models.StatusOff
	applyConfig(&next, cfg)
	return next
}

// emergencyStopSnapshot cuts heat and feed at once.
func emergencyStopSnapshot(prev models.SignalSnapshot) models.SignalSnapshot {
	next := prev
	next.Status = models.StatusOff
	zeroFlows(&next)
	next.HeaterPowerKW = 0
	next.Burner = models.DriveOff
	next.VentValve = models.ValveOpen
	next.NitrogenPurge = true
	next.EmergencyStop = true
	next.HeatingElapsedS, next.StableElapsedS, next.CoolingElapsedS = 0, 0, 0
	return next
}

// updateTimers accumulates the elapsed counter of the current status only.
func updateTimers(prev models.SignalSnapshot, next *models.SignalSnapshot) {
	next.HeatingElapsedS, next.StableElapsedS, next.CoolingElapsedS = 0, 0, 0
	switch next.Status {
	case models.StatusHeating:
		next.HeatingElapsedS = prev.HeatingElapsedS + 1
	case models.StatusStable:
		next.StableElapsedS = prev.StableElapsedS + 1
	case models.StatusCooling:
		next.CoolingElapsedS = prev.CoolingElapsedS + 1
	}
}
