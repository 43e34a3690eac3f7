package simulation

import (
	"errors"
	"fmt"
	"math"

	"pyrolysis_sim/internal/models"
)

// ----------- Fleet constants -----------
const (
	unitStartupTicks   = 5
	unitHeatStepC      = 8.0
	unitDecayStepC     = 6.0
	unitNominalKPa     = 106.0
	highTempRegimeC    = 550.0
	highTempConversion = 0.42
	defaultConversion  = 0.33
	minEfficiency      = 0.1
	maxEfficiency      = 1.1
)

var ErrUnknownUnit = errors.New("unknown reactor unit")

// feedQuality is the purity/moisture a unit sees from its bound plant.
type feedQuality struct {
	purity, moisture float64
}

func efficiency(purity, moisture float64) float64 {
	return clamp(purity/100-moisture*0.015, minEfficiency, maxEfficiency)
}

// baseConversionRate is the kg of product per kg of feed at a given setpoint.
func baseConversionRate(targetC float64) float64 {
	if targetC >= highTempRegimeC {
		return highTempConversion
	}
	return defaultConversion
}

// stepUnit advances a secondary unit by one tick and returns the kg of feed it
// asks for. Starvation is decided afterwards by the caller.
func stepUnit(u *models.SecondaryUnit, q feedQuality, noise noiseFunc) float64 {
	u.Purity, u.Moisture = q.purity, q.moisture
	u.Efficiency = efficiency(q.purity, q.moisture)
	u.Drawing = false

	switch u.Status {
	case models.StatusStarting:
		u.OutputRateKgH = 0
		u.StartupTicks++
		if u.StartupTicks >= unitStartupTicks {
			u.Status = models.StatusHeating
			u.StartupTicks = 0
		}
	case models.StatusHeating:
		u.OutputRateKgH = 0
		if u.TempC < u.TargetTempC {
			u.TempC = math.Min(u.TempC+unitHeatStepC, u.TargetTempC)
		}
		u.PressureKPa = AmbientKPa + (unitNominalKPa-AmbientKPa)*heatingProgress(u.TempC, u.TargetTempC)
		if u.TempC >= u.TargetTempC {
			u.Status = models.StatusStable
		}
	case models.StatusStable:
		u.OutputRateKgH = u.FeedRateKgH * baseConversionRate(u.TargetTempC) * u.Efficiency
		u.TempC = u.TargetTempC - (1-u.Efficiency)*50 + noise(2)
		u.PressureKPa = unitNominalKPa + noise(0.5)
		u.Drawing = u.FeedRateKgH > 0
		if u.Drawing {
			return u.FeedRateKgH / 3600
		}
	default:
		u.OutputRateKgH = 0
		u.TempC = math.Max(u.TempC-unitDecayStepC, AmbientC)
		u.PressureKPa = AmbientKPa + (u.PressureKPa-AmbientKPa)*(1-pressureDecay)
		if u.Status == models.StatusCooling && u.TempC <= AmbientC {
			u.Status = models.StatusOff
		}
	}
	return 0
}

// starve forces a unit idle because its silo ran dry.
func starve(u *models.SecondaryUnit) {
	u.Status = models.StatusOff
	u.OutputRateKgH = 0
	u.Drawing = false
	u.StartupTicks = 0
}

func findUnit(units []*models.SecondaryUnit, id string) (*models.SecondaryUnit, error) {
	for _, u := range units {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, id)
}

func startUnit(u *models.SecondaryUnit) bool {
	if u.Status != models.StatusOff {
		return false
	}
	u.Status = models.StatusStarting
	u.StartupTicks = 0
	return true
}

func stopUnit(u *models.SecondaryUnit) bool {
	switch u.Status {
	case models.StatusStarting, models.StatusHeating, models.StatusStable:
		u.Status = models.StatusCooling
		u.OutputRateKgH = 0
		u.Drawing = false
		u.StartupTicks = 0
		return true
	}
	return false
}
