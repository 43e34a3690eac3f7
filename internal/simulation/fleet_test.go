package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pyrolysis_sim/internal/models"
)

func TestEfficiency_Clamped(t *testing.T) {
	assert.InDelta(t, 0.995-7*0.015, efficiency(99.5, 7), 1e-9)
	assert.Equal(t, minEfficiency, efficiency(0, 90))
	assert.Equal(t, maxEfficiency, efficiency(200, 0))
}

func TestBaseConversionRate(t *testing.T) {
	assert.Equal(t, defaultConversion, baseConversionRate(549.9))
	assert.Equal(t, highTempConversion, baseConversionRate(550))
}

func TestStepUnit_OutputOnlyWhenStable(t *testing.T) {
	q := feedQuality{purity: 99, moisture: 5}
	for _, st := range []models.ReactorStatus{models.StatusOff, models.StatusStarting, models.StatusHeating, models.StatusCooling} {
		u := &models.SecondaryUnit{Status: st, TempC: 300, TargetTempC: 500, FeedRateKgH: 100, PressureKPa: AmbientKPa}
		assert.Zero(t, stepUnit(u, q, zeroNoise), "status %s", st)
		assert.Zero(t, u.OutputRateKgH, "status %s", st)
		assert.False(t, u.Drawing, "status %s", st)
	}

	u := &models.SecondaryUnit{Status: models.StatusStable, TargetTempC: 600, FeedRateKgH: 100}
	drawn := stepUnit(u, q, zeroNoise)
	eff := efficiency(99, 5)
	assert.InDelta(t, 100.0/3600, drawn, 1e-12)
	assert.InDelta(t, 100*0.42*eff, u.OutputRateKgH, 1e-9)
	assert.InDelta(t, 600-(1-eff)*50, u.TempC, 1e-9)
	assert.True(t, u.Drawing)
}

func TestStepUnit_CoolingReachesOff(t *testing.T) {
	u := &models.SecondaryUnit{Status: models.StatusCooling, TempC: 60, PressureKPa: 106}
	for i := 0; i < 10; i++ {
		stepUnit(u, feedQuality{purity: 99}, zeroNoise)
	}
	assert.Equal(t, models.StatusOff, u.Status)
	assert.Equal(t, AmbientC, u.TempC)
}
