package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrolysis_sim/internal/models"
)

func stableSnapshot() models.SignalSnapshot {
	return models.SignalSnapshot{
		Status:             models.StatusStable,
		ReactorTempC:       500,
		ThermocoupleTempC:  500,
		CondenserTempC:     40,
		PressureKPa:        105,
		GasLinePressureKPa: 110,
		CondensateFlowLH:   100,
		SyngasFlowM3H:      50,
		GasCOPct:           20,
		GasCO2Pct:          20,
		GasH2Pct:           10,
		GasCH4Pct:          10,
		GasOtherPct:        40,
	}
}

func TestApplyFaults(t *testing.T) {
	tests := []struct {
		name   string
		faults models.Faults
		check  func(t *testing.T, s models.SignalSnapshot)
	}{
		{
			name:   "none",
			faults: models.Faults{},
			check: func(t *testing.T, s models.SignalSnapshot) {
				assert.Equal(t, stableSnapshot(), s)
			},
		},
		{
			name:   "condenser blockage",
			faults: models.Faults{CondenserBlockage: true},
			check: func(t *testing.T, s models.SignalSnapshot) {
				assert.InDelta(t, 68, s.CondenserTempC, 1e-9)
				assert.InDelta(t, 109.5, s.PressureKPa, 1e-9)
				assert.InDelta(t, 35, s.CondensateFlowLH, 1e-9)
				assert.Equal(t, 110.0, s.GasLinePressureKPa)
			},
		},
		{
			name:   "gas line blockage",
			faults: models.Faults{GasLineBlockage: true},
			check: func(t *testing.T, s models.SignalSnapshot) {
				assert.InDelta(t, 122, s.GasLinePressureKPa, 1e-9)
				assert.InDelta(t, 107.5, s.PressureKPa, 1e-9)
				assert.InDelta(t, 15, s.SyngasFlowM3H, 1e-9)
				assert.Equal(t, 40.0, s.CondenserTempC)
			},
		},
		{
			name:   "sensor failure",
			faults: models.Faults{SensorFailure: true},
			check: func(t *testing.T, s models.SignalSnapshot) {
				assert.Equal(t, sensorStuckC, s.ThermocoupleTempC)
				assert.Equal(t, 500.0, s.ReactorTempC)
			},
		},
		{
			name:   "feed contamination",
			faults: models.Faults{FeedContamination: true},
			check: func(t *testing.T, s models.SignalSnapshot) {
				assert.Equal(t, 18.0, s.FeedContamination)
				assert.InDelta(t, 26, s.GasCO2Pct, 1e-9)
				assert.InDelta(t, 7, s.GasCH4Pct, 1e-9)
				assert.InDelta(t, 80, s.CondensateFlowLH, 1e-9)
				assert.InDelta(t, 37, s.GasOtherPct, 1e-9)
			},
		},
		{
			name: "all four combine",
			faults: models.Faults{
				CondenserBlockage: true,
				GasLineBlockage:   true,
				SensorFailure:     true,
				FeedContamination: true,
			},
			check: func(t *testing.T, s models.SignalSnapshot) {
				// pressure offsets add, flow factors multiply
				assert.InDelta(t, 112, s.PressureKPa, 1e-9)
				assert.InDelta(t, 28, s.CondensateFlowLH, 1e-9)
				assert.InDelta(t, 68, s.CondenserTempC, 1e-9)
				assert.InDelta(t, 122, s.GasLinePressureKPa, 1e-9)
				assert.InDelta(t, 15, s.SyngasFlowM3H, 1e-9)
				assert.Equal(t, sensorStuckC, s.ThermocoupleTempC)
				assert.InDelta(t, 26, s.GasCO2Pct, 1e-9)
				assert.Equal(t, 18.0, s.FeedContamination)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stableSnapshot()
			applyFaults(&s, tt.faults)
			tt.check(t, s)
		})
	}
}

func TestApplyFaults_OnlyWhileStable(t *testing.T) {
	all := models.Faults{CondenserBlockage: true, GasLineBlockage: true, SensorFailure: true, FeedContamination: true}
	for _, st := range []models.ReactorStatus{models.StatusOff, models.StatusHeating, models.StatusCooling} {
		s := stableSnapshot()
		s.Status = st
		want := s
		applyFaults(&s, all)
		assert.Equal(t, want, s, "status %s", st)
	}
}

func TestSetFault_UnknownName(t *testing.T) {
	var f models.Faults
	changed, err := setFault(&f, "coolant_leak", true)
	require.ErrorIs(t, err, ErrUnknownFault)
	assert.False(t, changed)
	assert.Empty(t, activeFaults(f))
}
