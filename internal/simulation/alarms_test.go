package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrolysis_sim/internal/models"
)

func reactorTemp(v float64) models.SignalSnapshot {
	return models.SignalSnapshot{ThermocoupleTempC: v}
}

func TestAlarmEvaluator_TierSequence(t *testing.T) {
	a := NewAlarmEvaluator(nil)
	require.NoError(t, a.SetConfig(models.SignalReactorTemp, models.AlarmConfig{
		Enabled: true, Medium: 50, High: 70, Critical: 90,
	}))

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	steps := []struct {
		value float64
		want  models.Severity
	}{
		{40, models.SeverityNone},
		{60, models.SeverityMedium},
		{95, models.SeverityCritical},
		{45, models.SeverityNone},
	}
	for i, s := range steps {
		a.Evaluate(reactorTemp(s.value), now.Add(time.Duration(i)*time.Second))
		active := a.Active()
		if s.want == models.SeverityNone {
			assert.Empty(t, active, "step %d", i)
			continue
		}
		require.Len(t, active, 1, "step %d", i)
		assert.Equal(t, s.want, active[0].Severity, "step %d", i)
		assert.Equal(t, s.value, active[0].Value)
	}
}

func TestAlarmEvaluator_ReportsChanges(t *testing.T) {
	a := NewAlarmEvaluator(nil)
	now := time.Now()

	changes := a.Evaluate(reactorTemp(700), now)
	require.Len(t, changes, 1)
	assert.Equal(t, models.SeverityHigh, changes[0].To)
	assert.Contains(t, changes[0].String(), "Alarm raised")

	assert.Empty(t, a.Evaluate(reactorTemp(710), now.Add(time.Second)), "same tier is not a change")

	changes = a.Evaluate(reactorTemp(760), now.Add(2*time.Second))
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0].String(), "escalated")
	assert.Equal(t, now, a.Active()[0].RaisedAt, "raise time survives escalation")

	changes = a.Evaluate(reactorTemp(30), now.Add(3*time.Second))
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0].String(), "cleared")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cfg   models.AlarmConfig
		value float64
		want  models.Severity
	}{
		{"disabled", models.AlarmConfig{Medium: 1, High: 2, Critical: 3}, 10, models.SeverityNone},
		{"zero tier skipped", models.AlarmConfig{Enabled: true, High: 70}, 60, models.SeverityNone},
		{"zero medium, high met", models.AlarmConfig{Enabled: true, High: 70}, 75, models.SeverityHigh},
		{"exact threshold", models.AlarmConfig{Enabled: true, Medium: 50, High: 70, Critical: 90}, 70, models.SeverityHigh},
		{"inverted thresholds literal", models.AlarmConfig{Enabled: true, Medium: 90, High: 70, Critical: 50}, 60, models.SeverityCritical},
		{"all zero", models.AlarmConfig{Enabled: true}, 1e9, models.SeverityNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := classify(tt.cfg, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlarmEvaluator_DisableClearsOnNextEvaluation(t *testing.T) {
	a := NewAlarmEvaluator(nil)
	a.Evaluate(reactorTemp(800), time.Now())
	require.Len(t, a.Active(), 1)

	cfg := a.Configs()[models.SignalReactorTemp]
	cfg.Enabled = false
	require.NoError(t, a.SetConfig(models.SignalReactorTemp, cfg))
	a.Evaluate(reactorTemp(800), time.Now())
	assert.Empty(t, a.Active())
}

func TestAlarmEvaluator_UnknownSignal(t *testing.T) {
	a := NewAlarmEvaluator(nil)
	assert.ErrorIs(t, a.SetConfig("humidity", models.AlarmConfig{}), ErrUnknownSignal)
}

func TestAlarmEvaluator_SortedBySeverity(t *testing.T) {
	a := NewAlarmEvaluator(nil)
	a.Evaluate(models.SignalSnapshot{ThermocoupleTempC: 630, PressureKPa: 120, BioOilTankPct: 91}, time.Now())
	active := a.Active()
	require.Len(t, active, 3)
	assert.Equal(t, models.SignalPressure, active[0].Signal)
	assert.Equal(t, models.SignalBioOilTank, active[1].Signal)
	assert.Equal(t, models.SignalReactorTemp, active[2].Signal)
	assert.Equal(t, soundSiren, active[0].Sound)
}
