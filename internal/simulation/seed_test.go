package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyrolysis_sim/internal/models"
)

func TestParseSeedHistory_Embedded(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	samples, err := parseSeedHistory(seedHistoryYAML, DefaultConfig().Primary, now)
	require.NoError(t, err)
	require.Len(t, samples, 9)

	for i := 1; i < len(samples); i++ {
		assert.True(t, samples[i].At.After(samples[i-1].At), "samples must be ordered")
	}
	last := samples[len(samples)-1]
	assert.Equal(t, now.Add(-time.Minute), last.At)
	assert.Equal(t, models.StatusOff, last.Snapshot.Status)
	assert.Equal(t, last.Snapshot.ReactorTempC, last.Snapshot.ThermocoupleTempC)
}

func TestParseSeedHistory_Errors(t *testing.T) {
	cfg := DefaultConfig().Primary
	_, err := parseSeedHistory([]byte("samples: [oops"), cfg, time.Now())
	assert.Error(t, err)

	_, err = parseSeedHistory([]byte("samples:\n  - offset_s: 30\n"), cfg, time.Now())
	assert.ErrorContains(t, err, "future")
}
