package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pyrolysis_sim/internal/models"
)

func TestLedger_PricesAccumulatedMass(t *testing.T) {
	l := newLedger(DefaultConfig().Prices)
	for i := 0; i < 3600; i++ {
		l.record(models.FeedstockPellet, 0.025, 0.01)
	}
	l.record(models.FeedstockRubber, 0, 0)

	got := l.snapshot(36)
	assert.True(t, got.FeedConsumedKg[models.FeedstockPellet].Equal(decimal.NewFromInt(90)))
	assert.True(t, got.OutputKg[models.FeedstockPellet].Equal(decimal.NewFromInt(36)))
	assert.NotContains(t, got.OutputKg, models.FeedstockRubber)

	// 36 kg at 420/t, 90 kg at 95/t
	assert.Equal(t, "15.12", got.Revenue.StringFixed(2))
	assert.Equal(t, "8.55", got.FeedstockCost.StringFixed(2))
	assert.Equal(t, "6.57", got.Margin.StringFixed(2))
	assert.Equal(t, 36.0, got.TotalOutputRate)
}
