package simulation

import (
	"github.com/shopspring/decimal"

	"pyrolysis_sim/internal/models"
)

var kgPerTonne = decimal.NewFromInt(1000)

// Prices are per tonne, in the plant's accounting currency.
type Prices struct {
	OutputPerTonne map[models.FeedstockKind]float64
	FeedPerTonne   map[models.FeedstockKind]float64
}

// ledger accumulates fleet mass flows in decimal to keep long sessions exact.
type ledger struct {
	feed   map[models.FeedstockKind]decimal.Decimal
	output map[models.FeedstockKind]decimal.Decimal
	prices Prices
}

func newLedger(p Prices) *ledger {
	return &ledger{
		feed:   make(map[models.FeedstockKind]decimal.Decimal),
		output: make(map[models.FeedstockKind]decimal.Decimal),
		prices: p,
	}
}

func (l *ledger) record(kind models.FeedstockKind, feedKg, outputKg float64) {
	if feedKg > 0 {
		l.feed[kind] = l.feed[kind].Add(decimal.NewFromFloat(feedKg))
	}
	if outputKg > 0 {
		l.output[kind] = l.output[kind].Add(decimal.NewFromFloat(outputKg))
	}
}

func (l *ledger) snapshot(totalRateKgH float64) models.FleetEconomics {
	out := models.FleetEconomics{
		FeedConsumedKg:  make(map[models.FeedstockKind]decimal.Decimal, len(l.feed)),
		OutputKg:        make(map[models.FeedstockKind]decimal.Decimal, len(l.output)),
		Revenue:         decimal.Zero,
		FeedstockCost:   decimal.Zero,
		TotalOutputRate: totalRateKgH,
	}
	for kind, kg := range l.feed {
		out.FeedConsumedKg[kind] = kg.Round(3)
		price := decimal.NewFromFloat(l.prices.FeedPerTonne[kind])
		out.FeedstockCost = out.FeedstockCost.Add(kg.Div(kgPerTonne).Mul(price))
	}
	for kind, kg := range l.output {
		out.OutputKg[kind] = kg.Round(3)
		price := decimal.NewFromFloat(l.prices.OutputPerTonne[kind])
		out.Revenue = out.Revenue.Add(kg.Div(kgPerTonne).Mul(price))
	}
	out.Revenue = out.Revenue.Round(2)
	out.FeedstockCost = out.FeedstockCost.Round(2)
	out.Margin = out.Revenue.Sub(out.FeedstockCost)
	return out
}
