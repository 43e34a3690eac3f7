package models

import "github.com/shopspring/decimal"

// FeedstockKind identifies a feedstock and the silo it is stored in.
type FeedstockKind string

const (
	FeedstockPellet FeedstockKind = "PELLET"
	FeedstockRubber FeedstockKind = "RUBBER"
)

// SecondaryUnit is a fleet reactor drawing feedstock from one silo.
type SecondaryUnit struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Feedstock     FeedstockKind `json:"feedstock"`
	Status        ReactorStatus `json:"status"`
	TempC         float64       `json:"temp_c"`
	TargetTempC   float64       `json:"target_temp_c"`
	PressureKPa   float64       `json:"pressure_kpa"`
	FeedRateKgH   float64       `json:"feed_rate_kg_h"` // setpoint
	OutputRateKgH float64       `json:"output_rate_kg_h"`
	Purity        float64       `json:"purity_pct"`
	Moisture      float64       `json:"moisture_pct"`
	Efficiency    float64       `json:"efficiency"`
	Drawing       bool          `json:"drawing"`
	StartupTicks  int           `json:"startup_ticks"`
}

// FleetEconomics accumulates fleet mass flows and their value.
type FleetEconomics struct {
	FeedConsumedKg  map[FeedstockKind]decimal.Decimal `json:"feed_consumed_kg"`
	OutputKg        map[FeedstockKind]decimal.Decimal `json:"output_kg"`
	Revenue         decimal.Decimal                   `json:"revenue"`
	FeedstockCost   decimal.Decimal                   `json:"feedstock_cost"`
	Margin          decimal.Decimal                   `json:"margin"`
	TotalOutputRate float64                           `json:"total_output_rate_kg_h"`
}
