package main

import (
	"fmt"
	"strings"

	"pyrolysis_sim/internal/config"
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/simulation"
)

// engineConfig maps the simulation section onto the engine's config.
// Price keys are feedstock names ("pellet", "rubber").
func engineConfig(c config.SimulationConfig) (simulation.Config, error) {
	out := simulation.DefaultConfig()
	out.PrimaryTick = c.PrimaryTick
	out.SupplyTick = c.SupplyTick
	if c.HistoryCapacity > 0 {
		out.HistoryCapacity = c.HistoryCapacity
	}
	if c.LogCapacity > 0 {
		out.LogCapacity = c.LogCapacity
	}
	if c.DiagnosticsDelay > 0 {
		out.DiagnosticsDelay = c.DiagnosticsDelay
	}
	out.Seed = c.Seed
	out.SeedHistory = c.SeedHistory

	if c.Preset != "" {
		p, err := simulation.LookupPreset(strings.ToLower(strings.TrimSpace(c.Preset)))
		if err != nil {
			return simulation.Config{}, err
		}
		out.Primary = p.Primary
	}

	var err error
	if out.Prices.OutputPerTonne, err = priceTable(out.Prices.OutputPerTonne, c.OutputPrices); err != nil {
		return simulation.Config{}, fmt.Errorf("output_prices: %w", err)
	}
	if out.Prices.FeedPerTonne, err = priceTable(out.Prices.FeedPerTonne, c.FeedPrices); err != nil {
		return simulation.Config{}, fmt.Errorf("feed_prices: %w", err)
	}
	return out, nil
}

func priceTable(base map[models.FeedstockKind]float64, overrides map[string]float64) (map[models.FeedstockKind]float64, error) {
	out := make(map[models.FeedstockKind]float64, len(base))
	for k, v := range base {
		out[k] = v
	}
	for name, price := range overrides {
		kind := models.FeedstockKind(strings.ToUpper(name))
		if _, ok := base[kind]; !ok {
			return nil, fmt.Errorf("unknown feedstock %q", name)
		}
		if price < 0 {
			return nil, fmt.Errorf("negative price for %q", name)
		}
		out[kind] = price
	}
	return out, nil
}
