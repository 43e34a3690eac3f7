package simulation

import (
	"errors"
	"fmt"
	"sort"

	"pyrolysis_sim/internal/models"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named operating point for the primary reactor and the fleet.
type Preset struct {
	Name            string               `json:"name"`
	Primary         models.ReactorConfig `json:"primary"`
	UnitTargetTempC float64              `json:"unit_target_temp_c"`
	UnitFeedRateKgH float64              `json:"unit_feed_rate_kg_h"`
}

var presets = map[string]Preset{
	"biochar": {
		Name:            "biochar",
		Primary:         models.ReactorConfig{TargetTempC: 450, ResidenceTimeS: 1800, OxygenPct: 0.5, Mode: models.ModeBiochar, FeedRateKgH: 80},
		UnitTargetTempC: 450,
		UnitFeedRateKgH: 90,
	},
	"bio-oil": {
		Name:            "bio-oil",
		Primary:         models.ReactorConfig{TargetTempC: 520, ResidenceTimeS: 2, OxygenPct: 0.2, Mode: models.ModeBioOil, FeedRateKgH: 120},
		UnitTargetTempC: 520,
		UnitFeedRateKgH: 110,
	},
	"syngas": {
		Name:            "syngas",
		Primary:         models.ReactorConfig{TargetTempC: 750, ResidenceTimeS: 10, OxygenPct: 2.0, Mode: models.ModeSyngas, FeedRateKgH: 100},
		UnitTargetTempC: 700,
		UnitFeedRateKgH: 100,
	},
	"low-load": {
		Name:            "low-load",
		Primary:         models.ReactorConfig{TargetTempC: 480, ResidenceTimeS: 600, OxygenPct: 0.5, Mode: models.ModeBiochar, FeedRateKgH: 40},
		UnitTargetTempC: 480,
		UnitFeedRateKgH: 50,
	},
}

func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames lists the presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns every preset ordered by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		out = append(out, presets[name])
	}
	return out
}
