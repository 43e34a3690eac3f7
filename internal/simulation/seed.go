package simulation

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"pyrolysis_sim/internal/models"
)

//go:embed seed_history.yaml
var seedHistoryYAML []byte

type seedSample struct {
	OffsetS      int                  `yaml:"offset_s"`
	Status       models.ReactorStatus `yaml:"status"`
	ReactorTempC float64              `yaml:"reactor_temp_c"`
	WallTempC    float64              `yaml:"wall_temp_c"`
	PressureKPa  float64              `yaml:"pressure_kpa"`
	HopperPct    float64              `yaml:"hopper_pct"`
	BioOilPct    float64              `yaml:"bio_oil_tank_pct"`
	CharBinPct   float64              `yaml:"char_bin_pct"`
}

type seedLog struct {
	Samples []seedSample `yaml:"samples"`
}

// parseSeedHistory turns the seed log into history samples anchored at now.
func parseSeedHistory(data []byte, cfg models.ReactorConfig, now time.Time) ([]models.HistorySample, error) {
	var log seedLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parse seed history: %w", err)
	}
	out := make([]models.HistorySample, 0, len(log.Samples))
	for i, s := range log.Samples {
		if s.OffsetS > 0 {
			return nil, fmt.Errorf("seed sample %d: offset %ds is in the future", i, s.OffsetS)
		}
		snap := initialSnapshot(cfg, s.HopperPct, s.BioOilPct, s.CharBinPct)
		if s.Status != "" {
			snap.Status = s.Status
		}
		snap.ReactorTempC = s.ReactorTempC
		snap.ThermocoupleTempC = s.ReactorTempC
		snap.WallTempC = s.WallTempC
		snap.PressureKPa = s.PressureKPa
		at := now.Add(time.Duration(s.OffsetS) * time.Second)
		snap.Timestamp = at
		out = append(out, models.HistorySample{At: at, Snapshot: snap})
	}
	return out, nil
}
