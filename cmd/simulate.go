package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"pyrolysis_sim/internal/config"
	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/models"
	"pyrolysis_sim/internal/simulation"

	"github.com/spf13/cobra"
)

type simulateSummary struct {
	Ticks          int                    `json:"ticks"`
	Primary        models.SignalSnapshot  `json:"primary"`
	Economics      models.FleetEconomics  `json:"economics"`
	Alarms         []models.ActiveAlarm   `json:"alarms"`
	SecurityLevel  int                    `json:"security_level"`
	SecurityEvents int                    `json:"security_events"`
	Plants         []models.SupplyPlant   `json:"plants"`
	Units          []models.SecondaryUnit `json:"units"`
	Logs           []models.LogLine       `json:"logs,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance the plant headless and print the final state",
		Long: `Runs the engine for a number of ticks without real time passing and
prints a JSON summary of the final state.

Examples:
  pyrolysis-sim simulate --ticks 600
  pyrolysis-sim simulate --ticks 120 --preset bio-oil --start --fleet --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts := simulateOptions{}
			opts.ticks, _ = cmd.Flags().GetInt("ticks")
			opts.start, _ = cmd.Flags().GetBool("start")
			opts.fleet, _ = cmd.Flags().GetBool("fleet")
			opts.logs, _ = cmd.Flags().GetInt("logs")
			if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
				cfg.Simulation.Preset = preset
			}
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			return simulate(cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().Int("ticks", 60, "Number of primary ticks to run")
	cmd.Flags().String("preset", "", "Preset to start from (overrides simulation.preset)")
	cmd.Flags().Uint64("seed", 0, "Random seed for a reproducible run")
	cmd.Flags().Bool("start", true, "Start the primary reactor before the first tick")
	cmd.Flags().Bool("fleet", false, "Start every idle fleet unit before the first tick")
	cmd.Flags().Int("logs", 10, "Number of trailing log lines to include")
	return cmd
}

type simulateOptions struct {
	ticks int
	start bool
	fleet bool
	logs  int
}

// simulate drives the engine on a virtual clock that advances by one
// primary tick per step. Supply ticks run at their own cadence.
func simulate(w io.Writer, cfg *config.Config, opts simulateOptions) error {
	if opts.ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", opts.ticks)
	}
	simCfg, err := engineConfig(cfg.Simulation)
	if err != nil {
		return fmt.Errorf("simulation config: %w", err)
	}

	clock := time.Now()
	engine, err := simulation.NewEngine(simCfg, logger.Nop(),
		simulation.WithClock(func() time.Time { return clock }),
		// diagnostics complete without waiting on the wall clock
		simulation.WithScheduler(func(_ time.Duration, f func()) { go f() }),
	)
	if err != nil {
		return err
	}

	if opts.start {
		if err := engine.Start(); err != nil {
			return err
		}
	}
	if opts.fleet {
		engine.StartIdleUnits()
	}

	var sinceSupply time.Duration
	for i := 0; i < opts.ticks; i++ {
		clock = clock.Add(simCfg.PrimaryTick)
		engine.TickPrimary()
		sinceSupply += simCfg.PrimaryTick
		for sinceSupply >= simCfg.SupplyTick {
			sinceSupply -= simCfg.SupplyTick
			engine.TickSupply()
		}
	}

	st := engine.State()
	summary := simulateSummary{
		Ticks:          opts.ticks,
		Primary:        st.Primary,
		Economics:      st.Economics,
		Alarms:         st.Alarms,
		SecurityLevel:  st.SecurityLevel,
		SecurityEvents: len(st.SecurityEvents),
		Plants:         st.Plants,
		Units:          st.Units,
	}
	if opts.logs > 0 {
		summary.Logs = engine.Logs(opts.logs)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
