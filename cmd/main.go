package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title        Pyrolysis Plant Simulator API
// @version      1.0
// @description  Telemetry and command surface of the simulated pyrolysis reactor fleet.
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pyrolysis-sim",
		Short: "Pyrolysis plant simulator",
		Long: `pyrolysis-sim runs a simulated pyrolysis plant: one primary reactor,
a fleet of secondary reactors and the supply plants that feed them.

"serve" exposes the plant over HTTP and a websocket stream.
"simulate" advances the plant headless and prints the final state.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default configs/config.yml)")

	rootCmd.AddCommand(
		newServeCmd(),
		newSimulateCmd(),
	)
	return rootCmd
}
