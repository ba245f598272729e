// Package cmd holds the CLI commands for the contract lifecycle service.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fleetflow/contract-lifecycle/internal/logging"
)

var (
	cfgFile string
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lifecycle",
	Short: "Contract lifecycle workflow service",
	Long: `The contract lifecycle service drives vendor contract renewal workflows:
it scans the vendor directory for expiring contracts, builds dependency-gated
step sequences, executes automatable steps, and tracks manual steps until
stakeholders complete them.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	logger = logging.NewLogger()
}
