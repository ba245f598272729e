package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetflow/contract-lifecycle/internal/config"
	"github.com/fleetflow/contract-lifecycle/internal/directory"
	"github.com/fleetflow/contract-lifecycle/internal/engine"
	"github.com/fleetflow/contract-lifecycle/internal/notify"
	"github.com/fleetflow/contract-lifecycle/internal/recommend"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one monitoring sweep over the demo vendor fixtures and print the result",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration loading failed: %w", err)
	}

	dir := directory.NewInMemoryDirectory()
	directory.SeedDemo(dir, time.Now().UTC())

	eng := engine.New(engine.Params{
		Directory:        dir,
		Notifier:         notify.NewRecorder(),
		Recommender:      recommend.NewBasic(),
		Logger:           logger,
		ProcurementInbox: cfg.Monitor.ProcurementBox,
		LegalInbox:       cfg.Monitor.LegalBox,
	})

	initiated, err := eng.ScanVendors(ctx)
	if err != nil {
		return err
	}

	summary := eng.Summary()
	fmt.Printf("Initiated %d workflows\n", initiated)
	fmt.Printf("Total: %d  Active: %d  Completed: %d  Overdue: %d\n",
		summary.Total, summary.Active, summary.Completed, summary.Overdue)
	for _, w := range eng.AllWorkflows() {
		step := "(done)"
		if s := w.CurrentStep(); s != nil {
			step = s.Name
		}
		fmt.Printf("  %-50s %-12s %-8s current: %s\n", w.ID, w.Status, w.Priority, step)
	}

	return nil
}
