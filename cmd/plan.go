package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tiered-sim/tiered-sim/sim/driver"
)

var planOutput string // Submission JSON output path

// planCmd writes the fully placed submission without invoking an engine
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build and place a run and write the engine submission as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, runSeed := resolveRunConfig(cmd)
		plan, err := driver.Prepare(cfg, runSeed, driver.Options{})
		if err != nil {
			logrus.Fatalf("Plan aborted: %v", err)
		}
		data, err := json.MarshalIndent(plan.Submission, "", "  ")
		if err != nil {
			logrus.Fatalf("Marshaling submission: %v", err)
		}
		if err := os.WriteFile(planOutput, data, 0644); err != nil {
			logrus.Fatalf("Writing %s: %v", planOutput, err)
		}
		logrus.Infof("Wrote run %s (seed %d, reproducible=%t) to %s",
			plan.RunID, plan.Seed, plan.Submission.Reproducible, planOutput)
	},
}
