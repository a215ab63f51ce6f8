package cmd

import (
	"errors"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/tiered-sim/tiered-sim/sim"
	"github.com/tiered-sim/tiered-sim/sim/metrics"
)

var reportInput string // Results CSV to re-aggregate

// reportCmd recomputes the summary from an exported results CSV, optionally
// under different formulas
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Recompute run metrics from a results CSV",
	Run: func(cmd *cobra.Command, args []string) {
		formulas, err := metrics.ParseFormulas(sim.MetricsConfig{
			Response:   responseFormula,
			Makespan:   makespanFormula,
			Turnaround: turnaroundFormula,
		})
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		records, tiers, err := metrics.LoadResultsCSV(reportInput)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		report, err := metrics.Compute(records, formulas, metrics.ByTaskID(tiers, sim.TierSmall))
		if errors.Is(err, sim.ErrEmptyResult) {
			metrics.Print(os.Stdout, nil)
			return
		}
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		metrics.Print(os.Stdout, report)

		if metricsTextfile != "" {
			if err := metrics.WriteTextfile(metricsTextfile, report, prometheus.Labels{"source": reportInput}); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
	},
}
