package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/tiered-sim/tiered-sim/sim"
	"github.com/tiered-sim/tiered-sim/sim/driver"
	"github.com/tiered-sim/tiered-sim/sim/engine"
	"github.com/tiered-sim/tiered-sim/sim/metrics"
	"github.com/tiered-sim/tiered-sim/sim/trace"
)

var (
	logLevel        string // Log verbosity level
	resultsPath     string // Results CSV export path
	metricsTextfile string // Prometheus textfile output path
	traceLevel      string // Placement trace level
	traceOutput     string // Placement trace JSON output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tiered-sim",
	Short: "Topology, workload and placement driver for discrete-event cloud simulation engines",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd builds the run, submits it to the engine and reports the results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build, place and submit a run, then report its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, runSeed := resolveRunConfig(cmd)
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, decisions", traceLevel)
		}

		plan, err := driver.Prepare(cfg, runSeed, driver.Options{TraceLevel: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Run aborted before submission: %v", err)
		}
		writePlacementTrace(plan)

		eng := newEngine()
		ctx, cancel := context.WithTimeout(context.Background(), engineTimeout)
		defer cancel()

		res, err := driver.Execute(ctx, plan, eng)
		if err != nil {
			var engErr *sim.EngineInvocationError
			if errors.As(err, &engErr) {
				logrus.Fatalf("Run %s failed in the engine and cannot be resumed: %v", plan.RunID, err)
			}
			logrus.Fatalf("Run %s: %v", plan.RunID, err)
		}

		if resultsPath != "" {
			if err := metrics.ExportCSV(resultsPath, res.Records, plan.Formulas, res.Classifier()); err != nil {
				logrus.Fatalf("Exporting results: %v", err)
			}
			logrus.Infof("Results saved to %s", resultsPath)
		}

		metrics.Print(os.Stdout, res.Report)
		if res.NoData {
			return
		}
		if metricsTextfile != "" {
			labels := prometheus.Labels{"run_id": plan.RunID, "placement": cfg.Placement.Policy}
			if err := metrics.WriteTextfile(metricsTextfile, res.Report, labels); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Run complete.")
	},
}

// newEngine picks exactly one engine adapter from the flags.
func newEngine() engine.Engine {
	set := 0
	for _, v := range []string{engineCmd, engineURL, replayPath} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		logrus.Fatalf("Exactly one of --engine-cmd, --engine-url or --replay is required")
	}
	switch {
	case engineCmd != "":
		e, err := engine.NewCommandEngine(engineCmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		return e
	case engineURL != "":
		return engine.NewHTTPEngine(engineURL, engineAPIKey, engineTimeout)
	default:
		return &engine.ReplayEngine{Path: replayPath}
	}
}

func writePlacementTrace(plan *driver.Plan) {
	if traceOutput == "" || !plan.Trace.Enabled() {
		return
	}
	if err := plan.Trace.WriteJSON(traceOutput); err != nil {
		logrus.Fatalf("%v", err)
	}
	summary := trace.Summarize(plan.Trace)
	logrus.Infof("Placement trace: %d decisions over %d VMs (min %d, max %d per VM), by tier %v",
		summary.TotalDecisions, summary.UniqueVMs, summary.MinPerVM, summary.MaxPerVM, summary.TierCounts)
}

// presetsCmd lists the embedded presets
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List embedded run presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range PresetNames() {
			cfg, err := LoadPreset(name)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d DC x %d hosts, VMs %d/%d/%d, %d tasks, placement=%s\n",
				name, cfg.Topology.Datacenters, cfg.Topology.HostsPerDatacenter,
				cfg.VMs.Counts.Small, cfg.VMs.Counts.Medium, cfg.VMs.Counts.Large,
				cfg.Workload.Count, cfg.Placement.Policy)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addRunConfigFlags(runCmd)
	addEngineFlags(runCmd)
	runCmd.Flags().StringVar(&resultsPath, "results", "cloudsim_results.csv", "Results CSV path (empty to skip)")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write run gauges in Prometheus text format to this path")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Placement trace level (none, decisions)")
	runCmd.Flags().StringVar(&traceOutput, "trace-output", "", "Placement trace JSON path (requires --trace-level decisions)")

	addRunConfigFlags(planCmd)
	planCmd.Flags().StringVar(&planOutput, "out", "plan.json", "Submission JSON output path")

	reportCmd.Flags().StringVar(&reportInput, "results", "cloudsim_results.csv", "Results CSV to re-aggregate")
	reportCmd.Flags().StringVar(&responseFormula, "response-formula", "", "Response time formula (finish-minus-submission, wait-plus-cpu)")
	reportCmd.Flags().StringVar(&makespanFormula, "makespan-formula", "", "Makespan formula (span, list-order)")
	reportCmd.Flags().StringVar(&turnaroundFormula, "turnaround-formula", "", "Turnaround formula (finish-minus-submission, response-mean)")
	reportCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write run gauges in Prometheus text format to this path")

	rootCmd.AddCommand(runCmd, planCmd, reportCmd, presetsCmd)
}
