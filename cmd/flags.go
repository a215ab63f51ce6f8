package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/tiered-sim/tiered-sim/sim"
)

var (
	// Run configuration sources
	presetName string // Embedded preset to start from
	configPath string // YAML run config overlaid on the preset
	seed       int64  // Seed for workload and classification placement

	// Topology
	datacenters        int     // Number of datacenters
	hostsPerDatacenter int     // Hosts per datacenter
	hostProfile        string  // Catalog host profile name
	hostUnits          int     // Processing units per host
	hostRate           float64 // Compute rate per processing unit
	hostMemoryMB       int     // Host memory in MB
	hostBandwidth      int     // Host bandwidth
	hostStorageMB      int64   // Host storage in MB
	hostSelection      string  // Host selection policy handed to the engine

	// VM pool
	vmsSmall  int // Small VM count
	vmsMedium int // Medium VM count
	vmsLarge  int // Large VM count

	// Workload
	taskCount       int   // Number of tasks
	smallThreshold  int64 // Small/medium length breakpoint
	mediumThreshold int64 // Medium/large length breakpoint
	maxLength       int64 // Exclusive upper bound on task length

	// Placement and metrics
	placementPolicy   string // classification or round-robin
	responseFormula   string // Response time formula
	makespanFormula   string // Makespan formula
	turnaroundFormula string // Turnaround formula

	// Engine
	engineCmd     string        // Engine command line (JSON over stdin/stdout)
	engineURL     string        // Engine service base URL
	engineAPIKey  string        // Bearer token for the engine service
	engineTimeout time.Duration // Upper bound on the blocking engine call
	replayPath    string        // Results CSV to replay instead of running an engine
)

// addRunConfigFlags registers the flags shared by run and plan.
func addRunConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&presetName, "preset", defaultPreset, "Embedded preset to start from (see `tiered-sim presets`)")
	f.StringVar(&configPath, "config", "", "YAML run config overlaid on the preset")
	f.Int64Var(&seed, "seed", 0, "Seed for workload generation and classification placement (default: config seed, else time-based)")

	f.IntVar(&datacenters, "datacenters", 1, "Number of datacenters")
	f.IntVar(&hostsPerDatacenter, "hosts-per-dc", 10, "Hosts per datacenter")
	f.StringVar(&hostProfile, "host-profile", "", "Catalog host profile (standard, high-rate)")
	f.IntVar(&hostUnits, "host-units", 16, "Processing units per host")
	f.Float64Var(&hostRate, "host-rate", 20000, "Compute rate per host processing unit")
	f.IntVar(&hostMemoryMB, "host-memory", 65536, "Host memory (MB)")
	f.IntVar(&hostBandwidth, "host-bandwidth", 10000, "Host bandwidth")
	f.Int64Var(&hostStorageMB, "host-storage", sim.DefaultHostStorageMB, "Host storage (MB)")
	f.StringVar(&hostSelection, "host-selection", "first-fit", "Host selection policy (first-fit, random)")

	f.IntVar(&vmsSmall, "vms-small", 50, "Number of small VMs")
	f.IntVar(&vmsMedium, "vms-medium", 50, "Number of medium VMs")
	f.IntVar(&vmsLarge, "vms-large", 50, "Number of large VMs")

	f.IntVar(&taskCount, "tasks", 3000, "Number of tasks")
	f.Int64Var(&smallThreshold, "small-threshold", 7000, "Task length at or below which a task is small")
	f.Int64Var(&mediumThreshold, "medium-threshold", 15000, "Task length at or below which a task is medium")
	f.Int64Var(&maxLength, "max-length", 50000, "Exclusive upper bound on task length")

	f.StringVar(&placementPolicy, "placement", "classification", "Placement policy (classification, round-robin)")
	f.StringVar(&responseFormula, "response-formula", "finish-minus-submission", "Response time formula (finish-minus-submission, wait-plus-cpu)")
	f.StringVar(&makespanFormula, "makespan-formula", "span", "Makespan formula (span, list-order)")
	f.StringVar(&turnaroundFormula, "turnaround-formula", "finish-minus-submission", "Turnaround formula (finish-minus-submission, response-mean)")
}

// addEngineFlags registers the engine selection flags.
func addEngineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&engineCmd, "engine-cmd", "", "Engine command line; receives the submission JSON on stdin")
	f.StringVar(&engineURL, "engine-url", "", "Engine service base URL (POST <url>/v1/runs)")
	f.StringVar(&engineAPIKey, "engine-api-key", "", "Bearer token for --engine-url")
	f.DurationVar(&engineTimeout, "engine-timeout", 30*time.Minute, "Upper bound on the engine call")
	f.StringVar(&replayPath, "replay", "", "Replay the records of an earlier results CSV instead of running an engine")
}

// resolveRunConfig builds the run config: preset, then --config, then any
// flag the user set explicitly. Flag defaults never override file values.
func resolveRunConfig(cmd *cobra.Command) (sim.RunConfig, int64) {
	cfg, err := LoadPreset(presetName)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if configPath != "" {
		cfg, err = sim.LoadRunConfig(configPath, *cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
	}
	applyFlagOverrides(cmd, cfg)

	runSeed := time.Now().UnixNano()
	switch {
	case cmd.Flags().Changed("seed"):
		runSeed = seed
	case cfg.Seed != nil:
		runSeed = *cfg.Seed
	default:
		logrus.Infof("no seed given; using time-based seed %d", runSeed)
	}
	return *cfg, runSeed
}

// applyFlagOverrides copies explicitly set flags into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.RunConfig) {
	changed := cmd.Flags().Changed

	if changed("host-profile") {
		p, err := sim.LookupHostProfile(hostProfile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg.Topology.Host.Profile = p
	}
	overrideInt(changed("datacenters"), &cfg.Topology.Datacenters, datacenters)
	overrideInt(changed("hosts-per-dc"), &cfg.Topology.HostsPerDatacenter, hostsPerDatacenter)
	overrideInt(changed("host-units"), &cfg.Topology.Host.Profile.ProcessingUnits, hostUnits)
	if changed("host-rate") {
		cfg.Topology.Host.Profile.ComputeRate = hostRate
	}
	overrideInt(changed("host-memory"), &cfg.Topology.Host.Profile.MemoryMB, hostMemoryMB)
	overrideInt(changed("host-bandwidth"), &cfg.Topology.Host.Profile.Bandwidth, hostBandwidth)
	if changed("host-storage") {
		cfg.Topology.Host.StorageMB = hostStorageMB
	}
	if changed("host-selection") {
		cfg.Topology.HostSelection = sim.HostSelectionPolicy(hostSelection)
	}

	overrideInt(changed("vms-small"), &cfg.VMs.Counts.Small, vmsSmall)
	overrideInt(changed("vms-medium"), &cfg.VMs.Counts.Medium, vmsMedium)
	overrideInt(changed("vms-large"), &cfg.VMs.Counts.Large, vmsLarge)

	overrideInt(changed("tasks"), &cfg.Workload.Count, taskCount)
	if changed("small-threshold") {
		cfg.Workload.Thresholds.Small = smallThreshold
	}
	if changed("medium-threshold") {
		cfg.Workload.Thresholds.Medium = mediumThreshold
	}
	if changed("max-length") {
		cfg.Workload.MaxLength = maxLength
	}

	if changed("placement") {
		cfg.Placement.Policy = placementPolicy
	}
	if changed("response-formula") {
		cfg.Metrics.Response = responseFormula
	}
	if changed("makespan-formula") {
		cfg.Metrics.Makespan = makespanFormula
	}
	if changed("turnaround-formula") {
		cfg.Metrics.Turnaround = turnaroundFormula
	}
}

func overrideInt(changed bool, dst *int, v int) {
	if changed {
		*dst = v
	}
}
