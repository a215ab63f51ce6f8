package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TopologyConfig groups datacenter construction parameters.
type TopologyConfig struct {
	Datacenters        int                 `yaml:"datacenters" json:"datacenters"`
	HostsPerDatacenter int                 `yaml:"hosts_per_datacenter" json:"hosts_per_datacenter"`
	Host               HostSpec            `yaml:"host" json:"host"`
	Cost               CostModel           `yaml:"cost" json:"cost"`
	HostSelection      HostSelectionPolicy `yaml:"host_selection" json:"host_selection"`
	NamePrefix         string              `yaml:"name_prefix,omitempty" json:"name_prefix,omitempty"`
}

// Validate checks counts, the host template and the host selection name.
func (c TopologyConfig) Validate() error {
	if c.Datacenters <= 0 {
		return configErr("topology.datacenters", c.Datacenters, "must be positive")
	}
	if c.HostsPerDatacenter <= 0 {
		return configErr("topology.hosts_per_datacenter", c.HostsPerDatacenter, "must be positive")
	}
	if err := c.Host.Validate("topology.host"); err != nil {
		return err
	}
	if _, err := ParseHostSelectionPolicy(string(c.HostSelection)); err != nil {
		return configErr("topology.host_selection", c.HostSelection, err.Error())
	}
	return nil
}

// VMPoolConfig groups VM pool construction parameters.
type VMPoolConfig struct {
	Counts   TierCounts   `yaml:"counts" json:"counts"`
	Profiles TierProfiles `yaml:"profiles" json:"profiles"`
	BrokerID int          `yaml:"broker_id" json:"broker_id"`
}

// WorkloadConfig groups synthetic task generation parameters.
// RequiredUnits, InputSize and OutputSize are constant for every task of a run.
type WorkloadConfig struct {
	Count         int        `yaml:"count" json:"count"`
	Thresholds    Thresholds `yaml:"thresholds" json:"thresholds"`
	MaxLength     int64      `yaml:"max_length" json:"max_length"`
	RequiredUnits int        `yaml:"required_units" json:"required_units"`
	InputSize     int        `yaml:"input_size" json:"input_size"`
	OutputSize    int        `yaml:"output_size" json:"output_size"`
	SubmitterID   int        `yaml:"-" json:"-"` // set from the broker at run time
}

// Validate checks that every band has a non-empty open interval to draw from.
func (c WorkloadConfig) Validate() error {
	if c.Count <= 0 {
		return configErr("workload.count", c.Count, "must be positive")
	}
	if err := c.Thresholds.Validate("workload.thresholds"); err != nil {
		return err
	}
	if c.Thresholds.Medium-c.Thresholds.Small < 2 {
		return configErr("workload.thresholds.medium", c.Thresholds.Medium,
			fmt.Sprintf("medium band (%d, %d) holds no integer length", c.Thresholds.Small, c.Thresholds.Medium))
	}
	if c.MaxLength <= c.Thresholds.Medium {
		return configErr("workload.max_length", c.MaxLength,
			fmt.Sprintf("must be greater than medium threshold %d", c.Thresholds.Medium))
	}
	if c.MaxLength-c.Thresholds.Medium < 2 {
		return configErr("workload.max_length", c.MaxLength,
			fmt.Sprintf("large band (%d, %d) holds no integer length", c.Thresholds.Medium, c.MaxLength))
	}
	if c.RequiredUnits <= 0 {
		return configErr("workload.required_units", c.RequiredUnits, "must be positive")
	}
	if c.InputSize <= 0 {
		return configErr("workload.input_size", c.InputSize, "must be positive")
	}
	if c.OutputSize <= 0 {
		return configErr("workload.output_size", c.OutputSize, "must be positive")
	}
	return nil
}

// ValidPlacementPolicies is the set of recognized placement policy names.
// Shared by RunConfig.Validate and placement.NewPolicy.
var ValidPlacementPolicies = map[string]bool{"classification": true, "round-robin": true}

// PlacementConfig selects the task-to-VM placement strategy.
type PlacementConfig struct {
	Policy string `yaml:"policy" json:"policy"`
}

// MetricsConfig names the aggregation formulas. Empty strings take the
// documented defaults in sim/metrics.
type MetricsConfig struct {
	Response   string `yaml:"response" json:"response"`
	Makespan   string `yaml:"makespan" json:"makespan"`
	Turnaround string `yaml:"turnaround" json:"turnaround"`
}

// RunConfig is the full configuration surface of one run.
// Seed is nil when not set; the CLI then falls back to a time-based seed.
type RunConfig struct {
	Seed      *int64          `yaml:"seed,omitempty" json:"seed,omitempty"`
	Topology  TopologyConfig  `yaml:"topology" json:"topology"`
	VMs       VMPoolConfig    `yaml:"vms" json:"vms"`
	Workload  WorkloadConfig  `yaml:"workload" json:"workload"`
	Placement PlacementConfig `yaml:"placement" json:"placement"`
	Metrics   MetricsConfig   `yaml:"metrics" json:"metrics"`
}

// Validate checks every group. Formula names are checked by sim/metrics.
func (c *RunConfig) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	if c.VMs.Counts.Total() <= 0 {
		return configErr("vms.counts", c.VMs.Counts, "at least one VM is required")
	}
	if err := c.Workload.Validate(); err != nil {
		return err
	}
	if !ValidPlacementPolicies[c.Placement.Policy] {
		return configErr("placement.policy", c.Placement.Policy, "valid: classification, round-robin")
	}
	return nil
}

// DefaultRunConfig mirrors the tiered adaptive-workload run: one datacenter
// of ten standard hosts, fifty VMs per tier, 3000 tasks split at 7000/15000.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Topology: TopologyConfig{
			Datacenters:        1,
			HostsPerDatacenter: 10,
			Host:               DefaultHostSpec(),
			Cost: CostModel{
				TimezoneOffset: 10.0,
				CostPerSecond:  3.0,
				CostPerMem:     0.05,
				CostPerStorage: 0.1,
				CostPerBw:      0.1,
			},
			HostSelection: HostSelectionFirstFit,
		},
		VMs: VMPoolConfig{
			Counts:   TierCounts{Small: 50, Medium: 50, Large: 50},
			Profiles: DefaultTierProfiles(),
		},
		Workload: WorkloadConfig{
			Count:         3000,
			Thresholds:    Thresholds{Small: 7000, Medium: 15000},
			MaxLength:     50000,
			RequiredUnits: 1,
			InputSize:     300,
			OutputSize:    300,
		},
		Placement: PlacementConfig{Policy: "classification"},
	}
}

// LoadRunConfig reads a YAML run configuration and overlays it on base.
// Fields absent from the file keep base's values.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string, base RunConfig) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg, err := DecodeRunConfig(data, base)
	if err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeRunConfig overlays YAML bytes on base with strict field checking.
func DecodeRunConfig(data []byte, base RunConfig) (*RunConfig, error) {
	cfg := base
	if base.Seed != nil {
		seed := *base.Seed
		cfg.Seed = &seed
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}
