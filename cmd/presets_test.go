package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/tiered-sim/tiered-sim/sim"
	"github.com/tiered-sim/tiered-sim/sim/driver"
)

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"adaptive", "large-vm", "small-vm"}, PresetNames())
}

func TestLoadPreset_AllValidAndPreparable(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			// GIVEN an embedded preset
			cfg, err := LoadPreset(name)
			require.NoError(t, err)

			// WHEN validated and prepared with a fixed seed
			require.NoError(t, cfg.Validate())
			plan, err := driver.Prepare(*cfg, 42, driver.Options{RunID: name})

			// THEN a complete submission is produced
			require.NoError(t, err)
			assert.Len(t, plan.Submission.Tasks, cfg.Workload.Count)
			assert.Len(t, plan.Submission.VMs, cfg.VMs.Counts.Total())
		})
	}
}

func TestLoadPreset_LargeVM(t *testing.T) {
	cfg, err := LoadPreset("large-vm")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Topology.Datacenters)
	assert.Equal(t, 5, cfg.Topology.HostsPerDatacenter)
	assert.Equal(t, 40000.0, cfg.Topology.Host.Profile.ComputeRate)
	assert.Equal(t, sim.TierCounts{Large: 40}, cfg.VMs.Counts)
	assert.Equal(t, 2000, cfg.VMs.Profiles.Large.Bandwidth)
	assert.Equal(t, 50, cfg.Workload.Count)
	assert.Equal(t, "round-robin", cfg.Placement.Policy)
	// untouched fields keep the defaults
	assert.Equal(t, sim.DefaultRunConfig().Workload.Thresholds, cfg.Workload.Thresholds)
}

func TestLoadPreset_Unknown(t *testing.T) {
	_, err := LoadPreset("huge-vm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adaptive")
}
