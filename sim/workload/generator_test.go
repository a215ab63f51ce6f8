package workload

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiered-sim/tiered-sim/sim"
)

func testWorkload(count int) sim.WorkloadConfig {
	cfg := sim.DefaultRunConfig().Workload
	cfg.Count = count
	return cfg
}

func TestBandCounts(t *testing.T) {
	tests := []struct {
		count int
		want  Bands
	}{
		{3000, Bands{Small: 900, Medium: 900, Large: 1200}},
		{10, Bands{Small: 3, Medium: 3, Large: 4}},
		{7, Bands{Small: 2, Medium: 2, Large: 3}},
		{1, Bands{Small: 0, Medium: 0, Large: 1}},
		{0, Bands{}},
	}
	for _, tt := range tests {
		got := BandCounts(tt.count)
		if got != tt.want {
			t.Errorf("BandCounts(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
		if tt.count > 0 && got.Small+got.Medium+got.Large != tt.count {
			t.Errorf("BandCounts(%d) sums to %d", tt.count, got.Small+got.Medium+got.Large)
		}
	}
}

func TestGenerateTasks_LengthsFallInBand(t *testing.T) {
	// GIVEN 3000 tasks at thresholds 7000/15000, max 50000
	cfg := testWorkload(3000)

	// WHEN generated
	tasks, err := GenerateTasks(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, tasks, 3000)

	// THEN each index band holds lengths strictly inside its interval
	bands := BandCounts(cfg.Count)
	for i, task := range tasks {
		switch bands.BandOf(i) {
		case sim.TierSmall:
			if task.Length < 0 || task.Length >= 7000 {
				t.Errorf("task %d: small length %d outside [0, 7000)", i, task.Length)
			}
		case sim.TierMedium:
			if task.Length <= 7000 || task.Length >= 15000 {
				t.Errorf("task %d: medium length %d outside (7000, 15000)", i, task.Length)
			}
		default:
			if task.Length <= 15000 || task.Length >= 50000 {
				t.Errorf("task %d: large length %d outside (15000, 50000)", i, task.Length)
			}
		}
	}

	// AND classification agrees with the generation band
	counts := CountByTier(tasks, cfg.Thresholds)
	assert.Equal(t, 900, counts[sim.TierSmall])
	assert.Equal(t, 900, counts[sim.TierMedium])
	assert.Equal(t, 1200, counts[sim.TierLarge])
}

func TestGenerateTasks_TaskFields(t *testing.T) {
	cfg := testWorkload(20)
	cfg.SubmitterID = 3
	tasks, err := GenerateTasks(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for i, task := range tasks {
		assert.Equal(t, i, task.ID)
		assert.Equal(t, sim.UnassignedVM, task.AssignedVMID)
		assert.False(t, task.Placed())
		assert.Equal(t, 3, task.SubmitterID)
		assert.Equal(t, cfg.RequiredUnits, task.RequiredUnits)
		assert.Equal(t, cfg.InputSize, task.InputSize)
		assert.Equal(t, cfg.OutputSize, task.OutputSize)
	}
}

func TestGenerateTasks_Deterministic(t *testing.T) {
	cfg := testWorkload(500)
	a, err := GenerateTasks(cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := GenerateTasks(cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateTasks(cfg, rand.New(rand.NewSource(100)))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateTasks_NarrowestBands(t *testing.T) {
	// GIVEN bands that each admit exactly one integer above the lower bound
	cfg := testWorkload(10)
	cfg.Thresholds = sim.Thresholds{Small: 1, Medium: 3}
	cfg.MaxLength = 5

	tasks, err := GenerateTasks(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// THEN lengths are forced: 0, 2, 4
	want := []int64{0, 0, 0, 2, 2, 2, 4, 4, 4, 4}
	for i, task := range tasks {
		assert.Equal(t, want[i], task.Length, "task %d", i)
	}
}

func TestGenerateTasks_Errors(t *testing.T) {
	_, err := GenerateTasks(testWorkload(10), nil)
	assert.Error(t, err)

	cfg := testWorkload(10)
	cfg.MaxLength = cfg.Thresholds.Medium
	_, err = GenerateTasks(cfg, rand.New(rand.NewSource(1)))
	var cfgErr *sim.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
