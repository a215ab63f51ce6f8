package placement

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiered-sim/tiered-sim/sim"
)

var testThresholds = sim.Thresholds{Small: 7000, Medium: 15000}

func testPool(t *testing.T, counts sim.TierCounts) []sim.VirtualMachine {
	t.Helper()
	pool, err := sim.BuildVMPool(counts, sim.DefaultTierProfiles(), 0)
	require.NoError(t, err)
	return pool
}

func tasksWithLengths(lengths ...int64) []sim.Task {
	tasks := make([]sim.Task, len(lengths))
	for i, l := range lengths {
		tasks[i] = sim.Task{ID: i, Length: l, RequiredUnits: 1, AssignedVMID: sim.UnassignedVM}
	}
	return tasks
}

func TestClassification_TaskLandsOnVMOfItsTier(t *testing.T) {
	// GIVEN a pool with 5 VMs per tier and tasks of known lengths
	pool := testPool(t, sim.TierCounts{Small: 5, Medium: 5, Large: 5})
	tierOf := make(map[int]sim.Tier)
	for _, vm := range pool {
		tierOf[vm.ID] = vm.Tier
	}
	tasks := tasksWithLengths(100, 7500, 20000, 7000, 15000, 15001)
	wantTiers := []sim.Tier{sim.TierSmall, sim.TierMedium, sim.TierLarge, sim.TierSmall, sim.TierMedium, sim.TierLarge}

	// WHEN placed by classification
	p, err := NewPolicy("classification", pool, testThresholds, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	placed, decisions, err := Apply(p, tasks)
	require.NoError(t, err)

	// THEN each task is on a VM whose tier matches its classification
	for i, task := range placed {
		assert.Equal(t, wantTiers[i], tierOf[task.AssignedVMID], "task %d (length %d)", i, task.Length)
		assert.Equal(t, wantTiers[i], decisions[i].Tier)
		assert.Equal(t, task.AssignedVMID, decisions[i].VMID)
	}
}

func TestClassification_SameSeedSameAssignment(t *testing.T) {
	pool := testPool(t, sim.TierCounts{Small: 10, Medium: 10, Large: 10})
	lengths := make([]int64, 200)
	for i := range lengths {
		lengths[i] = int64(i * 250)
	}
	tasks := tasksWithLengths(lengths...)

	run := func(seed int64) []sim.Task {
		p, err := NewClassification(pool, testThresholds, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		placed, _, err := Apply(p, tasks)
		require.NoError(t, err)
		return placed
	}
	assert.Equal(t, run(5), run(5))
	assert.NotEqual(t, run(5), run(6))
}

func TestClassification_EmptyTierFails(t *testing.T) {
	// GIVEN no large VMs
	pool := testPool(t, sim.TierCounts{Small: 2, Medium: 2})
	p, err := NewClassification(pool, testThresholds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// WHEN a large task is placed
	_, _, err = Apply(p, tasksWithLengths(100, 30000))

	// THEN placement fails naming the task and tier
	var pe *sim.PlacementError
	require.True(t, errors.As(err, &pe), "want *PlacementError, got %v", err)
	assert.Equal(t, 1, pe.TaskID)
	assert.Equal(t, sim.TierLarge, pe.Tier)
}

func TestClassification_NilRNG(t *testing.T) {
	_, err := NewClassification(testPool(t, sim.TierCounts{Small: 1}), testThresholds, nil)
	assert.Error(t, err)
}

func TestRoundRobin_ModuloAssignment(t *testing.T) {
	// GIVEN 40 large VMs and 50 tasks
	pool := testPool(t, sim.TierCounts{Large: 40})
	lengths := make([]int64, 50)
	for i := range lengths {
		lengths[i] = 10000
	}

	// WHEN placed round-robin
	p, err := NewPolicy("round-robin", pool, testThresholds, nil)
	require.NoError(t, err)
	placed, decisions, err := Apply(p, tasksWithLengths(lengths...))
	require.NoError(t, err)

	// THEN task i lands on VM i mod 40, ignoring its length
	for i, task := range placed {
		if task.AssignedVMID != i%40 {
			t.Errorf("task %d: vm = %d, want %d", i, task.AssignedVMID, i%40)
		}
		assert.Equal(t, sim.TierLarge, decisions[i].Tier)
	}
}

func TestRoundRobin_EmptyPool(t *testing.T) {
	_, err := NewRoundRobin(nil)
	var pe *sim.PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, -1, pe.TaskID)
	assert.Equal(t, `placement "round-robin": empty VM list`, pe.Error())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	pool := testPool(t, sim.TierCounts{Small: 3})
	tasks := tasksWithLengths(1, 2, 3)
	p, err := NewRoundRobin(pool)
	require.NoError(t, err)

	placed, _, err := Apply(p, tasks)
	require.NoError(t, err)

	for i := range tasks {
		assert.Equal(t, sim.UnassignedVM, tasks[i].AssignedVMID)
		assert.True(t, placed[i].Placed())
	}
}

func TestNewPolicy_UnknownName(t *testing.T) {
	p, err := NewPolicy("least-loaded", nil, testThresholds, nil)
	assert.Error(t, err)
	assert.Nil(t, p)
}
