package placement

import (
	"fmt"

	"github.com/tiered-sim/tiered-sim/sim"
)

// RoundRobin binds task i to vms[i mod N], ignoring tiers. Seed independent.
type RoundRobin struct {
	vms []sim.VirtualMachine
}

// NewRoundRobin captures the pool order. Fails on an empty pool.
func NewRoundRobin(pool []sim.VirtualMachine) (*RoundRobin, error) {
	if len(pool) == 0 {
		return nil, &sim.PlacementError{Policy: "round-robin", TaskID: -1, Reason: "empty VM list"}
	}
	vms := make([]sim.VirtualMachine, len(pool))
	copy(vms, pool)
	return &RoundRobin{vms: vms}, nil
}

// Name implements Policy.
func (rr *RoundRobin) Name() string { return "round-robin" }

// Assign implements Policy for RoundRobin.
func (rr *RoundRobin) Assign(index int, task sim.Task) (Decision, error) {
	slot := index % len(rr.vms)
	return Decision{
		TaskID: task.ID,
		VMID:   rr.vms[slot].ID,
		Tier:   rr.vms[slot].Tier,
		Reason: fmt.Sprintf("round-robin[%d]", slot),
	}, nil
}
