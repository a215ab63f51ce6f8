// Package placement binds every generated task to exactly one VM.
package placement

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Decision records where a single task went and why.
type Decision struct {
	TaskID int
	VMID   int
	Tier   sim.Tier // tier of the chosen VM
	Reason string
}

// Policy assigns the task at generation index i to a VM.
// Implementations must not depend on anything but the index, the task and
// their own construction-time state.
type Policy interface {
	Name() string
	Assign(index int, task sim.Task) (Decision, error)
}

// NewPolicy creates a placement policy by name. Valid names are listed in
// sim.ValidPlacementPolicies. rng is only consumed by "classification".
func NewPolicy(name string, pool []sim.VirtualMachine, th sim.Thresholds, rng *rand.Rand) (Policy, error) {
	if !sim.ValidPlacementPolicies[name] {
		return nil, fmt.Errorf("unknown placement policy %q; valid: classification, round-robin", name)
	}
	if name == "classification" {
		c, err := NewClassification(pool, th, rng)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	rr, err := NewRoundRobin(pool)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

// Apply runs p over tasks in generation order and returns a placed copy.
// The input slice is not modified, so re-running Apply on the same unplaced
// tasks with an identically seeded policy yields the same assignment.
func Apply(p Policy, tasks []sim.Task) ([]sim.Task, []Decision, error) {
	placed := make([]sim.Task, len(tasks))
	copy(placed, tasks)
	decisions := make([]Decision, 0, len(tasks))

	for i := range placed {
		d, err := p.Assign(i, placed[i])
		if err != nil {
			return nil, nil, err
		}
		placed[i].AssignedVMID = d.VMID
		decisions = append(decisions, d)
	}
	logrus.Debugf("placement %s: placed %d tasks", p.Name(), len(placed))
	return placed, decisions, nil
}
