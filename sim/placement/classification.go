package placement

import (
	"fmt"
	"math/rand"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Classification sends each task to a uniformly random VM of the tier its
// length falls into.
type Classification struct {
	thresholds sim.Thresholds
	byTier     map[sim.Tier][]int // tier -> VM ids in pool order
	rand       *rand.Rand
}

// NewClassification indexes pool by tier. The same thresholds used to
// generate the workload must be passed here.
func NewClassification(pool []sim.VirtualMachine, th sim.Thresholds, rng *rand.Rand) (*Classification, error) {
	if rng == nil {
		return nil, fmt.Errorf("classification placement: nil rng")
	}
	byTier := make(map[sim.Tier][]int, len(sim.AllTiers))
	for _, vm := range pool {
		byTier[vm.Tier] = append(byTier[vm.Tier], vm.ID)
	}
	return &Classification{thresholds: th, byTier: byTier, rand: rng}, nil
}

// Name implements Policy.
func (c *Classification) Name() string { return "classification" }

// Assign implements Policy for Classification.
func (c *Classification) Assign(_ int, task sim.Task) (Decision, error) {
	tier := c.thresholds.Classify(task.Length)
	candidates := c.byTier[tier]
	if len(candidates) == 0 {
		return Decision{}, &sim.PlacementError{
			Policy: c.Name(),
			TaskID: task.ID,
			Tier:   tier,
			Reason: fmt.Sprintf("no %s VMs in pool (length %d, thresholds %d/%d)",
				tier, task.Length, c.thresholds.Small, c.thresholds.Medium),
		}
	}
	pick := c.rand.Intn(len(candidates))
	return Decision{
		TaskID: task.ID,
		VMID:   candidates[pick],
		Tier:   tier,
		Reason: fmt.Sprintf("classification[%s %d/%d]", tier, pick, len(candidates)),
	}, nil
}
