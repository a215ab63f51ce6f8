package sim

import (
	"hash/fnv"
	"math/rand"
)

// RunKey is the seed of one run. Two runs sharing a RunKey and a RunConfig
// generate the same workload and the same classification placement.
type RunKey int64

// NewRunKey wraps a seed.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// RNG stream names.
const (
	// SubsystemWorkload draws task lengths. Seeded with the run seed itself,
	// so a plain rand.NewSource(seed) reproduces a workload.
	SubsystemWorkload = "workload"

	// SubsystemPlacement draws VMs within a tier.
	SubsystemPlacement = "placement"
)

// PartitionedRNG hands each consumer its own *rand.Rand derived from one
// RunKey. Streams other than SubsystemWorkload are seeded with
// key XOR fnv1a(name).
//
// Streams are independent: switching the placement policy, which changes
// how many placement draws happen, leaves the workload untouched.
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key        RunKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates an empty partition; streams are created lazily.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, subsystems: map[string]*rand.Rand{}}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Later calls with the same name return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	rng, ok := p.subsystems[name]
	if !ok {
		rng = rand.New(rand.NewSource(p.seedFor(name)))
		p.subsystems[name] = rng
	}
	return rng
}

// Key returns the RunKey the partition was created from.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemWorkload {
		return int64(p.key)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(p.key) ^ int64(h.Sum64())
}
