// Package workload generates synthetic task workloads with a fixed
// small/medium/large population split.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Bands is the index split of a workload: tasks [0, Small) are small,
// [Small, Small+Medium) are medium, the remaining Large tasks are large.
type Bands struct {
	Small  int
	Medium int
	Large  int
}

// BandCounts splits count tasks 30% / 30% / 40% by generation index.
// Small and medium each get floor(0.3·count); large takes the remainder.
func BandCounts(count int) Bands {
	if count <= 0 {
		return Bands{}
	}
	b := count * 3 / 10
	return Bands{Small: b, Medium: b, Large: count - 2*b}
}

// BandOf returns the band of the task at generation index i.
func (b Bands) BandOf(i int) sim.Tier {
	switch {
	case i < b.Small:
		return sim.TierSmall
	case i < b.Small+b.Medium:
		return sim.TierMedium
	default:
		return sim.TierLarge
	}
}

// GenerateTasks creates cfg.Count tasks with sequential IDs.
// The band of each task is fixed by its index, not by a draw: the first 30%
// are always small. Within a band the length is uniform over
//
//	small:  [0, s)
//	medium: (s, m)
//	large:  (m, max)
//
// Deterministic given the same config and rng state.
func GenerateTasks(cfg sim.WorkloadConfig, rng *rand.Rand) ([]sim.Task, error) {
	if rng == nil {
		return nil, fmt.Errorf("GenerateTasks: nil rng")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, m, maxLen := cfg.Thresholds.Small, cfg.Thresholds.Medium, cfg.MaxLength
	bands := BandCounts(cfg.Count)

	tasks := make([]sim.Task, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		var length int64
		switch bands.BandOf(i) {
		case sim.TierSmall:
			length = rng.Int63n(s)
		case sim.TierMedium:
			length = s + 1 + rng.Int63n(m-s-1)
		default:
			length = m + 1 + rng.Int63n(maxLen-m-1)
		}
		tasks = append(tasks, sim.Task{
			ID:            i,
			Length:        length,
			RequiredUnits: cfg.RequiredUnits,
			InputSize:     cfg.InputSize,
			OutputSize:    cfg.OutputSize,
			AssignedVMID:  sim.UnassignedVM,
			SubmitterID:   cfg.SubmitterID,
		})
	}

	logrus.Debugf("generated %d tasks (small=%d medium=%d large=%d)",
		len(tasks), bands.Small, bands.Medium, bands.Large)
	return tasks, nil
}

// CountByTier classifies every task with th and counts per tier.
func CountByTier(tasks []sim.Task, th sim.Thresholds) map[sim.Tier]int {
	counts := make(map[sim.Tier]int, len(sim.AllTiers))
	for _, t := range tasks {
		counts[th.Classify(t.Length)]++
	}
	return counts
}
