package metrics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Min   float64
	Max   float64
	Count int
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P95:   stat.Quantile(0.95, stat.LinInterp, sorted, nil),
		P99:   stat.Quantile(0.99, stat.LinInterp, sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Count: len(sorted),
	}
}

// TierSummary breaks wait and turnaround down for one task tier.
type TierSummary struct {
	Count      int
	Wait       Distribution
	Turnaround Distribution
}

func summarizeTiers(included []sim.CompletedTaskRecord, classify Classifier) map[sim.Tier]TierSummary {
	waits := make(map[sim.Tier][]float64)
	turnarounds := make(map[sim.Tier][]float64)
	for _, r := range included {
		t := classify(r)
		waits[t] = append(waits[t], r.WaitTime())
		turnarounds[t] = append(turnarounds[t], r.TurnaroundTime())
	}
	out := make(map[sim.Tier]TierSummary, len(waits))
	for t, w := range waits {
		out[t] = TierSummary{
			Count:      len(w),
			Wait:       NewDistribution(w),
			Turnaround: NewDistribution(turnarounds[t]),
		}
	}
	return out
}
