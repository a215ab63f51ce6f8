package trace

// TraceSummary aggregates statistics from a PlacementTrace.
type TraceSummary struct {
	TotalDecisions int
	UniqueVMs      int
	MaxPerVM       int
	MinPerVM       int
	TierCounts     map[string]int // VM tier -> tasks placed there
	VMDistribution map[int]int    // VM id -> tasks placed there
}

// Summarize computes aggregate statistics from a PlacementTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PlacementTrace) *TraceSummary {
	summary := &TraceSummary{
		TierCounts:     make(map[string]int),
		VMDistribution: make(map[int]int),
	}
	if pt == nil {
		return summary
	}

	summary.TotalDecisions = len(pt.Placements)
	for _, p := range pt.Placements {
		summary.TierCounts[p.VMTier]++
		summary.VMDistribution[p.VMID]++
	}
	summary.UniqueVMs = len(summary.VMDistribution)

	first := true
	for _, n := range summary.VMDistribution {
		if first || n > summary.MaxPerVM {
			summary.MaxPerVM = n
		}
		if first || n < summary.MinPerVM {
			summary.MinPerVM = n
		}
		first = false
	}
	return summary
}
