package metrics

import (
	"fmt"
	"io"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Print displays the run summary with two-decimal formatting.
// A nil report prints "no data".
func Print(w io.Writer, r *Report) {
	fmt.Fprintln(w, "========= Performance Metrics =========")
	if r == nil {
		fmt.Fprintln(w, "No of cloudlets      : 0")
		fmt.Fprintln(w, "Metrics              : no data")
		return
	}
	fmt.Fprintf(w, "No of cloudlets      : %d\n", r.TaskCount)
	if r.SkippedCount > 0 {
		fmt.Fprintf(w, "Skipped (not SUCCESS): %d\n", r.SkippedCount)
	}
	fmt.Fprintf(w, "Wait Time            : %.2f sec\n", r.TotalWaitTime)
	fmt.Fprintf(w, "Response Time        : %.2f sec\n", r.TotalResponseTime)
	fmt.Fprintf(w, "Makespan             : %.2f sec\n", r.Makespan)
	fmt.Fprintf(w, "Turn Around Time     : %.2f sec\n", r.AverageTurnaroundTime)
	fmt.Fprintf(w, "Formulas             : %s\n", r.Formulas)

	if len(r.Tiers) == 0 {
		return
	}
	fmt.Fprintln(w, "--- Per task size ---")
	for _, t := range sim.AllTiers {
		ts, ok := r.Tiers[t]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-7s n=%-6d wait mean=%.2f p95=%.2f  turnaround mean=%.2f p95=%.2f max=%.2f\n",
			t, ts.Count, ts.Wait.Mean, ts.Wait.P95, ts.Turnaround.Mean, ts.Turnaround.P95, ts.Turnaround.Max)
	}
}
