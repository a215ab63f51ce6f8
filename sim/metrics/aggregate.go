// Package metrics turns the engine's completed-task records into the run
// report, the results CSV and a Prometheus textfile.
package metrics

import (
	"math"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Classifier assigns a tier to a completed record. ByLength is the usual
// choice; records re-read from a results CSV carry their tier by task id.
type Classifier func(sim.CompletedTaskRecord) sim.Tier

// ByLength classifies records by their echoed task length.
func ByLength(th sim.Thresholds) Classifier {
	return func(r sim.CompletedTaskRecord) sim.Tier {
		return th.Classify(r.Length)
	}
}

// ByTaskID classifies records through a task id -> tier lookup.
// Unknown ids fall back to fallback.
func ByTaskID(tiers map[int]sim.Tier, fallback sim.Tier) Classifier {
	return func(r sim.CompletedTaskRecord) sim.Tier {
		if t, ok := tiers[r.TaskID]; ok {
			return t
		}
		return fallback
	}
}

// Report is the run-level aggregate. Recomputed from scratch every run.
type Report struct {
	TaskCount             int
	SkippedCount          int // non-SUCCESS records
	TotalWaitTime         float64
	TotalResponseTime     float64
	Makespan              float64
	AverageTurnaroundTime float64
	Formulas              Formulas
	Tiers                 map[sim.Tier]TierSummary // nil when no classifier was given
}

// Compute aggregates SUCCESS records under f. Other records are skipped
// without aborting. Returns sim.ErrEmptyResult when nothing is left, so no
// division by zero ever happens. classify may be nil.
func Compute(records []sim.CompletedTaskRecord, f Formulas, classify Classifier) (*Report, error) {
	included := Successful(records)
	if len(included) == 0 {
		return nil, sim.ErrEmptyResult
	}

	report := &Report{
		TaskCount:    len(included),
		SkippedCount: len(records) - len(included),
		Formulas:     f,
	}

	var cpuSum, turnaroundSum float64
	minStart, maxFinish := math.Inf(1), math.Inf(-1)
	for _, r := range included {
		report.TotalWaitTime += r.WaitTime()
		cpuSum += r.ActualCPUTime
		turnaroundSum += r.TurnaroundTime()
		minStart = math.Min(minStart, r.ExecStartTime)
		maxFinish = math.Max(maxFinish, r.ExecFinishTime)
	}

	switch f.Response {
	case ResponseWaitPlusCPU:
		report.TotalResponseTime = report.TotalWaitTime + cpuSum
	default:
		report.TotalResponseTime = turnaroundSum
	}

	switch f.Makespan {
	case MakespanListOrder:
		report.Makespan = included[len(included)-1].ExecFinishTime - included[0].ExecStartTime
	default:
		report.Makespan = maxFinish - minStart
	}

	n := float64(len(included))
	switch f.Turnaround {
	case TurnaroundResponseMean:
		report.AverageTurnaroundTime = report.TotalResponseTime / n
	default:
		report.AverageTurnaroundTime = turnaroundSum / n
	}

	if classify != nil {
		report.Tiers = summarizeTiers(included, classify)
	}
	return report, nil
}

// Successful returns the SUCCESS records in their original order.
func Successful(records []sim.CompletedTaskRecord) []sim.CompletedTaskRecord {
	out := make([]sim.CompletedTaskRecord, 0, len(records))
	for _, r := range records {
		if r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}
