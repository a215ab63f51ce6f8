package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tiered-sim/tiered-sim/sim"
)

// NewRegistry registers the run gauges for r on a private registry.
// constLabels (e.g. run_id, placement) are attached to every series.
func NewRegistry(r *Report, constLabels prometheus.Labels) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
		g.Set(v)
		return g
	}

	collectors := []prometheus.Collector{
		gauge("tieredsim_completed_tasks", "Number of SUCCESS task records aggregated", float64(r.TaskCount)),
		gauge("tieredsim_skipped_tasks", "Number of non-SUCCESS task records skipped", float64(r.SkippedCount)),
		gauge("tieredsim_wait_time_seconds_total", "Sum of execStart minus submission over tasks", r.TotalWaitTime),
		gauge("tieredsim_response_time_seconds_total", "Total response time under the configured formula", r.TotalResponseTime),
		gauge("tieredsim_makespan_seconds", "Makespan under the configured formula", r.Makespan),
		gauge("tieredsim_turnaround_time_seconds_avg", "Average turnaround time under the configured formula", r.AverageTurnaroundTime),
	}

	if len(r.Tiers) > 0 {
		tierTasks := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "tieredsim_tier_tasks",
			Help:        "SUCCESS tasks per task size",
			ConstLabels: constLabels,
		}, []string{"size"})
		tierTurnaround := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "tieredsim_tier_turnaround_seconds",
			Help:        "Turnaround distribution per task size",
			ConstLabels: constLabels,
		}, []string{"size", "stat"})
		for _, t := range sim.AllTiers {
			ts, ok := r.Tiers[t]
			if !ok {
				continue
			}
			tierTasks.WithLabelValues(t.String()).Set(float64(ts.Count))
			tierTurnaround.WithLabelValues(t.String(), "mean").Set(ts.Turnaround.Mean)
			tierTurnaround.WithLabelValues(t.String(), "p50").Set(ts.Turnaround.P50)
			tierTurnaround.WithLabelValues(t.String(), "p95").Set(ts.Turnaround.P95)
			tierTurnaround.WithLabelValues(t.String(), "max").Set(ts.Turnaround.Max)
		}
		collectors = append(collectors, tierTasks, tierTurnaround)
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering run metric: %w", err)
		}
	}
	return reg, nil
}

// WriteTextfile writes the run gauges in Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func WriteTextfile(path string, r *Report, constLabels prometheus.Labels) error {
	if r == nil {
		return sim.ErrEmptyResult
	}
	reg, err := NewRegistry(r, constLabels)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
