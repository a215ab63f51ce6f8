package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
	"github.com/tiered-sim/tiered-sim/sim/metrics"
)

// ReplayEngine returns the records of a previously exported results CSV
// instead of running anything. Useful for re-reporting a finished run.
type ReplayEngine struct {
	Path string
}

// Name implements Engine.
func (e *ReplayEngine) Name() string {
	return "replay:" + e.Path
}

// Run implements Engine. The submission is only checked for task count drift.
func (e *ReplayEngine) Run(ctx context.Context, sub *Submission) ([]sim.CompletedTaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, _, err := metrics.LoadResultsCSV(e.Path)
	if err != nil {
		return nil, err
	}
	if len(records) != len(sub.Tasks) {
		logrus.Warnf("replay %s holds %d records for %d submitted tasks", e.Path, len(records), len(sub.Tasks))
	}
	return records, nil
}
