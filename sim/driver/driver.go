// Package driver orchestrates one run: build the topology, generate and place
// the workload, hand the submission to the engine and aggregate the results.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
	"github.com/tiered-sim/tiered-sim/sim/engine"
	"github.com/tiered-sim/tiered-sim/sim/metrics"
	"github.com/tiered-sim/tiered-sim/sim/placement"
	"github.com/tiered-sim/tiered-sim/sim/trace"
	"github.com/tiered-sim/tiered-sim/sim/workload"
)

// Plan is a fully prepared run, ready for submission.
type Plan struct {
	RunID      string
	Seed       int64
	Config     sim.RunConfig
	Formulas   metrics.Formulas
	Submission *engine.Submission
	Trace      *trace.PlacementTrace
}

// Options tune Prepare.
type Options struct {
	RunID      string           // generated when empty
	TraceLevel trace.TraceLevel // "" or "none" disables the placement trace
}

// Prepare validates cfg and builds the complete submission. Every
// configuration and placement error surfaces here, before any engine call.
func Prepare(cfg sim.RunConfig, seed int64, opts Options) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	formulas, err := metrics.ParseFormulas(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	rng := sim.NewPartitionedRNG(sim.NewRunKey(seed))

	counter := sim.NewHostIDCounter(0)
	datacenters, err := sim.BuildDatacenters(counter, cfg.Topology)
	if err != nil {
		return nil, err
	}
	pool, err := sim.BuildVMPool(cfg.VMs.Counts, cfg.VMs.Profiles, cfg.VMs.BrokerID)
	if err != nil {
		return nil, err
	}

	wl := cfg.Workload
	wl.SubmitterID = cfg.VMs.BrokerID
	tasks, err := workload.GenerateTasks(wl, rng.ForSubsystem(sim.SubsystemWorkload))
	if err != nil {
		return nil, err
	}

	policy, err := placement.NewPolicy(cfg.Placement.Policy, pool, wl.Thresholds, rng.ForSubsystem(sim.SubsystemPlacement))
	if err != nil {
		return nil, err
	}
	placed, decisions, err := placement.Apply(policy, tasks)
	if err != nil {
		return nil, err
	}

	pt := trace.NewPlacementTrace(opts.TraceLevel, runID, policy.Name())
	if pt.Enabled() {
		for i, d := range decisions {
			pt.RecordPlacement(trace.PlacementRecord{
				TaskID: d.TaskID,
				Length: placed[i].Length,
				VMID:   d.VMID,
				VMTier: d.Tier.String(),
				Reason: d.Reason,
			})
		}
	}

	hostSelection, _ := sim.ParseHostSelectionPolicy(string(cfg.Topology.HostSelection))
	sub := &engine.Submission{
		RunID:         runID,
		Seed:          seed,
		BrokerID:      cfg.VMs.BrokerID,
		HostSelection: hostSelection,
		Reproducible:  hostSelection.Reproducible(),
		Datacenters:   datacenters,
		VMs:           pool,
		Tasks:         placed,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if !sub.Reproducible {
		logrus.Warnf("run %s uses %s host selection; engine-side VM allocation is not reproducible", runID, hostSelection)
	}
	logrus.Infof("prepared run %s: %d datacenters, %d hosts, %d VMs, %d tasks, placement=%s",
		runID, len(datacenters), sim.HostCount(datacenters), len(pool), len(placed), policy.Name())

	return &Plan{
		RunID:      runID,
		Seed:       seed,
		Config:     cfg,
		Formulas:   formulas,
		Submission: sub,
		Trace:      pt,
	}, nil
}

// Result is the outcome of a finished run. Report is nil when no task
// completed successfully; NoData is set in that case.
type Result struct {
	Plan    *Plan
	Records []sim.CompletedTaskRecord
	Report  *metrics.Report
	NoData  bool
}

// Classifier returns the task size classifier for this run's thresholds.
func (r *Result) Classifier() metrics.Classifier {
	return metrics.ByLength(r.Plan.Config.Workload.Thresholds)
}

// Execute submits the plan and blocks until the engine returns.
// Engine failures are logged and returned as *sim.EngineInvocationError;
// nothing is retried.
func Execute(ctx context.Context, plan *Plan, eng engine.Engine) (*Result, error) {
	if eng == nil {
		return nil, fmt.Errorf("execute run %s: no engine configured", plan.RunID)
	}
	logrus.Infof("submitting run %s to %s", plan.RunID, eng.Name())
	records, err := eng.Run(ctx, plan.Submission)
	if err != nil {
		logrus.Errorf("engine %s failed for run %s: %v", eng.Name(), plan.RunID, err)
		return nil, &sim.EngineInvocationError{Engine: eng.Name(), Err: err}
	}
	backfillLengths(records, plan.Submission.Tasks)

	res := &Result{Plan: plan, Records: records}
	report, err := metrics.Compute(records, plan.Formulas, res.Classifier())
	if errors.Is(err, sim.ErrEmptyResult) {
		logrus.Warnf("run %s: %d records returned, none succeeded", plan.RunID, len(records))
		res.NoData = true
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	res.Report = report
	return res, nil
}

// Run is Prepare followed by Execute.
func Run(ctx context.Context, cfg sim.RunConfig, seed int64, opts Options, eng engine.Engine) (*Result, error) {
	plan, err := Prepare(cfg, seed, opts)
	if err != nil {
		return nil, err
	}
	return Execute(ctx, plan, eng)
}

// backfillLengths copies submitted task lengths onto records the engine
// returned without one, so task size is derived from the same length that
// placement classified.
func backfillLengths(records []sim.CompletedTaskRecord, tasks []sim.Task) {
	lengths := make(map[int]int64, len(tasks))
	for _, t := range tasks {
		lengths[t.ID] = t.Length
	}
	for i := range records {
		if l, ok := lengths[records[i].TaskID]; ok {
			if records[i].Length != 0 && records[i].Length != l {
				logrus.Warnf("task %d: engine echoed length %d, submitted %d", records[i].TaskID, records[i].Length, l)
			}
			records[i].Length = l
		}
	}
}
