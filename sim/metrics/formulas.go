package metrics

import (
	"fmt"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Response time, makespan and turnaround each have two definitions in use
// and they give different numbers for the same records. Every run names the
// one it reports.

// ResponseFormula selects how total response time is computed.
type ResponseFormula string

const (
	// ResponseFinishMinusSubmission is Σ(execFinish − submission). Default.
	ResponseFinishMinusSubmission ResponseFormula = "finish-minus-submission"
	// ResponseWaitPlusCPU is totalWait + Σ actualCpuTime.
	ResponseWaitPlusCPU ResponseFormula = "wait-plus-cpu"
)

// MakespanFormula selects how makespan is computed.
type MakespanFormula string

const (
	// MakespanSpan is max(execFinish) − min(execStart). Default; order independent.
	MakespanSpan MakespanFormula = "span"
	// MakespanListOrder is last record's finish − first record's start, in
	// the order the engine returned them.
	MakespanListOrder MakespanFormula = "list-order"
)

// TurnaroundFormula selects how average turnaround is computed.
type TurnaroundFormula string

const (
	// TurnaroundFinishMinusSubmission is Σ(execFinish − submission) / n. Default.
	TurnaroundFinishMinusSubmission TurnaroundFormula = "finish-minus-submission"
	// TurnaroundResponseMean is totalResponse / n, inheriting the response formula.
	TurnaroundResponseMean TurnaroundFormula = "response-mean"
)

// Formulas bundles the three formula choices of a run.
type Formulas struct {
	Response   ResponseFormula
	Makespan   MakespanFormula
	Turnaround TurnaroundFormula
}

// DefaultFormulas returns the documented defaults.
func DefaultFormulas() Formulas {
	return Formulas{
		Response:   ResponseFinishMinusSubmission,
		Makespan:   MakespanSpan,
		Turnaround: TurnaroundFinishMinusSubmission,
	}
}

// String renders the choice for report headers.
func (f Formulas) String() string {
	return fmt.Sprintf("response=%s makespan=%s turnaround=%s", f.Response, f.Makespan, f.Turnaround)
}

var (
	validResponse   = map[ResponseFormula]bool{ResponseFinishMinusSubmission: true, ResponseWaitPlusCPU: true}
	validMakespan   = map[MakespanFormula]bool{MakespanSpan: true, MakespanListOrder: true}
	validTurnaround = map[TurnaroundFormula]bool{TurnaroundFinishMinusSubmission: true, TurnaroundResponseMean: true}
)

// ParseFormulas resolves names from a run config. Empty names take defaults;
// unknown names are a *sim.ConfigurationError.
func ParseFormulas(cfg sim.MetricsConfig) (Formulas, error) {
	f := DefaultFormulas()
	if cfg.Response != "" {
		f.Response = ResponseFormula(cfg.Response)
		if !validResponse[f.Response] {
			return Formulas{}, &sim.ConfigurationError{Field: "metrics.response", Value: cfg.Response,
				Reason: "valid: finish-minus-submission, wait-plus-cpu"}
		}
	}
	if cfg.Makespan != "" {
		f.Makespan = MakespanFormula(cfg.Makespan)
		if !validMakespan[f.Makespan] {
			return Formulas{}, &sim.ConfigurationError{Field: "metrics.makespan", Value: cfg.Makespan,
				Reason: "valid: span, list-order"}
		}
	}
	if cfg.Turnaround != "" {
		f.Turnaround = TurnaroundFormula(cfg.Turnaround)
		if !validTurnaround[f.Turnaround] {
			return Formulas{}, &sim.ConfigurationError{Field: "metrics.turnaround", Value: cfg.Turnaround,
				Reason: "valid: finish-minus-submission, response-mean"}
		}
	}
	return f, nil
}

// rowResponse is the per-task response time under f.
func (f Formulas) rowResponse(r sim.CompletedTaskRecord) float64 {
	if f.Response == ResponseWaitPlusCPU {
		return r.WaitTime() + r.ActualCPUTime
	}
	return r.TurnaroundTime()
}
