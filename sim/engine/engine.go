// Package engine is the boundary to the external discrete-event simulation
// engine. The driver hands over a complete, fully placed Submission and
// blocks until the engine returns every completed-task record.
package engine

import (
	"context"
	"fmt"

	"github.com/tiered-sim/tiered-sim/sim"
)

// Engine runs one submission to completion.
// Run is a single blocking call; partial or streamed results are not consumed.
type Engine interface {
	Name() string
	Run(ctx context.Context, sub *Submission) ([]sim.CompletedTaskRecord, error)
}

// Submission is everything the engine needs for one run. It is sent verbatim.
type Submission struct {
	RunID         string                  `json:"run_id"`
	Seed          int64                   `json:"seed"`
	BrokerID      int                     `json:"broker_id"`
	HostSelection sim.HostSelectionPolicy `json:"host_selection"`
	Reproducible  bool                    `json:"reproducible"`
	Datacenters   []sim.Datacenter        `json:"datacenters"`
	VMs           []sim.VirtualMachine    `json:"vms"`
	Tasks         []sim.Task              `json:"tasks"`
}

// Result is the wire shape the command and HTTP engines return.
type Result struct {
	RunID   string                    `json:"run_id"`
	Records []sim.CompletedTaskRecord `json:"records"`
	Error   string                    `json:"error,omitempty"`
}

// Validate rejects a submission the engine could not run. Host and VM ids
// must be unique and every task must sit on a VM from the pool.
func (s *Submission) Validate() error {
	if len(s.Datacenters) == 0 {
		return &sim.ConfigurationError{Field: "topology.datacenters", Value: 0, Reason: "no datacenters in submission"}
	}
	hostIDs := make(map[int]bool)
	for _, dc := range s.Datacenters {
		for _, h := range dc.Hosts {
			if hostIDs[h.ID] {
				return fmt.Errorf("duplicate host id %d in %s", h.ID, dc.Name)
			}
			hostIDs[h.ID] = true
		}
	}
	vmIDs := make(map[int]bool, len(s.VMs))
	for _, vm := range s.VMs {
		if vmIDs[vm.ID] {
			return fmt.Errorf("duplicate vm id %d", vm.ID)
		}
		vmIDs[vm.ID] = true
	}
	for _, t := range s.Tasks {
		if !t.Placed() {
			return &sim.PlacementError{Policy: "submission", TaskID: t.ID, Reason: "task has no assigned VM"}
		}
		if !vmIDs[t.AssignedVMID] {
			return &sim.PlacementError{Policy: "submission", TaskID: t.ID,
				Reason: fmt.Sprintf("assigned VM %d is not in the pool", t.AssignedVMID)}
		}
	}
	return nil
}
