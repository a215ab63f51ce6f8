// Package sim holds the core model of a tiered cloud-simulation run: resource
// profiles, the datacenter topology, the VM pool, tasks and the records an
// external engine returns for them.
//
// # Reading Guide
//
// Start with these files:
//   - catalog.go: host and VM resource profiles
//   - tier.go: Small/Medium/Large tiers and the length classifier
//   - topology.go: datacenter and VM pool construction
//   - config.go: the RunConfig surface and its YAML loading
//
// # Architecture
//
// The sim package defines data types and construction; the run pipeline lives
// in sub-packages:
//   - sim/workload/: banded synthetic task generation
//   - sim/placement/: classification and round-robin task placement
//   - sim/engine/: the boundary to the external simulation engine
//   - sim/metrics/: aggregation, results CSV and Prometheus textfile output
//   - sim/trace/: placement decision trace
//   - sim/driver/: end-to-end orchestration of one run
//
// The engine itself (event scheduling, time advancement, resource
// contention) is external. This module only decides what topology, workload
// and placement to feed it and how to interpret what comes back.
package sim
