// Package trace provides placement decision recording for post-run analysis.
// This package has no dependencies on sim/ sub-packages; it stores pure data types.
package trace

// PlacementRecord captures a single task-to-VM placement decision.
type PlacementRecord struct {
	TaskID int    `json:"task_id"`
	Length int64  `json:"length"`
	VMID   int    `json:"vm_id"`
	VMTier string `json:"vm_tier"`
	Reason string `json:"reason"`
}
