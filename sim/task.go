// Defines the Task (cloudlet) submitted to the engine and the
// CompletedTaskRecord the engine hands back.

package sim

// UnassignedVM marks a Task that has not been placed yet.
const UnassignedVM = -1

// Task is a unit of synthetic work. Created by the workload generator;
// AssignedVMID is set exactly once by placement.
type Task struct {
	ID            int   `json:"id"`
	Length        int64 `json:"length"` // abstract work units
	RequiredUnits int   `json:"required_units"`
	InputSize     int   `json:"input_size"`
	OutputSize    int   `json:"output_size"`
	AssignedVMID  int   `json:"assigned_vm_id"`
	SubmitterID   int   `json:"submitter_id"`
}

// Placed reports whether placement has bound the task to a VM.
func (t Task) Placed() bool {
	return t.AssignedVMID != UnassignedVM
}

// TaskStatus is the engine-reported lifecycle state of a task.
type TaskStatus string

const (
	StatusCreated             TaskStatus = "CREATED"
	StatusReady               TaskStatus = "READY"
	StatusQueued              TaskStatus = "QUEUED"
	StatusInExec              TaskStatus = "INEXEC"
	StatusSuccess             TaskStatus = "SUCCESS"
	StatusFailed              TaskStatus = "FAILED"
	StatusCanceled            TaskStatus = "CANCELED"
	StatusPaused              TaskStatus = "PAUSED"
	StatusResumed             TaskStatus = "RESUMED"
	StatusResourceUnavailable TaskStatus = "FAILED_RESOURCE_UNAVAILABLE"
)

// CompletedTaskRecord is one task outcome returned by the engine.
// All times are engine-relative simulated seconds.
type CompletedTaskRecord struct {
	TaskID         int        `json:"task_id"`
	DatacenterID   int        `json:"datacenter_id"`
	VMID           int        `json:"vm_id"`
	Length         int64      `json:"length,omitempty"`
	SubmissionTime float64    `json:"submission_time"`
	ExecStartTime  float64    `json:"exec_start_time"`
	ExecFinishTime float64    `json:"exec_finish_time"`
	ActualCPUTime  float64    `json:"actual_cpu_time"`
	Status         TaskStatus `json:"status"`
}

// Succeeded reports whether the record participates in metrics.
func (r CompletedTaskRecord) Succeeded() bool {
	return r.Status == StatusSuccess
}

// WaitTime is ExecStartTime − SubmissionTime.
func (r CompletedTaskRecord) WaitTime() float64 {
	return r.ExecStartTime - r.SubmissionTime
}

// TurnaroundTime is ExecFinishTime − SubmissionTime.
func (r CompletedTaskRecord) TurnaroundTime() float64 {
	return r.ExecFinishTime - r.SubmissionTime
}

// ExecTime is ExecFinishTime − ExecStartTime.
func (r CompletedTaskRecord) ExecTime() float64 {
	return r.ExecFinishTime - r.ExecStartTime
}
