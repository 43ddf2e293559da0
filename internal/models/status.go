package models

// RunState is the pipeline-level state machine:
// Idle -> Running -> {Succeeded, Failed}.
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStateSucceeded RunState = "succeeded"
	RunStateFailed    RunState = "failed"
)

// Terminal reports whether no further transition happens within this run.
func (s RunState) Terminal() bool {
	return s == RunStateSucceeded || s == RunStateFailed
}

// RunStatus is a snapshot of a run's progress.
type RunStatus struct {
	State          RunState `json:"state"`
	CurrentStep    string   `json:"current_step,omitempty"`
	CompletedSteps []string `json:"completed_steps,omitempty"`
	Error          string   `json:"error,omitempty"`
}
