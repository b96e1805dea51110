package core

import "time"

// StepState is the lifecycle state carried by a TraceEvent.
type StepState string

const (
	// StepStarted is emitted when a plan step begins executing.
	StepStarted StepState = "started"
	// StepCompleted is emitted when a step settles with a usable result.
	StepCompleted StepState = "completed"
	// StepFailed is emitted when a step settles without a payload.
	StepFailed StepState = "failed"
)

// TraceEvent records one step-state transition. Events are append-only:
// exactly one started and one terminal event exist per plan step, and a
// role's own pair is never split by another event of the same role. The
// sequence doubles as the live progress feed and the audit trail stored in
// the envelope.
type TraceEvent struct {
	RequestID string    `json:"request_id"`
	Role      Role      `json:"role"`
	State     StepState `json:"state"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Terminal reports whether the event closes its role's step.
func (e TraceEvent) Terminal() bool { return e.State != StepStarted }
