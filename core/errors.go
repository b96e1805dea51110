package core

import "fmt"

// ErrorKind classifies a contained step failure for the trace and payload.
type ErrorKind string

const (
	// ErrKindTimeout marks a step that exceeded the per-step ceiling.
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindCapability marks a failed external call with no fallback path.
	ErrKindCapability ErrorKind = "capability"
	// ErrKindInternal marks an unexpected agent error (including panics
	// recovered at the step boundary).
	ErrKindInternal ErrorKind = "internal"
)

// PlanIntegrityError reports a dependent step whose dependency is absent
// from the plan. It is a programmer/configuration error: the only error
// class that aborts a whole request instead of degrading it.
type PlanIntegrityError struct {
	Role    Role // the dependent step
	Missing Role // the dependency not present in the plan
}

func (e *PlanIntegrityError) Error() string {
	return fmt.Sprintf("plan integrity: step %q requires %q which is not in the plan", e.Role, e.Missing)
}

// UnknownAgentError reports a plan step for which no agent is registered.
type UnknownAgentError struct{ Role Role }

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("no agent registered for role %q", e.Role)
}
