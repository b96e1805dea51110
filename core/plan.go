package core

import "fmt"

// InputProjection shapes the shared context into one agent's request. The
// planner fills it; the coordinator hands it unchanged to the agent.
type InputProjection struct {
	// Query is the derived query text for this agent (usually the raw
	// query, possibly rewritten by the planner).
	Query string `json:"query"`
	// TopK bounds retrieval-style agents (knowledge snippets). Zero means
	// the agent's default.
	TopK int `json:"top_k,omitempty"`
	// General marks the minimal fallback projection used when the query
	// could not be classified (empty text, no recognizable intent).
	General bool `json:"general,omitempty"`
	// DependsOn lists roles whose results must be recorded in the
	// RunContext before this step may start.
	DependsOn []Role `json:"depends_on,omitempty"`
}

// PlanStep is one scheduled agent invocation.
type PlanStep struct {
	Role       Role            `json:"role"`
	Projection InputProjection `json:"projection"`
}

// ExecutionPlan is the ordered sequence of steps the coordinator executes.
// Steps without dependencies may run concurrently; order still fixes the
// deterministic merge order of the envelope.
type ExecutionPlan struct {
	Steps []PlanStep `json:"steps"`
}

// Roles returns the step roles in plan order.
func (p ExecutionPlan) Roles() []Role {
	roles := make([]Role, len(p.Steps))
	for i, s := range p.Steps {
		roles[i] = s.Role
	}
	return roles
}

// Contains reports whether the plan schedules the given role.
func (p ExecutionPlan) Contains(role Role) bool {
	for _, s := range p.Steps {
		if s.Role == role {
			return true
		}
	}
	return false
}

// Validate enforces the plan invariants: every role known, no role twice,
// length bounded by the role set, and every declared dependency present in
// the plan. A violated dependency yields *PlanIntegrityError so the caller
// can surface it as a server-side fault rather than misbehave silently.
func (p ExecutionPlan) Validate() error {
	if len(p.Steps) > len(KnownRoles()) {
		return fmt.Errorf("plan has %d steps, more than the %d known roles", len(p.Steps), len(KnownRoles()))
	}
	seen := make(map[Role]bool, len(p.Steps))
	for _, s := range p.Steps {
		if !s.Role.Valid() {
			return fmt.Errorf("plan references unknown role %q", s.Role)
		}
		if seen[s.Role] {
			return fmt.Errorf("role %q appears twice in plan", s.Role)
		}
		seen[s.Role] = true
	}
	for _, s := range p.Steps {
		for _, dep := range s.Projection.DependsOn {
			if !seen[dep] {
				return &PlanIntegrityError{Role: s.Role, Missing: dep}
			}
		}
	}
	return nil
}
