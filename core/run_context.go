package core

import "sync"

// RunContext is the mutable accumulator threaded through one request's
// pipeline: the original query plus every prior AgentResult keyed by role,
// in execution order. It is exclusively owned by the coordinator for the
// request's lifetime and never shared across requests or persisted.
//
// The mutex only guards against a dependent step reading while an unrelated
// concurrent step settles; there is no cross-request locking anywhere in
// the core.
type RunContext struct {
	Query Query

	mu      sync.RWMutex
	order   []Role
	results map[Role]AgentResult
}

// NewRunContext creates an empty accumulator for one request.
func NewRunContext(q Query) *RunContext {
	return &RunContext{Query: q, results: make(map[Role]AgentResult)}
}

// Record appends a settled result. Recording the same role twice is a
// programming error and the second write is ignored; results are
// append-only by contract.
func (rc *RunContext) Record(role Role, res AgentResult) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, dup := rc.results[role]; dup {
		return
	}
	rc.order = append(rc.order, role)
	rc.results[role] = res
}

// Result returns the recorded result for a role, if any.
func (rc *RunContext) Result(role Role) (AgentResult, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	res, ok := rc.results[role]
	return res, ok
}

// Roles returns the roles recorded so far in execution order.
func (rc *RunContext) Roles() []Role {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	out := make([]Role, len(rc.order))
	copy(out, rc.order)
	return out
}

// Candidates returns the discovery agent's candidate set, or nil when
// discovery has not produced a usable result yet. Dependent agents
// (valuation, financing) read their input through this helper.
func (rc *RunContext) Candidates() []Car {
	res, ok := rc.Result(RoleDiscovery)
	if !ok || !res.Usable() {
		return nil
	}
	if p, ok := res.Payload.(DiscoveryPayload); ok {
		return p.Candidates
	}
	return nil
}

// Criteria returns the search criteria discovery derived from the query,
// or the zero value when unavailable.
func (rc *RunContext) Criteria() SearchCriteria {
	res, ok := rc.Result(RoleDiscovery)
	if !ok || !res.Usable() {
		return SearchCriteria{}
	}
	if p, ok := res.Payload.(DiscoveryPayload); ok {
		return p.Criteria
	}
	return SearchCriteria{}
}
