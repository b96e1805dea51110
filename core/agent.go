package core

import "context"

// Agent is the polymorphic contract every reasoning variant implements.
// All five variants share it; they differ only in which external capability
// they call and how they project the shared RunContext into their own
// request shape.
//
// Run must honor the dual-mode invariant: with an external model configured
// it may produce StatusSuccess; without one it degrades to local heuristic
// data and returns StatusDegraded rather than failing the request. A
// non-nil error means the step produced nothing usable and is converted to
// a contained Failed result at the step boundary; implementations must not
// panic across Run.
//
// Run must respect ctx cancellation: the coordinator bounds each step with
// a per-step deadline and abandons the step cooperatively on expiry.
type Agent interface {
	// Role returns the fixed pipeline role this agent fills.
	Role() Role
	// Description returns a short human-readable purpose statement.
	Description() string
	// Capabilities lists the agent's advertised capabilities.
	Capabilities() []string
	// Run executes the agent against the accumulated context.
	Run(ctx context.Context, rc *RunContext, proj InputProjection) (AgentResult, error)
}

// KnowledgeStore answers similarity queries over indexed automotive
// knowledge. The core treats it as already populated and read-only, so
// concurrent reads from multiple requests need no coordination. Snippets
// come back ranked; ties keep original index order (stable).
type KnowledgeStore interface {
	Search(ctx context.Context, query string, k int) ([]Snippet, error)
}

// ListingStore holds car listings the discovery agent searches. Results are
// ordered by rating, best first.
type ListingStore interface {
	Search(ctx context.Context, criteria SearchCriteria, limit int) ([]Car, error)
}
