package core

// ResultStatus tags the outcome variant of one agent invocation.
type ResultStatus string

const (
	// StatusSuccess means the agent ran with its full external capability.
	StatusSuccess ResultStatus = "success"
	// StatusDegraded means the agent ran but fell back to local heuristic
	// data (no credential configured, or the external call failed and a
	// fallback existed).
	StatusDegraded ResultStatus = "degraded"
	// StatusFailed means the step produced no payload.
	StatusFailed ResultStatus = "failed"
)

// AgentResult is the tagged outcome of one agent invocation. Exactly one
// variant is populated: Success and Degraded carry a payload and summary,
// Failed carries only an error kind. Results are immutable after creation
// and only ever appended to the owning RunContext.
type AgentResult struct {
	Status    ResultStatus `json:"status"`
	Payload   Payload      `json:"payload,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Reason    string       `json:"reason,omitempty"`     // degraded: why the fallback was used
	ErrorKind ErrorKind    `json:"error_kind,omitempty"` // failed: classification of the failure
}

// Success builds a full-mode result.
func Success(payload Payload, summary string) AgentResult {
	return AgentResult{Status: StatusSuccess, Payload: payload, Summary: summary}
}

// Degraded builds a fallback-mode result. The payload is still usable; the
// reason records which capability was unavailable.
func Degraded(payload Payload, summary, reason string) AgentResult {
	return AgentResult{Status: StatusDegraded, Payload: payload, Summary: summary, Reason: reason}
}

// Failed builds a result for a step that produced nothing.
func Failed(kind ErrorKind) AgentResult {
	return AgentResult{Status: StatusFailed, ErrorKind: kind}
}

// Usable reports whether the result contributes a payload to the envelope.
func (r AgentResult) Usable() bool {
	return r.Status == StatusSuccess || r.Status == StatusDegraded
}
