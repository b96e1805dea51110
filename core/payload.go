package core

// Payload is the structured, agent-specific record inside an AgentResult.
// Concrete payload types implement the unexported marker so the set stays
// closed, mirroring the fixed role set.
type Payload interface{ isPayload() }

// DiscoveryPayload holds the candidate set downstream agents operate on.
type DiscoveryPayload struct {
	Criteria   SearchCriteria `json:"criteria"`
	Candidates []Car          `json:"candidates"`
}

func (DiscoveryPayload) isPayload() {}

// KnowledgePayload holds ranked snippets retrieved for the query.
type KnowledgePayload struct {
	Insights []Snippet `json:"insights"`
}

func (KnowledgePayload) isPayload() {}

// ValuationPayload holds per-candidate pricing analyses.
type ValuationPayload struct {
	Analyses      []CarValuation `json:"analyses"`
	MarketSummary string         `json:"market_summary,omitempty"`
}

func (ValuationPayload) isPayload() {}

// FinancingPayload holds per-candidate loan offers.
type FinancingPayload struct {
	Options        []CarFinancing `json:"options"`
	Recommendation string         `json:"recommendation,omitempty"`
}

func (FinancingPayload) isPayload() {}

// DocumentPayload holds the paperwork verification checklist.
type DocumentPayload struct {
	Checks []DocumentCheck `json:"checks"`
}

func (DocumentPayload) isPayload() {}
