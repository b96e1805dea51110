package core

import (
	"encoding/json"
	"fmt"
)

// EnvelopeEntry is one role's contribution to the merged response, keyed by
// the role's stable payload key. Entries keep execution order so the
// narrative follows causal dependency, never map iteration order.
type EnvelopeEntry struct {
	Role    Role         `json:"role"`
	Key     string       `json:"key"`
	Status  ResultStatus `json:"status"`
	Summary string       `json:"summary,omitempty"`
	Payload Payload      `json:"payload"`
}

// UnmarshalJSON decodes an entry by dispatching the payload to the concrete
// type for the entry's role, so envelopes received over the wire round-trip
// back into typed payloads.
func (e *EnvelopeEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    Role            `json:"role"`
		Key     string          `json:"key"`
		Status  ResultStatus    `json:"status"`
		Summary string          `json:"summary"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Role = raw.Role
	e.Key = raw.Key
	e.Status = raw.Status
	e.Summary = raw.Summary
	e.Payload = nil
	if len(raw.Payload) == 0 || string(raw.Payload) == "null" {
		return nil
	}
	payload, err := decodePayload(raw.Role, raw.Payload)
	if err != nil {
		return err
	}
	e.Payload = payload
	return nil
}

// decodePayload unmarshals raw payload bytes into the concrete type owned by
// role.
func decodePayload(role Role, data []byte) (Payload, error) {
	switch role {
	case RoleDiscovery:
		var p DiscoveryPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case RoleKnowledge:
		var p KnowledgePayload
		err := json.Unmarshal(data, &p)
		return p, err
	case RoleValuation:
		var p ValuationPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case RoleFinancing:
		var p FinancingPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case RoleDocument:
		var p DocumentPayload
		err := json.Unmarshal(data, &p)
		return p, err
	default:
		return nil, fmt.Errorf("decode payload: unknown role %q", role)
	}
}

// Envelope is the final merge of one request: every usable agent payload in
// execution order, a generated natural-language summary, and the complete
// trace for audit. It is created once by the coordinator, immutable after
// construction, and owned by the transport layer once returned.
type Envelope struct {
	RequestID string         `json:"request_id"`
	Payload   []EnvelopeEntry `json:"payload"`
	Summary   string         `json:"summary"`
	Trace     []TraceEvent   `json:"trace"`
}

// Entry returns the envelope entry for a role, if present.
func (e Envelope) Entry(role Role) (EnvelopeEntry, bool) {
	for _, entry := range e.Payload {
		if entry.Role == role {
			return entry, true
		}
	}
	return EnvelopeEntry{}, false
}

// Keys returns the payload keys in merge order.
func (e Envelope) Keys() []string {
	keys := make([]string, len(e.Payload))
	for i, entry := range e.Payload {
		keys[i] = entry.Key
	}
	return keys
}
