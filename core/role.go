package core

// Role identifies one of the fixed reasoning capabilities in the pipeline.
// The set is closed: CarMesh is a small pipeline of cooperating roles, not a
// plugin system for arbitrary third-party agents.
type Role string

const (
	// RoleDiscovery finds candidate car listings for the query.
	RoleDiscovery Role = "discovery"
	// RoleKnowledge retrieves market insights from the knowledge store.
	RoleKnowledge Role = "knowledge"
	// RoleValuation analyzes pricing for the discovered candidates.
	RoleValuation Role = "valuation"
	// RoleFinancing produces loan options for the discovered candidates.
	RoleFinancing Role = "financing"
	// RoleDocument verifies ownership and registration paperwork.
	RoleDocument Role = "document"
)

// KnownRoles returns every role the engine can schedule, in canonical
// pipeline order. The slice is freshly allocated on each call.
func KnownRoles() []Role {
	return []Role{RoleDiscovery, RoleKnowledge, RoleValuation, RoleFinancing, RoleDocument}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDiscovery, RoleKnowledge, RoleValuation, RoleFinancing, RoleDocument:
		return true
	}
	return false
}

// PayloadKey returns the stable envelope key under which this role's payload
// is surfaced to clients.
func (r Role) PayloadKey() string {
	switch r {
	case RoleDiscovery:
		return "candidates"
	case RoleKnowledge:
		return "insights"
	case RoleValuation:
		return "price_analysis"
	case RoleFinancing:
		return "financing_options"
	case RoleDocument:
		return "document_checks"
	default:
		return string(r)
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
