// Package planner turns a raw user query into an execution plan: it
// classifies intent from keyword evidence, selects the agent roles that can
// contribute, and closes over their dependencies so the plan always
// validates. Classification is deliberately rule-based and deterministic;
// the same query text always yields the same plan.
package planner

import (
	"strings"

	"github.com/carmesh/carmesh/core"
)

// Intent is one recognized purpose of a query. A query may carry several.
type Intent string

const (
	// IntentPurchase covers discovery-driven shopping queries and expands
	// to the full advisory chain.
	IntentPurchase Intent = "purchase"
	// IntentValuation covers price and budget questions.
	IntentValuation Intent = "valuation"
	// IntentFinancing covers loan, EMI and down payment questions.
	IntentFinancing Intent = "financing"
	// IntentKnowledge covers comparison and market questions.
	IntentKnowledge Intent = "knowledge"
	// IntentDocument covers paperwork and verification questions.
	IntentDocument Intent = "document"
	// IntentGeneral is the fallback when no keyword matches.
	IntentGeneral Intent = "general"
)

var intentKeywords = map[Intent][]string{
	IntentPurchase:  {"best", "find", "buy", "search", "recommend", "suggest", "looking for"},
	IntentValuation: {"price", "worth", "value", "budget", "cost", "expensive", "cheap", "deal"},
	IntentFinancing: {"loan", "emi", "finance", "financing", "down payment", "interest", "lender", "subsidy"},
	IntentKnowledge: {"compare", "comparison", "vs", "versus", "market", "review", "reliability", "resale"},
	IntentDocument:  {"document", "documents", "paperwork", "rc", "registration", "insurance", "puc", "noc", "verification"},
}

// classifyOrder fixes the iteration order over intentKeywords so Classify
// output is reproducible.
var classifyOrder = []Intent{IntentPurchase, IntentValuation, IntentFinancing, IntentKnowledge, IntentDocument}

// Classify returns the intents evidenced by the query text, in a fixed
// order. An empty or unrecognized query yields [IntentGeneral].
func Classify(text string) []Intent {
	normalized := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	if strings.TrimSpace(text) == "" {
		return []Intent{IntentGeneral}
	}

	var intents []Intent
	for _, intent := range classifyOrder {
		for _, kw := range intentKeywords[intent] {
			if containsKeyword(normalized, kw) {
				intents = append(intents, intent)
				break
			}
		}
	}
	if len(intents) == 0 {
		return []Intent{IntentGeneral}
	}
	return intents
}

// containsKeyword matches kw on word boundaries so "rc" does not fire
// inside "search" or "price".
func containsKeyword(normalized, kw string) bool {
	idx := 0
	for {
		i := strings.Index(normalized[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		before := normalized[start-1]
		after := normalized[end]
		if !isWordByte(before) && !isWordByte(after) {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// Options configure a Planner.
type Options struct {
	// TopK bounds knowledge retrieval per plan. Zero keeps the default.
	TopK int
}

// Planner builds execution plans from queries.
type Planner struct {
	opts Options
}

// New creates a Planner.
func New(optFns ...func(o *Options)) *Planner {
	opts := Options{TopK: 3}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Planner{opts: opts}
}

// rolesFor maps each intent to the roles it activates. Purchase intent
// schedules the full advisory chain.
var rolesFor = map[Intent][]core.Role{
	IntentPurchase:  {core.RoleDiscovery, core.RoleKnowledge, core.RoleValuation, core.RoleFinancing},
	IntentValuation: {core.RoleValuation},
	IntentFinancing: {core.RoleFinancing},
	IntentKnowledge: {core.RoleKnowledge},
	IntentDocument:  {core.RoleDocument},
	IntentGeneral:   {core.RoleDiscovery},
}

// dependsOn records each role's hard prerequisites. Valuation and financing
// read discovery candidates from the shared context.
var dependsOn = map[core.Role][]core.Role{
	core.RoleValuation: {core.RoleDiscovery},
	core.RoleFinancing: {core.RoleDiscovery},
}

// Plan builds a validated execution plan for the query. Selected roles are
// closed over their dependencies (scheduling valuation pulls in discovery)
// and emitted in canonical role order, which fixes the envelope merge order.
func (p *Planner) Plan(query core.Query) core.ExecutionPlan {
	intents := Classify(query.Text)

	selected := map[core.Role]bool{}
	for _, intent := range intents {
		for _, role := range rolesFor[intent] {
			selected[role] = true
		}
	}
	// Dependency closure. One pass suffices while the dependency graph is
	// a single level deep; Validate would catch a regression here.
	for role := range selected {
		for _, dep := range dependsOn[role] {
			selected[dep] = true
		}
	}

	general := len(intents) == 1 && intents[0] == IntentGeneral

	var steps []core.PlanStep
	for _, role := range core.KnownRoles() {
		if !selected[role] {
			continue
		}
		steps = append(steps, core.PlanStep{
			Role: role,
			Projection: core.InputProjection{
				Query:     query.Text,
				TopK:      p.opts.TopK,
				General:   general,
				DependsOn: append([]core.Role(nil), dependsOn[role]...),
			},
		})
	}
	return core.ExecutionPlan{Steps: steps}
}
