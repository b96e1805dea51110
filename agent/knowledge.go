package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmesh/carmesh/core"
)

// KnowledgeAgent retrieves ranked snippets from the knowledge store for the
// query: model notes, market trends, incentive rules.
type KnowledgeAgent struct {
	BaseAgent
	store core.KnowledgeStore
	topK  int
}

// NewKnowledgeAgent creates a knowledge agent over the given store.
func NewKnowledgeAgent(store core.KnowledgeStore, optFns ...func(o *Options)) *KnowledgeAgent {
	opts := applyOptions(optFns)
	return &KnowledgeAgent{
		BaseAgent: newBase(
			core.RoleKnowledge,
			"Retrieves market insights, model reviews and incentive rules relevant to the query.",
			[]string{"similarity retrieval", "market insights"},
			opts,
		),
		store: store,
		topK:  3,
	}
}

// Run implements core.Agent.
func (a *KnowledgeAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	k := proj.TopK
	if k <= 0 {
		k = a.topK
	}

	snippets, err := a.store.Search(ctx, proj.Query, k)
	if err != nil {
		return core.AgentResult{}, fmt.Errorf("knowledge search: %w", err)
	}

	payload := core.KnowledgePayload{Insights: snippets}
	heuristic := a.heuristicSummary(snippets)
	prompt := a.prompt(proj.Query, snippets)
	return a.finish(ctx, payload, prompt, heuristic), nil
}

func (a *KnowledgeAgent) heuristicSummary(snippets []core.Snippet) string {
	if len(snippets) == 0 {
		return "No indexed insights matched the query."
	}
	topics := make([]string, len(snippets))
	for i, s := range snippets {
		topics[i] = s.Topic
	}
	return fmt.Sprintf("Found %d relevant insights: %s.", len(snippets), strings.Join(topics, ", "))
}

func (a *KnowledgeAgent) prompt(query string, snippets []core.Snippet) string {
	var sb strings.Builder
	sb.WriteString("The user asked: " + query + "\nRetrieved knowledge:\n")
	for _, s := range snippets {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Topic, s.Text)
	}
	if len(snippets) == 0 {
		sb.WriteString("(none)\n")
	}
	sb.WriteString("Summarize the most decision-relevant points for the user.")
	return sb.String()
}
