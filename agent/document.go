package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmesh/carmesh/core"
)

// DocumentAgent produces the paperwork verification checklist for a
// purchase: registration, insurance, emissions and transfer documents. The
// checklist adapts to what the query mentions (used cars, interstate
// transfer, financed purchases).
type DocumentAgent struct {
	BaseAgent
}

// NewDocumentAgent creates a document agent.
func NewDocumentAgent(optFns ...func(o *Options)) *DocumentAgent {
	opts := applyOptions(optFns)
	return &DocumentAgent{
		BaseAgent: newBase(
			core.RoleDocument,
			"Builds the document verification checklist for registration, insurance and transfer.",
			[]string{"document checklist", "verification guidance"},
			opts,
		),
	}
}

// Run implements core.Agent.
func (a *DocumentAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	checks := Checklist(proj.Query)
	payload := core.DocumentPayload{Checks: checks}
	heuristic := a.heuristicSummary(checks)
	prompt := a.prompt(proj.Query, checks)
	return a.finish(ctx, payload, prompt, heuristic), nil
}

// Checklist builds the document checks for a purchase described by the
// query text.
func Checklist(query string) []core.DocumentCheck {
	lower := strings.ToLower(query)
	used := strings.Contains(lower, "used") || strings.Contains(lower, "second hand") ||
		strings.Contains(lower, "pre-owned") || strings.Contains(lower, "resale")
	interstate := strings.Contains(lower, "interstate") || strings.Contains(lower, "another state") ||
		strings.Contains(lower, "transfer")
	financed := strings.Contains(lower, "loan") || strings.Contains(lower, "emi") ||
		strings.Contains(lower, "finance")

	checks := []core.DocumentCheck{
		{Document: "Registration Certificate (RC)", Status: "required",
			Note: "Verify the chassis and engine numbers match the RC"},
		{Document: "Motor insurance policy", Status: "required",
			Note: "Comprehensive cover recommended over third-party only"},
		{Document: "PUC certificate", Status: "required",
			Note: "Pollution Under Control certificate must be current"},
		{Document: "Invoice and payment receipts", Status: "required"},
	}

	if used {
		checks = append(checks,
			core.DocumentCheck{Document: "Form 29/30 (ownership transfer)", Status: "required",
				Note: "Signed by the current owner for RC transfer"},
			core.DocumentCheck{Document: "Service history", Status: "recommended",
				Note: "Confirms claimed mileage and maintenance"},
		)
	}
	if interstate {
		checks = append(checks, core.DocumentCheck{
			Document: "No Objection Certificate (NOC)", Status: "required",
			Note: "From the originating RTO for interstate re-registration",
		})
	}
	if financed {
		checks = append(checks, core.DocumentCheck{
			Document: "Form 34 (hypothecation)", Status: "required",
			Note: "Records the lender's charge on the RC until the loan closes",
		})
	}
	return checks
}

func (a *DocumentAgent) heuristicSummary(checks []core.DocumentCheck) string {
	required := 0
	for _, c := range checks {
		if c.Status == "required" {
			required++
		}
	}
	return fmt.Sprintf("Document checklist: %d items, %d required. "+
		"Start with the RC, insurance and PUC verification.", len(checks), required)
}

func (a *DocumentAgent) prompt(query string, checks []core.DocumentCheck) string {
	var sb strings.Builder
	sb.WriteString("The user asked: " + query + "\nDocument checklist:\n")
	for _, c := range checks {
		fmt.Fprintf(&sb, "- %s (%s)", c.Document, c.Status)
		if c.Note != "" {
			sb.WriteString(": " + c.Note)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Walk the user through the paperwork in order.")
	return sb.String()
}
