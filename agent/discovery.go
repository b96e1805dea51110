package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/carmesh/carmesh/core"
)

// DiscoveryAgent derives structured search criteria from the free-text
// query and retrieves matching listings. Its candidates are the working set
// every downstream agent operates on.
type DiscoveryAgent struct {
	BaseAgent
	store core.ListingStore
	limit int
}

// NewDiscoveryAgent creates a discovery agent over the given listing store.
func NewDiscoveryAgent(store core.ListingStore, optFns ...func(o *Options)) *DiscoveryAgent {
	opts := applyOptions(optFns)
	return &DiscoveryAgent{
		BaseAgent: newBase(
			core.RoleDiscovery,
			"Finds car listings matching budget, fuel type, location and brand constraints.",
			[]string{"criteria extraction", "inventory search"},
			opts,
		),
		store: store,
		limit: 3,
	}
}

// Run implements core.Agent.
func (a *DiscoveryAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	criteria := ExtractCriteria(proj.Query)
	if rc.Query.MaxBudget > 0 {
		criteria.MaxPrice = rc.Query.MaxBudget
	}

	candidates, err := a.store.Search(ctx, criteria, a.limit)
	if err != nil {
		return core.AgentResult{}, fmt.Errorf("listing search: %w", err)
	}

	payload := core.DiscoveryPayload{Criteria: criteria, Candidates: candidates}
	heuristic := a.heuristicSummary(criteria, candidates, proj.General)
	prompt := a.prompt(proj.Query, candidates)
	return a.finish(ctx, payload, prompt, heuristic), nil
}

func (a *DiscoveryAgent) heuristicSummary(criteria core.SearchCriteria, candidates []core.Car, general bool) string {
	if len(candidates) == 0 {
		return "No cars in the current inventory match those constraints. " +
			"Relaxing the budget or location usually widens the result set."
	}

	names := make([]string, len(candidates))
	for i, car := range candidates {
		names[i] = fmt.Sprintf("%s (₹%s)", car.Name(), formatRupees(car.Price))
	}
	if general {
		return fmt.Sprintf("Here are %d well-rated cars to start from: %s. "+
			"Share a budget, fuel preference or city to narrow this down.",
			len(candidates), strings.Join(names, ", "))
	}

	var parts []string
	if criteria.MaxPrice > 0 {
		parts = append(parts, "under ₹"+formatRupees(criteria.MaxPrice))
	}
	if criteria.FuelType != "" {
		parts = append(parts, strings.ToLower(criteria.FuelType))
	}
	if criteria.Location != "" {
		parts = append(parts, "in "+criteria.Location)
	}
	scope := ""
	if len(parts) > 0 {
		scope = " " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Found %d cars%s: %s.", len(candidates), scope, strings.Join(names, ", "))
}

func (a *DiscoveryAgent) prompt(query string, candidates []core.Car) string {
	var sb strings.Builder
	sb.WriteString("The user asked: " + query + "\nMatching listings:\n")
	for _, car := range candidates {
		fmt.Fprintf(&sb, "- %s, %d, ₹%s, %s, %s, rated %.1f\n",
			car.Name(), car.Year, formatRupees(car.Price), car.FuelType, car.Location, car.Rating)
	}
	if len(candidates) == 0 {
		sb.WriteString("(none)\n")
	}
	sb.WriteString("Summarize the matches for the user.")
	return sb.String()
}

// budgetPattern matches "₹15L", "15 lakh", "15.5 lakhs". The amount is in
// lakh units (1 lakh = 100000 rupees).
var budgetPattern = regexp.MustCompile(`₹?\s*(\d+(?:\.\d+)?)\s*(?:lakhs?\b|l\b)`)

var fuelTerms = map[string]string{
	"ev":       "Electric",
	"evs":      "Electric",
	"electric": "Electric",
	"diesel":   "Diesel",
	"petrol":   "Petrol",
	"cng":      "CNG",
}

var cityTerms = map[string]string{
	"delhi":     "Delhi",
	"mumbai":    "Mumbai",
	"bangalore": "Bangalore",
	"bengaluru": "Bangalore",
	"chennai":   "Chennai",
	"pune":      "Pune",
}

var makeTerms = map[string]string{
	"tata":     "Tata",
	"hyundai":  "Hyundai",
	"mg":       "MG",
	"mahindra": "Mahindra",
	"maruti":   "Maruti",
}

// ExtractCriteria parses free text into structured search constraints.
// Extraction is rule-based: a lakh-denominated budget, and word-level fuel,
// city and brand terms. Unrecognized text yields zero criteria.
func ExtractCriteria(text string) core.SearchCriteria {
	lower := strings.ToLower(text)
	var criteria core.SearchCriteria

	if m := budgetPattern.FindStringSubmatch(lower); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			criteria.MaxPrice = int(amount * 100000)
		}
	}

	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if criteria.FuelType == "" {
			if fuel, ok := fuelTerms[token]; ok {
				criteria.FuelType = fuel
			}
		}
		if criteria.Location == "" {
			if city, ok := cityTerms[token]; ok {
				criteria.Location = city
			}
		}
		if criteria.Make == "" {
			if brand, ok := makeTerms[token]; ok {
				criteria.Make = brand
			}
		}
	}
	return criteria
}

// formatRupees renders an amount with Indian digit grouping dropped in
// favor of the lakh shorthand when it divides evenly.
func formatRupees(amount int) string {
	if amount >= 100000 && amount%100000 == 0 {
		return strconv.Itoa(amount/100000) + "L"
	}
	if amount >= 100000 {
		return fmt.Sprintf("%.1fL", float64(amount)/100000)
	}
	return strconv.Itoa(amount)
}
