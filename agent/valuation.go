package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/logging"
)

// ValuationOptions configure a ValuationAgent beyond the shared options.
type ValuationOptions struct {
	Options

	// ReferenceYear anchors age-based depreciation. Zero means the
	// current calendar year.
	ReferenceYear int
}

// ValuationAgent computes market-adjusted prices for the discovery
// candidates using a deterministic factor model: demand, brand, age,
// location, fuel and rating adjustments applied to the list price.
type ValuationAgent struct {
	BaseAgent
	refYear int
}

// NewValuationAgent creates a valuation agent.
func NewValuationAgent(optFns ...func(o *ValuationOptions)) *ValuationAgent {
	opts := ValuationOptions{Options: Options{Logger: logging.NoOpLogger{}}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.ReferenceYear == 0 {
		opts.ReferenceYear = time.Now().Year()
	}
	return &ValuationAgent{
		BaseAgent: newBase(
			core.RoleValuation,
			"Estimates market-adjusted prices and grades each candidate's deal quality.",
			[]string{"price analysis", "deal scoring"},
			opts.Options,
		),
		refYear: opts.ReferenceYear,
	}
}

// Run implements core.Agent. It reads the discovery candidates from the
// shared context; with none available it degrades to an empty analysis
// instead of failing the step.
func (a *ValuationAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	candidates := rc.Candidates()
	if len(candidates) == 0 {
		payload := core.ValuationPayload{MarketSummary: "No candidate cars available to value."}
		return core.Degraded(payload, payload.MarketSummary, "no discovery candidates"), nil
	}

	analyses := make([]core.CarValuation, len(candidates))
	for i, car := range candidates {
		analyses[i] = a.value(car)
	}

	payload := core.ValuationPayload{
		Analyses:      analyses,
		MarketSummary: a.marketSummary(analyses),
	}
	heuristic := a.heuristicSummary(analyses)
	prompt := a.prompt(proj.Query, analyses)
	return a.finish(ctx, payload, prompt, heuristic), nil
}

// value applies the factor model to one car.
func (a *ValuationAgent) value(car core.Car) core.CarValuation {
	factors := a.factors(car)

	adjustment := 0.0
	for _, f := range factors {
		adjustment += f.Impact
	}
	marketPrice := int(math.Round(float64(car.Price) * (1 + adjustment)))
	variance := 0.0
	if car.Price > 0 {
		variance = float64(marketPrice-car.Price) / float64(car.Price) * 100
	}

	score := dealScore(variance)
	return core.CarValuation{
		CarID:       car.ID,
		CarName:     car.Name(),
		MarketValue: marketPrice,
		Analysis: core.PriceAnalysis{
			ListPrice:       car.Price,
			MarketPrice:     marketPrice,
			Factors:         factors,
			VariancePercent: math.Round(variance*100) / 100,
		},
		DealScore:      score,
		Recommendation: recommendation(car, score),
	}
}

var brandPremiums = map[string]float64{
	"Tata":     0.02,
	"Hyundai":  0.03,
	"MG":       -0.01,
	"Mahindra": 0.01,
	"Maruti":   0.025,
}

var locationPremiums = map[string]float64{
	"Delhi":     0.03,
	"Mumbai":    0.04,
	"Bangalore": 0.02,
	"Chennai":   0.01,
	"Pune":      0.015,
}

// factors builds the ordered adjustment list for a car. Order is fixed so
// identical cars always produce identical analyses.
func (a *ValuationAgent) factors(car core.Car) []core.MarketFactor {
	var factors []core.MarketFactor

	switch car.FuelType {
	case "Electric":
		factors = append(factors, core.MarketFactor{
			Name: "ev_demand", Impact: 0.05,
			Description: "High demand for electric vehicles",
		})
	case "Diesel":
		factors = append(factors, core.MarketFactor{
			Name: "diesel_softness", Impact: -0.02,
			Description: "Declining diesel preference in metro markets",
		})
	case "Petrol":
		factors = append(factors, core.MarketFactor{
			Name: "petrol_stability", Impact: 0.01,
			Description: "Stable petrol demand",
		})
	}

	if premium, ok := brandPremiums[car.Make]; ok {
		factors = append(factors, core.MarketFactor{
			Name: "brand", Impact: premium,
			Description: car.Make + " brand position",
		})
	}

	if age := a.refYear - car.Year; age > 0 {
		factors = append(factors, core.MarketFactor{
			Name: "age", Impact: -0.08 * float64(age),
			Description: fmt.Sprintf("%d year(s) of depreciation", age),
		})
	}

	if premium, ok := locationPremiums[car.Location]; ok {
		factors = append(factors, core.MarketFactor{
			Name: "location", Impact: premium,
			Description: car.Location + " market premium",
		})
	}

	switch {
	case car.Rating >= 4.2:
		factors = append(factors, core.MarketFactor{
			Name: "rating", Impact: 0.02,
			Description: "Strongly rated by owners",
		})
	case car.Rating > 0 && car.Rating <= 3.8:
		factors = append(factors, core.MarketFactor{
			Name: "rating", Impact: -0.015,
			Description: "Below-average owner rating",
		})
	}

	return factors
}

// dealScore grades the variance of market value over list price.
func dealScore(variancePercent float64) core.DealScore {
	switch {
	case variancePercent > 5:
		return core.DealScore{Score: "Excellent", Description: "Priced well below market value"}
	case variancePercent > 0:
		return core.DealScore{Score: "Good", Description: "Priced slightly below market value"}
	case variancePercent > -5:
		return core.DealScore{Score: "Fair", Description: "Priced near market value"}
	default:
		return core.DealScore{Score: "Overpriced", Description: "Priced above market value"}
	}
}

func recommendation(car core.Car, score core.DealScore) string {
	switch score.Score {
	case "Excellent":
		return fmt.Sprintf("Strong buy: the %s trades below its market value.", car.Name())
	case "Good":
		return fmt.Sprintf("Good value: the %s is fairly priced with upside.", car.Name())
	case "Fair":
		return fmt.Sprintf("Reasonable: the %s is priced at market.", car.Name())
	default:
		return fmt.Sprintf("Negotiate: the %s lists above its market value.", car.Name())
	}
}

func (a *ValuationAgent) marketSummary(analyses []core.CarValuation) string {
	best := analyses[0]
	for _, v := range analyses[1:] {
		if v.Analysis.VariancePercent > best.Analysis.VariancePercent {
			best = v
		}
	}
	return fmt.Sprintf("Best value among %d candidates: %s (%s).",
		len(analyses), best.CarName, best.DealScore.Score)
}

func (a *ValuationAgent) heuristicSummary(analyses []core.CarValuation) string {
	parts := make([]string, len(analyses))
	for i, v := range analyses {
		parts[i] = fmt.Sprintf("%s: %s (market ₹%s)", v.CarName, v.DealScore.Score, formatRupees(v.MarketValue))
	}
	return "Valuation: " + strings.Join(parts, "; ") + "."
}

func (a *ValuationAgent) prompt(query string, analyses []core.CarValuation) string {
	var sb strings.Builder
	sb.WriteString("The user asked: " + query + "\nPrice analyses:\n")
	for _, v := range analyses {
		fmt.Fprintf(&sb, "- %s: list ₹%s, market ₹%s, variance %.1f%%, deal %s\n",
			v.CarName, formatRupees(v.Analysis.ListPrice), formatRupees(v.MarketValue),
			v.Analysis.VariancePercent, v.DealScore.Score)
	}
	sb.WriteString("Explain which candidates are the best value and why.")
	return sb.String()
}
