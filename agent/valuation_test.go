package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmesh/carmesh/core"
)

func newValuationContext(cars ...core.Car) *core.RunContext {
	rc := core.NewRunContext(core.Query{Text: "is this a good deal"})
	rc.Record(core.RoleDiscovery, core.Degraded(
		core.DiscoveryPayload{Candidates: cars},
		"found cars",
		"no model configured",
	))
	return rc
}

func TestValuationFactors(t *testing.T) {
	a := NewValuationAgent(func(o *ValuationOptions) { o.ReferenceYear = 2024 })

	car := core.Car{
		ID: "car_001", Make: "Tata", Model: "Nexon EV", Year: 2023,
		Price: 1400000, FuelType: "Electric", Location: "Delhi", Rating: 4.2,
	}
	v := a.value(car)

	byName := map[string]float64{}
	for _, f := range v.Analysis.Factors {
		byName[f.Name] = f.Impact
	}
	assert.InDelta(t, 0.05, byName["ev_demand"], 1e-9)
	assert.InDelta(t, 0.02, byName["brand"], 1e-9)
	assert.InDelta(t, -0.08, byName["age"], 1e-9) // one year old
	assert.InDelta(t, 0.03, byName["location"], 1e-9)
	assert.InDelta(t, 0.02, byName["rating"], 1e-9)

	// Net adjustment: +0.05 +0.02 -0.08 +0.03 +0.02 = +0.04.
	assert.Equal(t, 1456000, v.MarketValue)
	assert.InDelta(t, 4.0, v.Analysis.VariancePercent, 0.01)
	assert.Equal(t, "Good", v.DealScore.Score)
}

func TestValuationDealScoreBoundaries(t *testing.T) {
	assert.Equal(t, "Excellent", dealScore(5.1).Score)
	assert.Equal(t, "Good", dealScore(5.0).Score)
	assert.Equal(t, "Good", dealScore(0.1).Score)
	assert.Equal(t, "Fair", dealScore(0).Score)
	assert.Equal(t, "Fair", dealScore(-4.9).Score)
	assert.Equal(t, "Overpriced", dealScore(-5.0).Score)
}

func TestValuationRunDeterministic(t *testing.T) {
	a := NewValuationAgent(func(o *ValuationOptions) { o.ReferenceYear = 2024 })
	car := core.Car{ID: "car_004", Make: "Tata", Model: "Harrier", Year: 2023,
		Price: 1600000, FuelType: "Diesel", Location: "Mumbai", Rating: 4.1}

	first, err := a.Run(context.Background(), newValuationContext(car), core.InputProjection{Query: "deal?"})
	require.NoError(t, err)
	second, err := a.Run(context.Background(), newValuationContext(car), core.InputProjection{Query: "deal?"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, core.StatusDegraded, first.Status)

	payload := first.Payload.(core.ValuationPayload)
	require.Len(t, payload.Analyses, 1)
	assert.NotEmpty(t, payload.MarketSummary)
}

func TestValuationNoCandidatesDegrades(t *testing.T) {
	a := NewValuationAgent()
	rc := core.NewRunContext(core.Query{Text: "price?"})

	result, err := a.Run(context.Background(), rc, core.InputProjection{Query: "price?"})
	require.NoError(t, err)

	assert.Equal(t, core.StatusDegraded, result.Status)
	assert.Equal(t, "no discovery candidates", result.Reason)
	payload := result.Payload.(core.ValuationPayload)
	assert.Empty(t, payload.Analyses)
}
