package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmesh/carmesh/core"
)

// stubAgent is a configurable test agent.
type stubAgent struct {
	role    core.Role
	result  core.AgentResult
	err     error
	delay   time.Duration
	panics  bool
	observe func(rc *core.RunContext)
}

func (a *stubAgent) Role() core.Role        { return a.role }
func (a *stubAgent) Description() string    { return "stub " + a.role.String() }
func (a *stubAgent) Capabilities() []string { return []string{"stub"} }

func (a *stubAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	if a.panics {
		panic("boom")
	}
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return core.AgentResult{}, ctx.Err()
		}
	}
	if a.observe != nil {
		a.observe(rc)
	}
	if a.err != nil {
		return core.AgentResult{}, a.err
	}
	return a.result, nil
}

func discoveryResult() core.AgentResult {
	return core.Degraded(
		core.DiscoveryPayload{Candidates: []core.Car{{ID: "car_001", Make: "Tata", Model: "Nexon EV"}}},
		"Found 1 matching car.",
		"no model configured",
	)
}

func knowledgeResult() core.AgentResult {
	return core.Degraded(
		core.KnowledgePayload{Insights: []core.Snippet{{ID: "kb_001", Topic: "EV market"}}},
		"Found 1 relevant insight.",
		"no model configured",
	)
}

func twoStepPlan() core.ExecutionPlan {
	return core.ExecutionPlan{Steps: []core.PlanStep{
		{Role: core.RoleDiscovery, Projection: core.InputProjection{Query: "best ev"}},
		{Role: core.RoleKnowledge, Projection: core.InputProjection{Query: "best ev"}},
	}}
}

func TestExecuteMergesInLaunchOrder(t *testing.T) {
	e := New()
	// Knowledge finishes first; merge order must still follow launch
	// (plan) order.
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult(), delay: 30 * time.Millisecond})
	e.Register(&stubAgent{role: core.RoleKnowledge, result: knowledgeResult()})

	env, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "best ev"})
	require.NoError(t, err)

	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, []string{"candidates", "insights"}, env.Keys())
	assert.Equal(t, "Found 1 matching car. Found 1 relevant insight.", env.Summary)
}

func TestExecuteTracePairing(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult()})
	e.Register(&stubAgent{role: core.RoleKnowledge, result: knowledgeResult()})

	env, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "best ev"})
	require.NoError(t, err)
	require.Len(t, env.Trace, 4)

	started := map[core.Role]int{}
	terminal := map[core.Role]int{}
	for _, ev := range env.Trace {
		assert.Equal(t, env.RequestID, ev.RequestID)
		if ev.Terminal() {
			// Terminal events always follow the role's own start.
			assert.Equal(t, 1, started[ev.Role])
			terminal[ev.Role]++
		} else {
			started[ev.Role]++
		}
	}
	for _, role := range []core.Role{core.RoleDiscovery, core.RoleKnowledge} {
		assert.Equal(t, 1, started[role])
		assert.Equal(t, 1, terminal[role])
	}

	// Parallel steps start in plan order.
	assert.Equal(t, core.RoleDiscovery, env.Trace[0].Role)
	assert.Equal(t, core.StepStarted, env.Trace[0].State)
	assert.Equal(t, core.RoleKnowledge, env.Trace[1].Role)
	assert.Equal(t, core.StepStarted, env.Trace[1].State)
}

func TestExecuteDependentStepSeesUpstreamResult(t *testing.T) {
	e := New()
	var seen []core.Car
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult()})
	e.Register(&stubAgent{
		role:   core.RoleValuation,
		result: core.Degraded(core.ValuationPayload{}, "Valued 1 car.", "no model configured"),
		observe: func(rc *core.RunContext) {
			seen = rc.Candidates()
		},
	})

	plan := core.ExecutionPlan{Steps: []core.PlanStep{
		{Role: core.RoleDiscovery, Projection: core.InputProjection{Query: "q"}},
		{Role: core.RoleValuation, Projection: core.InputProjection{Query: "q", DependsOn: []core.Role{core.RoleDiscovery}}},
	}}

	_, err := e.Execute(context.Background(), plan, core.Query{Text: "q"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "car_001", seen[0].ID)
}

func TestExecuteContainsTimeout(t *testing.T) {
	e := New(func(o *Options) { o.Config.StepTimeout = 20 * time.Millisecond })
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult(), delay: 500 * time.Millisecond})
	e.Register(&stubAgent{role: core.RoleKnowledge, result: knowledgeResult()})

	env, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "q"})
	require.NoError(t, err)

	// Discovery timed out; knowledge still contributes.
	assert.Equal(t, []string{"insights"}, env.Keys())
	_, present := env.Entry(core.RoleDiscovery)
	assert.False(t, present)

	var failedEv core.TraceEvent
	for _, ev := range env.Trace {
		if ev.Role == core.RoleDiscovery && ev.Terminal() {
			failedEv = ev
		}
	}
	assert.Equal(t, core.StepFailed, failedEv.State)
	assert.Equal(t, string(core.ErrKindTimeout), failedEv.Summary)
}

func TestExecuteClassifiesWrappedDeadlineError(t *testing.T) {
	e := New()
	e.Register(&stubAgent{
		role: core.RoleDiscovery,
		err:  fmt.Errorf("load listings: %w", context.DeadlineExceeded),
	})
	e.Register(&stubAgent{role: core.RoleKnowledge, result: knowledgeResult()})

	env, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "q"})
	require.NoError(t, err)

	var failedEv core.TraceEvent
	for _, ev := range env.Trace {
		if ev.Role == core.RoleDiscovery && ev.Terminal() {
			failedEv = ev
		}
	}
	assert.Equal(t, core.StepFailed, failedEv.State)
	assert.Equal(t, string(core.ErrKindTimeout), failedEv.Summary)
}

func TestExecuteContainsAgentErrorAndPanic(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleDiscovery, err: errors.New("store offline")})
	e.Register(&stubAgent{role: core.RoleKnowledge, panics: true})

	env, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "q"})
	require.NoError(t, err)

	assert.Empty(t, env.Payload)
	assert.Contains(t, env.Summary, "No agents completed")
	assert.Contains(t, env.Summary, "discovery")
	assert.Contains(t, env.Summary, "knowledge")
	require.Len(t, env.Trace, 4)
}

func TestExecuteRejectsInvalidPlan(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleValuation})

	plan := core.ExecutionPlan{Steps: []core.PlanStep{
		{Role: core.RoleValuation, Projection: core.InputProjection{DependsOn: []core.Role{core.RoleDiscovery}}},
	}}

	_, err := e.Execute(context.Background(), plan, core.Query{Text: "q"})
	var pie *core.PlanIntegrityError
	require.ErrorAs(t, err, &pie)
	assert.Equal(t, core.RoleValuation, pie.Role)
	assert.Equal(t, core.RoleDiscovery, pie.Missing)
}

func TestExecuteRejectsUnregisteredRole(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult()})

	_, err := e.Execute(context.Background(), twoStepPlan(), core.Query{Text: "q"})
	var uae *core.UnknownAgentError
	require.ErrorAs(t, err, &uae)
	assert.Equal(t, core.RoleKnowledge, uae.Role)
}

func TestExecuteCancelledContext(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult(), delay: time.Second})
	e.Register(&stubAgent{role: core.RoleKnowledge, result: knowledgeResult(), delay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := e.Execute(ctx, twoStepPlan(), core.Query{Text: "q"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteFreshRequestIDs(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleDiscovery, result: discoveryResult()})

	plan := core.ExecutionPlan{Steps: []core.PlanStep{
		{Role: core.RoleDiscovery, Projection: core.InputProjection{Query: "q"}},
	}}

	first, err := e.Execute(context.Background(), plan, core.Query{Text: "q"})
	require.NoError(t, err)
	second, err := e.Execute(context.Background(), plan, core.Query{Text: "q"})
	require.NoError(t, err)

	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.Equal(t, first.Keys(), second.Keys())
	assert.Equal(t, first.Summary, second.Summary)
}

func TestCapabilitiesCanonicalOrder(t *testing.T) {
	e := New()
	e.Register(&stubAgent{role: core.RoleFinancing})
	e.Register(&stubAgent{role: core.RoleDiscovery})

	caps := e.Capabilities()
	require.Len(t, caps, 2)
	assert.Equal(t, core.RoleDiscovery, caps[0].Role)
	assert.Equal(t, core.RoleFinancing, caps[1].Role)
}
