package carmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/model"
	"github.com/carmesh/carmesh/trace"
)

func TestHandlePurchaseQuery(t *testing.T) {
	mesh := New()

	env, err := mesh.Handle(context.Background(), "Best EV under ₹15L in Delhi?")
	require.NoError(t, err)

	assert.Equal(t, []string{"candidates", "insights", "price_analysis", "financing_options"}, env.Keys())
	assert.NotEmpty(t, env.Summary)
	assert.Len(t, env.Trace, 8) // four steps, started + terminal each

	entry, ok := env.Entry(core.RoleDiscovery)
	require.True(t, ok)
	payload := entry.Payload.(core.DiscoveryPayload)
	assert.Equal(t, 1500000, payload.Criteria.MaxPrice)
	assert.NotEmpty(t, payload.Candidates)
}

func TestHandleWithoutModelDegrades(t *testing.T) {
	mesh := New()

	env, err := mesh.Handle(context.Background(), "compare the ev market")
	require.NoError(t, err)

	require.NotEmpty(t, env.Payload)
	for _, entry := range env.Payload {
		assert.Equal(t, core.StatusDegraded, entry.Status)
	}
}

func TestHandleWithModelSucceeds(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	mesh := New(func(o *Options) { o.Model = m })

	env, err := mesh.Handle(context.Background(), "compare the ev market")
	require.NoError(t, err)

	require.NotEmpty(t, env.Payload)
	for _, entry := range env.Payload {
		assert.Equal(t, core.StatusSuccess, entry.Status)
	}
}

func TestHandleEmptyQueryFallsBack(t *testing.T) {
	mesh := New()

	env, err := mesh.Handle(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, []string{"candidates"}, env.Keys())
	assert.Contains(t, env.Summary, "Share a budget")
}

func TestHandleEmitsLiveTrace(t *testing.T) {
	recorder := trace.NewRecorder()
	mesh := New(func(o *Options) { o.Emitter = recorder })

	env, err := mesh.Handle(context.Background(), "loan for an ev")
	require.NoError(t, err)

	events := recorder.Events()
	assert.Equal(t, len(env.Trace), len(events))
	for _, ev := range events {
		assert.Equal(t, env.RequestID, ev.RequestID)
	}
}

func TestHandleQueryOptions(t *testing.T) {
	mesh := New()

	env, err := mesh.Handle(context.Background(), "find a car", func(q *core.Query) {
		q.MaxBudget = 1300000
	})
	require.NoError(t, err)

	entry, ok := env.Entry(core.RoleDiscovery)
	require.True(t, ok)
	payload := entry.Payload.(core.DiscoveryPayload)
	assert.Equal(t, 1300000, payload.Criteria.MaxPrice)
}

func TestCapabilities(t *testing.T) {
	mesh := New()

	caps := mesh.Capabilities()
	require.Len(t, caps, 5)
	assert.Equal(t, core.RoleDiscovery, caps[0].Role)
	assert.Equal(t, core.RoleDocument, caps[4].Role)
}
