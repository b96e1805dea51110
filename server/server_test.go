package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carmesh "github.com/carmesh/carmesh"
	"github.com/carmesh/carmesh/core"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil)
	mesh := carmesh.New(func(o *carmesh.Options) { o.Emitter = hub })
	srv := New(mesh, func(o *Options) { o.Hub = hub })

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestQueryEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	body, _ := json.Marshal(QueryRequest{Query: "Best EV under ₹15L in Delhi?"})
	resp, err := http.Post(ts.URL+"/query", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env core.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.NotEmpty(t, env.RequestID)
	assert.NotEmpty(t, env.Summary)
	assert.NotEmpty(t, env.Trace)

	keys := make([]string, 0)
	for _, entry := range env.Payload {
		keys = append(keys, entry.Key)
	}
	assert.Equal(t, []string{"candidates", "insights", "price_analysis", "financing_options"}, keys)
}

func TestQueryEndpointRejectsBadInput(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/query", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/query")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAgentsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/agents")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Agents []core.AgentCapability `json:"agents"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Agents, 5)
	assert.Equal(t, core.RoleDiscovery, body.Agents[0].Role)
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketStreamsTraceEvents(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.Hub().ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	body, _ := json.Marshal(QueryRequest{Query: "compare the ev market"})
	resp, err := http.Post(ts.URL+"/query", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	var env core.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	// One started and one terminal event for the single knowledge step.
	var events []core.TraceEvent
	for i := 0; i < len(env.Trace); i++ {
		var ev core.TraceEvent
		require.NoError(t, conn.ReadJSON(&ev))
		events = append(events, ev)
	}
	require.Len(t, events, 2)
	assert.Equal(t, env.RequestID, events[0].RequestID)
	assert.Equal(t, core.StepStarted, events[0].State)
	assert.True(t, events[1].Terminal())
}
