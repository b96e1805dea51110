// Package carmesh provides a high-level façade over the dispatch planner,
// the execution engine and the five built-in agents. Most applications
// interact with this package by:
//  1. Creating a CarMesh via New() (optionally overriding stores, model,
//     logger and trace emitter)
//  2. Handling queries with Handle(), which plans, executes and returns the
//     merged envelope
//
// All defaults are safe for local development: in-memory stores seeded with
// the built-in inventory and knowledge corpus, no model (agents degrade to
// heuristic summaries), and no logging.
package carmesh

import (
	"context"

	"github.com/carmesh/carmesh/agent"
	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/engine"
	"github.com/carmesh/carmesh/knowledge"
	"github.com/carmesh/carmesh/logging"
	"github.com/carmesh/carmesh/model"
	"github.com/carmesh/carmesh/planner"
	"github.com/carmesh/carmesh/store"
	"github.com/carmesh/carmesh/trace"
)

// Options configures the CarMesh instance.
type Options struct {
	// EngineConfig tunes step timeouts.
	EngineConfig engine.Config

	// PlannerTopK bounds knowledge retrieval per plan. Zero keeps the
	// planner default.
	PlannerTopK int

	// KnowledgeStore defaults to the seeded automotive corpus.
	KnowledgeStore core.KnowledgeStore

	// ListingStore defaults to the seeded in-memory inventory.
	ListingStore core.ListingStore

	// Model enables full-mode summaries. Nil runs every agent degraded.
	Model model.Model

	// Logger defaults to NoOp if nil.
	Logger logging.Logger

	// Emitter receives trace events live. Defaults to NoOp.
	Emitter trace.Emitter
}

// CarMesh aggregates the planner, the engine and the registered agents.
type CarMesh struct {
	opts    Options
	planner *planner.Planner
	engine  *engine.Engine
}

// New creates a CarMesh instance with optional overrides. Unset stores fall
// back to the seeded in-memory implementations.
func New(optFns ...func(o *Options)) *CarMesh {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
		Emitter:      trace.NoOp{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.KnowledgeStore == nil {
		opts.KnowledgeStore = knowledge.NewAutomotiveStore()
	}
	if opts.ListingStore == nil {
		opts.ListingStore = store.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	eng := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Logger = opts.Logger
		o.Emitter = opts.Emitter
	})

	agentOpts := func(o *agent.Options) {
		o.Model = opts.Model
		o.Logger = opts.Logger
	}
	eng.Register(agent.NewDiscoveryAgent(opts.ListingStore, agentOpts))
	eng.Register(agent.NewKnowledgeAgent(opts.KnowledgeStore, agentOpts))
	eng.Register(agent.NewValuationAgent(func(o *agent.ValuationOptions) {
		o.Model = opts.Model
		o.Logger = opts.Logger
	}))
	eng.Register(agent.NewFinancingAgent(agentOpts))
	eng.Register(agent.NewDocumentAgent(agentOpts))

	p := planner.New(func(o *planner.Options) {
		if opts.PlannerTopK > 0 {
			o.TopK = opts.PlannerTopK
		}
	})

	return &CarMesh{opts: opts, planner: p, engine: eng}
}

// Register replaces the agent for a role, e.g. to swap in a custom variant.
func (m *CarMesh) Register(a core.Agent) { m.engine.Register(a) }

// Capabilities describes the registered agents in canonical role order.
func (m *CarMesh) Capabilities() []core.AgentCapability { return m.engine.Capabilities() }

// Plan exposes the dispatch plan for a query without executing it.
func (m *CarMesh) Plan(query core.Query) core.ExecutionPlan { return m.planner.Plan(query) }

// Handle plans and executes one query, returning the merged envelope.
func (m *CarMesh) Handle(ctx context.Context, text string, optFns ...func(q *core.Query)) (core.Envelope, error) {
	query := core.Query{Text: text}
	for _, fn := range optFns {
		fn(&query)
	}
	return m.engine.Execute(ctx, m.planner.Plan(query), query)
}
