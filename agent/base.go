package agent

import (
	"context"

	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/logging"
	"github.com/carmesh/carmesh/model"
)

// Options configure the shared collaborators of every agent variant.
type Options struct {
	// Model generates the summary narrative. Nil runs the agent in
	// degraded mode with heuristic summaries.
	Model model.Model

	// Logger defaults to NoOp if nil.
	Logger logging.Logger
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return opts
}

// BaseAgent bundles the identity fields and the dual-mode summary helper
// shared by all variants. Embed it and supply a Run method to satisfy
// core.Agent.
type BaseAgent struct {
	role         core.Role
	description  string
	capabilities []string
	model        model.Model
	logger       logging.Logger
}

func newBase(role core.Role, description string, capabilities []string, opts Options) BaseAgent {
	return BaseAgent{
		role:         role,
		description:  description,
		capabilities: capabilities,
		model:        opts.Model,
		logger:       opts.Logger,
	}
}

// Role returns the fixed pipeline role this agent fills.
func (b *BaseAgent) Role() core.Role { return b.role }

// Description returns a short human-readable purpose statement.
func (b *BaseAgent) Description() string { return b.description }

// Capabilities lists the agent's advertised capabilities.
func (b *BaseAgent) Capabilities() []string {
	return append([]string(nil), b.capabilities...)
}

// finish builds the result for a computed payload. With a model configured
// it asks for a narrative summary and returns Success; without one, or when
// the model call fails, it returns Degraded with the heuristic summary. The
// payload is identical either way.
func (b *BaseAgent) finish(ctx context.Context, payload core.Payload, prompt, heuristic string) core.AgentResult {
	if b.model == nil {
		return core.Degraded(payload, heuristic, "no model configured")
	}

	resp, err := b.model.Complete(ctx, model.Request{
		System: "You are an automotive shopping assistant for the Indian market. " +
			"Answer in two or three sentences, concrete and factual.",
		Prompt: prompt,
	})
	if err != nil {
		b.logger.Warn("model call failed, using heuristic summary",
			"role", b.role.String(), "error", err)
		return core.Degraded(payload, heuristic, "model call failed")
	}
	if resp.Text == "" {
		return core.Degraded(payload, heuristic, "model returned empty text")
	}
	return core.Success(payload, resp.Text)
}
