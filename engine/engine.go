package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/carmesh/carmesh/core"
	"github.com/carmesh/carmesh/logging"
	"github.com/carmesh/carmesh/trace"
)

// Config defines tuning parameters for the Engine's operational behavior.
type Config struct {
	// StepTimeout bounds each agent invocation. A step exceeding it is
	// recorded as failed with a timeout kind; the request continues.
	// Set to 0 for no per-step ceiling (not recommended).
	StepTimeout time.Duration
}

// DefaultConfig provides production-ready default configuration values.
var DefaultConfig = Config{
	StepTimeout: 10 * time.Second,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOp logger if nil.
	Logger logging.Logger

	// Emitter receives trace events live as steps start and settle, in
	// addition to the trace recorded in each envelope. Defaults to NoOp.
	Emitter trace.Emitter
}

// Engine coordinates agent execution for one query at a time per call.
// Execute is safe for concurrent use; every request gets its own
// RunContext, trace recorder, and scheduling state.
type Engine struct {
	config  Config
	logger  logging.Logger
	emitter trace.Emitter

	mu     sync.RWMutex
	agents map[core.Role]core.Agent
}

// New creates an Engine with sensible defaults and optional configuration.
//
// Example:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Config.StepTimeout = 5 * time.Second
//	    o.Logger = myLogger
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:  DefaultConfig,
		Logger:  logging.NoOpLogger{},
		Emitter: trace.NoOp{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Emitter == nil {
		opts.Emitter = trace.NoOp{}
	}

	return &Engine{
		config:  opts.Config,
		logger:  opts.Logger,
		emitter: opts.Emitter,
		agents:  make(map[core.Role]core.Agent),
	}
}

// Register adds an agent to the registry, replacing any agent previously
// registered for the same role.
func (e *Engine) Register(a core.Agent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.agents[a.Role()] = a
}

// Agent retrieves a registered agent by role.
func (e *Engine) Agent(role core.Role) (core.Agent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.agents[role]
	return a, ok
}

// Capabilities describes every registered agent in canonical role order.
func (e *Engine) Capabilities() []core.AgentCapability {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var caps []core.AgentCapability
	for _, role := range core.KnownRoles() {
		a, ok := e.agents[role]
		if !ok {
			continue
		}
		caps = append(caps, core.AgentCapability{
			Role:         role,
			Description:  a.Description(),
			Capabilities: a.Capabilities(),
		})
	}
	return caps
}

// stepOutcome carries one settled step back to the scheduling loop.
type stepOutcome struct {
	role   core.Role
	result core.AgentResult
	took   time.Duration
}

// Execute runs the plan against the registered agents and merges the
// results into an envelope.
//
// Fatal errors (nil envelope): plan validation failure, a step role with no
// registered agent, or cancellation of ctx before all steps settle. Every
// other failure is contained in the step that caused it.
func (e *Engine) Execute(ctx context.Context, plan core.ExecutionPlan, query core.Query) (core.Envelope, error) {
	if err := plan.Validate(); err != nil {
		return core.Envelope{}, err
	}
	e.mu.RLock()
	for _, step := range plan.Steps {
		if _, ok := e.agents[step.Role]; !ok {
			e.mu.RUnlock()
			return core.Envelope{}, &core.UnknownAgentError{Role: step.Role}
		}
	}
	e.mu.RUnlock()

	requestID := core.NewID()
	rc := core.NewRunContext(query)
	recorder := trace.NewRecorder()
	emitter := trace.NewMulti(recorder, e.emitter)

	e.logger.Info("executing plan",
		"request_id", requestID,
		"roles", fmt.Sprintf("%v", plan.Roles()),
	)

	settled := make(map[core.Role]bool, len(plan.Steps))
	launched := make(map[core.Role]bool, len(plan.Steps))
	launchOrder := make([]core.Role, 0, len(plan.Steps))
	outcomes := make(chan stepOutcome, len(plan.Steps))

	pending := len(plan.Steps)
	for pending > 0 {
		// Launch every step whose dependencies have settled, in plan
		// order. Plan order is deterministic, so launch order is too.
		for _, step := range plan.Steps {
			if launched[step.Role] || !ready(step, settled) {
				continue
			}
			launched[step.Role] = true
			launchOrder = append(launchOrder, step.Role)
			emitter.Emit(core.TraceEvent{
				RequestID: requestID,
				Role:      step.Role,
				State:     core.StepStarted,
				Timestamp: time.Now().UTC(),
			})

			agent, _ := e.Agent(step.Role)
			go func(step core.PlanStep, agent core.Agent) {
				start := time.Now()
				result := e.runStep(ctx, agent, rc, step)
				outcomes <- stepOutcome{role: step.Role, result: result, took: time.Since(start)}
			}(step, agent)
		}

		select {
		case <-ctx.Done():
			e.logger.Warn("request cancelled", "request_id", requestID, "pending", pending)
			return core.Envelope{}, ctx.Err()
		case out := <-outcomes:
			pending--
			settled[out.role] = true
			rc.Record(out.role, out.result)
			e.logStep(out)
			emitter.Emit(terminalEvent(requestID, out))
		}
	}

	return e.merge(requestID, rc, launchOrder, recorder.Events()), nil
}

// ready reports whether every dependency of the step has settled. Failed
// dependencies count as settled: the dependent agent decides whether it can
// still contribute from whatever context exists.
func ready(step core.PlanStep, settled map[core.Role]bool) bool {
	for _, dep := range step.Projection.DependsOn {
		if !settled[dep] {
			return false
		}
	}
	return true
}

// runStep executes one agent under the per-step deadline and converts every
// failure mode (error return, timeout, panic) into a contained result.
func (e *Engine) runStep(ctx context.Context, agent core.Agent, rc *core.RunContext, step core.PlanStep) core.AgentResult {
	stepCtx := ctx
	cancel := context.CancelFunc(func() {})
	if e.config.StepTimeout > 0 {
		stepCtx, cancel = context.WithTimeout(ctx, e.config.StepTimeout)
	}
	defer cancel()

	done := make(chan core.AgentResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("agent panic", "role", agent.Role(), "panic", fmt.Sprintf("%v", r))
				done <- core.Failed(core.ErrKindInternal)
			}
		}()

		result, err := agent.Run(stepCtx, rc, step.Projection)
		if err != nil {
			e.logger.Warn("agent error", "role", agent.Role(), "error", err)
			done <- core.Failed(classify(stepCtx, err))
			return
		}
		done <- result
	}()

	select {
	case result := <-done:
		return result
	case <-stepCtx.Done():
		// The agent goroutine is abandoned; it still holds a buffered
		// channel slot so it can settle without leaking.
		return core.Failed(core.ErrKindTimeout)
	}
}

// classify maps an agent error to its failure kind.
func classify(stepCtx context.Context, err error) core.ErrorKind {
	if errors.Is(stepCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return core.ErrKindTimeout
	}
	return core.ErrKindInternal
}

func (e *Engine) logStep(out stepOutcome) {
	if out.result.Usable() {
		e.logger.Info("step settled",
			"role", out.role,
			"status", string(out.result.Status),
			"took", out.took.String(),
		)
		return
	}
	e.logger.Warn("step failed",
		"role", out.role,
		"kind", string(out.result.ErrorKind),
		"took", out.took.String(),
	)
}

func terminalEvent(requestID string, out stepOutcome) core.TraceEvent {
	ev := core.TraceEvent{
		RequestID: requestID,
		Role:      out.role,
		Timestamp: time.Now().UTC(),
	}
	if out.result.Usable() {
		ev.State = core.StepCompleted
		ev.Summary = out.result.Summary
	} else {
		ev.State = core.StepFailed
		ev.Summary = string(out.result.ErrorKind)
	}
	return ev
}

// merge builds the envelope: usable payloads and summaries in launch order,
// plus the full trace.
func (e *Engine) merge(requestID string, rc *core.RunContext, launchOrder []core.Role, events []core.TraceEvent) core.Envelope {
	var (
		entries   []core.EnvelopeEntry
		summaries []string
		failed    []string
	)
	for _, role := range launchOrder {
		result, ok := rc.Result(role)
		if !ok {
			continue
		}
		if !result.Usable() {
			failed = append(failed, role.String())
			continue
		}
		entries = append(entries, core.EnvelopeEntry{
			Role:    role,
			Key:     role.PayloadKey(),
			Status:  result.Status,
			Summary: result.Summary,
			Payload: result.Payload,
		})
		if result.Summary != "" {
			summaries = append(summaries, result.Summary)
		}
	}

	summary := strings.Join(summaries, " ")
	if len(entries) == 0 {
		summary = "No agents completed for this request."
		if len(failed) > 0 {
			summary += " Unavailable: " + strings.Join(failed, ", ") + "."
		}
	}

	return core.Envelope{
		RequestID: requestID,
		Payload:   entries,
		Summary:   summary,
		Trace:     events,
	}
}
