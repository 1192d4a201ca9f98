package lumen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumenlang/golumen/model"
	"github.com/lumenlang/golumen/script"
)

// Engine executes Lumen scripts. Each engine owns its execution
// context and its model router; the model registry it reads may be
// shared with other engines. An engine is not safe for concurrent
// Execute calls; give each session its own engine or serialize
// externally.
type Engine struct {
	registry *model.Registry
	router   *model.Router
	ctx      *ExecutionContext
	plugins  PluginRouter
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine, *routerConfig)

type routerConfig struct {
	opts []model.RouterOption
}

// WithCompleteTimeout bounds each assistant completion call.
func WithCompleteTimeout(d time.Duration) Option {
	return func(_ *Engine, rc *routerConfig) {
		rc.opts = append(rc.opts, model.WithCompleteTimeout(d))
	}
}

// WithPluginRouter wires the external plugin subsystem.
func WithPluginRouter(pr PluginRouter) Option {
	return func(e *Engine, _ *routerConfig) {
		e.plugins = pr
	}
}

// WithRecorder wires a durable recorder for context mutations.
func WithRecorder(r Recorder) Option {
	return func(e *Engine, _ *routerConfig) {
		e.recorder = r
	}
}

// New creates an engine over a shared model registry.
func New(registry *model.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		ctx:      NewExecutionContext(),
	}
	rc := &routerConfig{}
	for _, opt := range opts {
		opt(e, rc)
	}
	e.router = model.NewRouter(registry, rc.opts...)
	return e
}

// Validate parses source without executing it.
func (e *Engine) Validate(source string) script.ValidationResult {
	return script.Validate(source)
}

// Execute parses and runs a script. It always returns a result and
// never panics out: syntax errors come back as a parse_error result
// with no statements executed, and statement-level failures are
// isolated to their own result while the run continues.
func (e *Engine) Execute(ctx context.Context, source string) (res *ProgramResult) {
	res = &ProgramResult{
		RunID:  uuid.New().String()[:8],
		Status: ProgramSuccess,
	}

	defer func() {
		if r := recover(); r != nil {
			res.Status = ProgramExecutionError
			res.Error = fmt.Sprintf("internal fault: %v", r)
			res.Context = e.ctx.Snapshot()
		}
	}()

	program, errs := script.Parse(source)
	if len(errs) > 0 {
		res.Status = ProgramParseError
		res.ParseErrors = errs
		return res
	}

	for _, st := range program.Statements {
		if st.Kind() == script.KindComment {
			continue
		}
		res.Results = append(res.Results, e.executeStatement(ctx, st))
	}

	res.Context = e.ctx.Snapshot()
	return res
}

// Context returns a read-only snapshot of the execution context.
func (e *Engine) Context() *ContextSnapshot {
	return e.ctx.Snapshot()
}

// ClearContext resets the execution context and the active model.
// The registry configuration is untouched.
func (e *Engine) ClearContext() {
	e.ctx.Clear()
	e.router.Reset()
}

// Registry returns the shared model registry.
func (e *Engine) Registry() *model.Registry {
	return e.registry
}

// Seed preloads the execution context from previously persisted
// state, typically read back from a store. Nil arguments are skipped.
func (e *Engine) Seed(memory map[string]MemoryEntry, goals []Goal, turns []ConversationTurn) {
	for tag, entry := range memory {
		e.ctx.memory[tag] = entry
	}
	e.ctx.goals = append(e.ctx.goals, goals...)
	e.ctx.conversation = append(e.ctx.conversation, turns...)
}
