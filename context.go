package lumen

import (
	"sort"
	"time"

	"github.com/lumenlang/golumen/script"
)

// MemoryEntry is one tagged memory record.
type MemoryEntry struct {
	Content   string
	Timestamp time.Time
}

// Goal is one recorded goal.
type Goal struct {
	Goal      string
	Priority  string
	Timestamp time.Time
}

// AgentState is the state of one named agent. Status is "on" or
// "off"; Command is set when the agent was activated with a task.
type AgentState struct {
	Status  string
	Command string
}

// ConversationTurn is one assistant exchange.
type ConversationTurn struct {
	ID        string
	Task      string
	Response  string
	Model     string
	Timestamp time.Time
}

// FunctionDef is a stored function definition. Bodies are recorded
// for later invocation, which the engine does not yet perform.
type FunctionDef struct {
	Parameters []string
	Body       []script.Statement
}

// ExecutionContext holds all state that persists across statements
// within a script run, and across runs of the same engine until
// Clear is called. It is a plain state container: no method performs
// I/O or talks to the model registry. An ExecutionContext belongs to
// exactly one engine and is not safe for concurrent use.
type ExecutionContext struct {
	variables    map[string]any
	functions    map[string]FunctionDef
	memory       map[string]MemoryEntry
	goals        []Goal
	agents       map[string]AgentState
	conversation []ConversationTurn
	currentModel string
}

// NewExecutionContext creates an empty context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		variables: make(map[string]any),
		functions: make(map[string]FunctionDef),
		memory:    make(map[string]MemoryEntry),
		agents:    make(map[string]AgentState),
	}
}

// SetVariable binds a variable.
func (c *ExecutionContext) SetVariable(name string, value any) {
	c.variables[name] = value
}

// Variable reads a variable.
func (c *ExecutionContext) Variable(name string) (any, bool) {
	v, ok := c.variables[name]
	return v, ok
}

// Variables returns a copy of all variable bindings.
func (c *ExecutionContext) Variables() map[string]any {
	out := make(map[string]any, len(c.variables))
	for k, v := range c.variables {
		out[k] = v
	}
	return out
}

// DefineFunction stores a function definition.
func (c *ExecutionContext) DefineFunction(name string, def FunctionDef) {
	c.functions[name] = def
}

// Function looks up a stored function definition.
func (c *ExecutionContext) Function(name string) (FunctionDef, bool) {
	def, ok := c.functions[name]
	return def, ok
}

// Remember stores tagged content with the current time.
func (c *ExecutionContext) Remember(tag, content string) MemoryEntry {
	entry := MemoryEntry{Content: content, Timestamp: time.Now()}
	c.memory[tag] = entry
	return entry
}

// Recall reads a memory entry by tag.
func (c *ExecutionContext) Recall(tag string) (MemoryEntry, bool) {
	entry, ok := c.memory[tag]
	return entry, ok
}

// AppendGoal records a goal with the current time.
func (c *ExecutionContext) AppendGoal(goal, priority string) Goal {
	g := Goal{Goal: goal, Priority: priority, Timestamp: time.Now()}
	c.goals = append(c.goals, g)
	return g
}

// SetAgentState records the state of a named agent.
func (c *ExecutionContext) SetAgentState(name string, state AgentState) {
	c.agents[name] = state
}

// AppendConversationTurn records one assistant exchange.
func (c *ExecutionContext) AppendConversationTurn(turn ConversationTurn) {
	c.conversation = append(c.conversation, turn)
}

// SetCurrentModel records the active model name.
func (c *ExecutionContext) SetCurrentModel(name string) {
	c.currentModel = name
}

// CurrentModel returns the active model name, empty when none.
func (c *ExecutionContext) CurrentModel() string {
	return c.currentModel
}

// MemorySize returns the number of memory entries.
func (c *ExecutionContext) MemorySize() int { return len(c.memory) }

// GoalCount returns the number of recorded goals.
func (c *ExecutionContext) GoalCount() int { return len(c.goals) }

// Clear resets every field. Registry-level configuration lives
// outside the context and is unaffected.
func (c *ExecutionContext) Clear() {
	c.variables = make(map[string]any)
	c.functions = make(map[string]FunctionDef)
	c.memory = make(map[string]MemoryEntry)
	c.goals = nil
	c.agents = make(map[string]AgentState)
	c.conversation = nil
	c.currentModel = ""
}

// ContextSnapshot is an immutable copy of an ExecutionContext, taken
// after a run completes or on demand through Engine.Context.
type ContextSnapshot struct {
	Variables    map[string]any
	Memory       map[string]MemoryEntry
	Goals        []Goal
	Agents       map[string]AgentState
	Conversation []ConversationTurn
	CurrentModel string

	// FunctionNames lists stored function definitions. Bodies are
	// omitted from snapshots.
	FunctionNames []string
}

// Snapshot copies the context's current state.
func (c *ExecutionContext) Snapshot() *ContextSnapshot {
	snap := &ContextSnapshot{
		Variables:    make(map[string]any, len(c.variables)),
		Memory:       make(map[string]MemoryEntry, len(c.memory)),
		Agents:       make(map[string]AgentState, len(c.agents)),
		Goals:        make([]Goal, len(c.goals)),
		Conversation: make([]ConversationTurn, len(c.conversation)),
		CurrentModel: c.currentModel,
	}
	for k, v := range c.variables {
		snap.Variables[k] = v
	}
	for k, v := range c.memory {
		snap.Memory[k] = v
	}
	for k, v := range c.agents {
		snap.Agents[k] = v
	}
	copy(snap.Goals, c.goals)
	copy(snap.Conversation, c.conversation)
	for name := range c.functions {
		snap.FunctionNames = append(snap.FunctionNames, name)
	}
	sort.Strings(snap.FunctionNames)
	return snap
}
