// Package lumen embeds the Lumen scripting language: a small
// line-oriented language whose statements express goals, agent
// activation, AI model selection, assisted task delegation, tagged
// memory, and variable assignment.
//
// The pipeline is parse -> AST -> execute. The script package turns
// source text into a typed statement tree; the engine dispatches each
// statement against a persistent execution context, routing
// assistant: statements to whichever AI model the script activated.
//
// # Quick Start
//
//	registry := model.NewRegistry(model.NewOllama())
//	engine := lumen.New(registry)
//
//	result := engine.Execute(ctx, `
//	goal: "improve performance" priority: high
//	model: mistral
//	assistant: analyze bottlenecks
//	remember("analysis complete") as "perf"
//	agent: on
//	`)
//
//	for _, r := range result.Results {
//	    fmt.Println(r.Kind, r.Status, r.Message)
//	}
//
// Execution is fail-soft: a statement that fails (unknown model,
// provider timeout, missing memory tag) produces an error result and
// the run continues with the next statement. Only syntax errors stop
// a run, before any statement executes.
//
// # State
//
// The execution context (variables, memory, goals, agents,
// conversation history, active model) persists across Execute calls
// on the same engine until ClearContext. The model registry is fixed
// at construction and may be shared read-only across engines; each
// engine tracks its own active model.
//
// Engines are not safe for concurrent Execute calls. Use one engine
// per session, or serialize access externally.
package lumen
