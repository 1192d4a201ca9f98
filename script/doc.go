// Package script provides the parser for the Lumen scripting language.
//
// Lumen is a small line-oriented language for driving AI-assisted
// workflows. Statements express goals, agent activation, model
// selection, task delegation, tagged memory, and variable assignment:
//
//	# plan the work
//	goal: "improve performance" priority: high
//	model: mistral
//	assistant: analyze bottlenecks
//	remember("analysis complete") as "perf"
//	recall perf
//	agent: on
//	result = "done"
//
// Block constructs are recognized by the grammar and recorded in the
// AST but not yet evaluated by the engine:
//
//	define greet(name):
//	    assistant: say hello to name
//	end
//
//	if ready
//	    agent: on
//	end
//
//	for item in backlog
//	    assistant: work on item
//	end
//
// # Parsing
//
// Parse turns source text into a Program of typed statements:
//
//	program, errs := script.Parse(source)
//	if len(errs) > 0 {
//	    // each error carries its source line
//	}
//
// Each statement kind has its own node type (ModelStatement,
// GoalStatement, ...), so consumers switch over the closed set of
// types rather than inspecting string kinds. Validate wraps Parse for
// callers that only need a valid/invalid answer.
package script
