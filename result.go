package lumen

import "github.com/lumenlang/golumen/script"

// Status classifies one statement's outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// StatementResult is the outcome of executing one statement. It is
// immutable once produced; fields beyond Kind, Status and Message are
// populated per statement kind.
type StatementResult struct {
	Kind    script.Kind
	Status  Status
	Message string

	// Model statements
	Model    string
	Provider string

	// Assistant statements
	Response string

	// Goal statements
	Priority string

	// Agent statements
	AgentStatus string

	// Remember/Recall statements
	Tag     string
	Content string

	// Assignment statements
	Variable string
	Value    any
}

// ProgramStatus classifies a whole run.
type ProgramStatus string

const (
	ProgramSuccess        ProgramStatus = "success"
	ProgramParseError     ProgramStatus = "parse_error"
	ProgramExecutionError ProgramStatus = "execution_error"
)

// ProgramResult is the outcome of one Execute call.
type ProgramResult struct {
	// RunID uniquely identifies this run.
	RunID string

	Status ProgramStatus

	// Results holds one entry per executed statement, in source
	// order. Comment lines contribute no result.
	Results []StatementResult

	// ParseErrors is set when Status is ProgramParseError; no
	// statements were executed.
	ParseErrors []*script.SyntaxError

	// Error describes the fault when Status is ProgramExecutionError.
	Error string

	// Context is a snapshot taken after the last statement completed.
	Context *ContextSnapshot
}
