package script

// Kind identifies the statement variant of an AST node.
type Kind string

const (
	KindModel      Kind = "model"
	KindAssistant  Kind = "assistant"
	KindGoal       Kind = "goal"
	KindAgent      Kind = "agent"
	KindRemember   Kind = "remember"
	KindRecall     Kind = "recall"
	KindAssignment Kind = "assignment"
	KindIf         Kind = "if"
	KindFor        Kind = "for"
	KindFunction   Kind = "function"
	KindComment    Kind = "comment"
)

// Statement is the interface implemented by all statement nodes.
// The set of implementations is closed: one struct per Kind, so
// dispatch can type-switch exhaustively.
type Statement interface {
	Kind() Kind

	// Line is the 1-based source line the statement starts on.
	Line() int

	stmtNode()
}

// Program is the parsed form of one script source. The statement
// slice is in source order and must not be mutated after parsing.
type Program struct {
	Statements []Statement
}

// ModelStatement selects the active AI model, e.g.
//
//	model: mistral temperature: 0.2
type ModelStatement struct {
	Name   string
	Config map[string]string
	Pos    int
}

// AssistantStatement delegates a task to the active model, e.g.
//
//	assistant: analyze bottlenecks
type AssistantStatement struct {
	Task string
	Pos  int
}

// GoalStatement records a goal, e.g.
//
//	goal: "improve performance" priority: high
type GoalStatement struct {
	Goal     string
	Priority string // empty when not given
	Pos      int
}

// AgentStatement toggles the default agent or hands it a task, e.g.
//
//	agent: on
//	agent: monitor the build
type AgentStatement struct {
	Directive string
	Pos       int
}

// RememberStatement stores tagged content, e.g.
//
//	remember("analysis complete") as "perf"
type RememberStatement struct {
	Content string
	Tag     string // "default" when the as-suffix is absent
	Pos     int
}

// RecallStatement reads back remembered content, e.g.
//
//	recall perf
type RecallStatement struct {
	Tag string
	Pos int
}

// AssignStatement binds a variable, e.g.
//
//	result = "done"
type AssignStatement struct {
	Name string
	Expr Expr
	Pos  int
}

// IfStatement is a conditional block. The body is parsed and recorded
// but not evaluated; see the engine documentation.
type IfStatement struct {
	Condition string
	Body      []Statement
	Pos       int
}

// ForStatement is an iteration block, recorded but not evaluated.
type ForStatement struct {
	Var      string
	Iterable string
	Body     []Statement
	Pos      int
}

// FunctionStatement declares a named function. The definition is
// stored in the execution context; invocation is not implemented.
type FunctionStatement struct {
	Name   string
	Params []string
	Body   []Statement
	Pos    int
}

// CommentStatement is a # line. It has no execution effect.
type CommentStatement struct {
	Text string
	Pos  int
}

func (s *ModelStatement) Kind() Kind     { return KindModel }
func (s *AssistantStatement) Kind() Kind { return KindAssistant }
func (s *GoalStatement) Kind() Kind      { return KindGoal }
func (s *AgentStatement) Kind() Kind     { return KindAgent }
func (s *RememberStatement) Kind() Kind  { return KindRemember }
func (s *RecallStatement) Kind() Kind    { return KindRecall }
func (s *AssignStatement) Kind() Kind    { return KindAssignment }
func (s *IfStatement) Kind() Kind        { return KindIf }
func (s *ForStatement) Kind() Kind       { return KindFor }
func (s *FunctionStatement) Kind() Kind  { return KindFunction }
func (s *CommentStatement) Kind() Kind   { return KindComment }

func (s *ModelStatement) Line() int     { return s.Pos }
func (s *AssistantStatement) Line() int { return s.Pos }
func (s *GoalStatement) Line() int      { return s.Pos }
func (s *AgentStatement) Line() int     { return s.Pos }
func (s *RememberStatement) Line() int  { return s.Pos }
func (s *RecallStatement) Line() int    { return s.Pos }
func (s *AssignStatement) Line() int    { return s.Pos }
func (s *IfStatement) Line() int        { return s.Pos }
func (s *ForStatement) Line() int       { return s.Pos }
func (s *FunctionStatement) Line() int  { return s.Pos }
func (s *CommentStatement) Line() int   { return s.Pos }

func (s *ModelStatement) stmtNode()     {}
func (s *AssistantStatement) stmtNode() {}
func (s *GoalStatement) stmtNode()      {}
func (s *AgentStatement) stmtNode()     {}
func (s *RememberStatement) stmtNode()  {}
func (s *RecallStatement) stmtNode()    {}
func (s *AssignStatement) stmtNode()    {}
func (s *IfStatement) stmtNode()        {}
func (s *ForStatement) stmtNode()       {}
func (s *FunctionStatement) stmtNode()  {}
func (s *CommentStatement) stmtNode()   {}

// Expr is the right-hand side of an assignment: a literal or a
// variable reference.
type Expr interface {
	exprNode()
}

// StringLit is a quoted string literal. Value holds the contents
// verbatim, without the surrounding quotes.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
	Raw   string
}

// VarRef references another variable by name.
type VarRef struct {
	Name string
}

func (e *StringLit) exprNode() {}
func (e *NumberLit) exprNode() {}
func (e *VarRef) exprNode()    {}
