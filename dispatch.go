package lumen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumenlang/golumen/model"
	"github.com/lumenlang/golumen/script"
)

// executeStatement runs one statement against the execution context
// and produces exactly one result. Unexpected failures inside a
// handler are caught here and converted into an error result, so a
// bad statement never aborts the rest of the run.
func (e *Engine) executeStatement(ctx context.Context, st script.Statement) (result StatementResult) {
	defer func() {
		if r := recover(); r != nil {
			derr := &DispatchError{Kind: st.Kind(), Err: fmt.Errorf("%v", r)}
			result = StatementResult{
				Kind:    st.Kind(),
				Status:  StatusError,
				Message: derr.Error(),
			}
		}
	}()

	switch s := st.(type) {
	case *script.ModelStatement:
		return e.executeModel(s)
	case *script.AssistantStatement:
		return e.executeAssistant(ctx, s)
	case *script.GoalStatement:
		return e.executeGoal(s)
	case *script.AgentStatement:
		return e.executeAgent(s)
	case *script.RememberStatement:
		return e.executeRemember(s)
	case *script.RecallStatement:
		return e.executeRecall(s)
	case *script.AssignStatement:
		return e.executeAssign(s)
	case *script.IfStatement:
		return StatementResult{
			Kind:    script.KindIf,
			Status:  StatusInfo,
			Message: fmt.Sprintf("if block recorded with %d statement(s); condition %q is not evaluated", len(s.Body), s.Condition),
		}
	case *script.ForStatement:
		return StatementResult{
			Kind:    script.KindFor,
			Status:  StatusInfo,
			Message: fmt.Sprintf("for block recorded with %d statement(s); iteration over %q is not evaluated", len(s.Body), s.Iterable),
		}
	case *script.FunctionStatement:
		e.ctx.DefineFunction(s.Name, FunctionDef{Parameters: s.Params, Body: s.Body})
		return StatementResult{
			Kind:    script.KindFunction,
			Status:  StatusInfo,
			Message: fmt.Sprintf("function %q defined with %d parameter(s); invocation is not supported", s.Name, len(s.Params)),
		}
	case *script.CommentStatement:
		return StatementResult{Kind: script.KindComment, Status: StatusInfo, Message: "comment"}
	default:
		return StatementResult{
			Kind:    st.Kind(),
			Status:  StatusError,
			Message: fmt.Sprintf("no handler for statement kind %q", st.Kind()),
		}
	}
}

func (e *Engine) executeModel(s *script.ModelStatement) StatementResult {
	desc, err := e.router.Activate(s.Name, s.Config)
	if err != nil {
		// currentModel stays as it was.
		return StatementResult{
			Kind:    script.KindModel,
			Status:  StatusError,
			Message: err.Error(),
			Model:   s.Name,
		}
	}

	e.ctx.SetCurrentModel(desc.Name)
	return StatementResult{
		Kind:     script.KindModel,
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("model %s activated (provider %s)", desc.Name, desc.Provider),
		Model:    desc.Name,
		Provider: desc.Provider,
	}
}

func (e *Engine) executeAssistant(ctx context.Context, s *script.AssistantStatement) StatementResult {
	promptCtx := map[string]any{
		"variables":     e.ctx.Variables(),
		"current_model": e.ctx.CurrentModel(),
		"memory_size":   e.ctx.MemorySize(),
		"goal_count":    e.ctx.GoalCount(),
	}

	comp, err := e.router.Complete(ctx, s.Task, promptCtx)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, model.ErrNoActiveModel) {
			msg = "no model is active; select one with a model: statement first"
		}
		return StatementResult{
			Kind:    script.KindAssistant,
			Status:  StatusError,
			Message: msg,
			Model:   e.ctx.CurrentModel(),
		}
	}

	turn := ConversationTurn{
		ID:        uuid.New().String()[:8],
		Task:      s.Task,
		Response:  comp.Text,
		Model:     comp.Model,
		Timestamp: time.Now(),
	}
	e.ctx.AppendConversationTurn(turn)
	e.recordTurn(turn)

	return StatementResult{
		Kind:     script.KindAssistant,
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("task completed by %s", comp.Model),
		Model:    comp.Model,
		Response: comp.Text,
	}
}

func (e *Engine) executeGoal(s *script.GoalStatement) StatementResult {
	priority := s.Priority
	if priority == "" {
		priority = "medium"
	}
	g := e.ctx.AppendGoal(s.Goal, priority)
	e.recordGoal(g)

	return StatementResult{
		Kind:     script.KindGoal,
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("goal recorded with priority %s", priority),
		Priority: priority,
	}
}

func (e *Engine) executeAgent(s *script.AgentStatement) StatementResult {
	state := AgentState{Status: "on", Command: s.Directive}
	if s.Directive == "on" || s.Directive == "off" {
		state = AgentState{Status: s.Directive}
	}
	e.ctx.SetAgentState("default", state)

	msg := fmt.Sprintf("agent default is %s", state.Status)
	if state.Command != "" {
		msg = fmt.Sprintf("agent default is on, tasked with: %s", state.Command)
	}
	return StatementResult{
		Kind:        script.KindAgent,
		Status:      StatusSuccess,
		Message:     msg,
		AgentStatus: state.Status,
	}
}

func (e *Engine) executeRemember(s *script.RememberStatement) StatementResult {
	entry := e.ctx.Remember(s.Tag, s.Content)
	e.recordMemory(s.Tag, entry)

	return StatementResult{
		Kind:    script.KindRemember,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("remembered under tag %q", s.Tag),
		Tag:     s.Tag,
		Content: s.Content,
	}
}

func (e *Engine) executeRecall(s *script.RecallStatement) StatementResult {
	entry, ok := e.ctx.Recall(s.Tag)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrMemoryNotFound, s.Tag)
		return StatementResult{
			Kind:    script.KindRecall,
			Status:  StatusError,
			Message: err.Error(),
			Tag:     s.Tag,
		}
	}
	return StatementResult{
		Kind:    script.KindRecall,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("recalled tag %q", s.Tag),
		Tag:     s.Tag,
		Content: entry.Content,
	}
}

func (e *Engine) executeAssign(s *script.AssignStatement) StatementResult {
	value := e.evalExpr(s.Expr)
	e.ctx.SetVariable(s.Name, value)

	return StatementResult{
		Kind:     script.KindAssignment,
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("variable %s assigned", s.Name),
		Variable: s.Name,
		Value:    value,
	}
}

// evalExpr evaluates an assignment right-hand side. An unresolved
// variable reference evaluates to its own name as a string, matching
// the language's bare-word semantics elsewhere.
func (e *Engine) evalExpr(expr script.Expr) any {
	switch x := expr.(type) {
	case *script.StringLit:
		return x.Value
	case *script.NumberLit:
		return x.Value
	case *script.VarRef:
		if v, ok := e.ctx.Variable(x.Name); ok {
			return v
		}
		return x.Name
	default:
		return nil
	}
}
