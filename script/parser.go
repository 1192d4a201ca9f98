package script

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError is a parse-time error tagged with its source line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse parses script source into a Program. On failure it returns
// nil and one SyntaxError per offending line. Parsing is pure: the
// same source always yields a structurally identical Program.
func Parse(source string) (*Program, []*SyntaxError) {
	p := &parser{lines: strings.Split(source, "\n")}
	stmts := p.parseBlock(false)
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &Program{Statements: stmts}, nil
}

type parser struct {
	lines []string
	pos   int
	errs  []*SyntaxError
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.errs = append(p.errs, &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// parseBlock consumes statements until end of input, or until a
// literal "end" line when inBlock is set.
func (p *parser) parseBlock(inBlock bool) []Statement {
	var stmts []Statement
	for p.pos < len(p.lines) {
		lineNo := p.pos + 1
		line := strings.TrimSpace(p.lines[p.pos])
		p.pos++

		if line == "" {
			continue
		}
		if line == "end" {
			if inBlock {
				return stmts
			}
			p.errorf(lineNo, "'end' without an open block")
			continue
		}

		if st := p.parseStatement(line, lineNo); st != nil {
			stmts = append(stmts, st)
		}
	}
	if inBlock {
		p.errorf(len(p.lines), "missing 'end' to close block")
	}
	return stmts
}

func (p *parser) parseStatement(line string, lineNo int) Statement {
	switch {
	case strings.HasPrefix(line, "#"):
		return &CommentStatement{
			Text: strings.TrimSpace(strings.TrimPrefix(line, "#")),
			Pos:  lineNo,
		}

	case strings.HasPrefix(line, "goal:"):
		return p.parseGoal(strings.TrimPrefix(line, "goal:"), lineNo)

	case strings.HasPrefix(line, "agent:"):
		directive := strings.TrimSpace(strings.TrimPrefix(line, "agent:"))
		if directive == "" {
			p.errorf(lineNo, "agent statement requires a directive")
			return nil
		}
		return &AgentStatement{Directive: directive, Pos: lineNo}

	case strings.HasPrefix(line, "model:"):
		return p.parseModel(strings.TrimPrefix(line, "model:"), lineNo)

	case strings.HasPrefix(line, "assistant:"):
		task := strings.TrimSpace(strings.TrimPrefix(line, "assistant:"))
		if task == "" {
			p.errorf(lineNo, "assistant statement requires a task")
			return nil
		}
		return &AssistantStatement{Task: task, Pos: lineNo}

	case strings.HasPrefix(line, "remember(") || strings.HasPrefix(line, "remember ("):
		return p.parseRemember(line, lineNo)

	case line == "recall" || strings.HasPrefix(line, "recall "):
		return p.parseRecall(strings.TrimPrefix(line, "recall"), lineNo)

	case line == "if" || strings.HasPrefix(line, "if "):
		cond := strings.TrimSpace(strings.TrimPrefix(line, "if"))
		if cond == "" {
			p.errorf(lineNo, "if statement requires a condition")
			return nil
		}
		body := p.parseBlock(true)
		return &IfStatement{Condition: cond, Body: body, Pos: lineNo}

	case line == "for" || strings.HasPrefix(line, "for "):
		return p.parseFor(strings.TrimSpace(strings.TrimPrefix(line, "for")), lineNo)

	case line == "define" || strings.HasPrefix(line, "define "):
		return p.parseDefine(strings.TrimSpace(strings.TrimPrefix(line, "define")), lineNo)

	default:
		st, handled := p.parseAssignment(line, lineNo)
		if handled {
			return st
		}
		p.errorf(lineNo, "unrecognized statement: %s", line)
		return nil
	}
}

func (p *parser) parseGoal(tail string, lineNo int) Statement {
	fields, err := scanFields(tail)
	if err != nil {
		p.errorf(lineNo, "goal statement: %v", err)
		return nil
	}
	value, meta := splitMeta(fields)
	if len(value) == 0 {
		p.errorf(lineNo, "goal statement requires a description")
		return nil
	}
	return &GoalStatement{
		Goal:     joinValue(value),
		Priority: meta["priority"],
		Pos:      lineNo,
	}
}

func (p *parser) parseModel(tail string, lineNo int) Statement {
	fields, err := scanFields(tail)
	if err != nil {
		p.errorf(lineNo, "model statement: %v", err)
		return nil
	}
	value, meta := splitMeta(fields)
	if len(value) == 0 {
		p.errorf(lineNo, "model statement requires a model name")
		return nil
	}
	if len(value) > 1 {
		p.errorf(lineNo, "model statement takes a single model name")
		return nil
	}
	return &ModelStatement{Name: value[0].text, Config: meta, Pos: lineNo}
}

// parseRemember matches remember(STRING) with an optional as STRING
// suffix. The tag defaults to "default".
func (p *parser) parseRemember(line string, lineNo int) Statement {
	fields, err := scanFields(line)
	if err != nil {
		p.errorf(lineNo, "remember statement: %v", err)
		return nil
	}
	ok := len(fields) >= 4 &&
		fields[0].text == "remember" && !fields[0].quoted &&
		fields[1].text == "(" &&
		fields[2].quoted &&
		fields[3].text == ")"
	if !ok {
		p.errorf(lineNo, `remember statement must be remember("content")`)
		return nil
	}

	tag := "default"
	switch {
	case len(fields) == 4:
	case len(fields) == 6 && fields[4].text == "as" && fields[5].quoted:
		tag = fields[5].text
	default:
		p.errorf(lineNo, `remember suffix must be as "tag"`)
		return nil
	}

	return &RememberStatement{Content: fields[2].text, Tag: tag, Pos: lineNo}
}

func (p *parser) parseRecall(tail string, lineNo int) Statement {
	fields, err := scanFields(tail)
	if err != nil {
		p.errorf(lineNo, "recall statement: %v", err)
		return nil
	}
	if len(fields) != 1 {
		p.errorf(lineNo, "recall statement requires a single tag")
		return nil
	}
	return &RecallStatement{Tag: fields[0].text, Pos: lineNo}
}

func (p *parser) parseFor(tail string, lineNo int) Statement {
	lhs, rhs, found := strings.Cut(tail, " in ")
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if !found || lhs == "" || rhs == "" {
		p.errorf(lineNo, "for statement must be 'for VAR in ITERABLE'")
		return nil
	}
	if !isIdent(lhs) {
		p.errorf(lineNo, "invalid loop variable %q", lhs)
		return nil
	}
	body := p.parseBlock(true)
	return &ForStatement{Var: lhs, Iterable: rhs, Body: body, Pos: lineNo}
}

// parseDefine matches 'define name(params):' with a body closed by end.
func (p *parser) parseDefine(tail string, lineNo int) Statement {
	fields, err := scanFields(tail)
	if err != nil {
		p.errorf(lineNo, "define statement: %v", err)
		return nil
	}
	if len(fields) < 4 || !isIdent(fields[0].text) || fields[1].text != "(" {
		p.errorf(lineNo, "define statement must be 'define name(params):'")
		return nil
	}
	name := fields[0].text

	var params []string
	i := 2
	for i < len(fields) && fields[i].text != ")" {
		if fields[i].text == "," {
			i++
			continue
		}
		if !isIdent(fields[i].text) {
			p.errorf(lineNo, "invalid parameter %q in define", fields[i].text)
			return nil
		}
		params = append(params, fields[i].text)
		i++
	}
	if i >= len(fields) || fields[i].text != ")" {
		p.errorf(lineNo, "define statement missing ')'")
		return nil
	}
	if i+1 >= len(fields) || fields[i+1].text != ":" || i+2 != len(fields) {
		p.errorf(lineNo, "define statement must end with ':'")
		return nil
	}

	body := p.parseBlock(true)
	return &FunctionStatement{Name: name, Params: params, Body: body, Pos: lineNo}
}

// parseAssignment matches 'IDENT = EXPR'. The second return is false
// when the line is not shaped like an assignment at all, letting the
// caller report a generic parse failure instead.
func (p *parser) parseAssignment(line string, lineNo int) (Statement, bool) {
	fields, err := scanFields(line)
	if err != nil {
		p.errorf(lineNo, "%v", err)
		return nil, true
	}
	if len(fields) < 2 || fields[0].quoted || !isIdent(fields[0].text) || fields[1].text != "=" {
		return nil, false
	}
	if len(fields) != 3 {
		p.errorf(lineNo, "assignment expects a single literal or variable")
		return nil, true
	}

	expr, perr := parseExpr(fields[2])
	if perr != nil {
		p.errorf(lineNo, "assignment: %v", perr)
		return nil, true
	}
	return &AssignStatement{Name: fields[0].text, Expr: expr, Pos: lineNo}, true
}

func parseExpr(f field) (Expr, error) {
	if f.quoted {
		return &StringLit{Value: f.text}, nil
	}
	if v, err := strconv.ParseFloat(f.text, 64); err == nil {
		return &NumberLit{Value: v, Raw: f.text}, nil
	}
	if isIdent(f.text) {
		return &VarRef{Name: f.text}, nil
	}
	return nil, fmt.Errorf("expected literal or variable, got %q", f.text)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
