// Package parser implements JAL's recursive-descent, operator-precedence
// parser. It consumes a token stream and yields a Program. Parser errors are
// fatal and immediate: on an unexpected token the parser aborts with a
// message naming the expected and actual token kind. There is no recovery.
package parser

import (
	"fmt"

	"jal/ast"
	"jal/internals"
	"jal/token"
	"jal/types"
)

// Precedence levels. Comparison operators are deliberately placed below the
// arithmetic tiers (the resolved reading of the base specification's open
// question) so `a + b < c * d` parses as `(a + b) < (c * d)`.
const (
	_ int = iota
	PREC_COMPARISON
	PREC_ADDITIVE
	PREC_MULTIPLICATIVE
)

var precedences = map[token.Kind]int{
	token.EQ:  PREC_COMPARISON,
	token.NEQ: PREC_COMPARISON,
	token.LT:  PREC_COMPARISON,
	token.LTE: PREC_COMPARISON,
	token.GT:  PREC_COMPARISON,
	token.GTE: PREC_COMPARISON,

	token.PLUS:  PREC_ADDITIVE,
	token.MINUS: PREC_ADDITIVE,

	token.STAR:    PREC_MULTIPLICATIVE,
	token.SLASH:   PREC_MULTIPLICATIVE,
	token.PERCENT: PREC_MULTIPLICATIVE,
}

// Parser walks a fixed token slice with one token of lookahead.
type Parser struct {
	tokens []token.Token
	pos    int
	file   string

	cur  token.Token
	peek token.Token
}

func New(tokens []token.Token, file string) *Parser {
	p := &Parser{tokens: tokens, file: file}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
	} else {
		p.peek = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) fail(format string, args ...any) {
	panic(&internals.ParseError{
		File:    p.file,
		Row:     p.cur.Row,
		Col:     p.cur.Col,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if p.cur.Kind != kind {
		p.fail("expected %s, got %s (%q)", kind, p.cur.Kind, p.cur.Text)
	}
	tok := p.cur
	p.advance()
	return tok
}

// Parse produces a Program, or a non-nil error if an unexpected token was
// encountered. Parsing aborts immediately on the first error.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*internals.ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	program := &ast.Program{}
	for p.cur.Kind != token.EOF {
		program.Body = append(program.Body, p.parseStatement())
	}

	InferTypes(program)
	return program, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FN:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BRACE_OPEN:
		return p.parseBlockStatement()
	case token.IDENTIFIER:
		if p.peek.Kind == token.ASSIGN {
			return p.parseAssignmentStatement()
		}
		if p.peek.Kind == token.LIST_PUSH {
			return p.parseListPushStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	tok := p.cur
	mutable := tok.Kind == token.LET
	p.advance()

	name := p.expect(token.IDENTIFIER).Text

	var annotation *types.Type
	switch p.cur.Kind {
	case token.WALRUS:
		p.advance()
	case token.COLON:
		p.advance()
		annotation = p.parseTypeAnnotation()
		p.expect(token.ASSIGN)
	default:
		p.fail("expected ':=' or ':' in variable declaration, got %s", p.cur.Kind)
	}

	init := p.parseExpression(0)
	return &ast.VariableDeclaration{Token: tok, Name: name, Mutable: mutable, Annotation: annotation, Initializer: init}
}

func (p *Parser) parseTypeAnnotation() *types.Type {
	switch p.cur.Kind {
	case token.TYPE_INT:
		p.advance()
		return types.IntT(types.DefaultIntBits)
	case token.TYPE_I8:
		p.advance()
		return types.IntT(8)
	case token.TYPE_I16:
		p.advance()
		return types.IntT(16)
	case token.TYPE_I32:
		p.advance()
		return types.IntT(32)
	case token.TYPE_I64:
		p.advance()
		return types.IntT(64)
	case token.TYPE_FLOAT:
		p.advance()
		return types.FloatT(types.DefaultFloatBits)
	case token.TYPE_F32:
		p.advance()
		return types.FloatT(32)
	case token.TYPE_F64:
		p.advance()
		return types.FloatT(64)
	case token.TYPE_BOOL:
		p.advance()
		return types.BoolT()
	case token.TYPE_STRING:
		p.advance()
		return types.StringT()
	case token.TYPE_VOID:
		p.advance()
		return types.VoidT()
	case token.TYPE_LIST:
		p.advance()
		return types.ListT(types.VoidT())
	default:
		p.fail("expected a type, got %s (%q)", p.cur.Kind, p.cur.Text)
		return nil
	}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	tok := p.cur
	p.advance()
	name := p.expect(token.IDENTIFIER).Text

	p.expect(token.PAREN_OPEN)
	var params []ast.Parameter
	for p.cur.Kind != token.PAREN_CLOSE {
		pname := p.expect(token.IDENTIFIER).Text
		p.expect(token.COLON)
		ptype := p.parseTypeAnnotation()
		params = append(params, ast.Parameter{Name: pname, Type: ptype})
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.PAREN_CLOSE)
	p.expect(token.COLON)
	retType := p.parseTypeAnnotation()

	body := p.parseBlockStatement()
	return &ast.FunctionDeclaration{Token: tok, Name: name, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.cur
	p.advance()
	if p.cur.Kind == token.BRACE_CLOSE || p.atStatementBoundary() {
		return &ast.ReturnStatement{Token: tok}
	}
	arg := p.parseExpression(0)
	return &ast.ReturnStatement{Token: tok, Argument: arg}
}

// atStatementBoundary reports whether the current token cannot start an
// expression, which for a bare `return` means no argument follows.
func (p *Parser) atStatementBoundary() bool {
	switch p.cur.Kind {
	case token.BRACE_CLOSE, token.EOF, token.RETURN, token.IF, token.WHILE, token.FOR, token.LET, token.CONST:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.cur
	p.advance()
	p.expect(token.PAREN_OPEN)
	cond := p.parseExpression(0)
	p.expect(token.PAREN_CLOSE)
	consequent := p.parseBlockStatement()

	var alternate ast.Statement
	if p.cur.Kind == token.ELSE {
		p.advance()
		if p.cur.Kind == token.IF {
			alternate = p.parseIfStatement()
		} else {
			alternate = p.parseBlockStatement()
		}
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Consequent: consequent, Alternate: alternate}
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.cur
	p.advance()
	p.expect(token.PAREN_OPEN)
	cond := p.parseExpression(0)
	p.expect(token.PAREN_CLOSE)
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.cur
	p.advance()
	name := p.expect(token.IDENTIFIER).Text

	var isIndex bool
	switch p.cur.Kind {
	case token.IN:
		isIndex = false
	case token.OF:
		isIndex = true
	default:
		p.fail("expected 'in' or 'of' in for statement, got %s", p.cur.Kind)
	}
	p.advance()

	iterable := p.parseExpression(0)
	body := p.parseBlockStatement()
	return &ast.ForStatement{Token: tok, Variable: name, Iterable: iterable, IsIndex: isIndex, Body: body}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.expect(token.BRACE_OPEN)
	block := &ast.BlockStatement{Token: tok}
	for p.cur.Kind != token.BRACE_CLOSE && p.cur.Kind != token.EOF {
		block.Body = append(block.Body, p.parseStatement())
	}
	p.expect(token.BRACE_CLOSE)
	return block
}

func (p *Parser) parseAssignmentStatement() *ast.AssignmentStatement {
	tok := p.cur
	name := p.cur.Text
	p.advance() // identifier
	p.advance() // '='
	value := p.parseExpression(0)
	return &ast.AssignmentStatement{Token: tok, Target: name, Value: value}
}

func (p *Parser) parseListPushStatement() *ast.ListPushStatement {
	tok := p.cur
	target := &ast.Variable{Token: p.cur, Name: p.cur.Text}
	p.advance() // identifier
	p.advance() // '<<'
	value := p.parseExpression(0)
	return &ast.ListPushStatement{Token: tok, Target: target, Value: value}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur
	expr := p.parseExpression(0)
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// parseExpression is the precedence-climbing loop: it parses one primary
// (with postfix index suffixes already folded in) then repeatedly consumes
// infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrimary()

	for {
		prec, ok := precedences[p.cur.Kind]
		if !ok || prec <= minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		right := p.parseExpression(prec)
		left = &ast.BinaryExpression{Token: opTok, Op: opTok.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePrimary() ast.Expression {
	var expr ast.Expression

	switch p.cur.Kind {
	case token.NUMBER_INT:
		tok := p.cur
		p.advance()
		var v int64
		fmt.Sscanf(tok.Text, "%d", &v)
		expr = &ast.Literal{Token: tok, Kind: "int", Int: v}
	case token.NUMBER_FLT:
		tok := p.cur
		p.advance()
		var v float64
		fmt.Sscanf(tok.Text, "%g", &v)
		expr = &ast.Literal{Token: tok, Kind: "float", Float: v}
	case token.STRING:
		tok := p.cur
		p.advance()
		expr = &ast.Literal{Token: tok, Kind: "string", Str: tok.Text}
	case token.TRUE:
		tok := p.cur
		p.advance()
		expr = &ast.Literal{Token: tok, Kind: "bool", Bool: true}
	case token.FALSE:
		tok := p.cur
		p.advance()
		expr = &ast.Literal{Token: tok, Kind: "bool", Bool: false}
	case token.NULL:
		tok := p.cur
		p.advance()
		expr = &ast.Literal{Token: tok, Kind: "null"}
	case token.IDENTIFIER:
		tok := p.cur
		p.advance()
		if p.cur.Kind == token.PAREN_OPEN {
			expr = p.parseCallArguments(tok)
		} else {
			expr = &ast.Variable{Token: tok, Name: tok.Text}
		}
	case token.BRACKET_OPEN:
		expr = p.parseListExpression()
	case token.PAREN_OPEN:
		p.advance()
		expr = p.parseExpression(0)
		p.expect(token.PAREN_CLOSE)
	default:
		p.fail("unexpected token %s (%q) in expression", p.cur.Kind, p.cur.Text)
	}

	for p.cur.Kind == token.BRACKET_OPEN {
		expr = p.parseIndexSuffix(expr)
	}
	return expr
}

func (p *Parser) parseCallArguments(callee token.Token) *ast.FunctionCallExpression {
	p.expect(token.PAREN_OPEN)
	var args []ast.Expression
	for p.cur.Kind != token.PAREN_CLOSE {
		args = append(args, p.parseExpression(0))
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.PAREN_CLOSE)
	return &ast.FunctionCallExpression{Token: callee, Callee: callee.Text, Args: args}
}

func (p *Parser) parseListExpression() *ast.ListExpression {
	tok := p.expect(token.BRACKET_OPEN)
	list := &ast.ListExpression{Token: tok}
	for p.cur.Kind != token.BRACKET_CLOSE {
		list.Elements = append(list.Elements, p.parseExpression(0))
		if p.cur.Kind == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.BRACKET_CLOSE)
	return list
}

func (p *Parser) parseIndexSuffix(object ast.Expression) *ast.IndexAccess {
	tok := p.expect(token.BRACKET_OPEN)
	index := p.parseExpression(0)
	p.expect(token.BRACKET_CLOSE)
	return &ast.IndexAccess{Token: tok, Object: object, Index: index}
}
