// Package ast defines the JAL abstract syntax tree produced by the parser
// and consumed by the type checker and evaluator.
package ast

import (
	"bytes"
	"strings"

	"jal/token"
	"jal/types"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Body []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ---------- Expressions ----------

// Literal is an embedded scalar or null value: int, float, bool, string, or
// null.
type Literal struct {
	Token token.Token
	Kind  string // "int" | "float" | "bool" | "string" | "null"
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Text }
func (l *Literal) String() string       { return l.Token.Text }

// Variable is a reference to a named binding.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Text }
func (v *Variable) String() string       { return v.Name }

// BinaryExpression is a left-associative infix operator application.
type BinaryExpression struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Text }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// FunctionCallExpression invokes a named function or built-in.
type FunctionCallExpression struct {
	Token  token.Token
	Callee string
	Args   []Expression
}

func (c *FunctionCallExpression) expressionNode()      {}
func (c *FunctionCallExpression) TokenLiteral() string { return c.Token.Text }
func (c *FunctionCallExpression) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Callee + "(" + strings.Join(args, ", ") + ")"
}

// ListExpression is a list literal.
type ListExpression struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListExpression) expressionNode()      {}
func (l *ListExpression) TokenLiteral() string { return l.Token.Text }
func (l *ListExpression) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IndexAccess reads an element of a list by integer index.
type IndexAccess struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (idx *IndexAccess) expressionNode()      {}
func (idx *IndexAccess) TokenLiteral() string { return idx.Token.Text }
func (idx *IndexAccess) String() string {
	return idx.Object.String() + "[" + idx.Index.String() + "]"
}

// ---------- Statements ----------

// VariableDeclaration introduces a new binding (let/const).
type VariableDeclaration struct {
	Token       token.Token
	Name        string
	Mutable     bool
	Annotation  *types.Type // nil if inferred (":=" form); filled by parser's inference pass
	Initializer Expression
}

func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Text }
func (v *VariableDeclaration) String() string {
	kw := "const"
	if v.Mutable {
		kw = "let"
	}
	return kw + " " + v.Name + " := " + v.Initializer.String()
}

// AssignmentStatement overwrites an existing mutable binding.
type AssignmentStatement struct {
	Token  token.Token
	Target string
	Value  Expression
}

func (a *AssignmentStatement) statementNode()       {}
func (a *AssignmentStatement) TokenLiteral() string { return a.Token.Text }
func (a *AssignmentStatement) String() string {
	return a.Target + " = " + a.Value.String()
}

// ExpressionStatement evaluates an expression for its side effects and
// discards the result.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Text }
func (e *ExpressionStatement) String() string {
	if e.Expression == nil {
		return ""
	}
	return e.Expression.String()
}

// BlockStatement is an ordered sequence of statements sharing one scope.
type BlockStatement struct {
	Token token.Token
	Body  []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Text }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Body {
		out.WriteString(s.String())
		out.WriteString("; ")
	}
	out.WriteString("}")
	return out.String()
}

// Parameter is one formal parameter of a FunctionDeclaration.
type Parameter struct {
	Name string
	Type *types.Type
}

// FunctionDeclaration declares a top-level named function.
type FunctionDeclaration struct {
	Token      token.Token
	Name       string
	Params     []Parameter
	ReturnType *types.Type
	Body       *BlockStatement
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Text }
func (f *FunctionDeclaration) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ":" + p.Type.String()
	}
	return "fn " + f.Name + "(" + strings.Join(params, ", ") + "):" + f.ReturnType.String() + " " + f.Body.String()
}

// ListPushStatement appends value to the list referenced by Target
// (`target << value`), spreading value's elements if it is itself a list.
type ListPushStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (l *ListPushStatement) statementNode()       {}
func (l *ListPushStatement) TokenLiteral() string { return l.Token.Text }
func (l *ListPushStatement) String() string {
	return l.Target.String() + " << " + l.Value.String()
}

// ReturnStatement unwinds to the nearest enclosing function call, optionally
// carrying a value.
type ReturnStatement struct {
	Token    token.Token
	Argument Expression // nil for bare `return`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Text }
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return"
	}
	return "return " + r.Argument.String()
}

// IfStatement conditionally executes Consequent or Alternate.
type IfStatement struct {
	Token      token.Token
	Condition  Expression
	Consequent *BlockStatement
	Alternate  Statement // *BlockStatement or *IfStatement (else if chain), nil if absent
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Text }
func (i *IfStatement) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// WhileStatement loops while Condition is truthy.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Text }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ForStatement iterates a list, binding Variable to either the element
// (IsIndex == false, `in`) or the index (IsIndex == true, `of`).
type ForStatement struct {
	Token    token.Token
	Variable string
	Iterable Expression
	IsIndex  bool
	Body     *BlockStatement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Text }
func (f *ForStatement) String() string {
	kw := "in"
	if f.IsIndex {
		kw = "of"
	}
	return "for " + f.Variable + " " + kw + " " + f.Iterable.String() + " " + f.Body.String()
}
