// Package evaluator tree-walks a checked Program against a lexically scoped
// Environment chain.
package evaluator

import (
	"jal/ast"
	"jal/internals"
	"jal/object"
)

const DefaultMaxCallDepth = 10000

// Evaluator holds the state described by the base specification: the global
// and current environments, the function table, and the shouldReturn signal
// used to unwind nested blocks back to the nearest function call.
type Evaluator struct {
	global  *object.Environment
	current *object.Environment

	functions map[string]*ast.FunctionDeclaration

	returnValue  *object.Value
	shouldReturn bool

	callDepth    int
	maxCallDepth int
}

func New() *Evaluator {
	global := object.NewEnvironment(nil)
	return &Evaluator{
		global:       global,
		current:      global,
		functions:    map[string]*ast.FunctionDeclaration{},
		maxCallDepth: DefaultMaxCallDepth,
	}
}

// SetMaxCallDepth overrides the configurable recursion ceiling (default
// DefaultMaxCallDepth) that guards against a host stack crash.
func (e *Evaluator) SetMaxCallDepth(n int) {
	if n > 0 {
		e.maxCallDepth = n
	}
}

// Run registers every top-level function, executes every top-level statement
// except FunctionDeclaration and bare ExpressionStatement, then invokes
// `main` if declared.
func (e *Evaluator) Run(program *ast.Program) error {
	for _, stmt := range program.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			e.functions[fn.Name] = fn
		}
	}

	for _, stmt := range program.Body {
		switch stmt.(type) {
		case *ast.FunctionDeclaration, *ast.ExpressionStatement:
			continue
		}
		if err := e.exec(stmt); err != nil {
			return err
		}
	}

	if _, ok := e.functions["main"]; ok {
		_, err := e.callFunction("main", nil)
		return err
	}
	return nil
}

// exec executes a statement, possibly setting e.shouldReturn.
func (e *Evaluator) exec(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		return e.execVariableDeclaration(n)
	case *ast.AssignmentStatement:
		return e.execAssignment(n)
	case *ast.ExpressionStatement:
		if n.Expression == nil {
			return nil
		}
		_, err := e.eval(n.Expression)
		return err
	case *ast.BlockStatement:
		return e.execBlock(n)
	case *ast.ListPushStatement:
		return e.execListPush(n)
	case *ast.ReturnStatement:
		return e.execReturn(n)
	case *ast.IfStatement:
		return e.execIf(n)
	case *ast.WhileStatement:
		return e.execWhile(n)
	case *ast.ForStatement:
		return e.execFor(n)
	case *ast.FunctionDeclaration:
		e.functions[n.Name] = n
		return nil
	default:
		return nil
	}
}

func (e *Evaluator) execVariableDeclaration(n *ast.VariableDeclaration) error {
	val, err := e.eval(n.Initializer)
	if err != nil {
		return err
	}
	return e.current.Define(n.Name, val, n.Mutable)
}

func (e *Evaluator) execAssignment(n *ast.AssignmentStatement) error {
	val, err := e.eval(n.Value)
	if err != nil {
		return err
	}
	return e.current.Assign(n.Target, val)
}

// execBlock pushes a fresh environment, runs statements until end or
// shouldReturn, then pops — including on early return, so the frame is
// always released.
func (e *Evaluator) execBlock(block *ast.BlockStatement) error {
	prev := e.current
	e.current = object.NewEnvironment(prev)
	defer func() { e.current = prev }()

	for _, stmt := range block.Body {
		if err := e.exec(stmt); err != nil {
			return err
		}
		if e.shouldReturn {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) execListPush(n *ast.ListPushStatement) error {
	target, err := e.eval(n.Target)
	if err != nil {
		return err
	}
	if target.Kind != object.List {
		return &internals.RuntimeError{Message: "cannot push onto a non-list value"}
	}
	value, err := e.eval(n.Value)
	if err != nil {
		return err
	}
	if value.Kind == object.List {
		target.List.Elements = append(target.List.Elements, value.List.Elements...)
	} else {
		target.List.Elements = append(target.List.Elements, value)
	}
	return nil
}

func (e *Evaluator) execReturn(n *ast.ReturnStatement) error {
	if n.Argument == nil {
		e.returnValue = object.NullValue()
		e.shouldReturn = true
		return nil
	}
	val, err := e.eval(n.Argument)
	if err != nil {
		return err
	}
	e.returnValue = val
	e.shouldReturn = true
	return nil
}

func (e *Evaluator) execIf(n *ast.IfStatement) error {
	cond, err := e.eval(n.Condition)
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return e.execBlock(n.Consequent)
	}
	if n.Alternate != nil {
		return e.exec(n.Alternate)
	}
	return nil
}

func (e *Evaluator) execWhile(n *ast.WhileStatement) error {
	for {
		cond, err := e.eval(n.Condition)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := e.execBlock(n.Body); err != nil {
			return err
		}
		if e.shouldReturn {
			return nil
		}
	}
}

func (e *Evaluator) execFor(n *ast.ForStatement) error {
	iterable, err := e.eval(n.Iterable)
	if err != nil {
		return err
	}
	if iterable.Kind != object.List {
		return &internals.RuntimeError{Message: "for loop iterable must be a list"}
	}

	for i, elem := range iterable.List.Elements {
		prev := e.current
		e.current = object.NewEnvironment(prev)

		var bound *object.Value
		if n.IsIndex {
			bound = object.NumberValue(float64(i))
		} else {
			bound = elem
		}
		if err := e.current.Define(n.Variable, bound, false); err != nil {
			e.current = prev
			return err
		}

		err := e.execBlockBody(n.Body.Body)
		e.current = prev
		if err != nil {
			return err
		}
		if e.shouldReturn {
			return nil
		}
	}
	return nil
}

// execBlockBody runs statements directly in the current environment,
// without pushing a new one — used by execFor, which has already pushed the
// per-iteration frame that owns the loop variable.
func (e *Evaluator) execBlockBody(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := e.exec(stmt); err != nil {
			return err
		}
		if e.shouldReturn {
			return nil
		}
	}
	return nil
}
