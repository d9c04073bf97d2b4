package evaluator

import (
	"math"

	"jal/ast"
	"jal/internals"
	"jal/object"
)

func (e *Evaluator) eval(expr ast.Expression) (*object.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return evalLiteral(n), nil
	case *ast.Variable:
		val, ok := e.current.Resolve(n.Name)
		if !ok {
			return nil, &internals.RuntimeError{Message: "undefined variable '" + n.Name + "'"}
		}
		return val, nil
	case *ast.BinaryExpression:
		return e.evalBinary(n)
	case *ast.FunctionCallExpression:
		return e.evalCall(n)
	case *ast.ListExpression:
		return e.evalList(n)
	case *ast.IndexAccess:
		return e.evalIndex(n)
	default:
		return nil, &internals.RuntimeError{Message: "unsupported expression"}
	}
}

func evalLiteral(n *ast.Literal) *object.Value {
	switch n.Kind {
	case "int":
		return object.NumberValue(float64(n.Int))
	case "float":
		return object.NumberValue(n.Float)
	case "bool":
		return object.BoolValue(n.Bool)
	case "string":
		return object.StringValue(n.Str)
	case "null":
		return object.NullValue()
	default:
		return object.NullValue()
	}
}

func (e *Evaluator) evalList(n *ast.ListExpression) (*object.Value, error) {
	elems := make([]*object.Value, len(n.Elements))
	for i, elExpr := range n.Elements {
		v, err := e.eval(elExpr)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return object.NewList(elems), nil
}

func (e *Evaluator) evalIndex(n *ast.IndexAccess) (*object.Value, error) {
	obj, err := e.eval(n.Object)
	if err != nil {
		return nil, err
	}
	if obj.Kind != object.List {
		return nil, &internals.RuntimeError{Message: "cannot index a non-list value"}
	}
	idxVal, err := e.eval(n.Index)
	if err != nil {
		return nil, err
	}
	if idxVal.Kind != object.Number {
		return nil, &internals.RuntimeError{Message: "index must be a number"}
	}
	idx := int(idxVal.Number)
	if idx < 0 || idx >= len(obj.List.Elements) {
		return object.NullValue(), nil
	}
	return obj.List.Elements[idx], nil
}

// evalBinary evaluates both sides left-to-right (observable via print and
// list mutation) before applying the operator.
func (e *Evaluator) evalBinary(n *ast.BinaryExpression) (*object.Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "==":
		return object.BoolValue(left.Equals(right)), nil
	case "!=":
		return object.BoolValue(!left.Equals(right)), nil
	case "<", "<=", ">", ">=":
		if left.Kind != object.Number || right.Kind != object.Number {
			return nil, &internals.RuntimeError{Message: "comparison requires two numbers"}
		}
		return object.BoolValue(compareNumbers(n.Op, left.Number, right.Number)), nil
	case "+", "-", "*", "/", "%":
		return arithmetic(n.Op, left, right)
	default:
		return nil, &internals.RuntimeError{Message: "unsupported operator '" + n.Op + "'"}
	}
}

func compareNumbers(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	default:
		return false
	}
}

func arithmetic(op string, left, right *object.Value) (*object.Value, error) {
	if left.Kind != object.Number || right.Kind != object.Number {
		return nil, &internals.RuntimeError{Message: "arithmetic requires two numbers"}
	}
	l, r := left.Number, right.Number
	switch op {
	case "+":
		return object.NumberValue(l + r), nil
	case "-":
		return object.NumberValue(l - r), nil
	case "*":
		return object.NumberValue(l * r), nil
	case "/":
		if r == 0 {
			return nil, &internals.RuntimeError{Message: "division by zero"}
		}
		quotient := l / r
		if l == float64(int64(l)) && r == float64(int64(r)) {
			quotient = math.Trunc(quotient)
		}
		return object.NumberValue(quotient), nil
	case "%":
		if r == 0 {
			return nil, &internals.RuntimeError{Message: "modulo by zero"}
		}
		return object.NumberValue(float64(int64(l) % int64(r))), nil
	default:
		return nil, &internals.RuntimeError{Message: "unsupported arithmetic operator '" + op + "'"}
	}
}

func (e *Evaluator) evalCall(n *ast.FunctionCallExpression) (*object.Value, error) {
	args := make([]*object.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := builtins[n.Callee]; ok {
		return fn(args)
	}

	return e.callFunction(n.Callee, args)
}

// callFunction pushes a frame parented to the global environment (lexical-
// to-global: the callee never sees the caller's locals, per the resolved
// design note), binds parameters immutably, and executes the body.
func (e *Evaluator) callFunction(name string, args []*object.Value) (*object.Value, error) {
	fn, ok := e.functions[name]
	if !ok {
		return nil, &internals.RuntimeError{Message: "call to undefined function '" + name + "'"}
	}
	if len(args) != len(fn.Params) {
		return nil, &internals.RuntimeError{Message: "arity mismatch calling '" + name + "'"}
	}

	e.callDepth++
	if e.callDepth > e.maxCallDepth {
		e.callDepth--
		return nil, &internals.RuntimeError{Message: "stack overflow"}
	}
	defer func() { e.callDepth-- }()

	frame := object.NewEnvironment(e.global)
	for i, p := range fn.Params {
		if err := frame.Define(p.Name, args[i], false); err != nil {
			return nil, err
		}
	}

	prevEnv := e.current
	prevReturn, prevShould := e.returnValue, e.shouldReturn
	e.current = frame
	e.returnValue, e.shouldReturn = nil, false

	err := e.execBlockBody(fn.Body.Body)

	result := e.returnValue
	if result == nil {
		result = object.NullValue()
	}

	e.current = prevEnv
	e.returnValue, e.shouldReturn = prevReturn, prevShould

	if err != nil {
		return nil, err
	}
	return result, nil
}
