package parser

import (
	"jal/ast"
	"jal/types"
)

// inferScope is a lightweight, advisory mirror of block/if/while/for/function
// scoping used only to fill in annotations the checker will re-derive
// authoritatively. It never reports errors: if a type cannot be inferred the
// walk simply leaves the annotation nil and moves on.
type inferScope struct {
	parent *inferScope
	vars   map[string]*types.Type
}

func newInferScope(parent *inferScope) *inferScope {
	return &inferScope{parent: parent, vars: map[string]*types.Type{}}
}

func (s *inferScope) lookup(name string) (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

type funcSig struct {
	params []ast.Parameter
	ret    *types.Type
}

// InferTypes fills typeAnnotation on every `:=`-form VariableDeclaration in
// program by propagating types through a scope chain mirroring block
// structure. Function return types are gathered first so forward references
// in initializers infer correctly. This pass is advisory; the checker
// re-derives types authoritatively and is the source of truth for rejection.
func InferTypes(program *ast.Program) {
	funcs := map[string]funcSig{}
	for _, stmt := range program.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			funcs[fn.Name] = funcSig{params: fn.Params, ret: fn.ReturnType}
		}
	}

	root := newInferScope(nil)
	for _, stmt := range program.Body {
		inferStatement(stmt, root, funcs)
	}
}

func inferStatement(stmt ast.Statement, scope *inferScope, funcs map[string]funcSig) {
	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		t := inferExpr(n.Initializer, scope, funcs)
		if n.Annotation == nil {
			n.Annotation = t
		}
		if n.Annotation != nil {
			scope.vars[n.Name] = n.Annotation
		}
	case *ast.FunctionDeclaration:
		fnScope := newInferScope(scope)
		for _, p := range n.Params {
			fnScope.vars[p.Name] = p.Type
		}
		inferBlock(n.Body, fnScope, funcs)
	case *ast.BlockStatement:
		inferBlock(n, newInferScope(scope), funcs)
	case *ast.IfStatement:
		inferExpr(n.Condition, scope, funcs)
		inferBlock(n.Consequent, newInferScope(scope), funcs)
		if n.Alternate != nil {
			inferStatement(n.Alternate, scope, funcs)
		}
	case *ast.WhileStatement:
		inferExpr(n.Condition, scope, funcs)
		inferBlock(n.Body, newInferScope(scope), funcs)
	case *ast.ForStatement:
		iterT := inferExpr(n.Iterable, scope, funcs)
		loopScope := newInferScope(scope)
		if n.IsIndex {
			loopScope.vars[n.Variable] = types.IntT(types.DefaultIntBits)
		} else if iterT != nil && iterT.Kind == types.List {
			loopScope.vars[n.Variable] = iterT.Element
		}
		inferBlock(n.Body, loopScope, funcs)
	case *ast.AssignmentStatement:
		inferExpr(n.Value, scope, funcs)
	case *ast.ListPushStatement:
		inferExpr(n.Target, scope, funcs)
		inferExpr(n.Value, scope, funcs)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			inferExpr(n.Argument, scope, funcs)
		}
	case *ast.ExpressionStatement:
		if n.Expression != nil {
			inferExpr(n.Expression, scope, funcs)
		}
	}
}

func inferBlock(block *ast.BlockStatement, scope *inferScope, funcs map[string]funcSig) {
	for _, s := range block.Body {
		inferStatement(s, scope, funcs)
	}
}

var builtinReturnTypes = map[string]*types.Type{
	"print":     types.VoidT(),
	"len":       types.IntT(types.DefaultIntBits),
	"type":      types.StringT(),
	"stringify": types.StringT(),
	"toNumber":  types.IntT(types.DefaultIntBits),
}

func inferExpr(expr ast.Expression, scope *inferScope, funcs map[string]funcSig) *types.Type {
	switch n := expr.(type) {
	case nil:
		return nil
	case *ast.Literal:
		switch n.Kind {
		case "int":
			return types.IntT(types.DefaultIntBits)
		case "float":
			return types.FloatT(types.DefaultFloatBits)
		case "bool":
			return types.BoolT()
		case "string":
			return types.StringT()
		case "null":
			return types.VoidT()
		}
		return nil
	case *ast.Variable:
		if t, ok := scope.lookup(n.Name); ok {
			return t
		}
		return nil
	case *ast.BinaryExpression:
		left := inferExpr(n.Left, scope, funcs)
		right := inferExpr(n.Right, scope, funcs)
		switch n.Op {
		case "==", "!=", "<", "<=", ">", ">=":
			return types.BoolT()
		case "+", "-", "*", "%":
			if left != nil && right != nil && left.IsNumeric() && right.IsNumeric() {
				return types.WiderType(left, right)
			}
			return nil
		case "/":
			if left != nil && right != nil && left.Kind == types.Int && right.Kind == types.Int {
				return left
			}
			if left != nil && right != nil && left.IsNumeric() && right.IsNumeric() {
				return types.WiderType(left, right)
			}
			return nil
		}
		return nil
	case *ast.ListExpression:
		if len(n.Elements) == 0 {
			return types.ListT(types.VoidT())
		}
		elemT := inferExpr(n.Elements[0], scope, funcs)
		for _, e := range n.Elements[1:] {
			inferExpr(e, scope, funcs)
		}
		return types.ListT(elemT)
	case *ast.IndexAccess:
		objT := inferExpr(n.Object, scope, funcs)
		inferExpr(n.Index, scope, funcs)
		if objT != nil && objT.Kind == types.List {
			return objT.Element
		}
		return nil
	case *ast.FunctionCallExpression:
		for _, a := range n.Args {
			inferExpr(a, scope, funcs)
		}
		if t, ok := builtinReturnTypes[n.Callee]; ok {
			return t
		}
		if sig, ok := funcs[n.Callee]; ok {
			return sig.ret
		}
		return nil
	}
	return nil
}
