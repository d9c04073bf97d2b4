// Package checker implements JAL's two-pass static type checker: forward
// function registration, then per-scope-inference statement checking.
// Errors are accumulated; the checked program is only safe to execute if the
// resulting list is empty.
package checker

import (
	"jal/ast"
	"jal/internals"
	"jal/types"
)

var builtinSignature = map[string]struct {
	arity int // -1 means variadic
	ret   *types.Type
}{
	"print":     {-1, types.VoidT()},
	"len":       {1, types.IntT(types.DefaultIntBits)},
	"type":      {1, types.StringT()},
	"stringify": {1, types.StringT()},
	"toNumber":  {1, types.IntT(types.DefaultIntBits)},
}

// Checker walks a Program once, accumulating an ordered list of errors.
type Checker struct {
	collector         *internals.ErrorCollector
	functions         map[string]FunctionSymbol
	currentReturnType *types.Type
	funcDepth         int
	globalScope       *scope
}

func New() *Checker {
	return &Checker{
		collector: internals.NewErrorCollector(),
		functions: map[string]FunctionSymbol{},
	}
}

// Check type-checks program and returns the ordered list of error messages.
// An empty list means the program is accepted.
func (c *Checker) Check(program *ast.Program) []string {
	c.registerFunctions(program)

	global := newScope(nil)
	c.globalScope = global
	c.checkSequence(program.Body, global, true)

	return c.collector.Messages()
}

func (c *Checker) registerFunctions(program *ast.Program) {
	for _, stmt := range program.Body {
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		if _, exists := c.functions[fn.Name]; exists {
			c.collector.Addf("duplicate function declaration '%s'", fn.Name)
			continue
		}
		paramTypes := make([]*types.Type, len(fn.Params))
		paramNames := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
			paramNames[i] = p.Name
		}
		c.functions[fn.Name] = FunctionSymbol{
			Name:       fn.Name,
			ParamTypes: paramTypes,
			ParamNames: paramNames,
			ReturnType: fn.ReturnType,
		}
	}
}

// checkSequence implements "register every VariableDeclaration in this
// sequence first (by inferring its type), then check each statement in
// textual order". topLevel is true for the top-level body, whose
// FunctionDeclarations are checked with checkFunction in that second loop.
func (c *Checker) checkSequence(stmts []ast.Statement, sc *scope, topLevel bool) {
	for _, stmt := range stmts {
		vd, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			continue
		}
		t := c.quietTypeOf(vd.Initializer, sc)
		if vd.Annotation != nil {
			t = vd.Annotation
		}
		if t == nil {
			t = types.VoidT()
		}
		if sc.definedInCurrent(vd.Name) {
			c.collector.Addf("'%s' is already declared in this scope", vd.Name)
			continue
		}
		if sc.resolveOuterConst(vd.Name) {
			c.collector.Addf("'%s' shadows an immutable outer binding", vd.Name)
		}
		sc.define(Symbol{Name: vd.Name, Type: t, Mutable: vd.Mutable})
	}

	for _, stmt := range stmts {
		if topLevel {
			if fn, isFn := stmt.(*ast.FunctionDeclaration); isFn {
				c.checkFunction(fn)
				continue
			}
		}
		c.checkStatement(stmt, sc)
	}
}

func (c *Checker) checkFunction(fn *ast.FunctionDeclaration) {
	// Function frames are lexical-to-global (see the resolved design note):
	// a called function sees top-level declarations but not any caller's
	// block-local variables, matching the evaluator parenting call frames to
	// the global environment root.
	fnScope := newScope(c.globalScope)
	for _, p := range fn.Params {
		fnScope.define(Symbol{Name: p.Name, Type: p.Type, Mutable: false})
	}
	prevReturn := c.currentReturnType
	c.currentReturnType = fn.ReturnType
	c.funcDepth++
	c.checkSequence(fn.Body.Body, fnScope, false)
	c.funcDepth--
	c.currentReturnType = prevReturn
}

func (c *Checker) checkStatement(stmt ast.Statement, sc *scope) {
	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		c.checkVariableDeclaration(n, sc)
	case *ast.AssignmentStatement:
		c.checkAssignment(n, sc)
	case *ast.ExpressionStatement:
		if n.Expression != nil {
			c.typeOf(n.Expression, sc)
		}
	case *ast.BlockStatement:
		c.checkSequence(n.Body, newScope(sc), false)
	case *ast.ListPushStatement:
		c.checkListPush(n, sc)
	case *ast.ReturnStatement:
		c.checkReturn(n, sc)
	case *ast.IfStatement:
		condT := c.typeOf(n.Condition, sc)
		if condT != nil && condT.Kind != types.Bool {
			c.collector.Addf("if condition must be bool, got %s", condT)
		}
		c.checkSequence(n.Consequent.Body, newScope(sc), false)
		if n.Alternate != nil {
			c.checkStatement(n.Alternate, sc)
		}
	case *ast.WhileStatement:
		condT := c.typeOf(n.Condition, sc)
		if condT != nil && condT.Kind != types.Bool {
			c.collector.Addf("while condition must be bool, got %s", condT)
		}
		c.checkSequence(n.Body.Body, newScope(sc), false)
	case *ast.ForStatement:
		c.checkFor(n, sc)
	case *ast.FunctionDeclaration:
		c.checkFunction(n)
	}
}

func (c *Checker) checkVariableDeclaration(n *ast.VariableDeclaration, sc *scope) {
	initT := c.typeOf(n.Initializer, sc)
	if n.Annotation != nil && initT != nil && !types.TypesMatch(n.Annotation, initT) {
		c.collector.Addf("variable '%s' declared as %s but initialized with %s", n.Name, n.Annotation, initT)
	}
}

func (c *Checker) checkAssignment(n *ast.AssignmentStatement, sc *scope) {
	sym, ok := sc.resolve(n.Target)
	if !ok {
		c.collector.Addf("undefined symbol '%s'", n.Target)
		c.typeOf(n.Value, sc)
		return
	}
	if !sym.Mutable {
		c.collector.Addf("cannot assign to immutable binding '%s'", n.Target)
	}
	valT := c.typeOf(n.Value, sc)
	if valT != nil && !types.TypesMatch(sym.Type, valT) {
		c.collector.Addf("cannot assign %s to '%s' of type %s", valT, n.Target, sym.Type)
	}
}

func (c *Checker) checkListPush(n *ast.ListPushStatement, sc *scope) {
	targetT := c.typeOf(n.Target, sc)
	valT := c.typeOf(n.Value, sc)
	if targetT == nil {
		return
	}
	if targetT.Kind != types.List {
		c.collector.Addf("list push target must be a list, got %s", targetT)
		return
	}
	if v, ok := n.Target.(*ast.Variable); ok {
		if sym, found := sc.resolve(v.Name); found && !sym.Mutable {
			c.collector.Addf("cannot push to immutable list '%s'", v.Name)
		}
	}
	if valT == nil || targetT.Element.Kind == types.Void {
		return
	}
	// A pushed list is spread, so it must be a list of the target's element type.
	if valT.Kind == types.List {
		if !types.TypesMatch(targetT, valT) {
			c.collector.Addf("cannot push %s onto list of %s", valT, targetT.Element)
		}
		return
	}
	if !types.TypesMatch(targetT.Element, valT) {
		c.collector.Addf("cannot push %s onto list of %s", valT, targetT.Element)
	}
}

func (c *Checker) checkReturn(n *ast.ReturnStatement, sc *scope) {
	if c.funcDepth == 0 {
		c.collector.Addf("return statement outside of a function")
		return
	}
	if n.Argument == nil {
		if c.currentReturnType != nil && c.currentReturnType.Kind != types.Void {
			c.collector.Addf("missing return value for function declared %s", c.currentReturnType)
		}
		return
	}
	argT := c.typeOf(n.Argument, sc)
	if argT != nil && c.currentReturnType != nil && !types.TypesMatch(argT, c.currentReturnType) {
		c.collector.Addf("return type mismatch: expected %s, got %s", c.currentReturnType, argT)
	}
}

func (c *Checker) checkFor(n *ast.ForStatement, sc *scope) {
	iterT := c.typeOf(n.Iterable, sc)
	loopScope := newScope(sc)
	if iterT == nil {
		c.checkSequence(n.Body.Body, loopScope, false)
		return
	}
	if iterT.Kind != types.List {
		c.collector.Addf("for loop iterable must be a list, got %s", iterT)
	}
	if n.IsIndex {
		loopScope.define(Symbol{Name: n.Variable, Type: types.IntT(types.DefaultIntBits), Mutable: false})
	} else {
		elemT := types.VoidT()
		if iterT.Kind == types.List {
			elemT = iterT.Element
		}
		loopScope.define(Symbol{Name: n.Variable, Type: elemT, Mutable: false})
	}
	c.checkSequence(n.Body.Body, loopScope, false)
}

// typeOf computes and validates the type of expr, emitting errors for
// violations of the rules in the per-construct checking table.
func (c *Checker) typeOf(expr ast.Expression, sc *scope) *types.Type {
	switch n := expr.(type) {
	case nil:
		return nil
	case *ast.Literal:
		return literalType(n)
	case *ast.Variable:
		sym, ok := sc.resolve(n.Name)
		if !ok {
			c.collector.Addf("undefined symbol '%s'", n.Name)
			return nil
		}
		return sym.Type
	case *ast.BinaryExpression:
		return c.checkBinary(n, sc)
	case *ast.FunctionCallExpression:
		return c.checkCall(n, sc)
	case *ast.ListExpression:
		return c.checkList(n, sc)
	case *ast.IndexAccess:
		return c.checkIndex(n, sc)
	}
	return nil
}

// quietTypeOf infers a type for forward var registration without emitting
// errors — resolution failures simply yield nil, matching the parser's own
// advisory inference.
func (c *Checker) quietTypeOf(expr ast.Expression, sc *scope) *types.Type {
	tmp := internals.NewErrorCollector()
	saved := c.collector
	c.collector = tmp
	t := c.typeOf(expr, sc)
	c.collector = saved
	return t
}

func literalType(n *ast.Literal) *types.Type {
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
	default:
		return nil
	}
}

func (c *Checker) checkBinary(n *ast.BinaryExpression, sc *scope) *types.Type {
	left := c.typeOf(n.Left, sc)
	right := c.typeOf(n.Right, sc)
	if left == nil || right == nil {
		return nil
	}
	switch n.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		if n.Op == "==" || n.Op == "!=" {
			return types.BoolT()
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			c.collector.Addf("comparison operator '%s' requires numeric operands, got %s and %s", n.Op, left, right)
		}
		return types.BoolT()
	case "+", "-", "*", "%":
		if !left.IsNumeric() || !right.IsNumeric() {
			c.collector.Addf("operator '%s' requires numeric operands, got %s and %s", n.Op, left, right)
			return nil
		}
		return types.WiderType(left, right)
	case "/":
		if !left.IsNumeric() || !right.IsNumeric() {
			c.collector.Addf("operator '/' requires numeric operands, got %s and %s", left, right)
			return nil
		}
		if left.Kind == types.Int && right.Kind == types.Int {
			return left
		}
		return types.WiderType(left, right)
	default:
		c.collector.Addf("unknown binary operator '%s'", n.Op)
		return nil
	}
}

func (c *Checker) checkCall(n *ast.FunctionCallExpression, sc *scope) *types.Type {
	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.typeOf(a, sc)
	}

	if sig, ok := builtinSignature[n.Callee]; ok {
		if sig.arity >= 0 && len(n.Args) != sig.arity {
			c.collector.Addf("'%s' expects %d argument(s), got %d", n.Callee, sig.arity, len(n.Args))
		}
		return sig.ret
	}

	fn, ok := c.functions[n.Callee]
	if !ok {
		c.collector.Addf("call to undefined function '%s'", n.Callee)
		return nil
	}
	if len(n.Args) != len(fn.ParamTypes) {
		c.collector.Addf("function '%s' expects %d argument(s), got %d", n.Callee, len(fn.ParamTypes), len(n.Args))
		return fn.ReturnType
	}
	for i, at := range argTypes {
		if at != nil && fn.ParamTypes[i] != nil && !types.TypesMatch(at, fn.ParamTypes[i]) {
			c.collector.Addf("argument %d of '%s': expected %s, got %s", i+1, n.Callee, fn.ParamTypes[i], at)
		}
	}
	return fn.ReturnType
}

func (c *Checker) checkList(n *ast.ListExpression, sc *scope) *types.Type {
	if len(n.Elements) == 0 {
		return types.ListT(types.VoidT())
	}
	first := c.typeOf(n.Elements[0], sc)
	for _, e := range n.Elements[1:] {
		t := c.typeOf(e, sc)
		if first != nil && t != nil && !types.TypesMatch(first, t) {
			c.collector.Addf("list elements must share a type: expected %s, got %s", first, t)
		}
	}
	return types.ListT(first)
}

func (c *Checker) checkIndex(n *ast.IndexAccess, sc *scope) *types.Type {
	objT := c.typeOf(n.Object, sc)
	idxT := c.typeOf(n.Index, sc)
	if objT != nil && objT.Kind != types.List {
		c.collector.Addf("index target must be a list, got %s", objT)
		return nil
	}
	if idxT != nil && idxT.Kind != types.Int {
		c.collector.Addf("index must be an int, got %s", idxT)
	}
	if objT != nil {
		return objT.Element
	}
	return nil
}
