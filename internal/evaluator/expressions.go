package evaluator

import (
	"github.com/rill-lang/rill/internal/ast"
)

// evalIdentifier resolves a bare name: the scope stack first, then a
// zero-argument method on the current receiver, then the kernel scope.
func (e *Evaluator) evalIdentifier(n *ast.Identifier) Object {
	if val, ok := e.scopes.Lookup(n.Value); ok {
		return val
	}
	if fn := e.lookupMethod(e.currentSelf(), n.Value); fn != nil {
		return e.applyFunctor(fn, e.currentSelf(), nil, nil)
	}
	if val, ok := e.Kernel.GetLocal(n.Value); ok {
		return val
	}
	return e.newErrorWithStack(ErrUnresolvedIdentifier, "undefined name %q", n.Value)
}

func (e *Evaluator) evalAssignExpression(n *ast.AssignExpression) Object {
	val := e.Eval(n.Value)
	if isError(val) {
		return val
	}
	e.scopes.Assign(n.Name, val)
	return val
}

// Ivars are stored under their written @name so they never collide with
// method bindings sharing the instance scope.
func ivarKey(name string) string { return "@" + name }

func (e *Evaluator) evalIvarExpression(n *ast.IvarExpression) Object {
	self := e.currentSelf()
	carrier, ok := self.(BindingCarrier)
	if !ok {
		return e.newErrorWithStack(ErrTypeMisuse, "%s values cannot carry instance variables", self.TypeName())
	}
	if val, ok := carrier.Bindings().GetLocal(ivarKey(n.Name)); ok {
		return val
	}
	return NIL
}

func (e *Evaluator) evalIvarAssignExpression(n *ast.IvarAssignExpression) Object {
	self := e.currentSelf()
	carrier, ok := self.(BindingCarrier)
	if !ok {
		return e.newErrorWithStack(ErrTypeMisuse, "%s values cannot carry instance variables", self.TypeName())
	}
	val := e.Eval(n.Value)
	if isError(val) {
		return val
	}
	carrier.Bindings().Define(ivarKey(n.Name), val)
	return val
}

func (e *Evaluator) evalIndexExpression(n *ast.IndexExpression) Object {
	recv := e.Eval(n.Receiver)
	if isError(recv) {
		return recv
	}
	index := e.Eval(n.Index)
	if isError(index) {
		return index
	}
	return e.Invoke("[]", recv, []Object{index}, nil)
}

func (e *Evaluator) evalIndexAssignExpression(n *ast.IndexAssignExpression) Object {
	recv := e.Eval(n.Receiver)
	if isError(recv) {
		return recv
	}
	index := e.Eval(n.Index)
	if isError(index) {
		return index
	}
	val := e.Eval(n.Value)
	if isError(val) {
		return val
	}
	return e.Invoke("[]=", recv, []Object{index, val}, nil)
}

// evalBinaryExpression: && and || are short-circuiting driver forms;
// every other operator is a dispatch on the left operand.
func (e *Evaluator) evalBinaryExpression(n *ast.BinaryExpression) Object {
	left := e.Eval(n.Left)
	if isError(left) {
		return left
	}

	switch n.Op {
	case "&&":
		if !left.Truthy() {
			return left
		}
		return e.Eval(n.Right)
	case "||":
		if left.Truthy() {
			return left
		}
		return e.Eval(n.Right)
	}

	right := e.Eval(n.Right)
	if isError(right) {
		return right
	}
	return e.Invoke(n.Op, left, []Object{right}, nil)
}

func (e *Evaluator) evalUnaryExpression(n *ast.UnaryExpression) Object {
	operand := e.Eval(n.Operand)
	if isError(operand) {
		return operand
	}
	switch n.Op {
	case "!":
		return nativeBool(!operand.Truthy())
	case "-":
		switch v := operand.(type) {
		case *Integer:
			return &Integer{Value: -v.Value}
		case *Float:
			return &Float{Value: -v.Value}
		default:
			return e.newErrorWithStack(ErrTypeMisuse, "cannot negate %s", operand.TypeName())
		}
	}
	return e.newErrorWithStack(ErrInterpreterBug, "unknown unary operator %q", n.Op)
}

func (e *Evaluator) evalIfExpression(n *ast.IfExpression) Object {
	cond := e.Eval(n.Cond)
	if isError(cond) {
		return cond
	}
	if cond.Truthy() {
		return e.evalBlock(n.Then)
	}
	if n.Else != nil {
		return e.evalBlock(n.Else)
	}
	return NIL
}

func (e *Evaluator) evalWhileExpression(n *ast.WhileExpression) Object {
	for {
		cond := e.Eval(n.Cond)
		if isError(cond) {
			return cond
		}
		if !cond.Truthy() {
			return NIL
		}
		result := e.evalBlock(n.Body)
		if result != nil {
			t := result.Type()
			if t == ERROR_OBJ || t == RETURN_VALUE_OBJ {
				return result
			}
		}
	}
}

// evalFunctorLiteral builds a closure: the frame of a later invocation
// parents the scope captured here, and this is closed over as well.
func (e *Evaluator) evalFunctorLiteral(n *ast.FunctorLiteral) Object {
	name := "fn"
	if n.IsBlock {
		name = "block"
	}
	fn := &Functor{
		Name:         name,
		LexicalScope: e.scopes.Current(),
		Closure:      true,
		ClosedSelf:   e.currentSelf(),
		Lenient:      n.IsBlock,
	}
	fn.AddClause(userClause(n.Params, n.SplatIndex, n.BlockParam, n.Body))
	return fn
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral) Object {
	elements := make([]Object, 0, len(n.Elements))
	for _, el := range n.Elements {
		val := e.Eval(el)
		if isError(val) {
			return val
		}
		elements = append(elements, val)
	}
	return NewList(elements)
}

// evalMapLiteral goes through mapSet so duplicate keys in the literal
// collapse onto the first occurrence's slot, last value winning.
func (e *Evaluator) evalMapLiteral(n *ast.MapLiteral) Object {
	m := NewMap()
	for i, keyExpr := range n.Keys {
		key := e.Eval(keyExpr)
		if isError(key) {
			return key
		}
		val := e.Eval(n.Values[i])
		if isError(val) {
			return val
		}
		if err := e.mapSet(m, key, val); err != nil {
			return err
		}
	}
	return m
}

// evalCallExpression evaluates receiver and arguments, builds the block
// functor when one is attached, and dispatches.
func (e *Evaluator) evalCallExpression(n *ast.CallExpression) Object {
	var block *Functor
	if n.Block != nil {
		blockObj := e.Eval(n.Block)
		if isError(blockObj) {
			return blockObj
		}
		block = blockObj.(*Functor)
	}

	args := make([]Object, 0, len(n.Args))
	for _, argExpr := range n.Args {
		arg := e.Eval(argExpr)
		if isError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	tok := n.GetToken()
	e.CallStack = append(e.CallStack, CallFrame{Name: n.Method, Line: tok.Line, Column: tok.Column})
	defer func() { e.CallStack = e.CallStack[:len(e.CallStack)-1] }()

	if n.Receiver == nil {
		return e.evalBareCall(n, args, block)
	}

	recv := e.Eval(n.Receiver)
	if isError(recv) {
		return recv
	}
	return e.Invoke(n.Method, recv, args, block)
}

// evalBareCall resolves name(args): a functor bound in the scope stack,
// then a method on the current receiver, then a kernel functor.
func (e *Evaluator) evalBareCall(n *ast.CallExpression, args []Object, block *Functor) Object {
	if val, ok := e.scopes.Lookup(n.Method); ok {
		fn, isFn := val.(*Functor)
		if !isFn {
			return e.newErrorWithStack(ErrTypeMisuse, "%q is not callable (%s)", n.Method, val.TypeName())
		}
		return e.applyFunctor(fn, e.currentSelf(), args, block)
	}
	if fn := e.lookupMethod(e.currentSelf(), n.Method); fn != nil {
		return e.applyFunctor(fn, e.currentSelf(), args, block)
	}
	if val, ok := e.Kernel.GetLocal(n.Method); ok {
		if fn, isFn := val.(*Functor); isFn {
			return e.applyFunctor(fn, e.currentSelf(), args, block)
		}
	}
	return e.newErrorWithStack(ErrNoSuchMethod, "undefined method %q", n.Method)
}
