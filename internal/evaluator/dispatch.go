package evaluator

// classFor resolves the built-in type object registered for a value's
// host tag. Opaque host wrappers without a registered type dispatch
// through Object.
func (e *Evaluator) classFor(obj Object) *Class {
	if c, ok := e.classes[obj.Type()]; ok {
		return c
	}
	return e.ObjectClass
}

func ancestorInstanceScope(a Object) *Scope {
	switch v := a.(type) {
	case *Class:
		return v.InstanceScope
	case *Module:
		return v.Scope
	}
	return nil
}

func ancestorStaticScope(a Object) *Scope {
	switch v := a.(type) {
	case *Class:
		return v.StaticScope
	case *Module:
		return v.Scope
	}
	return nil
}

// dispatchChain builds the ordered scope list searched for a method on
// the given receiver.
//
// Instances search their own scope, their type's instance scope, then
// the type's ancestors. Types search their static scope, their extended
// ancestors, then the built-in Type methods. Modules search their scope,
// their own mixin chain, then the built-in Module methods. Everything
// else dispatches through the built-in type registered for its host tag.
func (e *Evaluator) dispatchChain(recv Object) []*Scope {
	switch r := recv.(type) {
	case *Instance:
		chain := []*Scope{r.Scope, r.Class.InstanceScope}
		for _, a := range r.Class.Ancestors() {
			if s := ancestorInstanceScope(a); s != nil {
				chain = append(chain, s)
			}
		}
		return chain
	case *Class:
		chain := []*Scope{r.StaticScope}
		for _, a := range r.ExtendedAncestors() {
			if s := ancestorStaticScope(a); s != nil {
				chain = append(chain, s)
			}
		}
		return append(chain, e.builtinClassChain(e.TypeClass)...)
	case *Module:
		chain := []*Scope{r.Scope}
		for _, a := range r.Ancestors() {
			if s := ancestorInstanceScope(a); s != nil {
				chain = append(chain, s)
			}
		}
		return append(chain, e.builtinClassChain(e.ModuleClass)...)
	default:
		return e.builtinClassChain(e.classFor(recv))
	}
}

// builtinClassChain is the instance-side chain of a built-in type: its
// instance scope followed by its ancestors' scopes.
func (e *Evaluator) builtinClassChain(cls *Class) []*Scope {
	chain := []*Scope{cls.InstanceScope}
	for _, a := range cls.Ancestors() {
		if s := ancestorInstanceScope(a); s != nil {
			chain = append(chain, s)
		}
	}
	return chain
}

// lookupMethod walks the receiver's dispatch chain and returns the first
// functor bound under name, or nil.
func (e *Evaluator) lookupMethod(recv Object, name string) *Functor {
	if recv == nil {
		return nil
	}
	for _, scope := range e.dispatchChain(recv) {
		if val, ok := scope.GetLocal(name); ok {
			if fn, isFn := val.(*Functor); isFn {
				return fn
			}
		}
	}
	return nil
}

// Invoke dispatches method name on recv. The first chain scope binding
// the name wins; a non-functor binding reads as a constant when called
// with no arguments.
func (e *Evaluator) Invoke(name string, recv Object, args []Object, block *Functor) Object {
	for _, scope := range e.dispatchChain(recv) {
		val, ok := scope.GetLocal(name)
		if !ok {
			continue
		}
		if fn, isFn := val.(*Functor); isFn {
			return e.applyFunctor(fn, recv, args, block)
		}
		if len(args) == 0 && block == nil {
			return val
		}
		return e.newErrorWithStack(ErrTypeMisuse, "%q on %s is not callable (%s)", name, recv.TypeName(), val.TypeName())
	}
	return e.newErrorWithStack(ErrNoSuchMethod, "undefined method %q for %s", name, recv.TypeName())
}

// selectClause picks the first clause, in definition order, whose arity
// and splat position accept the argument count. Lenient functors (call
// site blocks) always take their first clause and pad or drop arguments.
func (e *Evaluator) selectClause(fn *Functor, nargs int) *Clause {
	if fn.Lenient && len(fn.Clauses) > 0 {
		return fn.Clauses[0]
	}
	for _, c := range fn.Clauses {
		if c.Accepts(nargs) {
			return c
		}
	}
	return nil
}

// applyFunctor invokes a functor clause. The frame parents the lexical
// scope only for closures; this resolves to the functor's closed self
// when present, else the call site receiver.
func (e *Evaluator) applyFunctor(fn *Functor, recv Object, args []Object, block *Functor) Object {
	clause := e.selectClause(fn, len(args))
	if clause == nil {
		name := fn.Name
		if name == "" {
			name = "anonymous functor"
		}
		return e.newErrorWithStack(ErrArityMismatch, "no clause of %s accepts %d arguments", name, len(args))
	}

	self := recv
	if fn.ClosedSelf != nil {
		self = fn.ClosedSelf
	}
	if self == nil {
		self = NIL
	}

	if clause.IsNative() {
		return clause.Fn(e, self, args, block)
	}

	var frame *Scope
	if fn.Closure {
		frame = NewEnclosedScope(fn.LexicalScope)
	} else {
		frame = NewScope()
	}
	e.bindParams(frame, clause, args, fn.Lenient)
	if clause.BlockParam != "" {
		if block != nil {
			frame.Define(clause.BlockParam, block)
		} else {
			frame.Define(clause.BlockParam, NIL)
		}
	}

	e.scopes.Push(frame)
	e.pushSelf(self)
	result := e.evalBlock(clause.Body)
	e.popSelf()
	e.scopes.Pop()

	if rv, ok := result.(*ReturnValue); ok {
		return rv.Value
	}
	return result
}

// bindParams binds positional parameters; the splat parameter, when
// present, takes the arguments left over between the fixed ones as a
// List. Lenient binding pads missing arguments with nil.
func (e *Evaluator) bindParams(frame *Scope, clause *Clause, args []Object, lenient bool) {
	params := clause.Params

	if clause.SplatIndex < 0 {
		for i, p := range params {
			if i < len(args) {
				frame.Define(p.Name, args[i])
			} else if lenient {
				frame.Define(p.Name, NIL)
			}
		}
		return
	}

	before := params[:clause.SplatIndex]
	after := params[clause.SplatIndex+1:]

	for i, p := range before {
		if i < len(args) {
			frame.Define(p.Name, args[i])
		} else {
			frame.Define(p.Name, NIL)
		}
	}

	rest := len(args) - len(before) - len(after)
	if rest < 0 {
		rest = 0
	}
	mid := make([]Object, rest)
	copy(mid, args[len(before):len(before)+rest])
	frame.Define(params[clause.SplatIndex].Name, NewList(mid))

	for i, p := range after {
		idx := len(before) + rest + i
		if idx < len(args) {
			frame.Define(p.Name, args[idx])
		} else {
			frame.Define(p.Name, NIL)
		}
	}
}

// CallBlock invokes a block or functor from native code with the given
// positional arguments.
func (e *Evaluator) CallBlock(fn *Functor, args []Object) Object {
	return e.applyFunctor(fn, fn.ClosedSelf, args, nil)
}
