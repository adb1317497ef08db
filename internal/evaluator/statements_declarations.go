package evaluator

import (
	"github.com/rill-lang/rill/internal/ast"
)

// evalMethodDefinition adds a clause to the functor bound under the
// definition name in the surrounding def target (kernel scope at top
// level, instance or static scope inside a type body, module scope
// inside a module body). Redefining an existing name appends a clause.
func (e *Evaluator) evalMethodDefinition(n *ast.MethodDefinition) Object {
	target := e.currentDefTarget()
	scope := target.instance
	if n.Static {
		scope = target.static
	}

	var fn *Functor
	if existing, ok := scope.GetLocal(n.Name); ok {
		if f, isFn := existing.(*Functor); isFn {
			fn = f
		}
	}
	if fn == nil {
		fn = NewFunctor(n.Name)
		scope.Define(n.Name, fn)
	}
	fn.AddClause(userClause(n.Params, n.SplatIndex, n.BlockParam, n.Body))
	return fn
}

// evalTypeDeclaration creates (or reopens) a type and evaluates its body
// with the type as this, defs going to its instance/static scopes and
// other bindings to the static scope.
func (e *Evaluator) evalTypeDeclaration(n *ast.TypeDeclaration) Object {
	super := e.ObjectClass
	if n.Super != nil {
		val := e.Eval(n.Super)
		if isError(val) {
			return val
		}
		sc, ok := val.(*Class)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "supertype of %s is not a type (%s)", n.Name, val.TypeName())
		}
		super = sc
	}

	var class *Class
	if existing, ok := e.scopes.Lookup(n.Name); ok {
		if c, isClass := existing.(*Class); isClass {
			class = c
		}
	}
	if class == nil {
		class = NewClass(n.Name, super)
		e.scopes.Assign(n.Name, class)
	} else if n.Super != nil && class.Super != super {
		return e.newErrorWithStack(ErrTypeMisuse, "type %s reopened with a different supertype", n.Name)
	}

	e.pushDefTarget(defTarget{instance: class.InstanceScope, static: class.StaticScope})
	e.pushSelf(class)
	e.scopes.Push(class.StaticScope)
	result := e.evalBlock(n.Body)
	e.scopes.Pop()
	e.popSelf()
	e.popDefTarget()

	if isError(result) {
		return result
	}
	return class
}

// evalModuleDeclaration creates (or reopens) a module; defs and bindings
// both land in the module's scope.
func (e *Evaluator) evalModuleDeclaration(n *ast.ModuleDeclaration) Object {
	var mod *Module
	if existing, ok := e.scopes.Lookup(n.Name); ok {
		if m, isMod := existing.(*Module); isMod {
			mod = m
		}
	}
	if mod == nil {
		mod = NewModule(n.Name)
		e.scopes.Assign(n.Name, mod)
	}

	e.pushDefTarget(defTarget{instance: mod.Scope, static: mod.Scope})
	e.pushSelf(mod)
	e.scopes.Push(mod.Scope)
	result := e.evalBlock(n.Body)
	e.scopes.Pop()
	e.popSelf()
	e.popDefTarget()

	if isError(result) {
		return result
	}
	return mod
}

func (e *Evaluator) evalIncludeStatement(n *ast.IncludeStatement) Object {
	val := e.Eval(n.Module)
	if isError(val) {
		return val
	}
	mod, ok := val.(*Module)
	if !ok {
		return e.newErrorWithStack(ErrTypeMisuse, "cannot include %s, expected a module", val.TypeName())
	}

	switch container := e.currentSelf().(type) {
	case *Class:
		container.Include(mod)
	case *Module:
		container.Include(mod)
	default:
		return e.newErrorWithStack(ErrTypeMisuse, "include outside of a type or module body")
	}
	return mod
}

func (e *Evaluator) evalExtendStatement(n *ast.ExtendStatement) Object {
	val := e.Eval(n.Module)
	if isError(val) {
		return val
	}
	mod, ok := val.(*Module)
	if !ok {
		return e.newErrorWithStack(ErrTypeMisuse, "cannot extend with %s, expected a module", val.TypeName())
	}

	class, ok := e.currentSelf().(*Class)
	if !ok {
		return e.newErrorWithStack(ErrTypeMisuse, "extend outside of a type body")
	}
	class.Extend(mod)
	return mod
}
