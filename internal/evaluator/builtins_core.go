package evaluator

import (
	"strings"

	"github.com/rill-lang/rill/internal/config"
)

// registerObjectBuiltins installs the object-level methods every value
// inherits: default equality, type introspection and the ivar snapshot.
func (e *Evaluator) registerObjectBuiltins() {
	// Default == is host sameness: primitives by content, heap values
	// by identity. Built-in containers and user types override it.
	e.nativeMethod(e.ObjectClass, "==", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "== expects 1 argument, got %d", len(args))
		}
		return nativeBool(hostKey(self) == hostKey(args[0]))
	})

	// != negates the dispatched ==, so user-defined equality carries over.
	e.nativeMethod(e.ObjectClass, "!=", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "!= expects 1 argument, got %d", len(args))
		}
		eq, err := e.valueEquals(self, args[0])
		if err != nil {
			return err
		}
		return nativeBool(!eq)
	})

	e.nativeMethod(e.ObjectClass, "type_name", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		return &String{Value: self.TypeName()}
	})

	e.nativeMethod(e.ObjectClass, "inspect", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		return &String{Value: self.Inspect()}
	})

	e.nativeMethod(e.ObjectClass, "hash", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		return &Integer{Value: int64(self.Hash())}
	})

	e.nativeMethod(e.ObjectClass, "truthy?", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		return nativeBool(self.Truthy())
	})

	// ivars snapshots the receiver's @-prefixed bindings as a Map keyed by
	// symbols named without the @; other bindings (methods) are skipped.
	// Primitives carry no bindings; reading theirs is fatal.
	e.nativeMethod(e.ObjectClass, "ivars", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		carrier, ok := self.(BindingCarrier)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "%s values cannot carry instance variables", self.TypeName())
		}
		snapshot := NewMap()
		bindings := carrier.Bindings()
		for _, name := range bindings.Names() {
			if !strings.HasPrefix(name, "@") {
				continue
			}
			val, _ := bindings.GetLocal(name)
			snapshot.Entries = append(snapshot.Entries, MapEntry{Key: InternSymbol(name[1:]), Value: val})
		}
		return snapshot
	})
}

func (e *Evaluator) registerSymbolBuiltins(symbolClass *Class) {
	e.nativeMethod(symbolClass, "name", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		sym, ok := self.(*Symbol)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "name expects a symbol receiver, got %s", self.TypeName())
		}
		return &String{Value: sym.Name}
	})

	e.nativeMethod(symbolClass, "id", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		sym, ok := self.(*Symbol)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "id expects a symbol receiver, got %s", self.TypeName())
		}
		return &Integer{Value: sym.ID}
	})
}

func (e *Evaluator) registerFunctorBuiltins(functorClass *Class) {
	e.nativeMethod(functorClass, config.CallMethodName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		fn, ok := self.(*Functor)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "call expects a functor receiver, got %s", self.TypeName())
		}
		return e.applyFunctor(fn, fn.ClosedSelf, args, block)
	})

	e.nativeMethod(functorClass, "arity", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		fn, ok := self.(*Functor)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "arity expects a functor receiver, got %s", self.TypeName())
		}
		if len(fn.Clauses) == 0 {
			return &Integer{Value: 0}
		}
		c := fn.Clauses[0]
		if c.IsNative() || c.SplatIndex >= 0 {
			return &Integer{Value: -1}
		}
		return &Integer{Value: int64(len(c.Params))}
	})

	e.nativeMethod(functorClass, "clauses", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		fn, ok := self.(*Functor)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "clauses expects a functor receiver, got %s", self.TypeName())
		}
		return &Integer{Value: int64(len(fn.Clauses))}
	})
}

func (e *Evaluator) registerTypeBuiltins(typeClass, moduleClass *Class) {
	// new allocates an instance whose scope parents the type's instance
	// scope, then dispatches init when the chain defines one.
	e.nativeMethod(typeClass, config.NewMethodName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		class, ok := self.(*Class)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "new expects a type receiver, got %s", self.TypeName())
		}
		inst := NewInstance(class)
		if init := e.lookupMethod(inst, config.InitMethodName); init != nil {
			if result := e.applyFunctor(init, inst, args, block); isError(result) {
				return result
			}
		} else if len(args) > 0 {
			return e.newErrorWithStack(ErrArityMismatch, "%s has no init, yet new was given %d arguments", class.Name, len(args))
		}
		return inst
	})

	e.nativeMethod(typeClass, "name", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		class, ok := self.(*Class)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "name expects a type receiver, got %s", self.TypeName())
		}
		return &String{Value: class.Name}
	})

	e.nativeMethod(typeClass, "ancestors", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		class, ok := self.(*Class)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "ancestors expects a type receiver, got %s", self.TypeName())
		}
		return NewList(class.Ancestors())
	})

	e.nativeMethod(moduleClass, "name", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		mod, ok := self.(*Module)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "name expects a module receiver, got %s", self.TypeName())
		}
		return &String{Value: mod.Name}
	})
}
