package evaluator

import (
	"unicode/utf8"

	"github.com/rill-lang/rill/internal/config"
)

// registerBuiltins allocates a Type object for every built-in class in
// the kernel scope and installs the native clauses on their instance
// scopes, using the same mechanism user code uses to define methods.
// x + y therefore takes the same dispatch path whether x is a user
// instance or a Map.
func (e *Evaluator) registerBuiltins() {
	e.ObjectClass = NewClass("Object", nil)
	e.Kernel.Define("Object", e.ObjectClass)

	newBuiltin := func(name string, tag ObjectType) *Class {
		c := NewClass(name, e.ObjectClass)
		e.Kernel.Define(name, c)
		if tag != "" {
			e.classes[tag] = c
		}
		return c
	}

	integerClass := newBuiltin("Integer", INTEGER_OBJ)
	floatClass := newBuiltin("Float", FLOAT_OBJ)
	newBuiltin("Boolean", BOOLEAN_OBJ)
	stringClass := newBuiltin("String", STRING_OBJ)
	newBuiltin("Nil", NIL_OBJ)
	symbolClass := newBuiltin("Symbol", SYMBOL_OBJ)
	listClass := newBuiltin("List", LIST_OBJ)
	mapClass := newBuiltin("Map", MAP_OBJ)
	e.FunctorClass = newBuiltin("Functor", FUNCTOR_OBJ)
	e.ModuleClass = newBuiltin("Module", MODULE_OBJ)
	e.TypeClass = newBuiltin("Type", CLASS_OBJ)

	e.registerObjectBuiltins()
	e.registerNumericBuiltins(integerClass, floatClass)
	e.registerStringBuiltins(stringClass)
	e.registerSymbolBuiltins(symbolClass)
	e.registerListBuiltins(listClass)
	e.registerMapBuiltins(mapClass)
	e.registerFunctorBuiltins(e.FunctorClass)
	e.registerTypeBuiltins(e.TypeClass, e.ModuleClass)

	e.registerKernelFns()
	e.registerYamlModule()
	e.registerStdModule()
	e.registerDbModule()
	e.registerProtoModules()
}

// nativeMethod appends a native clause to the functor bound under name
// in the class's instance scope, creating the functor when absent.
func (e *Evaluator) nativeMethod(class *Class, name string, fn NativeFn) {
	installNative(class.InstanceScope, name, fn)
}

func (e *Evaluator) nativeStaticMethod(class *Class, name string, fn NativeFn) {
	installNative(class.StaticScope, name, fn)
}

func installNative(scope *Scope, name string, fn NativeFn) {
	var functor *Functor
	if existing, ok := scope.GetLocal(name); ok {
		if f, isFn := existing.(*Functor); isFn {
			functor = f
		}
	}
	if functor == nil {
		functor = NewFunctor(name)
		scope.Define(name, functor)
	}
	functor.AddClause(nativeClause(fn))
}

// kernelFn binds a top-level native functor in the kernel scope.
func (e *Evaluator) kernelFn(name string, fn NativeFn) {
	installNative(e.Kernel, name, fn)
}

// kernelModule allocates a named module in the kernel scope; prelude
// groups like Yaml and Db hang their natives off one.
func (e *Evaluator) kernelModule(name string) *Module {
	m := NewModule(name)
	e.Kernel.Define(name, m)
	return m
}

func (e *Evaluator) moduleFn(m *Module, name string, fn NativeFn) {
	installNative(m.Scope, name, fn)
}

func (e *Evaluator) registerKernelFns() {
	e.kernelFn(config.PutsFuncName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		for _, arg := range args {
			if _, err := e.Out.Write([]byte(displayString(arg) + "\n")); err != nil {
				return e.newErrorWithStack(ErrRaised, "write failed: %v", err)
			}
		}
		if len(args) == 0 {
			e.Out.Write([]byte("\n"))
		}
		return NIL
	})

	e.kernelFn(config.PrintFuncName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		for _, arg := range args {
			if _, err := e.Out.Write([]byte(displayString(arg))); err != nil {
				return e.newErrorWithStack(ErrRaised, "write failed: %v", err)
			}
		}
		return NIL
	})

	e.kernelFn(config.LenFuncName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "len expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case *String:
			return &Integer{Value: int64(utf8.RuneCountInString(v.Value))}
		case *List:
			return &Integer{Value: int64(len(v.Elements))}
		case *Map:
			return &Integer{Value: int64(len(v.Entries))}
		default:
			return e.newErrorWithStack(ErrTypeMisuse, "len does not apply to %s", args[0].TypeName())
		}
	})

	e.kernelFn(config.TypeOfFuncName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "type_of expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case *Instance:
			return v.Class
		case *Class:
			return e.TypeClass
		case *Module:
			return e.ModuleClass
		default:
			return e.classFor(args[0])
		}
	})

	e.kernelFn(config.RaiseFuncName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		msg := "error raised"
		if len(args) > 0 {
			msg = displayString(args[0])
		}
		return e.newErrorWithStack(ErrRaised, "%s", msg)
	})
}
