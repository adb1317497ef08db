package evaluator

import (
	"strings"

	"github.com/rill-lang/rill/internal/config"
)

func (e *Evaluator) registerListBuiltins(listClass *Class) {
	recvList := func(name string, self Object) (*List, Object) {
		l, ok := self.(*List)
		if !ok {
			return nil, newError(ErrTypeMisuse, "%s expects a list receiver, got %s", name, self.TypeName())
		}
		return l, nil
	}

	e.nativeMethod(listClass, "push", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("push", self)
		if err != nil {
			return err
		}
		l.Elements = append(l.Elements, args...)
		return l
	})

	e.nativeMethod(listClass, "pop", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("pop", self)
		if err != nil {
			return err
		}
		if len(l.Elements) == 0 {
			return NIL
		}
		last := l.Elements[len(l.Elements)-1]
		l.Elements = l.Elements[:len(l.Elements)-1]
		return last
	})

	e.nativeMethod(listClass, "size", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("size", self)
		if err != nil {
			return err
		}
		return &Integer{Value: int64(len(l.Elements))}
	})

	// Indexing: negative counts from the end; out of range reads nil.
	e.nativeMethod(listClass, "[]", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("[]", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "[] expects 1 argument, got %d", len(args))
		}
		idx, ok := args[0].(*Integer)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "list index must be an integer, got %s", args[0].TypeName())
		}
		i := idx.Value
		if i < 0 {
			i += int64(len(l.Elements))
		}
		if i < 0 || i >= int64(len(l.Elements)) {
			return NIL
		}
		return l.Elements[i]
	})

	e.nativeMethod(listClass, "[]=", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("[]=", self)
		if err != nil {
			return err
		}
		if len(args) != 2 {
			return e.newErrorWithStack(ErrArityMismatch, "[]= expects 2 arguments, got %d", len(args))
		}
		idx, ok := args[0].(*Integer)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "list index must be an integer, got %s", args[0].TypeName())
		}
		i := idx.Value
		if i < 0 {
			i += int64(len(l.Elements))
		}
		if i < 0 || i >= int64(len(l.Elements)) {
			return e.newErrorWithStack(ErrIndex, "list index %d out of range (size %d)", idx.Value, len(l.Elements))
		}
		l.Elements[i] = args[1]
		return args[1]
	})

	e.nativeMethod(listClass, "+", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("+", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "+ expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*List)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "cannot concatenate %s to a list", args[0].TypeName())
		}
		elements := make([]Object, 0, len(l.Elements)+len(other.Elements))
		elements = append(elements, l.Elements...)
		elements = append(elements, other.Elements...)
		return NewList(elements)
	})

	// Equality: same length, pairwise dispatched ==.
	e.nativeMethod(listClass, "==", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("==", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "== expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*List)
		if !ok {
			return FALSE
		}
		if len(l.Elements) != len(other.Elements) {
			return FALSE
		}
		for i, el := range l.Elements {
			eq, errObj := e.valueEquals(el, other.Elements[i])
			if errObj != nil {
				return errObj
			}
			if !eq {
				return FALSE
			}
		}
		return TRUE
	})

	e.nativeMethod(listClass, config.EachMethodName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("each", self)
		if err != nil {
			return err
		}
		if block != nil {
			for _, el := range l.Elements {
				if result := e.CallBlock(block, []Object{el}); isError(result) {
					return result
				}
			}
		}
		return l
	})

	e.nativeMethod(listClass, "map", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("map", self)
		if err != nil {
			return err
		}
		if block == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "map requires a block")
		}
		elements := make([]Object, 0, len(l.Elements))
		for _, el := range l.Elements {
			result := e.CallBlock(block, []Object{el})
			if isError(result) {
				return result
			}
			elements = append(elements, result)
		}
		return NewList(elements)
	})

	e.nativeMethod(listClass, "contains?", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("contains?", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "contains? expects 1 argument, got %d", len(args))
		}
		for _, el := range l.Elements {
			eq, errObj := e.valueEquals(el, args[0])
			if errObj != nil {
				return errObj
			}
			if eq {
				return TRUE
			}
		}
		return FALSE
	})

	e.nativeMethod(listClass, "join", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		l, err := recvList("join", self)
		if err != nil {
			return err
		}
		sep := ""
		if len(args) > 0 {
			sepArg, ok := args[0].(*String)
			if !ok {
				return e.newErrorWithStack(ErrTypeMisuse, "join expects a string separator, got %s", args[0].TypeName())
			}
			sep = sepArg.Value
		}
		parts := make([]string, len(l.Elements))
		for i, el := range l.Elements {
			parts[i] = displayString(el)
		}
		return &String{Value: strings.Join(parts, sep)}
	})
}
