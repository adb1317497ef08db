package evaluator

import (
	"strings"
	"unicode/utf8"
)

func (e *Evaluator) registerStringBuiltins(stringClass *Class) {
	recvString := func(name string, self Object) (*String, Object) {
		s, ok := self.(*String)
		if !ok {
			return nil, newError(ErrTypeMisuse, "%s expects a string receiver, got %s", name, self.TypeName())
		}
		return s, nil
	}

	e.nativeMethod(stringClass, "+", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("+", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "+ expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "cannot concatenate %s to a string", args[0].TypeName())
		}
		return &String{Value: s.Value + other.Value}
	})

	e.nativeMethod(stringClass, "==", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("==", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "== expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*String)
		if !ok {
			return FALSE
		}
		return nativeBool(s.Value == other.Value)
	})

	strCmp := func(name string, test func(int) bool) NativeFn {
		return func(e *Evaluator, self Object, args []Object, block *Functor) Object {
			s, err := recvString(name, self)
			if err != nil {
				return err
			}
			if len(args) != 1 {
				return e.newErrorWithStack(ErrArityMismatch, "%s expects 1 argument, got %d", name, len(args))
			}
			other, ok := args[0].(*String)
			if !ok {
				return e.newErrorWithStack(ErrTypeMisuse, "%s is not defined between String and %s", name, args[0].TypeName())
			}
			return nativeBool(test(strings.Compare(s.Value, other.Value)))
		}
	}
	e.nativeMethod(stringClass, "<", strCmp("<", func(c int) bool { return c < 0 }))
	e.nativeMethod(stringClass, "<=", strCmp("<=", func(c int) bool { return c <= 0 }))
	e.nativeMethod(stringClass, ">", strCmp(">", func(c int) bool { return c > 0 }))
	e.nativeMethod(stringClass, ">=", strCmp(">=", func(c int) bool { return c >= 0 }))

	e.nativeMethod(stringClass, "size", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("size", self)
		if err != nil {
			return err
		}
		return &Integer{Value: int64(utf8.RuneCountInString(s.Value))}
	})

	e.nativeMethod(stringClass, "upcase", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("upcase", self)
		if err != nil {
			return err
		}
		return &String{Value: strings.ToUpper(s.Value)}
	})

	e.nativeMethod(stringClass, "downcase", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("downcase", self)
		if err != nil {
			return err
		}
		return &String{Value: strings.ToLower(s.Value)}
	})

	e.nativeMethod(stringClass, "contains?", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("contains?", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "contains? expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "contains? expects a string argument, got %s", args[0].TypeName())
		}
		return nativeBool(strings.Contains(s.Value, other.Value))
	})

	e.nativeMethod(stringClass, "split", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("split", self)
		if err != nil {
			return err
		}
		sep := " "
		if len(args) > 0 {
			sepArg, ok := args[0].(*String)
			if !ok {
				return e.newErrorWithStack(ErrTypeMisuse, "split expects a string separator, got %s", args[0].TypeName())
			}
			sep = sepArg.Value
		}
		parts := strings.Split(s.Value, sep)
		elements := make([]Object, len(parts))
		for i, part := range parts {
			elements[i] = &String{Value: part}
		}
		return NewList(elements)
	})

	e.nativeMethod(stringClass, "to_sym", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		s, err := recvString("to_sym", self)
		if err != nil {
			return err
		}
		return InternSymbol(s.Value)
	})
}
