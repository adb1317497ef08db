package evaluator

import "math"

// numericPair widens the receiver/argument pair: two integers stay
// integral, any float promotes both.
func numericPair(a, b Object) (int64, int64, float64, float64, bool, bool) {
	switch av := a.(type) {
	case *Integer:
		switch bv := b.(type) {
		case *Integer:
			return av.Value, bv.Value, 0, 0, true, true
		case *Float:
			return 0, 0, float64(av.Value), bv.Value, false, true
		}
	case *Float:
		switch bv := b.(type) {
		case *Integer:
			return 0, 0, av.Value, float64(bv.Value), false, true
		case *Float:
			return 0, 0, av.Value, bv.Value, false, true
		}
	}
	return 0, 0, 0, 0, false, false
}

func (e *Evaluator) registerNumericBuiltins(integerClass, floatClass *Class) {
	arith := func(name string, intOp func(int64, int64) Object, floatOp func(float64, float64) Object) NativeFn {
		return func(e *Evaluator, self Object, args []Object, block *Functor) Object {
			if len(args) != 1 {
				return e.newErrorWithStack(ErrArityMismatch, "%s expects 1 argument, got %d", name, len(args))
			}
			ai, bi, af, bf, isInt, ok := numericPair(self, args[0])
			if !ok {
				return e.newErrorWithStack(ErrTypeMisuse, "%s is not defined between %s and %s", name, self.TypeName(), args[0].TypeName())
			}
			if isInt {
				return intOp(ai, bi)
			}
			return floatOp(af, bf)
		}
	}

	add := arith("+",
		func(a, b int64) Object { return &Integer{Value: a + b} },
		func(a, b float64) Object { return &Float{Value: a + b} })
	sub := arith("-",
		func(a, b int64) Object { return &Integer{Value: a - b} },
		func(a, b float64) Object { return &Float{Value: a - b} })
	mul := arith("*",
		func(a, b int64) Object { return &Integer{Value: a * b} },
		func(a, b float64) Object { return &Float{Value: a * b} })

	div := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "/ expects 1 argument, got %d", len(args))
		}
		ai, bi, af, bf, isInt, ok := numericPair(self, args[0])
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "/ is not defined between %s and %s", self.TypeName(), args[0].TypeName())
		}
		if isInt {
			if bi == 0 {
				return e.newErrorWithStack(ErrTypeMisuse, "integer division by zero")
			}
			return &Integer{Value: ai / bi}
		}
		return &Float{Value: af / bf}
	}

	mod := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "%% expects 1 argument, got %d", len(args))
		}
		a, aOk := self.(*Integer)
		b, bOk := args[0].(*Integer)
		if !aOk || !bOk {
			return e.newErrorWithStack(ErrTypeMisuse, "%% is only defined between integers")
		}
		if b.Value == 0 {
			return e.newErrorWithStack(ErrTypeMisuse, "integer modulo by zero")
		}
		return &Integer{Value: a.Value % b.Value}
	}

	cmp := func(name string, test func(int) bool) NativeFn {
		return func(e *Evaluator, self Object, args []Object, block *Functor) Object {
			if len(args) != 1 {
				return e.newErrorWithStack(ErrArityMismatch, "%s expects 1 argument, got %d", name, len(args))
			}
			ai, bi, af, bf, isInt, ok := numericPair(self, args[0])
			if !ok {
				return e.newErrorWithStack(ErrTypeMisuse, "%s is not defined between %s and %s", name, self.TypeName(), args[0].TypeName())
			}
			var c int
			if isInt {
				switch {
				case ai < bi:
					c = -1
				case ai > bi:
					c = 1
				}
			} else {
				switch {
				case af < bf:
					c = -1
				case af > bf:
					c = 1
				}
			}
			return nativeBool(test(c))
		}
	}

	eq := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "== expects 1 argument, got %d", len(args))
		}
		ai, bi, af, bf, isInt, ok := numericPair(self, args[0])
		if !ok {
			return FALSE
		}
		if isInt {
			return nativeBool(ai == bi)
		}
		return nativeBool(af == bf)
	}

	toF := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		switch v := self.(type) {
		case *Integer:
			return &Float{Value: float64(v.Value)}
		case *Float:
			return v
		}
		return e.newErrorWithStack(ErrTypeMisuse, "to_f expects a numeric receiver, got %s", self.TypeName())
	}

	toI := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		switch v := self.(type) {
		case *Integer:
			return v
		case *Float:
			return &Integer{Value: int64(v.Value)}
		}
		return e.newErrorWithStack(ErrTypeMisuse, "to_i expects a numeric receiver, got %s", self.TypeName())
	}

	abs := func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		switch v := self.(type) {
		case *Integer:
			if v.Value < 0 {
				return &Integer{Value: -v.Value}
			}
			return v
		case *Float:
			return &Float{Value: math.Abs(v.Value)}
		}
		return e.newErrorWithStack(ErrTypeMisuse, "abs expects a numeric receiver, got %s", self.TypeName())
	}

	for _, class := range []*Class{integerClass, floatClass} {
		e.nativeMethod(class, "+", add)
		e.nativeMethod(class, "-", sub)
		e.nativeMethod(class, "*", mul)
		e.nativeMethod(class, "/", div)
		e.nativeMethod(class, "==", eq)
		e.nativeMethod(class, "<", cmp("<", func(c int) bool { return c < 0 }))
		e.nativeMethod(class, "<=", cmp("<=", func(c int) bool { return c <= 0 }))
		e.nativeMethod(class, ">", cmp(">", func(c int) bool { return c > 0 }))
		e.nativeMethod(class, ">=", cmp(">=", func(c int) bool { return c >= 0 }))
		e.nativeMethod(class, "to_f", toF)
		e.nativeMethod(class, "to_i", toI)
		e.nativeMethod(class, "abs", abs)
	}
	e.nativeMethod(integerClass, "%", mod)
}
