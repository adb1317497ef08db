package evaluator

import "github.com/rill-lang/rill/internal/config"

// Map operations. Equality walks the receiver's key sequence in order
// and compares keys and values through dispatched ==. The subset
// operators deliberately compare key sets by host identity instead;
// scripts have come to rely on both behaviors.
func (e *Evaluator) registerMapBuiltins(mapClass *Class) {
	recvMap := func(name string, self Object) (*Map, Object) {
		m, ok := self.(*Map)
		if !ok {
			return nil, newError(ErrTypeMisuse, "%s expects a map receiver, got %s", name, self.TypeName())
		}
		return m, nil
	}
	argMap := func(e *Evaluator, name string, args []Object) (*Map, Object) {
		if len(args) != 1 {
			return nil, e.newErrorWithStack(ErrArityMismatch, "%s expects 1 argument, got %d", name, len(args))
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, nil
		}
		return m, nil
	}

	e.nativeMethod(mapClass, "==", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("==", self)
		if err != nil {
			return err
		}
		other, errObj := argMap(e, "==", args)
		if errObj != nil {
			return errObj
		}
		if other == nil {
			return FALSE
		}
		if len(m.Entries) != len(other.Entries) {
			return FALSE
		}
		for i, entry := range m.Entries {
			keyEq, keyErr := e.valueEquals(entry.Key, other.Entries[i].Key)
			if keyErr != nil {
				return keyErr
			}
			if !keyEq {
				return FALSE
			}
			valEq, valErr := e.valueEquals(entry.Value, other.Entries[i].Value)
			if valErr != nil {
				return valErr
			}
			if !valEq {
				return FALSE
			}
		}
		return TRUE
	})

	e.nativeMethod(mapClass, "!=", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("!=", self)
		if err != nil {
			return err
		}
		other, errObj := argMap(e, "!=", args)
		if errObj != nil {
			return errObj
		}
		if other == nil {
			return TRUE
		}
		if len(m.Entries) != len(other.Entries) {
			return TRUE
		}
		for i, entry := range m.Entries {
			keyEq, keyErr := e.valueEquals(entry.Key, other.Entries[i].Key)
			if keyErr != nil {
				return keyErr
			}
			if keyEq {
				// TODO: equal keys at the same position short-circuit to
				// true here, which makes != disagree with !(a == b) for
				// any non-empty equal maps. Preserved because existing
				// scripts depend on it; fix alongside a compat flag.
				return TRUE
			}
			valEq, valErr := e.valueEquals(entry.Value, other.Entries[i].Value)
			if valErr != nil {
				return valErr
			}
			if !valEq {
				return TRUE
			}
		}
		return FALSE
	})

	// Subset: host-identity key sets, not dispatched ==.
	e.nativeMethod(mapClass, "<=", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("<=", self)
		if err != nil {
			return err
		}
		other, errObj := argMap(e, "<=", args)
		if errObj != nil {
			return errObj
		}
		if other == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "<= expects a map argument, got %s", args[0].TypeName())
		}
		return nativeBool(mapKeySubset(m, other))
	})

	e.nativeMethod(mapClass, "<", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("<", self)
		if err != nil {
			return err
		}
		other, errObj := argMap(e, "<", args)
		if errObj != nil {
			return errObj
		}
		if other == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "< expects a map argument, got %s", args[0].TypeName())
		}
		return nativeBool(mapKeySubset(m, other) && !mapKeySubset(other, m))
	})

	// Indexing reads nil for absent keys, never raises.
	e.nativeMethod(mapClass, "[]", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("[]", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "[] expects 1 argument, got %d", len(args))
		}
		return e.mapGet(m, args[0])
	})

	e.nativeMethod(mapClass, "[]=", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("[]=", self)
		if err != nil {
			return err
		}
		if len(args) != 2 {
			return e.newErrorWithStack(ErrArityMismatch, "[]= expects 2 arguments, got %d", len(args))
		}
		if errObj := e.mapSet(m, args[0], args[1]); errObj != nil {
			return errObj
		}
		return args[1]
	})

	// Merge builds a new map: receiver entries overlaid with the
	// argument's, the argument winning on key collision.
	e.nativeMethod(mapClass, "+", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("+", self)
		if err != nil {
			return err
		}
		other, errObj := argMap(e, "+", args)
		if errObj != nil {
			return errObj
		}
		if other == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "+ expects a map argument, got %s", args[0].TypeName())
		}
		merged := NewMap()
		for _, entry := range m.Entries {
			if errObj := e.mapSet(merged, entry.Key, entry.Value); errObj != nil {
				return errObj
			}
		}
		for _, entry := range other.Entries {
			if errObj := e.mapSet(merged, entry.Key, entry.Value); errObj != nil {
				return errObj
			}
		}
		return merged
	})

	e.nativeMethod(mapClass, "size", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("size", self)
		if err != nil {
			return err
		}
		return &Integer{Value: int64(len(m.Entries))}
	})

	// each visits (key, value) in insertion order and returns the
	// receiver, with or without a block.
	e.nativeMethod(mapClass, config.EachMethodName, func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("each", self)
		if err != nil {
			return err
		}
		if block != nil {
			for _, entry := range m.Entries {
				if result := e.CallBlock(block, []Object{entry.Key, entry.Value}); isError(result) {
					return result
				}
			}
		}
		return m
	})

	e.nativeMethod(mapClass, "keys", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("keys", self)
		if err != nil {
			return err
		}
		return NewList(m.Keys())
	})

	e.nativeMethod(mapClass, "values", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("values", self)
		if err != nil {
			return err
		}
		values := make([]Object, len(m.Entries))
		for i, entry := range m.Entries {
			values[i] = entry.Value
		}
		return NewList(values)
	})

	e.nativeMethod(mapClass, "delete", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		m, err := recvMap("delete", self)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "delete expects 1 argument, got %d", len(args))
		}
		return e.mapDelete(m, args[0])
	})
}

// mapKeySubset: every receiver key appears in other's key set, by host
// identity.
func mapKeySubset(m, other *Map) bool {
	otherKeys := hostKeySet(other)
	for _, entry := range m.Entries {
		if !otherKeys[hostKey(entry.Key)] {
			return false
		}
	}
	return true
}
