package evaluator

import (
	"fmt"
	"strconv"
)

// valueEquals compares two values through the language-level == operator.
// The second return carries a runtime error from re-entrant dispatch;
// native clauses must propagate it, never swallow it.
func (e *Evaluator) valueEquals(a, b Object) (bool, Object) {
	result := e.Invoke("==", a, []Object{b}, nil)
	if isError(result) {
		return false, result
	}
	return result.Truthy(), nil
}

// hostKey is the host-level identity of a value: primitives by content,
// heap values by pointer. Used only where the semantics call for host
// key sets (map subset), never as a substitute for dispatched ==.
func hostKey(o Object) string {
	switch v := o.(type) {
	case *Integer:
		return "i:" + strconv.FormatInt(v.Value, 10)
	case *Float:
		return "f:" + strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *Boolean:
		return "b:" + strconv.FormatBool(v.Value)
	case *Nil:
		return "nil"
	case *String:
		return "s:" + v.Value
	case *Symbol:
		return "y:" + v.Name
	default:
		return fmt.Sprintf("p:%p", o)
	}
}

func hostKeySet(m *Map) map[string]bool {
	set := make(map[string]bool, len(m.Entries))
	for _, entry := range m.Entries {
		set[hostKey(entry.Key)] = true
	}
	return set
}

// mapIndexOf finds the entry slot whose key dispatches equal to key.
// Returns -1 when absent; the second return is a propagated error.
func (e *Evaluator) mapIndexOf(m *Map, key Object) (int, Object) {
	for i, entry := range m.Entries {
		eq, err := e.valueEquals(entry.Key, key)
		if err != nil {
			return -1, err
		}
		if eq {
			return i, nil
		}
	}
	return -1, nil
}

// mapGet returns the value bound to key, or nil (the language value)
// when absent. Missing keys never raise.
func (e *Evaluator) mapGet(m *Map, key Object) Object {
	idx, err := e.mapIndexOf(m, key)
	if err != nil {
		return err
	}
	if idx < 0 {
		return NIL
	}
	return m.Entries[idx].Value
}

// mapSet binds key to value in place. A fresh key appends, preserving
// insertion order; an existing key keeps its slot.
func (e *Evaluator) mapSet(m *Map, key, value Object) Object {
	idx, err := e.mapIndexOf(m, key)
	if err != nil {
		return err
	}
	if idx >= 0 {
		m.Entries[idx].Value = value
		return nil
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
	return nil
}

// mapDelete removes the entry for key; later keys keep their relative
// order. Returns the removed value or nil.
func (e *Evaluator) mapDelete(m *Map, key Object) Object {
	idx, err := e.mapIndexOf(m, key)
	if err != nil {
		return err
	}
	if idx < 0 {
		return NIL
	}
	removed := m.Entries[idx].Value
	m.Entries = append(m.Entries[:idx], m.Entries[idx+1:]...)
	return removed
}

// displayString renders a value for program output: strings print raw,
// everything else via Inspect.
func displayString(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}
