package evaluator

import "strings"

// List: ordered, mutable sequence.
type List struct {
	Elements []Object
	bindings *Scope
}

func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) TypeName() string { return "List" }
func (l *List) Truthy() bool     { return true }

func (l *List) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) Hash() uint32 {
	h := uint32(2166136261)
	for _, el := range l.Elements {
		h = h*16777619 ^ el.Hash()
	}
	return h
}

func (l *List) Bindings() *Scope {
	if l.bindings == nil {
		l.bindings = NewScope()
	}
	return l.bindings
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Object
	Value Object
}

// Map: ordered mapping; entries keep insertion order of currently-present
// keys. Key lookup goes through the language-level == operator, so all
// positional operations live on the evaluator (mapIndexOf and friends)
// rather than here.
type Map struct {
	Entries  []MapEntry
	bindings *Scope
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) TypeName() string { return "Map" }
func (m *Map) Truthy() bool     { return true }

func (m *Map) Inspect() string {
	var out strings.Builder
	out.WriteString("{")
	for i, entry := range m.Entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(entry.Key.Inspect())
		out.WriteString(" => ")
		out.WriteString(entry.Value.Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) Hash() uint32 {
	h := uint32(2166136261)
	for _, entry := range m.Entries {
		h = h*16777619 ^ entry.Key.Hash()
		h = h*16777619 ^ entry.Value.Hash()
	}
	return h
}

func (m *Map) Bindings() *Scope {
	if m.bindings == nil {
		m.bindings = NewScope()
	}
	return m.bindings
}

// Keys returns the key sequence in insertion order.
func (m *Map) Keys() []Object {
	out := make([]Object, len(m.Entries))
	for i, entry := range m.Entries {
		out[i] = entry.Key
	}
	return out
}
