package evaluator

import "testing"

func TestSymbolInterning(t *testing.T) {
	a1 := InternSymbol("alpha")
	a2 := InternSymbol("alpha")
	if a1 != a2 {
		t.Fatalf("two symbols with the same name are different objects")
	}
	if a1.ID != a2.ID {
		t.Fatalf("interned symbol ids differ: %d vs %d", a1.ID, a2.ID)
	}

	b := InternSymbol("beta")
	if b == a1 {
		t.Fatalf("distinct names interned to the same symbol")
	}
	if b.ID == a1.ID {
		t.Fatalf("distinct symbols share id %d", b.ID)
	}
}

func TestSymbolIdsMonotonic(t *testing.T) {
	first := InternSymbol("monotonic_first")
	second := InternSymbol("monotonic_second")
	if second.ID <= first.ID {
		t.Fatalf("ids not monotonic: %d then %d", first.ID, second.ID)
	}
}

func TestNilSingleton(t *testing.T) {
	e := New()
	result := e.Invoke("==", NIL, []Object{NIL}, nil)
	if result != TRUE {
		t.Fatalf("nil == nil evaluated to %s", result.Inspect())
	}
	if NIL.Truthy() {
		t.Fatalf("nil is truthy")
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		value  Object
		truthy bool
	}{
		{NIL, false},
		{FALSE, false},
		{TRUE, true},
		{&Integer{Value: 0}, true},
		{&Float{Value: 0}, true},
		{&String{Value: ""}, true},
		{InternSymbol("truthy_probe"), true},
		{NewList(nil), true},
		{NewMap(), true},
	}
	for _, tt := range tests {
		if tt.value.Truthy() != tt.truthy {
			t.Errorf("%s truthiness = %v, want %v", tt.value.Inspect(), tt.value.Truthy(), tt.truthy)
		}
	}
}

func TestPrimitivesCarryNoBindings(t *testing.T) {
	primitives := []Object{
		&Integer{Value: 1},
		&Float{Value: 1.5},
		TRUE,
		NIL,
		&String{Value: "s"},
		InternSymbol("bare"),
	}
	for _, p := range primitives {
		if _, ok := p.(BindingCarrier); ok {
			t.Errorf("%s unexpectedly carries bindings", p.TypeName())
		}
	}

	carriers := []Object{
		NewList(nil),
		NewMap(),
		NewFunctor("f"),
		NewModule("M"),
		NewClass("C", nil),
		NewInstance(NewClass("C", nil)),
	}
	for _, c := range carriers {
		if _, ok := c.(BindingCarrier); !ok {
			t.Errorf("%s does not carry bindings", c.TypeName())
		}
	}
}

func TestInspect(t *testing.T) {
	list := NewList([]Object{&Integer{Value: 1}, &String{Value: "x"}})
	if list.Inspect() != `[1, "x"]` {
		t.Errorf("list inspect = %s", list.Inspect())
	}

	m := NewMap()
	m.Entries = append(m.Entries, MapEntry{Key: InternSymbol("a"), Value: &Integer{Value: 1}})
	if m.Inspect() != "{:a => 1}" {
		t.Errorf("map inspect = %s", m.Inspect())
	}
}
