package evaluator

import "testing"

func TestStdUuid(t *testing.T) {
	result := testEval(t, `Std.uuid()`)
	s, ok := result.(*String)
	if !ok {
		t.Fatalf("uuid returned %s", result.Inspect())
	}
	if len(s.Value) != 36 {
		t.Fatalf("uuid %q has length %d", s.Value, len(s.Value))
	}
	if s.Value[14] != '4' {
		t.Fatalf("uuid %q is not version 4", s.Value)
	}

	// Two draws differ.
	assertBoolean(t, testEval(t, `Std.uuid() != Std.uuid()`), true)
}

func TestStdUuidV5Deterministic(t *testing.T) {
	src := `
ns = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
Std.uuid_v5(ns, "rill") == Std.uuid_v5(ns, "rill")
`
	assertBoolean(t, testEval(t, src), true)

	src = `
ns = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
Std.uuid_v5(ns, "a") == Std.uuid_v5(ns, "b")
`
	assertBoolean(t, testEval(t, src), false)
}

func TestStdUuidV5BadNamespace(t *testing.T) {
	assertErrorKind(t, testEval(t, `Std.uuid_v5("nope", "x")`), ErrTypeMisuse)
}
