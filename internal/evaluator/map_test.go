package evaluator

import "testing"

func TestEmptyMapsEqual(t *testing.T) {
	assertBoolean(t, testEval(t, `{} == {}`), true)
}

func TestMapSize(t *testing.T) {
	assertInteger(t, testEval(t, `{:a => 1, :b => 2}.size`), 2)
}

// Merge is right-biased: the argument wins on key collision.
func TestMapMerge(t *testing.T) {
	assertInteger(t, testEval(t, `({:a => 1} + {:a => 2, :b => 3})[:a]`), 2)
	assertInteger(t, testEval(t, `({:a => 1} + {:b => 3})[:a]`), 1)
	assertInteger(t, testEval(t, `({:a => 1} + {:a => 2, :b => 3}).size`), 2)

	// Merge builds a fresh map; the receiver is untouched.
	src := `
a = {:a => 1}
a + {:a => 9}
a[:a]
`
	assertInteger(t, testEval(t, src), 1)
}

// Absent keys read nil, never raise.
func TestMapMissingKey(t *testing.T) {
	if result := testEval(t, `{:a => 1}[:missing]`); result != NIL {
		t.Fatalf("missing key read %s", result.Inspect())
	}
}

func TestMapIndexAssign(t *testing.T) {
	src := `
x = {:a => 1}
x[:b] = 2
x.size
`
	assertInteger(t, testEval(t, src), 2)

	// []= returns the assigned value.
	assertInteger(t, testEval(t, `{}[:k] = 7`), 7)

	// Re-binding an existing key keeps its slot.
	src = `
x = {:a => 1, :b => 2}
x[:a] = 10
x.keys[0].name
`
	assertString(t, testEval(t, src), "a")
}

// each visits entries in insertion order and returns the receiver.
func TestMapEachOrderAndReceiver(t *testing.T) {
	e := New()
	src := `
seen = []
m = {:a => 1, :b => 2, :c => 3}
result = m.each { |k, v| seen.push(k.name) }
seen.join(",")
`
	assertString(t, testEvalOn(t, e, src), "a,b,c")

	src = `
m = {:a => 1}
m.each { |k, v| v } == m
`
	assertBoolean(t, testEval(t, src), true)
}

func TestMapInsertionOrderSurvivesAssignments(t *testing.T) {
	src := `
m = {}
m[:first] = 1
m[:second] = 2
m[:third] = 3
m.keys.map { |k| k.name }.join(",")
`
	assertString(t, testEval(t, src), "first,second,third")
}

func TestMapEqualityIsPositional(t *testing.T) {
	assertBoolean(t, testEval(t, `{:a => 1, :b => 2} == {:a => 1, :b => 2}`), true)
	assertBoolean(t, testEval(t, `{:a => 1} == {:a => 2}`), false)
	assertBoolean(t, testEval(t, `{:a => 1} == {:b => 1}`), false)
	// The key sequences are compared position by position.
	assertBoolean(t, testEval(t, `{:a => 1, :b => 2} == {:b => 2, :a => 1}`), false)
}

// != short-circuits to true on equal keys at the same position; see the
// note in builtins_map.go. The empty-map case still reports false.
func TestMapNotEqOddity(t *testing.T) {
	assertBoolean(t, testEval(t, `{} != {}`), false)
	assertBoolean(t, testEval(t, `{:a => 1} != {:a => 1}`), true)
	assertBoolean(t, testEval(t, `{:a => 1} != {:a => 1, :b => 2}`), true)
}

// Subset operators compare key sets by host identity.
func TestMapSubset(t *testing.T) {
	assertBoolean(t, testEval(t, `{:a => 1} <= {:a => 9, :b => 2}`), true)
	assertBoolean(t, testEval(t, `{:a => 1, :c => 1} <= {:a => 9, :b => 2}`), false)
	assertBoolean(t, testEval(t, `{} <= {}`), true)

	assertBoolean(t, testEval(t, `{:a => 1} < {:a => 1, :b => 2}`), true)
	assertBoolean(t, testEval(t, `{:a => 1, :b => 2} < {:a => 1, :b => 2}`), false)
	assertBoolean(t, testEval(t, `{} < {:a => 1}`), true)
}

func TestMapKeysValuesDelete(t *testing.T) {
	assertInteger(t, testEval(t, `{:a => 1, :b => 2}.values[1]`), 2)
	assertInteger(t, testEval(t, `
m = {:a => 1, :b => 2, :c => 3}
m.delete(:b)
m.size
`), 2)
	assertString(t, testEval(t, `
m = {:a => 1, :b => 2, :c => 3}
m.delete(:b)
m.keys.map { |k| k.name }.join(",")
`), "a,c")
}

// Non-symbol keys go through dispatched ==, so equal strings and equal
// numbers collide as expected.
func TestMapDispatchedKeyEquality(t *testing.T) {
	assertInteger(t, testEval(t, `
m = {}
m["key"] = 1
m["key"] = 2
m.size
`), 1)
	assertInteger(t, testEval(t, `{1 => "a"}[1.0] == "a"
{1 => "a"}.size`), 1)

	// Duplicate keys inside a literal collapse onto the first slot.
	assertInteger(t, testEval(t, `{:k => 1, :k => 2}.size`), 1)
	assertInteger(t, testEval(t, `{:k => 1, :k => 2}[:k]`), 2)
}

func TestMapLiteralOrder(t *testing.T) {
	assertString(t, testEval(t, `{:z => 1, :a => 2, :m => 3}.keys.map { |k| k.name }.join(",")`), "z,a,m")
}
