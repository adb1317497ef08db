package evaluator

import (
	"strings"
	"testing"
)

func TestYamlParse(t *testing.T) {
	src := `
doc = Yaml.parse("name: rill\ncount: 3\nratio: 0.5\nenabled: true\nitems:\n  - a\n  - b\n")
doc["count"] + doc["items"].size
`
	assertInteger(t, testEval(t, src), 5)

	src = `Yaml.parse("plain scalar")`
	assertString(t, testEval(t, src), "plain scalar")

	src = `Yaml.parse("n: null")["n"]`
	if result := testEval(t, src); result != NIL {
		t.Fatalf("yaml null read %s", result.Inspect())
	}
}

func TestYamlParseError(t *testing.T) {
	assertErrorKind(t, testEval(t, `Yaml.parse("[unclosed")`), ErrRaised)
	assertErrorKind(t, testEval(t, `Yaml.parse(42)`), ErrTypeMisuse)
}

func TestYamlDump(t *testing.T) {
	result := testEval(t, `Yaml.dump({:name => "rill", :count => 3})`)
	s, ok := result.(*String)
	if !ok {
		t.Fatalf("dump returned %s", result.Inspect())
	}
	if !strings.Contains(s.Value, "name: rill") || !strings.Contains(s.Value, "count: 3") {
		t.Fatalf("dump output missing fields:\n%s", s.Value)
	}
}

func TestYamlRoundTrip(t *testing.T) {
	src := `
back = Yaml.parse(Yaml.dump({:a => [1, 2], :b => "x"}))
back["a"].size + back["a"][1]
`
	assertInteger(t, testEval(t, src), 4)
}
