package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
)

func testEval(t *testing.T, src string) Object {
	t.Helper()
	return testEvalOn(t, New(), src)
}

func testEvalOn(t *testing.T, e *Evaluator, src string) Object {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, err := range p.Errors {
			t.Errorf("parser error: %s", err.Error())
		}
		t.FailNow()
	}
	return e.Eval(program)
}

func assertInteger(t *testing.T, obj Object, want int64) {
	t.Helper()
	i, ok := obj.(*Integer)
	if !ok {
		t.Fatalf("object is %s (%s), not Integer", obj.TypeName(), obj.Inspect())
	}
	if i.Value != want {
		t.Fatalf("got %d, want %d", i.Value, want)
	}
}

func assertBoolean(t *testing.T, obj Object, want bool) {
	t.Helper()
	b, ok := obj.(*Boolean)
	if !ok {
		t.Fatalf("object is %s (%s), not Boolean", obj.TypeName(), obj.Inspect())
	}
	if b.Value != want {
		t.Fatalf("got %t, want %t", b.Value, want)
	}
}

func assertString(t *testing.T, obj Object, want string) {
	t.Helper()
	s, ok := obj.(*String)
	if !ok {
		t.Fatalf("object is %s (%s), not String", obj.TypeName(), obj.Inspect())
	}
	if s.Value != want {
		t.Fatalf("got %q, want %q", s.Value, want)
	}
}

func assertErrorKind(t *testing.T, obj Object, kind ErrorKind) {
	t.Helper()
	err, ok := obj.(*RuntimeError)
	if !ok {
		t.Fatalf("object is %s (%s), not an error", obj.TypeName(), obj.Inspect())
	}
	if err.Kind != kind {
		t.Fatalf("error kind = %q (%s), want %q", err.Kind, err.Message, kind)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 / 2", 8},
		{"10 % 3", 1},
		{"-5 + 3", -2},
		{"2 * -3", -6},
	}
	for _, tt := range tests {
		assertInteger(t, testEval(t, tt.input), tt.want)
	}
}

func TestFloatPromotion(t *testing.T) {
	result := testEval(t, "1 + 2.5")
	f, ok := result.(*Float)
	if !ok || f.Value != 3.5 {
		t.Fatalf("1 + 2.5 = %s", result.Inspect())
	}
}

func TestComparisonAndLogic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"1 == 1.0", true},
		{`"abc" == "abc"`, true},
		{`"abc" < "abd"`, true},
		{":a == :a", true},
		{":a == :b", false},
		{"nil == nil", true},
		{"nil == false", false},
		{"true && false", false},
		{"true || false", true},
		{"!nil", true},
		{"!0", false},
		{"[1, 2] == [1, 2]", true},
		{"[1, 2] == [2, 1]", false},
		{"1 != 2", true},
	}
	for _, tt := range tests {
		result := testEval(t, tt.input)
		b, ok := result.(*Boolean)
		if !ok {
			t.Fatalf("%s = %s, not Boolean", tt.input, result.Inspect())
		}
		if b.Value != tt.want {
			t.Errorf("%s = %t, want %t", tt.input, b.Value, tt.want)
		}
	}
}

// Short-circuit operators return an operand, not a coerced boolean.
func TestLogicReturnsOperand(t *testing.T) {
	assertInteger(t, testEval(t, "nil || 5"), 5)
	result := testEval(t, "nil && 5")
	if result != NIL {
		t.Fatalf("nil && 5 = %s", result.Inspect())
	}
}

func TestStringBuiltins(t *testing.T) {
	assertString(t, testEval(t, `"foo" + "bar"`), "foobar")
	assertInteger(t, testEval(t, `"héllo".size`), 5)
	assertString(t, testEval(t, `"shout".upcase`), "SHOUT")
	assertBoolean(t, testEval(t, `"haystack".contains?("stack")`), true)
	assertInteger(t, testEval(t, `"a,b,c".split(",").size`), 3)
	result := testEval(t, `"alpha".to_sym`)
	if result != InternSymbol("alpha") {
		t.Fatalf("to_sym did not intern: %s", result.Inspect())
	}
}

func TestAssignmentSemantics(t *testing.T) {
	// Inner assignment to an existing name mutates the nearest
	// enclosing definition; closures observe the mutation.
	src := `
x = 1
bump = fn()
  x = x + 10
end
bump.call()
bump.call()
x
`
	assertInteger(t, testEval(t, src), 21)
}

func TestClosureCapture(t *testing.T) {
	src := `
def make_counter()
  count = 0
  fn()
    count = count + 1
    count
  end
end
c = make_counter()
c.call()
c.call()
c.call()
`
	assertInteger(t, testEval(t, src), 3)
}

// def frames are call boundaries: they do not see the caller's locals,
// while fn closures do.
func TestDefIsNotAClosure(t *testing.T) {
	src := `
def outer()
  hidden = 41
  def peek()
    hidden
  end
  peek()
end
outer()
`
	assertErrorKind(t, testEval(t, src), ErrUnresolvedIdentifier)

	src = `
def outer2()
  hidden = 41
  probe = fn()
    hidden
  end
  probe.call()
end
outer2()
`
	assertInteger(t, testEval(t, src), 41)
}

func TestIfElsifElse(t *testing.T) {
	src := `
def grade(n)
  if n >= 90
    "a"
  elsif n >= 80
    "b"
  else
    "c"
  end
end
grade(85)
`
	assertString(t, testEval(t, src), "b")
}

func TestWhileLoop(t *testing.T) {
	src := `
total = 0
i = 0
while i < 5
  i = i + 1
  total = total + i
end
total
`
	assertInteger(t, testEval(t, src), 15)
}

func TestReturnUnwindsToFunctorBoundary(t *testing.T) {
	src := `
def find_first_even(list)
  i = 0
  while i < list.size
    if list[i] % 2 == 0
      return list[i]
    end
    i = i + 1
  end
  nil
end
find_first_even([3, 7, 8, 9])
`
	assertInteger(t, testEval(t, src), 8)
}

func TestMultiClauseDispatch(t *testing.T) {
	src := `
def area(w)
  w * w
end
def area(w, h)
  w * h
end
area(3) + area(3, 4)
`
	assertInteger(t, testEval(t, src), 21)
}

func TestSplatBindsTail(t *testing.T) {
	src := `
def gather(first, *rest)
  rest
end
gather(1, 2, 3, 4)
`
	result := testEval(t, src)
	l, ok := result.(*List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("splat bound %s", result.Inspect())
	}
	assertInteger(t, l.Elements[0], 2)

	assertInteger(t, testEval(t, `
def count_rest(*rest)
  rest.size
end
count_rest()
`), 0)
}

func TestBlockParam(t *testing.T) {
	src := `
def twice(&blk)
  blk.call(1)
  blk.call(2)
end
twice() { |x| x * 10 }
`
	assertInteger(t, testEval(t, src), 20)
}

func TestListEachAndMap(t *testing.T) {
	src := `
sum = 0
[1, 2, 3].each { |x| sum = sum + x }
sum
`
	assertInteger(t, testEval(t, src), 6)

	src = `[1, 2, 3].map { |x| x * x }`
	result := testEval(t, src)
	l := result.(*List)
	assertInteger(t, l.Elements[2], 9)
}

func TestInstancesAndIvars(t *testing.T) {
	src := `
type Counter
  def init(start)
    @n = start
  end

  def bump
    @n = @n + 1
  end

  def value
    @n
  end
end

c = Counter.new(3)
c.bump
c.bump
c.value
`
	assertInteger(t, testEval(t, src), 5)
}

func TestIvarsArePerInstance(t *testing.T) {
	src := `
type Box
  def init(v)
    @v = v
  end
  def value
    @v
  end
end
a = Box.new(1)
b = Box.new(2)
a.value + b.value
`
	assertInteger(t, testEval(t, src), 3)
}

func TestUnsetIvarReadsNil(t *testing.T) {
	src := `
type Empty
  def probe
    @never_set
  end
end
Empty.new.probe
`
	if result := testEval(t, src); result != NIL {
		t.Fatalf("unset ivar read %s", result.Inspect())
	}
}

func TestInheritance(t *testing.T) {
	src := `
type Animal
  def speak
    "..."
  end
  def kingdom
    "animalia"
  end
end

type Dog < Animal
  def speak
    "woof"
  end
end

d = Dog.new
d.speak + " " + d.kingdom
`
	assertString(t, testEval(t, src), "woof animalia")
}

// Scenario: module method reachable through include.
func TestIncludeProvidesMethods(t *testing.T) {
	src := `
module Walkable
  def walk
    "walking"
  end
end

type Robot
  include Walkable
end

Robot.new.walk
`
	assertString(t, testEval(t, src), "walking")
}

// Most recent inclusion wins.
func TestIncludeOrdering(t *testing.T) {
	src := `
module M1
  def who
    "m1"
  end
end
module M2
  def who
    "m2"
  end
end
type T
  include M1
  include M2
end
T.new.who
`
	assertString(t, testEval(t, src), "m2")
}

func TestStaticMethodsAndExtend(t *testing.T) {
	src := `
type MathUtil
  static def double(x)
    x * 2
  end
end
MathUtil.double(21)
`
	assertInteger(t, testEval(t, src), 42)

	src = `
module Registry
  def register(name)
    "registered " + name
  end
end
type Service
  extend Registry
end
Service.register("billing")
`
	assertString(t, testEval(t, src), "registered billing")
}

func TestTypeIntrospection(t *testing.T) {
	assertString(t, testEval(t, `type Zed end
Zed.name`), "Zed")
	assertString(t, testEval(t, `42.type_name`), "Integer")
	assertString(t, testEval(t, `{}.type_name`), "Map")

	src := `
module Mix end
type WithMix
  include Mix
end
WithMix.ancestors.size
`
	// Mix plus the implicit Object supertype.
	assertInteger(t, testEval(t, src), 2)
}

func TestThisBinding(t *testing.T) {
	src := `
type Chain
  def init
    @hops = 0
  end
  def hop
    @hops = @hops + 1
    this
  end
  def hops
    @hops
  end
end
Chain.new.hop.hop.hop.hops
`
	assertInteger(t, testEval(t, src), 3)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
	}{
		{"missing_name", ErrUnresolvedIdentifier},
		{"1.bogus", ErrNoSuchMethod},
		{"{}.bogus", ErrNoSuchMethod},
		{"1.ivars", ErrTypeMisuse},
		{":sym.ivars", ErrTypeMisuse},
		{"1 + \"x\"", ErrTypeMisuse},
		{"1 / 0", ErrTypeMisuse},
		{"len()", ErrArityMismatch},
		{"[1][0] = 2\n[1, 2][5] = 9", ErrIndex},
		{`raise("boom")`, ErrRaised},
		{"def one(a)\na\nend\none(1, 2)", ErrArityMismatch},
	}
	for _, tt := range tests {
		assertErrorKind(t, testEval(t, tt.input), tt.kind)
	}
}

func TestErrorCarriesTrace(t *testing.T) {
	src := `
def inner()
  missing_name
end
def outer()
  inner()
end
outer()
`
	result := testEval(t, src)
	err, ok := result.(*RuntimeError)
	if !ok {
		t.Fatalf("expected an error, got %s", result.Inspect())
	}
	if len(err.Stack) < 2 {
		t.Fatalf("trace too short: %v", err.Stack)
	}
	trace := err.Trace()
	if !strings.Contains(trace, "inner") || !strings.Contains(trace, "outer") {
		t.Fatalf("trace missing frames:\n%s", trace)
	}
}

func TestPutsWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	e := New()
	e.Out = &buf
	testEvalOn(t, e, `puts("one", 2)
puts(:three)`)
	want := "one\n2\n:three\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunSurfacesErrors(t *testing.T) {
	p := parser.New(lexer.New("missing_name"))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		t.Fatalf("unexpected parse errors")
	}
	if _, err := New().Run(program); err == nil {
		t.Fatalf("Run swallowed a runtime error")
	}
}

func TestFunctorObject(t *testing.T) {
	assertInteger(t, testEval(t, `
double = fn(x)
  x * 2
end
double.arity + double.call(20)
`), 41)
}

func TestReopenedTypeKeepsEarlierMethods(t *testing.T) {
	src := `
type Greeter
  def hello
    "hi"
  end
end
type Greeter
  def bye
    "bye"
  end
end
g = Greeter.new
g.hello + g.bye
`
	assertString(t, testEval(t, src), "hibye")
}
