package evaluator

import (
	"fmt"

	"github.com/rill-lang/rill/internal/ast"
)

// NativeFn is the host-side signature of a built-in operation.
type NativeFn func(e *Evaluator, self Object, args []Object, block *Functor) Object

// Clause is one implementation body of a Functor: either a user-defined
// AST body with formals, or an opaque native callable.
type Clause struct {
	Params     []*ast.Param
	SplatIndex int // -1 when no splat parameter
	BlockParam string
	Body       *ast.Block

	Fn NativeFn // non-nil for native clauses
}

func (c *Clause) IsNative() bool { return c.Fn != nil }

// Accepts reports whether n positional arguments can bind to this
// clause's formals. Native clauses accept any count and enforce their
// own arity.
func (c *Clause) Accepts(n int) bool {
	if c.IsNative() {
		return true
	}
	if c.SplatIndex >= 0 {
		return n >= len(c.Params)-1
	}
	return n == len(c.Params)
}

func userClause(params []*ast.Param, splatIndex int, blockParam string, body *ast.Block) *Clause {
	return &Clause{Params: params, SplatIndex: splatIndex, BlockParam: blockParam, Body: body}
}

func nativeClause(fn NativeFn) *Clause {
	return &Clause{SplatIndex: -1, Fn: fn}
}

// Functor is a named callable with one or more clauses. LexicalScope and
// the closure flag pick the frame-creation strategy on invocation: a
// closure frame parents the lexical scope, a plain call frame has no
// parent. ClosedSelf, when set, is bound as this regardless of the call
// site receiver.
type Functor struct {
	Name         string
	Clauses      []*Clause
	LexicalScope *Scope
	Closure      bool
	ClosedSelf   Object
	// Lenient marks call-site blocks: argument binding pads and drops
	// instead of arity-checking.
	Lenient  bool
	bindings *Scope
}

func NewFunctor(name string) *Functor {
	return &Functor{Name: name}
}

func (f *Functor) AddClause(c *Clause) {
	f.Clauses = append(f.Clauses, c)
}

func (f *Functor) Type() ObjectType { return FUNCTOR_OBJ }
func (f *Functor) TypeName() string { return "Functor" }
func (f *Functor) Truthy() bool     { return true }
func (f *Functor) Hash() uint32     { return hashString(fmt.Sprintf("%s@%p", f.Name, f)) }

func (f *Functor) Inspect() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	if len(f.Clauses) == 1 {
		return fmt.Sprintf("#<functor %s>", name)
	}
	return fmt.Sprintf("#<functor %s (%d clauses)>", name, len(f.Clauses))
}

func (f *Functor) Bindings() *Scope {
	if f.bindings == nil {
		f.bindings = NewScope()
	}
	return f.bindings
}

// ReturnValue wraps a value unwinding toward the enclosing functor
// boundary; it never escapes to user code.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) TypeName() string { return "ReturnValue" }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (rv *ReturnValue) Truthy() bool     { return true }
func (rv *ReturnValue) Hash() uint32     { return rv.Value.Hash() }
