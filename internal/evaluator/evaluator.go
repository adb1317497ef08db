package evaluator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rill-lang/rill/internal/ast"
)

// maxEvalDepth is the maximum nesting depth of Eval calls. Prevents Go
// stack overflow from runaway recursion in user programs.
const maxEvalDepth = 10000

// defTarget records where def statements bind while a type or module body
// is being evaluated.
type defTarget struct {
	instance *Scope
	static   *Scope
}

// Evaluator is the interpreter driver: it owns the scope stack, the
// kernel scope, the built-in type objects and the current-self stack, and
// walks AST nodes producing values.
type Evaluator struct {
	// Context, when set, is checked between node evaluations so a host
	// embedding can interrupt a long-running program.
	Context context.Context

	Out io.Writer

	// Kernel is the root scope holding built-in types, kernel functors
	// and top-level bindings.
	Kernel *Scope

	scopes  *SymbolTable
	classes map[ObjectType]*Class

	ObjectClass  *Class
	TypeClass    *Class
	ModuleClass  *Class
	FunctorClass *Class

	selfStack []Object
	defStack  []defTarget

	// CallStack backs error traces.
	CallStack []CallFrame

	evalDepth int
}

func New() *Evaluator {
	kernel := NewScope()
	e := &Evaluator{
		Out:     os.Stdout,
		Kernel:  kernel,
		scopes:  NewSymbolTable(kernel),
		classes: make(map[ObjectType]*Class),
	}
	e.defStack = []defTarget{{instance: kernel, static: kernel}}
	e.registerBuiltins()
	return e
}

// Run evaluates a program and returns the value of its last expression.
// Runtime failures come back as a Go error carrying the trace.
func (e *Evaluator) Run(program *ast.Program) (Object, error) {
	result := e.Eval(program)
	if err, ok := result.(*RuntimeError); ok {
		return nil, fmt.Errorf("%s", err.Trace())
	}
	if rv, ok := result.(*ReturnValue); ok {
		return rv.Value, nil
	}
	return result, nil
}

func (e *Evaluator) Eval(node ast.Node) Object {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > maxEvalDepth {
		return e.newErrorWithStack(ErrInterpreterBug, "maximum recursion depth exceeded")
	}

	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return e.newErrorWithStack(ErrRaised, "evaluation interrupted: %v", e.Context.Err())
		default:
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		return e.evalProgram(n)
	case *ast.Block:
		return e.evalBlock(n)
	case *ast.ExpressionStatement:
		return e.Eval(n.Expression)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(n)
	case *ast.MethodDefinition:
		return e.evalMethodDefinition(n)
	case *ast.TypeDeclaration:
		return e.evalTypeDeclaration(n)
	case *ast.ModuleDeclaration:
		return e.evalModuleDeclaration(n)
	case *ast.IncludeStatement:
		return e.evalIncludeStatement(n)
	case *ast.ExtendStatement:
		return e.evalExtendStatement(n)

	case *ast.Identifier:
		return e.evalIdentifier(n)
	case *ast.IvarExpression:
		return e.evalIvarExpression(n)
	case *ast.AssignExpression:
		return e.evalAssignExpression(n)
	case *ast.IvarAssignExpression:
		return e.evalIvarAssignExpression(n)
	case *ast.IndexExpression:
		return e.evalIndexExpression(n)
	case *ast.IndexAssignExpression:
		return e.evalIndexAssignExpression(n)
	case *ast.CallExpression:
		return e.evalCallExpression(n)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(n)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(n)
	case *ast.IfExpression:
		return e.evalIfExpression(n)
	case *ast.WhileExpression:
		return e.evalWhileExpression(n)
	case *ast.FunctorLiteral:
		return e.evalFunctorLiteral(n)
	case *ast.SelfExpression:
		return e.currentSelf()

	case *ast.IntegerLiteral:
		return &Integer{Value: n.Value}
	case *ast.FloatLiteral:
		return &Float{Value: n.Value}
	case *ast.StringLiteral:
		return &String{Value: n.Value}
	case *ast.BooleanLiteral:
		return nativeBool(n.Value)
	case *ast.NilLiteral:
		return NIL
	case *ast.SymbolLiteral:
		return InternSymbol(n.Name)
	case *ast.ListLiteral:
		return e.evalListLiteral(n)
	case *ast.MapLiteral:
		return e.evalMapLiteral(n)
	}

	return e.newErrorWithStack(ErrInterpreterBug, "unknown AST node %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program) Object {
	var result Object = NIL
	for _, stmt := range program.Statements {
		result = e.Eval(stmt)
		switch r := result.(type) {
		case *RuntimeError:
			return r
		case *ReturnValue:
			return r.Value
		}
	}
	return result
}

// evalBlock evaluates statements in order; the block's value is the last
// statement's value. ReturnValue passes through untouched so it unwinds
// to the enclosing functor boundary.
func (e *Evaluator) evalBlock(block *ast.Block) Object {
	var result Object = NIL
	for _, stmt := range block.Statements {
		result = e.Eval(stmt)
		if result != nil {
			t := result.Type()
			if t == ERROR_OBJ || t == RETURN_VALUE_OBJ {
				return result
			}
		}
	}
	return result
}

func (e *Evaluator) evalReturnStatement(n *ast.ReturnStatement) Object {
	if n.Value == nil {
		return &ReturnValue{Value: NIL}
	}
	val := e.Eval(n.Value)
	if isError(val) {
		return val
	}
	return &ReturnValue{Value: val}
}

func (e *Evaluator) currentSelf() Object {
	if len(e.selfStack) == 0 {
		return NIL
	}
	return e.selfStack[len(e.selfStack)-1]
}

func (e *Evaluator) pushSelf(obj Object) { e.selfStack = append(e.selfStack, obj) }
func (e *Evaluator) popSelf()            { e.selfStack = e.selfStack[:len(e.selfStack)-1] }

func (e *Evaluator) currentDefTarget() defTarget {
	return e.defStack[len(e.defStack)-1]
}

func (e *Evaluator) pushDefTarget(t defTarget) { e.defStack = append(e.defStack, t) }
func (e *Evaluator) popDefTarget()             { e.defStack = e.defStack[:len(e.defStack)-1] }
