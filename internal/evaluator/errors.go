package evaluator

import "fmt"

type ErrorKind string

const (
	ErrUnresolvedIdentifier ErrorKind = "unresolved identifier"
	ErrNoSuchMethod         ErrorKind = "no such method"
	ErrTypeMisuse           ErrorKind = "type misuse"
	ErrIndex                ErrorKind = "index error"
	ErrArityMismatch        ErrorKind = "arity mismatch"
	ErrInterpreterBug       ErrorKind = "interpreter bug"
	ErrRaised               ErrorKind = "runtime error"
)

// CallFrame is one entry of the call-stack trace attached to errors.
type CallFrame struct {
	Name   string
	Line   int
	Column int
}

// RuntimeError is a non-local failure unwinding the evaluation stack; the
// driver surfaces it at the Run boundary.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Stack   []CallFrame
}

func (e *RuntimeError) Type() ObjectType { return ERROR_OBJ }
func (e *RuntimeError) TypeName() string { return "Error" }
func (e *RuntimeError) Inspect() string  { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }
func (e *RuntimeError) Truthy() bool     { return true }
func (e *RuntimeError) Hash() uint32     { return hashString(e.Message) }

// Trace renders the captured call stack, innermost call first.
func (e *RuntimeError) Trace() string {
	out := e.Inspect()
	for i := len(e.Stack) - 1; i >= 0; i-- {
		f := e.Stack[i]
		out += fmt.Sprintf("\n  at %s [%d:%d]", f.Name, f.Line, f.Column)
	}
	return out
}

func newError(kind ErrorKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// newErrorWithStack snapshots the evaluator's current call stack into the
// error so the trace survives unwinding.
func (e *Evaluator) newErrorWithStack(kind ErrorKind, format string, args ...interface{}) *RuntimeError {
	err := newError(kind, format, args...)
	err.Stack = make([]CallFrame, len(e.CallStack))
	copy(err.Stack, e.CallStack)
	return err
}

func isError(obj Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == ERROR_OBJ
}
