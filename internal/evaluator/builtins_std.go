package evaluator

import (
	"github.com/google/uuid"
)

// Std module: small host utilities that don't belong to a value type.
func (e *Evaluator) registerStdModule() {
	m := e.kernelModule("Std")

	e.moduleFn(m, "uuid", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 0 {
			return e.newErrorWithStack(ErrArityMismatch, "Std.uuid expects no arguments, got %d", len(args))
		}
		return &String{Value: uuid.NewString()}
	})

	// uuid_v5 derives a deterministic uuid from a namespace uuid and a
	// name.
	e.moduleFn(m, "uuid_v5", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 2 {
			return e.newErrorWithStack(ErrArityMismatch, "Std.uuid_v5 expects 2 arguments, got %d", len(args))
		}
		ns, nsOk := args[0].(*String)
		name, nameOk := args[1].(*String)
		if !nsOk || !nameOk {
			return e.newErrorWithStack(ErrTypeMisuse, "Std.uuid_v5 expects string arguments")
		}
		nsID, err := uuid.Parse(ns.Value)
		if err != nil {
			return e.newErrorWithStack(ErrTypeMisuse, "Std.uuid_v5: invalid namespace uuid: %v", err)
		}
		return &String{Value: uuid.NewSHA1(nsID, []byte(name.Value)).String()}
	})
}
