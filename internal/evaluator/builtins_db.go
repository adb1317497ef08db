package evaluator

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DbConnObject wraps a *sql.DB handle for the Db prelude module.
type DbConnObject struct {
	DB   *sql.DB
	Path string
}

func (o *DbConnObject) Type() ObjectType { return DB_CONN_OBJ }
func (o *DbConnObject) TypeName() string { return "DbConn" }
func (o *DbConnObject) Truthy() bool     { return true }
func (o *DbConnObject) Hash() uint32     { return hashString(fmt.Sprintf("db@%p", o)) }

func (o *DbConnObject) Inspect() string {
	if o.DB == nil {
		return "#<DbConn closed>"
	}
	return fmt.Sprintf("#<DbConn %s>", o.Path)
}

// Db module: sqlite access. query returns a List of Maps, one per row,
// keyed by column-name symbols.
func (e *Evaluator) registerDbModule() {
	m := e.kernelModule("Db")

	e.moduleFn(m, "open", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Db.open expects 1 argument, got %d", len(args))
		}
		path, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Db.open expects a string path, got %s", args[0].TypeName())
		}
		db, err := sql.Open("sqlite", path.Value)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.open: %v", err)
		}
		return &DbConnObject{DB: db, Path: path.Value}
	})

	e.moduleFn(m, "exec", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		conn, query, binds, errObj := dbCallArgs(e, "Db.exec", args)
		if errObj != nil {
			return errObj
		}
		result, err := conn.DB.Exec(query, binds...)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.exec: %v", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.exec: %v", err)
		}
		return &Integer{Value: affected}
	})

	e.moduleFn(m, "query", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		conn, query, binds, errObj := dbCallArgs(e, "Db.query", args)
		if errObj != nil {
			return errObj
		}
		rows, err := conn.DB.Query(query, binds...)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.query: %v", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.query: %v", err)
		}

		out := NewList(nil)
		for rows.Next() {
			cells := make([]interface{}, len(columns))
			refs := make([]interface{}, len(columns))
			for i := range cells {
				refs[i] = &cells[i]
			}
			if err := rows.Scan(refs...); err != nil {
				return e.newErrorWithStack(ErrRaised, "Db.query: %v", err)
			}
			row := NewMap()
			for i, col := range columns {
				row.Entries = append(row.Entries, MapEntry{Key: InternSymbol(col), Value: dbCellToObject(cells[i])})
			}
			out.Elements = append(out.Elements, row)
		}
		if err := rows.Err(); err != nil {
			return e.newErrorWithStack(ErrRaised, "Db.query: %v", err)
		}
		return out
	})

	e.moduleFn(m, "close", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Db.close expects 1 argument, got %d", len(args))
		}
		conn, ok := args[0].(*DbConnObject)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Db.close expects a connection, got %s", args[0].TypeName())
		}
		if conn.DB != nil {
			if err := conn.DB.Close(); err != nil {
				return e.newErrorWithStack(ErrRaised, "Db.close: %v", err)
			}
			conn.DB = nil
		}
		return NIL
	})
}

func dbCallArgs(e *Evaluator, name string, args []Object) (*DbConnObject, string, []interface{}, Object) {
	if len(args) < 2 {
		return nil, "", nil, e.newErrorWithStack(ErrArityMismatch, "%s expects a connection and a query", name)
	}
	conn, ok := args[0].(*DbConnObject)
	if !ok {
		return nil, "", nil, e.newErrorWithStack(ErrTypeMisuse, "%s expects a connection, got %s", name, args[0].TypeName())
	}
	if conn.DB == nil {
		return nil, "", nil, e.newErrorWithStack(ErrRaised, "%s: connection is closed", name)
	}
	query, ok := args[1].(*String)
	if !ok {
		return nil, "", nil, e.newErrorWithStack(ErrTypeMisuse, "%s expects a query string, got %s", name, args[1].TypeName())
	}
	binds := make([]interface{}, 0, len(args)-2)
	for _, arg := range args[2:] {
		bind, errObj := dbBindValue(e, name, arg)
		if errObj != nil {
			return nil, "", nil, errObj
		}
		binds = append(binds, bind)
	}
	return conn, query.Value, binds, nil
}

func dbBindValue(e *Evaluator, name string, arg Object) (interface{}, Object) {
	switch v := arg.(type) {
	case *Integer:
		return v.Value, nil
	case *Float:
		return v.Value, nil
	case *Boolean:
		return v.Value, nil
	case *String:
		return v.Value, nil
	case *Symbol:
		return v.Name, nil
	case *Nil:
		return nil, nil
	default:
		return nil, e.newErrorWithStack(ErrTypeMisuse, "%s cannot bind %s", name, arg.TypeName())
	}
}

func dbCellToObject(cell interface{}) Object {
	switch v := cell.(type) {
	case nil:
		return NIL
	case int64:
		return &Integer{Value: v}
	case float64:
		return &Float{Value: v}
	case bool:
		return nativeBool(v)
	case string:
		return &String{Value: v}
	case []byte:
		return &String{Value: string(v)}
	default:
		return &String{Value: fmt.Sprintf("%v", v)}
	}
}
