package evaluator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Global registry of parsed proto files, shared by Proto and Grpc.
var (
	protoRegistry      = make(map[string]*desc.FileDescriptor)
	protoRegistryMutex sync.RWMutex
)

// ProtoFileObject wraps a parsed .proto descriptor.
type ProtoFileObject struct {
	File *desc.FileDescriptor
}

func (o *ProtoFileObject) Type() ObjectType { return PROTO_FILE_OBJ }
func (o *ProtoFileObject) TypeName() string { return "ProtoFile" }
func (o *ProtoFileObject) Truthy() bool     { return true }
func (o *ProtoFileObject) Hash() uint32     { return hashString(o.File.GetName()) }

func (o *ProtoFileObject) Inspect() string {
	return fmt.Sprintf("#<ProtoFile %s>", o.File.GetName())
}

// GrpcConnObject wraps a grpc client connection.
type GrpcConnObject struct {
	Conn *grpc.ClientConn
}

func (o *GrpcConnObject) Type() ObjectType { return GRPC_CONN_OBJ }
func (o *GrpcConnObject) TypeName() string { return "GrpcConn" }
func (o *GrpcConnObject) Truthy() bool     { return true }
func (o *GrpcConnObject) Hash() uint32     { return hashString(fmt.Sprintf("grpc@%p", o)) }

func (o *GrpcConnObject) Inspect() string {
	if o.Conn == nil {
		return "#<GrpcConn closed>"
	}
	return fmt.Sprintf("#<GrpcConn %s>", o.Conn.Target())
}

// Proto module: parse .proto files and encode/decode messages through
// their descriptors. Wire bytes travel as Strings. Grpc module: unary
// dynamic RPC client over the same descriptors.
func (e *Evaluator) registerProtoModules() {
	protoMod := e.kernelModule("Proto")

	e.moduleFn(protoMod, "load", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Proto.load expects 1 argument, got %d", len(args))
		}
		path, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Proto.load expects a string path, got %s", args[0].TypeName())
		}

		parser := protoparse.Parser{ImportPaths: []string{filepath.Dir(path.Value), "."}}
		fds, err := parser.ParseFiles(filepath.Base(path.Value))
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Proto.load: %v", err)
		}

		protoRegistryMutex.Lock()
		for _, fd := range fds {
			protoRegistry[fd.GetName()] = fd
		}
		protoRegistryMutex.Unlock()

		return &ProtoFileObject{File: fds[0]}
	})

	e.moduleFn(protoMod, "encode", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 2 {
			return e.newErrorWithStack(ErrArityMismatch, "Proto.encode expects 2 arguments, got %d", len(args))
		}
		msgName, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Proto.encode expects a message name, got %s", args[0].TypeName())
		}
		data, ok := args[1].(*Map)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Proto.encode expects a map, got %s", args[1].TypeName())
		}

		md, err := findMessageDescriptor(msgName.Value)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Proto.encode: %v", err)
		}
		msg := dynamicpb.NewMessage(md)
		if errObj := e.fillProtoMessage(msg, data); errObj != nil {
			return errObj
		}
		out, err := proto.Marshal(msg)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Proto.encode: %v", err)
		}
		return &String{Value: string(out)}
	})

	e.moduleFn(protoMod, "decode", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 2 {
			return e.newErrorWithStack(ErrArityMismatch, "Proto.decode expects 2 arguments, got %d", len(args))
		}
		msgName, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Proto.decode expects a message name, got %s", args[0].TypeName())
		}
		wire, ok := args[1].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Proto.decode expects wire bytes as a string, got %s", args[1].TypeName())
		}

		md, err := findMessageDescriptor(msgName.Value)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Proto.decode: %v", err)
		}
		msg := dynamicpb.NewMessage(md)
		if err := proto.Unmarshal([]byte(wire.Value), msg); err != nil {
			return e.newErrorWithStack(ErrRaised, "Proto.decode: %v", err)
		}
		return protoMessageToObject(msg)
	})

	grpcMod := e.kernelModule("Grpc")

	e.moduleFn(grpcMod, "connect", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Grpc.connect expects 1 argument, got %d", len(args))
		}
		target, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Grpc.connect expects a string target, got %s", args[0].TypeName())
		}
		conn, err := grpc.NewClient(target.Value, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Grpc.connect: %v", err)
		}
		return &GrpcConnObject{Conn: conn}
	})

	// invoke(conn, "package.Service/Method", request_map) -> response map
	e.moduleFn(grpcMod, "invoke", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 3 {
			return e.newErrorWithStack(ErrArityMismatch, "Grpc.invoke expects 3 arguments, got %d", len(args))
		}
		conn, ok := args[0].(*GrpcConnObject)
		if !ok || conn.Conn == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "Grpc.invoke expects an open connection")
		}
		methodPath, ok := args[1].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Grpc.invoke expects a method path, got %s", args[1].TypeName())
		}
		data, ok := args[2].(*Map)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Grpc.invoke expects a request map, got %s", args[2].TypeName())
		}

		md, err := findMethodDescriptor(methodPath.Value)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "Grpc.invoke: %v", err)
		}
		req := dynamicpb.NewMessage(md.Input())
		if errObj := e.fillProtoMessage(req, data); errObj != nil {
			return errObj
		}
		resp := dynamicpb.NewMessage(md.Output())

		fullPath := methodPath.Value
		if !strings.HasPrefix(fullPath, "/") {
			fullPath = "/" + fullPath
		}
		ctx := e.Context
		if ctx == nil {
			ctx = context.Background()
		}
		if err := conn.Conn.Invoke(ctx, fullPath, req, resp); err != nil {
			return e.newErrorWithStack(ErrRaised, "Grpc.invoke: %v", err)
		}
		return protoMessageToObject(resp)
	})

	e.moduleFn(grpcMod, "close", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Grpc.close expects 1 argument, got %d", len(args))
		}
		conn, ok := args[0].(*GrpcConnObject)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Grpc.close expects a connection, got %s", args[0].TypeName())
		}
		if conn.Conn != nil {
			err := conn.Conn.Close()
			conn.Conn = nil
			if err != nil {
				return e.newErrorWithStack(ErrRaised, "Grpc.close: %v", err)
			}
		}
		return NIL
	})
}

func findMessageDescriptor(name string) (protoreflect.MessageDescriptor, error) {
	protoRegistryMutex.RLock()
	defer protoRegistryMutex.RUnlock()
	for _, fd := range protoRegistry {
		if md := fd.FindMessage(name); md != nil {
			return md.UnwrapMessage(), nil
		}
	}
	return nil, fmt.Errorf("unknown message %q (was its file loaded?)", name)
}

func findMethodDescriptor(path string) (protoreflect.MethodDescriptor, error) {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("method path %q must be package.Service/Method", path)
	}
	protoRegistryMutex.RLock()
	defer protoRegistryMutex.RUnlock()
	for _, fd := range protoRegistry {
		if sd := fd.FindService(parts[0]); sd != nil {
			if md := sd.FindMethodByName(parts[1]); md != nil {
				return md.UnwrapMethod(), nil
			}
			return nil, fmt.Errorf("service %q has no method %q", parts[0], parts[1])
		}
	}
	return nil, fmt.Errorf("unknown service %q (was its file loaded?)", parts[0])
}

// fillProtoMessage sets message fields from a map keyed by field name
// (string or symbol keys).
func (e *Evaluator) fillProtoMessage(msg *dynamicpb.Message, data *Map) Object {
	fields := msg.Descriptor().Fields()
	for _, entry := range data.Entries {
		var name string
		switch k := entry.Key.(type) {
		case *String:
			name = k.Value
		case *Symbol:
			name = k.Name
		default:
			return e.newErrorWithStack(ErrTypeMisuse, "proto field keys must be strings or symbols, got %s", entry.Key.TypeName())
		}
		fd := fields.ByName(protoreflect.Name(name))
		if fd == nil {
			return e.newErrorWithStack(ErrTypeMisuse, "message %s has no field %q", msg.Descriptor().FullName(), name)
		}
		if errObj := e.setProtoField(msg, fd, entry.Value); errObj != nil {
			return errObj
		}
	}
	return nil
}

func (e *Evaluator) setProtoField(msg *dynamicpb.Message, fd protoreflect.FieldDescriptor, val Object) Object {
	if fd.IsList() {
		list, ok := val.(*List)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "field %s is repeated, expected a list", fd.Name())
		}
		out := msg.Mutable(fd).List()
		for _, el := range list.Elements {
			v, errObj := e.protoValueOf(fd, el)
			if errObj != nil {
				return errObj
			}
			out.Append(v)
		}
		return nil
	}
	v, errObj := e.protoValueOf(fd, val)
	if errObj != nil {
		return errObj
	}
	msg.Set(fd, v)
	return nil
}

func (e *Evaluator) protoValueOf(fd protoreflect.FieldDescriptor, val Object) (protoreflect.Value, Object) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return protoreflect.ValueOfBool(val.Truthy()), nil
	case protoreflect.StringKind:
		s, ok := val.(*String)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects a string, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfString(s.Value), nil
	case protoreflect.BytesKind:
		s, ok := val.(*String)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects bytes, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfBytes([]byte(s.Value)), nil
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		i, ok := val.(*Integer)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects an integer, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfInt32(int32(i.Value)), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		i, ok := val.(*Integer)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects an integer, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfInt64(i.Value), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		i, ok := val.(*Integer)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects an integer, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfUint32(uint32(i.Value)), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		i, ok := val.(*Integer)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects an integer, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfUint64(uint64(i.Value)), nil
	case protoreflect.FloatKind:
		f, ok := numericFloat(val)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects a number, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfFloat32(float32(f)), nil
	case protoreflect.DoubleKind:
		f, ok := numericFloat(val)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects a number, got %s", fd.Name(), val.TypeName())
		}
		return protoreflect.ValueOfFloat64(f), nil
	case protoreflect.MessageKind:
		m, ok := val.(*Map)
		if !ok {
			return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s expects a map, got %s", fd.Name(), val.TypeName())
		}
		nested := dynamicpb.NewMessage(fd.Message())
		if errObj := e.fillProtoMessage(nested, m); errObj != nil {
			return protoreflect.Value{}, errObj
		}
		return protoreflect.ValueOfMessage(nested), nil
	default:
		return protoreflect.Value{}, e.newErrorWithStack(ErrTypeMisuse, "field %s has unsupported kind %s", fd.Name(), fd.Kind())
	}
}

func numericFloat(val Object) (float64, bool) {
	switch v := val.(type) {
	case *Integer:
		return float64(v.Value), true
	case *Float:
		return v.Value, true
	}
	return 0, false
}

// protoMessageToObject converts a message to a Map keyed by field-name
// symbols; only populated fields appear.
func protoMessageToObject(msg *dynamicpb.Message) Object {
	out := NewMap()
	msg.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		out.Entries = append(out.Entries, MapEntry{
			Key:   InternSymbol(string(fd.Name())),
			Value: protoValueToObject(fd, v),
		})
		return true
	})
	return out
}

func protoValueToObject(fd protoreflect.FieldDescriptor, v protoreflect.Value) Object {
	if fd.IsList() {
		list := v.List()
		elements := make([]Object, list.Len())
		for i := 0; i < list.Len(); i++ {
			elements[i] = protoScalarToObject(fd, list.Get(i))
		}
		return NewList(elements)
	}
	return protoScalarToObject(fd, v)
}

func protoScalarToObject(fd protoreflect.FieldDescriptor, v protoreflect.Value) Object {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return nativeBool(v.Bool())
	case protoreflect.StringKind:
		return &String{Value: v.String()}
	case protoreflect.BytesKind:
		return &String{Value: string(v.Bytes())}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return &Integer{Value: v.Int()}
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return &Integer{Value: int64(v.Uint())}
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return &Float{Value: v.Float()}
	case protoreflect.MessageKind:
		if nested, ok := v.Message().Interface().(*dynamicpb.Message); ok {
			return protoMessageToObject(nested)
		}
		return &String{Value: fmt.Sprintf("%v", v.Message().Interface())}
	default:
		return &String{Value: v.String()}
	}
}
