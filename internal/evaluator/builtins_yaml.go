package evaluator

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Yaml module: parse/dump between YAML documents and rill values.
// Mappings become Maps (string keys), sequences become Lists, scalars
// become Integer/Float/Boolean/String/nil.
func (e *Evaluator) registerYamlModule() {
	m := e.kernelModule("Yaml")

	e.moduleFn(m, "parse", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Yaml.parse expects 1 argument, got %d", len(args))
		}
		src, ok := args[0].(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMisuse, "Yaml.parse expects a string, got %s", args[0].TypeName())
		}
		var data interface{}
		if err := yaml.Unmarshal([]byte(src.Value), &data); err != nil {
			return e.newErrorWithStack(ErrRaised, "yaml parse error: %v", err)
		}
		return e.objectFromYaml(data)
	})

	e.moduleFn(m, "dump", func(e *Evaluator, self Object, args []Object, block *Functor) Object {
		if len(args) != 1 {
			return e.newErrorWithStack(ErrArityMismatch, "Yaml.dump expects 1 argument, got %d", len(args))
		}
		data, errObj := yamlFromObject(args[0])
		if errObj != nil {
			return errObj
		}
		out, err := yaml.Marshal(data)
		if err != nil {
			return e.newErrorWithStack(ErrRaised, "yaml dump error: %v", err)
		}
		return &String{Value: string(out)}
	})
}

// objectFromYaml converts Go values from yaml.Unmarshal to rill values.
// yaml.v3 hands integers back as int, not float64.
func (e *Evaluator) objectFromYaml(data interface{}) Object {
	switch v := data.(type) {
	case nil:
		return NIL
	case bool:
		return nativeBool(v)
	case int:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case float64:
		return &Float{Value: v}
	case string:
		return &String{Value: v}
	case []interface{}:
		elements := make([]Object, len(v))
		for i, item := range v {
			obj := e.objectFromYaml(item)
			if isError(obj) {
				return obj
			}
			elements[i] = obj
		}
		return NewList(elements)
	case map[string]interface{}:
		out := NewMap()
		for _, key := range yamlKeyOrder(v) {
			obj := e.objectFromYaml(v[key])
			if isError(obj) {
				return obj
			}
			out.Entries = append(out.Entries, MapEntry{Key: &String{Value: key}, Value: obj})
		}
		return out
	case map[interface{}]interface{}:
		out := NewMap()
		for key, val := range v {
			obj := e.objectFromYaml(val)
			if isError(obj) {
				return obj
			}
			out.Entries = append(out.Entries, MapEntry{Key: &String{Value: fmt.Sprintf("%v", key)}, Value: obj})
		}
		return out
	default:
		return e.newErrorWithStack(ErrTypeMisuse, "unsupported yaml value %T", data)
	}
}

// yamlKeyOrder: unmarshal into map loses document order; keep output
// stable by sorting instead.
func yamlKeyOrder(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func yamlFromObject(obj Object) (interface{}, Object) {
	switch v := obj.(type) {
	case *Nil:
		return nil, nil
	case *Boolean:
		return v.Value, nil
	case *Integer:
		return v.Value, nil
	case *Float:
		return v.Value, nil
	case *String:
		return v.Value, nil
	case *Symbol:
		return v.Name, nil
	case *List:
		out := make([]interface{}, len(v.Elements))
		for i, el := range v.Elements {
			converted, errObj := yamlFromObject(el)
			if errObj != nil {
				return nil, errObj
			}
			out[i] = converted
		}
		return out, nil
	case *Map:
		out := make(map[string]interface{}, len(v.Entries))
		for _, entry := range v.Entries {
			var key string
			switch k := entry.Key.(type) {
			case *String:
				key = k.Value
			case *Symbol:
				key = k.Name
			default:
				key = entry.Key.Inspect()
			}
			converted, errObj := yamlFromObject(entry.Value)
			if errObj != nil {
				return nil, errObj
			}
			out[key] = converted
		}
		return out, nil
	default:
		return nil, newError(ErrTypeMisuse, "cannot serialize %s to yaml", obj.TypeName())
	}
}
