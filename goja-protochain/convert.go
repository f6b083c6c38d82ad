package gojaprotochain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-protochain/protochain"
)

// toValue converts a stored value to JS. Records map to their wrappers,
// and methods to functions that pass this as the receiver.
func (m *Module) toValue(v any) goja.Value {
	if protochain.IsUndefined(v) {
		return goja.Undefined()
	}
	switch v := v.(type) {
	case nil:
		return goja.Null()
	case goja.Value:
		return v
	case *protochain.Object:
		return m.Wrap(v)
	case *protochain.Symbol:
		return m.jsSymbol(v)
	case protochain.Method:
		return m.method(v)
	case func(*protochain.Object, ...any) (any, error):
		return m.method(v)
	default:
		return m.runtime.ToValue(v)
	}
}

// export converts a JS value for storage. Wrappers map back to records.
// Other objects, including functions, are stored as is.
func (m *Module) export(v goja.Value) any {
	switch {
	case v == nil || goja.IsUndefined(v):
		return protochain.Undefined
	case goja.IsNull(v):
		return nil
	}
	switch v := v.(type) {
	case *goja.Symbol:
		return m.symbol(v)
	case *goja.Object:
		if o, ok := m.Unwrap(v); ok {
			return o
		}
		return v
	default:
		return v.Export()
	}
}

func (m *Module) exportArgs(args []goja.Value) []any {
	values := make([]any, len(args))
	for i, arg := range args {
		values[i] = m.export(arg)
	}
	return values
}

func (m *Module) method(fn protochain.Method) goja.Value {
	return m.runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		receiver, ok := m.Unwrap(call.This)
		if !ok {
			panic(m.runtime.NewTypeError("method called on incompatible receiver"))
		}
		result, err := fn(receiver, m.exportArgs(call.Arguments)...)
		if err != nil {
			panic(m.jsError(err))
		}
		return m.toValue(result)
	})
}

func (m *Module) symbol(s *goja.Symbol) *protochain.Symbol {
	if sym, ok := m.symbols[s]; ok {
		return sym
	}
	sym := protochain.NewSymbol(symbolDescription(s))
	m.symbols[s] = sym
	m.symbolValues[sym] = s
	return sym
}

func (m *Module) jsSymbol(sym *protochain.Symbol) *goja.Symbol {
	if s, ok := m.symbolValues[sym]; ok {
		return s
	}
	s := goja.NewSymbol(sym.Description())
	m.symbols[s] = sym
	m.symbolValues[sym] = s
	return s
}

func symbolDescription(s *goja.Symbol) string {
	d := s.String()
	if strings.HasPrefix(d, "Symbol(") && strings.HasSuffix(d, ")") {
		return d[len("Symbol(") : len(d)-1]
	}
	return d
}

// key converts a property key, which may be a symbol.
func (m *Module) key(v goja.Value) protochain.Key {
	if s, ok := v.(*goja.Symbol); ok {
		return protochain.SymbolKey(m.symbol(s))
	}
	return protochain.StringKey(v.String())
}

// definition converts a JS property descriptor object, per
// Object.defineProperty.
func (m *Module) definition(v goja.Value) (protochain.Definition, error) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return protochain.Definition{}, errors.New("property description must be an object")
	}

	get, set := obj.Get("get"), obj.Get("set")
	var def protochain.Definition
	if get != nil || set != nil {
		if obj.Get("value") != nil || obj.Get("writable") != nil {
			return protochain.Definition{}, errors.New("invalid property descriptor: cannot both specify accessors and a value or writable attribute")
		}
		getter, err := m.getter(get)
		if err != nil {
			return protochain.Definition{}, err
		}
		setter, err := m.setter(set)
		if err != nil {
			return protochain.Definition{}, err
		}
		def = protochain.Accessor(getter, setter)
	} else {
		def = protochain.Flags()
		if value := obj.Get("value"); value != nil {
			def = protochain.Value(m.export(value))
		}
		if writable := obj.Get("writable"); writable != nil {
			def = def.Writable(writable.ToBoolean())
		}
	}

	if enumerable := obj.Get("enumerable"); enumerable != nil {
		def = def.Enumerable(enumerable.ToBoolean())
	}
	if configurable := obj.Get("configurable"); configurable != nil {
		def = def.Configurable(configurable.ToBoolean())
	}
	return def, nil
}

func (m *Module) getter(v goja.Value) (protochain.Getter, error) {
	if v == nil || goja.IsUndefined(v) {
		return nil, nil
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("getter must be a function: %s", v)
	}
	return func(receiver *protochain.Object) (any, error) {
		result, err := fn(m.Wrap(receiver))
		if err != nil {
			return nil, err
		}
		return m.export(result), nil
	}, nil
}

func (m *Module) setter(v goja.Value) (protochain.Setter, error) {
	if v == nil || goja.IsUndefined(v) {
		return nil, nil
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("setter must be a function: %s", v)
	}
	return func(receiver *protochain.Object, value any) error {
		_, err := fn(m.Wrap(receiver), m.toValue(value))
		return err
	}, nil
}

// descriptor converts a descriptor to a JS property descriptor object.
// Accessor functions are exposed as JS functions, invoking them with this
// as the receiver.
func (m *Module) descriptor(d protochain.Descriptor) *goja.Object {
	obj := m.runtime.NewObject()
	if d.Accessor {
		get, set := goja.Undefined(), goja.Undefined()
		if d.Get != nil {
			get = m.method(func(receiver *protochain.Object, _ ...any) (any, error) {
				return d.Get(receiver)
			})
		}
		if d.Set != nil {
			set = m.method(func(receiver *protochain.Object, args ...any) (any, error) {
				value := protochain.Undefined
				if len(args) != 0 {
					value = args[0]
				}
				return protochain.Undefined, d.Set(receiver, value)
			})
		}
		_ = obj.Set("get", get)
		_ = obj.Set("set", set)
	} else {
		_ = obj.Set("value", m.toValue(d.Value))
		_ = obj.Set("writable", d.Writable)
	}
	_ = obj.Set("enumerable", d.Enumerable)
	_ = obj.Set("configurable", d.Configurable)
	return obj
}
