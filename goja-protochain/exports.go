package gojaprotochain

import (
	"github.com/dop251/goja"
	"github.com/joeycumines/go-protochain/protochain"
)

var enumerateModes = map[string]protochain.EnumerateMode{
	"own":            protochain.OwnKeys,
	"own-enumerable": protochain.OwnEnumerable,
	"chained":        protochain.Chained,
}

// argRecord returns the record for the given argument, or panics with a
// TypeError.
func (m *Module) argRecord(fn string, call goja.FunctionCall, i int) *protochain.Object {
	o, ok := m.Unwrap(call.Argument(i))
	if !ok {
		panic(m.runtime.NewTypeError("%s: argument %d is not a protochain object", fn, i))
	}
	return o
}

// argPrototype accepts a record or null.
func (m *Module) argPrototype(fn string, call goja.FunctionCall, i int) *protochain.Object {
	if goja.IsNull(call.Argument(i)) {
		return nil
	}
	o, ok := m.Unwrap(call.Argument(i))
	if !ok {
		panic(m.runtime.NewTypeError("%s: prototype may only be a protochain object or null", fn))
	}
	return o
}

// jsCreate implements protochain.create(proto, props?), as Object.create.
func (m *Module) jsCreate(call goja.FunctionCall) goja.Value {
	proto := m.argPrototype("create", call, 0)

	var props []protochain.Property
	if arg := call.Argument(1); !goja.IsUndefined(arg) {
		obj := arg.ToObject(m.runtime)
		for _, name := range obj.Keys() {
			def, err := m.definition(obj.Get(name))
			if err != nil {
				panic(m.runtime.NewTypeError("create: %s: %s", name, err))
			}
			props = append(props, protochain.Prop(name, def))
		}
		for _, sym := range obj.Symbols() {
			def, err := m.definition(obj.GetSymbol(sym))
			if err != nil {
				panic(m.runtime.NewTypeError("create: %s: %s", sym, err))
			}
			props = append(props, protochain.Property{Key: protochain.SymbolKey(m.symbol(sym)), Definition: def})
		}
	}

	o, err := m.resolver.CreateLinked(proto, props...)
	if err != nil {
		panic(m.jsError(err))
	}
	return m.Wrap(o)
}

// jsObject implements protochain.object(), returning a new, empty record
// linked to the resolver's root.
func (m *Module) jsObject(goja.FunctionCall) goja.Value {
	return m.Wrap(m.resolver.NewObject())
}

// jsLink implements protochain.link(o, proto), returning o.
func (m *Module) jsLink(call goja.FunctionCall) goja.Value {
	o := m.argRecord("link", call, 0)
	var candidate any
	if arg := call.Argument(1); !goja.IsNull(arg) {
		if proto, ok := m.Unwrap(arg); ok {
			candidate = proto
		} else {
			// rejected by the resolver
			candidate = arg
		}
	}
	if err := m.resolver.LinkValue(o, candidate); err != nil {
		panic(m.jsError(err))
	}
	rec := m.wrap(o)
	m.syncPrototype(rec)
	return rec.obj
}

// jsGetPrototypeOf implements protochain.getPrototypeOf(o).
func (m *Module) jsGetPrototypeOf(call goja.FunctionCall) goja.Value {
	proto := m.argRecord("getPrototypeOf", call, 0).Prototype()
	if proto == nil {
		return goja.Null()
	}
	return m.Wrap(proto)
}

// jsKeys implements protochain.keys(o, mode?), where mode is one of "own",
// "own-enumerable" (the default), or "chained".
func (m *Module) jsKeys(call goja.FunctionCall) goja.Value {
	o := m.argRecord("keys", call, 0)
	mode := protochain.OwnEnumerable
	if arg := call.Argument(1); !goja.IsUndefined(arg) {
		var ok bool
		if mode, ok = enumerateModes[arg.String()]; !ok {
			panic(m.runtime.NewTypeError("keys: invalid mode: %s", arg))
		}
	}
	keys, err := m.resolver.Enumerate(o, mode)
	if err != nil {
		panic(m.jsError(err))
	}
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = k
	}
	return m.runtime.NewArray(values...)
}

// jsSymbols implements protochain.symbols(o).
func (m *Module) jsSymbols(call goja.FunctionCall) goja.Value {
	symbols := m.resolver.OwnSymbols(m.argRecord("symbols", call, 0))
	values := make([]any, len(symbols))
	for i, s := range symbols {
		values[i] = m.jsSymbol(s)
	}
	return m.runtime.NewArray(values...)
}

// jsDefineProperty implements protochain.defineProperty(o, key, desc),
// returning o.
func (m *Module) jsDefineProperty(call goja.FunctionCall) goja.Value {
	o := m.argRecord("defineProperty", call, 0)
	def, err := m.definition(call.Argument(2))
	if err != nil {
		panic(m.runtime.NewTypeError("defineProperty: %s", err))
	}
	if err := m.resolver.DefineProperty(o, m.key(call.Argument(1)), def); err != nil {
		panic(m.jsError(err))
	}
	return m.Wrap(o)
}

// jsGetOwnPropertyDescriptor implements
// protochain.getOwnPropertyDescriptor(o, key).
func (m *Module) jsGetOwnPropertyDescriptor(call goja.FunctionCall) goja.Value {
	o := m.argRecord("getOwnPropertyDescriptor", call, 0)
	d, ok := m.resolver.GetOwnPropertyDescriptor(o, m.key(call.Argument(1)))
	if !ok {
		return goja.Undefined()
	}
	return m.descriptor(d)
}

// jsHasOwn implements protochain.hasOwn(o, key).
func (m *Module) jsHasOwn(call goja.FunctionCall) goja.Value {
	o := m.argRecord("hasOwn", call, 0)
	return m.runtime.ToValue(m.resolver.HasOwn(o, m.key(call.Argument(1))))
}

// jsRemove implements protochain.remove(o, key).
func (m *Module) jsRemove(call goja.FunctionCall) goja.Value {
	o := m.argRecord("remove", call, 0)
	ok, err := m.resolver.Remove(o, m.key(call.Argument(1)))
	if err != nil {
		panic(m.jsError(err))
	}
	return m.runtime.ToValue(ok)
}

// jsClone implements protochain.clone(o).
func (m *Module) jsClone(call goja.FunctionCall) goja.Value {
	clone, err := m.resolver.Clone(m.argRecord("clone", call, 0))
	if err != nil {
		panic(m.jsError(err))
	}
	return m.Wrap(clone)
}

func (m *Module) jsFreeze(call goja.FunctionCall) goja.Value {
	o := m.argRecord("freeze", call, 0)
	m.resolver.Freeze(o)
	return m.Wrap(o)
}

func (m *Module) jsSeal(call goja.FunctionCall) goja.Value {
	o := m.argRecord("seal", call, 0)
	m.resolver.Seal(o)
	return m.Wrap(o)
}

func (m *Module) jsPreventExtensions(call goja.FunctionCall) goja.Value {
	o := m.argRecord("preventExtensions", call, 0)
	m.resolver.PreventExtensions(o)
	return m.Wrap(o)
}

func (m *Module) jsIsFrozen(call goja.FunctionCall) goja.Value {
	return m.runtime.ToValue(m.resolver.IsFrozen(m.argRecord("isFrozen", call, 0)))
}

func (m *Module) jsIsSealed(call goja.FunctionCall) goja.Value {
	return m.runtime.ToValue(m.resolver.IsSealed(m.argRecord("isSealed", call, 0)))
}

func (m *Module) jsIsExtensible(call goja.FunctionCall) goja.Value {
	return m.runtime.ToValue(m.resolver.IsExtensible(m.argRecord("isExtensible", call, 0)))
}

// jsVerify implements protochain.verify(o), throwing if the chain of o is
// cyclic or too deep.
func (m *Module) jsVerify(call goja.FunctionCall) goja.Value {
	if err := m.resolver.Verify(m.argRecord("verify", call, 0)); err != nil {
		panic(m.jsError(err))
	}
	return goja.Undefined()
}
