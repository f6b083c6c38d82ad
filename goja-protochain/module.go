package gojaprotochain

import (
	"errors"
	"fmt"
	"reflect"
	"weak"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-protochain/protochain"
)

// recordType is the export type of every wrapper.
var recordType = reflect.TypeFor[*record]()

// minSweep is the wrapper count below which collected entries are left in
// place.
const minSweep = 64

// Module provides prototype chain records for a [goja.Runtime]. Each
// Module instance is bound to a single runtime and a single
// [protochain.Resolver], and maintains the identity of the JS wrapper of
// each record.
//
// Wrappers are tracked by weak reference, so the module does not extend the
// lifetime of records or their wrappers. A wrapper is only recreated once
// nothing refers to the previous one.
// Symbols converted between JS and Go are retained for the lifetime of the
// module.
type Module struct {
	runtime         *goja.Runtime
	resolver        *protochain.Resolver
	objectPrototype *goja.Object
	wrappers        map[weak.Pointer[protochain.Object]]weak.Pointer[goja.Object]
	symbols         map[*goja.Symbol]*protochain.Symbol
	symbolValues    map[*protochain.Symbol]*goja.Symbol
	sweepAt         int
}

// New creates a new [Module] bound to the given [goja.Runtime].
//
// New panics if runtime is nil, as this is a programming error
// (invariant violation). It returns an error if option validation
// fails.
func New(runtime *goja.Runtime, opts ...Option) (*Module, error) {
	if runtime == nil {
		panic("gojaprotochain: runtime must not be nil")
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("gojaprotochain: %w", err)
	}

	if cfg.resolver == nil {
		if cfg.resolver, err = protochain.New(); err != nil {
			return nil, fmt.Errorf("gojaprotochain: %w", err)
		}
	}

	return &Module{
		runtime:         runtime,
		resolver:        cfg.resolver,
		objectPrototype: runtime.NewObject().Prototype(),
		wrappers:        make(map[weak.Pointer[protochain.Object]]weak.Pointer[goja.Object]),
		symbols:         make(map[*goja.Symbol]*protochain.Symbol),
		symbolValues:    make(map[*protochain.Symbol]*goja.Symbol),
		sweepAt:         minSweep,
	}, nil
}

// Resolver returns the resolver the module is bound to.
func (m *Module) Resolver() *protochain.Resolver { return m.resolver }

// SetupExports wires the module's JS API onto the given exports object.
// This is equivalent to the setup performed by [Require] but allows
// external consumers to configure exports without the require() mechanism.
func (m *Module) SetupExports(exports *goja.Object) {
	_ = exports.Set("create", m.runtime.ToValue(m.jsCreate))
	_ = exports.Set("object", m.runtime.ToValue(m.jsObject))
	_ = exports.Set("link", m.runtime.ToValue(m.jsLink))
	_ = exports.Set("getPrototypeOf", m.runtime.ToValue(m.jsGetPrototypeOf))
	_ = exports.Set("keys", m.runtime.ToValue(m.jsKeys))
	_ = exports.Set("symbols", m.runtime.ToValue(m.jsSymbols))
	_ = exports.Set("defineProperty", m.runtime.ToValue(m.jsDefineProperty))
	_ = exports.Set("getOwnPropertyDescriptor", m.runtime.ToValue(m.jsGetOwnPropertyDescriptor))
	_ = exports.Set("hasOwn", m.runtime.ToValue(m.jsHasOwn))
	_ = exports.Set("remove", m.runtime.ToValue(m.jsRemove))
	_ = exports.Set("clone", m.runtime.ToValue(m.jsClone))
	_ = exports.Set("freeze", m.runtime.ToValue(m.jsFreeze))
	_ = exports.Set("seal", m.runtime.ToValue(m.jsSeal))
	_ = exports.Set("preventExtensions", m.runtime.ToValue(m.jsPreventExtensions))
	_ = exports.Set("isFrozen", m.runtime.ToValue(m.jsIsFrozen))
	_ = exports.Set("isSealed", m.runtime.ToValue(m.jsIsSealed))
	_ = exports.Set("isExtensible", m.runtime.ToValue(m.jsIsExtensible))
	_ = exports.Set("verify", m.runtime.ToValue(m.jsVerify))
}

// Require returns a [github.com/dop251/goja_nodejs/require.ModuleLoader]
// that registers the protochain module. This follows the standard Goja
// Node.js module pattern.
//
//	registry := require.NewRegistry()
//	registry.RegisterNativeModule("protochain", gojaprotochain.Require(
//		gojaprotochain.WithResolver(resolver),
//	))
func Require(opts ...Option) func(runtime *goja.Runtime, module *goja.Object) {
	return func(runtime *goja.Runtime, module *goja.Object) {
		m, err := New(runtime, opts...)
		if err != nil {
			panic(err)
		}
		exports := module.Get("exports").(*goja.Object)
		m.SetupExports(exports)
	}
}

// Wrap returns the JS object for the given record, creating it on first
// use. The same record always maps to the same JS object. A nil record
// maps to nil. Wrap panics if o belongs to a different resolver.
func (m *Module) Wrap(o *protochain.Object) *goja.Object {
	if o == nil {
		return nil
	}
	return m.wrap(o).obj
}

func (m *Module) wrap(o *protochain.Object) *record {
	key := weak.Make(o)
	if obj := m.wrappers[key].Value(); obj != nil {
		return obj.Export().(*record)
	}
	if o.Resolver() != m.resolver {
		panic(fmt.Errorf("gojaprotochain: object %d belongs to a different resolver", o.ID()))
	}
	rec := &record{m: m, o: o}
	rec.obj = m.runtime.NewDynamicObject(rec)
	m.wrappers[key] = weak.Make(rec.obj)
	m.sweep()
	m.syncPrototype(rec)
	return rec
}

// sweep drops the entries of collected wrappers, once the number of entries
// has doubled since the last sweep.
func (m *Module) sweep() {
	if len(m.wrappers) < m.sweepAt {
		return
	}
	for k, v := range m.wrappers {
		if v.Value() == nil {
			delete(m.wrappers, k)
		}
	}
	m.sweepAt = max(minSweep, 2*len(m.wrappers))
}

// Unwrap returns the record for a JS object created by [Module.Wrap].
func (m *Module) Unwrap(v goja.Value) (*protochain.Object, bool) {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil || obj.ExportType() != recordType {
		return nil, false
	}
	rec := obj.Export().(*record)
	if rec.m != m {
		return nil, false
	}
	return rec.o, true
}

// syncPrototype points the JS prototype of the wrapper at the wrapper of
// the record's prototype, which may have changed since the last call. The
// resolver's root maps to Object.prototype, and other records without a
// prototype map to null.
func (m *Module) syncPrototype(rec *record) {
	var want *goja.Object
	switch proto := rec.o.Prototype(); {
	case proto != nil:
		want = m.Wrap(proto)
	case rec.o == m.resolver.Root():
		want = m.objectPrototype
	}
	if rec.obj.Prototype() != want {
		_ = rec.obj.SetPrototype(want)
	}
}

// jsError converts err to a value suitable for panicking with, from within
// a call made by the runtime. JS exceptions (e.g. from accessors defined in
// JS) propagate as is.
func (m *Module) jsError(err error) any {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return ex
	}
	return m.runtime.NewGoError(err)
}
