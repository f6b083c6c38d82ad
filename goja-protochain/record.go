package gojaprotochain

import (
	"github.com/dop251/goja"
	"github.com/joeycumines/go-protochain/protochain"
)

// record implements [goja.DynamicObject] for a single record.
type record struct {
	m   *Module
	o   *protochain.Object
	obj *goja.Object
}

var _ goja.DynamicObject = (*record)(nil)

// Get resolves key against the whole chain, with the record as receiver.
// Keys that don't resolve return nil, deferring to the JS prototype, which
// ends at Object.prototype.
func (x *record) Get(key string) goja.Value {
	x.m.syncPrototype(x)
	k := protochain.StringKey(key)
	found, err := x.m.resolver.Has(x.o, k)
	if err != nil {
		panic(x.m.jsError(err))
	}
	if !found {
		return nil
	}
	v, err := x.m.resolver.Read(x.o, k)
	if err != nil {
		panic(x.m.jsError(err))
	}
	return x.m.toValue(v)
}

// Has reports own properties only, as it backs hasOwnProperty.
func (x *record) Has(key string) bool {
	x.m.syncPrototype(x)
	return x.m.resolver.HasOwn(x.o, protochain.StringKey(key))
}

func (x *record) Set(key string, val goja.Value) bool {
	if err := x.m.resolver.Write(x.o, protochain.StringKey(key), x.m.export(val)); err != nil {
		panic(x.m.jsError(err))
	}
	return true
}

// Delete returns false, without error, for rejections ignored by a relaxed
// resolver, which the runtime reports as a TypeError in strict code.
func (x *record) Delete(key string) bool {
	ok, err := x.m.resolver.Remove(x.o, protochain.StringKey(key))
	if err != nil {
		panic(x.m.jsError(err))
	}
	return ok
}

// Keys lists own enumerable keys, as Object.keys. Non-enumerable keys are
// omitted, as the runtime would report them as enumerable, so they do not
// shadow inherited keys during for..in.
func (x *record) Keys() []string {
	keys, err := x.m.resolver.Enumerate(x.o, protochain.OwnEnumerable)
	if err != nil {
		panic(x.m.jsError(err))
	}
	return keys
}
