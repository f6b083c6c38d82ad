package protochain

import (
	"fmt"
)

// Constructor models a constructor function: a function record with a
// "prototype" property, and an initializer. [Constructor.New] links each
// new instance to whatever "prototype" resolves to at that time, so
// replacing it affects only later instances.
type Constructor struct {
	fn   *Object
	init Method
	name string
}

// NewConstructor returns a constructor named name, the function record of
// which is linked to [Resolver.Root], and owns:
//
//   - "name", read-only, non-enumerable, configurable
//   - "prototype", writable, non-enumerable, non-configurable, initially a
//     new object owning a writable, non-enumerable and configurable
//     "constructor" property, referencing the function record
//
// The init method may be nil. Otherwise, it is called with each new
// instance as the receiver, and if it returns a non-nil *Object, that
// object is the result of [Constructor.New] instead.
func (x *Resolver) NewConstructor(name string, init Method) (*Constructor, error) {
	c := &Constructor{init: init, name: name}
	fn, err := x.CreateLinked(x.root,
		Prop(`name`, Value(name).Configurable(true)),
	)
	if err != nil {
		return nil, err
	}
	fn.ctor = c
	c.fn = fn
	proto, err := x.CreateLinked(x.root,
		Prop(`constructor`, Value(fn).Writable(true).Configurable(true)),
	)
	if err != nil {
		return nil, err
	}
	if err := x.defineOwn(fn, StringKey(`prototype`), Value(proto).Writable(true)); err != nil {
		return nil, err
	}
	return c, nil
}

// ConstructorOf returns the constructor for which o is the function record,
// e.g. as resolved from an instance's "constructor" property.
func ConstructorOf(o *Object) (*Constructor, bool) {
	if o == nil || o.ctor == nil {
		return nil, false
	}
	return o.ctor, true
}

// Name returns the name the constructor was created with.
func (x *Constructor) Name() string { return x.name }

// Object returns the function record.
func (x *Constructor) Object() *Object { return x.fn }

// New creates an instance, linked to the object the function record's
// "prototype" property currently resolves to, or to [Resolver.Root] if that
// is not an object of the same resolver, then runs the initializer.
func (x *Constructor) New(args ...any) (*Object, error) {
	r := x.fn.owner
	v, err := r.Read(x.fn, StringKey(`prototype`))
	if err != nil {
		return nil, err
	}
	proto, _ := v.(*Object)
	if proto == nil || proto.owner != r {
		proto = r.root
	}
	instance := r.newRecord(proto)
	if x.init != nil {
		result, err := x.init(instance, args...)
		if err != nil {
			return nil, fmt.Errorf(`protochain: constructor %s: %w`, x.name, err)
		}
		if o, ok := result.(*Object); ok && o != nil {
			return o, nil
		}
	}
	return instance, nil
}
