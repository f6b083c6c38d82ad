package protochain

import (
	"math"
	"reflect"
)

type (
	// Getter implements the read side of an accessor property. The receiver
	// is the object the read was performed against, not the object that
	// owns the accessor.
	Getter func(receiver *Object) (any, error)

	// Setter implements the write side of an accessor property, see
	// [Getter] for the receiver semantics.
	Setter func(receiver *Object, value any) error

	// Method is a callable property value, invoked via [Resolver.Call] with
	// the object the call was made against as the receiver.
	Method func(receiver *Object, args ...any) (any, error)

	// Descriptor is the complete attribute set of an own property, as
	// returned by [Resolver.GetOwnPropertyDescriptor].
	Descriptor struct {
		// Value is the stored value of a data property.
		Value any
		// Get and Set are the functions of an accessor property, either of
		// which may be nil.
		Get Getter
		Set Setter
		// Accessor is true for accessor properties, false for data
		// properties.
		Accessor bool
		// Writable is always false for accessor properties.
		Writable     bool
		Enumerable   bool
		Configurable bool
	}

	// Definition is a partial descriptor, used to create or update an own
	// property, as [Resolver.DefineProperty]. The zero value changes
	// nothing. Attributes that are left unspecified keep their current
	// values, on existing properties, or default to false (and undefined),
	// on new properties.
	Definition struct {
		value        any
		get          Getter
		set          Setter
		writable     flag
		enumerable   flag
		configurable flag
		hasValue     bool
		hasGet       bool
		hasSet       bool
		accessor     bool
	}

	// Property pairs a key with a [Definition], for operations that accept
	// many properties at once, e.g. [Resolver.CreateLinked]. Order is
	// significant, and determines enumeration order.
	Property struct {
		Key        Key
		Definition Definition
	}

	// OwnProperty pairs a key with the [Descriptor] of an own property.
	OwnProperty struct {
		Key        Key
		Descriptor Descriptor
	}

	flag uint8

	undefined struct{}

	// slot is the stored form of an own property. Slots are replaced, never
	// modified in place, by define operations, so that a shallow copy of an
	// object's table is a complete snapshot of it.
	slot struct {
		value        any
		get          Getter
		set          Setter
		accessor     bool
		writable     bool
		enumerable   bool
		configurable bool
	}
)

const (
	flagUnset flag = iota
	flagFalse
	flagTrue
)

// Undefined is the value of missing properties, and of properties that were
// defined without a value. It is distinct from nil, which is a legitimate
// stored value.
var Undefined any = undefined{}

func (undefined) String() string { return `undefined` }

// IsUndefined reports whether v is [Undefined].
func IsUndefined(v any) bool { return v == Undefined }

// Value returns a data property definition with the given value, leaving
// all flags unspecified.
func Value(v any) Definition {
	return Definition{value: v, hasValue: true}
}

// Plain returns a data property definition equivalent to one created by
// assignment, i.e. with all flags true.
func Plain(v any) Definition {
	return Value(v).Writable(true).Enumerable(true).Configurable(true)
}

// Accessor returns an accessor property definition. Nil functions are left
// unspecified.
func Accessor(get Getter, set Setter) Definition {
	return Definition{
		get:      get,
		set:      set,
		hasGet:   get != nil,
		hasSet:   set != nil,
		accessor: true,
	}
}

// Flags returns a definition that specifies no value or accessor functions,
// and may be used to change only the flags of an existing property.
func Flags() Definition { return Definition{} }

// Prop is shorthand for a string keyed [Property].
func Prop(name string, def Definition) Property {
	return Property{Key: StringKey(name), Definition: def}
}

// Writable specifies the writable flag, making the definition a data
// property definition.
func (x Definition) Writable(v bool) Definition {
	x.writable = toFlag(v)
	return x
}

// Enumerable specifies the enumerable flag.
func (x Definition) Enumerable(v bool) Definition {
	x.enumerable = toFlag(v)
	return x
}

// Configurable specifies the configurable flag.
func (x Definition) Configurable(v bool) Definition {
	x.configurable = toFlag(v)
	return x
}

func (x Definition) isData() bool { return x.hasValue || x.writable != flagUnset }

func (x Definition) isAccessor() bool { return x.accessor || x.hasGet || x.hasSet }

func (x Definition) validate() error {
	if x.isData() && x.isAccessor() {
		return ErrInvalidDefinition
	}
	return nil
}

// newSlot builds the slot for a property that does not exist yet.
func (x Definition) newSlot() *slot {
	s := slot{
		enumerable:   x.enumerable == flagTrue,
		configurable: x.configurable == flagTrue,
	}
	if x.isAccessor() {
		s.accessor = true
		s.get = x.get
		s.set = x.set
	} else {
		s.value = Undefined
		if x.hasValue {
			s.value = x.value
		}
		s.writable = x.writable == flagTrue
	}
	return &s
}

// violation returns the attribute that the definition would illegally
// change, on a non-configurable property, or "" if there is none.
func (x Definition) violation(cur *slot) string {
	if x.configurable == flagTrue {
		return `configurable`
	}
	if x.enumerable != flagUnset && (x.enumerable == flagTrue) != cur.enumerable {
		return `enumerable`
	}
	switch {
	case x.isAccessor() && !cur.accessor, x.isData() && cur.accessor:
		return `kind`
	case cur.accessor:
		// accessor functions may be assigned while absent, never replaced
		if x.hasGet && cur.get != nil {
			return `get`
		}
		if x.hasSet && cur.set != nil {
			return `set`
		}
	case !cur.writable:
		if x.writable == flagTrue {
			return `writable`
		}
		if x.hasValue && !sameValue(x.value, cur.value) {
			return `value`
		}
	}
	return ``
}

// merge returns the slot resulting from applying the definition to cur.
func (x Definition) merge(cur *slot) *slot {
	s := *cur
	switch {
	case x.isAccessor() && !s.accessor:
		s.accessor, s.value, s.writable = true, nil, false
	case x.isData() && s.accessor:
		s.accessor, s.get, s.set, s.value = false, nil, nil, Undefined
	}
	if x.hasValue {
		s.value = x.value
	}
	if x.hasGet {
		s.get = x.get
	}
	if x.hasSet {
		s.set = x.set
	}
	if x.writable != flagUnset {
		s.writable = x.writable == flagTrue
	}
	if x.enumerable != flagUnset {
		s.enumerable = x.enumerable == flagTrue
	}
	if x.configurable != flagUnset {
		s.configurable = x.configurable == flagTrue
	}
	return &s
}

// Definition returns a definition that fully specifies d.
func (d Descriptor) Definition() Definition {
	var def Definition
	if d.Accessor {
		def = Accessor(d.Get, d.Set)
	} else {
		def = Value(d.Value).Writable(d.Writable)
	}
	return def.Enumerable(d.Enumerable).Configurable(d.Configurable)
}

func (x *slot) descriptor() Descriptor {
	return Descriptor{
		Value:        x.value,
		Get:          x.get,
		Set:          x.set,
		Accessor:     x.accessor,
		Writable:     x.writable,
		Enumerable:   x.enumerable,
		Configurable: x.configurable,
	}
}

func toFlag(v bool) flag {
	if v {
		return flagTrue
	}
	return flagFalse
}

// sameValue compares per the SameValue algorithm, where values that cannot
// be compared are never the same.
func sameValue(a, b any) (same bool) {
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			if math.IsNaN(fa) || math.IsNaN(fb) {
				return math.IsNaN(fa) && math.IsNaN(fb)
			}
			return fa == fb && math.Signbit(fa) == math.Signbit(fb)
		}
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta == nil {
		return true
	}
	if !ta.Comparable() {
		return false
	}
	// comparable types may still hold incomparable interface values
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
