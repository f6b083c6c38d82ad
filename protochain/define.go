package protochain

// DefineProperty creates or updates the own property k of o, as
// Object.defineProperty. On a non-configurable property, the definition
// must not change the configurable or enumerable flags, loosen writable
// from false to true, change the value of a read-only property, change
// between data and accessor kinds, or replace an accessor function (one
// may be assigned if absent). Specifying a flag or value as its current
// value is always allowed. Violations, and new properties on non-extensible
// objects, are [*ConfigurationError] values subject to the mode.
func (x *Resolver) DefineProperty(o *Object, k Key, def Definition) error {
	return x.DefineProperties(o, Property{Key: k, Definition: def})
}

// DefineProperties applies each definition in order, per
// [Resolver.DefineProperty]. The operation is atomic: if any definition is
// rejected, none are applied.
func (x *Resolver) DefineProperties(o *Object, props ...Property) error {
	x.mustOwn(o)
	snapshot := o.snapshot()
	for _, p := range props {
		if err := x.defineOwn(o, p.Key, p.Definition); err != nil {
			o.restore(snapshot)
			return x.reject(err)
		}
	}
	return nil
}

// GetOwnPropertyDescriptor returns the descriptor of the own property k of
// o, and false if it does not exist.
func (x *Resolver) GetOwnPropertyDescriptor(o *Object, k Key) (Descriptor, bool) {
	x.mustOwn(o)
	s, ok := o.own(k)
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptor(), true
}

// GetOwnPropertyDescriptors returns all own properties of o, string keys
// first, then symbol keys, each in insertion order.
func (x *Resolver) GetOwnPropertyDescriptors(o *Object) []OwnProperty {
	x.mustOwn(o)
	props := make([]OwnProperty, 0, len(o.props))
	for _, order := range [...][]Key{o.keys, o.symbols} {
		for _, k := range order {
			props = append(props, OwnProperty{Key: k, Descriptor: o.props[k].descriptor()})
		}
	}
	return props
}

// Clone returns a new object with the same prototype, and copies of all own
// properties of o, including flags, symbol keys and accessors. The clone is
// extensible, even if o is not.
func (x *Resolver) Clone(o *Object) (*Object, error) {
	x.mustOwn(o)
	descriptors := x.GetOwnPropertyDescriptors(o)
	props := make([]Property, len(descriptors))
	for i, p := range descriptors {
		props[i] = Property{Key: p.Key, Definition: p.Descriptor.Definition()}
	}
	return x.CreateLinked(o.proto, props...)
}

// defineOwn applies def to the own property k of o, returning any flag
// violation without applying the mode.
func (x *Resolver) defineOwn(o *Object, k Key, def Definition) error {
	if err := def.validate(); err != nil {
		return err
	}
	cur, ok := o.own(k)
	if !ok {
		if !o.extensible {
			return &ConfigurationError{Op: `define`, Reason: ReasonNotExtensible, Key: k, Object: o.id}
		}
		o.add(k, def.newSlot())
		return nil
	}
	if !cur.configurable {
		if attr := def.violation(cur); attr != `` {
			return &ConfigurationError{Op: `define`, Reason: ReasonNonConfigurable, Detail: attr, Key: k, Object: o.id}
		}
	}
	o.replace(k, def.merge(cur))
	return nil
}
