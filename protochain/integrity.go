package protochain

// PreventExtensions makes o non-extensible: it may no longer gain own
// properties, or change its prototype link. This cannot be undone.
func (x *Resolver) PreventExtensions(o *Object) {
	x.mustOwn(o)
	o.extensible = false
}

// Seal prevents extensions, and makes all own properties non-configurable.
func (x *Resolver) Seal(o *Object) {
	x.setIntegrity(o, false)
}

// Freeze seals o, and makes all own data properties read-only.
func (x *Resolver) Freeze(o *Object) {
	x.setIntegrity(o, true)
}

// IsExtensible reports whether o may gain own properties.
func (x *Resolver) IsExtensible(o *Object) bool {
	x.mustOwn(o)
	return o.extensible
}

// IsSealed reports whether o is non-extensible, with only non-configurable
// own properties.
func (x *Resolver) IsSealed(o *Object) bool {
	return x.testIntegrity(o, false)
}

// IsFrozen reports whether o is sealed, with only read-only own data
// properties.
func (x *Resolver) IsFrozen(o *Object) bool {
	return x.testIntegrity(o, true)
}

func (x *Resolver) setIntegrity(o *Object, frozen bool) {
	x.PreventExtensions(o)
	for k, s := range o.props {
		updated := *s
		updated.configurable = false
		if frozen && !updated.accessor {
			updated.writable = false
		}
		o.replace(k, &updated)
	}
}

func (x *Resolver) testIntegrity(o *Object, frozen bool) bool {
	x.mustOwn(o)
	if o.extensible {
		return false
	}
	for _, s := range o.props {
		if s.configurable || (frozen && !s.accessor && s.writable) {
			return false
		}
	}
	return true
}
