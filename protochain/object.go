package protochain

import (
	"slices"
)

// Object is a record: an own property table, plus a single prototype link.
// Objects are created by, and belong to, a single [Resolver]. The zero
// value is not usable.
type Object struct {
	owner *Resolver
	proto *Object
	// set for function records created by NewConstructor
	ctor  *Constructor
	props map[Key]*slot
	// string and symbol keys, each in insertion order
	keys       []Key
	symbols    []Key
	id         uint64
	extensible bool
}

// tableSnapshot holds everything a define operation may change.
type tableSnapshot struct {
	props      map[Key]*slot
	keys       []Key
	symbols    []Key
	extensible bool
}

// ID returns an identifier for the object, unique within its resolver.
func (x *Object) ID() uint64 { return x.id }

// Prototype returns the object's prototype link, or nil if the object is
// the end of its chain.
func (x *Object) Prototype() *Object { return x.proto }

// Resolver returns the resolver the object belongs to.
func (x *Object) Resolver() *Resolver { return x.owner }

func (x *Object) own(k Key) (*slot, bool) {
	s, ok := x.props[k]
	return s, ok
}

// add stores a new property, which must not already exist.
func (x *Object) add(k Key, s *slot) {
	x.props[k] = s
	if k.IsSymbol() {
		x.symbols = append(x.symbols, k)
	} else {
		x.keys = append(x.keys, k)
	}
	x.owner.invalidate()
}

// replace swaps the slot of an existing property, retaining its position.
func (x *Object) replace(k Key, s *slot) {
	x.props[k] = s
}

func (x *Object) remove(k Key) {
	delete(x.props, k)
	order := &x.keys
	if k.IsSymbol() {
		order = &x.symbols
	}
	if i := slices.Index(*order, k); i >= 0 {
		*order = slices.Delete(*order, i, i+1)
	}
	x.owner.invalidate()
}

func (x *Object) snapshot() tableSnapshot {
	props := make(map[Key]*slot, len(x.props))
	for k, s := range x.props {
		props[k] = s
	}
	return tableSnapshot{
		props:      props,
		keys:       slices.Clone(x.keys),
		symbols:    slices.Clone(x.symbols),
		extensible: x.extensible,
	}
}

func (x *Object) restore(s tableSnapshot) {
	x.props = s.props
	x.keys = s.keys
	x.symbols = s.symbols
	x.extensible = s.extensible
	x.owner.invalidate()
}
