package protochain

// Extensions is a registry of properties layered over records, without
// modifying them, modelling the patching of shared ("native") prototypes.
// During resolution via the registry, each level of the chain is searched
// for an own property first, then for an extension registered against that
// level, before moving on to the next level. Resolution via the
// [Resolver] itself is unaffected.
//
// Extensions are owned by the consumer, and are not safe for concurrent
// use.
type Extensions struct {
	resolver *Resolver
	tables   map[*Object]map[Key]*slot
}

// NewExtensions returns an empty registry for records of r.
func NewExtensions(r *Resolver) *Extensions {
	if r == nil {
		panic(`protochain: resolver must not be nil`)
	}
	return &Extensions{
		resolver: r,
		tables:   make(map[*Object]map[Key]*slot),
	}
}

// Define registers (or replaces) an extension property on target. Flags
// left unspecified by def default to false.
func (x *Extensions) Define(target *Object, k Key, def Definition) error {
	x.resolver.mustOwn(target)
	if err := def.validate(); err != nil {
		return err
	}
	table := x.tables[target]
	if table == nil {
		table = make(map[Key]*slot)
		x.tables[target] = table
	}
	table[k] = def.newSlot()
	return nil
}

// DefineIfAbsent registers the extension only if k does not already
// resolve from target, via the registry, e.g. to polyfill a missing method.
// It reports whether the extension was registered.
func (x *Extensions) DefineIfAbsent(target *Object, k Key, def Definition) (bool, error) {
	_, s, err := x.lookup(target, k)
	if err != nil || s != nil {
		return false, err
	}
	if err := x.Define(target, k, def); err != nil {
		return false, err
	}
	return true, nil
}

// Remove unregisters the extension k of target, if any.
func (x *Extensions) Remove(target *Object, k Key) {
	if table := x.tables[target]; table != nil {
		delete(table, k)
		if len(table) == 0 {
			delete(x.tables, target)
		}
	}
}

// Read resolves k against o, per [Resolver.Read], including extensions.
func (x *Extensions) Read(o *Object, k Key) (any, error) {
	_, s, err := x.lookup(o, k)
	if err != nil || s == nil {
		return Undefined, err
	}
	if !s.accessor {
		return s.value, nil
	}
	if s.get == nil {
		return Undefined, nil
	}
	return s.get(o)
}

// Call resolves k against o, including extensions, and invokes it per
// [Resolver.Call].
func (x *Extensions) Call(o *Object, k Key, args ...any) (any, error) {
	v, err := x.Read(o, k)
	if err != nil {
		return Undefined, err
	}
	return invoke(o, k, v, args)
}

func (x *Extensions) lookup(o *Object, k Key) (*Object, *slot, error) {
	r := x.resolver
	r.mustOwn(o)
	for level, depth := o, 0; level != nil; level, depth = level.proto, depth+1 {
		if depth > r.maxDepth {
			return nil, nil, r.depthError(o)
		}
		if s, ok := level.own(k); ok {
			return level, s, nil
		}
		if s, ok := x.tables[level][k]; ok {
			return level, s, nil
		}
	}
	return nil, nil, nil
}
