package protochain

import (
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// Resolver owns a graph of [Object] records, and implements property
// resolution against them. See the package documentation for the
// concurrency model.
type Resolver struct {
	logger   *logiface.Logger[logiface.Event]
	cache    *lookupCache
	root     *Object
	ids      atomic.Uint64
	epoch    atomic.Uint64
	maxDepth int
	mode     Mode
}

// New constructs a [Resolver]. It returns an error if option validation
// fails.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf(`protochain: %w`, err)
	}
	x := &Resolver{
		logger:   cfg.logger,
		maxDepth: cfg.maxDepth,
		mode:     cfg.mode,
	}
	if cfg.cache {
		x.cache = newLookupCache()
	}
	x.root = x.newRecord(nil)
	return x, nil
}

// Mode returns the resolver's mode.
func (x *Resolver) Mode() Mode { return x.mode }

// MaxDepth returns the maximum number of links a chain walk may follow.
func (x *Resolver) MaxDepth() int { return x.maxDepth }

// Root returns the resolver's base prototype, an initially empty object
// with no prototype, which [Resolver.NewObject] links to.
func (x *Resolver) Root() *Object { return x.root }

// NewObject returns a new, empty object linked to [Resolver.Root].
func (x *Resolver) NewObject() *Object { return x.newRecord(x.root) }

// CreateLinked returns a new object linked to proto (which may be nil, for
// an object with no prototype), with the given own properties, defined in
// order. Either the complete object is returned, or an error.
//
// Flag violations among props (e.g. a later definition attempting to change
// an earlier, non-configurable one) are returned as errors regardless of
// mode, as no object would otherwise be returned.
func (x *Resolver) CreateLinked(proto *Object, props ...Property) (*Object, error) {
	if err := x.checkPrototype(proto); err != nil {
		return nil, err
	}
	o := x.newRecord(proto)
	for _, p := range props {
		if err := x.defineOwn(o, p.Key, p.Definition); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Read resolves k against o, walking the chain until the key is found.
// Accessors are invoked with o as the receiver, wherever they were found.
// Missing keys, and accessors without a getter, resolve to [Undefined].
// Errors are only returned for depth guard violations, and as returned by
// getters.
func (x *Resolver) Read(o *Object, k Key) (any, error) {
	x.mustOwn(o)
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

// Write assigns v to k on o. The nearest property for k on the chain
// decides the outcome:
//
//   - an accessor (own or inherited) receives the write via its setter,
//     with o as the receiver, or rejects it if it has no setter
//   - an own data property is updated, or the write rejected if it is
//     read-only
//   - otherwise, including when the nearest property is an inherited data
//     property, o gains an own, writable, enumerable and configurable
//     property, provided o is extensible
//
// Rejections are [*WriteRejectedError] values, subject to the mode.
func (x *Resolver) Write(o *Object, k Key, v any) error {
	x.mustOwn(o)
	holder, s, err := x.lookup(o, k)
	if err != nil {
		return err
	}
	switch {
	case s != nil && s.accessor:
		if s.set == nil {
			return x.reject(&WriteRejectedError{Reason: ReasonNoSetter, Key: k, Object: o.id})
		}
		return s.set(o, v)
	case holder == o:
		if !s.writable {
			return x.reject(&WriteRejectedError{Reason: ReasonReadOnly, Key: k, Object: o.id})
		}
		updated := *s
		updated.value = v
		o.replace(k, &updated)
		return nil
	case !o.extensible:
		return x.reject(&WriteRejectedError{Reason: ReasonNotExtensible, Key: k, Object: o.id})
	}
	o.add(k, &slot{value: v, writable: true, enumerable: true, configurable: true})
	return nil
}

// Remove deletes the own property k of o, never touching the chain. It
// returns true if the property no longer exists, including if it never did
// (even if inherited). A non-configurable property is not removed, and
// results in false, and a [*ConfigurationError] subject to the mode.
func (x *Resolver) Remove(o *Object, k Key) (bool, error) {
	x.mustOwn(o)
	s, ok := o.own(k)
	if !ok {
		return true, nil
	}
	if !s.configurable {
		return false, x.reject(&ConfigurationError{Op: `remove`, Reason: ReasonNonConfigurable, Key: k, Object: o.id})
	}
	o.remove(k)
	return true, nil
}

// Link sets the prototype of o to proto, which may be nil to terminate the
// chain. It fails with a [*CyclicPrototypeError] if proto is o, or has o as
// an ancestor, and with [ErrInvalidPrototype] if proto belongs to another
// resolver. Linking to the current prototype is a no-op. Changing the link
// of a non-extensible object is a [*ConfigurationError], subject to the
// mode.
//
// Objects that have o as an ancestor observe the change on subsequent
// resolution, as would be expected.
func (x *Resolver) Link(o, proto *Object) error {
	x.mustOwn(o)
	if err := x.checkPrototype(proto); err != nil {
		return err
	}
	if proto == o.proto {
		return nil
	}
	for level, depth := proto, 0; level != nil; level, depth = level.proto, depth+1 {
		if level == o {
			return &CyclicPrototypeError{Object: o.id, Prototype: proto.id}
		}
		if depth >= x.maxDepth {
			return x.depthError(proto)
		}
	}
	if !o.extensible {
		return x.reject(&ConfigurationError{Op: `link`, Reason: ReasonNotExtensible, Key: StringKey(`[[Prototype]]`), Object: o.id})
	}
	o.proto = proto
	x.invalidate()
	x.logger.Debug().
		Int64(`object`, int64(o.id)).
		Int64(`prototype`, int64(idOf(proto))).
		Log(`prototype linked`)
	return nil
}

// LinkValue behaves per [Resolver.Link], accepting only nil or an *Object
// as the candidate, and failing with [ErrInvalidPrototype] otherwise.
func (x *Resolver) LinkValue(o *Object, candidate any) error {
	switch c := candidate.(type) {
	case nil:
		return x.Link(o, nil)
	case *Object:
		return x.Link(o, c)
	default:
		return fmt.Errorf(`%w: %T`, ErrInvalidPrototype, candidate)
	}
}

// HasOwn reports whether k is an own property of o.
func (x *Resolver) HasOwn(o *Object, k Key) bool {
	x.mustOwn(o)
	_, ok := o.own(k)
	return ok
}

// Has reports whether k resolves anywhere on the chain of o.
func (x *Resolver) Has(o *Object, k Key) (bool, error) {
	x.mustOwn(o)
	holder, _, err := x.lookup(o, k)
	return holder != nil, err
}

// Call resolves k against o, and invokes the result as a [Method], with o
// as the receiver. Methods may also be stored as plain functions of the
// same signature.
func (x *Resolver) Call(o *Object, k Key, args ...any) (any, error) {
	v, err := x.Read(o, k)
	if err != nil {
		return Undefined, err
	}
	return invoke(o, k, v, args)
}

func invoke(o *Object, k Key, v any, args []any) (any, error) {
	switch m := v.(type) {
	case Method:
		return m(o, args...)
	case func(*Object, ...any) (any, error):
		return m(o, args...)
	default:
		return Undefined, fmt.Errorf(`%w: %q resolved to %v`, ErrNotCallable, k.String(), v)
	}
}

// lookup finds the nearest record on the chain of o that owns k, returning
// a nil holder if there is none.
func (x *Resolver) lookup(o *Object, k Key) (*Object, *slot, error) {
	epoch := x.epoch.Load()
	if holder, ok := x.cache.get(epoch, o, k); ok {
		if holder == nil {
			return nil, nil, nil
		}
		if s, ok := holder.own(k); ok {
			return holder, s, nil
		}
	}
	for level, depth := o, 0; level != nil; level, depth = level.proto, depth+1 {
		if depth > x.maxDepth {
			return nil, nil, x.depthError(o)
		}
		if s, ok := level.own(k); ok {
			x.cache.put(epoch, o, k, level)
			return level, s, nil
		}
	}
	x.cache.put(epoch, o, k, nil)
	return nil, nil, nil
}

func (x *Resolver) newRecord(proto *Object) *Object {
	o := &Object{
		owner:      x,
		proto:      proto,
		props:      make(map[Key]*slot),
		id:         x.ids.Add(1),
		extensible: true,
	}
	x.logger.Trace().
		Int64(`object`, int64(o.id)).
		Int64(`prototype`, int64(idOf(proto))).
		Log(`object created`)
	return o
}

// reject applies the mode to err, if it is a flag violation.
func (x *Resolver) reject(err error) error {
	if x.mode == Strict || !isFlagViolation(err) {
		return err
	}
	x.logger.Debug().
		Err(err).
		Log(`rejection ignored`)
	return nil
}

// depthError classifies a chain that tripped the depth guard.
func (x *Resolver) depthError(o *Object) error {
	var err error
	if cyclic(o) {
		err = &CyclicPrototypeError{Object: o.id, Prototype: idOf(o.proto)}
	} else {
		err = &ChainDepthError{Object: o.id, MaxDepth: x.maxDepth}
	}
	x.logger.Warning().
		Err(err).
		Log(`depth guard tripped`)
	return err
}

func (x *Resolver) invalidate() { x.epoch.Add(1) }

func (x *Resolver) checkPrototype(proto *Object) error {
	if proto != nil && proto.owner != x {
		return fmt.Errorf(`%w: object %d belongs to a different resolver`, ErrInvalidPrototype, proto.id)
	}
	return nil
}

func (x *Resolver) mustOwn(o *Object) {
	if o == nil {
		panic(`protochain: nil object`)
	}
	if o.owner != x {
		panic(fmt.Errorf(`protochain: object %d belongs to a different resolver`, o.id))
	}
}

func idOf(o *Object) uint64 {
	if o == nil {
		return 0
	}
	return o.id
}
