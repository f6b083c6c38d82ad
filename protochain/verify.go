package protochain

import (
	cycle "github.com/joeycumines/go-detect-cycle/floyds"
)

// Verify checks that the chain of o terminates within the resolver's
// maximum depth, returning a [*CyclicPrototypeError] or [*ChainDepthError]
// if it does not. Links made via [Resolver.Link] can never form a cycle, so
// this is an integrity check for consumers that stitch graphs together, or
// wish to validate the depth of an existing chain.
func (x *Resolver) Verify(o *Object) error {
	x.mustOwn(o)
	if cyclic(o) {
		return &CyclicPrototypeError{Object: o.id, Prototype: idOf(o.proto)}
	}
	depth := 0
	for level := o.proto; level != nil; level = level.proto {
		depth++
	}
	if depth > x.maxDepth {
		return &ChainDepthError{Object: o.id, MaxDepth: x.maxDepth}
	}
	return nil
}

// cyclic reports whether the chain starting at o loops, using Floyd's
// algorithm, so it terminates regardless.
func cyclic(o *Object) bool {
	f := cycle.NewBranchingDetector(o, nil)
	for level := o.proto; level != nil; level = level.proto {
		nf := f.Hare(level)
		if !f.Ok() {
			return true
		}
		f = nf
	}
	return false
}
