package protochain

import (
	"fmt"
)

// EnumerateMode selects the keys listed by [Resolver.Enumerate]. Symbol keys
// are never listed, see [Resolver.OwnSymbols].
type EnumerateMode int

const (
	// OwnKeys lists all own string keys, enumerable or not, in insertion
	// order (as Object.getOwnPropertyNames).
	OwnKeys EnumerateMode = iota
	// OwnEnumerable lists own enumerable string keys, in insertion order
	// (as Object.keys).
	OwnEnumerable
	// Chained lists the enumerable string keys of the object, then of each
	// ancestor, nearest first, each level in insertion order (as for..in).
	// A key that exists at a closer level, enumerable or not, hides the
	// same key at all farther levels.
	Chained
)

func (m EnumerateMode) String() string {
	switch m {
	case OwnKeys:
		return `own`
	case OwnEnumerable:
		return `own-enumerable`
	case Chained:
		return `chained`
	default:
		return fmt.Sprintf(`EnumerateMode(%d)`, int(m))
	}
}

// Enumerate lists the string keys of o, per mode. An error is only possible
// for [Chained], if the depth guard trips.
func (x *Resolver) Enumerate(o *Object, mode EnumerateMode) ([]string, error) {
	x.mustOwn(o)
	switch mode {
	case OwnKeys:
		return ownKeys(o, false, nil, nil), nil
	case OwnEnumerable:
		return ownKeys(o, true, nil, nil), nil
	case Chained:
		var (
			keys []string
			seen = make(map[string]struct{})
		)
		for level, depth := o, 0; level != nil; level, depth = level.proto, depth+1 {
			if depth > x.maxDepth {
				return nil, x.depthError(o)
			}
			keys = ownKeys(level, true, seen, keys)
		}
		return keys, nil
	default:
		panic(fmt.Errorf(`protochain: invalid enumerate mode: %s`, mode))
	}
}

// OwnSymbols returns the own symbol keys of o, in insertion order,
// regardless of enumerability.
func (x *Resolver) OwnSymbols(o *Object) []*Symbol {
	x.mustOwn(o)
	symbols := make([]*Symbol, 0, len(o.symbols))
	for _, k := range o.symbols {
		symbols = append(symbols, k.sym)
	}
	return symbols
}

// ownKeys appends the own string keys of o to dst. If seen is non-nil, keys
// already in it are skipped, and every key of o is added to it, including
// non-enumerable keys, which therefore shadow farther levels.
func ownKeys(o *Object, enumerableOnly bool, seen map[string]struct{}, dst []string) []string {
	if dst == nil {
		dst = make([]string, 0, len(o.keys))
	}
	for _, k := range o.keys {
		if seen != nil {
			if _, ok := seen[k.name]; ok {
				continue
			}
			seen[k.name] = struct{}{}
		}
		if enumerableOnly && !o.props[k].enumerable {
			continue
		}
		dst = append(dst, k.name)
	}
	return dst
}
