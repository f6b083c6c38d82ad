package protochain

import (
	"errors"
	"fmt"
)

var (
	// ErrCyclicPrototype is matched (via [errors.Is]) by all
	// [*CyclicPrototypeError] values.
	ErrCyclicPrototype = errors.New(`protochain: cyclic prototype`)

	// ErrConfiguration is matched by all [*ConfigurationError] values.
	ErrConfiguration = errors.New(`protochain: configuration error`)

	// ErrWriteRejected is matched by all [*WriteRejectedError] values.
	ErrWriteRejected = errors.New(`protochain: write rejected`)

	// ErrChainDepth is matched by all [*ChainDepthError] values.
	ErrChainDepth = errors.New(`protochain: prototype chain too deep`)

	// ErrInvalidPrototype indicates a link candidate that is neither an
	// object of the same resolver nor nil (the terminal sentinel).
	ErrInvalidPrototype = errors.New(`protochain: invalid prototype`)

	// ErrInvalidDefinition indicates a [Definition] that mixes data and
	// accessor fields.
	ErrInvalidDefinition = errors.New(`protochain: invalid property definition`)

	// ErrNotCallable indicates that [Resolver.Call] resolved a value that
	// is not a [Method].
	ErrNotCallable = errors.New(`protochain: not callable`)
)

// Rejection reasons, as used by [ConfigurationError] and
// [WriteRejectedError].
const (
	ReasonReadOnly        = `read-only`
	ReasonNoSetter        = `accessor has no setter`
	ReasonNotExtensible   = `object is not extensible`
	ReasonNonConfigurable = `property is not configurable`
)

type (
	// CyclicPrototypeError is returned when a link would make an object its
	// own ancestor. It is an invariant violation, returned in both modes.
	CyclicPrototypeError struct {
		// Object is the ID of the object being linked.
		Object uint64
		// Prototype is the ID of the rejected link target.
		Prototype uint64
	}

	// ConfigurationError is a flag violation, returned when a descriptor (or
	// the object's extensibility) forbids the requested change.
	ConfigurationError struct {
		// Op is the rejected operation, e.g. "remove" or "define".
		Op string
		// Reason describes the forbidding condition.
		Reason string
		// Detail optionally names the offending attribute.
		Detail string
		Key    Key
		Object uint64
	}

	// WriteRejectedError is a flag violation, returned for writes to
	// read-only own data properties, setter-less accessors, and new
	// properties on non-extensible objects.
	WriteRejectedError struct {
		Reason string
		Key    Key
		Object uint64
	}

	// ChainDepthError is returned when a chain exceeds the configured
	// maximum depth, without being cyclic.
	ChainDepthError struct {
		Object   uint64
		MaxDepth int
	}
)

func (e *CyclicPrototypeError) Error() string {
	return fmt.Sprintf(`protochain: cyclic prototype: object %d cannot link to %d`, e.Object, e.Prototype)
}

// Is matches [ErrCyclicPrototype].
func (e *CyclicPrototypeError) Is(target error) bool { return target == ErrCyclicPrototype }

func (e *ConfigurationError) Error() string {
	if e.Detail != `` {
		return fmt.Sprintf(`protochain: cannot %s %q on object %d: %s (%s)`, e.Op, e.Key.String(), e.Object, e.Reason, e.Detail)
	}
	return fmt.Sprintf(`protochain: cannot %s %q on object %d: %s`, e.Op, e.Key.String(), e.Object, e.Reason)
}

// Is matches [ErrConfiguration].
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *WriteRejectedError) Error() string {
	return fmt.Sprintf(`protochain: cannot assign to %q on object %d: %s`, e.Key.String(), e.Object, e.Reason)
}

// Is matches [ErrWriteRejected].
func (e *WriteRejectedError) Is(target error) bool { return target == ErrWriteRejected }

func (e *ChainDepthError) Error() string {
	return fmt.Sprintf(`protochain: prototype chain of object %d exceeds max depth %d`, e.Object, e.MaxDepth)
}

// Is matches [ErrChainDepth].
func (e *ChainDepthError) Is(target error) bool { return target == ErrChainDepth }

// isFlagViolation reports whether err is subject to the resolver's mode.
func isFlagViolation(err error) bool {
	switch err.(type) {
	case *ConfigurationError, *WriteRejectedError:
		return true
	default:
		return false
	}
}
