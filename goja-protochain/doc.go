// Package gojaprotochain exposes [github.com/joeycumines/go-protochain/protochain]
// records to the Goja JavaScript engine.
//
// Records are presented to JS as dynamic objects. Property reads resolve
// through the record's prototype chain, with the record as the receiver of
// any accessor, and assignments and deletions go through the resolver, so
// that flag violations surface as JS exceptions (in strict mode). The JS
// prototype of each wrapper mirrors the record's prototype link, so the
// in operator and Object.getPrototypeOf behave as expected.
//
// The runtime treats every key of a dynamic object as enumerable, so
// Object.keys and for..in only see a wrapper's own enumerable keys. As a
// consequence, for..in does not honor a non-enumerable own key that shadows
// an enumerable inherited key of the same name, and lists the inherited
// key. Use keys(o, "chained") for shadow-correct enumeration.
//
// Descriptor-level operations, which dynamic objects cannot support
// natively, are provided by the module's exports: create, object, link,
// getPrototypeOf, keys, symbols, defineProperty, getOwnPropertyDescriptor,
// hasOwn, remove, clone, freeze, seal, preventExtensions, isFrozen,
// isSealed, isExtensible and verify.
//
// # Usage
//
// Use [Require] to create a [github.com/dop251/goja_nodejs/require.ModuleLoader],
// or create a [Module] directly with [New].
//
//	registry := require.NewRegistry()
//	registry.RegisterNativeModule("protochain", gojaprotochain.Require(
//		gojaprotochain.WithResolver(resolver),
//	))
//
// From JavaScript:
//
//	const pc = require('protochain');
//	const animal = pc.object();
//	animal.eats = true;
//	const rabbit = pc.create(animal);
//	rabbit.eats; // true
//
// A [Module] is bound to a single runtime, and, like the runtime, is not
// safe for concurrent use.
package gojaprotochain
