// Package protochain implements prototypal property resolution: per-object
// property tables, each with a single delegation link (the "prototype"),
// and the read, write, remove, enumerate and link operations that walk, or
// deliberately don't walk, the resulting chain.
//
// The model follows the ECMAScript ordinary object, restricted to what the
// chain needs:
//
//   - Reads search the receiver, then each ancestor, nearest first. Accessor
//     properties are always invoked with the original receiver, regardless of
//     where on the chain they were found.
//   - Writes and removes target the receiver's own table. The only exception
//     is an accessor found on the chain, which intercepts the write.
//   - Enumeration yields enumerable string keys, optionally including
//     inherited ones, where a closer key shadows any farther key of the same
//     name.
//   - Links must be acyclic, which [Resolver.Link] alone is responsible for.
//
// Flag violations (read-only properties, non-configurable properties,
// non-extensible objects) are governed by the resolver's [Mode]: [Strict]
// returns them as errors, [Relaxed] silently ignores them. The mode is fixed
// for the lifetime of a [Resolver].
//
// # Concurrency
//
// Mutating operations against a record, or any record reachable from it via
// its chain, must be serialized by the caller. Reads may run concurrently
// with other reads.
package protochain
