// Package collections provides lazy and materialized key/value sequences and
// a vocabulary of generic operators over them, in the spirit of Laravel's
// Illuminate/Collections.
//
// # Sequences
//
// Every operator accepts a [Sequence]: anything that hands out a [Cursor]
// yielding key/value pairs in a fixed order. Two implementations ship with
// the package:
//
//   - [*Collection] is materialized: ordered, random-access, replayable.
//   - [*Lazy] is a single-pass producer that computes pairs on demand.
//
// Keys survive transformations the way they would in an associative array:
// Map and Filter keep them, Keys/Values/Sort/Shuffle re-index from 0, and
// KSort orders by them.
//
// # Laziness
//
// Operators that need only one forward pass return a *Lazy and do no work
// until the result is traversed:
//
//	squares := collections.Map(collections.Range(1, 1_000_000),
//	    func(n, _ int) int { return n * n })
//	firstThree := collections.Slice(squares, 0, 3)
//	collections.Materialize(firstThree).Values() // → [1 4 9], three pulls
//
// Operators that need global knowledge (Sort, KSort, Reverse, Unique,
// Shuffle, Tap, Slice with negative bounds) materialize their input first.
// Terminal operators (Reduce, Min, Max, Sum, Implode, In, Count) drain it.
//
// A lazy sequence may be traversed once. Call [Materialize] to keep the
// pairs around.
//
// # Interop
//
// [All] turns any sequence into an iter.Seq2 for range-over-func loops, and
// [FromSeq2] goes the other way.
//
// # Portability
//
// The pull-based Cursor maps to Python iterators, Java's Iterator<T>, and
// Rust's Iterator::next.
package collections
