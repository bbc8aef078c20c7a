// Package access records property, index and method-call accesses against a
// subject that is not known yet, and replays them later.
//
// A [Path] is built step by step and applied to any number of subjects:
//
//	name := access.New().Property("Owner").Call("DisplayName")
//	name.Apply(repo)  // repo.Owner.DisplayName(), or nil if Owner is nil
//
// Applying a path never panics on absent data: a missing field, map key,
// slice position or method resolves to nil, and a nil value stops the
// remaining steps. Panics raised inside a called method do propagate.
//
// # Resolution
//
// Property steps read exported struct fields, string-keyed map entries, or
// whatever a [PropertyReader] reports. Index steps read map entries, slice,
// array and string positions, or use a collections.Lookuper such as
// *collections.Collection. Call steps invoke exported methods, with value or
// pointer receivers, or functions stored in a string-keyed map. Arguments are
// converted between numeric kinds; a method returning (T, error) or (T, bool)
// yields T on success and nil otherwise.
//
// # Dot notation
//
// [Parse] builds a path from an expression such as `users[0].Name()`, and
// [Get] and [Has] apply one in a single call.
//
// # Callbacks
//
// Path.Apply has the shape of a one-argument callback, so a path can be
// handed to the chain package's map, filter, sort, min and max operators.
package access
